package config

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaco/specialmac/internal/special"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	p := filepath.Join(dir, "specialmac.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestLoad(t *testing.T) {
	p := writeConfig(t, t.TempDir(), `
mode: any
strict: true
special:
  prefixes: ["aa:bb:cc"]
  addresses:
    - 11-22-33-44-55-66
`)
	cfg, err := Load(p)
	require.NoError(t, err)

	assert.Equal(t, p, cfg.Path)
	assert.True(t, cfg.Strict)
	mode, err := cfg.ParsedMode()
	require.NoError(t, err)
	assert.Equal(t, special.ModeAny, mode)

	set, err := cfg.Set()
	require.NoError(t, err)
	assert.Equal(t, []string{"AA:BB:CC"}, set.Prefixes())
	assert.Equal(t, []string{"11:22:33:44:55:66"}, set.Addresses())
}

func TestLoad_Defaults(t *testing.T) {
	p := writeConfig(t, t.TempDir(), "strict: false\n")
	cfg, err := Load(p)
	require.NoError(t, err)

	assert.Equal(t, "prefix", cfg.Mode)
	assert.Equal(t, special.DefaultPrefixes(), cfg.Special.Prefixes)
	assert.Equal(t, special.DefaultAddresses(), cfg.Special.Addresses)
}

func TestLoad_PrefixesOnly(t *testing.T) {
	p := writeConfig(t, t.TempDir(), "special:\n  prefixes: [\"00:1A:2B\"]\n")
	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Empty(t, cfg.Special.Addresses)
}

func TestLoad_ExplicitEmptySpecial(t *testing.T) {
	dir := t.TempDir()

	for _, body := range []string{
		"special: {}\n",
		"special:\n  prefixes: []\n  addresses: []\n",
	} {
		cfg, err := Load(writeConfig(t, dir, body))
		require.NoError(t, err, body)
		assert.Empty(t, cfg.Special.Prefixes, body)
		assert.Empty(t, cfg.Special.Addresses, body)

		set, err := cfg.Set()
		require.NoError(t, err)
		assert.False(t, set.Match("00:1A:2B:00:00:01", special.ModeAny).Special)
	}

	cfg, err := Load(writeConfig(t, dir, "special:\n"))
	require.NoError(t, err)
	assert.Equal(t, special.DefaultPrefixes(), cfg.Special.Prefixes, "null section means defaults")
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, fs.ErrNotExist)

	_, err = Load(writeConfig(t, dir, "special: [unclosed"))
	assert.ErrorContains(t, err, "failed to parse config")

	_, err = Load(writeConfig(t, dir, "mode: exact\n"))
	assert.ErrorIs(t, err, special.ErrUnknownMode)

	_, err = Load(writeConfig(t, dir, "special:\n  prefixes: [\"00:1A\"]\n"))
	assert.ErrorContains(t, err, "prefix #1")
}

func TestLoad_ExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	writeConfig(t, home, "mode: address\n")

	cfg, err := Load("~/specialmac.yaml")
	require.NoError(t, err)
	assert.Equal(t, "address", cfg.Mode)
	assert.Equal(t, filepath.Join(home, "specialmac.yaml"), cfg.Path)
}

func TestLoadDefault(t *testing.T) {
	dir := t.TempDir()
	orig := DefaultPaths
	t.Cleanup(func() { DefaultPaths = orig })

	DefaultPaths = []string{filepath.Join(dir, "nope.yaml")}
	cfg, err := LoadDefault()
	require.NoError(t, err)
	assert.Empty(t, cfg.Path)
	assert.Equal(t, special.DefaultPrefixes(), cfg.Special.Prefixes)

	found := writeConfig(t, dir, "mode: any\n")
	DefaultPaths = []string{filepath.Join(dir, "nope.yaml"), found}
	cfg, err = LoadDefault()
	require.NoError(t, err)
	assert.Equal(t, found, cfg.Path)
	assert.Equal(t, "any", cfg.Mode)

	broken := filepath.Join(dir, "broken.yaml")
	require.NoError(t, os.WriteFile(broken, []byte("mode: exact\n"), 0o644))
	DefaultPaths = []string{broken}
	_, err = LoadDefault()
	assert.Error(t, err)
}

func TestLoadDefault_NoHome(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", "")

	cfg, err := LoadDefault()
	require.NoError(t, err)
	assert.Empty(t, cfg.Path)
	assert.Equal(t, special.DefaultPrefixes(), cfg.Special.Prefixes)
	assert.Equal(t, special.DefaultAddresses(), cfg.Special.Addresses)

	_, err = Load("~/specialmac.yaml")
	assert.ErrorContains(t, err, "failed to get home directory")
}

func TestLoadDefault_NoHomeUsesWorkingDir(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", "")
	writeConfig(t, dir, "mode: address\n")

	cfg, err := LoadDefault()
	require.NoError(t, err)
	assert.Equal(t, "address", cfg.Mode)
}
