package special

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaco/specialmac/internal/mac"
)

func TestNewSet_NormalizesEntries(t *testing.T) {
	s, err := NewSet(
		[]string{"aa-bb-cc", "AABBCC", "00:1a:2b"},
		[]string{"de:ad:be:ef:00:01", "dead.beef.0002"},
	)
	require.NoError(t, err)

	assert.Equal(t, []string{"00:1A:2B", "AA:BB:CC"}, s.Prefixes())
	assert.Equal(t, []string{"DE:AD:BE:EF:00:01", "DE:AD:BE:EF:00:02"}, s.Addresses())
	assert.True(t, s.HasPrefix("AA:BB:CC:01:02:03"))
	assert.True(t, s.HasAddress("DE:AD:BE:EF:00:02"))
	assert.False(t, s.HasAddress("de:ad:be:ef:00:02"))
}

func TestNewSet_InvalidEntry(t *testing.T) {
	_, err := NewSet([]string{"00:1A:2B", "00:1A"}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, mac.ErrInvalidLength)
	assert.Contains(t, err.Error(), "prefix #2")

	_, err = NewSet(nil, []string{"not-a-mac"})
	require.Error(t, err)
	assert.ErrorIs(t, err, mac.ErrInvalidFormat)
	assert.Contains(t, err.Error(), "address #1")
}

func TestNewSet_Empty(t *testing.T) {
	s, err := NewSet(nil, nil)
	require.NoError(t, err)
	assert.Empty(t, s.Prefixes())
	assert.Empty(t, s.Addresses())
	assert.False(t, s.Match("00:1A:2B:00:00:01", ModeAny).Special)
}

func TestSet_Match(t *testing.T) {
	s := Default()

	tests := []struct {
		name string
		addr string
		mode Mode
		want Match
	}{
		{"prefix hit", "00:1A:2B:00:00:01", ModePrefix, Match{Special: true, Reason: ReasonPrefix, Rule: "00:1A:2B"}},
		{"prefix miss", "00:1A:2D:00:00:03", ModePrefix, Match{Reason: ReasonNone}},
		{"address only in prefix mode", "20:3A:07:00:00:02", ModePrefix, Match{Reason: ReasonNone}},
		{"address hit", "20:3A:07:00:00:02", ModeAddress, Match{Special: true, Reason: ReasonAddress, Rule: "20:3A:07:00:00:02"}},
		{"prefix only in address mode", "00:1A:2B:00:00:01", ModeAddress, Match{Reason: ReasonNone}},
		{"any via prefix", "00:1A:2C:AA:BB:CC", ModeAny, Match{Special: true, Reason: ReasonPrefix, Rule: "00:1A:2C"}},
		{"any via address", "20:3A:07:00:00:02", ModeAny, Match{Special: true, Reason: ReasonAddress, Rule: "20:3A:07:00:00:02"}},
		{"malformed", "00:1a:2b:00:00:01", ModeAny, Match{Reason: ReasonMalformed}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.Match(tt.addr, tt.mode))
		})
	}
}

func TestSet_MatchAnyPrefersAddress(t *testing.T) {
	s, err := NewSet([]string{"00:1A:2B"}, []string{"00:1A:2B:00:00:01"})
	require.NoError(t, err)

	m := s.Match("00:1A:2B:00:00:01", ModeAny)
	assert.Equal(t, ReasonAddress, m.Reason)
	assert.Equal(t, "00:1A:2B:00:00:01", m.Rule)
}

func TestSet_AccessorsReturnCopies(t *testing.T) {
	s := Default()
	p := s.Prefixes()
	p[0] = "FF:FF:FF"
	assert.Equal(t, []string{"00:1A:2B", "00:1A:2C"}, s.Prefixes())
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in   string
		want Mode
	}{
		{"", ModePrefix},
		{"prefix", ModePrefix},
		{"ADDRESS", ModeAddress},
		{" any ", ModeAny},
	}
	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseMode("exact")
	assert.ErrorIs(t, err, ErrUnknownMode)
}

func TestMode_String(t *testing.T) {
	assert.Equal(t, "prefix", ModePrefix.String())
	assert.Equal(t, "address", ModeAddress.String())
	assert.Equal(t, "any", ModeAny.String())
	assert.Equal(t, "Mode(9)", Mode(9).String())
}
