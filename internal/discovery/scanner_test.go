package discovery

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaco/specialmac/internal/special"
)

func fakeVendor(string) string { return "Acme" }

func TestClassifier_Classify(t *testing.T) {
	entries := []ARPEntry{
		{IP: "10.0.0.10", MAC: "00:1a:2c:aa:bb:cc"},
		{IP: "10.0.0.2", MAC: "00:1A:2B:00:00:01"},
		{IP: "fe80::1", MAC: "20:3A:07:00:00:02"},
		{IP: "10.0.0.3", MAC: "00:1A:2D:00:00:03"},
	}

	var calls []int
	c := NewClassifier(special.Default(), special.ModeAny, WithVendorLookup(fakeVendor))
	devices, err := c.Classify(context.Background(), entries, func(done int) {
		calls = append(calls, done)
	})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4}, calls)

	require.Len(t, devices, 4)
	var ips []string
	for _, d := range devices {
		ips = append(ips, d.IP)
		assert.Equal(t, "Acme", d.Vendor)
	}
	assert.Equal(t, []string{"10.0.0.2", "10.0.0.3", "10.0.0.10", "fe80::1"}, ips)

	assert.Equal(t, special.ReasonPrefix, devices[0].Match.Reason)
	assert.False(t, devices[1].Special())
	assert.True(t, devices[2].Special(), "lowercase MAC is normalized")
	assert.Equal(t, special.ReasonAddress, devices[3].Match.Reason)

	assert.Len(t, FilterSpecial(devices), 3)
}

func TestClassifier_Strict(t *testing.T) {
	entries := []ARPEntry{{IP: "10.0.0.2", MAC: "00:1a:2b:00:00:01"}}
	c := NewClassifier(special.Default(), special.ModePrefix,
		WithStrict(true), WithVendorLookup(fakeVendor))

	devices, err := c.Classify(context.Background(), entries, nil)
	require.NoError(t, err)
	require.Len(t, devices, 1)
	assert.False(t, devices[0].Special())
	assert.Equal(t, special.ReasonMalformed, devices[0].Match.Reason)
}

func TestClassifier_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewClassifier(special.Default(), special.ModePrefix, WithVendorLookup(fakeVendor))
	_, err := c.Classify(ctx, []ARPEntry{{IP: "10.0.0.2", MAC: "00:1A:2B:00:00:01"}}, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLessIP(t *testing.T) {
	assert.True(t, lessIP("10.0.0.2", "10.0.0.10"))
	assert.True(t, lessIP("192.168.1.1", "fe80::1"))
	assert.True(t, lessIP("10.0.0.2", "bogus"))
	assert.False(t, lessIP("bogus", "10.0.0.2"))
	assert.True(t, lessIP("a", "b"))
}

func TestDevice_Kind(t *testing.T) {
	assert.Equal(t, "global", Device{ARPEntry: ARPEntry{MAC: "00:1A:2B:00:00:01"}}.Kind())
	assert.Equal(t, "local", Device{ARPEntry: ARPEntry{MAC: "02:42:AC:11:00:02"}}.Kind())
	assert.Equal(t, "multicast", Device{ARPEntry: ARPEntry{MAC: "01:00:5E:00:00:FB"}}.Kind())
}

func TestLookupVendor_NeverEmpty(t *testing.T) {
	assert.NotEmpty(t, LookupVendor("00:1A:2B:00:00:01"))
}
