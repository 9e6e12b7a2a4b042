package discovery

import (
	"github.com/jaco/specialmac/internal/mac"
	"github.com/jaco/specialmac/internal/special"
)

// Device is a neighbor table entry annotated with its vendor and whether
// its MAC is special.
type Device struct {
	ARPEntry
	Vendor string
	Match  special.Match
}

// Special reports whether the device's MAC matched a special rule.
func (d Device) Special() bool {
	return d.Match.Special
}

// Kind returns a short description of the address type: "local" for
// locally administered addresses, "multicast", or "global".
func (d Device) Kind() string {
	switch {
	case mac.IsMulticast(d.MAC):
		return "multicast"
	case mac.IsLocallyAdministered(d.MAC):
		return "local"
	default:
		return "global"
	}
}
