package discovery

import "github.com/endobit/oui"

// UnknownVendor is reported when the OUI is not in the database.
const UnknownVendor = "Unknown"

// LookupVendor returns the manufacturer name for a MAC address.
// The endobit/oui package uses a compiled-in IEEE OUI database,
// so no runtime initialization or file loading is needed.
func LookupVendor(mac string) string {
	vendor := oui.Vendor(mac)
	if vendor == "" {
		return UnknownVendor
	}
	return vendor
}
