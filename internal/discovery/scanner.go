package discovery

import (
	"context"
	"log/slog"
	"net/netip"
	"sort"
	"strings"

	"github.com/jaco/specialmac/internal/special"
)

// ProgressFunc is called during classification with the number of entries processed so far.
type ProgressFunc func(done int)

// Classifier annotates neighbor table entries with vendor and special status.
type Classifier struct {
	matcher Matcher
	mode    special.Mode
	strict  bool
	vendor  func(string) string
	log     *slog.Logger
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithStrict disables input normalization.
func WithStrict(strict bool) Option {
	return func(c *Classifier) { c.strict = strict }
}

// WithVendorLookup replaces LookupVendor, mostly for tests.
func WithVendorLookup(fn func(mac string) string) Option {
	return func(c *Classifier) { c.vendor = fn }
}

// WithLogger sets the logger used for per-entry debug output.
func WithLogger(l *slog.Logger) Option {
	return func(c *Classifier) { c.log = l }
}

// NewClassifier creates a Classifier that matches with m under mode.
func NewClassifier(m Matcher, mode special.Mode, opts ...Option) *Classifier {
	c := &Classifier{
		matcher: m,
		mode:    mode,
		vendor:  LookupVendor,
		log:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Classify annotates entries and returns them sorted by IP address.
//
// Flow:
//
//  1. For each entry: vendor lookup, special match, build Device.
//  2. Sort by IP (numerically; unparsable addresses last, by string).
//
// The context is checked between entries.
func (c *Classifier) Classify(ctx context.Context, entries []ARPEntry, progress ProgressFunc) ([]Device, error) {
	devices := make([]Device, 0, len(entries))
	for i, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		m := ClassifyMAC(c.matcher, entry.MAC, c.mode, c.strict)
		d := Device{
			ARPEntry: entry,
			Vendor:   c.vendor(entry.MAC),
			Match:    m,
		}
		devices = append(devices, d)
		c.log.Debug("classified neighbor",
			slog.String("ip", entry.IP),
			slog.String("mac", entry.MAC),
			slog.Bool("special", m.Special),
			slog.String("reason", string(m.Reason)),
		)

		if progress != nil {
			progress(i + 1)
		}
	}

	sort.SliceStable(devices, func(i, j int) bool {
		return lessIP(devices[i].IP, devices[j].IP)
	})
	return devices, nil
}

// lessIP orders parsable addresses numerically (IPv4 before IPv6) and
// places anything unparsable after them.
func lessIP(a, b string) bool {
	pa, errA := netip.ParseAddr(a)
	pb, errB := netip.ParseAddr(b)
	switch {
	case errA == nil && errB == nil:
		return pa.Less(pb)
	case errA == nil:
		return true
	case errB == nil:
		return false
	default:
		return strings.Compare(a, b) < 0
	}
}

// FilterSpecial returns only the devices whose MAC is special.
func FilterSpecial(devices []Device) []Device {
	out := make([]Device, 0, len(devices))
	for _, d := range devices {
		if d.Special() {
			out = append(out, d)
		}
	}
	return out
}
