package discovery

import (
	"github.com/jaco/specialmac/internal/mac"
	"github.com/jaco/specialmac/internal/special"
)

// Matcher classifies one MAC address. *special.Set satisfies it.
type Matcher interface {
	Match(addr string, mode special.Mode) special.Match
}

// ClassifyMAC matches addr against m. Unless strict is set, addr is first
// normalized so that dumps using lowercase or dashed notation still match.
func ClassifyMAC(m Matcher, addr string, mode special.Mode, strict bool) special.Match {
	if !strict {
		if norm, err := mac.Normalize(addr); err == nil {
			addr = norm
		}
	}
	return m.Match(addr, mode)
}
