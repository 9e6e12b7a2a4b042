package neighbor

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// ExecRunner runs cmd on the local host. The command line is split on
// whitespace; no shell is involved. The context controls cancellation and
// timeout.
func ExecRunner(ctx context.Context, cmd string) (string, error) {
	fields := strings.Fields(cmd)
	if len(fields) == 0 {
		return "", fmt.Errorf("exec: empty command")
	}
	out, err := exec.CommandContext(ctx, fields[0], fields[1:]...).CombinedOutput()
	output := strings.TrimSpace(string(out))
	if err != nil {
		return output, fmt.Errorf("exec %q: %w", cmd, err)
	}
	return output, nil
}
