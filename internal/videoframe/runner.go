package videoframe

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// commandRunner abstracts subprocess execution for testability.
type commandRunner interface {
	run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// execRunner runs the command for real, capturing stdout. Stderr is folded
// into the error so ffmpeg's diagnostics survive.
type execRunner struct{}

func (execRunner) run(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail != "" {
			return nil, fmt.Errorf("%w: %s", err, detail)
		}
		return nil, err
	}

	return stdout.Bytes(), nil
}
