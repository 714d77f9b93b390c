package cli

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"os/exec"
	"slices"
	"strings"

	"github.com/matzehuels/orbit/pkg/group"
	orbitio "github.com/matzehuels/orbit/pkg/io"
)

// exitExhausted is the exit status an external discoverer uses to report
// that it ran out of memory or another budget.
const exitExhausted = 3

// execDiscoverer runs an external symmetry discoverer.
//
// The task goes to the process's stdin as a generator-set file without
// generators. The process writes a generator-set file to stdout. The flags
// --stabilize-init and --stabilize-goal are appended to argv when requested.
type execDiscoverer struct {
	argv []string
}

func (d execDiscoverer) name() string {
	return strings.Join(d.argv, " ")
}

// Discover implements group.Discoverer.
func (d execDiscoverer) Discover(ctx context.Context, req group.DiscoveryRequest) (*group.RawGenerators, error) {
	if len(d.argv) == 0 {
		return nil, fmt.Errorf("no discoverer command")
	}
	space, err := req.Task.IndexSpace()
	if err != nil {
		return nil, err
	}

	var in bytes.Buffer
	if err := orbitio.WriteGenerators(&in, &orbitio.GeneratorSet{Space: space, Task: req.Task}); err != nil {
		return nil, err
	}

	args := slices.Clone(d.argv[1:])
	if req.StabilizeInitialState {
		args = append(args, "--stabilize-init")
	}
	if req.StabilizeGoal {
		args = append(args, "--stabilize-goal")
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, d.argv[0], args...)
	cmd.Stdin = &in
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		var exitErr *exec.ExitError
		if stderrors.As(err, &exitErr) && exitErr.ExitCode() == exitExhausted {
			return nil, group.ErrResourceExhausted
		}
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("run %s: %w: %s", d.argv[0], err, msg)
		}
		return nil, fmt.Errorf("run %s: %w", d.argv[0], err)
	}

	set, err := orbitio.ReadGenerators(&stdout)
	if err != nil {
		return nil, fmt.Errorf("read %s output: %w", d.argv[0], err)
	}
	return &group.RawGenerators{Space: set.Space, Generators: set.Generators}, nil
}
