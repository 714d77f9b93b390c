// Package task describes the parts of a planning task the symmetry
// subsystem needs: the variables with their domains, the initial state and
// the goal. Parsing full planning tasks happens elsewhere.
package task

import (
	"encoding/binary"
	"fmt"

	"github.com/matzehuels/orbit/pkg/cache"
	"github.com/matzehuels/orbit/pkg/errors"
	"github.com/matzehuels/orbit/pkg/perm"
)

// Task is a finite-domain planning task reduced to what symmetry
// detection and state canonicalization consume.
type Task struct {
	// DomainSizes holds the number of values of each variable.
	DomainSizes []int

	// VariableNames optionally names variables for diagnostics.
	VariableNames []string

	// Init is the initial state. It may be nil when no discoverer needs it.
	Init perm.State

	// Goal is a partial assignment.
	Goal []perm.Fact
}

// NumVars returns the number of variables.
func (t *Task) NumVars() int { return len(t.DomainSizes) }

// Validate checks domain sizes, the initial state and the goal.
func (t *Task) Validate() error {
	if err := errors.ValidateDomainSizes(t.DomainSizes); err != nil {
		return err
	}
	if len(t.VariableNames) > 0 && len(t.VariableNames) != len(t.DomainSizes) {
		return errors.New(errors.ErrCodeInvalidInput,
			"%d variable names for %d variables", len(t.VariableNames), len(t.DomainSizes))
	}
	if t.Init != nil {
		if err := errors.ValidateState(t.DomainSizes, t.Init); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "initial state")
		}
	}
	for _, f := range t.Goal {
		if f.Var < 0 || f.Var >= len(t.DomainSizes) || f.Val < 0 || f.Val >= t.DomainSizes[f.Var] {
			return errors.New(errors.ErrCodeInvalidInput, "goal fact %s outside the task", f)
		}
	}
	return nil
}

// IndexSpace lays out the permutation index space of the task.
func (t *Task) IndexSpace() (*perm.IndexSpace, error) {
	return perm.NewIndexSpace(t.DomainSizes)
}

// Name returns the display name of variable v.
func (t *Task) Name(v int) string {
	if v < len(t.VariableNames) && t.VariableNames[v] != "" {
		return t.VariableNames[v]
	}
	return fmt.Sprintf("v%d", v)
}

// Hash returns a stable digest of everything that determines the task's
// symmetries. Variable names are excluded.
func (t *Task) Hash() string {
	var buf []byte
	put := func(xs ...int) {
		buf = binary.AppendUvarint(buf, uint64(len(xs)))
		for _, x := range xs {
			buf = binary.AppendVarint(buf, int64(x))
		}
	}
	put(t.DomainSizes...)
	put(t.Init...)
	goal := make([]int, 0, 2*len(t.Goal))
	for _, f := range t.Goal {
		goal = append(goal, f.Var, f.Val)
	}
	put(goal...)
	return cache.Hash(buf)
}
