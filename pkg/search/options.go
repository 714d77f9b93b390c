package search

import (
	"github.com/matzehuels/orbit/pkg/errors"
)

// Options configures symmetry use in a search. The zero value is a valid
// configuration without symmetries.
type Options struct {
	Mode   Mode       `toml:"mode"`
	Source SourceKind `toml:"source"`

	// ReopenClosed lets the search reopen closed nodes when it finds a
	// cheaper path. Symmetry pruning does not support it.
	ReopenClosed bool `toml:"reopen_closed"`

	// PreferredOperators enables preferred-operator pruning in the search,
	// which canonical successors cannot be matched against.
	PreferredOperators bool `toml:"preferred_operators"`
}

// Validate checks the combination of options. All errors have code
// INVALID_CONFIG.
func (o Options) Validate() error {
	switch o.Mode {
	case ModeNone, ModeOSS, ModeDKS:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown search symmetry mode %s", o.Mode)
	}
	switch o.Source {
	case SourceNone, SourceDiscover, SourcePrecomputed:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown symmetry source %s", o.Source)
	}

	if o.Mode.Prunes() && o.Source == SourceNone {
		return errors.New(errors.ErrCodeInvalidConfig, "search symmetry mode %s needs a symmetry source", o.Mode)
	}
	if !o.Mode.Prunes() && o.Source != SourceNone {
		return errors.New(errors.ErrCodeInvalidConfig,
			"symmetries from %s given but search symmetry mode is %s", o.Source, o.Mode)
	}
	if o.Mode.Prunes() && o.ReopenClosed {
		return errors.New(errors.ErrCodeInvalidConfig, "reopening closed nodes is not supported with %s", o.Mode)
	}
	if o.Mode.Prunes() && o.PreferredOperators {
		return errors.New(errors.ErrCodeInvalidConfig, "preferred operators are not supported with %s", o.Mode)
	}
	return nil
}
