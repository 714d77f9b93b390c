package search

import (
	"fmt"
	"strings"

	"github.com/matzehuels/orbit/pkg/errors"
)

// Mode selects how search uses symmetries.
type Mode int

const (
	// ModeNone disables symmetry pruning.
	ModeNone Mode = iota

	// ModeOSS (orbit search) replaces every generated state by its canonical
	// representative, so only canonical states are ever stored. Plans are
	// recovered with Pruner.Reconstruct.
	ModeOSS

	// ModeDKS (duplicate-known-symmetries) stores concrete states but keys
	// duplicate detection by canonical representative.
	ModeDKS
)

var modeNames = [...]string{
	ModeNone: "none",
	ModeOSS:  "oss",
	ModeDKS:  "dks",
}

// String returns the lowercase name of m.
func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeNames[m]
}

// Prunes reports whether m uses symmetries at all.
func (m Mode) Prunes() bool {
	switch m {
	case ModeOSS, ModeDKS:
		return true
	default:
		return false
	}
}

// ParseMode parses a mode name, case-insensitively. Besides the names
// returned by String it accepts "nosearchsymmetries" for ModeNone.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none", "nosearchsymmetries", "":
		return ModeNone, nil
	case "oss":
		return ModeOSS, nil
	case "dks":
		return ModeDKS, nil
	}
	return ModeNone, errors.New(errors.ErrCodeInvalidConfig, "unknown search symmetry mode %q (want none, oss or dks)", s)
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(b []byte) error {
	v, err := ParseMode(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// SourceKind names where the symmetry group comes from.
type SourceKind int

const (
	SourceNone SourceKind = iota
	SourceDiscover
	SourcePrecomputed
)

var sourceNames = [...]string{
	SourceNone:        "none",
	SourceDiscover:    "discover",
	SourcePrecomputed: "precomputed",
}

func (k SourceKind) String() string {
	if k < 0 || int(k) >= len(sourceNames) {
		return fmt.Sprintf("SourceKind(%d)", int(k))
	}
	return sourceNames[k]
}

// ParseSourceKind parses a source kind name.
func ParseSourceKind(s string) (SourceKind, error) {
	for k, name := range sourceNames {
		if strings.EqualFold(strings.TrimSpace(s), name) {
			return SourceKind(k), nil
		}
	}
	if strings.TrimSpace(s) == "" {
		return SourceNone, nil
	}
	return SourceNone, errors.New(errors.ErrCodeInvalidConfig, "unknown symmetry source %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (k SourceKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *SourceKind) UnmarshalText(b []byte) error {
	v, err := ParseSourceKind(string(b))
	if err != nil {
		return err
	}
	*k = v
	return nil
}
