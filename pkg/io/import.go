package io

import (
	stderrors "errors"
	"io"
	"io/fs"
	"os"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/orbit/pkg/errors"
	"github.com/matzehuels/orbit/pkg/perm"
	"github.com/matzehuels/orbit/pkg/task"
)

// GeneratorSet is the content of a generator-set file.
type GeneratorSet struct {
	Space      *perm.IndexSpace
	Generators [][]int

	// Task carries domain sizes, names, and the optional initial state and
	// goal. Task.Init is nil when the file has no init.
	Task *task.Task
}

type file struct {
	Variables     int      `toml:"variables"`
	DomainSizes   []int    `toml:"domain_sizes"`
	VariableNames []string `toml:"variable_names,omitempty"`
	DomSumByVar   []int    `toml:"dom_sum_by_var,omitempty"`
	VarByVal      []int    `toml:"var_by_val,omitempty"`
	Generators    [][]int  `toml:"generators"`
	Init          []int    `toml:"init,omitempty"`
	Goal          [][]int  `toml:"goal,omitempty"`
}

// ReadGenerators decodes a generator-set file from r.
//
// Errors have code INVALID_FORMAT for malformed TOML or unknown keys,
// INVALID_INDEX_SPACE for inconsistent index tables, and INVALID_INPUT for
// an initial state or goal outside the task. ReadGenerators does not close r.
func ReadGenerators(r io.Reader) (*GeneratorSet, error) {
	var f file
	md, err := toml.NewDecoder(r).Decode(&f)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode generator file")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown keys: %s", strings.Join(keys, ", "))
	}
	return f.toSet(md)
}

func (f *file) toSet(md toml.MetaData) (*GeneratorSet, error) {
	if !md.IsDefined("variables") {
		f.Variables = len(f.DomainSizes)
	}
	if f.Variables != len(f.DomainSizes) {
		return nil, errors.New(errors.ErrCodeInvalidFormat,
			"variables = %d but domain_sizes has %d entries", f.Variables, len(f.DomainSizes))
	}

	var space *perm.IndexSpace
	var err error
	if f.DomSumByVar != nil || f.VarByVal != nil {
		space, err = perm.IndexSpaceFromTables(f.Variables, f.DomSumByVar, f.VarByVal)
		if err != nil {
			return nil, err
		}
		if !slices.Equal(space.DomainSizes(), f.DomainSizes) {
			return nil, errors.New(errors.ErrCodeInvalidIndexSpace,
				"index tables give domain sizes %v, file says %v", space.DomainSizes(), f.DomainSizes)
		}
	} else {
		space, err = perm.NewIndexSpace(f.DomainSizes)
		if err != nil {
			return nil, err
		}
	}

	t := &task.Task{
		DomainSizes:   f.DomainSizes,
		VariableNames: f.VariableNames,
	}
	if f.Init != nil {
		t.Init = perm.State(f.Init)
	}
	for i, pair := range f.Goal {
		if len(pair) != 2 {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "goal entry %d: want [variable, value], got %v", i, pair)
		}
		t.Goal = append(t.Goal, perm.Fact{Var: pair[0], Val: pair[1]})
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}

	return &GeneratorSet{
		Space:      space,
		Generators: f.Generators,
		Task:       t,
	}, nil
}

// LoadFile reads the generator-set file at path.
// A missing file is reported with code FILE_NOT_FOUND.
func LoadFile(path string) (*GeneratorSet, error) {
	fh, err := os.Open(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer fh.Close()

	set, err := ReadGenerators(fh)
	if err != nil {
		return nil, errors.Wrap(errors.GetCode(err), err, "%s", path)
	}
	return set, nil
}
