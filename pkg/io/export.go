package io

import (
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/orbit/pkg/errors"
)

// WriteGenerators encodes set as a generator-set file and writes it to w.
// Index tables are fully determined by the domain sizes and are not
// written.
func WriteGenerators(w io.Writer, set *GeneratorSet) error {
	if set == nil || set.Space == nil {
		return errors.New(errors.ErrCodeInvalidInput, "generator set without an index space")
	}
	sizes := set.Space.DomainSizes()
	f := file{
		Variables:   set.Space.NumVars(),
		DomainSizes: sizes,
		Generators:  set.Generators,
	}
	if f.Generators == nil {
		f.Generators = [][]int{}
	}
	if t := set.Task; t != nil {
		f.VariableNames = slices.Clone(t.VariableNames)
		if t.Init != nil {
			f.Init = slices.Clone([]int(t.Init))
		}
		for _, g := range t.Goal {
			f.Goal = append(f.Goal, []int{g.Var, g.Val})
		}
	}

	if err := toml.NewEncoder(w).Encode(f); err != nil {
		return fmt.Errorf("encode generator file: %w", err)
	}
	return nil
}

// SaveFile writes set to path, replacing any existing file.
func SaveFile(path string, set *GeneratorSet) error {
	fh, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteGenerators(fh, set); err != nil {
		fh.Close()
		return err
	}
	return fh.Close()
}
