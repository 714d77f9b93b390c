package cli

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	orbitio "github.com/matzehuels/orbit/pkg/io"
)

// inspectCommand creates the inspect command for group statistics.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		opts   loadOpts
		dump   bool
		asJSON bool
		export string
	)

	cmd := &cobra.Command{
		Use:   "inspect [file]",
		Short: "Print statistics of a task's symmetry group",
		Long: `Inspect loads a generator-set file, populates the symmetry group and
prints the number of generators, their orders and the classes of variables
that symmetries exchange. With --export the generators the group was
populated with, discovered or filtered, are written to a new generator file
that later runs can load as precomputed.`,
		Example: `  orbit inspect logistics.toml
  orbit inspect logistics.toml --dump
  orbit inspect logistics.toml --json
  orbit inspect logistics.toml --export frozen.toml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.loadGroup(cmd.Context(), args[0], opts)
			if err != nil {
				return err
			}
			g := s.group
			w := cmd.OutOrStdout()
			stats := g.Statistics()

			if export != "" {
				if err := exportGroup(s, export); err != nil {
					return err
				}
				if !asJSON {
					printFile(w, export)
				}
			}

			if asJSON {
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(struct {
					Statistics any     `json:"statistics"`
					Classes    [][]int `json:"variable_classes"`
				}{stats, g.VariableClasses()})
			}

			fmt.Fprintln(w, StyleTitle.Render("Symmetry group"))
			printGroupStats(w, stats.Generators, stats.Identities+stats.Invalid, stats.Exhausted)
			if stats.Exhausted {
				printWarning(w, "Discovery ran out of resources; search runs without symmetries")
			}
			if !g.HasSymmetries() {
				printInfo(w, "No symmetries")
				return nil
			}

			printKeyValue(w, "variables", strconv.Itoa(g.Space().NumVars()))
			printKeyValue(w, "length", strconv.Itoa(g.Space().Len()))
			for _, o := range stats.SortedOrders() {
				printKeyValue(w, "order "+strconv.Itoa(o), fmt.Sprintf("%d generators", stats.OrderHistogram[o]))
			}

			if classes := g.VariableClasses(); len(classes) > 0 {
				fmt.Fprintln(w)
				fmt.Fprintln(w, StyleTitle.Render("Symmetric variables"))
				for _, class := range classes {
					names := make([]string, len(class))
					for i, v := range class {
						names[i] = s.set.Task.Name(v)
					}
					printDetail(w, "%s", strings.Join(names, " "))
				}
			}

			if dump {
				fmt.Fprintln(w)
				return g.Dump(w)
			}
			fmt.Fprintln(w)
			printNextStep(w, "Render a generator", "orbit render "+args[0]+" --generator 0")
			return nil
		},
	}

	cmd.Flags().BoolVar(&dump, "dump", false, "print every generator in cycle notation")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print statistics as JSON")
	cmd.Flags().StringVar(&export, "export", "", "write the group's generators to this file")
	addLoadFlags(cmd, &opts)

	return cmd
}

// exportGroup writes the task of s together with the generators its group
// holds, so identities and invalid entries are gone.
func exportGroup(s *session, path string) error {
	gens := s.group.Generators()
	raws := make([][]int, len(gens))
	for i, p := range gens {
		raws[i] = p.Raw()
	}
	out := &orbitio.GeneratorSet{
		Space:      s.group.Space(),
		Generators: raws,
		Task:       s.set.Task,
	}
	if err := orbitio.SaveFile(path, out); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	return nil
}

// addLoadFlags registers the flags of loadOpts on cmd.
func addLoadFlags(cmd *cobra.Command, opts *loadOpts) {
	cmd.Flags().BoolVar(&opts.dropInvalid, "drop-invalid", false, "skip invalid precomputed generators instead of failing")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the discovery cache")
	cmd.ValidArgsFunction = completeTaskFile
}
