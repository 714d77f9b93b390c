package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/orbit/pkg/errors"
)

// renderCommand creates the render command for drawing a generator.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		opts      loadOpts
		generator int
		output    string
		dot       bool
	)

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a generator's cycle structure as SVG",
		Long: `Render draws one generator of the symmetry group with Graphviz. Every
moved variable and fact becomes a node, connected to its image.`,
		Example: `  orbit render gripper.toml --generator 0 -o gen0.svg

  # Print DOT instead of SVG
  orbit render gripper.toml --dot`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.loadGroup(cmd.Context(), args[0], opts)
			if err != nil {
				return err
			}
			g := s.group
			if generator < 0 || generator >= g.NumGenerators() {
				return errors.New(errors.ErrCodeInvalidInput,
					"generator %d out of range, group has %d generators", generator, g.NumGenerators())
			}
			p := g.Generator(generator)
			names := s.set.Task.VariableNames

			var data []byte
			if dot {
				data = []byte(p.ToDOT(names))
			} else {
				data, err = p.RenderSVG(names)
				if err != nil {
					return fmt.Errorf("render: %w", err)
				}
			}

			if err := writeFile(cmd.OutOrStdout(), data, output); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			if output != "" {
				w := cmd.OutOrStdout()
				printSuccess(w, "Generator %d rendered", generator)
				printKeyValue(w, "cycles", p.CycleNotation())
				printKeyValue(w, "order", fmt.Sprintf("%d", p.Order()))
				printFile(w, output)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&generator, "generator", "g", 0, "index of the generator to render")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().BoolVar(&dot, "dot", false, "write Graphviz DOT instead of SVG")
	addLoadFlags(cmd, &opts)

	return cmd
}

// writeFile writes data to path, or to w when path is empty.
func writeFile(w io.Writer, data []byte, path string) error {
	if path == "" {
		_, err := w.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
