package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// exploreCommand creates the explore command, an interactive generator
// browser.
func (c *CLI) exploreCommand() *cobra.Command {
	var (
		opts   loadOpts
		output string
	)

	cmd := &cobra.Command{
		Use:   "explore [file]",
		Short: "Browse generators interactively",
		Long: `Explore lists the generators of the symmetry group with their orders and
the variables they move. Selecting a generator prints it in cycle notation
and, with -o, renders it to an SVG file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.loadGroup(cmd.Context(), args[0], opts)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()

			m := NewGeneratorListModel(s.group.Generators(), s.set.Task.Name)
			final, err := tea.NewProgram(m, tea.WithContext(cmd.Context())).Run()
			if err != nil {
				return err
			}
			fm, ok := final.(GeneratorListModel)
			if !ok || fm.Selected < 0 {
				printDetail(w, "No selection made")
				return nil
			}

			p := s.group.Generator(fm.Selected)
			printSuccess(w, "Generator %d", fm.Selected)
			printKeyValue(w, "cycles", p.CycleNotation())
			printKeyValue(w, "order", fmt.Sprintf("%d", p.Order()))
			if output == "" {
				return nil
			}
			svg, err := p.RenderSVG(s.set.Task.VariableNames)
			if err != nil {
				return fmt.Errorf("render: %w", err)
			}
			if err := writeFile(w, svg, output); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			printFile(w, output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "render the selected generator to this SVG file")
	addLoadFlags(cmd, &opts)

	return cmd
}
