package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// canonCommand creates the canon command for canonical representatives.
func (c *CLI) canonCommand() *cobra.Command {
	var (
		opts    loadOpts
		workers int
	)

	cmd := &cobra.Command{
		Use:   "canon [file] [state...]",
		Short: "Compute canonical representatives of states",
		Long: `Canon maps every state to the representative of its orbit and prints
the trace of generator indices that reaches it. Symmetric states share a
representative. States are written as comma-separated values, one per
variable.`,
		Example: `  orbit canon gripper.toml 0,1,1 1,0,1`,
		Args:    cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.loadGroup(cmd.Context(), args[0], opts)
			if err != nil {
				return err
			}
			states, err := parseStates(args[1:], s.group.Space())
			if err != nil {
				return err
			}

			results, err := s.group.CanonicalizeAll(cmd.Context(), states, workers)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			for i, r := range results {
				mark := StyleDim.Render("=")
				if !r.State.Equal(states[i]) {
					mark = StyleHighlight.Render(iconArrow)
				}
				fmt.Fprintf(w, "%s %s %s  %s\n",
					StyleValue.Render(states[i].String()), mark,
					StyleValue.Render(r.State.String()),
					StyleDim.Render(fmt.Sprintf("trace %v", []int(r.Trace))))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "parallel workers (default GOMAXPROCS)")
	addLoadFlags(cmd, &opts)

	return cmd
}
