package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/orbit/pkg/errors"
)

// mapCommand creates the map command for state-to-state permutations.
func (c *CLI) mapCommand() *cobra.Command {
	var (
		opts     loadOpts
		from, to string
	)

	cmd := &cobra.Command{
		Use:   "map [file] --from STATE --to STATE",
		Short: "Find the permutation mapping one state onto a symmetric one",
		Long: `Map composes the traces of both states into a permutation that takes
--from onto --to. The states must share a canonical representative; two
states of one orbit whose greedy canonical forms differ are reported as
unmapped.`,
		Example: `  orbit map gripper.toml --from 0,1,1 --to 1,0,1`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.loadGroup(cmd.Context(), args[0], opts)
			if err != nil {
				return err
			}
			src, err := parseState(from, s.group.Space())
			if err != nil {
				return err
			}
			dst, err := parseState(to, s.group.Space())
			if err != nil {
				return err
			}

			// Greedy canonical forms can differ inside one orbit; a failed
			// mapping does not prove the states asymmetric.
			p := s.group.PermutationBetween(src, dst)
			if !p.Apply(src).Equal(dst) {
				return errors.New(errors.ErrCodeInvalidInput,
					"states %s and %s do not share a canonical representative", src, dst)
			}

			w := cmd.OutOrStdout()
			printSuccess(w, "%s %s %s", src, iconArrow, dst)
			printKeyValue(w, "permutation", p.CycleNotation())
			for _, m := range p.Moves() {
				printDetail(w, "%s=%d %s %s=%d",
					s.set.Task.Name(m.From.Var), m.From.Val, iconArrow, s.set.Task.Name(m.To.Var), m.To.Val)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "source state (required)")
	cmd.Flags().StringVar(&to, "to", "", "target state (required)")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	addLoadFlags(cmd, &opts)

	return cmd
}
