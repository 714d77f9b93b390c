package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/orbit/pkg/search"
	"github.com/matzehuels/orbit/pkg/store"
)

// dedupeCommand creates the dedupe command, which closes states the way a
// symmetry-pruning search does.
func (c *CLI) dedupeCommand() *cobra.Command {
	var (
		opts     loadOpts
		mode     string
		storeDir string
	)

	cmd := &cobra.Command{
		Use:   "dedupe [file] [state...]",
		Short: "Detect symmetric duplicates among states",
		Long: `Dedupe inserts the states in order into a closed list, as a search
closes the states it expands. Under dks each state is stored by its
canonical representative, under oss the state is canonicalized first. A
state whose key is already closed is reported as a duplicate.

With --store the closed list lives in a BadgerDB directory and persists
across runs.`,
		Example: `  orbit dedupe gripper.toml 0,1,1 1,0,1 1,1,0
  orbit dedupe gripper.toml --mode none 0,1,1 1,0,1
  orbit dedupe gripper.toml --store ./closed 0,1,1`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			s, err := c.loadGroup(ctx, args[0], opts)
			if err != nil {
				return err
			}
			states, err := parseStates(args[1:], s.group.Space())
			if err != nil {
				return err
			}

			searchOpts := s.cfg.Search
			if mode != "" {
				if searchOpts.Mode, err = search.ParseMode(mode); err != nil {
					return err
				}
				switch {
				case !searchOpts.Mode.Prunes():
					searchOpts.Source = search.SourceNone
				case searchOpts.Source == search.SourceNone:
					searchOpts.Source = search.SourcePrecomputed
				}
			}
			pruner, err := search.NewPruner(searchOpts, s.group)
			if err != nil {
				return err
			}

			var closed search.ClosedList
			if storeDir != "" {
				closed, err = store.OpenClosedList(store.Options{Dir: storeDir, Logger: logger})
			} else {
				closed = search.NewMemoryClosedList()
			}
			if err != nil {
				return err
			}
			defer closed.Close()

			w := cmd.OutOrStdout()
			duplicates := 0
			for _, st := range states {
				if err := ctx.Err(); err != nil {
					return err
				}
				succ := pruner.Successor(st)
				inserted, err := pruner.CloseState(closed, succ)
				if err != nil {
					return err
				}
				key := succ
				if pruner.Active() && pruner.Mode() == search.ModeDKS {
					key = s.group.CanonicalRepresentative(succ)
				}
				if inserted {
					printSuccess(w, "%s  %s", st, StyleDim.Render("key "+key.String()))
					continue
				}
				duplicates++
				printWarning(w, "%s duplicate of key %s", st, key)
			}

			fmt.Fprintln(w)
			printKeyValue(w, "mode", pruner.Mode().String())
			printKeyValue(w, "closed", fmt.Sprintf("%d", closed.Len()))
			printKeyValue(w, "duplicates", fmt.Sprintf("%d", duplicates))
			if !pruner.Active() && searchOpts.Mode.Prunes() {
				printDetail(w, "group has no symmetries, nothing pruned")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&mode, "mode", "m", "", "symmetry mode: none, oss or dks (default from config)")
	cmd.Flags().StringVar(&storeDir, "store", "", "keep the closed list in this BadgerDB directory")
	_ = cmd.RegisterFlagCompletionFunc("mode", completeMode)
	_ = cmd.MarkFlagDirname("store")
	addLoadFlags(cmd, &opts)

	return cmd
}
