package cli

import (
	"github.com/spf13/cobra"
)

func newMatchesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "matches",
		Short: "List open matches awaiting an opponent",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result OpenMatchList

			if err := client.Get("/api/matches", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
