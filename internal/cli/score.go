package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"puzzle-service/internal/config"
	"puzzle-service/internal/score"
)

// NewScoreCmd prints the persisted total for a user.
func NewScoreCmd(configPath *string) *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Print the persisted score of a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			setupLogging(cfg.Log.Level)

			b, err := openBackend(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer b.Close()

			ledger := score.NewLedger(b.kv)
			total := ledger.LoadFor(cmd.Context(), name)
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\n", ledger.User(), total)
			return err
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "user name")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}
