package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"puzzle-service/internal/config"
	"puzzle-service/internal/domain"
)

// NewAcquireCmd prints one acquired content unit as JSON.
func NewAcquireCmd(configPath *string) *cobra.Command {
	var kindFlag string
	cmd := &cobra.Command{
		Use:   "acquire",
		Short: "Acquire one puzzle content unit and print it as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := domain.ParseKind(kindFlag)
			if err != nil {
				return err
			}
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

			res := newProvider(cfg, b.kv).Try(cmd.Context(), kind)
			if res.Content == nil {
				return res.Err
			}
			out, err := json.MarshalIndent(struct {
				Source  string         `json:"source"`
				Error   string         `json:"error,omitempty"`
				Content domain.Content `json:"content"`
			}{Source: string(res.Source), Error: errString(res.Err), Content: res.Content}, "", "  ")
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return err
		},
	}
	cmd.Flags().StringVar(&kindFlag, "kind", "", "puzzle kind (matching, quiz, reveal, firstLetter, count, math)")
	_ = cmd.MarkFlagRequired("kind")
	return cmd
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
