package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nikmy/timebot/internal/locations"
	"github.com/nikmy/timebot/internal/translate"
	"github.com/nikmy/timebot/pkg/errors"
)

var (
	translateFrom    string
	translateAccount string
)

var translateCmd = &cobra.Command{
	Use:   "translate <HH:mm>",
	Short: "Translate a time of day into every location of an account",
	Example: `  timebot translate 09:00 --from America/New_York
  timebot translate 18:30 --from Europe/Minsk --account team1`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := setup()
		if err != nil {
			return err
		}
		defer log.Sync()

		store, closeStore, err := openStore(cmd.Context(), cfg, log)
		if err != nil {
			return err
		}
		defer closeStore()

		set, err := store.Load(cmd.Context(), translateAccount)
		if err != nil {
			return errors.WrapFailf(err, "load locations of %q", translateAccount)
		}

		results, err := translate.New().Translate(args[0], translateFrom, set.Targets())
		if err != nil {
			return errors.WrapFail(err, "translate")
		}

		for _, r := range results {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", r.Label, r.Time)
		}
		return nil
	},
}

func init() {
	translateCmd.Flags().StringVar(&translateFrom, "from", "UTC", "source timezone")
	translateCmd.Flags().StringVar(&translateAccount, "account", locations.DefaultAccount, "account whose locations to use")
}
