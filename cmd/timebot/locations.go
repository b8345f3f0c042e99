package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/nikmy/timebot/internal/locations"
	"github.com/nikmy/timebot/pkg/errors"
)

var locationsCmd = &cobra.Command{
	Use:   "locations",
	Short: "Manage location sets of accounts",
}

var locationsListCmd = &cobra.Command{
	Use:   "list [account]",
	Short: "Print the locations of an account, or all accounts",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, func(store *locations.Store) error {
			if len(args) == 1 {
				set, err := store.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				printSet(cmd.OutOrStdout(), set)
				return nil
			}

			accounts, err := store.Accounts(cmd.Context())
			if err != nil {
				return err
			}
			for _, account := range accounts {
				fmt.Fprintln(cmd.OutOrStdout(), account)
			}
			return nil
		})
	},
}

var locationsAddCmd = &cobra.Command{
	Use:   "add <account> <label> <timezone>",
	Short: "Add a location to an account or change its timezone",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, func(store *locations.Store) error {
			set, err := store.AddLocation(cmd.Context(), args[0], args[1], args[2])
			if err != nil {
				return err
			}
			printSet(cmd.OutOrStdout(), set)
			return nil
		})
	},
}

var locationsDeleteCmd = &cobra.Command{
	Use:   "delete <account> <label>",
	Short: "Remove a location from an account",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, func(store *locations.Store) error {
			set, err := store.DeleteLocation(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			printSet(cmd.OutOrStdout(), set)
			return nil
		})
	},
}

func init() {
	locationsCmd.AddCommand(locationsListCmd, locationsAddCmd, locationsDeleteCmd)
}

func withStore(cmd *cobra.Command, do func(store *locations.Store) error) error {
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

	return errors.WrapFailf(do(store), "%s", cmd.CommandPath())
}

func printSet(w io.Writer, set locations.Set) {
	for _, l := range set {
		fmt.Fprintf(w, "%s\t%s\n", l.Label, l.Zone)
	}
}
