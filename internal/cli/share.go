package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newShareCommand(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "share",
		Short: "Create, fetch and list shares of barcode requests",
	}

	create := &cobra.Command{
		Use:   "create <request>...",
		Short: "Store request URIs such as /api/qr/hello and print the share key",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := rt.app.CreateShare(cmd.Context(), args)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), key)
			return err
		},
	}

	get := &cobra.Command{
		Use:   "get <key>",
		Short: "Fetch a share",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := rt.app.Client().Share(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), rt.output(), raw)
		},
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List shares created from this machine that have not expired",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			shares, err := rt.app.Shares()
			if err != nil {
				return fmt.Errorf("read share history: %w", err)
			}
			if shares == nil {
				return printValue(cmd.OutOrStdout(), rt.output(), []any{})
			}
			return printValue(cmd.OutOrStdout(), rt.output(), shares)
		},
	}

	forget := &cobra.Command{
		Use:   "forget <key>",
		Short: "Remove a share from the local history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return rt.app.ForgetShare(args[0])
		},
	}

	cmd.AddCommand(create, get, list, forget)
	return cmd
}
