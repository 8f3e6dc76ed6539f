package cli

import (
	"context"
	"encoding/json"

	"github.com/spf13/cobra"
)

// jsonCommand builds a command that prints the JSON document fetched by call.
func jsonCommand(rt *runtime, use, short string, call func(ctx context.Context) (json.RawMessage, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			raw, err := call(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), rt.output(), raw)
		},
	}
}

func newInfoCommand(rt *runtime) *cobra.Command {
	return jsonCommand(rt, "info", "Show server information", func(ctx context.Context) (json.RawMessage, error) {
		return rt.app.Client().Info(ctx)
	})
}

func newTypesCommand(rt *runtime) *cobra.Command {
	return jsonCommand(rt, "types", "List supported barcode types", func(ctx context.Context) (json.RawMessage, error) {
		return rt.app.Client().Types(ctx)
	})
}

func newLimiterCommand(rt *runtime) *cobra.Command {
	return jsonCommand(rt, "limiter", "Show the rate limit state of this client", func(ctx context.Context) (json.RawMessage, error) {
		return rt.app.Client().Limiter(ctx)
	})
}

func newTypeCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "type <name>",
		Short: "Show the details of one barcode type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := rt.app.Client().Type(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), rt.output(), raw)
		},
	}
}

func newSessionCommand(rt *runtime) *cobra.Command {
	var del bool
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Show or delete the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if del {
				ok, err := rt.app.Client().DeleteSession(cmd.Context())
				if err != nil {
					return err
				}
				return printValue(cmd.OutOrStdout(), rt.output(), map[string]bool{"deleted": ok})
			}
			raw, err := rt.app.Client().Session(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), rt.output(), raw)
		},
	}
	cmd.Flags().BoolVar(&del, "delete", false, "delete the session instead of showing it")
	return cmd
}
