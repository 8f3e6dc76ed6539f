package cli

import (
	"fmt"

	"github.com/samvad-hq/barcodeapi-go/pkg/barcodeapi"
	"github.com/spf13/cobra"
)

// sourceArg maps a file argument to a byte source; "-" reads stdin.
func sourceArg(cmd *cobra.Command, arg string) barcodeapi.Source {
	if arg == "-" {
		return barcodeapi.Reader(cmd.InOrStdin())
	}
	return barcodeapi.File(arg)
}

func newDecodeCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "decode <image|->",
		Short: "Read the barcode in an image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := rt.app.Client().Decode(cmd.Context(), sourceArg(cmd, args[0]))
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), rt.output(), result.Raw)
		},
	}
}

func newBulkCommand(rt *runtime) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "bulk <csv|->",
		Short: "Generate many barcodes from a CSV file",
		Long: `Upload a CSV file describing many barcodes and save the archive the
service returns to --out, or stream it to stdout.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			archive, err := rt.app.Client().BulkGenerate(cmd.Context(), sourceArg(cmd, args[0]))
			if err != nil {
				return err
			}
			if err := writeBinary(cmd.OutOrStdout(), out, archive); err != nil {
				return err
			}
			if out != "" {
				fmt.Fprintf(cmd.ErrOrStderr(), "wrote %d bytes to %s\n", len(archive), out)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "file to write the archive to")
	return cmd
}
