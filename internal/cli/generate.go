package cli

import (
	"fmt"
	"strings"

	"github.com/samvad-hq/barcodeapi-go/pkg/barcodeapi"
	"github.com/spf13/cobra"
)

func newGenerateCommand(rt *runtime) *cobra.Command {
	var (
		codeType string
		params   []string
		headers  []string
		out      string
	)
	cmd := &cobra.Command{
		Use:   "generate <data>",
		Short: "Render data as a barcode",
		Long: `Render data as a barcode image. The image is written to --out, or to
stdout when --out is not set. Extra rendering parameters are passed with
repeated --param key=value flags; a repeated key keeps the last value.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := &barcodeapi.GenerateOptions{}
			for _, p := range params {
				k, v, err := splitPair(p)
				if err != nil {
					return fmt.Errorf("--param: %w", err)
				}
				opts.Params.Set(k, v)
			}
			if len(headers) > 0 {
				opts.Headers = make(map[string]string, len(headers))
				for _, h := range headers {
					k, v, err := splitPair(h)
					if err != nil {
						return fmt.Errorf("--header: %w", err)
					}
					opts.Headers[k] = v
				}
			}

			img, err := rt.app.Client().Generate(cmd.Context(), args[0], codeType, opts)
			if err != nil {
				return err
			}
			if err := writeBinary(cmd.OutOrStdout(), out, img.Body); err != nil {
				return err
			}
			if out != "" {
				fmt.Fprintf(cmd.ErrOrStderr(), "wrote %d bytes (%s) to %s\n", len(img.Body), img.ContentType, out)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&codeType, "type", "t", barcodeapi.DefaultCodeType, "barcode type, e.g. qr, 128, ean13")
	cmd.Flags().StringArrayVarP(&params, "param", "p", nil, "extra query parameter as key=value (repeatable)")
	cmd.Flags().StringArrayVarP(&headers, "header", "H", nil, "extra request header as key=value (repeatable)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "file to write the image to")
	return cmd
}

func splitPair(s string) (string, string, error) {
	k, v, ok := strings.Cut(s, "=")
	k = strings.TrimSpace(k)
	if !ok || k == "" {
		return "", "", fmt.Errorf("expected key=value, got %q", s)
	}
	return k, v, nil
}
