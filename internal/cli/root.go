package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/samvad-hq/barcodeapi-go/internal/app"
	"github.com/samvad-hq/barcodeapi-go/internal/config"
	"github.com/samvad-hq/barcodeapi-go/internal/logger"
	"github.com/samvad-hq/barcodeapi-go/pkg/barcodeapi"
	"github.com/spf13/cobra"
)

// runtime is the state shared by the commands of one invocation.
type runtime struct {
	extra []barcodeapi.Option
	app   *app.App
}

func (rt *runtime) init(cmd *cobra.Command) error {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log, err := logger.Init(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	logger.DebugObj("barcodeapi starting", "config", cfg.Summary())

	a, err := app.New(cfg, log, rt.extra...)
	if err != nil {
		logger.ErrorObj("failed to initialize app", "error", err)
		return err
	}
	rt.app = a
	return nil
}

// output is the configured rendering format for JSON results.
func (rt *runtime) output() string {
	return rt.app.Config().Output
}

func (rt *runtime) close() {
	if rt.app != nil {
		_ = rt.app.Close()
		rt.app = nil
	}
	_ = logger.Close()
}

func newRootCommand(rt *runtime) *cobra.Command {
	root := &cobra.Command{
		Use:   "barcodeapi",
		Short: "Command line client for the barcodeapi.org service",
		Long: `Generate and decode barcodes through a barcodeapi.org compatible server.

Every flag can also be set through a BARCODEAPI_* environment variable
(for example BARCODEAPI_TOKEN) or a .env file in the working directory.

Examples:
  barcodeapi generate "hello world" --type qr --out hello.png
  barcodeapi decode hello.png
  barcodeapi share create /api/qr/a /api/128/b`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return rt.init(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.String("base-url", barcodeapi.DefaultBaseURL, "root URL of the barcode service")
	flags.String("token", "", "API token sent as \"Authorization: Token=<token>\"")
	flags.Int("timeout", 30, "request timeout in seconds")
	flags.String("log-level", "warn", "log level (debug, info, warn, error)")
	flags.String("output", config.OutputJSON, "output format for JSON results (json, yaml)")
	flags.String("share-store", "bbolt", "local share history backend (bbolt, none)")
	flags.String("share-db", "", "path of the share history database")

	root.AddCommand(
		newGenerateCommand(rt),
		newDecodeCommand(rt),
		newBulkCommand(rt),
		newInfoCommand(rt),
		newTypesCommand(rt),
		newTypeCommand(rt),
		newLimiterCommand(rt),
		newSessionCommand(rt),
		newShareCommand(rt),
	)
	return root
}

// Execute runs the CLI with args and releases its resources afterwards.
// Extra client options are applied last, which lets tests inject a transport.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer, extra ...barcodeapi.Option) error {
	rt := &runtime{extra: extra}
	defer rt.close()

	root := newRootCommand(rt)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return root.ExecuteContext(ctx)
}
