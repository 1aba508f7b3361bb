// Package cli is the terminal storefront: browse, search and manage the cart
// against a QKart backend.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"QKart/internal/client"
	"QKart/internal/config"
	"QKart/internal/storefront"
	"QKart/pkg/kit"
)

var ValidFormats = []string{"text", "json"}

// RootOptions holds global flags and the resolved client config.
type RootOptions struct {
	ConfigPath string
	Endpoint   string
	Token      string
	Format     string
	Verbose    bool

	cfg config.Config
	log *zap.Logger
}

func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "storefront",
		Short:         "QKart storefront client",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.resolve()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.log != nil {
				_ = opts.log.Sync()
			}
		},
	}

	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "path to a YAML config file")
	cmd.PersistentFlags().StringVar(&opts.Endpoint, "endpoint", "", "backend base URL (overrides config)")
	cmd.PersistentFlags().StringVar(&opts.Token, "token", "", "session token (overrides QKART_TOKEN)")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (text|json)")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "debug logging")

	cmd.AddCommand(NewProductsCommand(opts))
	cmd.AddCommand(NewSearchCommand(opts))
	cmd.AddCommand(NewCartCommand(opts))
	cmd.AddCommand(NewAddCommand(opts))
	cmd.AddCommand(NewSetCommand(opts))
	cmd.AddCommand(NewLoginCommand(opts))

	return cmd
}

func (o *RootOptions) resolve() error {
	if !slices.Contains(ValidFormats, o.Format) {
		return fmt.Errorf("invalid format %q: must be one of %v", o.Format, ValidFormats)
	}

	cfg, err := config.Load(o.ConfigPath)
	if err != nil {
		return err
	}
	if o.Endpoint != "" {
		cfg.Endpoint = o.Endpoint
	}
	if o.Token != "" {
		cfg.Token = o.Token
	}
	if o.Verbose {
		cfg.LogLevel = "debug"
	}

	o.cfg = cfg
	o.log = kit.NewLoggerLevel("storefront", cfg.LogLevel)
	return nil
}

func (o *RootOptions) session() storefront.Session {
	return storefront.Session{Token: o.cfg.Token}
}

func (o *RootOptions) client() *client.Client {
	return client.New(o.cfg.Endpoint, o.cfg.RequestTimeout)
}

// open builds a storefront and runs the initial load. Load failures are
// reported on errOut; the storefront is still returned when the catalog
// came back, so callers can keep going with what loaded.
func (o *RootOptions) open(ctx context.Context, errOut io.Writer, sfCfg storefront.Config) (*storefront.Storefront, error) {
	sfCfg.Log = o.log
	if sfCfg.SearchDelay == 0 {
		sfCfg.SearchDelay = o.cfg.SearchDelay
	}

	sf := storefront.New(o.client(), o.session(), sfCfg)
	if err := sf.Load(ctx); err != nil {
		if errors.Is(err, storefront.ErrCatalogUnavailable) {
			sf.Close()
			return nil, err
		}
		fmt.Fprintln(errOut, "warning:", storefront.Message(err))
	}
	return sf, nil
}
