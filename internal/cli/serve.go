package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stylebox/internal/api"
	"github.com/matzehuels/stylebox/pkg/sprite"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr    string
	noCache bool
}

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the layout operations over HTTP",
		Long: `Start an HTTP server exposing convert, align, distribute and sprite.

Layout documents are posted as the request body. The server stops cleanly
on interrupt, finishing in-flight requests first.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", "", "listen address (default from config)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the sprite scan cache")

	return cmd
}

func (c *CLI) runServe(cmd *cobra.Command, opts serveOpts) error {
	ctx := cmd.Context()
	cfg := c.Config.Server
	addr := opts.addr
	if addr == "" {
		addr = cfg.Addr
	}

	store, err := c.newCache(ctx, opts.noCache)
	if err != nil {
		return fmt.Errorf("open cache: %w", err)
	}
	defer store.Close()

	scanner := sprite.NewScanner(store,
		sprite.WithKeyer(c.keyer()),
		sprite.WithTTL(c.Config.Cache.TTL.Duration),
		sprite.WithLogger(c.Logger),
	)
	srv := api.New(
		api.WithLogger(c.Logger),
		api.WithScanner(scanner),
		api.WithLayoutOptions(c.layoutOptions()...),
		api.WithMaxBodyBytes(cfg.MaxBodyBytes),
		api.WithTimeouts(cfg.ReadTimeout.Duration, cfg.WriteTimeout.Duration),
	)

	printSuccess("Listening on %s", StyleLink.Render(listenURL(addr)))
	printDetail("cache: %s", c.Config.Cache.Backend)
	if err := srv.ListenAndServe(ctx, addr); err != nil {
		return err
	}
	printInfo("Server stopped")
	return nil
}

// listenURL turns a listen address such as ":8080" into a browsable URL.
func listenURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		addr = "localhost" + addr
	}
	return "http://" + addr
}
