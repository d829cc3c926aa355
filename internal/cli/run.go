package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/bsptile/pkg/control/httpapi"
	"github.com/matzehuels/bsptile/pkg/control/redisctl"
	"github.com/matzehuels/bsptile/pkg/engine"
	bsperrors "github.com/matzehuels/bsptile/pkg/errors"
	"github.com/matzehuels/bsptile/pkg/transport/lineproto"
)

// runOptions selects the adapters the run command starts.
type runOptions struct {
	noStdio      bool
	httpAddr     string
	redisURL     string
	redisChannel string
}

// runCommand creates the run command, the long-running layout generator.
func (c *CLI) runCommand() *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Serve layout requests and user commands",
		Long: `Serve layout requests and user commands.

By default requests are read line by line from stdin and answered on stdout:

  layout <windows> <width> <height> [<x> <y>]
  cmd <command>
  config

Commands may also arrive over HTTP (--http) and Redis pub/sub (--redis).
All sources feed one engine, so a command is visible to every layout
requested after it completes, whichever channel carried it.

The process exits when stdin is closed, unless another control channel is
active, in which case it runs until interrupted.`,
		Example: `  bsptile run --outer-gap 10 --inner-gap 5
  bsptile run --http 127.0.0.1:7575 --redis redis://localhost:6379/0
  echo "layout 3 1920 1080" | bsptile run`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.noStdio, "no-stdio", false, "do not read requests from stdin")
	cmd.Flags().StringVar(&opts.httpAddr, "http", "", "serve the HTTP control API on this address")
	cmd.Flags().StringVar(&opts.redisURL, "redis", "", "subscribe to commands on this Redis server (redis://host:port/db)")
	cmd.Flags().StringVar(&opts.redisChannel, "redis-channel", redisctl.DefaultChannel, "Redis channel carrying commands")

	return cmd
}

func (c *CLI) runServe(cmd *cobra.Command, opts runOptions) error {
	if opts.noStdio && opts.httpAddr == "" && opts.redisURL == "" {
		return bsperrors.New(bsperrors.ErrCodeInvalidRequest, "--no-stdio needs --http or --redis")
	}

	store, err := c.newStore(cmd.Flags())
	if err != nil {
		return err
	}
	c.Logger.Info("starting layout engine", "config", store.Snapshot())

	parent := cmd.Context()
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	e := engine.New(store, c.Logger)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return e.Run(gctx) })

	if opts.redisURL != "" {
		client, err := redisctl.Dial(ctx, opts.redisURL)
		if err != nil {
			cancel()
			_ = g.Wait()
			return err
		}
		defer client.Close()

		sub := &redisctl.Subscriber{Client: client, Channel: opts.redisChannel, Handler: e, Logger: c.Logger}
		g.Go(func() error { return sub.Run(gctx) })
	}

	if opts.httpAddr != "" {
		srv := httpapi.New(e, c.Logger)
		g.Go(func() error { return httpapi.ListenAndServe(gctx, opts.httpAddr, srv) })
	}

	if !opts.noStdio {
		onlyStdio := opts.httpAddr == "" && opts.redisURL == ""
		g.Go(func() error {
			srv := &lineproto.Server{Handler: e, Logger: c.Logger}
			if err := srv.Serve(gctx, cmd.InOrStdin(), cmd.OutOrStdout()); err != nil {
				return err
			}
			c.Logger.Debug("stdin closed")
			if onlyStdio {
				cancel()
			}
			return nil
		})
	}

	err = g.Wait()
	if errors.Is(err, context.Canceled) && parent.Err() == nil {
		return nil
	}
	return err
}
