package main

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/psidex/citygraph/internal/errors"
	"github.com/psidex/citygraph/internal/hub"
	"github.com/psidex/citygraph/internal/logger"
	"github.com/psidex/citygraph/internal/probe"
	"github.com/psidex/citygraph/internal/store"
	"github.com/psidex/citygraph/internal/watch"
	"github.com/psidex/citygraph/internal/webserver"
)

const storeCheckInterval = 15 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API, event websocket and gRPC health service",
	Long: `Serve the graph API and static frontend on server.address, stream store events
on /ws and report health over gRPC on server.grpc_address.

The import map is watched, so edits made outside citygraph reach websocket clients.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringP("addr", "b", "127.0.0.1:3000", "the ip:port to bind the webserver to")
	serveCmd.Flags().StringP("static", "d", "public", "the directory to serve static files from")
	serveCmd.Flags().String("grpc-addr", "127.0.0.1:50051", "the ip:port of the gRPC health service, empty to disable")
	commandFlags[serveCmd] = map[string]string{
		"server.address":      "addr",
		"server.static_dir":   "static",
		"server.grpc_address": "grpc-addr",
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	log := logger.Named("serve")

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	h := hub.New()
	st := openStore(store.WithNotifier(store.NotifierFunc(func(e store.Event) {
		log.Debugw("store event", "type", e.Type, "clients", h.Clients())
		h.Publish(e)
	})))
	if _, err := st.ImportMap(); err != nil {
		return errors.WithHintf(err, "check store.root (%s)", cfg.Store.Root)
	}

	srv := webserver.New(st, h, webserver.Options{
		StaticDir:       cfg.Server.StaticDir,
		SavePerMinute:   cfg.Limits.SavePerMinute,
		ImportPerMinute: cfg.Limits.ImportPerMinute,
		MaxUploadBytes:  cfg.Limits.MaxUploadMB << 20,
	})

	lis, err := net.Listen("tcp", cfg.Server.Address)
	if err != nil {
		return errors.Wrapf(err, "listen on %s", cfg.Server.Address)
	}

	var grpcLis net.Listener
	if cfg.Server.GRPCAddress != "" {
		if grpcLis, err = net.Listen("tcp", cfg.Server.GRPCAddress); err != nil {
			lis.Close()
			return errors.Wrapf(err, "listen on %s", cfg.Server.GRPCAddress)
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return srv.Serve(ctx, lis) })

	if grpcLis != nil {
		ps := probe.NewServer()
		g.Go(func() error { return ps.Serve(ctx, grpcLis) })
		g.Go(func() error {
			ps.Monitor(ctx, storeCheckInterval, func() error {
				_, err := st.ImportMap()
				return err
			})
			return nil
		})
	}

	if cfg.Watch.Enabled {
		w, err := watch.New(st.ImportMapPath(), h, cfg.Watch.Debounce)
		if err != nil {
			log.Warnw("import map watcher disabled", logger.FieldError, err)
		} else {
			g.Go(func() error { return w.Run(ctx) })
		}
	}

	log.Infow("citygraph started", "root", cfg.Store.Root, logger.FieldAddress, cfg.Server.Address)
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	log.Infow("citygraph stopped")
	return nil
}
