package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	osignal "os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/aretw0/rhizome"
	"github.com/aretw0/rhizome/internal/config"
	"github.com/aretw0/rhizome/internal/logging"
	httpAdapter "github.com/aretw0/rhizome/pkg/adapters/http"
	redisAdapter "github.com/aretw0/rhizome/pkg/adapters/redis"
	"github.com/aretw0/rhizome/pkg/observability"
	"github.com/aretw0/rhizome/pkg/ports"
	"github.com/aretw0/rhizome/pkg/signal"
	"github.com/aretw0/rhizome/pkg/substance"
	"github.com/aretw0/rhizome/pkg/topology"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a substance tree",
	Long:  `Loads the topology file, starts one cycle loop per substance and serves the introspection API. The first interrupt requests a graceful handshake shutdown; a second interrupt kills the tree.`,
	Run: func(cmd *cobra.Command, args []string) {
		path, _ := cmd.Flags().GetString("topology")
		if !cmd.Flags().Changed("topology") && len(args) > 0 {
			path = args[0]
		}
		if err := runTree(path); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	// Make 'run' the default if no command is provided.
	rootCmd.Run = runCmd.Run
}

func runTree(path string) error {
	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logger := logging.New(level)

	ctx := context.Background()
	subs, err := topology.NewLoader(path, nil).Load(ctx)
	if err != nil {
		return err
	}

	sys := rhizome.New(
		rhizome.WithLogger(logger),
		rhizome.WithObserver(observability.NewRecorder()),
	)
	for _, sub := range subs {
		if sub.Domain() != nil {
			continue
		}
		if err := sys.Add(sub); err != nil {
			return err
		}
	}

	if cfg.RedisAddr != "" {
		store := redisAdapter.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		defer store.Close()
		recordMirrors(sys, store, logger)
		logger.Info("mirror store attached", "addr", cfg.RedisAddr)
	}

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: httpAdapter.NewHandler(sys, nil, logger),
	}
	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("introspection server listening", "addr", srv.Addr)
		serverErrors <- srv.ListenAndServe()
	}()

	runDone := make(chan error, 1)
	go func() { runDone <- sys.Run(ctx) }()

	interrupt := make(chan os.Signal, 2)
	osignal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	for {
		select {
		case err := <-serverErrors:
			_ = sys.Kill()
			<-runDone
			return fmt.Errorf("introspection server: %w", err)

		case sig := <-interrupt:
			logger.Info("interrupt received", "signal", sig.String())
			if err := sys.Shutdown(); err != nil {
				logger.Error("graceful shutdown failed, killing", "err", err)
				_ = sys.Kill()
			}
			// A second interrupt skips the handshake.
			go func() {
				<-interrupt
				logger.Warn("second interrupt, killing tree")
				_ = sys.Kill()
			}()

		case err := <-runDone:
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if srvErr := srv.Shutdown(shutdownCtx); srvErr != nil {
				_ = srv.Close()
			}
			return err
		}
	}
}

// recordMirrors persists mirrored state reaching each tree root.
// Record failures are logged, not fatal; a lagging store must not stop
// the tree.
func recordMirrors(sys *rhizome.System, store ports.MirrorStore, logger *slog.Logger) {
	for _, root := range sys.Roots() {
		root.Handle(signal.KindMirror, func(ctx context.Context, s *substance.Substance, sig *signal.Signal) error {
			value, _ := sig.Get(signal.FieldValue)
			if err := store.Record(ctx, sig.Src(), sig.GetString(signal.FieldKey), value); err != nil {
				logger.Error("mirror record failed", "src", sig.Src(), "err", err)
			}
			return nil
		})
	}
}
