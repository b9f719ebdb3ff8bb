package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/rekins/garage/internal/db"
	"github.com/rekins/garage/internal/digest"
	"github.com/rekins/garage/internal/notify"
	"github.com/rekins/garage/internal/server"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var (
		configPath string
		port       int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the Garage API server",
		Long:  "Connects to the database, runs migrations, and serves the JSON API until interrupted.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, configPath, port)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to Garage config file")
	cmd.Flags().IntVarP(&port, "port", "p", 0, "port to listen on (overrides config)")
	return cmd
}

func runServe(cmd *cobra.Command, configPath string, port int) error {
	out := cmd.OutOrStdout()

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if port == 0 {
		port = cfg.Server.Port
	}

	gormDB, err := db.Connect(cfg.DB)
	if err != nil {
		return err
	}
	if err := db.AutoMigrate(gormDB); err != nil {
		return err
	}

	notifier, err := notify.FromConfig(cfg.Notify)
	if err != nil {
		return err
	}
	defer notifier.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		fmt.Fprintf(out, "\nReceived %s, shutting down...\n", sig)
		cancel()
	}()

	if cfg.Digest.Enabled {
		runner, err := digest.New(gormDB, notifier, cfg.Digest.Schedule)
		if err != nil {
			return err
		}
		go func() {
			if err := runner.Run(ctx); err != nil && err != context.Canceled {
				log.Printf("digest stopped: %v", err)
			}
		}()
		fmt.Fprintf(out, "Daily digest scheduled (%s)\n", cfg.Digest.Schedule)
	}

	return server.Start(ctx, server.StartOpts{
		DB:          gormDB,
		Port:        port,
		ShopName:    cfg.Shop.Name,
		Notifier:    notifier,
		Out:         out,
		LogRequests: true,
	})
}
