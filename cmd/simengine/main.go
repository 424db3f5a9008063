// Command simengine boots the simulation engine service (spec §1, §8;
// SPEC_FULL §2.4).
package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/joeltio/simforge/internal/service"
)

// buildID is set by a linker flag, matching the teacher's gen.buildID.
var buildID = "dev"

type config struct {
	host string
	port int
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cfg config

	rootCmd := &cobra.Command{
		Use:   "simengine",
		Short: "simengine runs the simulation engine service",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cfg)
		},
	}

	rootCmd.Flags().StringVar(&cfg.host, "host", "", "listen host (overrides ENGINE_HOST)")
	rootCmd.Flags().IntVar(&cfg.port, "port", 0, "listen port (overrides ENGINE_PORT)")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("simengine version %s; %s", buildID, runtime.Version())
		},
	})

	return rootCmd
}

func run(cfg config) error {
	v := viper.New()
	v.SetEnvPrefix("")
	v.AutomaticEnv()
	v.SetDefault("ENGINE_HOST", "127.0.0.1")
	v.SetDefault("ENGINE_PORT", 7777)

	host := cfg.host
	if host == "" {
		host = v.GetString("ENGINE_HOST")
	}
	port := cfg.port
	if port == 0 {
		port = v.GetInt("ENGINE_PORT")
	}

	log, err := zap.NewProduction()
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	registry := service.NewRegistry(log)
	log.Info("simengine ready",
		zap.String("host", host),
		zap.Int("port", port),
		zap.String("build_id", buildID),
	)

	// No network listener is opened here: wiring EngineService to an actual
	// transport is out of scope (SPEC_FULL §8) — the registry is ready for
	// a future gRPC server to dispatch into.
	_ = registry
	select {}
}
