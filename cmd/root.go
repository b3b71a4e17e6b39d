// Package cmd defines and implements the CLI commands for the stockroom
// executable.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tmarbury/stockroom/internal/app"
	"github.com/tmarbury/stockroom/internal/config"
	"github.com/tmarbury/stockroom/internal/inventory"
)

var cfgFile string

// appKeyType is the key for storing the App in the context.
type appKeyType string

const appKey appKeyType = "app"

// App defines the application interface commands use. It allows injecting a
// mock app during tests.
type App interface {
	Close()
	Config() config.Config
	Logger() *zap.Logger
	Service() *inventory.Service
}

// newApp is the application factory. It is a variable so tests can replace
// it with a mock factory.
var newApp = func() (App, error) {
	return app.New(cfgFile)
}

// newRootCmd creates and configures the root command.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stockroom",
		Short: "An in-memory entity store with durable snapshots.",
		Long: `stockroom keeps a uniquely-keyed in-memory collection of inventory
items, groups them by category on demand, and persists the whole collection
to a human-readable snapshot file that survives between runs.`,

		// Build and inject the application before any subcommand runs.
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			appInstance, err := newApp()
			if err != nil {
				return fmt.Errorf("initialize application services: %w", err)
			}
			ctx := context.WithValue(cmd.Context(), appKey, appInstance)
			cmd.SetContext(ctx)
			return nil
		},

		// Shut services down after the subcommand finishes.
		PersistentPostRun: func(cmd *cobra.Command, _ []string) {
			if appInstance, ok := cmd.Context().Value(appKey).(App); ok && appInstance != nil {
				appInstance.Close()
			}
		},
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: built-in defaults plus STOCKROOM_* env)")

	cmd.AddCommand(newRunCmd())

	return cmd
}

// resolveApp retrieves the injected App from the command context.
func resolveApp(ctx context.Context) (App, error) {
	appInstance, ok := ctx.Value(appKey).(App)
	if !ok || appInstance == nil {
		return nil, fmt.Errorf("application services not initialized")
	}
	return appInstance, nil
}

// Execute is the main entry point.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
