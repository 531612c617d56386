package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/tasklist-app/tasklist/config"
	"github.com/tasklist-app/tasklist/internal/server"
)

var (
	flagDebug  bool
	flagDBPath string
	flagPort   int
)

// rootCmd represents the base command: it runs the web server.
var rootCmd = &cobra.Command{
	Use:   "tasklist",
	Short: "Runs the tasklist web server",
	Long: `Runs the tasklist web server. Usage:

	tasklist [--debug] [--db tasks.db] [--port 8080]

Configuration is read from the environment (DATABASE_PATH, SECRET_KEY,
SERVER_PORT, DEBUG, TEMPLATE_DIR); flags take precedence.`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := applyFlags(cmd, config.LoadConfig())
		setupLogging(cfg.Debug)

		srv, err := server.New(cmd.Context(), cfg)
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		if err := srv.Start(cmd.Context()); err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	},
}

// Execute runs the root command until it returns or the process receives
// SIGINT or SIGTERM.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolVar(&flagDebug, "debug", false, "enable debug logging and template reloading")
	rootCmd.Flags().StringVar(&flagDBPath, "db", "", "path to the SQLite database file")
	rootCmd.Flags().IntVarP(&flagPort, "port", "p", 0, "port to listen on")
}

// applyFlags overrides cfg with any flags set on the command line.
func applyFlags(cmd *cobra.Command, cfg config.Config) config.Config {
	flags := cmd.Flags()
	if flags.Changed("debug") {
		cfg.Debug = flagDebug
	}
	if flags.Changed("db") {
		cfg.Database.Path = flagDBPath
	}
	if flags.Changed("port") {
		cfg.ServerPort = flagPort
	}
	return cfg
}

func setupLogging(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}
