package cmd

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/tasklist-app/tasklist/config"
)

func newTestCommand() *cobra.Command {
	c := &cobra.Command{Use: "tasklist"}
	c.Flags().BoolVar(&flagDebug, "debug", false, "")
	c.Flags().StringVar(&flagDBPath, "db", "", "")
	c.Flags().IntVarP(&flagPort, "port", "p", 0, "")
	return c
}

func TestApplyFlagsOverridesConfig(t *testing.T) {
	c := newTestCommand()
	if err := c.ParseFlags([]string{"--debug", "--db", "/tmp/x.db", "-p", "5000"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}

	cfg := applyFlags(c, config.Config{
		ServerPort: 8080,
		Database:   config.DatabaseConfig{Path: "tasks.db"},
	})

	if !cfg.Debug {
		t.Fatalf("expected debug from flag")
	}
	if cfg.Database.Path != "/tmp/x.db" {
		t.Fatalf("unexpected db path %q", cfg.Database.Path)
	}
	if cfg.ServerPort != 5000 {
		t.Fatalf("unexpected port %d", cfg.ServerPort)
	}
}

func TestApplyFlagsKeepsConfigWhenUnset(t *testing.T) {
	c := newTestCommand()
	if err := c.ParseFlags(nil); err != nil {
		t.Fatalf("parse flags: %v", err)
	}

	in := config.Config{
		ServerPort: 9090,
		Debug:      true,
		Database:   config.DatabaseConfig{Path: "env.db"},
	}
	cfg := applyFlags(c, in)

	if cfg != in {
		t.Fatalf("expected config untouched, got %+v", cfg)
	}
}

func TestRootCommandRejectsArguments(t *testing.T) {
	if err := rootCmd.Args(rootCmd, []string{"serve"}); err == nil {
		t.Fatalf("expected positional arguments to be rejected")
	}
	if len(rootCmd.Commands()) != 0 {
		t.Fatalf("expected no subcommands, got %d", len(rootCmd.Commands()))
	}
}
