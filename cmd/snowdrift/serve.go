package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/snowdrift/internal/config"
	"github.com/vovakirdan/snowdrift/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the snowdrift SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own session with the world menu.
Progress is stored per server, so all users share completed levels.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.snowdrift/host_key

Examples:
  snowdrift serve                           # Listen on :23234 with auto-generated key
  snowdrift serve --ssh :2222               # Listen on port 2222
  snowdrift serve --host-key ./my_host_key  # Use specific host key
  snowdrift serve --db ./snowdrift.db       # Use specific database

Users can connect with:
  ssh localhost -p 23234`,
	RunE: runServe,
}

func init() {
	def := tui.DefaultSSHServerConfig()
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", def.Address, "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", int(def.IdleTimeout/time.Minute), "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) error {
	conf := loadConfig()

	cfg := tui.SSHServerConfig{
		Address:      flagSSHAddr,
		HostKeyPath:  config.ExpandHome(flagHostKey),
		DBPath:       flagDBPath,
		IdleTimeout:  time.Duration(flagIdleTimeout) * time.Minute,
		TickRate:     conf.Play.TickRate,
		HistoryLimit: conf.Play.HistoryLimit,
	}
	if flagFPS > 0 {
		cfg.TickRate = flagFPS
	}

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	fmt.Printf("Starting snowdrift SSH server on %s\n", cfg.Address)
	fmt.Println("Press Ctrl+C to stop")

	return server.ListenAndServe()
}
