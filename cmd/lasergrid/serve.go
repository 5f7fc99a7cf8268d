package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/lasergrid/internal/platform/tui"
	"github.com/vovakirdan/lasergrid/internal/spectate"
)

var (
	flagSSHAddr      string
	flagHostKey      string
	flagIdleTimeout  int
	flagSpectateAddr string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the LaserGrid SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own session with a level picker.
Clears are stored per-server (all users share the same leaderboard).

With --spectate, an HTTP server lists running sessions and streams their
screens over WebSocket:
  GET /sessions             - running sessions as JSON
  GET /sessions/{id}/watch  - WebSocket stream of frames

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.lasergrid/host_key

Examples:
  lasergrid serve                           # Listen on :23234 with auto-generated key
  lasergrid serve --ssh :2222               # Listen on port 2222
  lasergrid serve --spectate :8080          # Also serve spectators
  lasergrid serve --host-key ./my_host_key  # Use specific host key

Users can connect with:
  ssh localhost -p 23234`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().StringVar(&flagSpectateAddr, "spectate", "", "Spectator HTTP address (disabled when empty)")
}

func runServe(_ *cobra.Command, _ []string) {
	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		DBPath:      flagDBPath,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		TickRate:    flagFPS,
		UnlockAll:   flagUnlockAll,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if flagSpectateAddr != "" {
		hub := spectate.NewHub()
		cfg.Spectators = hub

		logger := log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "lasergrid-spectate",
		})
		srv := spectate.NewServer(hub, logger)
		go func() {
			if err := srv.ListenAndServe(ctx, flagSpectateAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("spectator server stopped", "error", err)
			}
		}()
		fmt.Printf("Spectators: http://localhost%s/sessions\n", flagSpectateAddr)
	}

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting LaserGrid SSH server on %s\n", cfg.Address)
	fmt.Printf("Connect with: ssh localhost -p %s\n", portOf(cfg.Address))
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}

// portOf returns the port part of a host:port address.
func portOf(addr string) string {
	for i := len(addr) - 1; i >= 0; i-- {
		if addr[i] == ':' {
			return addr[i+1:]
		}
	}
	return addr
}
