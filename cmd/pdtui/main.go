package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/judahn02/Professional-Development/internal/auth"
	"github.com/judahn02/Professional-Development/internal/config"
	"github.com/judahn02/Professional-Development/internal/mirror"
	"github.com/judahn02/Professional-Development/internal/tui"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	verifier := auth.NewNonceVerifier(cfg.NonceSecret, cfg.NonceLifetime)
	client := mirror.NewClient(cfg.ServerURL, func() string {
		return verifier.Mint(auth.CapabilityManageSessions)
	})

	p := tea.NewProgram(
		tui.NewModel(client),
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
}
