package main

import (
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/olsonco/calckit/internal/server"
	"github.com/olsonco/calckit/internal/tui"
	"github.com/spf13/cobra"
)

func serveCmd(a *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the calculators as a JSON HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.settings.Server
			if addr != "" {
				cfg.Address = addr
			}
			srv := server.New(cfg, server.NewHandler(a.logger, a.registry, version))

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return server.Run(ctx, srv, a.logger)
		},
	}
	cmd.Flags().StringVarP(&addr, "addr", "a", "", "listen address (default from config, :8080)")
	return cmd
}

func tuiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tui [slug]",
		Short: "Fill in a calculator interactively in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			slug := ""
			if len(args) > 0 {
				slug = args[0]
			}
			model, err := tui.NewModel(a.registry, slug)
			if err != nil {
				return err
			}
			p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			_, err = p.Run()
			return err
		},
	}
}
