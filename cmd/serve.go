package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/KaramelBytes/hotelscope/internal/analysis"
	"github.com/KaramelBytes/hotelscope/internal/server"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the explorer as a JSON HTTP API",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ex, err := openExplorer(cmd.Context())
		if err != nil {
			return err
		}
		cat, num, err := analysis.ResolveVariables(cfg.DefaultCategorical, cfg.DefaultNumerical)
		if err != nil {
			return err
		}
		addr := serveAddr
		if addr == "" {
			addr = cfg.ServeAddr
		}
		if !debug {
			gin.SetMode(gin.ReleaseMode)
		}
		srv := server.New(ex, server.Config{Categorical: cat, Numerical: num, Debug: debug})

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
		defer stop()
		success(cmd.OutOrStdout(), "Serving %d bookings on %s", ex.Dataset().Len(), addr)
		if err := srv.Run(ctx, addr); err != nil {
			return err
		}
		success(cmd.OutOrStdout(), "Server stopped")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config, :8080)")
}
