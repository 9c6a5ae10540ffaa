package handlers

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/briteco/brief/internal/config"
	"github.com/briteco/brief/internal/logger"
	"github.com/briteco/brief/internal/research"
	"github.com/briteco/brief/internal/server"
	"github.com/spf13/cobra"
)

// NewServeCmd creates the serve command
func NewServeCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the newsletter API server",
		Long: `Start the JSON-over-HTTP API that fronts the newsletter pipeline:
research endpoints, section generation endpoints, and delivery endpoints
for email preview, Google Docs export, and Ontraport.

Example:
  brief serve --port 8080`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := config.Get()
			if port != 0 {
				cfg.Server.Port = port
			}

			provider, err := buildSearchProvider()
			if err != nil {
				return err
			}
			researchLLM, err := buildResearchLLM()
			if err != nil {
				return err
			}
			creativeLLM, err := buildCreativeLLM(ctx)
			if err != nil {
				return err
			}
			defer creativeLLM.Close()

			srv := server.New(cfg.Server, server.Dependencies{
				Searcher: research.NewSearcher(provider),
				Research: researchLLM,
				Creative: creativeLLM,
				Sender:   buildSender(),
				Exporter: buildExporter(ctx),
				CRM:      buildCRM(),
			})

			errCh := make(chan error, 1)
			go func() {
				errCh <- srv.Start()
			}()

			stop := make(chan os.Signal, 1)
			signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

			select {
			case err := <-errCh:
				return err
			case sig := <-stop:
				logger.Info("Received shutdown signal", "signal", sig.String())
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
				defer cancel()
				return srv.Shutdown(shutdownCtx)
			}
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "port to listen on (overrides config)")

	return cmd
}
