package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/abhisek/examgen/internal/examgen"
	"github.com/abhisek/examgen/internal/export"
	"github.com/abhisek/examgen/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the exam generator web app",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := buildDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		cfg := web.ConfigFromEnv()
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Addr = addr
		}
		if secure, _ := cmd.Flags().GetBool("secure-cookie"); secure {
			cfg.SecureCookie = true
		}
		cfg.Timeout = d.timeout()
		cfg.PreferredModel = d.cfg.PreferredModel
		cfg.FallbackModel = d.cfg.Model()
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid server config: %w", err)
		}

		pdfOpts := export.DefaultOptions()
		if font, _ := cmd.Flags().GetString("font"); font != "" {
			pdfOpts.FontPath = font
		}

		if !d.logger.Enabled(context.Background(), slog.LevelDebug) {
			gin.SetMode(gin.ReleaseMode)
		}

		srv := web.New(cfg, web.Options{
			Providers: d.factory,
			Exam:      examgen.DefaultConfig(),
			PDF:       pdfOpts,
			Logger:    d.logger,
		})

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		d.logger.Info("serving", "addr", cfg.Addr, "provider", d.cfg.Provider, "server_key", d.factory.HasServerKey())
		return srv.Run(ctx)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides EXAMGEN_ADDR, default :8501)")
	serveCmd.Flags().String("font", "", "TTF font for PDF export; needed for Japanese explanations")
	serveCmd.Flags().Bool("secure-cookie", false, "Mark the session cookie Secure (behind TLS)")
}
