/*
Copyright © 2025 tieubaoca
*/
package cmd

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/tieubaoca/pdf-ask/handler"
	"github.com/tieubaoca/pdf-ask/logger"
)

// startServerCmd represents the startServer command
var startServerCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the HTTP server",
	Long:  `Starts a server that answers messages, optionally enriched with an uploaded PDF`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if debug, _ := cmd.Flags().GetBool("debug"); !debug {
			gin.SetMode(gin.ReleaseMode)
		}

		infoService, fileService, err := newInfoService(cfg)
		if err != nil {
			return err
		}

		router := handler.NewRouter(handler.RouterConfig{
			InfoService:    infoService,
			FileService:    fileService,
			MaxUploadBytes: cfg.MaxUploadBytes,
			UploadsToken:   cfg.UploadsToken,
			ExposeErrors:   cfg.ExposeErrors,
			Provider:       cfg.LLM.Provider,
			Model:          cfg.LLM.Model,
		})

		srv := &http.Server{
			Addr:    cfg.Addr(),
			Handler: router,
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			logger.WithFields(logrus.Fields{
				"addr":       cfg.Addr(),
				"provider":   cfg.LLM.Provider,
				"model":      cfg.LLM.Model,
				"upload_dir": cfg.UploadDir,
			}).Info("Starting server")
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		logger.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownGrace)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	},
}

func init() {
	rootCmd.AddCommand(startServerCmd)
	startServerCmd.Flags().Bool("debug", false, "run gin in debug mode")
}
