/*
Copyright © 2025 tieubaoca
*/
package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/tieubaoca/pdf-ask/config"
	"github.com/tieubaoca/pdf-ask/logger"
	"github.com/tieubaoca/pdf-ask/service"
	"github.com/tieubaoca/pdf-ask/types"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pdf-ask",
	Short: "Ask a language model about a message and an optional PDF",
	Long: `pdf-ask accepts a text message plus an optional PDF, extracts text from the PDF,
appends an excerpt of it to the message and forwards the result to a remote
language model.

Run "pdf-ask start" to serve the HTTP API.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (yaml, optional)")
}

// loadConfig reads configuration and sets up logging; every command starts here.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(cfgFile)
	if err != nil {
		return nil, err
	}
	logger.Init(cfg.LogLevel)
	return cfg, nil
}

func newPDFService(cfg *config.Config) *service.PDFService {
	return service.NewPDFService(types.DocumentServiceConfig{
		MaxChunkSize: cfg.Chunking.Size,
		OverlapSize:  cfg.Chunking.Overlap,
		Separator:    cfg.Chunking.Separator,
	})
}

func newInfoService(cfg *config.Config) (*service.InfoService, *service.FileService, error) {
	fileService, err := service.NewFileService(cfg.UploadDir)
	if err != nil {
		return nil, nil, err
	}
	aiService, err := service.NewAIService(cfg.LLM)
	if err != nil {
		return nil, nil, err
	}
	infoService := service.NewInfoService(
		fileService,
		newPDFService(cfg),
		aiService,
		service.WithExcerptChars(cfg.Prompt.ExcerptChars),
		service.WithTimeout(cfg.LLM.Timeout),
	)
	return infoService, fileService, nil
}
