/*
Copyright © 2025 tieubaoca
*/
package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tieubaoca/pdf-ask/service"
	"github.com/tieubaoca/pdf-ask/utils"
)

// extractDocumentCmd represents the extractDocument command
var extractDocumentCmd = &cobra.Command{
	Use:   "extract-document",
	Short: "Extract text from a PDF and report how it chunks",
	Long: `Runs the same extraction and chunking the server applies to uploads,
without calling the language model. For example:

  pdf-ask extract-document -f report.pdf -n 300`,
	RunE: func(cmd *cobra.Command, args []string) error {
		filePath, _ := cmd.Flags().GetString("file")
		excerptChars, _ := cmd.Flags().GetInt("excerpt")
		if filePath == "" {
			return fmt.Errorf("--file is required")
		}
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return extractOne(cmd.OutOrStdout(), newPDFService(cfg), filePath, excerptChars)
	},
}

// batchExtractCmd represents the batchExtract command
var batchExtractCmd = &cobra.Command{
	Use:   "batch-extract",
	Short: "Extract text from every PDF in a directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		directory, _ := cmd.Flags().GetString("directory")
		if directory == "" {
			return fmt.Errorf("--directory is required")
		}
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		pdfService := newPDFService(cfg)

		// read all pdf files in the directory
		files, err := os.ReadDir(directory)
		if err != nil {
			return fmt.Errorf("failed to read directory: %w", err)
		}
		for _, file := range files {
			if file.IsDir() || !utils.AllowedFile(file.Name(), "pdf") {
				continue
			}
			if err := extractOne(cmd.OutOrStdout(), pdfService, filepath.Join(directory, file.Name()), 0); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", file.Name(), err)
			}
		}
		return nil
	},
}

func extractOne(w io.Writer, pdfService *service.PDFService, filePath string, excerptChars int) error {
	extraction := pdfService.ExtractText(filePath)
	if !extraction.Available() {
		return fmt.Errorf("no text extracted: %w", extraction.Reason)
	}
	chunks := pdfService.SplitText(extraction.Text)
	fmt.Fprintf(w, "%s: %d characters, %d chunks\n", filePath, len([]rune(extraction.Text)), len(chunks))
	if excerptChars > 0 {
		fmt.Fprintln(w, strings.TrimSpace(service.BuildPrompt("", extraction, excerptChars)))
	}
	return nil
}

func init() {
	rootCmd.AddCommand(extractDocumentCmd)
	rootCmd.AddCommand(batchExtractCmd)

	extractDocumentCmd.Flags().StringP("file", "f", "", "Path to the PDF file")
	extractDocumentCmd.Flags().IntP("excerpt", "n", service.DefaultExcerptChars, "Characters of text to print, 0 to print none")
	batchExtractCmd.Flags().StringP("directory", "d", "", "Directory holding the PDF files")
}
