/*
Copyright © 2025 tieubaoca
*/
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/tieubaoca/pdf-ask/service"
	"github.com/tieubaoca/pdf-ask/types"
)

// askCmd represents the ask command
var askCmd = &cobra.Command{
	Use:   "ask",
	Short: "Send a message, and optionally a PDF, to the language model",
	Long: `Runs one request through the same pipeline as POST /info and prints the answer.
For example:

  pdf-ask ask -m "What is the total?" -f invoice.pdf`,
	RunE: func(cmd *cobra.Command, args []string) error {
		msg, _ := cmd.Flags().GetString("message")
		filePath, _ := cmd.Flags().GetString("file")

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		infoService, fileService, err := newInfoService(cfg)
		if err != nil {
			return err
		}

		extraction := types.Unavailable(nil)
		if filePath != "" {
			f, err := os.Open(filePath)
			if err != nil {
				return err
			}
			defer f.Close()

			uploaded, err := fileService.Save(filepath.Base(filePath), f)
			if err != nil {
				return err
			}
			if uploaded == nil {
				return fmt.Errorf("not a pdf file: %s", filePath)
			}
			extraction = infoService.ProcessDocument(uploaded.Path)
		}

		excerptChars, _ := cmd.Flags().GetInt("excerpt")
		if excerptChars <= 0 {
			excerptChars = cfg.Prompt.ExcerptChars
		}
		text, err := infoService.Generate(cmd.Context(), service.BuildPrompt(msg, extraction, excerptChars))
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), text)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(askCmd)
	askCmd.Flags().StringP("message", "m", "", "Message to send")
	askCmd.Flags().StringP("file", "f", "", "Optional PDF to add as context")
	askCmd.Flags().IntP("excerpt", "n", 0, "Override how many characters of the PDF reach the prompt")
}
