/*
Copyright © 2026 dgextractor authors
*/
package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"dgextractor/internal/store"
)

var listDBPath string

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list [SHA256]",
	Short: "Show stored extraction results",
	Long: `Show the extraction results recorded by the scan and watch commands, newest
first. With a SHA256 argument, show the full result for that sample instead,
including its extracted configuration.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		repo, err := openRepository(listDBPath)
		if err != nil {
			fmt.Printf("[!] %v", err)
			os.Exit(1)
		}
		ctx := cmd.Context()

		if len(args) == 1 {
			extraction, err := repo.FindBySHA256(ctx, args[0])
			if errors.Is(err, gorm.ErrRecordNotFound) {
				fmt.Printf("[!] no result stored for sample %s", args[0])
				os.Exit(1)
			}
			if err != nil {
				fmt.Printf("[!] unable to load result. %v", err)
				os.Exit(1)
			}
			printExtraction(extraction)
			return
		}

		extractions, err := repo.List(ctx)
		if err != nil {
			fmt.Printf("[!] %v", err)
			os.Exit(1)
		}
		for _, extraction := range extractions {
			fmt.Printf("[*] %s  %s  %-12s %s\n",
				extraction.CreatedAt.Format(time.RFC3339), extraction.SHA256, extraction.Status, extraction.Filename)
		}
		extracted, err := repo.CountByStatus(ctx, store.StatusExtracted)
		if err != nil {
			fmt.Printf("[!] %v", err)
			os.Exit(1)
		}
		fmt.Printf("[*] %d results, %d with extracted configuration\n", len(extractions), extracted)
	},
}

func printExtraction(extraction *store.Extraction) {
	fmt.Printf("[*] Sample: %s\n", extraction.SHA256)
	fmt.Printf("[*] File: %s\n", extraction.Filename)
	fmt.Printf("[*] First Seen: %s\n", extraction.CreatedAt.Format(time.RFC3339))
	fmt.Printf("[*] Status: %s\n", extraction.Status)
	if extraction.Kind != "" {
		fmt.Printf("[*] Container Format: %s\n", extraction.Kind)
	}
	if extraction.XorKey != "" {
		fmt.Printf("[*] XOR Key: %s (%s)\n", extraction.XorKey, extraction.KeySource)
	}
	if extraction.ConfigJSON != "" {
		fmt.Println(extraction.ConfigJSON)
	}
}

func init() {
	listCmd.Flags().StringVar(&listDBPath, "db", "", "Result database path")
	rootCmd.AddCommand(listCmd)
}
