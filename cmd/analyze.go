/*
Copyright © 2026 dgextractor authors
*/
package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"dgextractor/internal/sample"
)

var includeStrings bool

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze FILE",
	Short: "Extract the configuration from a DarkGate sample",
	Long: `Extract the embedded runtime configuration from a DarkGate sample and print
it as JSON. The sample may be a raw PE payload, a compiled AutoIt script or
an MSI/CAB delivery container.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		inputFilePath := args[0]
		content, release, err := sample.Load(inputFilePath)
		if err != nil {
			fmt.Printf("[!] %v", err)
			os.Exit(1)
		}
		defer release()

		extractor, err := newExtractor()
		if err != nil {
			fmt.Printf("[!] %v", err)
			os.Exit(1)
		}
		report, err := extractor.Analyze(inputFilePath, content)
		if err != nil {
			fmt.Printf("[!] %v", err)
			os.Exit(1)
		}

		result := report.Record.JSONObject()
		if includeStrings {
			result["strings"] = report.Strings
		}
		output, err := json.MarshalIndent(result, "", "    ")
		if err != nil {
			fmt.Printf("[!] unable to render configuration. %v", err)
			os.Exit(1)
		}
		fmt.Println(string(output))
	},
}

func init() {
	analyzeCmd.Flags().BoolVarP(&includeStrings, "strings", "s", false, "Output decrypted strings")
	rootCmd.AddCommand(analyzeCmd)
}
