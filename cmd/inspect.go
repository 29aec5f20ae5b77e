/*
Copyright © 2026 dgextractor authors
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"dgextractor/internal/peinfo"
	"dgextractor/internal/sample"
)

// inspectCmd represents the inspect command
var inspectCmd = &cobra.Command{
	Use:   "inspect FILE",
	Short: "Identify the container chain and key material of a sample",
	Long: `Identify how a sample wraps its DarkGate payload and show the recovered key
material and payload header facts without printing the configuration.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		inputFilePath := args[0]
		fmt.Printf("[*] Input file: %s\n", inputFilePath)
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

		fmt.Printf("[*] Container Format: %s\n", report.Kind)
		if report.Key != nil {
			fmt.Printf("[*] XOR Key: 0x%02x (%s)\n", report.Key.Value, report.Key.Provenance)
		}
		fmt.Printf("[*] Alphabet Candidates: %d\n", len(report.Alphabets))
		fmt.Printf("[*] Decoded Strings: %d\n", len(report.Strings))

		summary, err := peinfo.Summarize(report.Payload)
		if err != nil {
			fmt.Printf("[!] %v", err)
			os.Exit(1)
		}
		fmt.Printf("%s", summary)
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
