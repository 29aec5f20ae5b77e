/*
Copyright © 2026 dgextractor authors
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"dgextractor/internal/sample"
)

var (
	inputFilePath  string
	outputFilePath string
)

// unpackCmd represents the unpack command
var unpackCmd = &cobra.Command{
	Use:   "unpack",
	Short: "Unpack the decrypted PE payload embedded in a sample",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("[*] Input File: %s\n", inputFilePath)
		content, release, err := sample.Load(inputFilePath)
		if err != nil {
			fmt.Printf("[!] unable to read input file. %v", err)
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

		err = os.WriteFile(outputFilePath, report.Payload, os.ModePerm)
		if err != nil {
			fmt.Printf("[!] unable to unpack payload to file. %v", err)
			os.Exit(1)
		}
		fmt.Printf("[+] Extraction Successful! Output written to: %s\n", outputFilePath)
	},
}

func init() {
	unpackCmd.Flags().StringVar(&inputFilePath, "input", "", "Input File Path")
	unpackCmd.Flags().StringVar(&outputFilePath, "output", "", "Output File Path")
	rootCmd.AddCommand(unpackCmd)
}
