/*
Copyright © 2026 dgextractor authors
*/
package cmd

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"dgextractor/internal/pipeline"
	"dgextractor/internal/sample"
	"dgextractor/internal/store"
)

var scanDBPath string

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:   "scan DIR",
	Short: "Analyze every sample in a directory and store the results",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		dir := args[0]
		extractor, err := newExtractor()
		if err != nil {
			fmt.Printf("[!] %v", err)
			os.Exit(1)
		}
		repo, err := openRepository(scanDBPath)
		if err != nil {
			fmt.Printf("[!] %v", err)
			os.Exit(1)
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			fmt.Printf("[!] unable to read sample directory. %v", err)
			os.Exit(1)
		}

		ctx := cmd.Context()
		extracted := 0
		missed := 0
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			path := filepath.Join(dir, entry.Name())
			result, err := scanFile(ctx, extractor, repo, path)
			if err != nil {
				fmt.Printf("[!] %s: %v\n", path, err)
				missed++
				continue
			}
			if result.Status == store.StatusExtracted {
				fmt.Printf("[+] %s: configuration extracted\n", path)
				extracted++
			} else {
				fmt.Printf("[*] %s: %s\n", path, result.Status)
				missed++
			}
		}
		fmt.Printf("[*] Scan complete: %d extracted, %d without configuration\n", extracted, missed)
	},
}

// scanFile analyzes one sample and records the outcome keyed by content hash.
func scanFile(ctx context.Context, extractor *pipeline.Extractor, repo store.Repository, path string) (*store.Extraction, error) {
	content, release, err := sample.Load(path)
	if err != nil {
		return nil, err
	}
	defer release()

	digest := sha256.Sum256(content)
	extraction := &store.Extraction{
		SHA256:   hex.EncodeToString(digest[:]),
		Filename: filepath.Base(path),
	}

	report, err := extractor.Analyze(path, content)
	switch {
	case err == nil:
		extraction.Status = store.StatusExtracted
		extraction.Kind = report.Kind.String()
		if report.Key != nil {
			extraction.XorKey = fmt.Sprintf("0x%02x", report.Key.Value)
			extraction.KeySource = report.Key.Provenance.String()
		}
		configJSON, err := json.Marshal(report.Record.JSONObject())
		if err != nil {
			return nil, fmt.Errorf("unable to render configuration. %v", err)
		}
		extraction.ConfigJSON = string(configJSON)
	case errors.Is(err, pipeline.ErrNoPayload):
		extraction.Status = store.StatusNoPayload
	case errors.Is(err, pipeline.ErrNoStrings):
		extraction.Status = store.StatusNoStrings
	default:
		extraction.Status = store.StatusError
	}

	if err := repo.Save(ctx, extraction); err != nil {
		return nil, err
	}
	return extraction, nil
}

func init() {
	scanCmd.Flags().StringVar(&scanDBPath, "db", "", "Result database path")
	rootCmd.AddCommand(scanCmd)
}
