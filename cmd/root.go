/*
Copyright © 2026 dgextractor authors
*/
package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"dgextractor/internal/archive"
	"dgextractor/internal/au3"
	"dgextractor/internal/detect"
	"dgextractor/internal/pipeline"
	"dgextractor/internal/settings"
	"dgextractor/internal/sniff"
	"dgextractor/internal/store"
	"dgextractor/internal/unwrap"
)

var (
	configPath string
	debugMode  bool

	cfg settings.Settings
	log *logrus.Logger
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "dgextractor",
	Short: "Recovers the embedded configuration from DarkGate malware samples",
	Long: `Recovers the embedded runtime configuration from DarkGate malware samples,
including samples nested inside their delivery containers:

* MSI installers built with MSI Wrapper (www.exemsi.com)
* Microsoft cabinet archives
* compiled AutoIt v3 scripts`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := settings.Load(configPath)
		if err != nil {
			return err
		}
		if debugMode {
			loaded.Log.Level = "debug"
		}
		cfg = loaded
		log = settings.NewLogger(cfg.Log, os.Stderr)
		log.Info("Starting DarkGate configuration extractor")
		return nil
	},
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Settings file path")
	rootCmd.PersistentFlags().BoolVarP(&debugMode, "debug", "d", false, "Provide debug log output")
}

// newExtractor wires the analysis pipeline from the loaded settings.
func newExtractor() (*pipeline.Extractor, error) {
	classifier := sniff.Mimetype{}
	sevenZip, err := archive.NewSevenZip(cfg.SevenZipPath, log)
	if err != nil {
		return nil, err
	}
	detector := detect.New(classifier)
	unwrapper := unwrap.New(detector, classifier, sevenZip, cfg.MaxUnwrapHops, log)
	return pipeline.New(unwrapper, au3.NewDecoder(log), log), nil
}

// openRepository opens the result database, preferring an explicit --db
// override over the configured path.
func openRepository(override string) (store.Repository, error) {
	path := cfg.DatabasePath
	if override != "" {
		path = override
	}
	db, err := store.Open(path, log)
	if err != nil {
		return nil, err
	}
	return store.NewRepository(db, log), nil
}
