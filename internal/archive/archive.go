// Package archive shells out to 7z for the installer and cabinet formats the
// unwrapping pipeline encounters.
package archive

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

// Extractor extracts archive members into a destination directory and
// reports the resulting file paths.
type Extractor interface {
	Extract(archivePath, member, destDir string) ([]string, error)
}

// SevenZip runs the 7z binary. Member extraction is flat: nested paths
// inside the archive land directly in destDir.
type SevenZip struct {
	binary string
	log    *logrus.Logger
}

// NewSevenZip resolves the 7z binary. An empty binary path falls back to a
// PATH lookup.
func NewSevenZip(binary string, log *logrus.Logger) (*SevenZip, error) {
	if binary == "" {
		resolved, err := exec.LookPath("7z")
		if err != nil {
			return nil, fmt.Errorf("7z binary not found in PATH. %v", err)
		}
		binary = resolved
	}
	return &SevenZip{binary: binary, log: log}, nil
}

// Extract unpacks the archive into destDir. An empty member extracts
// everything. Returns the files present in destDir afterwards.
func (s *SevenZip) Extract(archivePath, member, destDir string) ([]string, error) {
	args := []string{"e", "-o" + destDir, archivePath}
	if member != "" {
		args = append(args, member)
	}

	out, err := exec.Command(s.binary, args...).CombinedOutput()
	if err != nil {
		return nil, fmt.Errorf("7z extraction failed. %v: %s", err, strings.TrimSpace(string(out)))
	}
	s.log.WithFields(logrus.Fields{
		"archive": archivePath,
		"dest":    destDir,
	}).Debug("Extracted archive contents")

	return listFiles(destDir)
}

func listFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("unable to list extracted files. %v", err)
	}
	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	return files, nil
}
