// Package sample loads analysis inputs, memory-mapping them when possible.
package sample

import (
	"fmt"
	"os"

	"github.com/edsrzf/mmap-go"
)

// Load returns the file content plus a release function that must be called
// once the content is no longer referenced. Samples are memory-mapped;
// mapping failures (empty files, exotic filesystems) fall back to a plain
// read with a no-op release.
func Load(path string) ([]byte, func() error, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("unable to open sample. %v", err)
	}

	mapped, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, nil, fmt.Errorf("unable to read sample. %v", err)
		}
		return content, func() error { return nil }, nil
	}

	release := func() error {
		if err := mapped.Unmap(); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	}
	return mapped, release, nil
}
