// Package unwrap strips installer and cabinet layers until a compiled script
// or bare executable remains.
package unwrap

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"dgextractor/internal/archive"
	"dgextractor/internal/detect"
	"dgextractor/internal/sniff"
)

// wrappedSetupMember is the MSI stream the wrapper tool stores the real
// installer under.
const wrappedSetupMember = "Binary.bz.WrappedSetupProgram"

// DefaultMaxHops bounds container recursion. MSI into CAB into AU3 is the
// deepest chain seen in the wild.
const DefaultMaxHops = 4

type Unwrapper struct {
	detector   *detect.Detector
	classifier sniff.Classifier
	extractor  archive.Extractor
	maxHops    int
	log        *logrus.Logger
}

func New(detector *detect.Detector, classifier sniff.Classifier, extractor archive.Extractor, maxHops int, log *logrus.Logger) *Unwrapper {
	if maxHops <= 0 {
		maxHops = DefaultMaxHops
	}
	return &Unwrapper{
		detector:   detector,
		classifier: classifier,
		extractor:  extractor,
		maxHops:    maxHops,
		log:        log,
	}
}

// Unwrap peels container layers off content, re-classifying after every hop,
// and returns the innermost payload together with its container kind.
func (u *Unwrapper) Unwrap(content []byte) ([]byte, detect.ContainerKind, error) {
	for hop := 0; hop <= u.maxHops; hop++ {
		kind := u.detector.Detect(content)
		switch kind {
		case detect.PortableExecutable:
			u.log.Info("PE file detected, potentially a DarkGate sample")
			return content, kind, nil
		case detect.CompiledScript:
			u.log.Info("Compiled AutoIt script detected, searching for embedded DarkGate payload")
			return content, kind, nil
		case detect.Unknown:
			return nil, detect.Unknown, errors.New("unrecognized container format")
		}
		if hop == u.maxHops {
			break
		}

		var err error
		if kind == detect.InstallerWrapped {
			u.log.Info("MSI wrapped payload detected")
			content, err = u.unpackInstaller(content)
		} else {
			u.log.Info("CAB file wrapped payload detected")
			content, err = u.unpackCabinet(content)
		}
		if err != nil {
			return nil, detect.Unknown, err
		}
	}
	return nil, detect.Unknown, fmt.Errorf("container nesting exceeds %d hops", u.maxHops)
}

// unpackInstaller pulls the wrapped setup program out of the MSI, unpacks
// that in turn, and returns the first extracted file that sniffs as a
// cabinet archive.
func (u *Unwrapper) unpackInstaller(content []byte) ([]byte, error) {
	tmpDir, err := os.MkdirTemp("", "dgextractor-msi-")
	if err != nil {
		return nil, fmt.Errorf("unable to create staging directory. %v", err)
	}
	defer os.RemoveAll(tmpDir)

	archivePath := filepath.Join(tmpDir, "sample.msi")
	if err := os.WriteFile(archivePath, content, 0o600); err != nil {
		return nil, fmt.Errorf("unable to stage MSI sample. %v", err)
	}
	outDir := filepath.Join(tmpDir, "out")
	if err := os.Mkdir(outDir, 0o700); err != nil {
		return nil, fmt.Errorf("unable to create staging directory. %v", err)
	}

	if _, err := u.extractor.Extract(archivePath, wrappedSetupMember, outDir); err != nil {
		return nil, fmt.Errorf("unpacking of MSI file failed. %v", err)
	}
	files, err := u.extractor.Extract(filepath.Join(outDir, wrappedSetupMember), "", outDir)
	if err != nil {
		return nil, fmt.Errorf("unpacking of MSI file failed. %v", err)
	}

	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("unable to read extracted file. %v", err)
		}
		if strings.Contains(u.classifier.Classify(data), "application/vnd.ms-cab-compressed") {
			return data, nil
		}
	}
	return nil, errors.New("no CAB member found inside MSI wrapper")
}

// unpackCabinet extracts every cabinet member and returns the first one
// carrying the AutoIt magic.
func (u *Unwrapper) unpackCabinet(content []byte) ([]byte, error) {
	tmpDir, err := os.MkdirTemp("", "dgextractor-cab-")
	if err != nil {
		return nil, fmt.Errorf("unable to create staging directory. %v", err)
	}
	defer os.RemoveAll(tmpDir)

	archivePath := filepath.Join(tmpDir, "sample.cab")
	if err := os.WriteFile(archivePath, content, 0o600); err != nil {
		return nil, fmt.Errorf("unable to stage CAB sample. %v", err)
	}
	outDir := filepath.Join(tmpDir, "out")
	if err := os.Mkdir(outDir, 0o700); err != nil {
		return nil, fmt.Errorf("unable to create staging directory. %v", err)
	}

	files, err := u.extractor.Extract(archivePath, "", outDir)
	if err != nil {
		return nil, fmt.Errorf("unpacking of CAB file failed. %v", err)
	}

	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("unable to read extracted file. %v", err)
		}
		if bytes.Contains(data, detect.AU3Magic) {
			u.log.WithField("file", filepath.Base(file)).Info("Found AU3 script in CAB archive")
			return data, nil
		}
	}
	return nil, errors.New("no AutoIt script found inside CAB archive")
}
