package detect

import (
	"bytes"
	"strings"

	"dgextractor/internal/sniff"
)

// PEStartBytes is the header prefix shared by the packed DarkGate executables
// (Delphi MZP stub).
var PEStartBytes = []byte{0x4D, 0x5A, 0x50, 0x00, 0x02, 0x00, 0x00, 0x00, 0x04, 0x00, 0x0F, 0x00, 0xFF, 0xFF, 0x00}

// AU3Magic marks a compiled AutoIt v3 script blob.
var AU3Magic = []byte("AU3!EA06")

var FamilyMarker = []byte("DarkGate")

var MSIWrapperMarker = []byte("Wrapped using MSI Wrapper from www.exemsi.com")

// libmagic and the mimetype database disagree on the canonical MSI name.
var installerMIMETypes = []string{
	"application/x-msi",
	"application/x-ms-installer",
	"application/x-windows-installer",
}

type ContainerKind int

const (
	Unknown ContainerKind = iota
	PortableExecutable
	InstallerWrapped
	ArchiveWrapped
	CompiledScript
)

func (k ContainerKind) String() string {
	switch k {
	case PortableExecutable:
		return "PE"
	case InstallerWrapped:
		return "MSI"
	case ArchiveWrapped:
		return "CAB"
	case CompiledScript:
		return "AU3"
	default:
		return "UNKNOWN"
	}
}

// Detector decides which container form a byte buffer is in.
type Detector struct {
	classifier sniff.Classifier
}

func New(classifier sniff.Classifier) *Detector {
	return &Detector{classifier: classifier}
}

// Detect returns the container kind of content. First matching rule wins.
func (d *Detector) Detect(content []byte) ContainerKind {
	if bytes.HasPrefix(content, PEStartBytes) && bytes.Contains(content, FamilyMarker) {
		return PortableExecutable
	}
	mimeType := d.classifier.Classify(content)
	if isInstallerMIME(mimeType) && bytes.Contains(content, MSIWrapperMarker) {
		return InstallerWrapped
	}
	if strings.Contains(mimeType, "application/vnd.ms-cab-compressed") {
		return ArchiveWrapped
	}
	if strings.Contains(mimeType, "text/plain") && bytes.Contains(content, AU3Magic) {
		return CompiledScript
	}
	return Unknown
}

func isInstallerMIME(mimeType string) bool {
	for _, name := range installerMIMETypes {
		if strings.Contains(mimeType, name) {
			return true
		}
	}
	return false
}
