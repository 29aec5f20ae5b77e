package sniff

import (
	"github.com/gabriel-vasile/mimetype"
)

// Classifier reports the MIME type of a byte buffer.
type Classifier interface {
	Classify(content []byte) string
}

// Mimetype classifies buffers against the mimetype signature database.
type Mimetype struct {
}

func (m Mimetype) Classify(content []byte) string {
	return mimetype.Detect(content).String()
}
