// Package pipeline chains detection, unwrapping, payload decryption and
// string recovery into the full configuration extraction flow.
package pipeline

import (
	"errors"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"dgextractor/internal/alphabet"
	"dgextractor/internal/au3"
	"dgextractor/internal/config"
	"dgextractor/internal/detect"
	"dgextractor/internal/unwrap"
)

var (
	// ErrNoPayload means no stage could locate a DarkGate payload in the input.
	ErrNoPayload = errors.New("no usable payload found")
	// ErrNoStrings means a payload was located but yielded no decodable strings.
	ErrNoStrings = errors.New("could not extract strings from payload")
)

// Report is the complete result of analyzing one sample.
type Report struct {
	ID        string
	Name      string
	Kind      detect.ContainerKind
	Key       *au3.Key
	Payload   []byte
	Alphabets [][]byte
	Strings   []string
	Record    config.Record
}

// Extractor runs the end-to-end extraction flow.
type Extractor struct {
	unwrapper *unwrap.Unwrapper
	decoder   *au3.Decoder
	log       *logrus.Logger
}

func New(unwrapper *unwrap.Unwrapper, decoder *au3.Decoder, log *logrus.Logger) *Extractor {
	return &Extractor{unwrapper: unwrapper, decoder: decoder, log: log}
}

// Analyze unwraps the sample down to its payload, decodes the obfuscated
// strings and assembles the configuration record.
func (e *Extractor) Analyze(name string, content []byte) (*Report, error) {
	report := &Report{
		ID:   uuid.NewString(),
		Name: name,
	}
	e.log.WithFields(logrus.Fields{
		"analysis_id": report.ID,
		"file":        name,
	}).Info("Performing analysis of file")

	payload, kind, err := e.unwrapper.Unwrap(content)
	if err != nil {
		e.log.WithError(err).WithField("file", name).Error("No usable payload found in file")
		return nil, ErrNoPayload
	}
	report.Kind = kind

	if kind == detect.CompiledScript {
		decoded, key, err := e.decodePayload(payload)
		if err != nil {
			e.log.WithError(err).WithField("file", name).Error("No usable payload found in file")
			return nil, ErrNoPayload
		}
		payload = decoded
		report.Key = &key
	}
	report.Payload = payload

	report.Alphabets = alphabet.Candidates(payload)
	if len(report.Alphabets) == 0 {
		e.log.Info("No candidates for custom base64 alphabet found, unsupported file")
		e.log.WithField("file", name).Error("Could not extract strings from file")
		return nil, ErrNoStrings
	}
	e.log.WithField("count", len(report.Alphabets)).Info("Found candidates for custom base64 alphabet")

	report.Strings = alphabet.DecodeStrings(payload, report.Alphabets)
	if len(report.Strings) == 0 {
		e.log.WithField("file", name).Error("Could not extract strings from file")
		return nil, ErrNoStrings
	}

	report.Record = config.Parse(report.Strings)
	return report, nil
}

// decodePayload recovers the embedded PE from a compiled script, falling
// back to the brute-force key search when the script secret does not decode.
// An empty payload segment counts as a miss.
func (e *Extractor) decodePayload(script []byte) ([]byte, au3.Key, error) {
	payload, key, err := e.decoder.DecodeEmbedded(script)
	if err == nil && len(payload) == 0 {
		err = errors.New("embedded payload segment is empty")
	}
	if err == nil {
		return payload, key, nil
	}
	e.log.WithError(err).Debug("Embedded key decode failed, trying brute force recovery")
	return e.decoder.BruteForce(script)
}
