// Package peinfo summarizes recovered PE payloads for display.
package peinfo

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/saferwall/pe"
)

// imageFileDLL is the IMAGE_FILE_DLL characteristics bit.
const imageFileDLL = 0x2000

// Summary holds the header facts shown for an extracted payload.
type Summary struct {
	Machine    string
	CompiledAt time.Time
	DLL        bool
	Sections   []string
}

// Summarize parses payload as a PE image and collects its header facts.
func Summarize(payload []byte) (*Summary, error) {
	file, err := pe.NewBytes(payload, &pe.Options{})
	if err != nil {
		return nil, fmt.Errorf("unable to open payload. %v", err)
	}
	if err := file.Parse(); err != nil {
		return nil, fmt.Errorf("unable to parse payload. %v", err)
	}

	header := file.NtHeader.FileHeader
	summary := &Summary{
		CompiledAt: time.Unix(int64(header.TimeDateStamp), 0).UTC(),
		DLL:        header.Characteristics&imageFileDLL != 0,
	}
	switch uint16(header.Machine) {
	case uint16(pe.ImageFileMachineI386):
		summary.Machine = "x86"
	case uint16(pe.ImageFileMachineAMD64):
		summary.Machine = "AMD64"
	default:
		summary.Machine = "UNKNOWN"
	}
	for _, section := range file.Sections {
		name := strings.TrimRight(string(section.Header.Name[:]), "\x00")
		summary.Sections = append(summary.Sections, name)
	}
	return summary, nil
}

func (s *Summary) String() string {
	var result string
	result += fmt.Sprintf("[+] Machine: %s\n", s.Machine)
	result += fmt.Sprintf("[+] Compiled: %s\n", s.CompiledAt.Format(time.RFC3339))
	result += fmt.Sprintf("[+] DLL: %s\n", strconv.FormatBool(s.DLL))
	result += fmt.Sprintf("[+] Sections: %s\n", strings.Join(s.Sections, ", "))
	return result
}
