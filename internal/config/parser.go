// Package config turns the decoded payload strings into a typed DarkGate
// configuration record.
package config

import (
	"regexp"
	"strings"
)

var (
	tokenRe = regexp.MustCompile(`(\d+)=(\w+)`)
	c2Re    = regexp.MustCompile(`^\|?https?://`)
)

// flagNames maps configuration indices to the names used by the malware's
// builder. Unmapped indices are emitted as flag_<index>.
var flagNames = map[string]string{
	"0":  "c2_port",
	"1":  "startup_persistence",
	"2":  "rootkit",
	"3":  "anti_vm",
	"4":  "min_disk",
	"5":  "check_disk",
	"6":  "anti_analysis",
	"7":  "min_ram",
	"8":  "check_ram",
	"9":  "check_xeon",
	"10": "internal_mutex",
	"11": "crypter_rawstub",
	"12": "crypter_dll",
	"13": "crypter_au3",
	"15": "crypto_key",
	"16": "c2_ping_interval",
	"17": "anti_debug",
}

// Record is the reassembled sample configuration.
type Record struct {
	Fields    map[string]Value
	C2Servers []string
}

func NewRecord() Record {
	return Record{Fields: make(map[string]Value)}
}

// JSONObject flattens the record for JSON output. C2 servers are listed
// under c2_servers only when a C2 line was found.
func (r Record) JSONObject() map[string]interface{} {
	out := make(map[string]interface{}, len(r.Fields)+1)
	for name, value := range r.Fields {
		out[name] = value
	}
	if r.C2Servers != nil {
		out["c2_servers"] = r.C2Servers
	}
	return out
}

// Parse scans the decoded strings for flag lines and C2 lines. Later
// occurrences overwrite earlier ones.
func Parse(decoded []string) Record {
	record := NewRecord()
	for _, line := range decoded {
		if strings.Contains(line, "1=Yes") || strings.Contains(line, "1=No") {
			for _, token := range tokenRe.FindAllStringSubmatch(line, -1) {
				name, ok := flagNames[token[1]]
				if !ok {
					name = "flag_" + token[1]
				}
				record.Fields[name] = ParseValue(token[2])
			}
			continue
		}

		trimmed := strings.TrimSpace(strings.Trim(line, "\x00"))
		if !c2Re.MatchString(trimmed) {
			continue
		}
		servers := strings.Split(trimmed, "|")
		if len(servers) > 1 {
			record.C2Servers = removeFirstEmpty(servers)
		}
	}
	return record
}

func removeFirstEmpty(servers []string) []string {
	for i, server := range servers {
		if server == "" {
			return append(servers[:i], servers[i+1:]...)
		}
	}
	return servers
}
