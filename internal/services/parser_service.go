package services

import (
	"encoding/json"
	"log"
	"regexp"
	"strings"
)

// ParseDiagnostics describes what the recovery parser had to do to get
// records out of a payload. It is attached for logging, never thrown.
type ParseDiagnostics struct {
	Stage   string   `json:"stage"`
	Dropped int      `json:"dropped"`
	Notes   []string `json:"notes"`
}

const (
	ParseStageDirect        = "direct"
	ParseStageWrapped       = "wrapped"
	ParseStageScan          = "scan"
	ParseStageSanitized     = "sanitized"
	ParseStageUnrecoverable = "unrecoverable"
)

type ParserServiceInterface interface {
	// ParseRecords turns a raw payload into records. It never returns an
	// error; the worst case is an empty slice with diagnostics attached.
	ParseRecords(input any) ([]map[string]any, ParseDiagnostics)
}

type ParserService struct{}

func NewParserService() ParserServiceInterface {
	return &ParserService{}
}

var ctrlCharsRE = regexp.MustCompile("[\x00-\x08\x0b\x0c\x0e-\x1f]")

func (p *ParserService) ParseRecords(input any) ([]map[string]any, ParseDiagnostics) {
	diag := ParseDiagnostics{Stage: ParseStageDirect}

	switch v := input.(type) {
	case nil:
		diag.Stage = ParseStageUnrecoverable
		return []map[string]any{}, diag
	case []map[string]any:
		return v, diag
	case map[string]any:
		return []map[string]any{v}, diag
	case []any:
		return collectRecords(v, &diag), diag
	case string:
		return p.parseString(v, &diag), diag
	default:
		// Typed structs arrive here on re-normalization of persisted
		// trips; a marshal round-trip flattens them to generic records.
		raw, err := json.Marshal(v)
		if err != nil {
			diag.Stage = ParseStageUnrecoverable
			diag.Notes = append(diag.Notes, "unsupported payload type")
			return []map[string]any{}, diag
		}
		return p.parseString(string(raw), &diag), diag
	}
}

func (p *ParserService) parseString(s string, diag *ParseDiagnostics) []map[string]any {
	s = strings.TrimSpace(s)
	if s == "" {
		diag.Stage = ParseStageUnrecoverable
		return []map[string]any{}
	}

	// Stage 1: direct decode.
	if recs, ok := decodeRecords(s); ok {
		diag.Stage = ParseStageDirect
		return recs
	}

	// Stage 2: concatenated object literals without enclosing brackets.
	if strings.HasPrefix(s, "{") && strings.Contains(s, "},{") {
		if recs, ok := decodeRecords("[" + s + "]"); ok {
			diag.Stage = ParseStageWrapped
			diag.Notes = append(diag.Notes, "wrapped concatenated objects in array brackets")
			return recs
		}
	}

	// Stage 3: character scan for top-level object boundaries. A bad
	// segment is dropped, not fatal.
	if segments := splitTopLevelObjects(s); len(segments) > 0 {
		records := make([]map[string]any, 0, len(segments))
		dropped := 0
		for i, seg := range segments {
			var rec map[string]any
			if err := json.Unmarshal([]byte(seg), &rec); err != nil {
				dropped++
				log.Printf("recovery parser: dropping undecodable segment %d: %v", i, err)
				continue
			}
			records = append(records, rec)
		}
		if len(records) > 0 {
			diag.Stage = ParseStageScan
			diag.Dropped = dropped
			return records
		}
	}

	// Stage 4: strip control characters and stray escape artifacts, one
	// last decode attempt.
	cleaned := sanitizePayload(s)
	if cleaned != s {
		if recs, ok := decodeRecords(cleaned); ok {
			diag.Stage = ParseStageSanitized
			diag.Notes = append(diag.Notes, "decoded after stripping control characters")
			return recs
		}
	}

	diag.Stage = ParseStageUnrecoverable
	log.Printf("recovery parser: payload unrecoverable (%d bytes)", len(s))
	return []map[string]any{}
}

func decodeRecords(s string) ([]map[string]any, bool) {
	trimmed := strings.TrimSpace(s)
	if strings.HasPrefix(trimmed, "[") {
		var arr []any
		if err := json.Unmarshal([]byte(trimmed), &arr); err != nil {
			return nil, false
		}
		var diag ParseDiagnostics
		return collectRecords(arr, &diag), true
	}
	var obj map[string]any
	if err := json.Unmarshal([]byte(trimmed), &obj); err != nil {
		return nil, false
	}
	return []map[string]any{obj}, true
}

func collectRecords(items []any, diag *ParseDiagnostics) []map[string]any {
	records := make([]map[string]any, 0, len(items))
	for _, item := range items {
		rec, ok := item.(map[string]any)
		if !ok {
			diag.Dropped++
			continue
		}
		records = append(records, rec)
	}
	return records
}

// splitTopLevelObjects walks the input tracking brace depth and string
// state, so braces inside quoted strings and escaped quotes do not skew
// the boundaries. Returns the top-level {...} spans it found.
func splitTopLevelObjects(s string) []string {
	var segments []string
	depth := 0
	start := -1
	inString := false
	escaped := false

	for i := 0; i < len(s); i++ {
		c := s[i]
		if escaped {
			escaped = false
			continue
		}
		switch c {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '{':
			if !inString {
				if depth == 0 {
					start = i
				}
				depth++
			}
		case '}':
			if !inString && depth > 0 {
				depth--
				if depth == 0 && start >= 0 {
					segments = append(segments, s[start:i+1])
					start = -1
				}
			}
		}
	}
	return segments
}

func sanitizePayload(s string) string {
	s = ctrlCharsRE.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, `\\"`, `"`)
	s = strings.Trim(s, "\\\"` ")
	return strings.TrimSpace(s)
}
