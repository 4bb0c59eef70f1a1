package usecase

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
)

// ParseStatus reports how an LLM reply made it through parsing.
type ParseStatus int

const (
	// ParseClean means the reply parsed as-is.
	ParseClean ParseStatus = iota
	// ParseRepaired means the reply parsed only after bracket wrapping or
	// span extraction.
	ParseRepaired
	// ParseFailed means nothing parseable was recovered; callers fall back
	// to synthetic records.
	ParseFailed
)

func (s ParseStatus) String() string {
	switch s {
	case ParseClean:
		return "clean"
	case ParseRepaired:
		return "repaired"
	default:
		return "failed"
	}
}

var (
	fencedBlockExpr  = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)\\s*```")
	fencedObjectExpr = regexp.MustCompile("(?s)```(?:json)?\\s*(\\{.*?\\})\\s*```")
	objectSpanExpr   = regexp.MustCompile(`(?s)\{.*\}`)
)

// scrubReply strips a Markdown fence and surrounding prose from a nominally
// JSON reply.
func scrubReply(reply string) string {
	reply = strings.TrimSpace(reply)
	if m := fencedBlockExpr.FindStringSubmatch(reply); m != nil {
		return strings.TrimSpace(m[1])
	}
	return reply
}

// repairArray runs the array repair cascade: parse as-is, wrap a bare
// object in brackets, then extract the widest brace span and wrap that.
// The span step also rescues replies with prose before or after the JSON.
func repairArray(reply string, v any) ParseStatus {
	s := scrubReply(reply)

	if json.Unmarshal([]byte(s), v) == nil {
		return ParseClean
	}

	if strings.HasPrefix(s, "{") {
		if json.Unmarshal([]byte("["+s+"]"), v) == nil {
			return ParseRepaired
		}
	}
	if spans := objectSpanExpr.FindAllString(s, -1); len(spans) > 0 {
		if json.Unmarshal([]byte("["+strings.Join(spans, ",")+"]"), v) == nil {
			return ParseRepaired
		}
	}

	return ParseFailed
}

// repairObject runs the single-object cascade: parse as-is, pull a fenced
// object, then the widest brace span.
func repairObject(reply string, v any) ParseStatus {
	s := strings.TrimSpace(reply)

	if json.Unmarshal([]byte(s), v) == nil {
		return ParseClean
	}

	if m := fencedObjectExpr.FindStringSubmatch(s); m != nil {
		if json.Unmarshal([]byte(m[1]), v) == nil {
			return ParseRepaired
		}
	}

	if span := objectSpanExpr.FindString(s); span != "" {
		if json.Unmarshal([]byte(span), v) == nil {
			return ParseRepaired
		}
	}

	return ParseFailed
}

// looseInt tolerates a score arriving as a JSON number, a numeric string,
// or junk. Junk leaves the value unset instead of failing the whole
// unmarshal, so a bad score never discards an otherwise good record.
type looseInt struct {
	value int
	ok    bool
}

func (l *looseInt) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	s = strings.Trim(s, `"`)
	if s == "" || s == "null" {
		return nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		l.value, l.ok = n, true
		return nil
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		l.value, l.ok = int(f), true
	}
	return nil
}
