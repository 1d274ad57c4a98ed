// Package poem turns wizard selections into a generated poem: it builds the
// prompts, decodes the model's free-text reply, and synthesizes a fallback
// when nothing usable comes back.
package poem

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/jonathan/valentino/internal/llm"
	"github.com/jonathan/valentino/internal/schemas"
	"github.com/jonathan/valentino/internal/types"
)

// Models are unreliable at strict-format compliance even under explicit
// instruction. Extract runs an ordered ladder of recovery strategies; each
// rung is a pure function and the first success wins:
//
//  1. trim whitespace
//  2. unwrap the first fenced code block, if any
//  3. slice from the first '{' through the last '}'
//  4. strict JSON parse + schema validation
//  5. regex rescue of "title"/"poem" pairs against the raw text
//
// Total failure returns ErrNoPoem; it never panics.
func Extract(raw string) (*types.GeneratedPoem, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, ErrNoPoem
	}

	candidate := extractFenced(trimmed)
	candidate = extractBraced(candidate)

	if p := parseStrict(candidate); p != nil {
		return normalize(p), nil
	}

	// Regex rescue runs against the original text: a mangled fence or brace
	// slice must not hide an otherwise recoverable pair.
	if p := extractWithRegex(raw); p != nil {
		return normalize(p), nil
	}

	return nil, ErrNoPoem
}

// extractFenced returns the content of the first triple-backtick block in s,
// or s unchanged when no complete block is present.
func extractFenced(s string) string {
	start := strings.Index(s, "```")
	if start < 0 {
		return s
	}
	if start == 0 {
		return llm.CleanJSONBlock(s)
	}

	rest := s[start+3:]
	// Drop a leading language tag line (```json etc.)
	if nl := strings.Index(rest, "\n"); nl >= 0 {
		tag := strings.TrimSpace(rest[:nl])
		if len(tag) < 20 && !strings.Contains(tag, " ") && !strings.Contains(tag, "{") {
			rest = rest[nl+1:]
		}
	}
	end := strings.Index(rest, "```")
	if end < 0 {
		return s
	}
	return strings.TrimSpace(rest[:end])
}

// extractBraced slices from the first '{' through the last '}' (greedy outer
// match), or returns s unchanged when no such span exists.
func extractBraced(s string) string {
	first := strings.Index(s, "{")
	last := strings.LastIndex(s, "}")
	if first < 0 || last <= first {
		return s
	}
	return s[first : last+1]
}

// parseStrict parses candidate as JSON and checks it against the poem schema.
// Returns nil on any failure.
func parseStrict(candidate string) *types.GeneratedPoem {
	data := []byte(candidate)
	if err := schemas.ValidatePoemJSON(data); err != nil {
		return nil
	}

	var p types.GeneratedPoem
	if err := json.Unmarshal(data, &p); err != nil {
		return nil
	}
	if p.Title == "" || p.Poem == "" {
		return nil
	}
	return &p
}

var (
	titlePattern = regexp.MustCompile(`"title"\s*:\s*"((?:[^"\\]|\\.)*)"`)
	poemPattern  = regexp.MustCompile(`"poem"\s*:\s*"((?:[^"\\]|\\.)*)"`)
)

// extractWithRegex is the last-resort rung: it pulls "title" and "poem"
// string fields out of otherwise unparseable text. Both must be present.
func extractWithRegex(raw string) *types.GeneratedPoem {
	titleMatch := titlePattern.FindStringSubmatch(raw)
	poemMatch := poemPattern.FindStringSubmatch(raw)
	if titleMatch == nil || poemMatch == nil {
		return nil
	}

	p := &types.GeneratedPoem{
		Title: unescapeJSONString(titleMatch[1]),
		Poem:  unescapeJSONString(poemMatch[1]),
	}
	if p.Title == "" || p.Poem == "" {
		return nil
	}
	return p
}

var jsonUnescaper = strings.NewReplacer(
	`\n`, "\n",
	`\"`, `"`,
	`\t`, "\t",
	`\\`, `\`,
)

func unescapeJSONString(s string) string {
	return jsonUnescaper.Replace(s)
}

// normalize collapses escape sequences the model sometimes double-encodes
// (a literal backslash-n inside an already-parsed string).
func normalize(p *types.GeneratedPoem) *types.GeneratedPoem {
	return &types.GeneratedPoem{
		Title: strings.TrimSpace(unescapeJSONString(p.Title)),
		Poem:  strings.TrimSpace(unescapeJSONString(p.Poem)),
	}
}
