package filter

import (
	"fmt"
	"strings"
)

// Verdict is the outcome of classifying a candidate.
type Verdict int

const (
	// Ignore: mismatches are not flagged.
	Ignore Verdict = iota
	// Report: divergence is logged but does not block a build.
	Report
	// Error: full comparison required; a mismatch blocks the build.
	Error
)

func (v Verdict) String() string {
	switch v {
	case Ignore:
		return "ignore"
	case Report:
		return "report"
	case Error:
		return "error"
	}
	return fmt.Sprintf("verdict(%d)", int(v))
}

// Severity orders verdicts: Ignore < Report < Error.
func (v Verdict) Severity() int { return int(v) }

// ParseVerdict accepts the token spellings plus the boolean ones
// ("true"/"compare" mean Error, "false" means Ignore).
func ParseVerdict(s string) (Verdict, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ignore", "false":
		return Ignore, nil
	case "report", "warning":
		return Report, nil
	case "error", "true", "compare":
		return Error, nil
	}
	return Ignore, fmt.Errorf("unknown verdict %q", s)
}

func (v Verdict) MarshalText() ([]byte, error) {
	if v < Ignore || v > Error {
		return nil, fmt.Errorf("invalid verdict %d", int(v))
	}
	return []byte(v.String()), nil
}

func (v *Verdict) UnmarshalText(b []byte) error {
	p, err := ParseVerdict(string(b))
	if err != nil {
		return err
	}
	*v = p
	return nil
}

// Vocabulary is the return-value shape a consumer expects for one product line.
type Vocabulary string

const (
	VocabTokens  Vocabulary = "tokens"  // "ignore" | "report" | "error"
	VocabBoolean Vocabulary = "boolean" // false | true
)

// Render converts a verdict into the consumer's literal value. The boolean
// shape has no spelling for Report, so it is rendered as the "report" token.
func (voc Vocabulary) Render(v Verdict) any {
	if voc == VocabBoolean {
		switch v {
		case Ignore:
			return false
		case Error:
			return true
		}
	}
	return v.String()
}

func ParseVocabulary(s string) (Vocabulary, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "tokens", "token", "string":
		return VocabTokens, nil
	case "boolean", "bool":
		return VocabBoolean, nil
	}
	return "", fmt.Errorf("unknown vocabulary %q", s)
}
