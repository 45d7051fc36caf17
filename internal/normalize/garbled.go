package normalize

import (
	"regexp"
	"strings"
)

var (
	// "the. the. the." style stutter left by broken DOM joins. Go's RE2
	// engine has no backreferences, so this matches any candidate pair and
	// hasRepeatedToken checks the two tokens are the same.
	repeatedTokenPattern = regexp.MustCompile(`\b(\w{1,4})\.\s*(\w{1,4})\.`)
	// Three or more consecutive fully-capitalized words of real length.
	capsRunPattern = regexp.MustCompile(`\b[A-Z]{4,}(?:\s+[A-Z]{4,}){2,}\b`)
)

// hasRepeatedToken reports whether s contains a short token immediately
// repeated with stray periods ("The. The."), comparing case-insensitively.
func hasRepeatedToken(s string) bool {
	for start := 0; start < len(s); {
		m := repeatedTokenPattern.FindStringSubmatchIndex(s[start:])
		if m == nil {
			return false
		}
		abs := start + m[2]
		// A slice can fabricate a word boundary at its start; skip those.
		if (abs == 0 || !isWordByte(s[abs-1])) &&
			strings.EqualFold(s[start+m[2]:start+m[3]], s[start+m[4]:start+m[5]]) {
			return true
		}
		start = abs + 1
	}
	return false
}

func isWordByte(b byte) bool {
	return b == '_' || ('0' <= b && b <= '9') || ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z')
}

// detectGarbledText applies heuristics for scrape corruption: stuttered
// tokens separated by stray periods, doubled spacing, suspicious all-caps
// runs, and sentences cut off mid-word.
func detectGarbledText(s string) (string, bool) {
	if s == "" {
		return "", false
	}
	if hasRepeatedToken(s) {
		return "garbled text: repeated tokens with stray periods", true
	}
	if strings.Contains(s, "  ") {
		return "garbled text: doubled spacing", true
	}
	if capsRunPattern.MatchString(s) {
		return "garbled text: suspicious all-caps run", true
	}
	if truncatedSentence(s) {
		return "garbled text: truncated sentence", true
	}
	return "", false
}

// truncatedSentence reports whether text stops mid-thought, as when a
// scraper clips a teaser snippet: ellipsis or dangling hyphen/comma endings,
// or a cut word like "perfor".
func truncatedSentence(s string) bool {
	trimmed := strings.TrimSpace(s)
	if len(trimmed) < 40 {
		return false
	}
	for _, suffix := range []string{"...", "…", "-", ",", " and", " the", " with", " at", " of"} {
		if strings.HasSuffix(trimmed, suffix) {
			return true
		}
	}
	return false
}
