package textparse

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
)

// scrapeArtifacts are fragments that survive naive DOM-to-text extraction
// and carry no content.
var scrapeArtifacts = []string{
	"Read more",
	"Read More",
	"[...]",
	"&nbsp;",
	"Click here",
	"Learn more",
	"More info",
	" ",
}

// StripHTML extracts plain text from a string that may contain markup.
// Scraped descriptions regularly arrive with literal tags and entities;
// routing them through goquery handles both. Plain strings pass through.
func StripHTML(s string) string {
	if !strings.Contains(s, "<") {
		return s
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}
	return doc.Text()
}

var (
	whitespaceRun    = regexp.MustCompile(`\s+`)
	camelCaseJoin    = regexp.MustCompile(`([a-z])([A-Z])`)
	ampersandSqueeze = regexp.MustCompile(`\s*&\s*`)
	apostropheSpace  = regexp.MustCompile(`(\w)\s+'\s*(\w)`)
)

// CollapseWhitespace reduces all whitespace runs to single spaces and trims.
func CollapseWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(s, " "))
}

// SplitCamelCase repairs "wordJoins" produced when scrapers concatenate
// adjacent DOM nodes without a separator.
func SplitCamelCase(s string) string {
	return camelCaseJoin.ReplaceAllString(s, "$1 $2")
}

// CleanText applies the shared scrape-artifact cleanup: HTML stripping,
// artifact removal, camelCase splits, ampersand and apostrophe spacing,
// whitespace collapsing.
func CleanText(s string) string {
	s = StripHTML(s)
	for _, artifact := range scrapeArtifacts {
		s = strings.ReplaceAll(s, artifact, " ")
	}
	s = SplitCamelCase(s)
	s = ampersandSqueeze.ReplaceAllString(s, " & ")
	s = apostropheSpace.ReplaceAllString(s, "$1'$2")
	return CollapseWhitespace(s)
}

// buildDescription produces the cleaned description: the announcement minus
// every span already consumed by structured extraction, capitalized.
func buildDescription(text string, consumed []string) string {
	for _, span := range consumed {
		if span == "" {
			continue
		}
		text = strings.Replace(text, span, " ", 1)
	}
	text = CleanText(text)
	text = strings.TrimLeft(text, ".,;:- ")
	return capitalize(text)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
