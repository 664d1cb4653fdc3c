package index

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/mandex/mandex/internal/errors"
)

// PageBreak separates pages in the extracted manual text.
const PageBreak = "\f"

// DefaultHeadingLine is the 1-indexed physical line of a definition page
// that carries the section heading.
const DefaultHeadingLine = 4

// compileHeading builds the pattern matching an instruction definition
// page. The manual layout puts a section-and-subsection header on a fixed
// physical line of every definition page: a dotted section number followed
// by the mnemonic token, optionally carrying a lowercase dotted qualifier
// (e.g. a condition-code placeholder) and a trailing variant word. The
// match is case-insensitive; the capture preserves the page's casing for
// rule matching.
func compileHeading(line int) *regexp.Regexp {
	return regexp.MustCompile(fmt.Sprintf(
		`(?i)^(?:[^\n]*\n){%d}[ \t]*\d+(?:\.\d+)+\.?[ \t]+([A-Z][A-Z0-9]*(?:\.[a-z]+)?(?:[ \t]+\S+)?)`,
		line-1))
}

// Builder scans extracted manual text into an Index.
type Builder struct {
	pageOffset int
	rules      []Rule
	heading    *regexp.Regexp
}

// NewBuilder creates a builder with the given physical-to-printed page
// offset and expansion rules, evaluated in order with first match winning.
func NewBuilder(pageOffset int, rules []Rule) *Builder {
	return &Builder{
		pageOffset: pageOffset,
		rules:      rules,
		heading:    compileHeading(DefaultHeadingLine),
	}
}

// WithHeadingLine overrides the physical line carrying the section heading,
// for manual editions with a different page header layout. Lines below 1
// keep the default.
func (b *Builder) WithHeadingLine(line int) *Builder {
	if line >= 1 {
		b.heading = compileHeading(line)
	}
	return b
}

// ReadSource loads the manual text from path. An unset or missing path is
// reported as a fatal SourceUnavailable error with a corrective suggestion.
func ReadSource(path string) (string, error) {
	if path == "" {
		return "", errors.SourceUnavailable("manual text path is not configured", nil).
			WithSuggestion("set manual.text in ~/.config/mandex/config.yaml or run 'mandex extract'")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.SourceUnavailable("cannot read manual text: "+path, err).
			WithSuggestion("check manual.text in the configuration or run 'mandex extract'")
	}
	return string(data), nil
}

// BuildFile reads the source text at path and builds the index.
func (b *Builder) BuildFile(path string) (*Index, error) {
	text, err := ReadSource(path)
	if err != nil {
		return nil, err
	}
	return b.Build(text), nil
}

// Build scans the source text and returns the deduplicated index.
// Pages are 1-indexed in scan order; a page contributes at most one raw
// mnemonic, which expansion may turn into several entries. When the same
// mnemonic is defined on several pages the later page wins, since manuals
// list short-form references before the full definition.
func (b *Builder) Build(text string) *Index {
	var emitted []Entry

	for i, page := range strings.Split(text, PageBreak) {
		raw, ok := b.matchHeading(page)
		if !ok {
			continue
		}

		target := i + 1 + b.pageOffset
		for _, mnemonic := range b.expand(raw) {
			emitted = append(emitted, Entry{Mnemonic: mnemonic, Page: target})
		}
	}

	return New(emitted)
}

// matchHeading extracts the raw mnemonic from a page, or reports no match.
func (b *Builder) matchHeading(page string) (string, bool) {
	m := b.heading.FindStringSubmatch(page)
	if m == nil || m[1] == "" {
		return "", false
	}
	return m[1], true
}

// expand normalizes a raw mnemonic and applies the first matching rule.
// Normalization strips the trailing space-separated qualifier so variant
// headings ("ADD Immediate", "MOVE 3") collapse onto one mnemonic. Without
// a matching rule the normalized mnemonic itself is emitted.
func (b *Builder) expand(raw string) []string {
	normalized := raw
	if fields := strings.Fields(raw); len(fields) > 0 {
		normalized = fields[0]
	}
	if normalized == "" {
		return nil
	}

	for _, rule := range b.rules {
		if !rule.Matches(normalized) {
			continue
		}
		expanded := rule.Expand(normalized)
		for i, m := range expanded {
			expanded[i] = strings.ToLower(m)
		}
		return expanded
	}

	return []string{strings.ToLower(normalized)}
}
