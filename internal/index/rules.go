package index

import (
	"fmt"
	"regexp"
)

// Rule expands one raw mnemonic into a family of concrete mnemonics.
// Pattern is matched against the normalized raw mnemonic (unanchored unless
// the pattern anchors itself); on a match, each suffix is substituted via
// the pattern's first capture group and the result is lower-cased. A pattern
// without a capture group expands to bare suffixes, so family patterns
// should always capture the mnemonic stem.
type Rule struct {
	Pattern  *regexp.Regexp
	Suffixes []string
}

// NewRule compiles a rule from a pattern string.
func NewRule(pattern string, suffixes []string) (Rule, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return Rule{}, fmt.Errorf("invalid rule pattern %q: %w", pattern, err)
	}
	if len(suffixes) == 0 {
		return Rule{}, fmt.Errorf("rule %q: at least one suffix is required", pattern)
	}
	return Rule{Pattern: re, Suffixes: suffixes}, nil
}

// MustRule compiles a rule and panics on error. For static rule tables.
func MustRule(pattern string, suffixes ...string) Rule {
	r, err := NewRule(pattern, suffixes)
	if err != nil {
		panic(err)
	}
	return r
}

// Matches reports whether the rule applies to the normalized mnemonic.
// Matching is case-sensitive against the extracted casing.
func (r Rule) Matches(mnemonic string) bool {
	return r.Pattern.MatchString(mnemonic)
}

// Expand emits one mnemonic per suffix, substituting the suffix behind the
// pattern's first capture group. Results keep the source casing; the
// builder lower-cases them.
func (r Rule) Expand(mnemonic string) []string {
	out := make([]string, len(r.Suffixes))
	for i, suffix := range r.Suffixes {
		out[i] = r.Pattern.ReplaceAllString(mnemonic, "${1}"+suffix)
	}
	return out
}

// conditionCodes are the condition mnemonics shared by the branch and set
// families. True/false variants exist only for the non-branch families.
var conditionCodes = []string{
	"CC", "CS", "EQ", "GE", "GT", "HI", "LE", "LS", "LT", "MI", "NE", "PL", "VC", "VS",
}

// DefaultRules returns the built-in mnemonic family expansions, evaluated
// in declaration order with first match winning.
func DefaultRules() []Rule {
	withTF := append(append([]string{}, conditionCodes...), "T", "F")

	return []Rule{
		// Decrement-and-branch must precede the plain branch family so
		// "DBcc" is not claimed by the "Bcc" containment match.
		MustRule(`^(DB)cc$`, withTF...),
		MustRule(`^(B)cc$`, conditionCodes...),
		MustRule(`^(S)cc$`, withTF...),
	}
}
