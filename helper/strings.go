package helper

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	slugInvalid     = regexp.MustCompile(`[^a-z0-9-]+`)
	slugHyphens     = regexp.MustCompile(`-{2,}`)
	underscoreUpper = regexp.MustCompile(`([a-z0-9])([A-Z])`)
)

// Underscore turns a Go field name into its snake_case JSON key.
func Underscore(s string) string {
	return strings.ToLower(underscoreUpper.ReplaceAllString(s, "${1}_${2}"))
}

// Slugify lowercases s, strips accents and keeps only letters, digits and
// single hyphens.
func Slugify(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, s)

	result = strings.ToLower(result)
	result = strings.Join(strings.Fields(result), "-")
	result = strings.ReplaceAll(result, "'", "-")
	result = slugInvalid.ReplaceAllString(result, "")
	result = slugHyphens.ReplaceAllString(result, "-")

	return strings.Trim(result, "-")
}
