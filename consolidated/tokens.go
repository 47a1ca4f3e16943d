package consolidated

import (
	"regexp"
	"strings"
)

// Tags, whitespace runs, words, and a stray "<" so that tokens always
// concatenate back to the input.
var tokenPattern = regexp.MustCompile(`<[^>]*>|\s+|[^<\s]+|<`)

func tokenize(s string) []string {
	return tokenPattern.FindAllString(s, -1)
}

func isTag(tok string) bool {
	return len(tok) > 1 && strings.HasPrefix(tok, "<") && strings.HasSuffix(tok, ">")
}
