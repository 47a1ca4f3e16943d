package consolidated

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"bdl-cms/models"
)

// ContextTokens is how many unchanged tokens Compute keeps around the edited
// span.
const ContextTokens = 3

// ComputeFull diffs two bodies over tags, whitespace runs and words. The
// current text of the result is exactly next.
func ComputeFull(prev, next string) []models.DiffPart {
	a, b := tokenize(prev), tokenize(next)
	matcher := difflib.NewMatcherWithJunk(a, b, false, nil)

	var parts []models.DiffPart
	push := func(value string, added, removed bool) {
		if value == "" {
			return
		}
		parts = append(parts, models.DiffPart{Value: value, Added: added, Removed: removed})
	}

	for _, op := range matcher.GetOpCodes() {
		switch op.Tag {
		case 'e':
			push(strings.Join(b[op.J1:op.J2], ""), false, false)
		case 'd':
			push(strings.Join(a[op.I1:op.I2], ""), false, true)
		case 'i':
			push(strings.Join(b[op.J1:op.J2], ""), true, false)
		case 'r':
			push(strings.Join(a[op.I1:op.I2], ""), false, true)
			push(strings.Join(b[op.J1:op.J2], ""), true, false)
		}
	}
	return parts
}

// Compute is ComputeFull trimmed to the edited span plus at least
// ContextTokens of unchanged text on each side. The context grows until the
// current text occurs exactly once in next, so Track anchors the edit where it
// was made. It returns nil when nothing changed.
func Compute(prev, next string) []models.DiffPart {
	full := ComputeFull(prev, next)
	limit := len(tokenize(prev)) + len(tokenize(next))

	for n := ContextTokens; ; n++ {
		parts := Trim(full, n)
		if parts == nil {
			return nil
		}
		current := CurrentText(parts)
		if current == "" || n >= limit || occurrences(next, current) <= 1 {
			return parts
		}
	}
}

// occurrences counts matches of sub in s, overlapping ones included.
func occurrences(s, sub string) int {
	count := 0
	for i := 0; ; {
		idx := strings.Index(s[i:], sub)
		if idx < 0 {
			return count
		}
		count++
		i += idx + 1
		if i > len(s) {
			return count
		}
	}
}

// Trim shortens the leading and trailing unchanged parts to n tokens.
func Trim(parts []models.DiffPart, n int) []models.DiffPart {
	first, last := -1, -1
	for i, p := range parts {
		if p.Kind() != models.DiffUnchanged {
			if first < 0 {
				first = i
			}
			last = i
		}
	}
	if first < 0 {
		return nil
	}

	out := make([]models.DiffPart, 0, last-first+3)
	if first > 0 {
		toks := tokenize(parts[first-1].Value)
		if len(toks) > n {
			toks = toks[len(toks)-n:]
		}
		if len(toks) > 0 && n > 0 {
			out = append(out, models.DiffPart{Value: strings.Join(toks, "")})
		}
	}
	out = append(out, parts[first:last+1]...)
	if last < len(parts)-1 {
		toks := tokenize(parts[last+1].Value)
		if len(toks) > n {
			toks = toks[:n]
		}
		if len(toks) > 0 && n > 0 {
			out = append(out, models.DiffPart{Value: strings.Join(toks, "")})
		}
	}
	return out
}
