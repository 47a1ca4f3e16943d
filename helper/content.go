package helper

import (
	"bytes"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"bdl-cms/models"
)

var (
	ugcPolicy = bluemonday.UGCPolicy()
	markdown  = goldmark.New(goldmark.WithExtensions(extension.GFM))
)

// SanitizeHTML strips scripts, event handlers and unknown tags from user HTML.
func SanitizeHTML(s string) string {
	return ugcPolicy.Sanitize(s)
}

// RenderBody converts a body in the given format into sanitized HTML.
func RenderBody(body string, format models.ContentFormat) (string, error) {
	if format != models.FormatMarkdown {
		return SanitizeHTML(body), nil
	}

	var buf bytes.Buffer
	if err := markdown.Convert([]byte(body), &buf); err != nil {
		return "", err
	}
	return SanitizeHTML(buf.String()), nil
}
