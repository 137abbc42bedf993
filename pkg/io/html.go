package io

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var (
	markdownOnce sync.Once
	markdown     goldmark.Markdown
	htmlPolicy   *bluemonday.Policy
)

func htmlRenderer() (goldmark.Markdown, *bluemonday.Policy) {
	markdownOnce.Do(func() {
		markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))
		htmlPolicy = bluemonday.UGCPolicy()
		htmlPolicy.RequireNoFollowOnLinks(true)
	})
	return markdown, htmlPolicy
}

// RenderHTML converts Markdown to sanitized HTML.
func RenderHTML(md []byte) ([]byte, error) {
	conv, policy := htmlRenderer()
	var buf bytes.Buffer
	if err := conv.Convert(md, &buf); err != nil {
		return nil, fmt.Errorf("convert markdown: %w", err)
	}
	return policy.SanitizeBytes(buf.Bytes()), nil
}

// WriteHTMLDocument renders md as a standalone HTML page titled title.
func WriteHTMLDocument(title string, md []byte, w io.Writer) error {
	body, err := RenderHTML(md)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, htmlTemplate, html.EscapeString(title), body)
	return err
}

const htmlTemplate = `<!DOCTYPE html>
<html lang="de">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>%s</title>
<style>
body { font-family: system-ui, sans-serif; max-width: 48rem; margin: 2rem auto; line-height: 1.5; padding: 0 1rem; }
table { border-collapse: collapse; }
th, td { border: 1px solid #d0d7de; padding: 0.25rem 0.75rem; text-align: left; }
</style>
</head>
<body>
%s</body>
</html>
`
