package io

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/abclisten/pkg/errors"
	"github.com/matzehuels/abclisten/pkg/kawa"
	"github.com/matzehuels/abclisten/pkg/observability"
	"github.com/matzehuels/abclisten/pkg/wordlist"
)

// Document formats for lists and KaWas.
const (
	FormatCSV      = "csv"
	FormatMarkdown = "md"
	FormatHTML     = "html"
	FormatPDF      = "pdf"
	FormatJSON     = "json"
	FormatYAML     = "yaml"
)

// Formats lists every document format in display order.
var Formats = []string{FormatCSV, FormatMarkdown, FormatHTML, FormatPDF, FormatJSON, FormatYAML}

// ValidateFormats checks that every format is a known document format.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if !slices.Contains(Formats, f) {
			return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %s (valid: %s)", f, strings.Join(Formats, ", "))
		}
	}
	return nil
}

// ContentType returns the MIME type of a document format.
func ContentType(format string) string {
	switch format {
	case FormatCSV:
		return "text/csv; charset=utf-8"
	case FormatMarkdown:
		return "text/markdown; charset=utf-8"
	case FormatHTML:
		return "text/html; charset=utf-8"
	case FormatPDF:
		return "application/pdf"
	case FormatJSON:
		return "application/json"
	case FormatYAML:
		return "application/yaml"
	default:
		return "application/octet-stream"
	}
}

// ExportList writes list in format to w.
func ExportList(ctx context.Context, list wordlist.List, format string, w io.Writer) error {
	cw := &countingWriter{w: w}
	var err error
	switch format {
	case FormatCSV:
		err = WriteListCSV(list, cw)
	case FormatMarkdown:
		err = WriteListMarkdown(list, cw)
	case FormatHTML:
		err = WriteHTMLDocument(list.Name, ListMarkdown(list), cw)
	case FormatPDF:
		err = WriteListPDF(list, cw)
	case FormatJSON, FormatYAML:
		err = writeValue(list, format, cw)
	default:
		err = ValidateFormats([]string{format})
	}
	observability.Pipeline().OnExport(ctx, "abc-list", format, cw.n, err)
	return err
}

// ExportKawa writes k in format to w.
func ExportKawa(ctx context.Context, k kawa.Kawa, format string, w io.Writer) error {
	cw := &countingWriter{w: w}
	var err error
	switch format {
	case FormatCSV:
		err = WriteKawaCSV(k, cw)
	case FormatMarkdown:
		err = WriteKawaMarkdown(k, cw)
	case FormatHTML:
		err = WriteHTMLDocument("KaWa: "+strings.ToUpper(k.Word), KawaMarkdown(k), cw)
	case FormatPDF:
		err = WriteKawaPDF(k, cw)
	case FormatJSON, FormatYAML:
		err = writeValue(k, format, cw)
	default:
		err = ValidateFormats([]string{format})
	}
	observability.Pipeline().OnExport(ctx, "kawa", format, cw.n, err)
	return err
}

// ExportListFile writes list to path, taking the format from the extension
// (".md" and ".markdown" map to Markdown, ".yml" to YAML).
func ExportListFile(ctx context.Context, list wordlist.List, path string) error {
	return exportFile(path, func(format string, w io.Writer) error {
		return ExportList(ctx, list, format, w)
	})
}

// ExportKawaFile writes k to path, taking the format from the extension.
func ExportKawaFile(ctx context.Context, k kawa.Kawa, path string) error {
	return exportFile(path, func(format string, w io.Writer) error {
		return ExportKawa(ctx, k, format, w)
	})
}

// FormatFromPath infers a document format from a file extension.
func FormatFromPath(path string) (string, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	switch ext {
	case "markdown":
		ext = FormatMarkdown
	case "yml":
		ext = FormatYAML
	}
	if err := ValidateFormats([]string{ext}); err != nil {
		return "", err
	}
	return ext, nil
}

func exportFile(path string, write func(format string, w io.Writer) error) error {
	if err := errors.ValidatePath(path); err != nil {
		return err
	}
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := write(format, &buf); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", path)
	}
	return nil
}

func writeValue(v any, format string, w io.Writer) error {
	if format == FormatYAML {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	return writeJSON(v, w)
}

type countingWriter struct {
	w io.Writer
	n int
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += n
	return n, err
}

func writeJSON(v any, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
