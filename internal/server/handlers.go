package server

import (
	"bytes"
	"fmt"
	"io"
	"maps"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/abclisten/pkg/errors"
	abcio "github.com/matzehuels/abclisten/pkg/io"
	"github.com/matzehuels/abclisten/pkg/kawa"
	"github.com/matzehuels/abclisten/pkg/pipeline"
	"github.com/matzehuels/abclisten/pkg/wordlist"
)

// =============================================================================
// Request bodies
// =============================================================================

// ListRequest replaces the contents of a list.
type ListRequest struct {
	Buckets map[string][]EntryRequest `json:"buckets" validate:"dive,dive"`
}

// EntryRequest is one word of a list.
type EntryRequest struct {
	Text        string `json:"text" validate:"required,max=200"`
	Explanation string `json:"explanation" validate:"max=2000"`
	Imported    bool   `json:"imported"`
}

// AddWordRequest appends a word to a list. An empty letter is derived from
// the text.
type AddWordRequest struct {
	Letter      string `json:"letter" validate:"omitempty,max=2"`
	Text        string `json:"text" validate:"required,max=200"`
	Explanation string `json:"explanation" validate:"max=2000"`
	Create      bool   `json:"create"` // create the list when missing
}

// KawaRequest replaces a KaWa. Entries are positional; Associations are
// keyed by letter and fill every position of that letter. Exactly one of
// them must be set.
type KawaRequest struct {
	Entries      []string          `json:"entries" validate:"required_without=Associations,excluded_with=Associations,dive,max=200"`
	Associations map[string]string `json:"associations" validate:"required_without=Entries"`
}

// =============================================================================
// Lists
// =============================================================================

func (s *Server) listLists(w http.ResponseWriter, r *http.Request) {
	lists, err := s.lib.Lists(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	type summary struct {
		Name    string   `json:"name"`
		Words   int      `json:"words"`
		Letters []string `json:"letters"`
	}
	out := make([]summary, 0, len(lists))
	for _, l := range lists {
		out = append(out, summary{Name: l.Name, Words: l.Count(), Letters: l.Letters()})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) getList(w http.ResponseWriter, r *http.Request) {
	list, err := s.lib.GetList(r.Context(), param(r, "name"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) putList(w http.ResponseWriter, r *http.Request) {
	var req ListRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	list, err := wordlist.New(param(r, "name"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	// Keys like "A", "a" and "Ä" fold into one bucket; a fixed order keeps
	// the resulting entry order stable.
	for _, letter := range slices.Sorted(maps.Keys(req.Buckets)) {
		for _, e := range req.Buckets[letter] {
			entry := wordlist.NewEntry(e.Text, e.Explanation, s.now())
			entry.Imported = e.Imported
			if list, err = list.Add(letter, entry); err != nil {
				writeError(w, r, err)
				return
			}
		}
	}
	if err := s.lib.SaveList(r.Context(), list); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) deleteList(w http.ResponseWriter, r *http.Request) {
	if err := s.lib.DeleteList(r.Context(), param(r, "name")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) addWord(w http.ResponseWriter, r *http.Request) {
	var req AddWordRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	ctx := r.Context()
	name := param(r, "name")

	if req.Create {
		if _, err := s.lib.EnsureList(ctx, name); err != nil {
			writeError(w, r, err)
			return
		}
	}

	list, err := s.lib.AddWord(ctx, name, req.Letter, req.Text, req.Explanation)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, list)
}

func (s *Server) exportList(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	if err := abcio.ValidateFormats([]string{format}); err != nil {
		writeError(w, r, err)
		return
	}
	list, err := s.lib.GetList(r.Context(), param(r, "name"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	var buf bytes.Buffer
	if err := abcio.ExportList(r.Context(), list, format, &buf); err != nil {
		writeError(w, r, err)
		return
	}
	setAttachment(w, list.Name, format)
	writeBytes(w, abcio.ContentType(format), buf.Bytes())
}

// =============================================================================
// KaWas
// =============================================================================

func (s *Server) listKawas(w http.ResponseWriter, r *http.Request) {
	kawas, err := s.lib.Kawas(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	if kawas == nil {
		kawas = []kawa.Kawa{}
	}
	writeJSON(w, http.StatusOK, kawas)
}

func (s *Server) getKawa(w http.ResponseWriter, r *http.Request) {
	k, err := s.lib.GetKawa(r.Context(), param(r, "word"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, k)
}

func (s *Server) putKawa(w http.ResponseWriter, r *http.Request) {
	var req KawaRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	word := param(r, "word")

	var k kawa.Kawa
	var err error
	if req.Associations != nil {
		k, err = kawa.FromAssociations(word, req.Associations)
	} else {
		k, err = kawa.New(word)
		if err == nil && len(req.Entries) != len(k.Entries) {
			err = errors.New(errors.ErrCodeInvalidInput, "%q has %d letters but %d entries were given", word, len(k.Entries), len(req.Entries))
		}
		if err == nil {
			for i, text := range req.Entries {
				k.Entries[i] = strings.TrimSpace(text)
			}
		}
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.lib.SaveKawa(r.Context(), k); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, k)
}

func (s *Server) deleteKawa(w http.ResponseWriter, r *http.Request) {
	if err := s.lib.DeleteKawa(r.Context(), param(r, "word")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) exportKawa(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	if err := abcio.ValidateFormats([]string{format}); err != nil {
		writeError(w, r, err)
		return
	}
	k, err := s.lib.GetKawa(r.Context(), param(r, "word"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	var buf bytes.Buffer
	if err := abcio.ExportKawa(r.Context(), k, format, &buf); err != nil {
		writeError(w, r, err)
		return
	}
	setAttachment(w, "kawa-"+k.Word, format)
	writeBytes(w, abcio.ContentType(format), buf.Bytes())
}

// =============================================================================
// Mind maps
// =============================================================================

func (s *Server) listMindmap(w http.ResponseWriter, r *http.Request) {
	s.mindmap(w, r, pipeline.SourceList, param(r, "name"))
}

func (s *Server) kawaMindmap(w http.ResponseWriter, r *http.Request) {
	s.mindmap(w, r, pipeline.SourceKawa, param(r, "word"))
}

func (s *Server) combinedMindmap(w http.ResponseWriter, r *http.Request) {
	s.mindmap(w, r, pipeline.SourceAll, "")
}

// mindmap runs the pipeline for one format taken from ?format= (default
// json).
func (s *Server) mindmap(w http.ResponseWriter, r *http.Request, source, name string) {
	opts, format, err := mindmapOptions(r, pipeline.FormatJSON)
	if err != nil {
		writeError(w, r, err)
		return
	}
	opts.Source = source
	opts.Name = name

	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("ETag", `"`+res.GraphHash+`"`)
	if len(res.Warnings) > 0 {
		w.Header().Set("X-Mindmap-Warning", res.Warnings[0])
	}
	writeBytes(w, pipeline.ContentType(format), res.Artifacts[format])
}

// renderGraph renders a mind map posted as JSON (as produced by
// ?format=json) without touching the library or the artifact cache.
func (s *Server) renderGraph(w http.ResponseWriter, r *http.Request) {
	opts, format, err := mindmapOptions(r, pipeline.FormatSVG)
	if err != nil {
		writeError(w, r, err)
		return
	}
	data, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "read body"))
		return
	}
	artifacts, err := pipeline.RenderGraphData(r.Context(), data, opts)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeBytes(w, pipeline.ContentType(format), artifacts[format])
}

// mindmapOptions reads ?format= (default def), ?detailed=true and ?scale=.
func mindmapOptions(r *http.Request, def string) (pipeline.Options, string, error) {
	q := r.URL.Query()
	format := q.Get("format")
	if format == "" {
		format = def
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		return pipeline.Options{}, "", err
	}
	opts := pipeline.Options{
		Formats:  []string{format},
		Detailed: q.Get("detailed") == "true",
	}
	if v := q.Get("scale"); v != "" {
		scale, err := strconv.ParseFloat(v, 64)
		if err != nil || scale <= 0 || scale > 8 {
			return pipeline.Options{}, "", errors.New(errors.ErrCodeInvalidInput, "scale must be a number in (0, 8]")
		}
		opts.Scale = scale
	}
	return opts, format, nil
}

// =============================================================================
// Settings and backup
// =============================================================================

func (s *Server) getSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.settings.Current())
}

func (s *Server) putSettings(w http.ResponseWriter, r *http.Request) {
	next := s.settings.Current()
	if err := decodeBody(r, &next); err != nil {
		writeError(w, r, err)
		return
	}
	saved, err := s.settings.Replace(r.Context(), next)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

func (s *Server) backup(w http.ResponseWriter, r *http.Request) {
	b, err := s.lib.Snapshot(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	var buf bytes.Buffer
	if err := abcio.WriteBackup(b, abcio.FormatJSON, &buf); err != nil {
		writeError(w, r, err)
		return
	}
	setAttachment(w, "abclisten-backup", abcio.FormatJSON)
	writeBytes(w, abcio.ContentType(abcio.FormatJSON), buf.Bytes())
}

func setAttachment(w http.ResponseWriter, base, ext string) {
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", base+"."+ext))
}

// param returns the unescaped URL parameter key.
func param(r *http.Request, key string) string {
	v := chi.URLParam(r, key)
	if u, err := url.PathUnescape(v); err == nil {
		return u
	}
	return v
}
