package io

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/matzehuels/abclisten/pkg/errors"
	"github.com/matzehuels/abclisten/pkg/kawa"
	"github.com/matzehuels/abclisten/pkg/wordlist"
)

// ListCSVHeader is the header row written by [WriteListCSV].
var ListCSVHeader = []string{"letter", "text", "explanation", "version", "imported", "timestamp"}

// KawaCSVHeader is the header row written by [WriteKawaCSV].
var KawaCSVHeader = []string{"position", "letter", "association"}

// WriteListCSV writes one row per entry in letter order.
func WriteListCSV(list wordlist.List, w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ListCSVHeader); err != nil {
		return err
	}
	for _, letter := range list.Letters() {
		for _, e := range list.Entries(letter) {
			ts := ""
			if e.Timestamp != nil {
				ts = strconv.FormatInt(*e.Timestamp, 10)
			}
			row := []string{
				letter, e.Text, e.Explanation,
				strconv.Itoa(e.Version), strconv.FormatBool(e.Imported), ts,
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadListCSV reads entries into a new list called name.
//
// A header row is recognised when its cells name known columns ("letter",
// "text" or "word", "explanation", "version", "timestamp"); columns may
// then appear in any order. Without a header the first column is the word
// and the second the explanation. Every row read is flagged Imported. Rows
// without text are skipped; an empty letter is derived from the text.
func ReadListCSV(name string, r io.Reader) (wordlist.List, error) {
	list, err := wordlist.New(name)
	if err != nil {
		return wordlist.List{}, err
	}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return wordlist.List{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "read csv")
	}
	if len(records) == 0 {
		return list, nil
	}

	cols, hasHeader := listColumns(records[0])
	if hasHeader {
		records = records[1:]
	}

	for i, rec := range records {
		line := i + 1
		if hasHeader {
			line++
		}
		e, letter, err := cols.entry(rec)
		if err != nil {
			return wordlist.List{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "line %d", line)
		}
		if e.Text == "" {
			continue
		}
		if list, err = list.Add(letter, e); err != nil {
			return wordlist.List{}, errors.Wrap(errors.GetCode(err), err, "line %d", line)
		}
	}
	return list, nil
}

// csvColumns holds column indexes; -1 means absent.
type csvColumns struct {
	letter, text, explanation, version, timestamp int
}

func listColumns(header []string) (csvColumns, bool) {
	cols := csvColumns{letter: -1, text: -1, explanation: -1, version: -1, timestamp: -1}
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "letter":
			cols.letter = i
		case "text", "word":
			cols.text = i
		case "explanation", "description":
			cols.explanation = i
		case "version":
			cols.version = i
		case "timestamp":
			cols.timestamp = i
		}
	}
	if cols.text >= 0 {
		return cols, true
	}
	return csvColumns{letter: -1, text: 0, explanation: 1, version: -1, timestamp: -1}, false
}

func (c csvColumns) entry(rec []string) (wordlist.Entry, string, error) {
	cell := func(i int) string {
		if i < 0 || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	e := wordlist.Entry{
		Text:        cell(c.text),
		Explanation: cell(c.explanation),
		Version:     1,
		Imported:    true,
	}
	if v := cell(c.version); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return e, "", fmt.Errorf("invalid version %q", v)
		}
		e.Version = n
	}
	if v := cell(c.timestamp); v != "" {
		ts, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return e, "", fmt.Errorf("invalid timestamp %q", v)
		}
		e.Timestamp = &ts
	}
	return e, cell(c.letter), nil
}

// WriteKawaCSV writes one row per letter position, including empty ones.
func WriteKawaCSV(k kawa.Kawa, w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(KawaCSVHeader); err != nil {
		return err
	}
	for i, l := range k.Letters() {
		if err := cw.Write([]string{strconv.Itoa(i), strings.ToUpper(l), k.At(i)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadKawaCSV reads a KaWa for word from rows written by [WriteKawaCSV].
// Rows are matched by position; the letter column is informational.
func ReadKawaCSV(word string, r io.Reader) (kawa.Kawa, error) {
	k, err := kawa.New(word)
	if err != nil {
		return kawa.Kawa{}, err
	}
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	records, err := cr.ReadAll()
	if err != nil {
		return kawa.Kawa{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "read csv")
	}
	for i, rec := range records {
		if len(rec) < 3 || (i == 0 && strings.EqualFold(rec[0], KawaCSVHeader[0])) {
			continue
		}
		pos, err := strconv.Atoi(strings.TrimSpace(rec[0]))
		if err != nil {
			return kawa.Kawa{}, errors.New(errors.ErrCodeInvalidFormat, "line %d: invalid position %q", i+1, rec[0])
		}
		if k, err = k.Set(pos, rec[2]); err != nil {
			return kawa.Kawa{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "line %d", i+1)
		}
	}
	return k, nil
}
