package io

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/abclisten/pkg/errors"
	"github.com/matzehuels/abclisten/pkg/kawa"
	"github.com/matzehuels/abclisten/pkg/wordlist"
)

// ReadList decodes a list in format (csv, json or yaml). For CSV the list
// is called name; for JSON and YAML a non-empty name overrides the stored
// one. Entries from CSV are flagged Imported.
func ReadList(name string, r io.Reader, format string) (wordlist.List, error) {
	switch format {
	case FormatCSV:
		return ReadListCSV(name, r)
	case FormatJSON, FormatYAML:
	default:
		return wordlist.List{}, errors.New(errors.ErrCodeInvalidFormat, "cannot import %s (valid: csv, json, yaml)", format)
	}

	var list wordlist.List
	var err error
	if format == FormatJSON {
		err = json.NewDecoder(r).Decode(&list)
	} else {
		err = yaml.NewDecoder(r).Decode(&list)
	}
	if err != nil {
		return wordlist.List{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode %s list", format)
	}
	if name != "" {
		list.Name = name
	}
	if _, err := wordlist.New(list.Name); err != nil {
		return wordlist.List{}, err
	}
	buckets := make(wordlist.Buckets, len(list.Buckets))
	for _, letter := range slices.Sorted(maps.Keys(list.Buckets)) {
		l, ok := wordlist.NormalizeLetter(letter)
		if !ok {
			return wordlist.List{}, errors.New(errors.ErrCodeInvalidLetter, "invalid bucket letter %q", letter)
		}
		buckets[l] = append(buckets[l], list.Buckets[letter]...)
	}
	list.Buckets = buckets
	return list, nil
}

// ImportListFile reads a list from path, choosing the format from the file
// extension.
func ImportListFile(name, path string) (wordlist.List, error) {
	if err := errors.ValidatePath(path); err != nil {
		return wordlist.List{}, err
	}
	format, err := FormatFromPath(path)
	if err != nil {
		return wordlist.List{}, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return wordlist.List{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "import %s", path)
		}
		return wordlist.List{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadList(name, f, format)
}

// ReadKawa decodes a KaWa in format (csv, json or yaml). CSV rows belong to
// word; JSON and YAML carry their own word, which must match word when word
// is non-empty.
func ReadKawa(word string, r io.Reader, format string) (kawa.Kawa, error) {
	switch format {
	case FormatCSV:
		return ReadKawaCSV(word, r)
	case FormatJSON, FormatYAML:
	default:
		return kawa.Kawa{}, errors.New(errors.ErrCodeInvalidFormat, "cannot import %s (valid: csv, json, yaml)", format)
	}

	var stored kawa.Kawa
	var err error
	if format == FormatJSON {
		err = json.NewDecoder(r).Decode(&stored)
	} else {
		err = yaml.NewDecoder(r).Decode(&stored)
	}
	if err != nil {
		return kawa.Kawa{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode %s kawa", format)
	}
	if word != "" && stored.Word != word {
		return kawa.Kawa{}, errors.New(errors.ErrCodeInvalidInput, "file holds the KaWa for %q, not %q", stored.Word, word)
	}

	k, err := kawa.New(stored.Word)
	if err != nil {
		return kawa.Kawa{}, err
	}
	if len(stored.Entries) > len(k.Entries) {
		return kawa.Kawa{}, errors.New(errors.ErrCodeInvalidFormat, "%q has %d letters but %d entries", k.Word, len(k.Entries), len(stored.Entries))
	}
	for pos, text := range stored.Entries {
		if k, err = k.Set(pos, text); err != nil {
			return kawa.Kawa{}, err
		}
	}
	return k, nil
}

// ImportKawaFile reads a KaWa from path, choosing the format from the file
// extension.
func ImportKawaFile(word, path string) (kawa.Kawa, error) {
	if err := errors.ValidatePath(path); err != nil {
		return kawa.Kawa{}, err
	}
	format, err := FormatFromPath(path)
	if err != nil {
		return kawa.Kawa{}, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return kawa.Kawa{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "import %s", path)
		}
		return kawa.Kawa{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadKawa(word, f, format)
}
