// Package library is the typed repository for ABC-Lists and KaWas on top of
// a [store.Store].
//
// Lists are stored as JSON under "abc-list:<name>" and KaWas under
// "kawa:<word>". Word edits are read-modify-write cycles serialized by the
// Library; they are not atomic across processes sharing a backend.
package library

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/matzehuels/abclisten/pkg/errors"
	"github.com/matzehuels/abclisten/pkg/kawa"
	"github.com/matzehuels/abclisten/pkg/mindmap"
	"github.com/matzehuels/abclisten/pkg/observability"
	"github.com/matzehuels/abclisten/pkg/store"
	"github.com/matzehuels/abclisten/pkg/wordlist"
)

// Key prefixes.
const (
	ListPrefix = "abc-list:"
	KawaPrefix = "kawa:"
)

// Library reads and writes lists and KaWas. It is safe for concurrent use.
type Library struct {
	mu    sync.Mutex
	store store.Store
	now   func() time.Time
}

// New creates a library backed by s.
func New(s store.Store) *Library {
	return &Library{store: s, now: time.Now}
}

// Store returns the backing store.
func (l *Library) Store() store.Store { return l.store }

// =============================================================================
// ABC-Lists
// =============================================================================

// SaveList stores list, replacing any list with the same name.
func (l *Library) SaveList(ctx context.Context, list wordlist.List) error {
	if err := errors.ValidateListName(list.Name); err != nil {
		return err
	}
	if list.Buckets == nil {
		list.Buckets = wordlist.Buckets{}
	}
	return l.put(ctx, ListPrefix, list.Name, list)
}

// GetList loads the list called name.
func (l *Library) GetList(ctx context.Context, name string) (wordlist.List, error) {
	var list wordlist.List
	ok, err := l.get(ctx, ListPrefix, name, &list)
	if err != nil {
		return wordlist.List{}, err
	}
	if !ok {
		return wordlist.List{}, errors.New(errors.ErrCodeListNotFound, "list %q not found", name)
	}
	if list.Buckets == nil {
		list.Buckets = wordlist.Buckets{}
	}
	return list, nil
}

// CreateList stores a new empty list called name. It fails with
// INVALID_LIST_NAME when the list already exists.
func (l *Library) CreateList(ctx context.Context, name string) (wordlist.List, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, err := l.GetList(ctx, name); err == nil {
		return wordlist.List{}, errors.New(errors.ErrCodeInvalidListName, "list %q already exists", name)
	} else if !errors.Is(err, errors.ErrCodeListNotFound) {
		return wordlist.List{}, err
	}
	return l.createList(ctx, name)
}

// EnsureList returns the list called name, creating it empty when missing.
// Check and create happen under the library lock, so a concurrent edit is
// never overwritten by the empty list.
func (l *Library) EnsureList(ctx context.Context, name string) (wordlist.List, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	list, err := l.GetList(ctx, name)
	if errors.Is(err, errors.ErrCodeListNotFound) {
		return l.createList(ctx, name)
	}
	return list, err
}

func (l *Library) createList(ctx context.Context, name string) (wordlist.List, error) {
	list, err := wordlist.New(name)
	if err != nil {
		return wordlist.List{}, err
	}
	if err := l.SaveList(ctx, list); err != nil {
		return wordlist.List{}, err
	}
	return list, nil
}

// DeleteList removes the list called name.
func (l *Library) DeleteList(ctx context.Context, name string) error {
	if _, err := l.GetList(ctx, name); err != nil {
		return err
	}
	return l.remove(ctx, ListPrefix, name)
}

// ListNames returns the names of all stored lists, sorted.
func (l *Library) ListNames(ctx context.Context) ([]string, error) {
	return l.names(ctx, ListPrefix)
}

// Lists loads every stored list in name order.
func (l *Library) Lists(ctx context.Context) ([]wordlist.List, error) {
	names, err := l.ListNames(ctx)
	if err != nil {
		return nil, err
	}
	lists := make([]wordlist.List, 0, len(names))
	for _, name := range names {
		list, err := l.GetList(ctx, name)
		if err != nil {
			return nil, err
		}
		lists = append(lists, list)
	}
	return lists, nil
}

// AddWord appends a new word to the list. An empty letter is derived from
// the word text.
func (l *Library) AddWord(ctx context.Context, name, letter, text, explanation string) (wordlist.List, error) {
	return l.editList(ctx, name, func(list wordlist.List) (wordlist.List, error) {
		return list.Add(letter, wordlist.NewEntry(text, explanation, l.now()))
	})
}

// ReplaceWord replaces the word at index under letter, bumping its version.
func (l *Library) ReplaceWord(ctx context.Context, name, letter string, index int, text, explanation string) (wordlist.List, error) {
	return l.editList(ctx, name, func(list wordlist.List) (wordlist.List, error) {
		return list.Replace(letter, index, wordlist.NewEntry(text, explanation, l.now()))
	})
}

// RemoveWord deletes the word at index under letter.
func (l *Library) RemoveWord(ctx context.Context, name, letter string, index int) (wordlist.List, error) {
	return l.editList(ctx, name, func(list wordlist.List) (wordlist.List, error) {
		return list.Remove(letter, index)
	})
}

func (l *Library) editList(ctx context.Context, name string, edit func(wordlist.List) (wordlist.List, error)) (wordlist.List, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	list, err := l.GetList(ctx, name)
	if err != nil {
		return wordlist.List{}, err
	}
	list, err = edit(list)
	if err != nil {
		return wordlist.List{}, err
	}
	if err := l.SaveList(ctx, list); err != nil {
		return wordlist.List{}, err
	}
	return list, nil
}

// =============================================================================
// KaWas
// =============================================================================

// SaveKawa stores k, replacing any KaWa for the same word.
func (l *Library) SaveKawa(ctx context.Context, k kawa.Kawa) error {
	if err := errors.ValidateKawaWord(k.Word); err != nil {
		return err
	}
	return l.put(ctx, KawaPrefix, k.Word, k)
}

// GetKawa loads the KaWa for word.
func (l *Library) GetKawa(ctx context.Context, word string) (kawa.Kawa, error) {
	var k kawa.Kawa
	ok, err := l.get(ctx, KawaPrefix, word, &k)
	if err != nil {
		return kawa.Kawa{}, err
	}
	if !ok {
		return kawa.Kawa{}, errors.New(errors.ErrCodeKawaNotFound, "kawa %q not found", word)
	}
	return k, nil
}

// SetAssociation sets the association at pos, creating the KaWa when it
// does not exist yet.
func (l *Library) SetAssociation(ctx context.Context, word string, pos int, text string) (kawa.Kawa, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	k, err := l.GetKawa(ctx, word)
	if errors.Is(err, errors.ErrCodeKawaNotFound) {
		k, err = kawa.New(word)
	}
	if err != nil {
		return kawa.Kawa{}, err
	}
	if k, err = k.Set(pos, text); err != nil {
		return kawa.Kawa{}, err
	}
	if err := l.SaveKawa(ctx, k); err != nil {
		return kawa.Kawa{}, err
	}
	return k, nil
}

// DeleteKawa removes the KaWa for word.
func (l *Library) DeleteKawa(ctx context.Context, word string) error {
	if _, err := l.GetKawa(ctx, word); err != nil {
		return err
	}
	return l.remove(ctx, KawaPrefix, word)
}

// KawaWords returns the words of all stored KaWas, sorted.
func (l *Library) KawaWords(ctx context.Context) ([]string, error) {
	return l.names(ctx, KawaPrefix)
}

// Kawas loads every stored KaWa in word order.
func (l *Library) Kawas(ctx context.Context) ([]kawa.Kawa, error) {
	words, err := l.KawaWords(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]kawa.Kawa, 0, len(words))
	for _, w := range words {
		k, err := l.GetKawa(ctx, w)
		if err != nil {
			return nil, err
		}
		out = append(out, k)
	}
	return out, nil
}

// CombinedInput loads everything in the library as input for
// [mindmap.Combined].
func (l *Library) CombinedInput(ctx context.Context) (mindmap.CombinedInput, error) {
	lists, err := l.Lists(ctx)
	if err != nil {
		return mindmap.CombinedInput{}, err
	}
	kawas, err := l.Kawas(ctx)
	if err != nil {
		return mindmap.CombinedInput{}, err
	}
	return mindmap.CombinedInput{Lists: lists, Kawas: kawas}, nil
}

// =============================================================================
// Store access
// =============================================================================

func (l *Library) put(ctx context.Context, prefix, name string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode %s%s", prefix, name)
	}
	if err := l.store.Set(ctx, prefix+name, data); err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "save %s%s", prefix, name)
	}
	observability.Store().OnSet(ctx, keyType(prefix), len(data))
	return nil
}

func (l *Library) get(ctx context.Context, prefix, name string, v any) (bool, error) {
	data, ok, err := l.store.Get(ctx, prefix+name)
	if err != nil {
		return false, errors.Wrap(errors.ErrCodeStorage, err, "load %s%s", prefix, name)
	}
	if !ok {
		observability.Store().OnMiss(ctx, keyType(prefix))
		return false, nil
	}
	observability.Store().OnHit(ctx, keyType(prefix))
	if err := json.Unmarshal(data, v); err != nil {
		return false, errors.Wrap(errors.ErrCodeStorage, err, "decode %s%s", prefix, name)
	}
	return true, nil
}

func (l *Library) remove(ctx context.Context, prefix, name string) error {
	if err := l.store.Remove(ctx, prefix+name); err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "delete %s%s", prefix, name)
	}
	observability.Store().OnRemove(ctx, keyType(prefix))
	return nil
}

func (l *Library) names(ctx context.Context, prefix string) ([]string, error) {
	keys, err := l.store.Keys(ctx, prefix)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "list %s keys", strings.TrimSuffix(prefix, ":"))
	}
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = strings.TrimPrefix(k, prefix)
	}
	return names, nil
}

func keyType(prefix string) string {
	return strings.TrimSuffix(prefix, ":")
}
