package library

import (
	"context"
	"slices"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/abclisten/pkg/errors"
	"github.com/matzehuels/abclisten/pkg/kawa"
	"github.com/matzehuels/abclisten/pkg/store"
	"github.com/matzehuels/abclisten/pkg/wordlist"
)

func newTestLibrary(t *testing.T) *Library {
	t.Helper()
	lib := New(store.NewMemoryStore())
	lib.now = func() time.Time { return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC) }
	return lib
}

func mustList(t *testing.T, name string) wordlist.List {
	t.Helper()
	l, err := wordlist.New(name)
	if err != nil {
		t.Fatal(err)
	}
	return l
}

func TestListRoundTrip(t *testing.T) {
	ctx := context.Background()
	lib := newTestLibrary(t)

	if err := lib.SaveList(ctx, mustList(t, "Tiere")); err != nil {
		t.Fatalf("SaveList: %v", err)
	}
	if _, err := lib.AddWord(ctx, "Tiere", "", "Affe", "climbs trees"); err != nil {
		t.Fatalf("AddWord: %v", err)
	}
	if _, err := lib.AddWord(ctx, "Tiere", "b", "Bär", ""); err != nil {
		t.Fatalf("AddWord: %v", err)
	}

	got, err := lib.GetList(ctx, "Tiere")
	if err != nil {
		t.Fatalf("GetList: %v", err)
	}
	if got.Count() != 2 {
		t.Errorf("Count = %d, want 2", got.Count())
	}
	if !slices.Equal(got.Letters(), []string{"a", "b"}) {
		t.Errorf("Letters = %v", got.Letters())
	}
	a := got.Entries("a")[0]
	if a.Text != "Affe" || a.Explanation != "climbs trees" || a.Version != 1 || a.Timestamp == nil {
		t.Errorf("entry = %+v", a)
	}
}

func TestReplaceAndRemoveWord(t *testing.T) {
	ctx := context.Background()
	lib := newTestLibrary(t)
	_ = lib.SaveList(ctx, mustList(t, "Obst"))
	_, _ = lib.AddWord(ctx, "Obst", "", "Apfel", "")

	list, err := lib.ReplaceWord(ctx, "Obst", "A", 0, "Aprikose", "orange")
	if err != nil {
		t.Fatalf("ReplaceWord: %v", err)
	}
	if e := list.Entries("a")[0]; e.Text != "Aprikose" || e.Version != 2 {
		t.Errorf("replaced entry = %+v", e)
	}

	list, err = lib.RemoveWord(ctx, "Obst", "a", 0)
	if err != nil {
		t.Fatalf("RemoveWord: %v", err)
	}
	if list.Count() != 0 {
		t.Errorf("Count after remove = %d", list.Count())
	}

	if _, err := lib.RemoveWord(ctx, "Obst", "a", 0); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("RemoveWord out of range = %v, want NOT_FOUND", err)
	}
}

func TestMissingList(t *testing.T) {
	ctx := context.Background()
	lib := newTestLibrary(t)

	tests := []struct {
		name string
		fn   func() error
	}{
		{"get", func() error { _, err := lib.GetList(ctx, "nope"); return err }},
		{"delete", func() error { return lib.DeleteList(ctx, "nope") }},
		{"add", func() error { _, err := lib.AddWord(ctx, "nope", "", "Apfel", ""); return err }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.fn(); !errors.Is(err, errors.ErrCodeListNotFound) {
				t.Errorf("err = %v, want LIST_NOT_FOUND", err)
			}
		})
	}
}

func TestListNamesAndDelete(t *testing.T) {
	ctx := context.Background()
	lib := newTestLibrary(t)
	for _, n := range []string{"Tiere", "Obst", "Berufe"} {
		_ = lib.SaveList(ctx, mustList(t, n))
	}

	names, err := lib.ListNames(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"Berufe", "Obst", "Tiere"}; !slices.Equal(names, want) {
		t.Errorf("ListNames = %v, want %v", names, want)
	}

	if err := lib.DeleteList(ctx, "Obst"); err != nil {
		t.Fatal(err)
	}
	names, _ = lib.ListNames(ctx)
	if want := []string{"Berufe", "Tiere"}; !slices.Equal(names, want) {
		t.Errorf("ListNames after delete = %v, want %v", names, want)
	}
}

func TestSaveListRejectsBadName(t *testing.T) {
	err := newTestLibrary(t).SaveList(context.Background(), wordlist.List{Name: ""})
	if !errors.Is(err, errors.ErrCodeInvalidListName) {
		t.Errorf("err = %v, want INVALID_LIST_NAME", err)
	}
}

func TestKawaLifecycle(t *testing.T) {
	ctx := context.Background()
	lib := newTestLibrary(t)

	k, err := lib.SetAssociation(ctx, "TEST", 0, "Tisch")
	if err != nil {
		t.Fatalf("SetAssociation: %v", err)
	}
	if _, err = lib.SetAssociation(ctx, "TEST", 3, "Tür"); err != nil {
		t.Fatal(err)
	}
	k, err = lib.GetKawa(ctx, "TEST")
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"Tisch", "", "", "Tür"}; !slices.Equal(k.Entries, want) {
		t.Errorf("Entries = %v, want %v", k.Entries, want)
	}

	if _, err := lib.SetAssociation(ctx, "TEST", 9, "x"); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("out of range = %v", err)
	}

	words, _ := lib.KawaWords(ctx)
	if !slices.Equal(words, []string{"TEST"}) {
		t.Errorf("KawaWords = %v", words)
	}

	if err := lib.DeleteKawa(ctx, "TEST"); err != nil {
		t.Fatal(err)
	}
	if _, err := lib.GetKawa(ctx, "TEST"); !errors.Is(err, errors.ErrCodeKawaNotFound) {
		t.Errorf("GetKawa after delete = %v", err)
	}
}

func TestCombinedInput(t *testing.T) {
	ctx := context.Background()
	lib := newTestLibrary(t)
	_ = lib.SaveList(ctx, mustList(t, "Tiere"))
	k, _ := kawa.New("Haus")
	_ = lib.SaveKawa(ctx, k)

	in, err := lib.CombinedInput(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(in.Lists) != 1 || in.Lists[0].Name != "Tiere" {
		t.Errorf("Lists = %+v", in.Lists)
	}
	if len(in.Kawas) != 1 || in.Kawas[0].Word != "Haus" {
		t.Errorf("Kawas = %+v", in.Kawas)
	}
}

func TestSnapshotRestore(t *testing.T) {
	ctx := context.Background()
	src := newTestLibrary(t)
	_ = src.SaveList(ctx, mustList(t, "Tiere"))
	_, _ = src.AddWord(ctx, "Tiere", "", "Zebra", "stripes")
	_, _ = src.SetAssociation(ctx, "Haus", 1, "Apfel")

	b, err := src.Snapshot(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if b.Version != BackupVersion || len(b.Lists) != 1 || len(b.Kawas) != 1 {
		t.Fatalf("Snapshot = %+v", b)
	}

	dst := newTestLibrary(t)
	_ = dst.SaveList(ctx, mustList(t, "Alt"))
	_ = dst.Store().Set(ctx, "settings:accessibility", []byte("{}"))

	if err := dst.Restore(ctx, b, true); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	again, _ := dst.Snapshot(ctx)
	if diff := cmp.Diff(b, again); diff != "" {
		t.Errorf("restored library differs (-want +got):\n%s", diff)
	}
	if _, ok, _ := dst.Store().Get(ctx, "settings:accessibility"); !ok {
		t.Error("replace restore removed settings")
	}
}

func TestRestoreMergeAndValidation(t *testing.T) {
	ctx := context.Background()
	lib := newTestLibrary(t)
	_ = lib.SaveList(ctx, mustList(t, "Alt"))

	err := lib.Restore(ctx, Backup{Lists: []wordlist.List{{Name: "Neu"}}}, false)
	if err != nil {
		t.Fatal(err)
	}
	names, _ := lib.ListNames(ctx)
	if !slices.Equal(names, []string{"Alt", "Neu"}) {
		t.Errorf("merge restore names = %v", names)
	}

	bad := Backup{Lists: []wordlist.List{{Name: "Gut"}}, Kawas: []kawa.Kawa{{Word: "1x"}}}
	if err := lib.Restore(ctx, bad, false); err == nil {
		t.Error("Restore with invalid kawa word should fail")
	}
	if _, err := lib.GetList(ctx, "Gut"); err == nil {
		t.Error("invalid backup was partially written")
	}
}

func TestEnsureList(t *testing.T) {
	ctx := context.Background()
	lib := newTestLibrary(t)

	if _, err := lib.EnsureList(ctx, "Tiere"); err != nil {
		t.Fatalf("EnsureList new: %v", err)
	}
	if _, err := lib.AddWord(ctx, "Tiere", "", "Affe", ""); err != nil {
		t.Fatal(err)
	}
	// A second call must not replace the list with an empty one
	list, err := lib.EnsureList(ctx, "Tiere")
	if err != nil {
		t.Fatalf("EnsureList existing: %v", err)
	}
	if list.Count() != 1 {
		t.Errorf("EnsureList existing returned %d words, want 1", list.Count())
	}
	if _, err := lib.EnsureList(ctx, "a/b"); !errors.Is(err, errors.ErrCodeInvalidListName) {
		t.Errorf("EnsureList bad name = %v", err)
	}
}

func TestCreateList(t *testing.T) {
	ctx := context.Background()
	lib := newTestLibrary(t)

	if _, err := lib.CreateList(ctx, "Tiere"); err != nil {
		t.Fatalf("CreateList: %v", err)
	}
	if _, err := lib.CreateList(ctx, "Tiere"); !errors.Is(err, errors.ErrCodeInvalidListName) {
		t.Errorf("CreateList duplicate = %v, want INVALID_LIST_NAME", err)
	}
}
