package accessibility

import (
	"context"
	"testing"

	"github.com/matzehuels/abclisten/pkg/errors"
	"github.com/matzehuels/abclisten/pkg/store"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
}

func TestWith(t *testing.T) {
	tests := []struct {
		key, value string
		wantErr    bool
		check      func(Settings) bool
	}{
		{"fontScale", "1.25", false, func(s Settings) bool { return s.FontScale == 1.25 }},
		{"fontScale", "4", true, nil},
		{"fontScale", "big", true, nil},
		{"lineSpacing", "2", false, func(s Settings) bool { return s.LineSpacing == 2 }},
		{"highContrast", "true", false, func(s Settings) bool { return s.HighContrast }},
		{"reducedMotion", "1", false, func(s Settings) bool { return s.ReducedMotion }},
		{"dyslexiaFont", "yes", true, nil},
		{"colorScheme", "Dark", false, func(s Settings) bool { return s.ColorScheme == SchemeDark }},
		{"colorScheme", "neon", true, nil},
		{"fontSize", "12", true, nil},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			got, err := Default().With(tt.key, tt.value)
			if (err != nil) != tt.wantErr {
				t.Fatalf("With error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidSetting) {
				t.Errorf("code = %v", errors.GetCode(err))
			}
			if tt.check != nil && !tt.check(got) {
				t.Errorf("With(%s, %s) = %+v", tt.key, tt.value, got)
			}
		})
	}
}

func TestManagerPersists(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()

	m := NewManager(s)
	if _, err := m.Set(ctx, "fontScale", "1.5"); err != nil {
		t.Fatal(err)
	}
	if _, err := m.Update(ctx, func(st *Settings) { st.HighContrast = true }); err != nil {
		t.Fatal(err)
	}

	other := NewManager(s)
	got, err := other.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.FontScale != 1.5 || !got.HighContrast {
		t.Errorf("loaded = %+v", got)
	}
	if other.Current() != got {
		t.Error("Load should update Current")
	}
}

func TestManagerRejectsInvalidUpdate(t *testing.T) {
	ctx := context.Background()
	m := NewManager(store.NewMemoryStore())

	_, err := m.Update(ctx, func(st *Settings) { st.LineSpacing = 0 })
	if !errors.Is(err, errors.ErrCodeInvalidSetting) {
		t.Fatalf("err = %v, want INVALID_SETTING", err)
	}
	if m.Current() != Default() {
		t.Errorf("invalid update changed settings: %+v", m.Current())
	}
}

func TestManagerLoadMissingKeepsDefaults(t *testing.T) {
	m := NewManager(store.NewMemoryStore())
	got, err := m.Load(context.Background())
	if err != nil || got != Default() {
		t.Errorf("Load = (%+v, %v), want defaults", got, err)
	}
}

func TestManagerLoadRejectsCorrupt(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	_ = s.Set(ctx, StoreKey, []byte(`{"fontScale": 99}`))

	m := NewManager(s)
	if _, err := m.Load(ctx); err == nil {
		t.Error("Load of out-of-range settings should fail")
	}
	if m.Current() != Default() {
		t.Error("failed Load should keep defaults")
	}
}

func TestManagerReset(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	m := NewManager(s)
	_, _ = m.Set(ctx, "colorScheme", "dark")

	if err := m.Reset(ctx); err != nil {
		t.Fatal(err)
	}
	if m.Current() != Default() {
		t.Errorf("Current after Reset = %+v", m.Current())
	}
	if _, ok, _ := s.Get(ctx, StoreKey); ok {
		t.Error("Reset should remove persisted settings")
	}
}
