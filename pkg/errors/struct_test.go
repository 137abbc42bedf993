package errors

import (
	"strings"
	"testing"
)

type testSettings struct {
	Scale  float64 `json:"fontScale" validate:"gte=0.5,lte=3"`
	Scheme string  `json:"colorScheme" validate:"oneof=light dark system"`
	Nested struct {
		Addr string `toml:"addr" validate:"required"`
	} `json:"server"`
}

func TestValidateStruct(t *testing.T) {
	ok := testSettings{Scale: 1, Scheme: "dark"}
	ok.Nested.Addr = ":8080"
	if err := ValidateStruct(ErrCodeInvalidSetting, ok); err != nil {
		t.Fatalf("valid struct: %v", err)
	}

	bad := testSettings{Scale: 9, Scheme: "neon"}
	err := ValidateStruct(ErrCodeInvalidSetting, bad)
	if !Is(err, ErrCodeInvalidSetting) {
		t.Fatalf("code = %v, want %v", GetCode(err), ErrCodeInvalidSetting)
	}
	msg := UserMessage(err)
	for _, want := range []string{
		"fontScale must be at most 3",
		"colorScheme must be one of: light dark system",
		"server.addr is required",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("message %q missing %q", msg, want)
		}
	}
}
