package crypto

import (
	"bytes"
	"errors"
	"testing"
)

// cheap params keep the tests fast
var testParams = Params{Time: 1, Memory: 1024, Threads: 1}

func testBox(t *testing.T, secret string) *Box {
	t.Helper()
	b, err := NewBoxWithParams(secret, testParams)
	if err != nil {
		t.Fatalf("NewBoxWithParams: %v", err)
	}
	return b
}

func TestSealOpen(t *testing.T) {
	box := testBox(t, "test-secret-123!")
	plaintext := []byte(`{"text_ai":{"deepseek":"sk-1234567890"}}`)

	sealed, err := box.Seal(plaintext)
	if err != nil {
		t.Fatalf("Seal failed: %v", err)
	}

	if len(sealed) <= len(plaintext)+HeaderSize {
		t.Error("sealed blob should carry header and tag")
	}
	if !IsSealed(sealed) {
		t.Error("missing magic bytes")
	}
	if bytes.Contains(sealed, []byte("sk-1234567890")) {
		t.Error("sealed blob leaks plaintext")
	}

	opened, err := box.Open(sealed)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if !bytes.Equal(opened, plaintext) {
		t.Error("opened data doesn't match original")
	}
}

func TestOpenWrongSecret(t *testing.T) {
	sealed, err := testBox(t, "correct").Seal([]byte("secret data"))
	if err != nil {
		t.Fatalf("Seal failed: %v", err)
	}

	_, err = testBox(t, "wrong").Open(sealed)
	if !errors.Is(err, ErrDecryptFailed) {
		t.Errorf("expected ErrDecryptFailed, got: %v", err)
	}
}

func TestOpenTamperedHeader(t *testing.T) {
	box := testBox(t, "secret")
	sealed, _ := box.Seal([]byte("data"))

	sealed[5] = 2 // bump argon2 time
	if _, err := box.Open(sealed); !errors.Is(err, ErrDecryptFailed) {
		t.Errorf("expected ErrDecryptFailed for tampered header, got: %v", err)
	}
}

func TestOpenInvalidData(t *testing.T) {
	box := testBox(t, "secret")

	if _, err := box.Open([]byte("short")); !errors.Is(err, ErrInvalidMagic) {
		t.Errorf("short data: got %v, want ErrInvalidMagic", err)
	}
	if _, err := box.Open(bytes.Repeat([]byte("x"), HeaderSize+20)); !errors.Is(err, ErrInvalidMagic) {
		t.Errorf("wrong magic: got %v, want ErrInvalidMagic", err)
	}

	sealed, _ := box.Seal([]byte("data"))
	sealed[4] = 9
	if _, err := box.Open(sealed); !errors.Is(err, ErrInvalidVersion) {
		t.Errorf("bad version: got %v, want ErrInvalidVersion", err)
	}
}

func TestSealDifferentEachTime(t *testing.T) {
	box := testBox(t, "same")
	plaintext := []byte("same data")

	a, _ := box.Seal(plaintext)
	b, _ := box.Seal(plaintext)
	if bytes.Equal(a, b) {
		t.Error("sealing the same data twice should differ")
	}

	oa, _ := box.Open(a)
	ob, _ := box.Open(b)
	if !bytes.Equal(oa, ob) {
		t.Error("both blobs should open to the same plaintext")
	}
}

func TestNewBoxValidation(t *testing.T) {
	if _, err := NewBox(""); !errors.Is(err, ErrEmptySecret) {
		t.Errorf("empty secret: got %v", err)
	}
	if _, err := NewBoxWithParams("s", Params{}); err == nil {
		t.Error("zero params should be rejected")
	}
	b, err := NewBox("s")
	if err != nil {
		t.Fatalf("NewBox: %v", err)
	}
	if b.params != DefaultParams {
		t.Errorf("params = %+v, want defaults", b.params)
	}
}

func TestIsSealed(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want bool
	}{
		{"plain json", []byte(`{"a":1}`), false},
		{"too short", []byte("PCS"), false},
		{"magic only", []byte("PCSK"), true},
		{"empty", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsSealed(tt.data); got != tt.want {
				t.Errorf("IsSealed(%q) = %v, want %v", tt.data, got, tt.want)
			}
		})
	}
}
