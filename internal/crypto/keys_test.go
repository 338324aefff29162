package crypto

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

type failingReader struct{}

func (failingReader) Read(p []byte) (int, error) {
	return 0, errors.New("entropy source closed")
}

func TestDirectGeneratorDeterministic(t *testing.T) {
	// secret key 1 yields the generator point G
	secret := make([]byte, 32)
	secret[31] = 0x01
	gen := NewDirectGenerator(bytes.NewReader(secret))

	key, err := gen.Generate()
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	wantPub := "79be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798"
	if key.PublicHex != wantPub {
		t.Errorf("PublicHex = %s, want %s", key.PublicHex, wantPub)
	}
	if got := key.SecretHex(); got != strings.Repeat("0", 63)+"1" {
		t.Errorf("SecretHex() = %s", got)
	}
	if len(key.Compressed) != 33 {
		t.Errorf("compressed key length = %d, want 33", len(key.Compressed))
	}
	if !bytes.Equal(key.Compressed[1:], key.XOnly[:]) {
		t.Error("x-only key does not match the x coordinate of the compressed key")
	}
	if key.Mnemonic != "" {
		t.Errorf("direct key has mnemonic %q", key.Mnemonic)
	}
}

func TestDirectGeneratorIndependentDraws(t *testing.T) {
	gen := NewDirectGenerator(nil)
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		key, err := gen.Generate()
		if err != nil {
			t.Fatalf("Generate() error = %v", err)
		}
		if len(key.PublicHex) != 64 {
			t.Fatalf("PublicHex length = %d, want 64", len(key.PublicHex))
		}
		if seen[key.PublicHex] {
			t.Fatalf("duplicate key %s", key.PublicHex)
		}
		seen[key.PublicHex] = true
	}
}

func TestDirectGeneratorReaderError(t *testing.T) {
	gen := NewDirectGenerator(failingReader{})
	if _, err := gen.Generate(); err == nil {
		t.Fatal("expected error from failing entropy source")
	}
}

func TestKeysFromMnemonic(t *testing.T) {
	// NIP-06 test vector
	phrase := "leader monkey parrot ring guide accident before fence cannon height naive bean"
	key, err := KeysFromMnemonic(phrase, "")
	if err != nil {
		t.Fatalf("KeysFromMnemonic() error = %v", err)
	}

	if got, want := key.SecretHex(), "7f7ff03d123792d6ac594bfa67bf6d0c0ab55b6b1fdb6249303fe861f1ccba9a"; got != want {
		t.Errorf("secret = %s, want %s", got, want)
	}
	if got, want := key.PublicHex, "17162c921dc4d2518f9a101db33695df1afb56ab82f5ff3e5da6eec3ca5cd917"; got != want {
		t.Errorf("public = %s, want %s", got, want)
	}
	if key.Mnemonic != phrase {
		t.Errorf("Mnemonic = %q", key.Mnemonic)
	}
}

func TestKeysFromMnemonicPassphrase(t *testing.T) {
	phrase := "leader monkey parrot ring guide accident before fence cannon height naive bean"
	plain, err := KeysFromMnemonic(phrase, "")
	if err != nil {
		t.Fatal(err)
	}
	salted, err := KeysFromMnemonic(phrase, "hunter2")
	if err != nil {
		t.Fatal(err)
	}
	if plain.PublicHex == salted.PublicHex {
		t.Error("passphrase did not change the derived key")
	}
	if salted.Passphrase != "hunter2" {
		t.Errorf("Passphrase = %q", salted.Passphrase)
	}
}

func TestKeysFromMnemonicNormalizesPassphrase(t *testing.T) {
	phrase := "leader monkey parrot ring guide accident before fence cannon height naive bean"
	composed, err := KeysFromMnemonic(phrase, "caf\u00e9")
	if err != nil {
		t.Fatal(err)
	}
	decomposed, err := KeysFromMnemonic(phrase, "cafe\u0301")
	if err != nil {
		t.Fatal(err)
	}
	if composed.SecretHex() != decomposed.SecretHex() {
		t.Error("composed and decomposed passphrases derived different keys")
	}
	if composed.Passphrase != "caf\u00e9" {
		t.Errorf("Passphrase = %q, want caller's spelling", composed.Passphrase)
	}

	plain, err := KeysFromMnemonic(phrase, "cafe")
	if err != nil {
		t.Fatal(err)
	}
	if plain.SecretHex() == composed.SecretHex() {
		t.Error("accent was dropped from the passphrase")
	}
}

func TestKeysFromMnemonicInvalid(t *testing.T) {
	_, err := KeysFromMnemonic("not a real mnemonic phrase at all", "")
	if !errors.Is(err, ErrInvalidMnemonic) {
		t.Fatalf("error = %v, want ErrInvalidMnemonic", err)
	}
}

func TestMnemonicGenerator(t *testing.T) {
	// all-zero 128-bit entropy is the first BIP-39 vector
	gen, err := NewMnemonicGenerator(bytes.NewReader(make([]byte, 16)), 12, "")
	if err != nil {
		t.Fatalf("NewMnemonicGenerator() error = %v", err)
	}
	key, err := gen.Generate()
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	want := strings.Repeat("abandon ", 11) + "about"
	if key.Mnemonic != want {
		t.Fatalf("Mnemonic = %q, want %q", key.Mnemonic, want)
	}

	restored, err := KeysFromMnemonic(key.Mnemonic, "")
	if err != nil {
		t.Fatal(err)
	}
	if restored.PublicHex != key.PublicHex || restored.SecretHex() != key.SecretHex() {
		t.Error("restored key differs from generated key")
	}
}

func TestMnemonicGeneratorWordCounts(t *testing.T) {
	tests := []struct {
		words   int
		wantErr bool
	}{
		{words: 12},
		{words: 15},
		{words: 18},
		{words: 21},
		{words: 24},
		{words: 11, wantErr: true},
		{words: 25, wantErr: true},
		{words: -12, wantErr: true},
	}

	for _, tt := range tests {
		gen, err := NewMnemonicGenerator(nil, tt.words, "")
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidWordCount) {
				t.Errorf("words=%d: error = %v, want ErrInvalidWordCount", tt.words, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("words=%d: error = %v", tt.words, err)
		}
		key, err := gen.Generate()
		if err != nil {
			t.Fatalf("words=%d: Generate() error = %v", tt.words, err)
		}
		if got := len(strings.Fields(key.Mnemonic)); got != tt.words {
			t.Errorf("words=%d: mnemonic has %d words", tt.words, got)
		}
	}
}

func TestMnemonicGeneratorReaderError(t *testing.T) {
	gen, err := NewMnemonicGenerator(failingReader{}, 12, "")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := gen.Generate(); err == nil {
		t.Fatal("expected error from failing entropy source")
	}
}

func TestNewGenerator(t *testing.T) {
	gen, err := NewGenerator(0, "")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := gen.(*DirectGenerator); !ok {
		t.Errorf("NewGenerator(0) = %T, want *DirectGenerator", gen)
	}

	gen, err = NewGenerator(24, "pass")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := gen.(*MnemonicGenerator); !ok {
		t.Errorf("NewGenerator(24) = %T, want *MnemonicGenerator", gen)
	}
}
