package credential

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/storage"
	"github.com/zalando/go-keyring"
)

const keyPath = "/home/dev/.payara/plugin_key"

func newLevelDB(t *testing.T) *LevelDBStore {
	t.Helper()
	db, err := leveldb.Open(storage.NewMemStorage(), nil)
	if err != nil {
		t.Fatalf("open leveldb: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return NewLevelDBStore(db)
}

func TestEncryptMatchesJavaDefaultAES(t *testing.T) {
	tests := []struct {
		key, plain, want string
	}{
		{DefaultKey, "admin", "Z00Pp1lq5SyiqBx0tzn6ZQ=="},
		{DefaultKey, "correct horse battery", "TgBTWWO4cWqA2WlBPin49llslaXS1qZ/Nv6Gem9e3To="},
		{"0123456789abcdef", "admin", "goLfAELVjjdnoF2e9yy11w=="},
	}
	for _, tt := range tests {
		got, err := encrypt([]byte(tt.key), tt.plain)
		if err != nil {
			t.Fatalf("encrypt: %v", err)
		}
		if got != tt.want {
			t.Errorf("encrypt(%q, %q) = %q, want %q", tt.key, tt.plain, got, tt.want)
		}
		back, err := decrypt([]byte(tt.key), got)
		if err != nil || back != tt.plain {
			t.Errorf("decrypt round trip = %q, %v; want %q", back, err, tt.plain)
		}
	}
}

func TestDecryptRejectsGarbage(t *testing.T) {
	for _, input := range []string{"not base64!", "YWJj", ""} {
		if _, err := decrypt([]byte(DefaultKey), input); err == nil {
			t.Errorf("decrypt(%q) succeeded, want error", input)
		}
	}
}

func TestLoadKey(t *testing.T) {
	tests := []struct {
		name    string
		content *string
		want    string
	}{
		{"missing file", nil, DefaultKey},
		{"valid key with whitespace", strPtr("  0123456789abcdef\n"), "0123456789abcdef"},
		{"too short", strPtr("short"), DefaultKey},
		{"too long", strPtr("0123456789abcdefg"), DefaultKey},
		{"multibyte characters", strPtr("é123456789abcdef"), DefaultKey},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			if tt.content != nil {
				if err := afero.WriteFile(fs, keyPath, []byte(*tt.content), 0o600); err != nil {
					t.Fatal(err)
				}
			}
			if got := LoadKey(fs, keyPath, nil); got != tt.want {
				t.Fatalf("LoadKey() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStoreRoundTripNeverPersistsPlaintext(t *testing.T) {
	props := newLevelDB(t)
	store := NewStore(props, afero.NewMemMapFs(), keyPath, nil)

	if _, ok := store.Load(); ok {
		t.Fatal("expected no password before Save")
	}

	store.Save("admin")
	raw, found, err := props.Get(PasswordProperty)
	if err != nil || !found {
		t.Fatalf("expected stored property, found=%v err=%v", found, err)
	}
	if raw == "admin" {
		t.Fatal("plaintext password was persisted")
	}
	if raw != "Z00Pp1lq5SyiqBx0tzn6ZQ==" {
		t.Fatalf("stored value = %q, want default-key ciphertext", raw)
	}

	got, ok := store.Load()
	if !ok || got != "admin" {
		t.Fatalf("Load() = %q, %v; want admin, true", got, ok)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, ok := store.Load(); ok {
		t.Fatal("expected no password after Clear")
	}
}

func TestStoreKeyChangeMakesOldValueUnreadable(t *testing.T) {
	fs := afero.NewMemMapFs()
	props := newLevelDB(t)
	store := NewStore(props, fs, keyPath, nil)

	store.Save("admin")

	if err := afero.WriteFile(fs, keyPath, []byte("0123456789abcdef"), 0o600); err != nil {
		t.Fatal(err)
	}
	if got, ok := store.Load(); ok && got == "admin" {
		t.Fatal("value encrypted with the default key must not decrypt under a new key")
	}

	store.Save("admin")
	raw, _, _ := props.Get(PasswordProperty)
	if raw != "goLfAELVjjdnoF2e9yy11w==" {
		t.Fatalf("stored value = %q, want custom-key ciphertext", raw)
	}
}

func TestStoreWithMultibyteKeyFallsBackToDefault(t *testing.T) {
	fs := afero.NewMemMapFs()
	// 16 characters but 17 bytes in UTF-8.
	if err := afero.WriteFile(fs, keyPath, []byte("é123456789abcdef"), 0o600); err != nil {
		t.Fatal(err)
	}
	props := newLevelDB(t)
	NewStore(props, fs, keyPath, nil).Save("admin")

	raw, found, err := props.Get(PasswordProperty)
	if err != nil || !found {
		t.Fatalf("expected stored property, found=%v err=%v", found, err)
	}
	if raw != "Z00Pp1lq5SyiqBx0tzn6ZQ==" {
		t.Fatalf("stored value = %q, want default-key ciphertext", raw)
	}
}

func TestKeyringStore(t *testing.T) {
	keyring.MockInit()
	store := NewStore(KeyringStore{}, afero.NewMemMapFs(), keyPath, nil)

	store.Save("s3cret")
	got, ok := store.Load()
	if !ok || got != "s3cret" {
		t.Fatalf("Load() = %q, %v; want s3cret, true", got, ok)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("second Clear should be a no-op: %v", err)
	}
}

func strPtr(s string) *string { return &s }
