package credential

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"payarakit/internal/logx"
)

// PropertyStore persists string properties across runs.
type PropertyStore interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
}

// Store keeps the admin password encrypted in a PropertyStore. The key is
// read from the key file on every call, so edits take effect immediately.
// Failures are logged and never surface to callers.
type Store struct {
	props   PropertyStore
	fs      afero.Fs
	keyPath string
	logger  logrus.FieldLogger
}

// NewStore returns a Store backed by props, deriving its key from keyPath.
func NewStore(props PropertyStore, fs afero.Fs, keyPath string, logger logrus.FieldLogger) *Store {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Store{props: props, fs: fs, keyPath: keyPath, logger: logx.OrDiscard(logger)}
}

// Save encrypts password and writes it to the property store. On any
// failure nothing is written.
func (s *Store) Save(password string) {
	key := LoadKey(s.fs, s.keyPath, s.logger)
	encrypted, err := encrypt([]byte(key), password)
	if err != nil {
		s.logger.Errorf("encrypt admin password: %v", err)
		return
	}
	if err := s.props.Set(PasswordProperty, encrypted); err != nil {
		s.logger.Errorf("store admin password: %v", err)
	}
}

// Load returns the decrypted password. ok is false when nothing is stored
// or the stored value cannot be decrypted with the current key.
func (s *Store) Load() (password string, ok bool) {
	encrypted, found, err := s.props.Get(PasswordProperty)
	if err != nil {
		s.logger.Errorf("read admin password: %v", err)
		return "", false
	}
	if !found {
		return "", false
	}

	key := LoadKey(s.fs, s.keyPath, s.logger)
	password, err = decrypt([]byte(key), encrypted)
	if err != nil {
		s.logger.Errorf("decrypt admin password: %v", err)
		return "", false
	}
	return password, true
}

// Clear removes the stored password.
func (s *Store) Clear() error {
	if err := s.props.Delete(PasswordProperty); err != nil {
		return fmt.Errorf("clear admin password: %w", err)
	}
	return nil
}
