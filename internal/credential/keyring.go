package credential

import (
	"errors"

	"github.com/zalando/go-keyring"
)

// KeyringService is the OS keyring service name used for properties.
const KeyringService = "payarakit"

// KeyringStore keeps properties in the operating system keyring.
type KeyringStore struct {
	Service string
}

func (s KeyringStore) service() string {
	if s.Service == "" {
		return KeyringService
	}
	return s.Service
}

func (s KeyringStore) Get(key string) (string, bool, error) {
	value, err := keyring.Get(s.service(), key)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (s KeyringStore) Set(key, value string) error {
	return keyring.Set(s.service(), key, value)
}

func (s KeyringStore) Delete(key string) error {
	err := keyring.Delete(s.service(), key)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil
	}
	return err
}

var _ PropertyStore = KeyringStore{}
