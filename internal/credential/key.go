package credential

import (
	"errors"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"payarakit/internal/logx"
)

const (
	// KeyFileName lives in the user's ~/.payara directory.
	KeyFileName = "plugin_key"
	// DefaultKey is used when no valid key file exists. It ships with every
	// installation and offers obfuscation only.
	DefaultKey = "PayaraServerKey1"
	// PasswordProperty is the property store key for the admin password.
	PasswordProperty = "PAYARA_ADMIN_PASSWORD"

	keyLength = 16
)

// LoadKey returns the trimmed contents of the key file when they are exactly
// 16 bytes, the AES-128 key size, and DefaultKey otherwise.
func LoadKey(fs afero.Fs, path string, logger logrus.FieldLogger) string {
	logger = logx.OrDiscard(logger)
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Debugf("key file %s not found, using default key", path)
		} else {
			logger.Warnf("read key file %s: %v; using default key", path, err)
		}
		return DefaultKey
	}

	key := strings.TrimSpace(string(data))
	if len(key) != keyLength {
		logger.Warnf("key file %s must hold exactly %d bytes, using default key", path, keyLength)
		return DefaultKey
	}
	return key
}
