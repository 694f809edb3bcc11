package credential

import (
	"bytes"
	"crypto/aes"
	"encoding/base64"
	"errors"
	"fmt"
)

// The stored format is AES in ECB mode with PKCS#5 padding, base64 encoded,
// so values written by the IDE plugins stay readable.

func encrypt(key []byte, plaintext string) (string, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return "", fmt.Errorf("init cipher: %w", err)
	}
	size := block.BlockSize()
	data := pad([]byte(plaintext), size)
	out := make([]byte, len(data))
	for i := 0; i < len(data); i += size {
		block.Encrypt(out[i:i+size], data[i:i+size])
	}
	return base64.StdEncoding.EncodeToString(out), nil
}

func decrypt(key []byte, encoded string) (string, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return "", fmt.Errorf("init cipher: %w", err)
	}
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("decode ciphertext: %w", err)
	}
	size := block.BlockSize()
	if len(data) == 0 || len(data)%size != 0 {
		return "", errors.New("ciphertext is not a whole number of blocks")
	}
	out := make([]byte, len(data))
	for i := 0; i < len(data); i += size {
		block.Decrypt(out[i:i+size], data[i:i+size])
	}
	plain, err := unpad(out, size)
	if err != nil {
		return "", err
	}
	return string(plain), nil
}

func pad(data []byte, size int) []byte {
	n := size - len(data)%size
	return append(data, bytes.Repeat([]byte{byte(n)}, n)...)
}

func unpad(data []byte, size int) ([]byte, error) {
	n := int(data[len(data)-1])
	if n == 0 || n > size || n > len(data) {
		return nil, errors.New("invalid padding")
	}
	for _, b := range data[len(data)-n:] {
		if int(b) != n {
			return nil, errors.New("invalid padding")
		}
	}
	return data[:len(data)-n], nil
}
