package varycache

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

// keyInfo provides domain separation for HKDF so the same secrets used
// elsewhere in an application never yield the same AES key.
const keyInfo = "varycache-cookie-v1"

// deriveKey stretches the two configured secrets into a 32-byte AES-256
// key using HKDF-SHA256. The IV secret acts as the salt; it is not used as
// a literal cipher IV because every payload gets a fresh GCM nonce.
func deriveKey(key, iv string) []byte {
	reader := hkdf.New(sha256.New, []byte(key), []byte(iv), []byte(keyInfo))
	derived := make([]byte, 32)
	if _, err := io.ReadFull(reader, derived); err != nil {
		// HKDF over SHA-256 cannot fail for a 32-byte read.
		panic(fmt.Errorf("varycache: key derivation failed: %w", err))
	}
	return derived
}

// encrypt seals the plaintext payload with AES-256-GCM. The random nonce is
// prepended to the ciphertext so decryption is self-contained, and the
// result is base64 URL encoded to stay cookie-safe.
func encrypt(key []byte, plaintext string) (string, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return "", err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}

	ciphertext := gcm.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.URLEncoding.EncodeToString(ciphertext), nil
}

// decrypt reverses encrypt. Any failure (bad base64, truncated payload,
// failed authentication) returns ok=false; the caller treats that the same
// as an absent cookie because the input is client-supplied.
func decrypt(key []byte, encrypted string) (string, bool) {
	ciphertext, err := base64.URLEncoding.DecodeString(encrypted)
	if err != nil {
		return "", false
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return "", false
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", false
	}
	if len(ciphertext) < gcm.NonceSize() {
		return "", false
	}

	nonce, ciphertext := ciphertext[:gcm.NonceSize()], ciphertext[gcm.NonceSize():]
	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", false
	}
	return string(plaintext), true
}
