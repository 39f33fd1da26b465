package output

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/pbkdf2"
)

// Sealed record layout: 4-byte magic, uint32 version, 32-byte salt,
// 12-byte nonce, ChaCha20-Poly1305 ciphertext (tag included). Header
// integers are big-endian. The key is derived from the passphrase with
// PBKDF2-SHA256.
const (
	SealVersion = 1

	saltSize         = 32
	nonceSize        = chacha20poly1305.NonceSize
	keySize          = chacha20poly1305.KeySize
	pbkdf2Iterations = 100000

	sealHeaderSize = 4 + 4 + saltSize + nonceSize
)

var sealMagic = [4]byte{'P', 'F', 'S', 'R'}

// Seal encrypts plaintext under a passphrase.
func Seal(plaintext, passphrase []byte) ([]byte, error) {
	if len(passphrase) == 0 {
		return nil, errors.New("seal passphrase cannot be empty")
	}

	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}
	nonce := make([]byte, nonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	key := pbkdf2.Key(passphrase, salt, pbkdf2Iterations, keySize, sha256.New)
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	out := make([]byte, 0, sealHeaderSize+len(plaintext)+aead.Overhead())
	out = append(out, sealMagic[:]...)

	versionBytes := make([]byte, 4)
	binary.BigEndian.PutUint32(versionBytes, SealVersion)
	out = append(out, versionBytes...)

	out = append(out, salt...)
	out = append(out, nonce...)

	return aead.Seal(out, nonce, plaintext, nil), nil
}

// Open decrypts a sealed payload with the passphrase.
func Open(sealed, passphrase []byte) ([]byte, error) {
	if !IsSealed(sealed) {
		return nil, errors.New("data is not a sealed record")
	}
	if len(sealed) < sealHeaderSize {
		return nil, errors.New("sealed data too short")
	}

	version := binary.BigEndian.Uint32(sealed[4:8])
	if version != SealVersion {
		return nil, fmt.Errorf("unsupported seal version: %d", version)
	}

	salt := sealed[8 : 8+saltSize]
	nonce := sealed[8+saltSize : sealHeaderSize]
	ciphertext := sealed[sealHeaderSize:]

	key := pbkdf2.Key(passphrase, salt, pbkdf2Iterations, keySize, sha256.New)
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("decryption failed: %w", err)
	}
	return plaintext, nil
}

// IsSealed reports whether data begins with the sealed record magic.
func IsSealed(data []byte) bool {
	if len(data) < 4 {
		return false
	}
	return data[0] == sealMagic[0] && data[1] == sealMagic[1] &&
		data[2] == sealMagic[2] && data[3] == sealMagic[3]
}
