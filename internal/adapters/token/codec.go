package token

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"eventgate/internal/domain"
)

const nonceLength = 16

type cbcCodec struct {
	block cipher.Block
}

// NewCodec returns a TokenCodec that encrypts payloads with AES-CBC using the
// given key (16, 24 or 32 bytes). The key is the only state; the codec is
// safe for concurrent use.
func NewCodec(key []byte) (domain.TokenCodec, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	return &cbcCodec{block: block}, nil
}

// Encode serializes the payload to canonical JSON, encrypts it with a fresh
// random IV, and emits hex(iv) + ":" + hex(ciphertext). Hex framing keeps the
// token ASCII-safe for URLs and QR alphabets.
func (c *cbcCodec) Encode(payload domain.TokenPayload) (string, error) {
	if payload.Nonce == "" {
		nonce := make([]byte, nonceLength)
		if _, err := rand.Read(nonce); err != nil {
			return "", fmt.Errorf("generate nonce: %w", err)
		}
		payload.Nonce = hex.EncodeToString(nonce)
	}
	if payload.EventID == "" || payload.AttendeeID == "" || payload.IssuedAtMS == 0 {
		return "", fmt.Errorf("%w: incomplete payload", domain.ErrInvalidInput)
	}

	plaintext, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal payload: %w", err)
	}
	padded := pkcs7Pad(plaintext, aes.BlockSize)

	iv := make([]byte, aes.BlockSize)
	if _, err := rand.Read(iv); err != nil {
		return "", fmt.Errorf("generate iv: %w", err)
	}

	ciphertext := make([]byte, len(padded))
	cipher.NewCBCEncrypter(c.block, iv).CryptBlocks(ciphertext, padded)

	return hex.EncodeToString(iv) + ":" + hex.EncodeToString(ciphertext), nil
}

// Decode splits the token on the first ":", hex-decodes both halves, decrypts,
// and validates that all payload fields are present. Every failure path
// returns a typed error; attacker-controlled input never panics.
func (c *cbcCodec) Decode(token string) (domain.TokenPayload, error) {
	var payload domain.TokenPayload

	sep := strings.IndexByte(token, ':')
	if sep < 0 {
		return payload, fmt.Errorf("%w: missing separator", domain.ErrMalformedToken)
	}
	iv, err := hex.DecodeString(token[:sep])
	if err != nil {
		return payload, fmt.Errorf("%w: bad iv encoding", domain.ErrMalformedToken)
	}
	ciphertext, err := hex.DecodeString(token[sep+1:])
	if err != nil {
		return payload, fmt.Errorf("%w: bad ciphertext encoding", domain.ErrMalformedToken)
	}
	if len(iv) != aes.BlockSize {
		return payload, fmt.Errorf("%w: iv length %d", domain.ErrDecryptionFailure, len(iv))
	}
	if len(ciphertext) == 0 || len(ciphertext)%aes.BlockSize != 0 {
		return payload, fmt.Errorf("%w: ciphertext length %d", domain.ErrDecryptionFailure, len(ciphertext))
	}

	plaintext := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(c.block, iv).CryptBlocks(plaintext, ciphertext)

	unpadded, err := pkcs7Unpad(plaintext, aes.BlockSize)
	if err != nil {
		return payload, fmt.Errorf("%w: %v", domain.ErrMalformedToken, err)
	}
	if err := json.Unmarshal(unpadded, &payload); err != nil {
		return payload, fmt.Errorf("%w: payload does not parse", domain.ErrMalformedToken)
	}
	if payload.EventID == "" || payload.AttendeeID == "" || payload.IssuedAtMS == 0 || payload.Nonce == "" {
		return domain.TokenPayload{}, fmt.Errorf("%w: missing payload fields", domain.ErrMalformedToken)
	}
	return payload, nil
}

func pkcs7Pad(b []byte, blockSize int) []byte {
	n := blockSize - len(b)%blockSize
	padded := make([]byte, len(b)+n)
	copy(padded, b)
	for i := len(b); i < len(padded); i++ {
		padded[i] = byte(n)
	}
	return padded
}

func pkcs7Unpad(b []byte, blockSize int) ([]byte, error) {
	if len(b) == 0 || len(b)%blockSize != 0 {
		return nil, fmt.Errorf("invalid padded length %d", len(b))
	}
	n := int(b[len(b)-1])
	if n == 0 || n > blockSize || n > len(b) {
		return nil, fmt.Errorf("invalid padding byte %d", n)
	}
	for _, p := range b[len(b)-n:] {
		if int(p) != n {
			return nil, fmt.Errorf("inconsistent padding")
		}
	}
	return b[:len(b)-n], nil
}
