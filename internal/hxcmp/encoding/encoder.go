// Package encoding packs component props into URL-safe strings.
//
// Props are serialised with msgpack and then either signed (HMAC-SHA256,
// readable but tamper-proof) or encrypted (AES-256-GCM, opaque).
package encoding

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
)

// Sentinel errors returned by Decode.
var (
	ErrInvalidFormat    = errors.New("encoding: invalid format")
	ErrSignatureInvalid = errors.New("encoding: signature verification failed")
	ErrDecryptFailed    = errors.New("encoding: decryption failed")
	ErrNotEncodable     = errors.New("encoding: type does not implement Encodable")
	ErrNotDecodable     = errors.New("encoding: type does not implement Decodable")
)

// sigLen is the truncated HMAC length in bytes.
const sigLen = 16

// Encoder encodes and decodes props. It is safe for concurrent use.
type Encoder struct {
	key []byte
	gcm cipher.AEAD
}

// NewEncoder creates an encoder. Keys that are not exactly 32 bytes are
// hashed with SHA-256, so every byte of a long secret counts.
func NewEncoder(key []byte) (*Encoder, error) {
	if len(key) == 0 {
		return nil, errors.New("encoding: empty key")
	}
	if len(key) != 32 {
		h := sha256.Sum256(key)
		key = h[:]
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("encoding: cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("encoding: gcm: %w", err)
	}

	return &Encoder{key: key, gcm: gcm}, nil
}

// Encodable is implemented by props that can flatten themselves to a map.
type Encodable interface {
	HXEncode() map[string]any
}

// Decodable is implemented by props that can rebuild themselves from a map.
type Decodable interface {
	HXDecode(map[string]any) error
}

// Encode serialises v. When sensitive is true the result is encrypted,
// otherwise it is signed.
func (e *Encoder) Encode(v any, sensitive bool) (string, error) {
	enc, ok := v.(Encodable)
	if !ok {
		return "", ErrNotEncodable
	}

	packed, err := msgpack.Marshal(enc.HXEncode())
	if err != nil {
		return "", fmt.Errorf("encoding: marshal: %w", err)
	}

	if sensitive {
		return e.encrypt(packed)
	}
	return e.sign(packed), nil
}

// Decode reverses Encode into v, which must implement Decodable.
func (e *Encoder) Decode(encoded string, sensitive bool, v any) error {
	dec, ok := v.(Decodable)
	if !ok {
		return ErrNotDecodable
	}

	var (
		packed []byte
		err    error
	)
	if sensitive {
		packed, err = e.decrypt(encoded)
	} else {
		packed, err = e.verify(encoded)
	}
	if err != nil {
		return err
	}

	var data map[string]any
	if err := msgpack.Unmarshal(packed, &data); err != nil {
		return ErrInvalidFormat
	}
	return dec.HXDecode(data)
}

// sign produces "<base64 payload>.<base64 mac>".
func (e *Encoder) sign(data []byte) string {
	return base64.RawURLEncoding.EncodeToString(data) + "." +
		base64.RawURLEncoding.EncodeToString(e.mac(data))
}

func (e *Encoder) verify(encoded string) ([]byte, error) {
	payload, sigPart, ok := strings.Cut(encoded, ".")
	if !ok {
		return nil, ErrInvalidFormat
	}

	data, err := base64.RawURLEncoding.DecodeString(payload)
	if err != nil {
		return nil, ErrInvalidFormat
	}
	sig, err := base64.RawURLEncoding.DecodeString(sigPart)
	if err != nil {
		return nil, ErrSignatureInvalid
	}

	if !hmac.Equal(sig, e.mac(data)) {
		return nil, ErrSignatureInvalid
	}
	return data, nil
}

func (e *Encoder) mac(data []byte) []byte {
	m := hmac.New(sha256.New, e.key)
	m.Write(data)
	return m.Sum(nil)[:sigLen]
}

func (e *Encoder) encrypt(data []byte) (string, error) {
	nonce := make([]byte, e.gcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("encoding: nonce: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(e.gcm.Seal(nonce, nonce, data, nil)), nil
}

func (e *Encoder) decrypt(encoded string) ([]byte, error) {
	ciphertext, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return nil, ErrInvalidFormat
	}

	ns := e.gcm.NonceSize()
	if len(ciphertext) < ns {
		return nil, ErrInvalidFormat
	}

	plain, err := e.gcm.Open(nil, ciphertext[:ns], ciphertext[ns:], nil)
	if err != nil {
		return nil, ErrDecryptFailed
	}
	return plain, nil
}
