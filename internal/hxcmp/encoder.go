package hxcmp

import (
	"errors"

	"github.com/pthm/hxtodo/internal/hxcmp/encoding"
)

// Encoder is an alias for encoding.Encoder for convenience.
type Encoder = encoding.Encoder

// Encodable is implemented by props that can encode themselves.
type Encodable = encoding.Encodable

// Decodable is implemented by props that can decode themselves.
type Decodable = encoding.Decodable

// NewEncoder creates a new encoder with the given key.
func NewEncoder(key []byte) (*Encoder, error) {
	return encoding.NewEncoder(key)
}

// wrapEncodingError maps encoding errors onto hxcmp sentinel errors.
func wrapEncodingError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, encoding.ErrInvalidFormat):
		return ErrInvalidFormat
	case errors.Is(err, encoding.ErrSignatureInvalid):
		return ErrSignatureInvalid
	case errors.Is(err, encoding.ErrDecryptFailed):
		return ErrDecryptFailed
	}
	return err
}
