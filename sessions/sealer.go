package sessions

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"io"

	apperrors "github.com/jrsteele09/go-profile-optimizer/internal/errors"
	"golang.org/x/crypto/nacl/secretbox"
)

const nonceSize = 24

var ErrUnsealFailed = apperrors.New("unable to unseal value")

// Sealer encrypts values at rest with NaCl secretbox. The key is the SHA-256 of the
// session secret.
type Sealer struct {
	key [32]byte
}

func NewSealer(secret []byte) *Sealer {
	return &Sealer{key: sha256.Sum256(secret)}
}

// Seal returns base64(nonce || box).
func (s *Sealer) Seal(plaintext string) (string, error) {
	var nonce [nonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return "", apperrors.Wrapf(err, "failed to generate nonce")
	}
	box := secretbox.Seal(nonce[:], []byte(plaintext), &nonce, &s.key)
	return base64.RawURLEncoding.EncodeToString(box), nil
}

func (s *Sealer) Open(sealed string) (string, error) {
	box, err := base64.RawURLEncoding.DecodeString(sealed)
	if err != nil || len(box) < nonceSize+secretbox.Overhead {
		return "", ErrUnsealFailed
	}
	var nonce [nonceSize]byte
	copy(nonce[:], box[:nonceSize])
	plaintext, ok := secretbox.Open(nil, box[nonceSize:], &nonce, &s.key)
	if !ok {
		return "", ErrUnsealFailed
	}
	return string(plaintext), nil
}
