package cryptography

import (
	"atmsecurity.io/infrastructure/logger"
	"github.com/matthewhartstonge/argon2"
)

// argonHasher produces encoded argon2id hashes. The encoding carries the
// parameters, so hashes made with an older config still verify.
type argonHasher struct {
	config argon2.Config
}

func newArgonHasher() argonHasher {
	return argonHasher{config: argon2.DefaultConfig()}
}

// HashString hashes data with salt, or with a random salt when salt is nil.
func (ah argonHasher) HashString(data string, salt []byte) ([]byte, error) {
	hashed, err := ah.config.Hash([]byte(data), salt)
	if err != nil {
		logger.Error("password hashing failed", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return nil, err
	}
	return hashed.Encode(), nil
}

func (ah argonHasher) VerifyHashData(hash string, data string) bool {
	decoded, err := argon2.Decode([]byte(hash))
	if err != nil {
		logger.Warning("stored password hash is not argon2 encoded", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return false
	}
	matches, err := decoded.Verify([]byte(data))
	if err != nil {
		logger.Error("password verification failed", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return false
	}
	return matches
}
