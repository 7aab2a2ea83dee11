package utils

import (
	"crypto/rand"
	"math/big"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

const passwordAlphabet = "abcdefghijkmnopqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// GenerateUULDString returns a ULID. ULIDs sort in creation order.
func GenerateUULDString() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), ulid.DefaultEntropy()).String()
}

func GetUIntPointer(data uint) *uint {
	return &data
}

func randomString(length int, alphabet string) (string, error) {
	var sb strings.Builder
	max := big.NewInt(int64(len(alphabet)))
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		sb.WriteByte(alphabet[n.Int64()])
	}
	return sb.String(), nil
}

// GenerateRandomPassword is used for accounts created in bulk by an admin.
func GenerateRandomPassword(length int) (string, error) {
	return randomString(length, passwordAlphabet)
}

// GenerateAccountNumber returns a ten digit account number.
func GenerateAccountNumber() (string, error) {
	return randomString(10, "0123456789")
}

// UsernameFromEmail derives a username from the local part of an email.
func UsernameFromEmail(email string) string {
	local, _, _ := strings.Cut(strings.ToLower(strings.TrimSpace(email)), "@")
	return local
}
