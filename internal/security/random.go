package security

import (
	"crypto/rand"
	"errors"
	"math/big"
	"strconv"
	"time"
)

const (
	GeneratedIDPrefix       = "HLTH"
	generatedIDSuffixLength = 5
	generatedIDAlphabet     = "abcdefghijklmnopqrstuvwxyz0123456789"
)

var (
	errNegativeLength = errors.New("length must be non-negative")
	errEmptyAlphabet  = errors.New("alphabet must not be empty")
)

// RandomString returns an unbiased string drawn from alphabet using crypto/rand.
func RandomString(length int, alphabet string) (string, error) {
	if length < 0 {
		return "", errNegativeLength
	}
	if length == 0 {
		return "", nil
	}
	if len(alphabet) == 0 {
		return "", errEmptyAlphabet
	}

	limit := big.NewInt(int64(len(alphabet)))
	value := make([]byte, length)
	for index := range value {
		position, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", err
		}
		value[index] = alphabet[position.Int64()]
	}
	return string(value), nil
}

// NewGeneratedID builds an account id from the creation instant in
// milliseconds and a short random suffix, e.g. HLTH1718000000000k3x9a.
func NewGeneratedID(now time.Time) (string, error) {
	suffix, err := RandomString(generatedIDSuffixLength, generatedIDAlphabet)
	if err != nil {
		return "", err
	}
	return GeneratedIDPrefix + strconv.FormatInt(now.UnixMilli(), 10) + suffix, nil
}
