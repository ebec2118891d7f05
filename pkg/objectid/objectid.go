// Package objectid generates and validates the 24-character hex identifiers
// used as surrogate keys across the data model.
package objectid

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/shopcartlabs/shopcart-backend/pkg/errors"
)

const encodedLen = 24

var (
	processUnique [5]byte
	counter       uint32
)

func init() {
	if _, err := rand.Read(processUnique[:]); err != nil {
		panic(fmt.Sprintf("objectid: reading random process bytes: %v", err))
	}
	var seed [4]byte
	if _, err := rand.Read(seed[:]); err != nil {
		panic(fmt.Sprintf("objectid: seeding counter: %v", err))
	}
	counter = binary.BigEndian.Uint32(seed[:])
}

// New returns a fresh identifier: 4 bytes of unix seconds, 5 bytes unique to
// this process, and a 3-byte rolling counter, hex encoded.
func New() string {
	var raw [12]byte
	binary.BigEndian.PutUint32(raw[0:4], uint32(time.Now().Unix()))
	copy(raw[4:9], processUnique[:])

	n := atomic.AddUint32(&counter, 1)
	raw[9] = byte(n >> 16)
	raw[10] = byte(n >> 8)
	raw[11] = byte(n)

	return hex.EncodeToString(raw[:])
}

// Validate checks that value is a well-formed identifier. field names the
// offending input in the returned error details.
func Validate(field, value string) error {
	if isValid(value) {
		return nil
	}
	return errors.New(errors.CodeInvalidIdentifier, fmt.Sprintf("%s must be a 24-character hex string", field)).
		WithDetails(map[string]string{field: value})
}

// IsValid reports whether value is a 24-character hex string.
func IsValid(value string) bool {
	return isValid(value)
}

func isValid(value string) bool {
	if len(value) != encodedLen {
		return false
	}
	for i := 0; i < encodedLen; i++ {
		c := value[i]
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}
