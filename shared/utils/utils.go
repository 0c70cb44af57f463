package utils

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// GenerateAccountID returns a fresh random (v4) UUID string.
func GenerateAccountID() string {
	return uuid.NewString()
}

// ValidateAccountID reports whether id is a well-formed UUID.
func ValidateAccountID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// ParseCustomerID parses a positive decimal customer identifier.
func ParseCustomerID(s string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
