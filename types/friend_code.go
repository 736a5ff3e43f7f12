package types

import (
	"regexp"
	"strings"
	"time"
)

// Friend codes are short shareable tokens in the form MOR-AB12CD: the
// three-letter brand prefix, a dash, then six characters from an
// unambiguous uppercase alphabet.
const (
	FriendCodePrefix    = "MOR"
	FriendCodeAlphabet  = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	FriendCodeSuffixLen = 6
)

var friendCodeRe = regexp.MustCompile(`^[A-Z]{3}-[A-Z0-9]{6}$`)

type FriendCode struct {
	UserID    string    `json:"userID" db:"user_id"`
	Code      string    `json:"code" db:"code"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// NormalizeFriendCode uppercases and trims submitted input. Codes are
// case-insensitive on the wire but stored uppercase.
func NormalizeFriendCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func ValidFriendCode(code string) bool {
	return friendCodeRe.MatchString(code)
}
