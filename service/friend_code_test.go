package service

import (
	"strings"
	"testing"

	"github.com/morsafarhq/morsafar/types"
)

func Test_randomFriendCode(t *testing.T) {
	seen := map[string]struct{}{}

	for range 100 {
		code, err := randomFriendCode()
		if err != nil {
			t.Fatalf("randomFriendCode() error = %v", err)
		}

		if !types.ValidFriendCode(code) {
			t.Fatalf("randomFriendCode() = %q, not a valid friend code", code)
		}

		if !strings.HasPrefix(code, types.FriendCodePrefix+"-") {
			t.Fatalf("randomFriendCode() = %q, want prefix %q", code, types.FriendCodePrefix+"-")
		}

		suffix := strings.TrimPrefix(code, types.FriendCodePrefix+"-")
		for _, r := range suffix {
			if !strings.ContainsRune(types.FriendCodeAlphabet, r) {
				t.Fatalf("randomFriendCode() = %q, rune %q outside alphabet", code, r)
			}
		}

		seen[code] = struct{}{}
	}

	// 100 draws from a 32^6 space collide with negligible probability.
	if len(seen) < 90 {
		t.Errorf("only %d distinct codes out of 100 draws", len(seen))
	}
}
