package service

import (
	"context"
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/morsafarhq/morsafar/cockroach"
	"github.com/morsafarhq/morsafar/errs"
	"github.com/morsafarhq/morsafar/types"
)

// maxCodeAttempts bounds generation retries on code collision. Five
// misses in a row over a 32^6 space means broken entropy or a saturated
// code table, neither of which is the user's fault.
const maxCodeAttempts = 5

func (s *Service) FriendCode(ctx context.Context, actor types.Actor) (types.FriendCode, error) {
	var out types.FriendCode

	if !actor.Valid() {
		return out, errs.Unauthenticated
	}

	return s.Cockroach.FriendCode(ctx, actor.UserID)
}

// GenerateFriendCode issues the actor's shareable code, creating it on
// first call and returning the existing one afterwards.
func (s *Service) GenerateFriendCode(ctx context.Context, actor types.Actor) (types.FriendCode, error) {
	var out types.FriendCode

	if !actor.Valid() {
		return out, errs.Unauthenticated
	}

	existing, err := s.Cockroach.FriendCode(ctx, actor.UserID)
	if err == nil {
		return existing, nil
	}

	if !errs.IsNotFound(err) {
		return out, err
	}

	for range maxCodeAttempts {
		candidate, err := randomFriendCode()
		if err != nil {
			return out, err
		}

		created, err := s.Cockroach.CreateFriendCode(ctx, actor.UserID, candidate)
		if err == nil {
			return created, nil
		}

		if !cockroach.IsUniqueViolationError(err) {
			return out, err
		}

		// Either the code collided or a concurrent request already
		// issued this user's code. The latter wins outright.
		existing, lookupErr := s.Cockroach.FriendCode(ctx, actor.UserID)
		if lookupErr == nil {
			return existing, nil
		}

		if !errs.IsNotFound(lookupErr) {
			return out, lookupErr
		}
	}

	return out, errs.NewUnavailableError("could not allocate a unique friend code")
}

// resolveFriendCode maps a normalized code to its owning user. Codes
// are immutable once issued, so positive lookups are cached.
func (s *Service) resolveFriendCode(ctx context.Context, code string) (string, error) {
	if userID, ok := s.codeOwners.Get(code); ok {
		return userID, nil
	}

	userID, err := s.Cockroach.UserIDByFriendCode(ctx, code)
	if err != nil {
		return "", err
	}

	s.codeOwners.Add(code, userID)

	return userID, nil
}

func randomFriendCode() (string, error) {
	suffix, err := gonanoid.Generate(types.FriendCodeAlphabet, types.FriendCodeSuffixLen)
	if err != nil {
		return "", fmt.Errorf("generate friend code suffix: %w", err)
	}

	return types.FriendCodePrefix + "-" + suffix, nil
}
