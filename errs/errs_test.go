package errs

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	tt := []struct {
		name string
		err  error
		want Kind
	}{
		{name: "nil", err: nil, want: ""},
		{name: "plain_error", err: errors.New("boom"), want: ""},
		{name: "not_found", err: NewNotFoundError("conversation not found"), want: KindNotFound},
		{name: "invalid_argument", err: NewInvalidArgumentError("Code", "bad code"), want: KindInvalidArgument},
		{name: "wrapped", err: fmt.Errorf("lookup: %w", NewNotFoundError("gone")), want: KindNotFound},
		{name: "deeply_wrapped", err: fmt.Errorf("a: %w", fmt.Errorf("b: %w", NewPermissionDeniedError("nope"))), want: KindPermissionDenied},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			if got := KindOf(tc.err); got != tc.want {
				t.Errorf("KindOf() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestIsHelpers(t *testing.T) {
	if !IsNotFound(NewNotFoundError("gone")) {
		t.Error("IsNotFound() = false, want true")
	}
	if IsNotFound(NewUnavailableError("down")) {
		t.Error("IsNotFound() = true for unavailable error")
	}
	if !IsUnauthenticated(Unauthenticated) {
		t.Error("IsUnauthenticated(Unauthenticated) = false, want true")
	}
	if !IsFailedPrecondition(fmt.Errorf("wrap: %w", NewFailedPreconditionError("not pending"))) {
		t.Error("IsFailedPrecondition() = false for wrapped error")
	}
}

func TestError_Error(t *testing.T) {
	withField := NewInvalidArgumentError("Body", "Body is required")
	if got, want := withField.Error(), "invalid_argument (field: Body): Body is required"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	withoutField := NewNotFoundError("conversation not found")
	if got, want := withoutField.Error(), "not_found: conversation not found"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
