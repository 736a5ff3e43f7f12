package web

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/morsafarhq/morsafar/errs"
	"github.com/morsafarhq/morsafar/validator"
)

func Test_err2code(t *testing.T) {
	v := validator.New()
	v.AddError("Body", "Body is required")

	tt := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: http.StatusOK},
		{name: "bad_request", err: errBadRequest, want: http.StatusBadRequest},
		{name: "streaming_unsupported", err: errStreamingUnsupported, want: http.StatusExpectationFailed},
		{name: "validation", err: v.AsError(), want: http.StatusUnprocessableEntity},
		{name: "invalid_argument", err: errs.NewInvalidArgumentError("Code", "bad code"), want: http.StatusUnprocessableEntity},
		{name: "unauthenticated", err: errs.Unauthenticated, want: http.StatusUnauthorized},
		{name: "permission_denied", err: errs.NewPermissionDeniedError("nope"), want: http.StatusForbidden},
		{name: "not_found", err: errs.NewNotFoundError("gone"), want: http.StatusNotFound},
		{name: "already_exists", err: errs.NewAlreadyExistsError("Code", "already friends"), want: http.StatusConflict},
		{name: "failed_precondition", err: errs.NewFailedPreconditionError("not pending"), want: http.StatusConflict},
		{name: "unavailable", err: errs.NewUnavailableError("down"), want: http.StatusServiceUnavailable},
		{name: "wrapped_kind", err: fmt.Errorf("lookup: %w", errs.NewNotFoundError("gone")), want: http.StatusNotFound},
		{name: "unknown", err: errors.New("boom"), want: http.StatusInternalServerError},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			if got := err2code(tc.err); got != tc.want {
				t.Errorf("err2code(%v) = %d, want %d", tc.err, got, tc.want)
			}
		})
	}
}
