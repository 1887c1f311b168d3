package apperr

import (
	"errors"
	"net/http"
	"testing"
)

func TestHTTPStatusMapping(t *testing.T) {
	cases := []struct {
		kind Kind
		want int
	}{
		{KindNotFound, http.StatusNotFound},
		{KindValidation, http.StatusBadRequest},
		{KindBadRequest, http.StatusBadRequest},
		{KindConflict, http.StatusConflict},
		{KindForbidden, http.StatusForbidden},
		{KindUnauthorized, http.StatusUnauthorized},
		{KindInternal, http.StatusInternalServerError},
		{KindUnknown, http.StatusBadRequest},
	}

	for _, tc := range cases {
		got := New(tc.kind, "x").HTTPStatus()
		if got != tc.want {
			t.Errorf("kind %d: expected status %d, got %d", tc.kind, tc.want, got)
		}
	}
}

func TestErrorStringIncludesOp(t *testing.T) {
	err := Validation("invalid search criteria").WithOp("members.AdvancedSearch")
	if err.Error() != "members.AdvancedSearch: invalid search criteria" {
		t.Fatalf("unexpected error string: %q", err.Error())
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(KindInternal, "search failed", cause)
	if !errors.Is(err, cause) {
		t.Fatal("expected errors.Is to find the wrapped cause")
	}
}

func TestGetKindOnUntypedError(t *testing.T) {
	if GetKind(errors.New("plain")) != KindUnknown {
		t.Fatal("expected KindUnknown for untyped error")
	}
	if !Is(NotFound("member not found"), KindNotFound) {
		t.Fatal("expected KindNotFound")
	}
}
