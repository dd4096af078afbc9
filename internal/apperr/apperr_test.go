package apperr

import (
	"errors"
	"net/http"
	"testing"
)

func TestStatusMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{PermissionDenied("no"), http.StatusForbidden},
		{Conflict("dup"), http.StatusConflict},
		{InvalidState("bad state"), http.StatusUnprocessableEntity},
		{Validation("bad input"), http.StatusBadRequest},
		{NotFound("missing"), http.StatusNotFound},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := Status(tc.err); got != tc.want {
			t.Errorf("Status(%q) = %d, want %d", tc.err.Error(), got, tc.want)
		}
	}
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("unique constraint failed")
	err := Wrap(KindConflict, "already applied", cause)

	if err.Error() != "already applied" {
		t.Errorf("Error() = %q, want the wrapping message", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("wrapped cause should be reachable via errors.Is")
	}
	if !IsKind(err, KindConflict) {
		t.Error("IsKind should see the wrap kind")
	}
	if Status(err) != http.StatusConflict {
		t.Errorf("Status = %d, want 409", Status(err))
	}
}

func TestIsKindOnForeignError(t *testing.T) {
	if IsKind(errors.New("plain"), KindNotFound) {
		t.Error("plain error must not match any kind")
	}
	if IsKind(NotFound("x"), KindConflict) {
		t.Error("kinds must not cross-match")
	}
}
