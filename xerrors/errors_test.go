package xerrors

import (
	"errors"
	"net/http"
	"testing"
)

func TestSentinelMatching(t *testing.T) {
	err := ErrNegativeWeight.WithContext("index", 3)

	if !errors.Is(err, ErrNegativeWeight) {
		t.Error("Expected WithContext result to match its sentinel")
	}
	if errors.Is(err, ErrNegativeCapacity) {
		t.Error("Expected no match against a different sentinel")
	}
}

func TestWithContextDoesNotMutateSentinel(t *testing.T) {
	first := ErrTableTooLarge.WithContext("cells", 100)
	second := ErrTableTooLarge.WithContext("cells", 200)

	if len(ErrTableTooLarge.Context) != 0 {
		t.Errorf("Sentinel context must stay empty, got %v", ErrTableTooLarge.Context)
	}
	if first.Context["cells"] != 100 || second.Context["cells"] != 200 {
		t.Errorf("Expected independent contexts, got %v and %v", first.Context, second.Context)
	}
}

func TestHTTPStatusMapping(t *testing.T) {
	cases := []struct {
		err  *Error
		want int
	}{
		{ErrNegativeWeight, http.StatusBadRequest},
		{ErrTableTooLarge, http.StatusTooManyRequests},
		{Internal("boom", nil), http.StatusInternalServerError},
		{NotFound("missing"), http.StatusNotFound},
	}
	for _, tc := range cases {
		if got := tc.err.HTTPStatus(); got != tc.want {
			t.Errorf("HTTPStatus(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("disk full")
	err := WrapInternal(cause, "failed to write workbook")

	if !errors.Is(err, cause) {
		t.Error("Expected wrapped error to match its cause")
	}
	if err.HTTPStatus() != http.StatusInternalServerError {
		t.Errorf("Expected 500, got %d", err.HTTPStatus())
	}

	// 包装业务错误时保持原始类型与业务码。
	wrapped := Wrap(ErrCapacityTooLarge, ErrInternal, "solve rejected")
	if !errors.Is(wrapped, ErrCapacityTooLarge) {
		t.Error("Expected wrapped business error to match its sentinel")
	}
	if wrapped.HTTPStatus() != http.StatusTooManyRequests {
		t.Errorf("Expected 429, got %d", wrapped.HTTPStatus())
	}
}
