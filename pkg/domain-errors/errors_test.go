package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestCodeOf(t *testing.T) {
	t.Run("direct domain error", func(t *testing.T) {
		err := New(CodeNotFound, "unknown test id")
		if CodeOf(err) != CodeNotFound {
			t.Fatalf("expected %s, got %s", CodeNotFound, CodeOf(err))
		}
	})

	t.Run("wrapped domain error", func(t *testing.T) {
		inner := New(CodeInvalidInput, "candidate must be positive")
		err := fmt.Errorf("run test: %w", inner)
		if CodeOf(err) != CodeInvalidInput {
			t.Fatalf("expected %s, got %s", CodeInvalidInput, CodeOf(err))
		}
	})

	t.Run("plain error defaults to internal", func(t *testing.T) {
		if CodeOf(errors.New("boom")) != CodeInternal {
			t.Fatalf("expected internal code for plain error")
		}
	})
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("strconv failure")
	err := Wrap(cause, CodeInvalidInput, "parse candidate")
	if !errors.Is(err, cause) {
		t.Fatalf("expected wrapped cause to survive errors.Is")
	}
	if err.Error() != "parse candidate: strconv failure" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestToHTTPStatus(t *testing.T) {
	cases := map[Code]int{
		CodeInvalidInput: http.StatusBadRequest,
		CodeBadRequest:   http.StatusBadRequest,
		CodeNotFound:     http.StatusNotFound,
		CodeInternal:     http.StatusInternalServerError,
	}
	for code, want := range cases {
		if got := ToHTTPStatus(code); got != want {
			t.Errorf("ToHTTPStatus(%s) = %d, want %d", code, got, want)
		}
	}
}
