package pkg

import (
	"errors"
	"net/http"
	"testing"
)

func TestAppError(t *testing.T) {
	t.Run("message only", func(t *testing.T) {
		e := NewDomainErrorSimple("VALIDATION_ERROR", "Invalid input", http.StatusBadRequest)
		if e.Error() != "Invalid input" {
			t.Fatalf("unexpected error string %q", e.Error())
		}
		if e.Unwrap() != nil {
			t.Fatal("expected nil wrapped error")
		}
	})

	t.Run("wrapped cause", func(t *testing.T) {
		cause := errors.New("dynamodb down")
		e := NewDomainError("INTERNAL_ERROR", "An internal error occurred", cause, http.StatusInternalServerError)
		if !errors.Is(e, cause) {
			t.Fatal("expected errors.Is to reach the cause")
		}
		if e.Error() != "An internal error occurred: dynamodb down" {
			t.Fatalf("unexpected error string %q", e.Error())
		}
	})

	t.Run("http body hides the cause", func(t *testing.T) {
		cause := errors.New("secret detail")
		e := NewDomainError("INTERNAL_ERROR", "An internal error occurred", cause, http.StatusInternalServerError)
		body := e.ToHTTPError()
		if body.Code != "INTERNAL_ERROR" || body.Message != "An internal error occurred" {
			t.Fatalf("unexpected body %+v", body)
		}
	})
}
