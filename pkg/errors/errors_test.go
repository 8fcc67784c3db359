package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	plain := New(ErrCodeInvalidPackage, "bad name %q", "x y")
	if got := plain.Error(); !strings.Contains(got, "INVALID_PACKAGE") || !strings.Contains(got, `"x y"`) {
		t.Errorf("Error() = %q", got)
	}

	cause := stderrors.New("boom")
	wrapped := Wrap(ErrCodeNetwork, cause, "fetch failed")
	if got := wrapped.Error(); !strings.Contains(got, "boom") {
		t.Errorf("Error() = %q, want cause included", got)
	}
	if !stderrors.Is(wrapped, cause) {
		t.Error("wrapped error should unwrap to its cause")
	}
}

func TestIsAndGetCode(t *testing.T) {
	err := fmt.Errorf("outer: %w", New(ErrCodePackageNotFound, "serde"))

	if !Is(err, ErrCodePackageNotFound) {
		t.Error("Is should find the code through wrapping")
	}
	if Is(err, ErrCodeNetwork) {
		t.Error("Is should not match a different code")
	}
	if got := GetCode(err); got != ErrCodePackageNotFound {
		t.Errorf("GetCode = %s", got)
	}
	if got := GetCode(stderrors.New("plain")); got != ErrCodeInternal {
		t.Errorf("GetCode(plain) = %s, want INTERNAL_ERROR", got)
	}
}
