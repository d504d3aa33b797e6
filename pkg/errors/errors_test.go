package errors_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	perrors "github.com/matzehuels/plinth/pkg/errors"
	"github.com/matzehuels/plinth/pkg/layout"
)

// solverErrors returns real errors from the layout engine, one per code it
// produces.
func solverErrors(t *testing.T) map[perrors.Code]error {
	t.Helper()

	stale := layout.NewTree()
	old := stale.MustAdd(layout.NoParent, layout.Spec{})
	stale.Clear()
	stale.MustAdd(layout.NoParent, layout.Spec{})
	_, nodeErr := stale.Add(old, layout.Spec{})

	vertical := layout.NewTree()
	vertical.MustAdd(layout.NoParent, layout.Spec{Direction: layout.Vertical})
	rootErr := vertical.ComputeLayout(nil)

	_, sizeErr := layout.ParseSize("flex(50,10)")

	return map[perrors.Code]error{
		perrors.ErrCodeInvalidNode: nodeErr,
		perrors.ErrCodeInvalidRoot: rootErr,
		perrors.ErrCodeInvalidSize: sizeErr,
	}
}

func TestSolverErrorCodes(t *testing.T) {
	for code, err := range solverErrors(t) {
		t.Run(string(code), func(t *testing.T) {
			if err == nil {
				t.Fatal("expected an error")
			}
			if got := perrors.GetCode(err); got != code {
				t.Errorf("GetCode() = %q, want %q", got, code)
			}

			// codes survive fmt wrapping at package boundaries
			wrapped := fmt.Errorf("solve frame: %w", err)
			if !perrors.Is(wrapped, code) {
				t.Errorf("Is(wrapped, %s) = false", code)
			}
			if perrors.HTTPStatus(wrapped) != http.StatusBadRequest {
				t.Errorf("HTTPStatus() = %d, want 400", perrors.HTTPStatus(wrapped))
			}
			if msg := perrors.UserMessage(wrapped); msg == "" || msg == wrapped.Error() {
				t.Errorf("UserMessage() = %q, want the bare message", msg)
			}
		})
	}
}

func TestErrorString(t *testing.T) {
	tests := map[string]struct {
		err  *perrors.Error
		want string
	}{
		"plain": {
			perrors.New(perrors.ErrCodeInvalidRoot, "root node must stack its children horizontally, got %s", "vertical"),
			"INVALID_ROOT: root node must stack its children horizontally, got vertical",
		},
		"with cause": {
			perrors.Wrap(perrors.ErrCodeInvalidDocument, errors.New("unexpected EOF"), "decode %s", "card.yaml"),
			"INVALID_DOCUMENT: decode card.yaml: unexpected EOF",
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("permission denied")
	err := perrors.Wrap(perrors.ErrCodeInvalidPath, cause, "open font")

	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the cause")
	}
	if errors.Unwrap(err) != cause {
		t.Errorf("Unwrap() = %v", errors.Unwrap(err))
	}
	if err.Message != "open font" {
		t.Errorf("Message = %q", err.Message)
	}
}

func TestOuterCodeWins(t *testing.T) {
	inner := perrors.New(perrors.ErrCodeInvalidSize, "padding.left must be a number")
	outer := perrors.Wrap(perrors.ErrCodeInvalidDocument, inner, "root.children[1]")

	if perrors.GetCode(outer) != perrors.ErrCodeInvalidDocument {
		t.Errorf("GetCode() = %q", perrors.GetCode(outer))
	}
	if perrors.Is(outer, perrors.ErrCodeInvalidSize) {
		t.Error("Is should report the outermost code only")
	}
}

func TestNonCodedErrors(t *testing.T) {
	plain := errors.New("connection reset")
	if perrors.Is(plain, perrors.ErrCodeInternal) || perrors.Is(nil, perrors.ErrCodeInternal) {
		t.Error("uncoded errors match no code")
	}
	if perrors.GetCode(plain) != "" || perrors.GetCode(nil) != "" {
		t.Error("uncoded errors have an empty code")
	}
	if perrors.UserMessage(plain) != "connection reset" {
		t.Errorf("UserMessage() = %q", perrors.UserMessage(plain))
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := map[perrors.Code]int{
		perrors.ErrCodeInvalidInput:    http.StatusBadRequest,
		perrors.ErrCodeInvalidFormat:   http.StatusBadRequest,
		perrors.ErrCodeInvalidDocument: http.StatusBadRequest,
		perrors.ErrCodeInvalidPath:     http.StatusBadRequest,
		perrors.ErrCodeNotFound:        http.StatusNotFound,
		perrors.ErrCodeFileNotFound:    http.StatusNotFound,
		perrors.ErrCodeUnsupported:     http.StatusNotImplemented,
		perrors.ErrCodeInternal:        http.StatusInternalServerError,
	}
	for code, want := range tests {
		t.Run(string(code), func(t *testing.T) {
			if got := perrors.HTTPStatus(perrors.New(code, "x")); got != want {
				t.Errorf("HTTPStatus() = %d, want %d", got, want)
			}
		})
	}
	if got := perrors.HTTPStatus(errors.New("boom")); got != http.StatusInternalServerError {
		t.Errorf("HTTPStatus(plain) = %d", got)
	}
}
