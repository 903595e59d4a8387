package domainerrors_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	dErrors "gatepass/pkg/domain-errors"
	"gatepass/pkg/platform/sentinel"
)

func TestHasCode(t *testing.T) {
	err := dErrors.New(dErrors.CodeNotFound, "no attendee for token")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
	assert.False(t, dErrors.HasCode(err, dErrors.CodeUnavailable))
	assert.False(t, dErrors.HasCode(errors.New("plain"), dErrors.CodeNotFound))
	assert.False(t, dErrors.HasCode(nil, dErrors.CodeNotFound))
}

func TestWrapKeepsCause(t *testing.T) {
	wrapped := dErrors.Wrap(dErrors.CodeUnavailable, "append check-in", sentinel.ErrUnavailable)
	assert.True(t, dErrors.HasCode(wrapped, dErrors.CodeUnavailable))
	assert.True(t, errors.Is(wrapped, sentinel.ErrUnavailable))

	// Another layer of wrapping must not hide the code.
	outer := fmt.Errorf("verify: %w", wrapped)
	assert.True(t, dErrors.HasCode(outer, dErrors.CodeUnavailable))
}

func TestToHTTPStatus(t *testing.T) {
	cases := map[dErrors.Code]int{
		dErrors.CodeBadRequest:  http.StatusBadRequest,
		dErrors.CodeNotFound:    http.StatusNotFound,
		dErrors.CodeConflict:    http.StatusConflict,
		dErrors.CodeCollision:   http.StatusConflict,
		dErrors.CodeUnavailable: http.StatusServiceUnavailable,
		dErrors.CodeInternal:    http.StatusInternalServerError,
	}
	for code, want := range cases {
		assert.Equal(t, want, dErrors.ToHTTPStatus(code), "code %s", code)
	}
}

func TestCodeOfDefaultsToInternal(t *testing.T) {
	assert.Equal(t, dErrors.CodeInternal, dErrors.CodeOf(errors.New("boom")))
	assert.Equal(t, dErrors.CodeCollision, dErrors.CodeOf(dErrors.New(dErrors.CodeCollision, "exhausted")))
}
