package postdoc_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/postdoc"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := postdoc.Errorf(postdoc.ENOCONTENT, "could not extract content from %q", "https://x.com/a/status/1")

	assert.Equal(t, postdoc.ENOCONTENT, postdoc.ErrorCode(err))
	assert.Equal(t, `could not extract content from "https://x.com/a/status/1"`, postdoc.ErrorMessage(err))
}

func TestErrorCode_WrappedError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("export: %w", postdoc.Errorf(postdoc.EPRINT, "printing failed"))

	assert.Equal(t, postdoc.EPRINT, postdoc.ErrorCode(err))
	assert.Equal(t, "printing failed", postdoc.ErrorMessage(err))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	err := errors.New("boom")

	assert.Equal(t, postdoc.EINTERNAL, postdoc.ErrorCode(err))
	assert.Equal(t, "Internal error.", postdoc.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, postdoc.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, postdoc.ErrorMessage(nil))
}
