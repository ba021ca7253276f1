package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/envmgr/envmgr/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := errors.New(errors.ErrEnvNotFound, "environment 'work' does not exist")
	assert.Equal(t, "[ENV_NOT_FOUND] environment 'work' does not exist", err.Error())
	assert.Equal(t, errors.ErrEnvNotFound, err.Code)
}

func TestWrap(t *testing.T) {
	inner := stderrors.New("permission denied")
	err := errors.Wrapf(inner, errors.ErrFileAccess, "failed to read %s", "/etc/passwd")
	require.NotNil(t, err)
	assert.Contains(t, err.Error(), "permission denied")
	assert.Equal(t, inner, stderrors.Unwrap(err))
}

func TestWrapNil(t *testing.T) {
	assert.Nil(t, errors.Wrap(nil, errors.ErrInternal, "should be nil"))
}

func TestIsErrorCode(t *testing.T) {
	err := errors.Newf(errors.ErrCyclicBase, "cycle detected at %q", "work")
	assert.True(t, errors.IsErrorCode(err, errors.ErrCyclicBase))
	assert.False(t, errors.IsErrorCode(err, errors.ErrEnvNotFound))

	// Wrapping in a plain error keeps the code reachable via errors.As
	wrapped := fmt.Errorf("resolving: %w", err)
	assert.True(t, errors.IsErrorCode(wrapped, errors.ErrCyclicBase))
}

func TestGetErrorCode(t *testing.T) {
	assert.Equal(t, errors.ErrLinkConflict, errors.GetErrorCode(errors.New(errors.ErrLinkConflict, "x")))
	assert.Equal(t, errors.ErrUnknown, errors.GetErrorCode(stderrors.New("plain")))
}

func TestWithDetail(t *testing.T) {
	err := errors.New(errors.ErrEnvNotFound, "missing").
		WithDetail("environment", "ghost")
	assert.Equal(t, "ghost", err.Details["environment"])
}
