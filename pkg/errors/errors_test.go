package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeTrackNotFound, "track missing")
	assert.Equal(t, ErrCodeTrackNotFound, err.Code)
	assert.Equal(t, "track missing", err.Message)
	assert.NotEmpty(t, err.Stack)
	assert.Equal(t, "[SPACE_003] track missing", err.Error())
}

func TestErrorWithDetail(t *testing.T) {
	err := New(ErrCodeProfileInvalid, "bad profile").WithDetail("id=abc")
	assert.Equal(t, "[DNA_002] bad profile: id=abc", err.Error())

	var nilErr *AppError
	assert.Nil(t, nilErr.WithDetail("x"))
}

func TestWrap(t *testing.T) {
	assert.Nil(t, Wrap(nil, ErrCodeInternal, "ignored"))

	cause := stderrors.New("disk on fire")
	err := Wrap(cause, ErrCodeProfileStoreRead, "load failed")
	assert.Equal(t, ErrCodeProfileStoreRead, err.Code)
	assert.ErrorIs(t, err, cause)
}

func TestWrapPreservesCodeForUnknown(t *testing.T) {
	inner := New(ErrCodeSpaceEmptyInput, "no tracks")
	outer := Wrap(inner, ErrCodeUnknown, "rebuild failed")
	assert.Equal(t, ErrCodeSpaceEmptyInput, outer.Code)
}

func TestIsCode(t *testing.T) {
	inner := New(ErrCodeTrackNotFound, "gone")
	wrapped := fmt.Errorf("outer: %w", inner)
	assert.True(t, IsCode(wrapped, ErrCodeTrackNotFound))
	assert.False(t, IsCode(wrapped, ErrCodeInternal))
	assert.False(t, IsCode(nil, ErrCodeInternal))
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(New(ErrCodeTrackNotFound, "x")))
	assert.True(t, IsNotFound(New(ErrCodeProfileNotFound, "x")))
	assert.True(t, IsNotFound(NotFound("x")))
	assert.False(t, IsNotFound(New(ErrCodeInternal, "x")))
	assert.False(t, IsNotFound(nil))
}

func TestGetCode(t *testing.T) {
	assert.Equal(t, ErrCodeOK, GetCode(nil))
	assert.Equal(t, ErrCodeUnknown, GetCode(stderrors.New("plain")))
	assert.Equal(t, ErrCodeEmbeddingFailed, GetCode(New(ErrCodeEmbeddingFailed, "x")))
}

func TestFactories(t *testing.T) {
	assert.Equal(t, ErrCodeNotFound, NotFound("x").Code)
	assert.Equal(t, ErrCodeBadRequest, InvalidParam("x").Code)
	assert.Equal(t, ErrCodeInternal, Internal("x").Code)
	assert.Equal(t, ErrCodeValidation, Newf(ErrCodeValidation, "k=%d", 3).Code)
	assert.Equal(t, "[COMMON_005] k=3", Newf(ErrCodeValidation, "k=%d", 3).Error())
}
