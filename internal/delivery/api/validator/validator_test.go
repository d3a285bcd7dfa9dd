package validator

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	UserID string `json:"userId" validate:"required,uuid"`
	Text   string `json:"text,omitempty" validate:"required"`
	Hidden string `json:"-" validate:"required"`
}

func TestCustomValidator_Validate(t *testing.T) {
	v := New()

	err := v.Validate(&sample{UserID: "0190a3b2-7c4d-7e8f-9a0b-1c2d3e4f5a6b", Text: "hi", Hidden: "x"})
	require.NoError(t, err)

	err = v.Validate(&sample{UserID: "nope"})
	require.Error(t, err)

	fields := FieldErrors(err)
	assert.Equal(t, "uuid", fields["userId"])
	assert.Equal(t, "required", fields["text"])
	assert.Len(t, fields, 3)
}

func TestFieldErrors_OtherError(t *testing.T) {
	assert.Nil(t, FieldErrors(errors.New("boom")))
}
