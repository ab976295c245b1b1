package apierror

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromStoreError_KeepsCause(t *testing.T) {
	cause := errors.New("disk I/O error")

	err := FromStoreError(cause)

	assert.Equal(t, KindServerError, err.Kind())
	assert.Equal(t, "internal server error", err.Error())
	assert.ErrorIs(t, err, cause)
}

func TestFromValidationError_ListsEveryField(t *testing.T) {
	type request struct {
		Name  string `validate:"required"`
		Email string `validate:"required,email"`
		Count int    `validate:"gt=0"`
	}

	verr := validator.New().Struct(&request{Email: "not-an-email"})
	require.Error(t, verr)

	err := FromValidationError(verr)

	assert.Equal(t, KindBadRequest, err.Kind())
	assert.Equal(t, []string{
		"name is required",
		"email must be a valid email address",
		"count must be greater than 0",
	}, err.Details)
}

func TestFromValidationError_UnknownError(t *testing.T) {
	err := FromValidationError(errors.New("boom"))

	assert.Same(t, MalformedBodyError, err)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "bad_request", KindBadRequest.String())
	assert.Equal(t, "not_found", KindNotFound.String())
	assert.Equal(t, "server_error", KindServerError.String())
}
