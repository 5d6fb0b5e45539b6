package kinvey

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorFromBody(t *testing.T) {
	t.Parallel()

	t.Run("known code uses description", func(t *testing.T) {
		t.Parallel()

		body := &ErrorBody{
			Code:        "InvalidCredentials",
			Description: "Invalid e-mail or password.",
		}

		err := ErrorFromBody(body, 401)

		assert.Equal(t, ErrorKindInvalidCredentials, err.Kind)
		assert.Equal(t, "Invalid e-mail or password.", err.Message)
		assert.Equal(t, 401, err.Status)
	})

	t.Run("falls back to debug text", func(t *testing.T) {
		t.Parallel()

		body := &ErrorBody{
			Code:  "ValidationError",
			Debug: "Name is required.",
		}

		err := ErrorFromBody(body, 422)

		assert.Equal(t, ErrorKindValidationError, err.Kind)
		assert.Equal(t, "Name is required.", err.Message)
	})

	t.Run("appends field errors", func(t *testing.T) {
		t.Parallel()

		body := &ErrorBody{
			Code:        "ValidationError",
			Description: "The request body is invalid.",
			Errors: []FieldError{
				{Field: "name", Message: "Name is required."},
				{Message: "Unexpected property: foo."},
			},
		}

		err := ErrorFromBody(body, 422)

		assert.Equal(t, "The request body is invalid.\n\tField: name. Name is required.\n\tUnexpected property: foo.", err.Message)
	})

	t.Run("unknown code becomes UnknownError with code prefix", func(t *testing.T) {
		t.Parallel()

		body := &ErrorBody{
			Code:        "KinveyInternalErrorRetry",
			Description: "An internal error occurred.",
		}

		err := ErrorFromBody(body, 500)

		assert.Equal(t, ErrorKindUnknownError, err.Kind)
		assert.Equal(t, "KinveyInternalErrorRetry An internal error occurred.", err.Message)
		assert.Equal(t, 500, err.Status)
	})
}

func TestErrorString(t *testing.T) {
	t.Parallel()

	err := NewError(ErrorKindRequestTimedOut, "Request timed out.")

	assert.Equal(t, "RequestTimedOut: Request timed out.", err.Error())
}

func TestErrorClassification(t *testing.T) {
	t.Parallel()

	notFound := NewNotFoundError(ItemTypeApp, "books")

	assert.True(t, IsNotFound(notFound))
	assert.True(t, IsEntityError(notFound))
	assert.False(t, IsTooManyFound(notFound))
	assert.False(t, IsInvalidCredentials(notFound))

	tooMany := NewTooManyFoundError(ItemTypeService, "foo")

	assert.True(t, IsTooManyFound(tooMany))
	assert.True(t, IsEntityError(tooMany))

	// Wrapped errors still classify.
	wrapped := fmt.Errorf("resolving app: %w", notFound)

	assert.True(t, IsNotFound(wrapped))

	assert.False(t, IsNotFound(errors.New("plain")))
	assert.False(t, IsNotFound(nil))
}

func TestNotFoundErrorMessage(t *testing.T) {
	t.Parallel()

	err := NewNotFoundError(ItemTypeApp, "books")
	assert.Equal(t, "Could not find app with identifier 'books'.", err.Message)

	err = NewNotFoundError(ItemTypeEnv, "")
	assert.Equal(t, "Could not find environment.", err.Message)
}

func TestTooManyFoundErrorMessage(t *testing.T) {
	t.Parallel()

	err := NewTooManyFoundError(ItemTypeService, "foo")

	assert.Equal(t, "Found too many services with identifier 'foo'.", err.Message)
}

func TestItemNotSpecifiedErrorMessage(t *testing.T) {
	t.Parallel()

	err := NewItemNotSpecifiedError(ItemTypeApp)

	assert.Equal(t, ErrorKindItemNotSpecified, err.Kind)
	assert.Equal(t, "No app identifier is specified and active app is not set.", err.Message)
}

func TestTransformEntityError(t *testing.T) {
	t.Parallel()

	t.Run("rewrites not found with entity context", func(t *testing.T) {
		t.Parallel()

		generic := NewNotFoundError(ItemTypeApp, "raw-id")

		err := TransformEntityError(generic, ItemTypeService, "my-service")

		require.True(t, IsNotFound(err))

		kinveyErr := &Error{}
		require.True(t, errors.As(err, &kinveyErr))
		assert.Equal(t, "Could not find service with identifier 'my-service'.", kinveyErr.Message)
	})

	t.Run("rewrites too many found", func(t *testing.T) {
		t.Parallel()

		generic := NewTooManyFoundError(ItemTypeApp, "x")

		err := TransformEntityError(generic, ItemTypeOrg, "acme")

		assert.True(t, IsTooManyFound(err))
	})

	t.Run("passes other errors through", func(t *testing.T) {
		t.Parallel()

		original := NewError(ErrorKindInvalidCredentials, "nope")

		err := TransformEntityError(original, ItemTypeApp, "x")

		assert.Same(t, original, err)
	})
}
