package response

import (
	"encoding/json"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOK(t *testing.T) {
	resp := OK(map[string]any{"id": 5})

	assert.True(t, resp.Success)
	assert.Empty(t, resp.Message)
	assert.NotNil(t, resp.Data)
}

func TestOKMessage(t *testing.T) {
	resp := OKMessage("client created", nil)

	assert.True(t, resp.Success)
	assert.Equal(t, "client created", resp.Message)
}

func TestError(t *testing.T) {
	resp := Error("something went wrong")

	assert.False(t, resp.Success)
	assert.Equal(t, "something went wrong", resp.Message)
	assert.Nil(t, resp.Data)
}

func TestResponse_JSONShape(t *testing.T) {
	raw, err := json.Marshal(Error("oops"))
	require.NoError(t, err)
	// пустые data и errors не сериализуются
	assert.JSONEq(t, `{"success":false,"message":"oops"}`, string(raw))
}

func TestValidationError(t *testing.T) {
	type form struct {
		Name  string `validate:"required"`
		Email string `validate:"required,email"`
	}

	err := validator.New().Struct(form{Email: "not-an-email"})
	require.Error(t, err)

	resp := ValidationError(err.(validator.ValidationErrors))

	assert.False(t, resp.Success)
	assert.Equal(t, "validation failed", resp.Message)
	assert.Len(t, resp.Errors, 2)
	assert.Contains(t, resp.Errors, "field Name is a required field")
	assert.Contains(t, resp.Errors, "field Email must be a valid email")
}
