package validator

import (
	"strings"
	"testing"

	"poetry/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestValidator_CreateUser(t *testing.T) {
	v := New()

	tests := []struct {
		name      string
		req       models.CreateUserRequest
		wantError bool
		errorMsg  string
	}{
		{
			name:      "Valid user request",
			req:       models.CreateUserRequest{Username: "ada", Email: "ada@x.io", Password: "s3cretpass"},
			wantError: false,
		},
		{
			name:      "Missing username",
			req:       models.CreateUserRequest{Email: "ada@x.io", Password: "s3cretpass"},
			wantError: true,
			errorMsg:  "username is required",
		},
		{
			name:      "Invalid email",
			req:       models.CreateUserRequest{Username: "ada", Email: "not-an-email", Password: "s3cretpass"},
			wantError: true,
			errorMsg:  "email must be a valid email address",
		},
		{
			name:      "Invalid username characters",
			req:       models.CreateUserRequest{Username: "ada lovelace!", Email: "ada@x.io", Password: "s3cretpass"},
			wantError: true,
			errorMsg:  "may only contain letters",
		},
		{
			name:      "Password too short",
			req:       models.CreateUserRequest{Username: "ada", Email: "ada@x.io", Password: "short"},
			wantError: true,
			errorMsg:  "password must be at least 8 characters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(&tt.req)

			if tt.wantError {
				assert.Error(t, err)
				if tt.errorMsg != "" {
					assert.Contains(t, err.Error(), tt.errorMsg)
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidator_Entities(t *testing.T) {
	v := New()

	author := models.NewUser("ada", "ada@x.io")
	author.Password = "$2a$04$hash"

	t.Run("Valid user and poem", func(t *testing.T) {
		assert.NoError(t, v.Validate(author))
		assert.NoError(t, v.Validate(models.NewPoem(author, "T", "B")))
	})

	t.Run("User without password hash", func(t *testing.T) {
		u := models.NewUser("bob", "bob@x.io")
		err := v.Validate(u)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "password is required")
	})

	t.Run("Blank poem title", func(t *testing.T) {
		p := models.NewPoem(author, "   ", "B")
		err := v.Validate(p)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "title must not be blank")
	})

	t.Run("Poem without author", func(t *testing.T) {
		p := models.NewPoem(author, "T", "B")
		p.UserID = ""
		err := v.Validate(p)
		require.Error(t, err)

		var verrs ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.Equal(t, "user_id", verrs[0].Field)
	})

	t.Run("Like with empty pair", func(t *testing.T) {
		assert.Error(t, v.Validate(&models.Like{}))
	})
}

func TestValidator_Patches(t *testing.T) {
	v := New()

	tests := []struct {
		name      string
		patch     interface{}
		wantError bool
		errorMsg  string
	}{
		{name: "Empty user patch", patch: &models.UserPatch{}, wantError: false},
		{name: "Valid username change", patch: &models.UserPatch{Username: strPtr("ada_l")}, wantError: false},
		{name: "Blank username", patch: &models.UserPatch{Username: strPtr("")}, wantError: true},
		{name: "Bad email", patch: &models.UserPatch{Email: strPtr("nope")}, wantError: true, errorMsg: "valid email"},
		{name: "Valid poem patch", patch: &models.PoemPatch{Title: strPtr("New title")}, wantError: false},
		{name: "Blank poem body", patch: &models.PoemPatch{Body: strPtr("  ")}, wantError: true, errorMsg: "body must not be blank"},
		{name: "Clearing category", patch: &models.PoemPatch{CategoryID: strPtr("")}, wantError: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.patch)

			if tt.wantError {
				assert.Error(t, err)
				if tt.errorMsg != "" {
					assert.Contains(t, err.Error(), tt.errorMsg)
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidator_PasswordValueRedacted(t *testing.T) {
	v := New()

	err := v.Validate(&models.CreateUserRequest{Username: "ada", Email: "ada@x.io", Password: "short"})
	require.Error(t, err)

	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	for _, fe := range verrs {
		if fe.Field == "password" {
			assert.Empty(t, fe.Value)
		}
	}
	assert.False(t, strings.Contains(err.Error(), "short"))
}

func TestValidationErrors_Error(t *testing.T) {
	errs := ValidationErrors{
		{Field: "title", Message: "title is required", Tag: "required"},
		{Field: "email", Message: "email must be a valid email address", Tag: "email"},
	}

	errMsg := errs.Error()
	assert.Contains(t, errMsg, "title is required")
	assert.Contains(t, errMsg, "email must be a valid email address")
}
