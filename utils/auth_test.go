package utils

import (
	"testing"

	"github.com/pwdtrack/pwd_end/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestVerifyPassword(t *testing.T) {
	t.Run("plain sha256 hash", func(t *testing.T) {
		hashed := HashPassword("admin123")
		assert.True(t, VerifyPassword("admin123", hashed))
		assert.False(t, VerifyPassword("wrong", hashed))
	})

	t.Run("salted format", func(t *testing.T) {
		hashed := SimpleHash("secret", "abcd1234")
		assert.True(t, VerifyPassword("secret", hashed))
		assert.False(t, VerifyPassword("other", hashed))
	})

	t.Run("garbage stored hash never verifies", func(t *testing.T) {
		assert.False(t, VerifyPassword("secret", "not-a-hash"))
	})
}

func TestTokenRoundTrip(t *testing.T) {
	InitLogger()

	user := models.User{
		ID:       primitive.NewObjectID(),
		Username: "je_rampur",
		Role:     models.UserRoleJE,
	}

	token, err := GenerateToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID.Hex(), claims["id"])
	assert.Equal(t, "je_rampur", claims["username"])
	assert.Equal(t, "JE", claims["role"])
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	_, err := ParseToken("not.a.token")
	assert.Error(t, err)
}

func TestHasPermission(t *testing.T) {
	assert.True(t, HasPermission(models.UserRoleADMIN, "projects", "delete"))
	assert.True(t, HasPermission(models.UserRoleJE, "projects", "create"))
	assert.False(t, HasPermission(models.UserRoleVIEWER, "projects", "create"))
	assert.True(t, HasPermission(models.UserRoleVIEWER, "projects", "read"))
	assert.False(t, HasPermission(models.UserRoleAEE, "files", "delete"))
}
