package utils

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sysu-ecnc-dev/shift-rotation/backend/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

func TestGenerateUsernameFromChineseName(t *testing.T) {
	pattern := regexp.MustCompile(`^[a-z]+[0-9]{1,3}$`)
	for i := 0; i < 50; i++ {
		username := GenerateUsernameFromChineseName(GenerateRandomChineseName())
		assert.Regexp(t, pattern, username)
	}
}

func TestGenerateRandomEmployee(t *testing.T) {
	e, err := GenerateRandomEmployee("password", "example.com")
	require.NoError(t, err)

	assert.Equal(t, e.Username+"@example.com", e.Email)
	assert.Contains(t, []domain.Role{domain.RoleAdmin, domain.RoleEmployee}, e.Role)
	assert.True(t, e.HasTeam())
	assert.LessOrEqual(t, e.Team, int32(3))
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(e.PasswordHash), []byte("password")))
}

func TestGenerateRandomOTP(t *testing.T) {
	for i := 0; i < 20; i++ {
		assert.Regexp(t, `^[0-9]{6}$`, GenerateRandomOTP())
	}
}

func TestGenerateRandomPassword(t *testing.T) {
	assert.Len(t, GenerateRandomPassword(12), 12)
	assert.Empty(t, GenerateRandomPassword(0))
}
