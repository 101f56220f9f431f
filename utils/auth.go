package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/pwdtrack/pwd_end/config"
	"github.com/pwdtrack/pwd_end/models"

	"github.com/dgrijalva/jwt-go"
)

var jwtSecret = []byte(config.LoadConfig().JWTKey)

// HashPassword hashes a password with SHA-256.
func HashPassword(password string) string {
	hash := sha256.Sum256([]byte(password))
	return hex.EncodeToString(hash[:])
}

// SimpleHash builds a salted hash in the sha256$salt$hex format.
func SimpleHash(password string, salt string) string {
	if salt == "" {
		salt = "69dc6ee0"
	}
	hash := sha256.Sum256([]byte(password + salt))
	return fmt.Sprintf("sha256$%s$%s", salt, hex.EncodeToString(hash[:]))
}

// VerifyPassword checks a password against a stored hash, accepting both the
// plain SHA-256 and the salted sha256$salt$hex formats.
func VerifyPassword(password string, hashedPassword string) bool {
	if HashPassword(password) == hashedPassword {
		return true
	}

	parts := strings.Split(hashedPassword, "$")
	if len(parts) == 3 && parts[0] == "sha256" {
		salt := parts[1]
		hashParts := strings.Split(SimpleHash(password, salt), "$")
		if len(hashParts) == 3 && hashParts[2] == parts[2] {
			return true
		}
	}

	return false
}

// GenerateToken signs a JWT for the account.
func GenerateToken(user models.User) (string, error) {
	userId := user.ID.Hex()

	Logger.Info().
		Str("_id", userId).
		Str("username", user.Username).
		Str("role", string(user.Role)).
		Msg("generating token")

	claims := jwt.MapClaims{
		"id":       userId,
		"username": user.Username,
		"role":     string(user.Role),
		"exp":      time.Now().Add(time.Hour * 24 * 30).Unix(), // 30 days
		"iat":      time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(jwtSecret)
	if err != nil {
		Logger.Error().Err(err).Msg("token signing failed")
		return "", err
	}

	return tokenString, nil
}

// ParseToken parses and validates a JWT.
func ParseToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return jwtSecret, nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token")
}

// HasPermission checks coarse resource/action permissions for a role. The
// fine-grained progress and approval gating lives in the rules package; this
// covers the plain CRUD surfaces.
func HasPermission(role models.UserRole, resource string, action string) bool {
	// administrators hold every permission
	if role == models.UserRoleADMIN {
		return true
	}

	permissions := map[models.UserRole]map[string][]string{
		models.UserRoleJE: {
			"projects": {"read", "create", "update"},
			"files":    {"read", "create", "delete"},
			"queries":  {"read", "create"},
		},
		models.UserRoleAEE: {
			"projects": {"read"},
			"files":    {"read"},
			"queries":  {"read", "create"},
		},
		models.UserRoleCE: {
			"projects": {"read"},
			"files":    {"read"},
			"queries":  {"read", "create"},
		},
		models.UserRoleMD: {
			"projects": {"read"},
			"files":    {"read"},
			"queries":  {"read", "create"},
		},
		models.UserRoleOPERATOR: {
			"projects": {"read"},
			"files":    {"read", "create"},
			"queries":  {"read", "create"},
		},
		models.UserRoleEXECUTOR: {
			"projects": {"read"},
			"files":    {"read"},
			"queries":  {"read", "create"},
		},
		models.UserRoleVIEWER: {
			"projects": {"read"},
			"files":    {"read"},
			"queries":  {"read", "create"},
		},
	}

	if resourceActions, exists := permissions[role]; exists {
		if actions, hasResource := resourceActions[resource]; hasResource {
			for _, a := range actions {
				if a == action {
					return true
				}
			}
		}
	}

	return false
}
