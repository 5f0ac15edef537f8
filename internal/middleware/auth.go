package middleware

import (
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	apperrors "posapi/internal/errors"
	"posapi/internal/logger"
	"posapi/internal/respond"
)

const (
	subjectKey        = "subject"
	adminTokenExpiry  = time.Hour
	apiKeyHeader      = "X-API-Key"
	authorizationType = "Bearer"
)

// JWTConfig holds what AuthMiddleware needs to verify admin tokens.
type JWTConfig struct {
	Secret   string
	Issuer   string
	Audience string
}

// GenerateAdminToken issues an HS256 token for subject. It is used by the
// operator tooling and by tests; the API itself never hands tokens out.
func GenerateAdminToken(cfg JWTConfig, subject string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    cfg.Issuer,
		Subject:   subject,
		Audience:  jwt.ClaimStrings{cfg.Audience},
		ExpiresAt: jwt.NewNumericDate(now.Add(adminTokenExpiry)),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.Secret))
}

// AuthMiddleware verifies the bearer JWT (HS256, issuer and audience checked)
// and sets its subject in the context.
func AuthMiddleware(cfg JWTConfig) gin.HandlerFunc {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(cfg.Issuer),
		jwt.WithAudience(cfg.Audience),
		jwt.WithExpirationRequired(),
	)

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			respond.Error(c, apperrors.WithMessage(apperrors.ErrUnauthorized, "Authorization header is required"))
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != authorizationType {
			respond.Error(c, apperrors.WithMessage(apperrors.ErrUnauthorized, "Invalid authorization header format"))
			return
		}

		claims := &jwt.RegisteredClaims{}
		token, err := parser.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(cfg.Secret), nil
		})
		if err != nil || !token.Valid {
			logger.From(c.Request.Context()).Warnw("admin token rejected", "reason", err)
			respond.Error(c, apperrors.WithMessage(apperrors.ErrUnauthorized, "Invalid authentication credentials"))
			return
		}

		c.Set(subjectKey, claims.Subject)
		c.Next()
	}
}

// GetSubject returns the token subject set by AuthMiddleware.
func GetSubject(c *gin.Context) string {
	return c.GetString(subjectKey)
}

// TerminalKeyMiddleware validates the X-API-Key header sent by POS terminals
// against the bcrypt hash of the shared key.
func TerminalKeyMiddleware(keyHash string) gin.HandlerFunc {
	hash := []byte(keyHash)
	return func(c *gin.Context) {
		key := c.GetHeader(apiKeyHeader)
		if key == "" || len(hash) == 0 || bcrypt.CompareHashAndPassword(hash, []byte(key)) != nil {
			respond.Error(c, apperrors.WithMessage(apperrors.ErrUnauthorized, "Invalid or missing API key"))
			return
		}
		c.Next()
	}
}
