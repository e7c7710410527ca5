package http

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/clubnautico/club_service/internal/core/domain"
	"github.com/clubnautico/club_service/internal/core/ports"

	"github.com/golang-jwt/jwt/v5"
)

type JWTTokenService struct {
	secretKey []byte
	duration  time.Duration
	logger    ports.LoggerPort
	now       func() time.Time
}

func NewJWTTokenService(secretKey string, duration time.Duration, logger ports.LoggerPort) *JWTTokenService {
	return &JWTTokenService{
		secretKey: []byte(secretKey),
		duration:  duration,
		logger:    logger,
		now:       time.Now,
	}
}

func (j *JWTTokenService) IssueToken(user *domain.User) (string, error) {
	now := j.now()
	claims := jwt.MapClaims{
		"sub":   user.ID.String(),
		"email": user.Email,
		"name":  strings.TrimSpace(fmt.Sprintf("%s %s", user.Nombre, user.Apellido)),
		"role":  string(user.Role),
		"iat":   now.Unix(),
		"exp":   now.Add(j.duration).Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.secretKey)
	if err != nil {
		j.logger.Error("Failed to sign jwt", map[string]interface{}{
			"error":   err.Error(),
			"user_id": user.ID,
		})
		return "", err
	}
	return token, nil
}

func (j *JWTTokenService) VerifyToken(token string) (*domain.Principal, error) {
	parsedToken, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		return j.secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired(), jwt.WithTimeFunc(j.now))
	if err != nil {
		j.logger.Warn("Failed to parse jwt", map[string]interface{}{
			"error":  err.Error(),
			"method": "VerifyToken",
		})
		return nil, err
	}

	claims, ok := parsedToken.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("failed to verify")
	}

	userID, ok := claims["sub"].(string)
	if !ok || userID == "" {
		return nil, errors.New("invalid sub claim")
	}

	roleClaimed, _ := claims["role"].(string)
	role := domain.NormalizeRole(roleClaimed)
	if !role.Valid() {
		j.logger.Warn("Invalid role in token", map[string]interface{}{
			"role":   roleClaimed,
			"method": "VerifyToken",
		})
		return nil, errors.New("invalid role value")
	}

	email, _ := claims["email"].(string)
	name, _ := claims["name"].(string)

	return &domain.Principal{
		UserID: userID,
		Email:  email,
		Name:   name,
		Role:   role,
	}, nil
}
