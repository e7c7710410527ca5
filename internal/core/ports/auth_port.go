package ports

import "github.com/clubnautico/club_service/internal/core/domain"

type TokenService interface {
	IssueToken(user *domain.User) (string, error)
	VerifyToken(token string) (*domain.Principal, error)
}
