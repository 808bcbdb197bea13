package contracts

import (
	"clinic-admin-service/internal/app/models"
	"clinic-admin-service/internal/pkg/dto/requests"
	"clinic-admin-service/internal/pkg/dto/responses"
	"context"
)

type AuthUsecase interface {
	Login(ctx context.Context, request *requests.LoginUser) (*responses.LoginUser, error)
	Logout(ctx context.Context, session *models.Session) error
	Profile(ctx context.Context, session *models.Session) (*responses.Profile, error)
	ResolveSession(ctx context.Context, token string) (*models.Session, error)
}
