package session

import (
	"clinic-admin-service/internal/app/contracts"
	"clinic-admin-service/internal/app/models"
	"clinic-admin-service/internal/pkg/constvars"
	"clinic-admin-service/internal/pkg/exceptions"
	"context"
	"time"

	"github.com/goccy/go-json"
)

type sessionService struct {
	RedisRepository contracts.RedisRepository
}

func NewSessionService(redisRepository contracts.RedisRepository) contracts.SessionService {
	return &sessionService{
		RedisRepository: redisRepository,
	}
}

func sessionKey(sessionID string) string {
	return constvars.RedisKeySessionPrefix + sessionID
}

func (svc *sessionService) Create(ctx context.Context, session *models.Session, ttl time.Duration) error {
	return svc.RedisRepository.Set(ctx, sessionKey(session.SessionID), session, ttl)
}

// Get returns nil when the session does not exist or has expired.
func (svc *sessionService) Get(ctx context.Context, sessionID string) (*models.Session, error) {
	sessionData, err := svc.RedisRepository.Get(ctx, sessionKey(sessionID))
	if err != nil {
		return nil, err
	}
	if sessionData == "" {
		return nil, nil
	}

	session := new(models.Session)
	err = json.Unmarshal([]byte(sessionData), session)
	if err != nil {
		return nil, exceptions.ErrParseSessionData(err)
	}
	return session, nil
}

func (svc *sessionService) Delete(ctx context.Context, sessionID string) error {
	return svc.RedisRepository.Delete(ctx, sessionKey(sessionID))
}
