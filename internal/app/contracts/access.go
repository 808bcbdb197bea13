package contracts

import (
	"clinic-admin-service/internal/app/models"
	"clinic-admin-service/internal/pkg/dto/requests"
	"clinic-admin-service/internal/pkg/dto/responses"
)

type AccessService interface {
	HasAccess(roles []string, entity, operation string) (bool, error)
	Authorize(session *models.Session, entity, operation string) error
	Abilities(roles []string) (map[string][]string, error)
	FilterIncludes(roles []string, includes []string, relationEntities map[string]string) []string
	ScopeOwnership(session *models.Session, entity string, args *requests.FindArgs) *requests.FindArgs
	CheckOwnership(session *models.Session, entity, operation string, values map[string]string) error
	RoleAbilities(roles []string) ([]responses.RoleAbilities, error)
}
