package access

import (
	"clinic-admin-service/internal/app/contracts"
	"clinic-admin-service/internal/app/models"
	"clinic-admin-service/internal/pkg/constvars"
	"clinic-admin-service/internal/pkg/dto/requests"
	"clinic-admin-service/internal/pkg/dto/responses"
	"clinic-admin-service/internal/pkg/exceptions"
	"slices"

	"github.com/casbin/casbin/v2"
	"go.uber.org/zap"
)

// ownershipColumns lists, per role, the column that must equal the caller's
// user id for each entity. An entity missing from a role's map is not scoped
// for that role.
var ownershipColumns = map[string]map[string]string{
	constvars.RolePatient: {
		constvars.EntityUser:          "id",
		constvars.EntityAppointment:   "patient_id",
		constvars.EntityBilling:       "patient_id",
		constvars.EntityInsurance:     "patient_id",
		constvars.EntityMedicalRecord: "patient_id",
	},
	constvars.RoleHealthcareProvider: {
		constvars.EntityAppointment:   "doctor_id",
		constvars.EntityMedicalRecord: "doctor_id",
	},
}

type accessService struct {
	Enforcer *casbin.Enforcer
	Log      *zap.Logger
}

func NewAccessService(enforcer *casbin.Enforcer, logger *zap.Logger) contracts.AccessService {
	return &accessService{
		Enforcer: enforcer,
		Log:      logger,
	}
}

// NewEnforcer loads the casbin model and policy files.
func NewEnforcer(modelPath, policyPath string) (*casbin.Enforcer, error) {
	return casbin.NewEnforcer(modelPath, policyPath)
}

func (s *accessService) HasAccess(roles []string, entity, operation string) (bool, error) {
	for _, role := range roles {
		allowed, err := s.Enforcer.Enforce(role, entity, operation)
		if err != nil {
			s.Log.Error("accessService.HasAccess error enforcing policy",
				zap.String("role", role),
				zap.String(constvars.LoggingEntityKey, entity),
				zap.Error(err),
			)
			return false, exceptions.ErrCasbinEnforce(err, role)
		}
		if allowed {
			return true, nil
		}
	}
	return false, nil
}

func (s *accessService) Authorize(session *models.Session, entity, operation string) error {
	if session == nil {
		return exceptions.ErrTokenMissing(nil)
	}

	allowed, err := s.HasAccess(session.Roles, entity, operation)
	if err != nil {
		return err
	}
	if !allowed {
		return exceptions.ErrPermissionDenied(session.Roles, operation, entity)
	}
	return nil
}

// Abilities maps every entity the roles can touch to the allowed operations.
func (s *accessService) Abilities(roles []string) (map[string][]string, error) {
	abilities := make(map[string][]string)
	for _, entity := range constvars.Entities {
		for _, operation := range constvars.AccessOperations {
			allowed, err := s.HasAccess(roles, entity, operation)
			if err != nil {
				return nil, err
			}
			if allowed {
				abilities[entity] = append(abilities[entity], operation)
			}
		}
	}
	return abilities, nil
}

func (s *accessService) RoleAbilities(roles []string) ([]responses.RoleAbilities, error) {
	result := make([]responses.RoleAbilities, 0, len(roles))
	for _, role := range roles {
		abilities, err := s.Abilities([]string{role})
		if err != nil {
			return nil, err
		}
		result = append(result, responses.RoleAbilities{Role: role, Abilities: abilities})
	}
	return result, nil
}

// FilterIncludes keeps the relations whose target entity the roles can read.
// relationEntities maps a relation name to its entity. _count always passes.
func (s *accessService) FilterIncludes(roles []string, includes []string, relationEntities map[string]string) []string {
	filtered := make([]string, 0, len(includes))
	for _, include := range includes {
		if include == constvars.IncludeCount {
			filtered = append(filtered, include)
			continue
		}

		entity, ok := relationEntities[include]
		if !ok {
			continue
		}
		allowed, err := s.HasAccess(roles, entity, constvars.AccessOperationRead)
		if err != nil || !allowed {
			continue
		}
		filtered = append(filtered, include)
	}
	return filtered
}

// ownershipColumn returns the column the session is restricted on for
// entity. Any role without a restriction lifts it.
func ownershipColumn(session *models.Session, entity string) (string, bool) {
	if session == nil || len(session.Roles) == 0 {
		return "", false
	}

	column := ""
	for _, role := range session.Roles {
		scoped, ok := ownershipColumns[role][entity]
		if !ok {
			return "", false
		}
		if column == "" {
			column = scoped
		}
	}
	return column, column != ""
}

// ScopeOwnership narrows args to the records the session owns. A filter on
// the scoped column that names someone else matches nothing.
func (s *accessService) ScopeOwnership(session *models.Session, entity string, args *requests.FindArgs) *requests.FindArgs {
	scoped := args.Clone()

	column, ok := ownershipColumn(session, entity)
	if !ok {
		return scoped
	}
	if scoped.Where == nil {
		scoped.Where = make(map[string]interface{}, 1)
	}

	existing, filtered := scoped.Where[column]
	if filtered && !filterAllows(existing, session.UserID) {
		scoped.Where[column] = []string{}
		return scoped
	}
	scoped.Where[column] = session.UserID
	return scoped
}

func filterAllows(value interface{}, userID string) bool {
	switch v := value.(type) {
	case string:
		return v == userID
	case []string:
		return slices.Contains(v, userID)
	case []interface{}:
		return slices.Contains(v, interface{}(userID))
	default:
		return false
	}
}

// CheckOwnership rejects writes that would assign a scoped column to
// someone other than the caller.
func (s *accessService) CheckOwnership(session *models.Session, entity, operation string, values map[string]string) error {
	column, ok := ownershipColumn(session, entity)
	if !ok {
		return nil
	}

	value, present := values[column]
	if !present || value == session.UserID {
		return nil
	}
	return exceptions.ErrPermissionDenied(session.Roles, operation, entity)
}
