package access

import (
	"clinic-admin-service/internal/app/models"
	"clinic-admin-service/internal/pkg/constvars"
	"clinic-admin-service/internal/pkg/dto/requests"
	"clinic-admin-service/internal/pkg/exceptions"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestAccessService(t *testing.T) *accessService {
	enforcer, err := NewEnforcer("../../../../../resources/rbac_model.conf", "../../../../../resources/rbac_policy.csv")
	if err != nil {
		t.Skipf("Skipping test due to missing RBAC files: %v", err)
	}
	return NewAccessService(enforcer, zap.NewNop()).(*accessService)
}

func TestAccessService_HasAccess(t *testing.T) {
	service := newTestAccessService(t)

	t.Run("System Administrator Owns Everything", func(t *testing.T) {
		for _, entity := range constvars.Entities {
			for _, operation := range constvars.AccessOperations {
				allowed, err := service.HasAccess([]string{constvars.RoleSystemAdministrator}, entity, operation)
				assert.NoError(t, err)
				assert.True(t, allowed, "System Administrator should be able to %s %s", operation, entity)
			}
		}
	})

	t.Run("Patient Can Book But Not Edit Appointments", func(t *testing.T) {
		allowed, err := service.HasAccess([]string{constvars.RolePatient}, constvars.EntityAppointment, constvars.AccessOperationCreate)
		assert.NoError(t, err)
		assert.True(t, allowed, "Patient should be able to create appointments")

		allowed, err = service.HasAccess([]string{constvars.RolePatient}, constvars.EntityAppointment, constvars.AccessOperationUpdate)
		assert.NoError(t, err)
		assert.False(t, allowed, "Patient should not be able to update appointments")
	})

	t.Run("Insurance Provider Cannot Read Medical Records", func(t *testing.T) {
		allowed, err := service.HasAccess([]string{constvars.RoleInsuranceProvider}, constvars.EntityMedicalRecord, constvars.AccessOperationRead)
		assert.NoError(t, err)
		assert.False(t, allowed, "Insurance Provider should not see medical records")
	})

	t.Run("Any Role Grants", func(t *testing.T) {
		allowed, err := service.HasAccess([]string{constvars.RolePatient, constvars.RoleMedicalStaff}, constvars.EntityBilling, constvars.AccessOperationCreate)
		assert.NoError(t, err)
		assert.True(t, allowed, "a grant on any role should allow the operation")
	})

	t.Run("Unknown Role Has No Access", func(t *testing.T) {
		allowed, err := service.HasAccess([]string{"Visitor"}, constvars.EntityClinic, constvars.AccessOperationRead)
		assert.NoError(t, err)
		assert.False(t, allowed)
	})
}

func TestAccessService_Authorize(t *testing.T) {
	service := newTestAccessService(t)

	t.Run("Update Denied Uses Update Message", func(t *testing.T) {
		session := &models.Session{UserID: "u-1", Roles: []string{constvars.RolePatient}}

		err := service.Authorize(session, constvars.EntityMedicalRecord, constvars.AccessOperationUpdate)
		require.Error(t, err)

		var customErr *exceptions.CustomError
		require.True(t, errors.As(err, &customErr))
		assert.Equal(t, constvars.StatusForbidden, customErr.StatusCode)
		assert.Equal(t, "You don't have permissions to update this resource", customErr.ClientMessage)
	})

	t.Run("Missing Session Is Unauthorized", func(t *testing.T) {
		err := service.Authorize(nil, constvars.EntityClinic, constvars.AccessOperationRead)

		var customErr *exceptions.CustomError
		require.True(t, errors.As(err, &customErr))
		assert.Equal(t, constvars.StatusUnauthorized, customErr.StatusCode)
	})
}

func TestAccessService_Abilities(t *testing.T) {
	service := newTestAccessService(t)

	abilities, err := service.Abilities([]string{constvars.RoleHealthcareProvider})
	require.NoError(t, err)

	assert.Equal(t, []string{"create", "read", "update", "delete"}, abilities[constvars.EntityMedicalRecord])
	assert.Equal(t, []string{"create", "read", "update"}, abilities[constvars.EntityAppointment])
	assert.Equal(t, []string{"read"}, abilities[constvars.EntityBilling])

	roleAbilities, err := service.RoleAbilities([]string{constvars.RolePatient})
	require.NoError(t, err)
	require.Len(t, roleAbilities, 1)
	assert.Equal(t, constvars.RolePatient, roleAbilities[0].Role)
	assert.NotContains(t, roleAbilities[0].Abilities[constvars.EntityAppointment], constvars.AccessOperationDelete)
}

func TestAccessService_FilterIncludes(t *testing.T) {
	service := newTestAccessService(t)
	relations := map[string]string{
		"user":      constvars.EntityUser,
		"clinic":    constvars.EntityClinic,
		"insurance": constvars.EntityInsurance,
	}

	t.Run("Drops Relations Without Read Access", func(t *testing.T) {
		filtered := service.FilterIncludes([]string{"Visitor"}, []string{"user", "clinic", "_count"}, relations)
		assert.Equal(t, []string{"_count"}, filtered)
	})

	t.Run("Drops Unknown Relations", func(t *testing.T) {
		filtered := service.FilterIncludes([]string{constvars.RoleMedicalStaff}, []string{"clinic", "doctor"}, relations)
		assert.Equal(t, []string{"clinic"}, filtered)
	})
}

func TestScopeOwnership(t *testing.T) {
	service := newTestAccessService(t)
	patient := &models.Session{UserID: "patient-1", Roles: []string{constvars.RolePatient}}
	doctor := &models.Session{UserID: "doctor-1", Roles: []string{constvars.RoleHealthcareProvider}}
	staff := &models.Session{UserID: "staff-1", Roles: []string{constvars.RoleMedicalStaff}}

	t.Run("Patient Is Limited To Own Records", func(t *testing.T) {
		args := &requests.FindArgs{Page: 1, PageSize: 10}

		scoped := service.ScopeOwnership(patient, constvars.EntityMedicalRecord, args)

		assert.Equal(t, "patient-1", scoped.Where["patient_id"])
		assert.Nil(t, args.Where, "the original arguments should not be modified")
	})

	t.Run("Patient Sees Only Own User Row", func(t *testing.T) {
		scoped := service.ScopeOwnership(patient, constvars.EntityUser, nil)
		assert.Equal(t, "patient-1", scoped.Where["id"])
	})

	t.Run("Filter On Someone Else Matches Nothing", func(t *testing.T) {
		args := &requests.FindArgs{Where: map[string]interface{}{"patient_id": "patient-2"}}

		scoped := service.ScopeOwnership(patient, constvars.EntityBilling, args)

		assert.Equal(t, []string{}, scoped.Where["patient_id"])
	})

	t.Run("Doctor Is Limited On Appointments Only", func(t *testing.T) {
		appointments := service.ScopeOwnership(doctor, constvars.EntityAppointment, nil)
		assert.Equal(t, "doctor-1", appointments.Where["doctor_id"])

		billings := service.ScopeOwnership(doctor, constvars.EntityBilling, nil)
		assert.Empty(t, billings.Where, "billing should not be scoped for doctors")
	})

	t.Run("Staff Is Not Scoped", func(t *testing.T) {
		scoped := service.ScopeOwnership(staff, constvars.EntityMedicalRecord, nil)
		assert.Empty(t, scoped.Where)
	})

	t.Run("Unrestricted Role Lifts Scope", func(t *testing.T) {
		both := &models.Session{UserID: "u-1", Roles: []string{constvars.RolePatient, constvars.RoleMedicalStaff}}

		scoped := service.ScopeOwnership(both, constvars.EntityAppointment, nil)
		assert.Empty(t, scoped.Where)
	})
}

func TestCheckOwnership(t *testing.T) {
	service := newTestAccessService(t)
	patient := &models.Session{UserID: "patient-1", Roles: []string{constvars.RolePatient}}

	t.Run("Own Record Passes", func(t *testing.T) {
		err := service.CheckOwnership(patient, constvars.EntityAppointment, constvars.AccessOperationCreate, map[string]string{"patient_id": "patient-1", "doctor_id": "doctor-1"})
		assert.NoError(t, err)
	})

	t.Run("Record For Someone Else Is Forbidden", func(t *testing.T) {
		err := service.CheckOwnership(patient, constvars.EntityAppointment, constvars.AccessOperationCreate, map[string]string{"patient_id": "patient-2"})

		var customErr *exceptions.CustomError
		require.True(t, errors.As(err, &customErr))
		assert.Equal(t, constvars.StatusForbidden, customErr.StatusCode)
		assert.Equal(t, constvars.ErrClientNoPermissionToCreate, customErr.ClientMessage)
	})
}
