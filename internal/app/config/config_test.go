package config

import (
	"clinic-admin-service/internal/pkg/constvars"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewInternalConfig(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		cfg := NewInternalConfig()

		assert.Equal(t, "Clinic", cfg.Tenant.TenantName)
		assert.Equal(t, "Doctor Appointment System", cfg.Tenant.ApplicationName)
		assert.Equal(t, []string{constvars.RoleSystemAdministrator}, cfg.Tenant.OwnerRoles)
		assert.Len(t, cfg.Tenant.TenantRoles, 5)
		assert.Empty(t, cfg.Tenant.CustomerRoles)
		assert.True(t, cfg.Tenant.HasAddOn(AddOnNotifications))
		assert.Equal(t, 30*24*time.Hour, cfg.Notification.Retention())
		assert.Equal(t, "@daily", cfg.Notification.PurgeCronSpec)
	})

	t.Run("Environment Overrides", func(t *testing.T) {
		t.Setenv("CACHE_TTL", "90s")
		t.Setenv("TENANT_ADD_ONS", "file upload, file")
		t.Setenv("APP_MAX_REQUEST", "not-a-number")

		cfg := NewInternalConfig()

		assert.Equal(t, 90*time.Second, cfg.Cache.TTL)
		assert.Equal(t, []string{AddOnFileUpload, AddOnFile}, cfg.Tenant.AddOns)
		assert.False(t, cfg.Tenant.HasAddOn(AddOnNotifications))
		assert.Equal(t, 50, cfg.App.MaxRequests, "unparsable values keep the default")
	})
}
