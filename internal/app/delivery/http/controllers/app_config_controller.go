package controllers

import (
	"clinic-admin-service/internal/app/config"
	"clinic-admin-service/internal/app/contracts"
	"clinic-admin-service/internal/pkg/constvars"
	"clinic-admin-service/internal/pkg/dto/responses"
	"clinic-admin-service/internal/pkg/utils"
	"net/http"

	"go.uber.org/zap"
)

type AppConfigController struct {
	Log            *zap.Logger
	AccessService  contracts.AccessService
	InternalConfig *config.InternalConfig
}

func NewAppConfigController(logger *zap.Logger, accessService contracts.AccessService, internalConfig *config.InternalConfig) *AppConfigController {
	return &AppConfigController{
		Log:            logger,
		AccessService:  accessService,
		InternalConfig: internalConfig,
	}
}

// GetAppConfig exposes the tenant branding and role layout. It is public.
func (ctrl *AppConfigController) GetAppConfig(w http.ResponseWriter, r *http.Request) {
	tenant := ctrl.InternalConfig.Tenant
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetAppConfigSuccess, &responses.AppConfig{
		OwnerRoles:        tenant.OwnerRoles,
		CustomerRoles:     tenant.CustomerRoles,
		TenantRoles:       tenant.TenantRoles,
		TenantName:        tenant.TenantName,
		ApplicationName:   tenant.ApplicationName,
		AddOns:            tenant.AddOns,
		OwnerAbilities:    tenant.OwnerAbilities,
		CustomerAbilities: tenant.CustomerAbilities,
		GetQuoteURL:       tenant.GetQuoteURL,
	})
}

// GetRoles lists every tenant role with the operations it grants per entity.
func (ctrl *AppConfigController) GetRoles(w http.ResponseWriter, r *http.Request) {
	roles, err := ctrl.AccessService.RoleAbilities(ctrl.InternalConfig.Tenant.TenantRoles)
	if err != nil {
		writeError(ctrl.Log, w, r, "AppConfigController.GetRoles", err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetRolesSuccess, roles)
}
