package config

import (
	"clinic-admin-service/internal/pkg/constvars"
	"clinic-admin-service/internal/pkg/utils"
)

// AppTenant is the branding and role layout of the deployed tenant.
type AppTenant struct {
	OwnerRoles        []string `mapstructure:"owner_roles"`
	CustomerRoles     []string `mapstructure:"customer_roles"`
	TenantRoles       []string `mapstructure:"tenant_roles"`
	TenantName        string   `mapstructure:"tenant_name"`
	ApplicationName   string   `mapstructure:"application_name"`
	AddOns            []string `mapstructure:"add_ons"`
	OwnerAbilities    []string `mapstructure:"owner_abilities"`
	CustomerAbilities []string `mapstructure:"customer_abilities"`
	GetQuoteURL       string   `mapstructure:"get_quote_url"`
}

const (
	AddOnFileUpload    = "file upload"
	AddOnChat          = "chat"
	AddOnNotifications = "notifications"
	AddOnFile          = "file"
)

func NewTenantConfig() AppTenant {
	return AppTenant{
		OwnerRoles:      constvars.OwnerRoles,
		CustomerRoles:   constvars.CustomerRoles,
		TenantRoles:     constvars.TenantRoles,
		TenantName:      utils.GetEnvString("TENANT_NAME", "Clinic"),
		ApplicationName: utils.GetEnvString("TENANT_APPLICATION_NAME", "Doctor Appointment System"),
		AddOns: utils.GetEnvStringSlice("TENANT_ADD_ONS", []string{
			AddOnFileUpload,
			AddOnChat,
			AddOnNotifications,
			AddOnFile,
		}),
		OwnerAbilities: []string{
			"Manage users",
			"Manage clinics",
			"Manage appointments",
			"Manage medical records",
		},
		CustomerAbilities: []string{},
		GetQuoteURL:       utils.GetEnvString("TENANT_GET_QUOTE_URL", "https://roq-wizzard-git-qa03-roqtech.vercel.app/proposal/6fde1c61-00d8-402f-9755-0f4eecc627e7"),
	}
}

func (t AppTenant) HasAddOn(addOn string) bool {
	for _, enabled := range t.AddOns {
		if enabled == addOn {
			return true
		}
	}
	return false
}
