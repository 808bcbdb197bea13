package responses

type AppConfig struct {
	OwnerRoles        []string `json:"owner_roles"`
	CustomerRoles     []string `json:"customer_roles"`
	TenantRoles       []string `json:"tenant_roles"`
	TenantName        string   `json:"tenant_name"`
	ApplicationName   string   `json:"application_name"`
	AddOns            []string `json:"add_ons"`
	OwnerAbilities    []string `json:"owner_abilities"`
	CustomerAbilities []string `json:"customer_abilities"`
	GetQuoteURL       string   `json:"get_quote_url"`
}

type RoleAbilities struct {
	Role      string              `json:"role"`
	Abilities map[string][]string `json:"abilities"`
}
