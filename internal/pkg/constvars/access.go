package constvars

// Entities guarded by the access policy. Names match the table names.
const (
	EntityUser          = "user"
	EntityClinic        = "clinic"
	EntityInsurance     = "insurance"
	EntityAppointment   = "appointment"
	EntityBilling       = "billing"
	EntityMedicalRecord = "medical_record"
	EntityAttachment    = "attachment"
	EntityNotification  = "notification"
)

var Entities = []string{
	EntityUser,
	EntityClinic,
	EntityInsurance,
	EntityAppointment,
	EntityBilling,
	EntityMedicalRecord,
}

const (
	AccessOperationCreate = "create"
	AccessOperationRead   = "read"
	AccessOperationUpdate = "update"
	AccessOperationDelete = "delete"
)

var AccessOperations = []string{
	AccessOperationCreate,
	AccessOperationRead,
	AccessOperationUpdate,
	AccessOperationDelete,
}

const (
	RoleSystemAdministrator = "System Administrator"
	RoleHealthcareProvider  = "Healthcare Provider"
	RoleMedicalStaff        = "Medical Staff"
	RolePatient             = "Patient"
	RoleInsuranceProvider   = "Insurance Provider"
)

var (
	OwnerRoles    = []string{RoleSystemAdministrator}
	CustomerRoles = []string{}
	TenantRoles   = []string{
		RoleSystemAdministrator,
		RoleHealthcareProvider,
		RoleMedicalStaff,
		RolePatient,
		RoleInsuranceProvider,
	}
)
