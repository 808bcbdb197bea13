package requests

type CreateMedicalRecord struct {
	Diagnosis     string  `json:"diagnosis" validate:"required"`
	TreatmentPlan string  `json:"treatment_plan" validate:"required"`
	Prescription  *string `json:"prescription"`
	Notes         *string `json:"notes"`
	PatientID     string  `json:"patient_id" validate:"required,uuid"`
	DoctorID      string  `json:"doctor_id" validate:"required,uuid"`
}

type UpdateMedicalRecord struct {
	Diagnosis     *string `json:"diagnosis" validate:"omitempty,min=1"`
	TreatmentPlan *string `json:"treatment_plan" validate:"omitempty,min=1"`
	Prescription  *string `json:"prescription"`
	Notes         *string `json:"notes"`
	PatientID     *string `json:"patient_id" validate:"omitempty,uuid"`
	DoctorID      *string `json:"doctor_id" validate:"omitempty,uuid"`
}
