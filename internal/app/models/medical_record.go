package models

type MedicalRecord struct {
	ID            string  `json:"id"`
	Diagnosis     string  `json:"diagnosis"`
	TreatmentPlan string  `json:"treatment_plan"`
	Prescription  *string `json:"prescription"`
	Notes         *string `json:"notes"`
	PatientID     string  `json:"patient_id"`
	DoctorID      string  `json:"doctor_id"`
	Patient       *User   `json:"patient,omitempty"`
	Doctor        *User   `json:"doctor,omitempty"`
	TimeModel
}
