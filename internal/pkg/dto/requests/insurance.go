package requests

import "time"

type CreateInsurance struct {
	InsuranceName     string    `json:"insurance_name" validate:"required,max=255"`
	PolicyNumber      string    `json:"policy_number" validate:"required,max=255"`
	CoverageStartDate time.Time `json:"coverage_start_date" validate:"required"`
	CoverageEndDate   time.Time `json:"coverage_end_date" validate:"required,gtefield=CoverageStartDate"`
	PatientID         string    `json:"patient_id" validate:"required,uuid"`
	ClinicID          string    `json:"clinic_id" validate:"required,uuid"`
}

type UpdateInsurance struct {
	InsuranceName     *string    `json:"insurance_name" validate:"omitempty,min=1,max=255"`
	PolicyNumber      *string    `json:"policy_number" validate:"omitempty,min=1,max=255"`
	CoverageStartDate *time.Time `json:"coverage_start_date"`
	CoverageEndDate   *time.Time `json:"coverage_end_date"`
	PatientID         *string    `json:"patient_id" validate:"omitempty,uuid"`
	ClinicID          *string    `json:"clinic_id" validate:"omitempty,uuid"`
}
