package models

import "time"

type Insurance struct {
	ID                string    `json:"id"`
	InsuranceName     string    `json:"insurance_name"`
	PolicyNumber      string    `json:"policy_number"`
	CoverageStartDate time.Time `json:"coverage_start_date"`
	CoverageEndDate   time.Time `json:"coverage_end_date"`
	PatientID         string    `json:"patient_id"`
	ClinicID          string    `json:"clinic_id"`
	User              *User     `json:"user,omitempty"`
	Clinic            *Clinic   `json:"clinic,omitempty"`
	TimeModel
}
