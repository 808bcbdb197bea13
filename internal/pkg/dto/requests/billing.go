package requests

import "time"

type CreateBilling struct {
	AmountDue     *float64  `json:"amount_due" validate:"required,gte=0"`
	PaymentStatus string    `json:"payment_status" validate:"required,max=64"`
	BillingDate   time.Time `json:"billing_date" validate:"required"`
	PatientID     string    `json:"patient_id" validate:"required,uuid"`
	ClinicID      string    `json:"clinic_id" validate:"required,uuid"`
	InsuranceID   string    `json:"insurance_id" validate:"required,uuid"`
	AppointmentID string    `json:"appointment_id" validate:"required,uuid"`
}

type UpdateBilling struct {
	AmountDue     *float64   `json:"amount_due" validate:"omitempty,gte=0"`
	PaymentStatus *string    `json:"payment_status" validate:"omitempty,min=1,max=64"`
	BillingDate   *time.Time `json:"billing_date"`
	PatientID     *string    `json:"patient_id" validate:"omitempty,uuid"`
	ClinicID      *string    `json:"clinic_id" validate:"omitempty,uuid"`
	InsuranceID   *string    `json:"insurance_id" validate:"omitempty,uuid"`
	AppointmentID *string    `json:"appointment_id" validate:"omitempty,uuid"`
}
