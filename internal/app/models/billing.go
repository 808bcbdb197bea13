package models

import "time"

type Billing struct {
	ID            string       `json:"id"`
	AmountDue     float64      `json:"amount_due"`
	PaymentStatus string       `json:"payment_status"`
	BillingDate   time.Time    `json:"billing_date"`
	PatientID     string       `json:"patient_id"`
	ClinicID      string       `json:"clinic_id"`
	InsuranceID   string       `json:"insurance_id"`
	AppointmentID string       `json:"appointment_id"`
	User          *User        `json:"user,omitempty"`
	Clinic        *Clinic      `json:"clinic,omitempty"`
	Insurance     *Insurance   `json:"insurance,omitempty"`
	Appointment   *Appointment `json:"appointment,omitempty"`
	TimeModel
}
