package models

import "time"

type Appointment struct {
	ID              string    `json:"id"`
	AppointmentDate time.Time `json:"appointment_date"`
	Status          string    `json:"status"`
	PatientID       string    `json:"patient_id"`
	DoctorID        string    `json:"doctor_id"`
	ClinicID        string    `json:"clinic_id"`
	Patient         *User     `json:"patient,omitempty"`
	Doctor          *User     `json:"doctor,omitempty"`
	Clinic          *Clinic   `json:"clinic,omitempty"`
	TimeModel
}
