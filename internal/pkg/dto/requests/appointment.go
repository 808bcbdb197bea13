package requests

import "time"

type CreateAppointment struct {
	AppointmentDate time.Time `json:"appointment_date" validate:"required"`
	Status          string    `json:"status" validate:"required,max=64"`
	PatientID       string    `json:"patient_id" validate:"required,uuid"`
	DoctorID        string    `json:"doctor_id" validate:"required,uuid"`
	ClinicID        string    `json:"clinic_id" validate:"required,uuid"`
}

type UpdateAppointment struct {
	AppointmentDate *time.Time `json:"appointment_date"`
	Status          *string    `json:"status" validate:"omitempty,min=1,max=64"`
	PatientID       *string    `json:"patient_id" validate:"omitempty,uuid"`
	DoctorID        *string    `json:"doctor_id" validate:"omitempty,uuid"`
	ClinicID        *string    `json:"clinic_id" validate:"omitempty,uuid"`
}
