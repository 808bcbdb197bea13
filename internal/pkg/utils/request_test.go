package utils

import (
	"clinic-admin-service/internal/pkg/constvars"
	"clinic-admin-service/internal/pkg/exceptions"
	"clinic-admin-service/internal/pkg/queries"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPaginationRequest(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/api/v1/clinics", nil)

		page, pageSize := BuildPaginationRequest(r)

		assert.Equal(t, constvars.DefaultPage, page)
		assert.Equal(t, constvars.DefaultPageSize, pageSize)
	})

	t.Run("Invalid Values Fall Back", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/api/v1/clinics?page=-2&page_size=abc", nil)

		page, pageSize := BuildPaginationRequest(r)

		assert.Equal(t, constvars.DefaultPage, page)
		assert.Equal(t, constvars.DefaultPageSize, pageSize)
	})

	t.Run("Page Size Is Capped", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/api/v1/clinics?page=2&page_size=5000", nil)

		page, pageSize := BuildPaginationRequest(r)

		assert.Equal(t, 2, page)
		assert.Equal(t, constvars.MaxPageSize, pageSize)
	})
}

func TestBuildFindArgsRequest(t *testing.T) {
	allowed := []string{"patient", "doctor"}
	const (
		patientID = "0b7c6a5e-2a51-4d0b-9a8b-8f8a9f1d2c3e"
		doctorA   = "1b7c6a5e-2a51-4d0b-9a8b-8f8a9f1d2c3e"
		doctorB   = "2b7c6a5e-2a51-4d0b-9a8b-8f8a9f1d2c3e"
	)

	t.Run("Plain Column Filters", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/api/v1/medical-records?patient_id="+patientID+"&include=doctor,patient&order_by=created_at&order_direction=DESC", nil)

		args, err := BuildFindArgsRequest(r, queries.MedicalRecordTable, allowed)

		require.NoError(t, err)
		assert.Equal(t, map[string]interface{}{"patient_id": patientID}, args.Where)
		assert.Equal(t, []string{"doctor", "patient"}, args.Include, "includes are sorted")
		assert.Equal(t, "created_at", args.OrderBy)
		assert.Equal(t, "desc", args.OrderDirection)
	})

	t.Run("JSON Filter", func(t *testing.T) {
		filter := url.QueryEscape(`{"doctor_id":["` + doctorA + `","` + doctorB + `"],"prescription":null}`)
		r := httptest.NewRequest("GET", "/api/v1/medical-records?filter="+filter, nil)

		args, err := BuildFindArgsRequest(r, queries.MedicalRecordTable, allowed)

		require.NoError(t, err)
		assert.Equal(t, []string{doctorA, doctorB}, args.Where["doctor_id"])
		value, ok := args.Where["prescription"]
		assert.True(t, ok, "null filter must be kept")
		assert.Nil(t, value)
	})

	t.Run("Invalid JSON Filter", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/api/v1/medical-records?filter="+url.QueryEscape(`{"doctor_id":`), nil)

		_, err := BuildFindArgsRequest(r, queries.MedicalRecordTable, allowed)

		var customErr *exceptions.CustomError
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.StatusBadRequest, customErr.StatusCode)
	})

	t.Run("Unknown Filter Column", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/api/v1/users?password_hash=x", nil)

		_, err := BuildFindArgsRequest(r, queries.UserTable, nil)

		assert.Error(t, err, "password_hash must never be filterable")
	})

	t.Run("Unknown Include", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/api/v1/medical-records?include=clinic", nil)

		_, err := BuildFindArgsRequest(r, queries.MedicalRecordTable, allowed)

		assert.Error(t, err)
	})

	t.Run("Unknown Order Direction", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/api/v1/clinics?order_direction=sideways", nil)

		_, err := BuildFindArgsRequest(r, queries.ClinicTable, nil)

		assert.Error(t, err)
	})

	t.Run("Malformed UUID Query Param", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/api/v1/medical-records?patient_id=abc", nil)

		_, err := BuildFindArgsRequest(r, queries.MedicalRecordTable, allowed)

		var customErr *exceptions.CustomError
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.StatusBadRequest, customErr.StatusCode)
	})

	t.Run("Malformed UUID In JSON Filter", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/api/v1/billings?filter="+url.QueryEscape(`{"id":"x"}`), nil)

		_, err := BuildFindArgsRequest(r, queries.BillingTable, nil)

		var customErr *exceptions.CustomError
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.StatusBadRequest, customErr.StatusCode)
	})

	t.Run("One Malformed UUID In A List", func(t *testing.T) {
		filter := url.QueryEscape(`{"doctor_id":["` + doctorA + `","nope"]}`)
		r := httptest.NewRequest("GET", "/api/v1/medical-records?filter="+filter, nil)

		_, err := BuildFindArgsRequest(r, queries.MedicalRecordTable, allowed)

		var customErr *exceptions.CustomError
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.StatusBadRequest, customErr.StatusCode)
	})

	t.Run("Null UUID Filter Is Allowed", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/api/v1/billings?filter="+url.QueryEscape(`{"insurance_id":null}`), nil)

		args, err := BuildFindArgsRequest(r, queries.BillingTable, nil)

		require.NoError(t, err)
		value, ok := args.Where["insurance_id"]
		assert.True(t, ok)
		assert.Nil(t, value)
	})

	t.Run("Non UUID Columns Are Not Checked", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/api/v1/appointments?status=scheduled", nil)

		args, err := BuildFindArgsRequest(r, queries.AppointmentTable, nil)

		require.NoError(t, err)
		assert.Equal(t, "scheduled", args.Where["status"])
	})
}
