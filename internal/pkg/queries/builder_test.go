package queries

import (
	"clinic-admin-service/internal/pkg/dto/requests"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableSelectQuery(t *testing.T) {
	t.Run("No Arguments", func(t *testing.T) {
		query, params, err := ClinicTable.SelectQuery(nil)

		require.NoError(t, err)
		assert.Equal(t, "SELECT "+ClinicTable.Columns+" FROM clinics ORDER BY created_at DESC, id ASC", query)
		assert.Empty(t, params, "no parameters expected without arguments")
	})

	t.Run("Where Keys Are Sorted And Numbered", func(t *testing.T) {
		args := &requests.FindArgs{
			Where: map[string]interface{}{
				"user_id": "u-1",
				"name":    "Downtown",
			},
		}

		query, params, err := ClinicTable.SelectQuery(args)

		require.NoError(t, err)
		assert.Contains(t, query, "WHERE name = $1 AND user_id = $2")
		assert.Equal(t, []interface{}{"Downtown", "u-1"}, params)
	})

	t.Run("Null And List Values", func(t *testing.T) {
		args := &requests.FindArgs{
			Where: map[string]interface{}{
				"prescription": nil,
				"patient_id":   []string{"p-1", "p-2"},
			},
		}

		query, params, err := MedicalRecordTable.SelectQuery(args)

		require.NoError(t, err)
		assert.Contains(t, query, "WHERE patient_id = ANY($1) AND prescription IS NULL")
		require.Len(t, params, 1)
		assert.Equal(t, pq.Array([]string{"p-1", "p-2"}), params[0])
	})

	t.Run("Paging And Ordering", func(t *testing.T) {
		args := &requests.FindArgs{
			Where:          map[string]interface{}{"status": "scheduled"},
			OrderBy:        "appointment_date",
			OrderDirection: "desc",
			Page:           3,
			PageSize:       20,
		}

		query, params, err := AppointmentTable.SelectQuery(args)

		require.NoError(t, err)
		assert.Contains(t, query, "ORDER BY appointment_date DESC, id ASC LIMIT $2 OFFSET $3")
		assert.Equal(t, []interface{}{"scheduled", 20, 40}, params)
	})

	t.Run("Unknown Filter Column", func(t *testing.T) {
		args := &requests.FindArgs{Where: map[string]interface{}{"password_hash": "x"}}

		_, _, err := UserTable.SelectQuery(args)

		var columnErr *UnknownColumnError
		require.ErrorAs(t, err, &columnErr)
		assert.Equal(t, "password_hash", columnErr.Column)
	})

	t.Run("Unknown Order Column", func(t *testing.T) {
		args := &requests.FindArgs{OrderBy: "notes"}

		_, _, err := MedicalRecordTable.SelectQuery(args)

		assert.Error(t, err, "notes is not sortable")
	})
}

func TestTableCountQuery(t *testing.T) {
	args := &requests.FindArgs{
		Where:    map[string]interface{}{"clinic_id": "c-1"},
		Page:     2,
		PageSize: 10,
	}

	query, params, err := BillingTable.CountQuery(args)

	require.NoError(t, err)
	assert.Equal(t, "SELECT COUNT(*) FROM billings WHERE clinic_id = $1", query)
	assert.Equal(t, []interface{}{"c-1"}, params, "paging must not leak into count")
}

func TestTableFirstQuery(t *testing.T) {
	query, params, err := InsuranceTable.FirstQuery(&requests.FindArgs{Where: map[string]interface{}{"id": "i-1"}})

	require.NoError(t, err)
	assert.Equal(t, "SELECT "+InsuranceTable.Columns+" FROM insurances WHERE id = $1 ORDER BY created_at DESC, id ASC LIMIT 1", query)
	assert.Equal(t, []interface{}{"i-1"}, params)
}
