package dto_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/marmotkit/asset-mgmt-accounting/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDate_UnmarshalJSON(t *testing.T) {
	var body struct {
		Due dto.Date `json:"due_date"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"due_date":"2025-07-31"}`), &body))
	assert.Equal(t, time.Date(2025, 7, 31, 0, 0, 0, 0, time.UTC), body.Due.Time)

	require.NoError(t, json.Unmarshal([]byte(`{"due_date":"2025-07-31T08:00:00+08:00"}`), &body))
	assert.Equal(t, time.Date(2025, 7, 31, 0, 0, 0, 0, time.UTC), body.Due.Time)

	assert.Error(t, json.Unmarshal([]byte(`{"due_date":"31/07/2025"}`), &body))
}
