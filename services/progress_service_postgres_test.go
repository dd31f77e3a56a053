package services

import (
	"testing"
	"time"

	"backend/models"
	"backend/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(offset int) time.Time {
	return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, offset)
}

func seedProgress(t *testing.T, svc *ProgressService, actor Actor) {
	t.Helper()
	entries := []ProgressInput{
		{Weight: f(82.5), BodyFat: f(24), RecordDate: day(0)},
		{Weight: f(81.2), RecordDate: day(7)},
		{BodyFat: f(22.5), Muscle: f(36), RecordDate: day(14)},
		{Weight: f(79.9), BodyFat: f(21.8), RecordDate: day(21)},
	}
	for _, e := range entries {
		_, err := svc.Create(actor, e)
		require.NoError(t, err)
	}
}

func TestProgressStats(t *testing.T) {
	fx := setupFixture(t)
	svc := NewProgressService(fx.db)
	seedProgress(t, svc, fx.client)

	stats, err := svc.Stats(fx.client)
	require.NoError(t, err)

	assert.Equal(t, int64(4), stats.TotalRecords)
	require.NotNil(t, stats.Weight)
	assert.InDelta(t, 82.5, stats.Weight.First, 1e-9)
	assert.InDelta(t, 79.9, stats.Weight.Latest, 1e-9)
	assert.InDelta(t, -2.6, stats.Weight.Change, 1e-9)
	require.NotNil(t, stats.BodyFat)
	assert.InDelta(t, -2.2, stats.BodyFat.Change, 1e-9)
	require.NotNil(t, stats.Muscle)
	assert.InDelta(t, 0, stats.Muscle.Change, 1e-9)
}

func TestProgressChartSkipsNullValues(t *testing.T) {
	fx := setupFixture(t)
	svc := NewProgressService(fx.db)
	seedProgress(t, svc, fx.client)

	points, err := svc.Chart(fx.client, "weight", nil, nil)
	require.NoError(t, err)
	require.Len(t, points, 3) // one record has no weight
	assert.InDelta(t, 82.5, points[0].Value, 1e-9)
	assert.InDelta(t, 79.9, points[2].Value, 1e-9)

	from := day(5)
	to := day(15)
	points, err = svc.Chart(fx.client, "weight", &from, &to)
	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.InDelta(t, 81.2, points[0].Value, 1e-9)

	_, err = svc.Chart(fx.client, "bmi", nil, nil)
	assert.ErrorIs(t, err, utils.ErrValidation)
}

func TestProgressOwnership(t *testing.T) {
	fx := setupFixture(t)
	svc := NewProgressService(fx.db)

	record, err := svc.Create(fx.client, ProgressInput{Weight: f(80), RecordDate: day(0)})
	require.NoError(t, err)

	_, err = svc.Get(fx.nutritionist, record.ID)
	assert.ErrorIs(t, err, utils.ErrForbidden)

	err = svc.Delete(fx.nutritionist, record.ID)
	assert.ErrorIs(t, err, utils.ErrForbidden)
}

func TestClientRecordsRequireActiveContract(t *testing.T) {
	fx := setupFixture(t)
	svc := NewProgressService(fx.db)
	seedProgress(t, svc, fx.client)

	records, total, err := svc.ClientRecords(fx.nutritionist, fx.client.ID, ProgressFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)
	assert.Len(t, records, 4)

	// pausing the contract cuts off access
	require.NoError(t, fx.db.Model(&fx.contract).Update("status", models.ContractPaused).Error)
	_, _, err = svc.ClientRecords(fx.nutritionist, fx.client.ID, ProgressFilter{})
	assert.ErrorIs(t, err, utils.ErrForbidden)
}
