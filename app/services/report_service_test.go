package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/sokoni/app/events"
	"github.com/shashiranjanraj/sokoni/app/models"
	"github.com/shashiranjanraj/sokoni/app/services"
	"github.com/shashiranjanraj/sokoni/pkg/event"
)

func newReportFixture() (*services.ReportService, *fakeUserStore, *fakeReportStore) {
	users := newFakeUserStore(
		&models.User{Model: gormModel(1), Name: "Reporter", Role: models.RoleBuyer},
		&models.User{Model: gormModel(2), Name: "Seller X", Role: models.RoleSeller},
	)
	reports := newFakeReportStore()
	return services.NewReportService(users, reports), users, reports
}

func TestFileReport(t *testing.T) {
	service, users, _ := newReportFixture()
	defer event.Flush()

	var created []events.ReportCreatedPayload
	event.Listen(events.ReportCreated, func(payload interface{}) {
		created = append(created, payload.(events.ReportCreatedPayload))
	})

	report, err := service.File(1, 2, "counterfeit goods", "sold me a fake")
	require.NoError(t, err)
	assert.Equal(t, uint(1), report.ReporterID)
	assert.Equal(t, uint(2), report.ReportedUserID)
	assert.False(t, report.IsResolved)

	// The denormalised counter moved.
	target, _ := users.FindByID(2)
	assert.Equal(t, 1, target.ReportCount)

	require.Len(t, created, 1)
	assert.Equal(t, report.ID, created[0].Report.ID)
}

func TestFileReport_Rejections(t *testing.T) {
	service, _, _ := newReportFixture()

	_, err := service.File(1, 1, "reason", "")
	assert.ErrorIs(t, err, services.ErrSelfReport)

	_, err = service.File(1, 404, "reason", "")
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestReportCountReachesThreshold(t *testing.T) {
	service, users, _ := newReportFixture()

	for i := 0; i < models.FlaggedReportThreshold; i++ {
		reporter := &models.User{Model: gormModel(uint(10 + i)), Role: models.RoleBuyer}
		require.NoError(t, users.Create(reporter))
		_, err := service.File(reporter.ID, 2, "spam", "")
		require.NoError(t, err)
	}

	flagged, err := users.Flagged()
	require.NoError(t, err)
	require.Len(t, flagged, 1)
	assert.Equal(t, uint(2), flagged[0].ID)

	// The threshold is a read-side filter only; nobody was suspended.
	target, _ := users.FindByID(2)
	assert.False(t, target.IsSuspended)
}

func TestResolveReport(t *testing.T) {
	service, _, reports := newReportFixture()

	report, err := service.File(1, 2, "spam", "")
	require.NoError(t, err)

	assert.ErrorIs(t, service.Resolve(courier, report.ID, "n/a"), services.ErrNotAuthorized)
	assert.ErrorIs(t, service.Resolve(admin, 404, "n/a"), services.ErrNotFound)

	require.NoError(t, service.Resolve(admin, report.ID, "warned the seller"))
	stored, err := reports.FindByID(report.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsResolved)
	assert.Equal(t, "warned the seller", stored.AdminNotes)
}
