package agenda_test

import (
	"context"
	"testing"

	"agenda.xdoubleu.com/apps/agenda/internal/jobs"
	"agenda.xdoubleu.com/apps/agenda/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xdoubleu/essentia/v2/pkg/logging"
)

func TestRefreshJob(t *testing.T) {
	cal := createCalendar(t, models.SourceCSV)

	job := jobs.NewRefreshJob(testApp.Services.Calendar)
	assert.Equal(t, jobs.RefreshJobID, job.ID())
	job.RunEvery()

	err := job.Run(context.Background(), logging.NewNopLogger())
	assert.Nil(t, err)

	refreshed, err := testApp.Services.Calendar.Get(context.Background(), cal.ID)
	require.Nil(t, err)
	require.NotNil(t, refreshed.LastImport)
	assert.False(t, refreshed.LastImport.Before(*cal.LastImport))

	events, err := testApp.Services.Calendar.Events(context.Background(), cal.ID)
	require.Nil(t, err)
	assert.Len(t, events, 4)
}
