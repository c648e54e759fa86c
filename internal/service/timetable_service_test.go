package service

import (
	"context"
	"testing"
	"time"

	"github.com/avdelgado/paideia/internal/domain"
	"github.com/avdelgado/paideia/internal/repository"
	"github.com/avdelgado/paideia/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimetableService_AddBlockValidates(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()

	subjects := repository.NewSQLiteSubjectRepo(database)
	svc := NewTimetableService(repository.NewSQLiteTimeBlockRepo(database), subjects)

	subject := testutil.NewTestSubject("Music")
	require.NoError(t, subjects.Create(ctx, subject))

	err := svc.AddBlock(ctx, &domain.TimeBlock{SubjectID: subject.ID, Day: 5, StartMinute: 480, EndMinute: 540})
	assert.ErrorContains(t, err, "day")

	err = svc.AddBlock(ctx, &domain.TimeBlock{SubjectID: subject.ID, Day: 0, StartMinute: 540, EndMinute: 540})
	assert.ErrorContains(t, err, "minute range")

	err = svc.AddBlock(ctx, &domain.TimeBlock{SubjectID: "missing", Day: 0, StartMinute: 480, EndMinute: 540})
	assert.ErrorIs(t, err, repository.ErrNotFound)

	b := &domain.TimeBlock{SubjectID: subject.ID, Day: 0, StartMinute: 480, EndMinute: 540}
	require.NoError(t, svc.AddBlock(ctx, b))
	assert.NotEmpty(t, b.ID)
}

func TestCalendarService_AddExceptionNormalizes(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	svc := NewCalendarService(repository.NewSQLiteExceptionRepo(database))

	err := svc.AddException(ctx, &domain.CalendarException{Kind: "vacation"})
	assert.ErrorContains(t, err, "exception kind")

	err = svc.AddException(ctx, &domain.CalendarException{Kind: domain.ExceptionPartial, StartMinute: 600, EndMinute: 500})
	assert.ErrorContains(t, err, "minute range")

	noon := time.Date(2025, 9, 3, 12, 30, 0, 0, time.UTC)
	wholeDay := &domain.CalendarException{Kind: domain.ExceptionWholeDay, Date: noon, StartMinute: 100, EndMinute: 200}
	require.NoError(t, svc.AddException(ctx, wholeDay))

	got, err := svc.ListWeek(ctx, time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, got, 1)
	// Date is truncated to midnight and the minute range cleared.
	assert.Equal(t, time.Date(2025, 9, 3, 0, 0, 0, 0, time.UTC), got[0].Date)
	assert.Zero(t, got[0].StartMinute)
	assert.Zero(t, got[0].EndMinute)
}

func TestWeekStartOf(t *testing.T) {
	monday := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	cases := []struct {
		in   time.Time
		want time.Time
	}{
		{monday, monday},
		{monday.Add(10 * time.Hour), monday},
		{monday.AddDate(0, 0, 4), monday},
		{monday.AddDate(0, 0, 6), monday},
		{monday.AddDate(0, 0, 7), monday.AddDate(0, 0, 7)},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, WeekStartOf(tc.in), "input %s", tc.in)
	}
}
