package aggregate_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/service-desk/internal/aggregate"
	"github.com/spec-kit/service-desk/internal/domain"
)

func boardRow(id int64, company string) domain.BoardRow {
	return domain.BoardRow{Request: domain.Request{ID: id, Company: company, IsValid: true}}
}

func TestGroupByCompany(t *testing.T) {
	rows := []domain.BoardRow{
		boardRow(1, "acme"),
		boardRow(2, "globex"),
		boardRow(3, "acme"),
		boardRow(4, "initech"),
		boardRow(5, "acme"),
	}

	grouped := aggregate.GroupByCompany(rows)

	require.Len(t, grouped, 3)
	assert.Len(t, grouped["acme"], 3)
	assert.Len(t, grouped["globex"], 1)
	assert.Len(t, grouped["initech"], 1)

	total := 0
	for _, group := range grouped {
		total += len(group)
	}
	assert.Equal(t, len(rows), total)

	// input order preserved within a group
	assert.Equal(t, int64(1), grouped["acme"][0].ID)
	assert.Equal(t, int64(3), grouped["acme"][1].ID)
	assert.Equal(t, int64(5), grouped["acme"][2].ID)
}

func TestGroupByCompanyEmpty(t *testing.T) {
	assert.Empty(t, aggregate.GroupByCompany(nil))
}

func TestMonthlyRollup(t *testing.T) {
	now := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
	at := func(year int, month time.Month) time.Time {
		return time.Date(year, month, 10, 0, 0, 0, 0, time.UTC)
	}

	requests := []domain.Request{
		{CreatedAt: at(2026, time.August), Paid: true, IsValid: true, Price: 60},
		{CreatedAt: at(2026, time.August), Paid: true, IsValid: true, Price: 40},
		{CreatedAt: at(2026, time.August), Paid: false, IsValid: true, Price: 999},
		{CreatedAt: at(2026, time.March), Paid: true, IsValid: false, Price: 500},
		{CreatedAt: at(2025, time.January), Paid: true, IsValid: true, Price: 777}, // outside the window
	}

	buckets := aggregate.MonthlyRollup(requests, now, 12)

	// only months with activity appear, sorted ascending
	require.Len(t, buckets, 2)
	assert.Equal(t, "2026-03", buckets[0].Month)
	assert.Equal(t, 1, buckets[0].Count)
	assert.Equal(t, 0.0, buckets[0].Profit)

	assert.Equal(t, "2026-08", buckets[1].Month)
	assert.Equal(t, 2, buckets[1].Count)
	assert.Equal(t, 100.0, buckets[1].Profit)
}

func TestMonthlyRollupEmpty(t *testing.T) {
	now := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)
	assert.Empty(t, aggregate.MonthlyRollup(nil, now, 12))
}

func TestStatusRollupCountsValidOnly(t *testing.T) {
	requests := []domain.Request{
		{Status: domain.StatusPending, IsValid: true},
		{Status: domain.StatusPending, IsValid: true},
		{Status: domain.StatusInProgress, IsValid: true},
		{Status: domain.StatusCompleted, IsValid: false},
	}

	counts := aggregate.StatusRollup(requests)

	assert.Equal(t, 2, counts[domain.StatusPending])
	assert.Equal(t, 1, counts[domain.StatusInProgress])
	_, present := counts[domain.StatusCompleted]
	assert.False(t, present, "statuses without valid requests must be absent")
}

func TestProfitTotal(t *testing.T) {
	requests := []domain.Request{
		{Paid: true, IsValid: true, Price: 100},
		{Paid: true, IsValid: true, Price: 50.5},
		{Paid: false, IsValid: true, Price: 200},
		{Paid: true, IsValid: false, Price: 300},
	}

	assert.Equal(t, 150.5, aggregate.ProfitTotal(requests))
	assert.Equal(t, 0.0, aggregate.ProfitTotal(nil))
}

func TestCountByStatus(t *testing.T) {
	requests := []domain.Request{
		{Status: domain.StatusPending},
		{Status: domain.StatusInProgress, IsValid: true},
		{Status: domain.StatusCompleted, IsValid: false},
		{Status: domain.StatusCompleted},
	}

	totals := aggregate.CountByStatus(requests)

	assert.Equal(t, 4, totals.Total)
	assert.Equal(t, 1, totals.Pending)
	assert.Equal(t, 1, totals.InProgress)
	assert.Equal(t, 2, totals.Completed)
}
