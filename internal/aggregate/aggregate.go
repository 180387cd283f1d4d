// Package aggregate derives reporting views from request rows. Everything here
// is recomputed from the supplied rows on each call; nothing is cached.
package aggregate

import (
	"sort"
	"time"

	"github.com/spec-kit/service-desk/internal/domain"
)

const monthKeyFormat = "2006-01"

// GroupByCompany partitions board rows into per-company lists, preserving the
// relative order of the input within each group.
func GroupByCompany(rows []domain.BoardRow) map[string][]domain.BoardRow {
	grouped := make(map[string][]domain.BoardRow)
	for _, row := range rows {
		grouped[row.Company] = append(grouped[row.Company], row)
	}
	return grouped
}

// MonthlyBucket is one calendar month of request activity.
type MonthlyBucket struct {
	Month  string  `json:"month"`
	Count  int     `json:"count"`
	Profit float64 `json:"profit"`
}

// MonthlyRollup buckets requests by calendar month of creation, restricted to
// the trailing windowMonths before now. Only months with at least one request
// appear; profit per bucket counts rows that are both paid and valid.
func MonthlyRollup(requests []domain.Request, now time.Time, windowMonths int) []MonthlyBucket {
	cutoff := now.AddDate(0, -windowMonths, 0)
	buckets := make(map[string]*MonthlyBucket)
	for _, request := range requests {
		if request.CreatedAt.Before(cutoff) {
			continue
		}
		key := request.CreatedAt.Format(monthKeyFormat)
		bucket, ok := buckets[key]
		if !ok {
			bucket = &MonthlyBucket{Month: key}
			buckets[key] = bucket
		}
		bucket.Count++
		if request.Paid && request.IsValid {
			bucket.Profit += request.Price
		}
	}

	result := make([]MonthlyBucket, 0, len(buckets))
	for _, bucket := range buckets {
		result = append(result, *bucket)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Month < result[j].Month })
	return result
}

// StatusRollup counts valid requests per status. Statuses without any valid
// request are absent from the result.
func StatusRollup(requests []domain.Request) map[domain.RequestStatus]int {
	counts := make(map[domain.RequestStatus]int)
	for _, request := range requests {
		if !request.IsValid {
			continue
		}
		counts[request.Status]++
	}
	return counts
}

// ProfitTotal sums price over requests that are both paid and valid.
func ProfitTotal(requests []domain.Request) float64 {
	var total float64
	for _, request := range requests {
		if request.Paid && request.IsValid {
			total += request.Price
		}
	}
	return total
}

// Totals holds headline per-status counts over the full request set,
// irrespective of validity.
type Totals struct {
	Total      int `json:"total"`
	Pending    int `json:"pending"`
	InProgress int `json:"in_progress"`
	Completed  int `json:"completed"`
}

// CountByStatus tallies all requests by status.
func CountByStatus(requests []domain.Request) Totals {
	totals := Totals{Total: len(requests)}
	for _, request := range requests {
		switch request.Status {
		case domain.StatusPending:
			totals.Pending++
		case domain.StatusInProgress:
			totals.InProgress++
		case domain.StatusCompleted:
			totals.Completed++
		}
	}
	return totals
}
