package repository

import (
	"time"

	domainRepo "github.com/sangkips/phonehub-pos/internal/domain/repository"
	"gorm.io/gorm"
)

// SaleDateScope returns a GORM scope that limits sales to a date filter.
// Ranges are local calendar days; weeks start on Monday.
func SaleDateScope(filter domainRepo.TransactionFilter, now time.Time) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		start, ok := filterStart(filter, now)
		if !ok {
			return db
		}
		return db.Where("sale_date >= ?", start)
	}
}

func filterStart(filter domainRepo.TransactionFilter, now time.Time) (time.Time, bool) {
	now = now.In(time.Local)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
	switch filter {
	case domainRepo.FilterToday:
		return today, true
	case domainRepo.FilterWeek:
		offset := (int(today.Weekday()) + 6) % 7
		return today.AddDate(0, 0, -offset), true
	case domainRepo.FilterMonth:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.Local), true
	}
	return time.Time{}, false
}
