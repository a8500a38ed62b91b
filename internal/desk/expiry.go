package desk

import (
	"math"
	"time"

	"signaldesk/internal/models"
)

// ExpiryBucket is a days-to-expiry classification window.
type ExpiryBucket string

const (
	BucketExpired   ExpiryBucket = "expired"
	BucketWeek      ExpiryBucket = "7d"
	BucketFortnight ExpiryBucket = "14d"
	BucketMonth     ExpiryBucket = "30d"
	BucketQuarter   ExpiryBucket = "90d"
	BucketLeaps     ExpiryBucket = "leaps"
	BucketAll       ExpiryBucket = "all"
)

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DaysBetween returns the calendar-day difference from ref to target,
// computed from day starts so that time of day never shifts a boundary: an
// idea expiring tonight stays at zero days until midnight. Rounding absorbs
// the odd-length days around DST transitions.
func DaysBetween(ref, target time.Time) int {
	diff := startOfDay(target.In(ref.Location())).Sub(startOfDay(ref))
	return int(math.Round(diff.Hours() / 24))
}

// BucketForDays maps a signed day count to its expiry bucket. The windows
// are disjoint and cover the whole integer line:
// <0 expired, [0,7] 7d, (7,14] 14d, (14,60] 30d, (60,270] 90d, >270 leaps.
func BucketForDays(d int) ExpiryBucket {
	switch {
	case d < 0:
		return BucketExpired
	case d <= 7:
		return BucketWeek
	case d <= 14:
		return BucketFortnight
	case d <= 60:
		return BucketMonth
	case d <= 270:
		return BucketQuarter
	default:
		return BucketLeaps
	}
}

// ExpiryCounts holds per-bucket idea counts plus the unconditional total.
// Ideas without an expiry appear only in All.
type ExpiryCounts struct {
	Expired   int `json:"expired"`
	Week      int `json:"7d"`
	Fortnight int `json:"14d"`
	Month     int `json:"30d"`
	Quarter   int `json:"90d"`
	Leaps     int `json:"leaps"`
	All       int `json:"all"`
}

// CountByExpiry buckets the given ideas by days to expiry relative to ref.
// The caller decides the population; for display counts that is the set
// gated by the non-expiry criteria (see Criteria.countGate).
func CountByExpiry(ideas []models.TradeIdea, ref time.Time) ExpiryCounts {
	var c ExpiryCounts
	for _, idea := range ideas {
		c.All++
		exp := idea.Expiry()
		if exp == nil {
			continue
		}
		switch BucketForDays(DaysBetween(ref, *exp)) {
		case BucketExpired:
			c.Expired++
		case BucketWeek:
			c.Week++
		case BucketFortnight:
			c.Fortnight++
		case BucketMonth:
			c.Month++
		case BucketQuarter:
			c.Quarter++
		case BucketLeaps:
			c.Leaps++
		}
	}
	return c
}

// For returns the count for a single bucket.
func (c ExpiryCounts) For(b ExpiryBucket) int {
	switch b {
	case BucketExpired:
		return c.Expired
	case BucketWeek:
		return c.Week
	case BucketFortnight:
		return c.Fortnight
	case BucketMonth:
		return c.Month
	case BucketQuarter:
		return c.Quarter
	case BucketLeaps:
		return c.Leaps
	default:
		return c.All
	}
}

// FilterByBucket returns the ideas whose expiry falls in the named bucket.
// BucketAll (or empty) is the identity; named buckets exclude ideas without
// an expiry.
func FilterByBucket(ideas []models.TradeIdea, b ExpiryBucket, ref time.Time) []models.TradeIdea {
	if b == "" || b == BucketAll {
		out := make([]models.TradeIdea, len(ideas))
		copy(out, ideas)
		return out
	}
	out := make([]models.TradeIdea, 0, len(ideas))
	for _, idea := range ideas {
		exp := idea.Expiry()
		if exp == nil {
			continue
		}
		if BucketForDays(DaysBetween(ref, *exp)) == b {
			out = append(out, idea)
		}
	}
	return out
}
