package desk

import (
	"testing"
	"time"

	"signaldesk/internal/models"
)

func TestBucketBoundaries(t *testing.T) {
	tests := []struct {
		days int
		want ExpiryBucket
	}{
		{-1, BucketExpired},
		{0, BucketWeek},
		{7, BucketWeek},
		{8, BucketFortnight},
		{14, BucketFortnight},
		{15, BucketMonth},
		{60, BucketMonth},
		{61, BucketQuarter},
		{270, BucketQuarter},
		{271, BucketLeaps},
	}
	for _, tt := range tests {
		if got := BucketForDays(tt.days); got != tt.want {
			t.Errorf("BucketForDays(%d) = %q, want %q", tt.days, got, tt.want)
		}
	}
}

func TestDaysBetweenCalendarDays(t *testing.T) {
	// An idea expiring at 23:59 seven days out, evaluated at 00:01, is
	// still exactly seven calendar days away.
	ref := time.Date(2026, 8, 31, 0, 1, 0, 0, time.UTC)
	expiry := time.Date(2026, 9, 7, 23, 59, 0, 0, time.UTC)
	if got := DaysBetween(ref, expiry); got != 7 {
		t.Errorf("DaysBetween = %d, want 7", got)
	}
	if got := BucketForDays(DaysBetween(ref, expiry)); got != BucketWeek {
		t.Errorf("bucket = %q, want %q", got, BucketWeek)
	}

	// Expiring tonight stays at zero days until midnight.
	sameDay := time.Date(2026, 8, 31, 23, 0, 0, 0, time.UTC)
	late := time.Date(2026, 8, 31, 23, 30, 0, 0, time.UTC)
	if got := DaysBetween(sameDay, late); got != 0 {
		t.Errorf("same-day DaysBetween = %d, want 0", got)
	}

	yesterday := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	if got := DaysBetween(ref, yesterday); got != -1 {
		t.Errorf("past-day DaysBetween = %d, want -1", got)
	}
}

func TestCountByExpiry(t *testing.T) {
	ideas := []models.TradeIdea{
		idea("W1", expiringIn(3)),
		idea("W2", expiringIn(7)),
		idea("F1", expiringIn(10)),
		idea("M1", expiringIn(45)),
		idea("Q1", expiringIn(200)),
		idea("L1", expiringIn(400)),
		idea("GONE", expiringIn(-2)),
		idea("STOCK"), // no expiry: all-tally only
	}
	counts := CountByExpiry(ideas, testNow)

	if counts.All != 8 {
		t.Errorf("All = %d, want 8", counts.All)
	}
	if counts.Week != 2 || counts.Fortnight != 1 || counts.Month != 1 ||
		counts.Quarter != 1 || counts.Leaps != 1 || counts.Expired != 1 {
		t.Errorf("bucket counts wrong: %+v", counts)
	}

	// Every idea with an expiry lands in exactly one named bucket.
	named := counts.Expired + counts.Week + counts.Fortnight + counts.Month + counts.Quarter + counts.Leaps
	if named != 7 {
		t.Errorf("named bucket total = %d, want 7", named)
	}
}

func TestFilterByBucket(t *testing.T) {
	ideas := []models.TradeIdea{
		idea("SOON", expiringIn(2)),
		idea("LATER", expiringIn(30)),
		idea("STOCK"),
	}

	week := FilterByBucket(ideas, BucketWeek, testNow)
	if !equalSymbols(week, []string{"SOON"}) {
		t.Errorf("7d bucket: got %v", symbols(week))
	}

	all := FilterByBucket(ideas, BucketAll, testNow)
	if !equalSymbols(all, []string{"SOON", "LATER", "STOCK"}) {
		t.Errorf("all bucket should be identity: got %v", symbols(all))
	}

	month := FilterByBucket(ideas, BucketMonth, testNow)
	if !equalSymbols(month, []string{"LATER"}) {
		t.Errorf("30d bucket: got %v", symbols(month))
	}
}

func TestCountsMatchBucketFilter(t *testing.T) {
	// The advertised count for a bucket must equal the size of the list
	// the user gets after picking that bucket.
	ideas := []models.TradeIdea{
		idea("A", expiringIn(1)),
		idea("B", expiringIn(6)),
		idea("C", expiringIn(12)),
		idea("D", expiringIn(100)),
		idea("E"),
	}
	counts := CountByExpiry(ideas, testNow)
	for _, b := range []ExpiryBucket{BucketExpired, BucketWeek, BucketFortnight, BucketMonth, BucketQuarter, BucketLeaps} {
		if got := len(FilterByBucket(ideas, b, testNow)); got != counts.For(b) {
			t.Errorf("bucket %q: count %d but filter yields %d", b, counts.For(b), got)
		}
	}
}
