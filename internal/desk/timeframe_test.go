package desk

import (
	"testing"
	"time"

	"signaldesk/internal/models"
)

func TestTimeframeExcludesResolved(t *testing.T) {
	ideas := []models.TradeIdea{
		idea("OPEN", expiringIn(1)),
		idea("WON", expiringIn(1), withOutcome("hit_target")),
		idea("LOST", expiringIn(1), withOutcome(" HIT_STOP ")),
	}
	for _, tf := range append([]Timeframe{TimeframeAll}, Timeframes...) {
		got := FilterByTimeframe(ideas, tf, testNow)
		if !equalSymbols(got, []string{"OPEN"}) {
			t.Errorf("timeframe %q reintroduced a resolved idea: %v", tf, symbols(got))
		}
	}
}

func TestTimeframeWindowsAreCumulative(t *testing.T) {
	ideas := []models.TradeIdea{
		idea("D1", expiringIn(1)),
		idea("D3", expiringIn(3)),
		idea("D7", expiringIn(7)),
		idea("D30", expiringIn(25)),
	}

	tests := []struct {
		tf   Timeframe
		want []string
	}{
		{TimeframeToday, []string{"D1"}},
		{TimeframeFewDays, []string{"D1", "D3"}},
		{TimeframeNextWeek, []string{"D1", "D3", "D7"}},
		{TimeframeNextMonth, []string{"D1", "D3", "D7", "D30"}},
		{TimeframeAll, []string{"D1", "D3", "D7", "D30"}},
	}
	for _, tt := range tests {
		got := FilterByTimeframe(ideas, tt.tf, testNow)
		if !equalSymbols(got, tt.want) {
			t.Errorf("timeframe %q: got %v, want %v", tt.tf, symbols(got), tt.want)
		}
	}
}

func TestTimeframeFallsBackToPostingAge(t *testing.T) {
	// A stock without an expiry qualifies for every window its posting
	// age fits in.
	ideas := []models.TradeIdea{
		idea("FRESH", postedAgo(6*time.Hour)),
		idea("AGED", postedAgo(5*24*time.Hour)),
	}

	today := FilterByTimeframe(ideas, TimeframeToday, testNow)
	if !equalSymbols(today, []string{"FRESH"}) {
		t.Errorf("today window: got %v", symbols(today))
	}
	week := FilterByTimeframe(ideas, TimeframeNextWeek, testNow)
	if !equalSymbols(week, []string{"FRESH", "AGED"}) {
		t.Errorf("next week window: got %v", symbols(week))
	}
}

func TestTimeframeSkipsMalformedTimestamps(t *testing.T) {
	ideas := []models.TradeIdea{
		idea("NOTIME", func(i *models.TradeIdea) { i.Timestamp = time.Time{} }),
	}
	got := FilterByTimeframe(ideas, TimeframeNextMonth, testNow)
	if len(got) != 0 {
		t.Errorf("malformed timestamp should be excluded from horizons, got %v", symbols(got))
	}
	// But the unconstrained tab still shows it.
	all := FilterByTimeframe(ideas, TimeframeAll, testNow)
	if !equalSymbols(all, []string{"NOTIME"}) {
		t.Errorf("all tab should keep the idea, got %v", symbols(all))
	}
}

func TestCountByTimeframe(t *testing.T) {
	ideas := []models.TradeIdea{
		idea("D1", expiringIn(1)),
		idea("D7", expiringIn(7)),
		idea("WON", expiringIn(1), withOutcome("hit_target")),
	}
	counts := CountByTimeframe(ideas, testNow)
	if counts[TimeframeAll] != 2 {
		t.Errorf("all count = %d, want 2", counts[TimeframeAll])
	}
	if counts[TimeframeToday] != 1 {
		t.Errorf("today count = %d, want 1", counts[TimeframeToday])
	}
	if counts[TimeframeNextWeek] != 2 {
		t.Errorf("next week count = %d, want 2", counts[TimeframeNextWeek])
	}
	for tf, n := range counts {
		if got := len(FilterByTimeframe(ideas, tf, testNow)); got != n {
			t.Errorf("timeframe %q: count %d but filter yields %d", tf, n, got)
		}
	}
}
