package desk

import "signaldesk/internal/models"

// Window is the pagination state over the ranked active list. Only the
// rendered list respects it; every count elsewhere is computed from the
// full filtered population.
type Window struct {
	Initial int `json:"initial"`
	Step    int `json:"step"`
	Visible int `json:"visible"`
}

// NewWindow returns a window showing the first initial ideas, growing by
// step on each More call.
func NewWindow(initial, step int) Window {
	return Window{Initial: initial, Step: step, Visible: initial}
}

// Reset restores the initial visible count. Must be called whenever any
// filter criterion changes, so a stale slice from the previous filter state
// is never shown.
func (w *Window) Reset() {
	w.Visible = w.Initial
}

// More grows the visible count by one step.
func (w *Window) More() {
	w.Visible += w.Step
}

// Slice returns the visible prefix of ideas. Idempotent: the same visible
// count over the same input yields the same subset.
func (w Window) Slice(ideas []models.TradeIdea) []models.TradeIdea {
	n := w.Visible
	if n < 0 {
		n = 0
	}
	if n > len(ideas) {
		n = len(ideas)
	}
	out := make([]models.TradeIdea, n)
	copy(out, ideas[:n])
	return out
}
