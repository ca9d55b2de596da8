package listings

import "github.com/mealbridge-dev/mealbridge/pkg/models"

const (
	// DefaultPageSize is how many listings one page reveals.
	DefaultPageSize = 6

	// ScrollThreshold is the distance-to-bottom below which a scroll
	// signal advances the page.
	ScrollThreshold = 100.0
)

// Pager tracks how many items of a filtered sequence are currently
// revealed. It is pure arithmetic over lengths; there are no error states.
type Pager struct {
	pageSize int
	total    int
	revealed int
	loading  bool
}

// NewPager creates a pager revealing pageSize items per page.
// A non-positive pageSize falls back to DefaultPageSize.
func NewPager(pageSize int) *Pager {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Pager{pageSize: pageSize}
}

// Reset must be called whenever the filtered sequence changes: the window
// collapses back to one page over the new total, so stale results are
// never shown.
func (p *Pager) Reset(total int) {
	if total < 0 {
		total = 0
	}
	p.total = total
	p.revealed = p.pageSize
	if p.revealed > total {
		p.revealed = total
	}
}

// LoadMore grows the revealed window by one page, capped at the total.
// Once HasMore is false it is a no-op.
func (p *Pager) LoadMore() {
	p.revealed += p.pageSize
	if p.revealed > p.total {
		p.revealed = p.total
	}
}

// HasMore reports whether any filtered items remain hidden.
func (p *Pager) HasMore() bool {
	return p.revealed < p.total
}

// Revealed returns the current window size.
func (p *Pager) Revealed() int {
	return p.revealed
}

// SetLoading marks a bulk load in flight, suppressing scroll triggers
// until it clears.
func (p *Pager) SetLoading(loading bool) {
	p.loading = loading
}

// OnScroll advances the window when the viewport is within
// ScrollThreshold of the bottom. The trigger is suppressed while results
// are loading or when nothing remains, so a burst of scroll events cannot
// advance the page twice. It reports whether a load was triggered.
func (p *Pager) OnScroll(distanceToBottom float64) bool {
	if p.loading || !p.HasMore() {
		return false
	}
	if distanceToBottom > ScrollThreshold {
		return false
	}
	p.LoadMore()
	return true
}

// Window slices listings down to the revealed prefix.
func (p *Pager) Window(items []models.Listing) []models.Listing {
	if p.revealed >= len(items) {
		return items
	}
	return items[:p.revealed]
}
