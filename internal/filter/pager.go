package filter

import "github.com/dlamsal/airwave/internal/domain"

// PageSize is the pagination watermark increment.
const PageSize = 12

// Pager tracks the visible-count watermark over a filtered station set.
// Changing the criteria resets the watermark to one page so a new filter
// never inherits a deep watermark from the previous one.
type Pager struct {
	criteria domain.FilterState
	visible  int
}

// NewPager returns a pager showing the first page for the given criteria.
func NewPager(criteria domain.FilterState) *Pager {
	return &Pager{criteria: criteria, visible: PageSize}
}

// Criteria returns the active filter criteria.
func (p *Pager) Criteria() domain.FilterState {
	return p.criteria
}

// SetCriteria replaces the criteria, resetting the watermark when they
// differ from the current ones.
func (p *Pager) SetCriteria(criteria domain.FilterState) {
	if !p.criteria.Equal(criteria) {
		p.criteria = criteria
		p.visible = PageSize
	}
}

// LoadMore raises the watermark by one page.
func (p *Pager) LoadMore() {
	p.visible += PageSize
}

// VisibleCount returns the current watermark.
func (p *Pager) VisibleCount() int {
	return p.visible
}

// Page applies the active criteria to the full station set and cuts the
// result at the watermark. hasMore is true iff stations beyond the
// watermark were filtered in.
func (p *Pager) Page(stations []domain.Station) (visible []domain.Station, hasMore bool) {
	return p.PageWith(stations, p.criteria)
}

// PageWith pages with an explicit criteria override while keeping the
// active criteria and watermark untouched. Lets a caller relax a
// predicate for one view without a committed criteria change.
func (p *Pager) PageWith(stations []domain.Station, criteria domain.FilterState) (visible []domain.Station, hasMore bool) {
	filtered := Apply(stations, criteria)
	if len(filtered) <= p.visible {
		return filtered, false
	}
	return filtered[:p.visible], true
}
