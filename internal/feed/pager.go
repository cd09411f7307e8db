package feed

import "sort"

// Pager is a line-addressed scroll surface holding count cards of one viewport height each
type Pager struct {
	offset    int
	height    int
	count     int
	listeners map[int]func()
	nextID    int
}

// NewPager creates a pager for count cards
func NewPager(count, height int) *Pager {
	p := &Pager{listeners: make(map[int]func())}
	p.count = max(count, 0)
	p.height = max(height, 0)
	return p
}

// ScrollOffset implements ScrollSource
func (p *Pager) ScrollOffset() float64 {
	return float64(p.offset)
}

// ViewportHeight implements ScrollSource
func (p *Pager) ViewportHeight() float64 {
	return float64(p.height)
}

// Subscribe implements ScrollSource
func (p *Pager) Subscribe(fn func()) func() {
	id := p.nextID
	p.nextID++
	p.listeners[id] = fn
	return func() {
		delete(p.listeners, id)
	}
}

// Listeners returns the number of active subscriptions
func (p *Pager) Listeners() int {
	return len(p.listeners)
}

// Offset returns the current top line
func (p *Pager) Offset() int {
	return p.offset
}

// Height returns the viewport height in lines
func (p *Pager) Height() int {
	return p.height
}

// Count returns the number of cards
func (p *Pager) Count() int {
	return p.count
}

// MaxOffset is the offset at which the last card fills the viewport
func (p *Pager) MaxOffset() int {
	if p.count == 0 || p.height == 0 {
		return 0
	}
	return (p.count - 1) * p.height
}

// SetHeight changes the viewport height, keeping the same card in view
func (p *Pager) SetHeight(height int) {
	height = max(height, 0)
	if height == p.height {
		return
	}
	card, ok := Index(float64(p.offset), float64(p.height))
	p.height = height
	if ok {
		p.offset = card * p.height
	}
	p.clamp()
	p.notify()
}

// ScrollBy moves the viewport by delta lines
func (p *Pager) ScrollBy(delta int) {
	p.offset += delta
	p.clamp()
	p.notify()
}

// ScrollTo moves the viewport to an absolute line offset
func (p *Pager) ScrollTo(offset int) {
	p.offset = offset
	p.clamp()
	p.notify()
}

// GotoCard snaps the viewport to the top of card i
func (p *Pager) GotoCard(i int) {
	p.ScrollTo(i * p.height)
}

// NextCard snaps to the card after the one nearest the current offset
func (p *Pager) NextCard() {
	card, _ := Index(float64(p.offset), float64(p.height))
	p.GotoCard(card + 1)
}

// PrevCard snaps to the card before the one nearest the current offset
func (p *Pager) PrevCard() {
	card, _ := Index(float64(p.offset), float64(p.height))
	p.GotoCard(card - 1)
}

func (p *Pager) clamp() {
	if p.offset > p.MaxOffset() {
		p.offset = p.MaxOffset()
	}
	if p.offset < 0 {
		p.offset = 0
	}
}

// notify calls listeners in subscription order
func (p *Pager) notify() {
	ids := make([]int, 0, len(p.listeners))
	for id := range p.listeners {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		if fn, ok := p.listeners[id]; ok {
			fn()
		}
	}
}
