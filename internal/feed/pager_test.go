package feed

import "testing"

func TestPagerClamp(t *testing.T) {
	p := NewPager(4, 10)

	p.ScrollBy(-5)
	if p.Offset() != 0 {
		t.Errorf("Expected offset 0, got %d", p.Offset())
	}

	p.ScrollTo(35)
	if p.Offset() != 30 {
		t.Errorf("Expected offset clamped to 30, got %d", p.Offset())
	}

	p.PrevCard()
	if p.Offset() != 20 {
		t.Errorf("Expected offset 20 after PrevCard, got %d", p.Offset())
	}
}

func TestPagerEmpty(t *testing.T) {
	p := NewPager(0, 10)
	p.NextCard()
	p.ScrollBy(7)
	if p.Offset() != 0 {
		t.Errorf("Expected empty pager to stay at 0, got %d", p.Offset())
	}
}

func TestPagerSetHeightKeepsCard(t *testing.T) {
	p := NewPager(5, 10)
	p.GotoCard(3)

	p.SetHeight(24)
	if p.Offset() != 72 {
		t.Errorf("Expected offset 72 after resize, got %d", p.Offset())
	}
}

func TestPagerNotifiesEveryScroll(t *testing.T) {
	p := NewPager(2, 10)
	events := 0
	unsubscribe := p.Subscribe(func() { events++ })

	p.ScrollBy(1)
	p.ScrollBy(1)
	p.ScrollTo(0)
	if events != 3 {
		t.Errorf("Expected 3 scroll events, got %d", events)
	}

	unsubscribe()
	p.ScrollBy(1)
	if events != 3 {
		t.Errorf("Expected no events after unsubscribe, got %d", events)
	}
}
