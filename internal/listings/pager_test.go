package listings

import (
	"testing"

	"github.com/mealbridge-dev/mealbridge/pkg/models"
)

func TestPager_ResetAndLoadMore(t *testing.T) {
	p := NewPager(6)

	p.Reset(20)
	if p.Revealed() != 6 {
		t.Errorf("revealed = %d, want 6", p.Revealed())
	}
	if !p.HasMore() {
		t.Error("expected HasMore with 20 items")
	}

	p.LoadMore()
	if p.Revealed() != 12 {
		t.Errorf("revealed = %d, want 12", p.Revealed())
	}

	p.LoadMore()
	p.LoadMore()
	if p.Revealed() != 20 {
		t.Errorf("revealed = %d, want 20 (capped)", p.Revealed())
	}
	if p.HasMore() {
		t.Error("HasMore should be false at the cap")
	}
}

func TestPager_LoadMoreIdempotentAtEnd(t *testing.T) {
	p := NewPager(6)
	p.Reset(4)

	if p.HasMore() {
		t.Fatal("4 items fit in one page of 6")
	}
	before := p.Revealed()
	p.LoadMore()
	p.LoadMore()
	if p.Revealed() != before {
		t.Errorf("LoadMore changed revealed count after HasMore=false: %d -> %d", before, p.Revealed())
	}
}

func TestPager_ResetCollapsesWindow(t *testing.T) {
	p := NewPager(6)
	p.Reset(30)
	p.LoadMore()
	p.LoadMore() // revealed = 18

	// Filter change: the window must collapse with the new total.
	p.Reset(10)
	if p.Revealed() != 6 {
		t.Errorf("revealed after reset = %d, want 6", p.Revealed())
	}

	p.Reset(3)
	if p.Revealed() != 3 {
		t.Errorf("revealed after short reset = %d, want 3", p.Revealed())
	}
	if p.HasMore() {
		t.Error("HasMore should be false with 3 of 3 revealed")
	}
}

func TestPager_OnScroll(t *testing.T) {
	p := NewPager(6)
	p.Reset(20)

	if p.OnScroll(500) {
		t.Error("scroll far from the bottom must not trigger")
	}
	if !p.OnScroll(50) {
		t.Error("scroll near the bottom should trigger")
	}
	if p.Revealed() != 12 {
		t.Errorf("revealed = %d, want 12", p.Revealed())
	}
}

func TestPager_OnScrollSuppressedWhileLoading(t *testing.T) {
	p := NewPager(6)
	p.Reset(20)

	p.SetLoading(true)
	if p.OnScroll(10) {
		t.Error("scroll must not trigger while a load is in flight")
	}
	if p.Revealed() != 6 {
		t.Errorf("revealed = %d, want 6", p.Revealed())
	}

	p.SetLoading(false)
	if !p.OnScroll(10) {
		t.Error("scroll should trigger once loading clears")
	}
}

func TestPager_OnScrollSuppressedWhenExhausted(t *testing.T) {
	p := NewPager(6)
	p.Reset(6)

	if p.OnScroll(0) {
		t.Error("scroll must not trigger with nothing left to reveal")
	}
}

func TestPager_Window(t *testing.T) {
	items := make([]models.Listing, 10)
	for i := range items {
		items[i].ID = string(rune('a' + i))
	}

	p := NewPager(6)
	p.Reset(len(items))

	win := p.Window(items)
	if len(win) != 6 {
		t.Fatalf("window = %d items, want 6", len(win))
	}

	p.LoadMore()
	win = p.Window(items)
	if len(win) != 10 {
		t.Fatalf("window = %d items, want 10", len(win))
	}
}

func TestPager_DefaultPageSize(t *testing.T) {
	p := NewPager(0)
	p.Reset(100)
	if p.Revealed() != DefaultPageSize {
		t.Errorf("revealed = %d, want %d", p.Revealed(), DefaultPageSize)
	}
}
