package notify

import (
	"fmt"
	"testing"
	"time"
)

func TestStore_PushNewestFirst(t *testing.T) {
	s := NewStore()

	s.Push(SeverityInfo, "first", "")
	s.Push(SeveritySuccess, "second", "")
	s.Push(SeverityError, "third", "")

	got := s.List()
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	want := []string{"third", "second", "first"}
	for i, title := range want {
		if got[i].Title != title {
			t.Errorf("list[%d].Title = %q, want %q", i, got[i].Title, title)
		}
	}
}

func TestStore_PushAssignsIDAndTimestamp(t *testing.T) {
	s := NewStore()
	fixed := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	n := s.Push(SeverityWarning, "title", "message")
	if n.ID == "" {
		t.Error("expected a generated ID")
	}
	if !n.CreatedAt.Equal(fixed) {
		t.Errorf("CreatedAt = %v, want %v", n.CreatedAt, fixed)
	}

	m := s.Push(SeverityWarning, "title", "message")
	if m.ID == n.ID {
		t.Error("two pushes must not share an ID")
	}
}

func TestStore_Remove(t *testing.T) {
	s := NewStore()
	a := s.Success("a", "")
	b := s.Error("b", "")

	s.Remove(a.ID)
	got := s.List()
	if len(got) != 1 || got[0].ID != b.ID {
		t.Fatalf("list = %+v, want only %s", got, b.ID)
	}

	// Removing an absent ID is a no-op.
	s.Remove("does-not-exist")
	if s.Len() != 1 {
		t.Errorf("len = %d after no-op remove, want 1", s.Len())
	}
}

func TestStore_Clear(t *testing.T) {
	s := NewStore()
	s.Success("a", "")
	s.Error("b", "")

	s.Clear()
	if s.Len() != 0 {
		t.Errorf("len = %d after clear, want 0", s.Len())
	}
	if got := s.List(); len(got) != 0 {
		t.Errorf("list = %+v after clear, want empty", got)
	}

	// Clearing twice is fine.
	s.Clear()
	if s.Len() != 0 {
		t.Errorf("len = %d after second clear, want 0", s.Len())
	}
}

func TestStore_EvictsOldestAtCap(t *testing.T) {
	s := NewStore()
	for i := 0; i < MaxQueued+10; i++ {
		s.Push(SeverityInfo, fmt.Sprintf("n-%d", i), "")
	}

	if s.Len() != MaxQueued {
		t.Fatalf("len = %d, want %d", s.Len(), MaxQueued)
	}

	got := s.List()
	if got[0].Title != fmt.Sprintf("n-%d", MaxQueued+9) {
		t.Errorf("newest = %q, want the last pushed", got[0].Title)
	}
	if got[len(got)-1].Title != "n-10" {
		t.Errorf("oldest survivor = %q, want n-10", got[len(got)-1].Title)
	}
}

func TestStore_ListReturnsCopy(t *testing.T) {
	s := NewStore()
	s.Success("original", "")

	snap := s.List()
	snap[0].Title = "mutated"

	if s.List()[0].Title != "original" {
		t.Error("mutating a List result leaked into the store")
	}
}
