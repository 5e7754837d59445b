package domain

import "testing"

func TestSelectionToggle(t *testing.T) {
	s := &VenueSelection{}
	a := Venue{ID: 1, Name: "Bagbazar Sarbojanin"}
	b := Venue{ID: 2, Name: "Ekdalia Evergreen"}

	if !s.Toggle(a) {
		t.Fatal("first toggle must select")
	}
	if !s.Toggle(b) {
		t.Fatal("first toggle must select")
	}
	if s.Toggle(a) {
		t.Fatal("second toggle must deselect")
	}

	if s.Contains(1) || !s.Contains(2) {
		t.Fatalf("unexpected membership after toggles: %v", s.IDs())
	}
	if s.Len() != 1 {
		t.Fatalf("expected 1 selected venue, got %d", s.Len())
	}
}

func TestSelectionPreservesInsertionOrder(t *testing.T) {
	s := &VenueSelection{}
	for _, id := range []int{3, 1, 2} {
		s.Toggle(Venue{ID: id})
	}

	got := s.IDs()
	want := []int{3, 1, 2}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("insertion order lost: got %v want %v", got, want)
		}
	}

	// Re-adding a removed venue moves it to the back.
	s.Toggle(Venue{ID: 3})
	s.Toggle(Venue{ID: 3})
	got = s.IDs()
	if got[len(got)-1] != 3 {
		t.Fatalf("re-added venue must go to the back: %v", got)
	}
}

func TestSelectionClear(t *testing.T) {
	s := &VenueSelection{}
	s.Toggle(Venue{ID: 1})
	s.Clear()

	if s.Len() != 0 || s.Contains(1) {
		t.Fatal("clear must empty the selection")
	}
}

func TestSelectionVenuesIsACopy(t *testing.T) {
	s := &VenueSelection{}
	s.Toggle(Venue{ID: 1, Name: "A"})

	out := s.Venues()
	out[0].ID = 99

	if !s.Contains(1) || s.Contains(99) {
		t.Fatal("mutating the returned slice must not affect the selection")
	}
}
