package domain

// VenueSelection is an ordered-insertion set of venues chosen by the user.
// Membership toggles; insertion order is preserved and is what the manual
// ordering strategy uses verbatim. Independent of any computed route order.
type VenueSelection struct {
	venues []Venue
}

// Toggle flips membership of v and reports whether v is selected afterwards.
func (s *VenueSelection) Toggle(v Venue) bool {
	for i, cur := range s.venues {
		if cur.ID == v.ID {
			s.venues = append(s.venues[:i], s.venues[i+1:]...)
			return false
		}
	}
	s.venues = append(s.venues, v)
	return true
}

// Contains reports whether the venue with the given id is selected.
func (s *VenueSelection) Contains(id int) bool {
	for _, v := range s.venues {
		if v.ID == id {
			return true
		}
	}
	return false
}

// Venues returns the selection in insertion order.
func (s *VenueSelection) Venues() []Venue {
	out := make([]Venue, len(s.venues))
	copy(out, s.venues)
	return out
}

// IDs returns the selected venue ids in insertion order.
func (s *VenueSelection) IDs() []int {
	ids := make([]int, len(s.venues))
	for i, v := range s.venues {
		ids[i] = v.ID
	}
	return ids
}

func (s *VenueSelection) Len() int { return len(s.venues) }

func (s *VenueSelection) Clear() { s.venues = nil }
