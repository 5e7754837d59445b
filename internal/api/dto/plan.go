package dto

// PlanRequest asks for a route over the listed venues. Start is a
// [lat, lng] pair; venue ids reference the listing endpoint and their
// order is the manual visit order.
type PlanRequest struct {
	Start      []float64 `json:"start"`
	VenueIDs   []int     `json:"venue_ids"`
	Strategy   string    `json:"strategy"`
	ReturnLegs bool      `json:"return_legs"`
}

type LegResponse struct {
	Index    int         `json:"index"`
	From     []float64   `json:"from"`
	To       []float64   `json:"to"`
	Path     [][]float64 `json:"path,omitempty"`
	Color    string      `json:"color"`
	Resolved bool        `json:"resolved"`
}

type PlanResponse struct {
	Strategy            string          `json:"strategy"`
	Start               []float64       `json:"start"`
	Stops               []VenueResponse `json:"stops"`
	Path                [][]float64     `json:"path"`
	TotalDistanceMeters float64         `json:"total_distance_meters"`
	Legs                []LegResponse   `json:"legs,omitempty"`
}

type QuotaResponse struct {
	Remaining int `json:"remaining"`
}
