package dto

type VenueResponse struct {
	ID        int     `json:"id"`
	Name      string  `json:"name"`
	Region    string  `json:"region,omitempty"`
	Town      string  `json:"town,omitempty"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	IsBig     bool    `json:"is_big"`
	MainPic   string  `json:"main_pic,omitempty"`
	LikeCount int     `json:"like_count"`
}

type ListVenuesResponse struct {
	Venues []VenueResponse `json:"venues"`
}

type LikeResponse struct {
	VenueID   int  `json:"venue_id"`
	Liked     bool `json:"liked"`
	LikeCount int  `json:"like_count"`
}
