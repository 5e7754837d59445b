package domain

// Represents a single festival venue ("pandal") on the map.
// Venues are supplied by the listing endpoint and are read-only to the
// planning core; the IsBig flag only affects default map visibility,
// never routing.
type Venue struct {
	ID          int
	Name        string
	Region      string
	Town        string
	Position    LatLng
	IsBig       bool
	MainPic     string
	LikeCount   int
	LikedByUser bool
}
