package models

// Stats is the derived statistics view over a user's full pint history.
// It is recomputed from scratch on every request, never persisted, so it
// self-heals any drift in the denormalised counters on the user document.
type Stats struct {
	TotalPints            int            `json:"totalPints"`
	UniquePubs            int            `json:"uniquePubs"`
	AvgRating             float64        `json:"avgRating"`
	BestPub               *string        `json:"bestPub"`
	BestPubRating         float64        `json:"bestPubRating"`
	RatingDistribution    map[int]int    `json:"ratingDistribution"`
	DayOfWeekDistribution map[string]int `json:"dayOfWeekDistribution"`
}

// PlaceResult is one venue returned by the places provider.
type PlaceResult struct {
	PlaceID string  `json:"placeId"`
	Name    string  `json:"name"`
	Address string  `json:"address"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
}
