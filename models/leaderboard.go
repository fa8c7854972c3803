package models

// LeaderboardEntry is one row of the competition standings. It is derived, never stored.
type LeaderboardEntry struct {
	AthleticID  int     `json:"athletic_id"`
	Name        string  `json:"name"`
	LogoURL     *string `json:"logo_url,omitempty"`
	RawPoints   int     `json:"raw_points"`
	Penalties   int     `json:"penalties"`
	TotalPoints int     `json:"total_points"`
	Position    int     `json:"position"`
}
