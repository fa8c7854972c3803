package models

// AppSettings holds the branding shown on the public scoreboard.
type AppSettings struct {
	PrimaryColor   string  `json:"primary_color" db:"primary_color"`
	SecondaryColor string  `json:"secondary_color" db:"secondary_color"`
	LogoURL        *string `json:"logo_url,omitempty" db:"logo_url"`
}

var DefaultAppSettings = AppSettings{
	PrimaryColor:   "#e38702",
	SecondaryColor: "#5a0509",
}
