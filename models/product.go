package models

var ProductSizes = []string{"Único", "PP", "P", "M", "G", "GG", "XG", "XXG"}

func ValidProductSize(size string) bool {
	for _, s := range ProductSizes {
		if s == size {
			return true
		}
	}
	return false
}

// Product is an inventory item sold by the club. Prices are in centavos.
type Product struct {
	ID                  int     `json:"id" db:"id"`
	Name                string  `json:"name" db:"name"`
	Size                string  `json:"size" db:"size"`
	Quantity            int     `json:"quantity" db:"quantity"`
	PriceMemberCents    int64   `json:"price_member_cents" db:"price_member_cents"`
	PriceNonMemberCents int64   `json:"price_non_member_cents" db:"price_non_member_cents"`
	ImageURL            *string `json:"image_url,omitempty" db:"image_url"`
}
