package dto

type BeerRequest struct {
	Name        string  `json:"name" validate:"required"`
	Brewery     string  `json:"brewery"`
	Style       string  `json:"style"`
	ABV         float64 `json:"abv"`
	Description string  `json:"description"`
	OnTap       bool    `json:"on_tap"`
}

type BeerResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Brewery     string  `json:"brewery"`
	Style       string  `json:"style"`
	ABV         float64 `json:"abv"`
	Description string  `json:"description"`
	OnTap       bool    `json:"on_tap"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}
