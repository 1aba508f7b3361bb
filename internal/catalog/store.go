package catalog

import (
	"context"
	"strings"
)

// Product is immutable once served; identity is ID.
type Product struct {
	ID       string  `json:"_id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Cost     float64 `json:"cost"`
	Rating   float64 `json:"rating"`
	Image    string  `json:"image"`
}

type Store interface {
	Ping(ctx context.Context) error
	List(ctx context.Context) ([]Product, error)
	Search(ctx context.Context, value string) ([]Product, error)
	Get(ctx context.Context, id string) (Product, bool, error)
}

func NewStore() Store {
	return NewMemStore(SeedProducts())
}

// matches reports whether value occurs in the product's name or category,
// ignoring case. An empty value matches everything.
func matches(p Product, value string) bool {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Name), value) ||
		strings.Contains(strings.ToLower(p.Category), value)
}

func SeedProducts() []Product {
	return []Product{
		{ID: "BW0jAAeDJmlZCF8i", Name: "Tan Leatherette Weekender Duffle", Category: "Fashion", Cost: 150, Rating: 4, Image: "https://crio-directus-assets.s3.ap-south-1.amazonaws.com/ff071a1c-1099-48f9-9b03-f858ccc53832.png"},
		{ID: "KCRwjF7lN97HnEaY", Name: "The Minimalist Slim Leather Watch", Category: "Electronics", Cost: 60, Rating: 5, Image: "https://crio-directus-assets.s3.ap-south-1.amazonaws.com/5b478a4a-bf81-467c-964c-5881887799b7.png"},
		{ID: "a4sLtEcMpzabRyfx", Name: "Atomberg 1200mm BLDC motor Ceiling Fan", Category: "Home & Kitchen", Cost: 220, Rating: 4, Image: "https://crio-directus-assets.s3.ap-south-1.amazonaws.com/a6d2e7f8-4c31-4f07-8cd6-2b2c0f3a4d1a.png"},
		{ID: "upLK9JbQ4rMhTwt4", Name: "Basketball", Category: "Sports", Cost: 48, Rating: 5, Image: "https://crio-directus-assets.s3.ap-south-1.amazonaws.com/64b930f7-3c82-4a29-a433-dbc6f1493578.png"},
		{ID: "v4sLtEcMpzabRyfx", Name: "iPhone XR", Category: "Phones", Cost: 100, Rating: 4, Image: "https://i.imgur.com/lulqWzW.jpg"},
		{ID: "TwMM4OAhmK0VQ93S", Name: "YONEX Smash Badminton Racquet", Category: "Sports", Cost: 99.5, Rating: 3.5, Image: "https://crio-directus-assets.s3.ap-south-1.amazonaws.com/2a6a1c09-6d6a-4b24-a0f2-4ab2d7b3c1a5.png"},
	}
}
