package catalog

import "github.com/shopblue/storefront/internal/domain"

func floatPtr(v float64) *float64 { return &v }

// SeedProducts is the built-in catalog used when no snapshot exists yet.
func SeedProducts() []domain.Product {
	return []domain.Product{
		{
			ID:            "1",
			Name:          "Pro Audio Wireless",
			Description:   "Premium noise cancelling headphones with spatial audio.",
			Price:         199.00,
			OriginalPrice: floatPtr(249.00),
			Category:      "Electronics",
			Image:         "https://images.unsplash.com/photo-1505740420928-5e560c06d30e?auto=format&fit=crop&w=800&q=80",
			Rating:        4.8,
			Stock:         25,
			Trending:      true,
			Source:        domain.SourceLocal,
		},
		{
			ID:          "2",
			Name:        "Analog Classic Watch",
			Description: "Minimalist design for men, water resistant and sleek.",
			Price:       129.00,
			Category:    "Fashion",
			Image:       "https://images.unsplash.com/photo-1523275335684-37898b6baf30?auto=format&fit=crop&w=800&q=80",
			Rating:      4.9,
			Stock:       12,
			Trending:    true,
			Source:      domain.SourceLocal,
		},
		{
			ID:          "3",
			Name:        "Urban Sneakers",
			Description: "Comfortable everyday wear with breathable mesh.",
			Price:       89.00,
			Category:    "Fashion",
			Image:       "https://images.unsplash.com/photo-1542291026-7eec264c27ff?auto=format&fit=crop&w=800&q=80",
			Rating:      4.5,
			Stock:       40,
			Trending:    true,
			Source:      domain.SourceLocal,
		},
		{
			ID:          "4",
			Name:        "Instant Camera Mini",
			Description: "Capture moments instantly with built-in flash.",
			Price:       159.00,
			Category:    "Electronics",
			Image:       "https://images.unsplash.com/photo-1526170315870-ef6d82f5822c?auto=format&fit=crop&w=800&q=80",
			Rating:      4.7,
			Stock:       15,
			Trending:    true,
			Source:      domain.SourceLocal,
		},
	}
}
