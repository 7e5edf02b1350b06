package model

import (
	"strings"
)

// Product represents a budgie food product in the catalogue.
type Product struct {
	Title       string  `json:"title" bson:"title"`
	Description string  `json:"description" bson:"description"`
	Price       float64 `json:"price" bson:"price"`
	Category    string  `json:"category" bson:"category"`
	InStock     bool    `json:"in_stock" bson:"in_stock"`
}

// ProductInput is the request payload for creating a product.
// Pointer fields let validation tell a missing field from a zero value.
type ProductInput struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Category    *string  `json:"category"`
	InStock     *bool    `json:"in_stock"`
}

// Validate checks the product against the catalogue rules.
func (p Product) Validate() error {
	if strings.TrimSpace(p.Title) == "" {
		return NewValidationError("title", "title is required")
	}
	if strings.TrimSpace(p.Category) == "" {
		return NewValidationError("category", "category is required")
	}
	if p.Price < 0 {
		return NewValidationError("price", "price must be greater than or equal to zero")
	}
	return nil
}

// ToProduct validates the input and applies defaults for optional fields.
func (in ProductInput) ToProduct() (Product, error) {
	if in.Title == nil {
		return Product{}, NewValidationError("title", "title is required")
	}
	if in.Price == nil {
		return Product{}, NewValidationError("price", "price is required")
	}
	if in.Category == nil {
		return Product{}, NewValidationError("category", "category is required")
	}

	p := Product{
		Title:    *in.Title,
		Price:    *in.Price,
		Category: *in.Category,
		InStock:  true,
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.InStock != nil {
		p.InStock = *in.InStock
	}

	if err := p.Validate(); err != nil {
		return Product{}, err
	}
	return p, nil
}
