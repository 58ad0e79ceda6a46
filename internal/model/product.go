package model

import "time"

// Product represents an item in a user's catalogue.
type Product struct {
	ID          string    `json:"id" bson:"_id" db:"id"`
	UserID      string    `json:"userId" bson:"user_id" db:"user_id"`
	Name        string    `json:"name" bson:"name" db:"name"`
	Description string    `json:"description,omitempty" bson:"description,omitempty" db:"description"`
	Price       float64   `json:"price" bson:"price" db:"price"`
	Barcode     string    `json:"barcode,omitempty" bson:"barcode,omitempty" db:"barcode"`
	Category    string    `json:"category" bson:"category" db:"category"`
	ImageURL    string    `json:"imageUrl,omitempty" bson:"image_url,omitempty" db:"image_url"`
	CreatedAt   time.Time `json:"createdAt" bson:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updated_at" db:"updated_at"`
}

// CreateProductRequest represents the request payload for creating a product.
type CreateProductRequest struct {
	Name        string   `json:"name" validate:"required,max=100"`
	Description string   `json:"description" validate:"max=500"`
	Price       *float64 `json:"price" validate:"required,gte=0"`
	Barcode     string   `json:"barcode" validate:"max=64"`
	Category    string   `json:"category" validate:"required,max=100"`
	ImageURL    string   `json:"imageUrl" validate:"omitempty,max=2048"`
}

// UpdateProductRequest carries a partial product update. Nil fields are left unchanged.
type UpdateProductRequest struct {
	Name        *string  `json:"name" validate:"omitnil,min=1,max=100"`
	Description *string  `json:"description" validate:"omitnil,max=500"`
	Price       *float64 `json:"price" validate:"omitnil,gte=0"`
	Barcode     *string  `json:"barcode" validate:"omitnil,max=64"`
	Category    *string  `json:"category" validate:"omitnil,min=1,max=100"`
	ImageURL    *string  `json:"imageUrl" validate:"omitnil,max=2048"`
}

// Apply copies the present fields of the request onto p.
func (r *UpdateProductRequest) Apply(p *Product) {
	if r.Name != nil {
		p.Name = *r.Name
	}
	if r.Description != nil {
		p.Description = *r.Description
	}
	if r.Price != nil {
		p.Price = *r.Price
	}
	if r.Barcode != nil {
		p.Barcode = *r.Barcode
	}
	if r.Category != nil {
		p.Category = *r.Category
	}
	if r.ImageURL != nil {
		p.ImageURL = *r.ImageURL
	}
}
