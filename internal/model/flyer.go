package model

import "time"

// Flyer templates.
const (
	TemplateModern     = "modern"
	TemplateClassic    = "classic"
	TemplateMinimalist = "minimalist"
	TemplateColorful   = "colorful"
)

// Flyer statuses.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusArchived  = "archived"
)

// Product arrangements within a flyer layout.
const (
	ArrangementGrid     = "grid"
	ArrangementList     = "list"
	ArrangementCarousel = "carousel"
)

// Flyer is a marketing sheet composed from snapshots of the owner's products.
type Flyer struct {
	ID           string            `json:"id" bson:"_id" db:"id"`
	UserID       string            `json:"userId" bson:"user_id" db:"user_id"`
	Title        string            `json:"title" bson:"title" db:"title"`
	Description  string            `json:"description,omitempty" bson:"description,omitempty" db:"description"`
	Template     string            `json:"template" bson:"template" db:"template"`
	Layout       Layout            `json:"layout" bson:"layout" db:"layout"`
	BusinessInfo BusinessInfo      `json:"businessInfo" bson:"business_info" db:"business_info"`
	Products     []ProductSnapshot `json:"products" bson:"products" db:"products"`
	Status       string            `json:"status" bson:"status" db:"status"`
	PublishedAt  *time.Time        `json:"publishedAt,omitempty" bson:"published_at,omitempty" db:"published_at"`
	CreatedAt    time.Time         `json:"createdAt" bson:"created_at" db:"created_at"`
	UpdatedAt    time.Time         `json:"updatedAt" bson:"updated_at" db:"updated_at"`
}

// ProductSnapshot is a copy of a product's fields taken when a flyer's product
// list was last set. It never follows later edits to the source product.
type ProductSnapshot struct {
	ProductID    string   `json:"productId" bson:"product_id"`
	Name         string   `json:"name" bson:"name"`
	Price        float64  `json:"price" bson:"price"`
	Barcode      string   `json:"barcode,omitempty" bson:"barcode,omitempty"`
	Description  string   `json:"description,omitempty" bson:"description,omitempty"`
	Category     string   `json:"category" bson:"category"`
	ImageURL     string   `json:"imageUrl,omitempty" bson:"image_url,omitempty"`
	DisplayOrder int      `json:"displayOrder" bson:"display_order"`
	DisplayName  *string  `json:"displayName,omitempty" bson:"display_name,omitempty"`
	DisplayPrice *float64 `json:"displayPrice,omitempty" bson:"display_price,omitempty"`
}

// Layout groups the visual settings of a flyer.
type Layout struct {
	Colors      Colors `json:"colors" bson:"colors"`
	Fonts       Fonts  `json:"fonts" bson:"fonts"`
	Arrangement string `json:"arrangement" bson:"arrangement" validate:"omitempty,oneof=grid list carousel"`
}

// Colors holds the flyer palette as CSS colour strings.
type Colors struct {
	Primary    string `json:"primary" bson:"primary" validate:"max=32"`
	Secondary  string `json:"secondary" bson:"secondary" validate:"max=32"`
	Background string `json:"background" bson:"background" validate:"max=32"`
	Text       string `json:"text" bson:"text" validate:"max=32"`
}

// Fonts holds the flyer font families.
type Fonts struct {
	Heading string `json:"heading" bson:"heading" validate:"max=64"`
	Body    string `json:"body" bson:"body" validate:"max=64"`
}

// BusinessInfo describes the business advertised on the flyer.
type BusinessInfo struct {
	Name    string `json:"name,omitempty" bson:"name,omitempty" validate:"max=100"`
	Logo    string `json:"logo,omitempty" bson:"logo,omitempty" validate:"max=2048"`
	Address string `json:"address,omitempty" bson:"address,omitempty" validate:"max=300"`
	Phone   string `json:"phone,omitempty" bson:"phone,omitempty" validate:"max=50"`
	Email   string `json:"email,omitempty" bson:"email,omitempty" validate:"omitempty,email"`
	Website string `json:"website,omitempty" bson:"website,omitempty" validate:"max=2048"`
	Hours   string `json:"hours,omitempty" bson:"hours,omitempty" validate:"max=200"`
}

// DefaultLayout returns the layout used when a flyer is created without one.
func DefaultLayout() Layout {
	return Layout{
		Colors: Colors{
			Primary:    "#007bff",
			Secondary:  "#6c757d",
			Background: "#ffffff",
			Text:       "#212529",
		},
		Fonts: Fonts{
			Heading: "Arial",
			Body:    "Arial",
		},
		Arrangement: ArrangementGrid,
	}
}

// WithDefaults fills unset layout fields from DefaultLayout.
func (l Layout) WithDefaults() Layout {
	d := DefaultLayout()
	if l.Colors.Primary == "" {
		l.Colors.Primary = d.Colors.Primary
	}
	if l.Colors.Secondary == "" {
		l.Colors.Secondary = d.Colors.Secondary
	}
	if l.Colors.Background == "" {
		l.Colors.Background = d.Colors.Background
	}
	if l.Colors.Text == "" {
		l.Colors.Text = d.Colors.Text
	}
	if l.Fonts.Heading == "" {
		l.Fonts.Heading = d.Fonts.Heading
	}
	if l.Fonts.Body == "" {
		l.Fonts.Body = d.Fonts.Body
	}
	if l.Arrangement == "" {
		l.Arrangement = d.Arrangement
	}
	return l
}

// DisplayOverride customises how one product is shown on a flyer.
type DisplayOverride struct {
	DisplayName  *string  `json:"displayName,omitempty" validate:"omitnil,max=100"`
	DisplayPrice *float64 `json:"displayPrice,omitempty" validate:"omitnil,gte=0"`
	DisplayOrder *int     `json:"displayOrder,omitempty" validate:"omitnil,gte=0"`
}

// CreateFlyerRequest represents the request payload for creating a flyer.
type CreateFlyerRequest struct {
	Title            string                     `json:"title" validate:"required,max=100"`
	Description      string                     `json:"description" validate:"max=500"`
	Template         string                     `json:"template" validate:"omitempty,oneof=modern classic minimalist colorful"`
	Layout           *Layout                    `json:"layout"`
	BusinessInfo     *BusinessInfo              `json:"businessInfo"`
	Products         []string                   `json:"products" validate:"dive,required"`
	ProductOverrides map[string]DisplayOverride `json:"productOverrides" validate:"dive"`
	Status           string                     `json:"status" validate:"omitempty,oneof=draft published archived"`
}

// UpdateFlyerRequest carries a partial flyer update. Nil fields are left
// unchanged; a non-nil Products, even an empty one, replaces every snapshot.
type UpdateFlyerRequest struct {
	Title            *string                    `json:"title" validate:"omitnil,min=1,max=100"`
	Description      *string                    `json:"description" validate:"omitnil,max=500"`
	Template         *string                    `json:"template" validate:"omitnil,oneof=modern classic minimalist colorful"`
	Layout           *Layout                    `json:"layout"`
	BusinessInfo     *BusinessInfo              `json:"businessInfo"`
	Products         *[]string                  `json:"products" validate:"omitnil,dive,required"`
	ProductOverrides map[string]DisplayOverride `json:"productOverrides" validate:"dive"`
	Status           *string                    `json:"status" validate:"omitnil,oneof=draft published archived"`
}

// FlyerFilter narrows flyer listings.
type FlyerFilter struct {
	Status string
	Limit  int
	Offset int
}
