package models

import "time"

// Product types and statuses as stored in the shop catalog.
const (
	ProductTypeVariable  = "variable"
	ProductTypeSimple    = "simple"
	ProductTypeVariation = "variation"

	ProductStatusPublish = "publish"
	ProductStatusPrivate = "private"
	ProductStatusDraft   = "draft"
)

// Product is a read-only catalog entry. Variable products reference their
// purchasable variants through VariationIDs.
type Product struct {
	ID               int64     `json:"id"`
	Name             string    `json:"name"`
	SKU              string    `json:"sku"`
	Type             string    `json:"type"`
	Status           string    `json:"status"`
	VariationIDs     []int64   `json:"variation_ids,omitempty"`
	ImageKey         string    `json:"image,omitempty"`
	ShortDescription string    `json:"short_description,omitempty"`
	Description      string    `json:"description,omitempty"`
	Categories       []string  `json:"categories,omitempty"`
	Tags             []string  `json:"tags,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

// IsVariable reports whether the product carries variants.
func (p *Product) IsVariable() bool {
	return p.Type == ProductTypeVariable
}

// Variant is one concrete purchasable attribute combination of a variable product.
type Variant struct {
	ID         int64             `json:"id"`
	ParentID   int64             `json:"parent_id"`
	Attributes map[string]string `json:"attributes,omitempty"`
	ImageKey   string            `json:"image,omitempty"`
	SKU        string            `json:"sku,omitempty"`
}

// Attribute returns the raw value stored under key, or "" when absent.
func (v *Variant) Attribute(key string) string {
	if v == nil || v.Attributes == nil {
		return ""
	}
	return v.Attributes[key]
}

// ProductSummary is the listing shape used by the product picker.
type ProductSummary struct {
	ID     int64   `json:"id"`
	Name   string  `json:"name"`
	SKU    string  `json:"sku"`
	Type   string  `json:"type"`
	Image  *string `json:"image"`
	Status string  `json:"status"`
}
