package models

import "time"

// AttributeSelection holds the accepted values per axis. An empty set on an
// axis disables filtering on that axis.
type AttributeSelection struct {
	Types  []string `json:"termektipus"`
	Colors []string `json:"szin"`
	Sizes  []string `json:"meret"`
}

// ExportRow is one line of the marketplace import file.
type ExportRow struct {
	Name                   string  `json:"name"`
	SKU                    string  `json:"sku"`
	Description            string  `json:"description"`
	CategoryTagDescription string  `json:"category_tag_description"`
	Size                   string  `json:"size"`
	Color                  string  `json:"color"`
	ImageURL               *string `json:"image_url"`
}

// ExportSession is a generated row set kept for preview and download until it expires.
// Sessions are written once and never mutated afterwards.
type ExportSession struct {
	ID        string      `json:"id"`
	CreatedAt time.Time   `json:"created"`
	ExpiresAt time.Time   `json:"expires_at"`
	Rows      []ExportRow `json:"rows"`
	Warnings  []string    `json:"warnings"`
}
