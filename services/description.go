package services

import (
	"html"
	"strings"

	"variant-export-service/models"

	"github.com/microcosm-cc/bluemonday"
)

var stripPolicy = bluemonday.StrictPolicy()

// plainText strips markup, decodes entities and collapses whitespace runs.
func plainText(s string) string {
	if s == "" {
		return ""
	}
	text := html.UnescapeString(stripPolicy.Sanitize(s))
	return strings.Join(strings.Fields(text), " ")
}

func productDescription(p *models.Product, source string) string {
	if source == models.DescSourceLong {
		return plainText(p.Description)
	}
	return plainText(p.ShortDescription)
}

// categoryTagDescription joins categories, tags and the description with sep,
// leaving out empty parts.
func categoryTagDescription(categories, tags []string, description, sep string) string {
	parts := make([]string, 0, 3)
	if cats := strings.Join(nonEmpty(categories), ", "); cats != "" {
		parts = append(parts, cats)
	}
	if t := strings.Join(nonEmpty(tags), ", "); t != "" {
		parts = append(parts, t)
	}
	if description != "" {
		parts = append(parts, description)
	}
	return strings.Join(parts, sep)
}

func nonEmpty(values []string) []string {
	out := values[:0:0]
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}
