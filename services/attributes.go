package services

import (
	"sort"
	"strings"

	"variant-export-service/models"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

const attributePrefix = "pa_"

// lookupAttribute reads key from v, falling back to the pa_-prefixed form of
// the key and, for prefixed keys, to the bare name.
func lookupAttribute(v *models.Variant, key string) string {
	if val := v.Attribute(key); val != "" {
		return val
	}
	bare := strings.TrimPrefix(key, attributePrefix)
	if prefixed := attributePrefix + bare; prefixed != key {
		if val := v.Attribute(prefixed); val != "" {
			return val
		}
	}
	if bare != key {
		return v.Attribute(bare)
	}
	return ""
}

func axisKeys(s models.Settings) AxisKeys {
	return AxisKeys{Type: s.AttrType, Color: s.AttrColor, Size: s.AttrSize}
}

type valueSet map[string]struct{}

func (s valueSet) add(v string) {
	if v != "" {
		s[v] = struct{}{}
	}
}

func (s valueSet) has(v string) bool {
	_, ok := s[v]
	return ok
}

// accepts treats an empty set as accepting everything.
func (s valueSet) accepts(v string) bool {
	return len(s) == 0 || s.has(v)
}

func newValueSet(values []string) valueSet {
	s := make(valueSet, len(values))
	for _, v := range values {
		s.add(v)
	}
	return s
}

// sorted returns the members in case-insensitive natural order.
func (s valueSet) sorted() []string {
	out := make([]string, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	naturalSort(out)
	return out
}

// naturalSort orders values case-insensitively with embedded numbers compared
// by value, so "Item2" sorts before "Item10". Ties fall back to byte order.
func naturalSort(values []string) {
	c := collate.New(language.Und, collate.IgnoreCase, collate.Numeric)
	sort.SliceStable(values, func(i, j int) bool {
		if r := c.CompareString(values[i], values[j]); r != 0 {
			return r < 0
		}
		return values[i] < values[j]
	})
}
