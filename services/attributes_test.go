package services

import (
	"testing"

	"variant-export-service/models"

	"github.com/stretchr/testify/assert"
)

func TestLookupAttribute_Fallbacks(t *testing.T) {
	v := &models.Variant{Attributes: map[string]string{"pa_szin": "Red", "meret": "XL"}}

	assert.Equal(t, "Red", lookupAttribute(v, "pa_szin"))
	assert.Equal(t, "Red", lookupAttribute(v, "szin"), "bare key falls back to prefixed")
	assert.Equal(t, "XL", lookupAttribute(v, "pa_meret"), "prefixed key falls back to bare")
	assert.Equal(t, "", lookupAttribute(v, "pa_termektipus"))
	assert.Equal(t, "", lookupAttribute(&models.Variant{}, "pa_szin"))
}

func TestLookupAttribute_ConfiguredKeyWins(t *testing.T) {
	v := &models.Variant{Attributes: map[string]string{"szin": "Blue", "pa_szin": "Red"}}
	assert.Equal(t, "Blue", lookupAttribute(v, "szin"))
	assert.Equal(t, "Red", lookupAttribute(v, "pa_szin"))
}

func TestNaturalSort(t *testing.T) {
	values := []string{"Item10", "item2", "Item1", "Item2", "apple", "Banana"}
	naturalSort(values)
	assert.Equal(t, []string{"apple", "Banana", "Item1", "Item2", "item2", "Item10"}, values)
}

func TestNaturalSort_Sizes(t *testing.T) {
	values := []string{"XL", "s", "M", "38", "4", "L"}
	naturalSort(values)
	assert.Equal(t, []string{"4", "38", "L", "M", "s", "XL"}, values)
}

func TestValueSet(t *testing.T) {
	s := newValueSet([]string{"a", "", "b", "a"})
	assert.Len(t, s, 2)
	assert.True(t, s.accepts("a"))
	assert.False(t, s.accepts("c"))

	empty := newValueSet(nil)
	assert.True(t, empty.accepts("anything"))
}
