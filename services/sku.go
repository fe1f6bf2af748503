package services

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	skuRandomMin      = 10000
	skuRandomMax      = 99999
	skuRandomAttempts = 20
	skuDefaultBase    = "SKU"
)

// RandomSource supplies the numeric SKU suffixes. *rand.Rand satisfies it.
type RandomSource interface {
	Intn(n int) int
}

// SKUMaker derives session-unique SKUs from a base id.
type SKUMaker struct {
	mu    sync.Mutex
	rand  RandomSource
	now   func() time.Time
	token func() string
}

// NewSKUMaker builds a maker. Nil arguments select a time-seeded source, the
// wall clock and uuid-derived tokens.
func NewSKUMaker(src RandomSource, now func() time.Time, token func() string) *SKUMaker {
	if src == nil {
		src = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if now == nil {
		now = time.Now
	}
	if token == nil {
		token = uniqueToken
	}
	return &SKUMaker{rand: src, now: now, token: token}
}

// Make returns base-NNNNN not yet in seen and records it. After repeated
// collisions it falls back to a unix-seconds suffix and then to a unique token.
func (m *SKUMaker) Make(base string, seen map[string]struct{}) string {
	base = strings.TrimSpace(base)
	if base == "" {
		base = skuDefaultBase
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for i := 0; i < skuRandomAttempts; i++ {
		n := skuRandomMin + m.rand.Intn(skuRandomMax-skuRandomMin+1)
		if sku := base + "-" + strconv.Itoa(n); claim(seen, sku) {
			return sku
		}
	}
	if sku := fmt.Sprintf("%s-%d", base, m.now().Unix()); claim(seen, sku) {
		return sku
	}
	sku := base + "-" + m.token()
	seen[sku] = struct{}{}
	return sku
}

func claim(seen map[string]struct{}, sku string) bool {
	if _, taken := seen[sku]; taken {
		return false
	}
	seen[sku] = struct{}{}
	return true
}

func uniqueToken() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:13]
}

// baseSKU picks the variant SKU, then the product SKU, then a positional id.
func baseSKU(variantSKU, productSKU string, productID, variantID int64) string {
	if s := strings.TrimSpace(variantSKU); s != "" {
		return s
	}
	if s := strings.TrimSpace(productSKU); s != "" {
		return s
	}
	return fmt.Sprintf("P%dV%d", productID, variantID)
}
