package filter

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

var ErrUnknownProduct = errors.New("unknown product")

var (
	regMu    sync.RWMutex
	registry = map[string]*Table{} // lower(product) -> table
)

// Register installs t, replacing any table already registered for the
// same product.
func Register(t *Table) {
	regMu.Lock()
	defer regMu.Unlock()
	registry[key(t.Product)] = t
}

func Get(product string) (*Table, bool) {
	regMu.RLock()
	defer regMu.RUnlock()
	t, ok := registry[key(product)]
	return t, ok
}

// List returns all registered tables ordered by product name.
func List() []*Table {
	regMu.RLock()
	out := make([]*Table, 0, len(registry))
	for _, t := range registry {
		out = append(out, t)
	}
	regMu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Product < out[j].Product })
	return out
}

func Products() []string {
	ts := List()
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = t.Product
	}
	return out
}

// Classify looks up the product table and classifies c with it.
func Classify(product string, c Candidate) (Verdict, error) {
	t, ok := Get(product)
	if !ok {
		return Ignore, fmt.Errorf("%w: %q", ErrUnknownProduct, product)
	}
	return t.Classify(c), nil
}

func key(product string) string { return strings.ToLower(strings.TrimSpace(product)) }
