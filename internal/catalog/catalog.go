package catalog

import (
	"encoding/json"
	"io"
	"os"

	pkgerrors "github.com/angelmondragon/offers-engine/pkg/errors"
	"github.com/angelmondragon/offers-engine/pkg/types"
)

// Catalog is an in-memory ProductLookup over a fixed product set. It backs
// the CLI and tests; real deployments inject their own lookup over
// whatever store holds the products.
type Catalog struct {
	products map[string]types.ProductSnapshot
}

// New builds a catalog from the given snapshots. Later duplicates of an id
// win, matching last-write semantics of the upstream store.
func New(products []types.ProductSnapshot) *Catalog {
	indexed := make(map[string]types.ProductSnapshot, len(products))
	for _, product := range products {
		if product.ID == "" {
			continue
		}
		indexed[product.ID] = product
	}
	return &Catalog{products: indexed}
}

// Load reads a JSON array of product snapshots.
func Load(r io.Reader) (*Catalog, error) {
	var products []types.ProductSnapshot
	if err := json.NewDecoder(r).Decode(&products); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "decode product catalog")
	}
	return New(products), nil
}

// LoadFile reads a JSON catalog file from disk.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "open product catalog")
	}
	defer f.Close()
	return Load(f)
}

// Product implements types.ProductLookup.
func (c *Catalog) Product(productID string) (*types.ProductSnapshot, bool) {
	if c == nil {
		return nil, false
	}
	product, ok := c.products[productID]
	if !ok {
		return nil, false
	}
	copied := product
	return &copied, true
}

// Len returns the number of products held.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.products)
}
