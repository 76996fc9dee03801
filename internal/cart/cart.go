package cart

import (
	"github.com/homestylefoods/storefront-backend/internal/catalog"
	apperrors "github.com/homestylefoods/storefront-backend/pkg/errors"
)

// Line is one cart entry. Product details are snapshotted at add time so the
// cart renders without re-reading the catalog.
type Line struct {
	ProductID int    `json:"product_id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Image     string `json:"image"`
	Quantity  int    `json:"quantity"`
}

// Cart is the ordered list of lines stored on the session.
type Cart []Line

// Total is the sum of price times quantity across every line.
func (c Cart) Total() int64 {
	var total int64
	for _, line := range c {
		total += line.Price * int64(line.Quantity)
	}
	return total
}

// Count is the number of distinct lines.
func (c Cart) Count() int {
	return len(c)
}

// Lookup resolves a product ID against the catalog.
type Lookup interface {
	FindByID(id int) (catalog.Product, error)
}

// Engine applies cart mutations against session-held carts.
type Engine struct {
	catalog Lookup
}

// NewEngine validates dependencies and returns the cart engine.
func NewEngine(lookup Lookup) (*Engine, error) {
	if lookup == nil {
		return nil, apperrors.New(apperrors.CodeInternal, "catalog lookup is required")
	}
	return &Engine{catalog: lookup}, nil
}

// Add merges the product into the cart, defaulting quantity to 1. The
// returned product lets callers build the confirmation flash.
func (e *Engine) Add(current Cart, productID, quantity int) (Cart, catalog.Product, error) {
	if quantity <= 0 {
		quantity = 1
	}

	product, err := e.catalog.FindByID(productID)
	if err != nil {
		return current, catalog.Product{}, err
	}

	for i := range current {
		if current[i].ProductID == productID {
			current[i].Quantity += quantity
			return current, product, nil
		}
	}

	return append(current, Line{
		ProductID: product.ID,
		Name:      product.Name,
		Price:     product.Price,
		Image:     product.Image,
		Quantity:  quantity,
	}), product, nil
}

// Remove drops every line for the product. Removing an absent product is a
// no-op.
func (e *Engine) Remove(current Cart, productID int) Cart {
	next := current[:0:0]
	for _, line := range current {
		if line.ProductID != productID {
			next = append(next, line)
		}
	}
	return next
}
