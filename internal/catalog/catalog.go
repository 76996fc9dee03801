package catalog

import (
	"sync"

	apperrors "github.com/homestylefoods/storefront-backend/pkg/errors"
)

// Category identifies one of the storefront shelves.
type Category string

const (
	CategoryVegPickles    Category = "veg_pickles"
	CategoryNonVegPickles Category = "non_veg_pickles"
	CategorySnacks        Category = "snacks"
)

// Categories lists every shelf in display order.
func Categories() []Category {
	return []Category{CategoryVegPickles, CategoryNonVegPickles, CategorySnacks}
}

// ParseCategory validates a raw form value against the known shelves.
func ParseCategory(raw string) (Category, error) {
	switch Category(raw) {
	case CategoryVegPickles, CategoryNonVegPickles, CategorySnacks:
		return Category(raw), nil
	}
	return "", apperrors.New(apperrors.CodeInvalidCategory, "unknown category").
		WithDetails(map[string]any{"category": raw})
}

// Product is a single catalog entry. Price is in whole rupees.
type Product struct {
	ID          int
	Name        string
	Price       int64
	Description string
	Image       string
	Category    Category
}

// Store is the in-memory catalog. IDs are unique across every category,
// assigned from a single monotonic counter.
type Store struct {
	mu      sync.RWMutex
	shelves map[Category][]Product
	nextID  int
}

// NewStore returns an empty catalog.
func NewStore() *Store {
	return &Store{
		shelves: map[Category][]Product{
			CategoryVegPickles:    {},
			CategoryNonVegPickles: {},
			CategorySnacks:        {},
		},
		nextID: 1,
	}
}

// NewSeededStore returns the catalog preloaded with the launch range.
func NewSeededStore() *Store {
	store := NewStore()
	for _, product := range seedProducts {
		store.mu.Lock()
		product.ID = store.nextID
		store.nextID++
		store.shelves[product.Category] = append(store.shelves[product.Category], product)
		store.mu.Unlock()
	}
	return store
}

// List returns the products on one shelf, in insertion order.
func (s *Store) List(category Category) []Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	shelf := s.shelves[category]
	out := make([]Product, len(shelf))
	copy(out, shelf)
	return out
}

// Featured returns the first product of each shelf, skipping empty shelves.
func (s *Store) Featured() []Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var featured []Product
	for _, category := range Categories() {
		if shelf := s.shelves[category]; len(shelf) > 0 {
			featured = append(featured, shelf[0])
		}
	}
	return featured
}

// FindByID scans every shelf for the product.
func (s *Store) FindByID(id int) (Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, category := range Categories() {
		for _, product := range s.shelves[category] {
			if product.ID == id {
				return product, nil
			}
		}
	}
	return Product{}, apperrors.New(apperrors.CodeNotFound, "product not found").
		WithDetails(map[string]any{"product_id": id})
}

// Append assigns the next ID and places the product on its shelf.
func (s *Store) Append(product Product) (Product, error) {
	if _, err := ParseCategory(string(product.Category)); err != nil {
		return Product{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	product.ID = s.nextID
	s.nextID++
	s.shelves[product.Category] = append(s.shelves[product.Category], product)
	return product, nil
}

var seedProducts = []Product{
	{Name: "Andhra Mango Pickle", Price: 150, Description: "Raw mango chunks in fiery red chili-garlic masala.", Image: "mango.jpg", Category: CategoryVegPickles},
	{Name: "Gongura Pickle", Price: 140, Description: "Tangy gongura leaves pickled with spices & tradition.", Image: "gongura.jpg", Category: CategoryVegPickles},
	{Name: "Lemon Pickle", Price: 130, Description: "Zesty lemons steeped in mustard, fenugreek & oil.", Image: "lemon.jpg", Category: CategoryVegPickles},
	{Name: "Tomato Pickle", Price: 120, Description: "Rich, spicy, and bursting with flavor.", Image: "tomato.jpg", Category: CategoryVegPickles},
	{Name: "Amla Pickle", Price: 150, Description: "Rich in vitamin C and bursting with flavor.", Image: "amla.jpg", Category: CategoryVegPickles},
	{Name: "Boneless Chicken Pickle", Price: 200, Description: "Juicy, tender boneless chicken cooked to perfection.", Image: "boneless_chicken_pickle.jpg", Category: CategoryNonVegPickles},
	{Name: "Mutton Pickle", Price: 300, Description: "Mutton pickle with bold and spicy flavor.", Image: "mutton.jpg", Category: CategoryNonVegPickles},
	{Name: "Fish Pickle", Price: 250, Description: "A coastal delicacy made with premium fish.", Image: "fish.jpg", Category: CategoryNonVegPickles},
	{Name: "Prawn Pickle", Price: 250, Description: "Succulent prawns infused with mustard and chili.", Image: "prawns.jpg", Category: CategoryNonVegPickles},
	{Name: "Chicken Gongura Pickle", Price: 210, Description: "Succulent Chicken Gongura Bites.", Image: "chicken_gongura.jpg", Category: CategoryNonVegPickles},
	{Name: "Mutton Gongura Pickle", Price: 210, Description: "Where mutton meets gongura magic.", Image: "mutton_gongura.jpg", Category: CategoryNonVegPickles},
	{Name: "Masala Murukulu", Price: 80, Description: "Spicy and crunchy spirals made from rice flour and urad dal.", Image: "masala_murukulu.jpg", Category: CategorySnacks},
	{Name: "Karam Boondi", Price: 70, Description: "Golden crispy gram flour pearls seasoned with bold flavors.", Image: "karam_boondi.jpg", Category: CategorySnacks},
	{Name: "Popcorn", Price: 30, Description: "Melt-in-your-mouth buttery goodness with every pop!", Image: "popcorn.jpg", Category: CategorySnacks},
	{Name: "Potato Chips", Price: 60, Description: "Your favorite snack, now with extra crunch and flavor!", Image: "potato_chips.jpg", Category: CategorySnacks},
	{Name: "Mirchi Bajji", Price: 80, Description: "Best enjoyed with a hot cup of chai and a rainy evening.", Image: "mirchi_bajji.jpg", Category: CategorySnacks},
	{Name: "Chekkalu", Price: 60, Description: "Thin and savory rice crackers with hints of cumin and ginger.", Image: "chekkalu.jpg", Category: CategorySnacks},
}
