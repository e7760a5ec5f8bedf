package handlers

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/smartshop/qaforge/internal/testdata"
)

// Store is the in-memory state behind the mock API. It starts from
// generator output so the fixture looks like a populated shop, and it
// only grows: user signups and orders append, nothing is deleted.
type Store struct {
	mu       sync.RWMutex
	products []StoredProduct
	users    []StoredUser
	orders   []StoredOrder
}

// StoredProduct is a catalog product with a mock API identifier.
type StoredProduct struct {
	ID int `json:"id"`
	testdata.Product
}

// StoredUser is a registered account. The password never serializes.
type StoredUser struct {
	ID int `json:"id"`
	testdata.UserProfile
	password string
}

// OrderLine is one product reference inside an order request.
type OrderLine struct {
	ProductID int     `json:"product_id"`
	Name      string  `json:"name,omitempty"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// StoredOrder is an order accepted by the mock API.
type StoredOrder struct {
	ID        int         `json:"id"`
	UserID    int         `json:"user_id"`
	Products  []OrderLine `json:"products"`
	Total     float64     `json:"total"`
	Status    string      `json:"status"`
	CreatedAt string      `json:"created_at"`
}

// NewStore seeds a store from the generator: a small multi-category
// catalog and one registered customer.
func NewStore(gen *testdata.Generator) *Store {
	s := &Store{}

	ctx := context.Background()
	for _, seed := range []struct {
		category string
		count    int
	}{
		{"electronics", 3},
		{"clothing", 2},
		{"books", 2},
	} {
		for _, p := range gen.GenerateProductCatalog(ctx, seed.category, seed.count) {
			s.products = append(s.products, StoredProduct{ID: len(s.products) + 1, Product: p})
		}
	}

	profile := gen.GenerateUserProfile(ctx, testdata.RoleCustomer)
	s.users = append(s.users, StoredUser{ID: 1, UserProfile: profile, password: "TestPassword123!"})

	return s
}

// Products returns a snapshot of the catalog.
func (s *Store) Products() []StoredProduct {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]StoredProduct, len(s.products))
	copy(out, s.products)
	return out
}

// Product looks up a product by ID.
func (s *Store) Product(id int) (StoredProduct, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.products {
		if p.ID == id {
			return p, true
		}
	}
	return StoredProduct{}, false
}

// Search returns up to limit products whose name or description
// contains the query, case-insensitively.
func (s *Store) Search(query string, limit int) []StoredProduct {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query = strings.ToLower(query)
	out := []StoredProduct{}
	for _, p := range s.products {
		if strings.Contains(strings.ToLower(p.Name), query) ||
			strings.Contains(strings.ToLower(p.Description), query) {
			out = append(out, p)
			if len(out) == limit {
				break
			}
		}
	}
	return out
}

// AddUser registers a new user. Email uniqueness is enforced.
func (s *Store) AddUser(profile testdata.UserProfile, password string) (StoredUser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == profile.Email {
			return StoredUser{}, fmt.Errorf("email already exists")
		}
	}

	user := StoredUser{ID: len(s.users) + 1, UserProfile: profile, password: password}
	s.users = append(s.users, user)
	return user, nil
}

// AddOrder accepts an order and computes its total from the lines.
func (s *Store) AddOrder(userID int, lines []OrderLine) StoredOrder {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0.0
	for i := range lines {
		if lines[i].Quantity <= 0 {
			lines[i].Quantity = 1
		}
		total += lines[i].Price * float64(lines[i].Quantity)
	}

	order := StoredOrder{
		ID:        len(s.orders) + 1,
		UserID:    userID,
		Products:  lines,
		Total:     total,
		Status:    "pending",
		CreatedAt: time.Now().Format(time.RFC3339),
	}
	s.orders = append(s.orders, order)
	return order
}

// Orders returns a snapshot of all accepted orders.
func (s *Store) Orders() []StoredOrder {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]StoredOrder, len(s.orders))
	copy(out, s.orders)
	return out
}
