package testdata

import "math/rand"

// Curated value pools for deterministic synthesis. Some category pools
// hold fewer than four entries, so every sample over them must clamp.

var preferenceCategories = []string{
	"electronics", "clothing", "books", "sports", "home", "beauty",
	"automotive", "toys", "garden", "health", "food", "jewelry",
}

var adminPreferences = []string{"management", "analytics", "reports"}

var vendorPreferences = []string{"inventory", "sales", "marketing"}

var productNames = map[string][]string{
	"electronics": {"Smartphone", "Laptop", "Tablet", "Headphones", "Camera"},
	"clothing":    {"T-Shirt", "Jeans", "Dress", "Shoes", "Jacket"},
	"books":       {"Novel", "Textbook", "Magazine", "Comic", "Guide"},
	"sports":      {"Ball", "Racket", "Bike", "Treadmill", "Weights"},
}

var productBrands = map[string][]string{
	"electronics": {"Apple", "Samsung", "Sony", "LG", "Dell"},
	"clothing":    {"Nike", "Adidas", "Zara", "H&M", "Uniqlo"},
	"books":       {"Penguin", "Random House", "HarperCollins", "Simon & Schuster"},
	"sports":      {"Nike", "Adidas", "Under Armour", "Puma", "Reebok"},
}

var productFeatures = map[string][]string{
	"electronics": {"Wireless", "Bluetooth", "HD", "4K", "Fast Charging"},
	"clothing":    {"Cotton", "Polyester", "Waterproof", "Breathable", "Stretch"},
	"books":       {"Hardcover", "Paperback", "Digital", "Illustrated", "Signed"},
	"sports":      {"Lightweight", "Durable", "Adjustable", "Anti-slip", "Waterproof"},
}

// genericFeatures backs categories without a curated feature pool.
var genericFeatures = []string{"Quality", "Reliable"}

var searchVocabulary = []string{
	"dress", "shirt", "jeans", "shoes", "bag", "watch", "phone",
	"laptop", "book", "toy", "food", "drink", "car", "bike", "house",
	"garden", "beauty", "health", "sports", "music", "art", "tech",
	"fashion",
}

var orderStatuses = []string{"pending", "confirmed", "shipped", "delivered"}

var paymentMethods = []string{"credit_card", "paypal", "bank_transfer"}

// sample draws up to n distinct elements from pool without replacement.
// n is clamped to the pool size, never errors; this is the single place
// the clamp lives so every caller inherits it.
func sample(r *rand.Rand, pool []string, n int) []string {
	if n > len(pool) {
		n = len(pool)
	}
	if n <= 0 {
		return []string{}
	}

	out := make([]string, n)
	for i, j := range r.Perm(len(pool))[:n] {
		out[i] = pool[j]
	}
	return out
}

// choice returns one element of pool, or "" for an empty pool.
func choice(r *rand.Rand, pool []string) string {
	if len(pool) == 0 {
		return ""
	}
	return pool[r.Intn(len(pool))]
}
