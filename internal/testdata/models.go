package testdata

// User roles understood by the generator. Unknown roles get
// customer-shaped preferences.
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
	RoleVendor   = "vendor"
)

// UserProfile is a synthetic e-commerce account holder. Field names
// match the JSON schema the model is prompted for, so model output
// decodes directly.
type UserProfile struct {
	FirstName        string   `json:"first_name"`
	LastName         string   `json:"last_name"`
	Email            string   `json:"email"`
	Phone            string   `json:"phone"`
	Address          string   `json:"address"`
	City             string   `json:"city"`
	Country          string   `json:"country"`
	PostalCode       string   `json:"postal_code"`
	DateOfBirth      string   `json:"date_of_birth"`     // YYYY-MM-DD, age 18-80
	Preferences      []string `json:"preferences"`       // 2-5 category tags for customers
	LoyaltyPoints    int      `json:"loyalty_points"`    // never negative
	RegistrationDate string   `json:"registration_date"` // YYYY-MM-DD, within last 2 years
}

// Product is a synthetic catalog entry.
type Product struct {
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Price         float64  `json:"price"` // > 0
	Currency      string   `json:"currency"`
	Category      string   `json:"category"` // always echoes the requested category
	Brand         string   `json:"brand"`
	SKU           string   `json:"sku"`
	StockQuantity int      `json:"stock_quantity"` // >= 0
	Rating        float64  `json:"rating"`         // [0, 5]
	Features      []string `json:"features"`       // <= 4 unique tags
	Images        []string `json:"images"`
}

// OrderItem is one line of an order.
type OrderItem struct {
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"` // >= 1
	UnitPrice   float64 `json:"unit_price"`
	TotalPrice  float64 `json:"total_price"` // quantity * unit_price
}

// ShippingAddress is derived from the ordering user's profile.
type ShippingAddress struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	Country    string `json:"country"`
	PostalCode string `json:"postal_code"`
}

// Order is a synthetic order built from a user and a product catalog.
// Total is subtotal + tax + shipping, with tax fixed at 10% of subtotal.
type Order struct {
	OrderID         string          `json:"order_id"`
	UserID          string          `json:"user_id"` // ordering user's email
	OrderDate       string          `json:"order_date"`
	Status          string          `json:"status"`
	Items           []OrderItem     `json:"items"`
	Subtotal        float64         `json:"subtotal"`
	Tax             float64         `json:"tax"`
	Shipping        float64         `json:"shipping"`
	Total           float64         `json:"total"`
	ShippingAddress ShippingAddress `json:"shipping_address"`
	PaymentMethod   string          `json:"payment_method"`
}

// TestScenario is a model-designed test case sketch. There is no
// deterministic synthesizer for scenarios: when the model is
// unavailable the generator returns an empty list, which callers must
// read as "feature unavailable", not "nothing to test".
type TestScenario struct {
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Steps          []string `json:"steps"`
	ExpectedResult string   `json:"expected_result"`
	Priority       string   `json:"priority"` // high, medium, low
	Tags           []string `json:"tags"`
}
