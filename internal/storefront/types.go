package storefront

// Wire shapes of the upstream storefront API. Field names follow the
// upstream JSON exactly; translation into dashboard entities lives in the
// mapper package.

// Name is the upstream compound name record.
type Name struct {
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
}

// Address is the upstream address record. Number and Zipcode are accepted
// on the wire but not tracked by the dashboard.
type Address struct {
	City    string `json:"city"`
	Street  string `json:"street"`
	Number  int    `json:"number"`
	Zipcode string `json:"zipcode"`
}

// User is the upstream user record.
type User struct {
	ID       int64    `json:"id"`
	Email    string   `json:"email"`
	Username string   `json:"username"`
	Password string   `json:"password,omitempty"`
	Name     Name     `json:"name"`
	Address  *Address `json:"address,omitempty"`
	Phone    string   `json:"phone"`
}

// Product is the upstream catalog record.
type Product struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	Description string  `json:"description,omitempty"`
	Category    string  `json:"category,omitempty"`
	Image       string  `json:"image,omitempty"`
}

// CartItem is one product reference inside a cart. The upstream stores no
// price or title per item; those are resolved against the catalog.
type CartItem struct {
	ProductID int64 `json:"productId"`
	Quantity  int64 `json:"quantity"`
}

// Cart is the upstream order record. Date is kept as the raw wire string;
// the mapper parses it.
type Cart struct {
	ID       int64      `json:"id"`
	UserID   int64      `json:"userId"`
	Date     string     `json:"date"`
	Products []CartItem `json:"products"`
}
