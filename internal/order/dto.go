package order

// PlaceItem is one cart line of a placement request. Client-supplied prices
// are never accepted; the unit price is read from the catalog.
// swagger:model PlaceItem
type PlaceItem struct {
	ProductID string `json:"product_id" example:"4e7d4e5c-5cb9-4a3f-9f21-7e1a4f9f2b2a"`
	Quantity  int    `json:"quantity"   example:"2"`
}

// PlaceRequest payload of order placement.
// swagger:model PlaceRequest
type PlaceRequest struct {
	UserID             string      `json:"user_id,omitempty"`
	CustomerName       string      `json:"customer_name"        example:"Amira Haddad"`
	CustomerEmail      string      `json:"customer_email"       example:"amira@example.com"`
	CustomerPhone      string      `json:"customer_phone,omitempty"`
	CustomerAddress    string      `json:"customer_address"     example:"Av. Libertad 1200"`
	CustomerCity       string      `json:"customer_city"        example:"Buenos Aires"`
	CustomerPostalCode string      `json:"customer_postal_code,omitempty"`
	PaymentMethod      string      `json:"payment_method"       example:"card"`
	Notes              string      `json:"notes,omitempty"`
	Items              []PlaceItem `json:"items"`
}
