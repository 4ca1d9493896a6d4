package order

import "time"

// Order statuses, mutated only by the admin status update after creation.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusShipped   = "shipped"
	StatusDelivered = "delivered"
	StatusCancelled = "cancelled"
)

const (
	PaymentCash     = "cash"
	PaymentCard     = "card"
	PaymentTransfer = "transfer"
)

func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentTransfer:
		return true
	}
	return false
}

type Order struct {
	ID          string `json:"id"`
	OrderNumber string `json:"order_number"`
	UserID      string `json:"user_id,omitempty"`

	CustomerName       string `json:"customer_name"`
	CustomerEmail      string `json:"customer_email"`
	CustomerPhone      string `json:"customer_phone,omitempty"`
	CustomerAddress    string `json:"customer_address"`
	CustomerCity       string `json:"customer_city"`
	CustomerPostalCode string `json:"customer_postal_code,omitempty"`
	Notes              string `json:"notes,omitempty"`

	// Sum of line totals at creation time (NUMERIC -> string). Never changes
	// afterward, even when product prices do.
	TotalAmount   string    `json:"total_amount"`
	Status        string    `json:"status"`
	PaymentMethod string    `json:"payment_method"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	// Filled by joined reads only.
	UserFirstName string `json:"first_name,omitempty"`
	UserLastName  string `json:"last_name,omitempty"`
	UserEmail     string `json:"user_email,omitempty"`
	TotalItems    int    `json:"total_items,omitempty"`
}

type Item struct {
	ID        string `json:"id"`
	OrderID   string `json:"order_id"`
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	// Unit price captured at order time; decoupled from later price changes.
	UnitPrice  string `json:"unit_price"`
	TotalPrice string `json:"total_price"`

	// Display fields joined from the current product row.
	ProductName  string `json:"product_name,omitempty"`
	ProductImage string `json:"product_image,omitempty"`
}
