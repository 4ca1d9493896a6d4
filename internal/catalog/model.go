package catalog

import "time"

type Product struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	// We store price as a string to avoid rounding errors (NUMERIC in Postgres)
	Price        string    `json:"price"`
	Stock        int       `json:"stock"`
	CategoryID   string    `json:"category_id,omitempty"`
	CategoryName string    `json:"category_name,omitempty"`
	Gender       string    `json:"gender"`
	Type         string    `json:"type"`
	Image1       string    `json:"image1,omitempty"`
	Image2       string    `json:"image2,omitempty"`
	Image3       string    `json:"image3,omitempty"`
	Image4       string    `json:"image4,omitempty"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type Category struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Stats aggregates the active catalog for the admin dashboard.
type Stats struct {
	TotalProducts int    `json:"total_products"`
	OutOfStock    int    `json:"out_of_stock"`
	LowStock      int    `json:"low_stock"`
	AvgPrice      string `json:"avg_price"`
	TotalStock    int    `json:"total_stock"`
}

type CategoryCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// CreateProductRequest payload of creation.
// swagger:model CreateProductRequest
type CreateProductRequest struct {
	Name        string `json:"name"        example:"Oud Royal"`
	Description string `json:"description" example:"Amber and oud, 100ml"`
	Price       string `json:"price"       example:"149.90"`
	Stock       int    `json:"stock"       example:"10"`
	CategoryID  string `json:"category_id"`
	Gender      string `json:"gender"      example:"unisex"`
	Type        string `json:"type"        example:"original"`
	Image1      string `json:"image1"`
	Image2      string `json:"image2"`
	Image3      string `json:"image3"`
	Image4      string `json:"image4"`
}

// UpdateProductRequest payload of partial update. Empty fields keep their
// current values.
// swagger:model UpdateProductRequest
type UpdateProductRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       string `json:"price"`
	Stock       *int   `json:"stock"`
	CategoryID  string `json:"category_id"`
	Gender      string `json:"gender"`
	Type        string `json:"type"`
	Image1      string `json:"image1"`
	Image2      string `json:"image2"`
	Image3      string `json:"image3"`
	Image4      string `json:"image4"`
}
