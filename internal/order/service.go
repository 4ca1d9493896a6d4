package order

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sahra-perfumes/storefront/internal/catalog"
)

// CatalogStore is the slice of the catalog the placement service needs:
// authoritative price and stock at the moment of order creation.
type CatalogStore interface {
	GetByID(ctx context.Context, id string) (*catalog.Product, error)
}

// Service implements order placement: it re-reads each referenced product,
// validates availability, snapshots prices and writes the order atomically.
type Service struct {
	catalog CatalogStore
	repo    Repository
}

func NewService(cat CatalogStore, repo Repository) *Service {
	return &Service{catalog: cat, repo: repo}
}

// Place validates req, computes totals from catalog prices and persists the
// order. Fail-fast: the first violation wins. Returned errors are
// *ValidationError, *ProductNotFoundError, *InsufficientStockError, or a
// storage error.
func (s *Service) Place(ctx context.Context, req *PlaceRequest) (*Order, []Item, error) {
	if err := validate(req); err != nil {
		return nil, nil, err
	}

	total := decimal.Zero
	items := make([]Item, 0, len(req.Items))
	for _, line := range req.Items {
		p, err := s.catalog.GetByID(ctx, line.ProductID)
		if err != nil {
			// only a missing/inactive product becomes NotFound; a failing
			// store must surface as an internal error, not a 404
			if errors.Is(err, catalog.ErrNotFound) {
				return nil, nil, &ProductNotFoundError{ProductID: line.ProductID}
			}
			return nil, nil, err
		}
		if p.Stock < line.Quantity {
			return nil, nil, &InsufficientStockError{Product: p.Name}
		}

		unit, err := decimal.NewFromString(p.Price)
		if err != nil {
			return nil, nil, err
		}
		lineTotal := unit.Mul(decimal.NewFromInt(int64(line.Quantity)))
		total = total.Add(lineTotal)

		items = append(items, Item{
			ID:          uuid.NewString(),
			ProductID:   p.ID,
			ProductName: p.Name,
			Quantity:    line.Quantity,
			UnitPrice:   unit.StringFixed(2),
			TotalPrice:  lineTotal.StringFixed(2),
		})
	}

	o := &Order{
		ID:                 uuid.NewString(),
		OrderNumber:        NewOrderNumber(),
		UserID:             req.UserID,
		CustomerName:       strings.TrimSpace(req.CustomerName),
		CustomerEmail:      strings.TrimSpace(req.CustomerEmail),
		CustomerPhone:      strings.TrimSpace(req.CustomerPhone),
		CustomerAddress:    strings.TrimSpace(req.CustomerAddress),
		CustomerCity:       strings.TrimSpace(req.CustomerCity),
		CustomerPostalCode: strings.TrimSpace(req.CustomerPostalCode),
		Notes:              strings.TrimSpace(req.Notes),
		TotalAmount:        total.StringFixed(2),
		Status:             StatusPending,
		PaymentMethod:      req.PaymentMethod,
	}
	for i := range items {
		items[i].OrderID = o.ID
	}

	// The repo re-checks stock with a conditional decrement inside the
	// transaction; a concurrent placement can still turn into
	// InsufficientStockError here.
	if err := s.repo.Create(ctx, o, items); err != nil {
		return nil, nil, err
	}
	return o, items, nil
}

func validate(req *PlaceRequest) error {
	if strings.TrimSpace(req.CustomerName) == "" {
		return invalidf("customer_name is required")
	}
	if _, err := mail.ParseAddress(strings.TrimSpace(req.CustomerEmail)); err != nil {
		return invalidf("customer_email is not a valid email address")
	}
	if strings.TrimSpace(req.CustomerAddress) == "" {
		return invalidf("customer_address is required")
	}
	if strings.TrimSpace(req.CustomerCity) == "" {
		return invalidf("customer_city is required")
	}
	if !ValidPaymentMethod(req.PaymentMethod) {
		return invalidf("payment_method must be one of cash, card, transfer")
	}
	if len(req.Items) == 0 {
		return invalidf("items must contain at least one entry")
	}
	for _, it := range req.Items {
		if it.ProductID == "" {
			return invalidf("items[].product_id is required")
		}
		if it.Quantity < 1 {
			return invalidf("items[].quantity must be at least 1")
		}
	}
	return nil
}
