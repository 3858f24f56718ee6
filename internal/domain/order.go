package domain

import (
	"context"
	"time"
)

type OrderStatus string

const (
	StatusPlaced     OrderStatus = "placed"
	StatusProcessing OrderStatus = "processing"
	StatusShipped    OrderStatus = "shipped"
	StatusDelivered  OrderStatus = "delivered"
)

// OrderStatuses is ordered by fulfilment progress.
func OrderStatuses() []OrderStatus {
	return []OrderStatus{StatusPlaced, StatusProcessing, StatusShipped, StatusDelivered}
}

func IsValidStatus(status OrderStatus) bool {
	switch status {
	case StatusPlaced, StatusProcessing, StatusShipped, StatusDelivered:
		return true
	default:
		return false
	}
}

type ShippingDetails struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Address   string `json:"address"`
	City      string `json:"city"`
	State     string `json:"state"`
	Phone     string `json:"phone"`
}

func (s ShippingDetails) FullName() string {
	return s.FirstName + " " + s.LastName
}

type OrderItem struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"unit_price"`
	Quantity  int    `json:"quantity"`
}

type Order struct {
	ID            string          `json:"id"`
	ClientID      string          `json:"client_id"`
	CustomerName  string          `json:"customer_name"`
	CustomerEmail string          `json:"customer_email"`
	Shipping      ShippingDetails `json:"shipping"`
	Items         []OrderItem     `json:"items"`
	Total         int64           `json:"total"`
	Status        OrderStatus     `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
}

// NewOrder builds a placed order from a cart snapshot and computes its total
// from the line items.
func NewOrder(id, clientID string, shipping ShippingDetails, lines []LineItem, now time.Time) *Order {
	order := &Order{
		ID:            id,
		ClientID:      clientID,
		CustomerName:  shipping.FullName(),
		CustomerEmail: shipping.Email,
		Shipping:      shipping,
		Items:         make([]OrderItem, 0, len(lines)),
		Status:        StatusPlaced,
		CreatedAt:     now.UTC(),
	}
	for _, line := range lines {
		order.Items = append(order.Items, OrderItem{
			ProductID: line.Product.ID,
			Name:      line.Product.Name,
			UnitPrice: line.Product.Price,
			Quantity:  line.Quantity,
		})
		order.Total += line.Product.Price * int64(line.Quantity)
	}
	return order
}

type OrderRepository interface {
	CreateOrder(ctx context.Context, order *Order) error
	GetOrderByID(ctx context.Context, id string) (*Order, error)
	ListOrdersByClientID(ctx context.Context, clientID string) ([]Order, error)
}

type OrderPlacedEvent struct {
	OrderID       string      `json:"order_id"`
	ClientID      string      `json:"client_id"`
	CustomerEmail string      `json:"customer_email"`
	Items         []OrderItem `json:"items"`
	Total         int64       `json:"total"`
	Status        OrderStatus `json:"status"`
	PlacedAt      time.Time   `json:"placed_at"`
}

func NewOrderPlacedEvent(order *Order) OrderPlacedEvent {
	return OrderPlacedEvent{
		OrderID:       order.ID,
		ClientID:      order.ClientID,
		CustomerEmail: order.CustomerEmail,
		Items:         order.Items,
		Total:         order.Total,
		Status:        order.Status,
		PlacedAt:      order.CreatedAt,
	}
}

type OrderPublisher interface {
	PublishOrderPlaced(ctx context.Context, order *Order) error
}

type TrackingStage struct {
	Status    string `json:"status"`
	Date      string `json:"date"`
	Location  string `json:"location"`
	Completed bool   `json:"completed"`
}

type TrackingResult struct {
	OrderID           string          `json:"order_id"`
	Status            OrderStatus     `json:"status"`
	Progress          int             `json:"progress"`
	EstimatedDelivery string          `json:"estimated_delivery"`
	CurrentLocation   string          `json:"current_location"`
	History           []TrackingStage `json:"history"`
}

type TrackingUseCase interface {
	TrackOrder(ctx context.Context, orderID string) (*TrackingResult, error)
	ListOrders(ctx context.Context, clientID string) ([]Order, error)
}
