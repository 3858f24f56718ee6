package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/gabinork/Gabi-Nork-Tech-2/internal/domain"
	"github.com/sirupsen/logrus"
)

const (
	minOrderIDLength  = 3
	stageDateLayout   = "Jan 02, 2006 - 03:04 PM"
	deliveryDayLayout = "Jan 02, 2006"
)

// demoBase anchors the timeline shown for ids that were not placed here.
var demoBase = time.Date(2024, time.October, 20, 10, 0, 0, 0, time.UTC)

var _ domain.TrackingUseCase = (*trackingUseCase)(nil)

type trackingUseCase struct {
	orders domain.OrderRepository
	log    *logrus.Logger
}

func NewTrackingUseCase(orders domain.OrderRepository, logger *logrus.Logger) domain.TrackingUseCase {
	return &trackingUseCase{
		orders: orders,
		log:    logger,
	}
}

// DemoStatus is the deterministic status for ids with no stored order.
func DemoStatus(orderID string) domain.OrderStatus {
	statuses := domain.OrderStatuses()
	return statuses[len(orderID)%len(statuses)]
}

func Progress(status domain.OrderStatus) int {
	switch status {
	case domain.StatusPlaced:
		return 15
	case domain.StatusProcessing:
		return 40
	case domain.StatusShipped:
		return 70
	case domain.StatusDelivered:
		return 100
	default:
		return 0
	}
}

func (uc *trackingUseCase) TrackOrder(ctx context.Context, orderID string) (*domain.TrackingResult, error) {
	id := strings.TrimSpace(orderID)
	if len(id) < minOrderIDLength {
		return nil, domain.ErrInvalidOrderID
	}
	id = strings.ToUpper(id)

	status := DemoStatus(id)
	base := demoBase
	order, err := uc.orders.GetOrderByID(ctx, id)
	switch {
	case err == nil:
		status = order.Status
		base = order.CreatedAt
		uc.log.Infof("Use Case: Tracking stored order %s with status %s", id, status)
	case errors.Is(err, domain.ErrOrderNotFound):
		uc.log.Infof("Use Case: Order %s not stored, using demo status %s", id, status)
	default:
		uc.log.Errorf("Use Case: Failed to look up order %s: %v", id, err)
		return nil, fmt.Errorf("failed to look up order %s: %w", id, err)
	}

	return BuildTrackingResult(id, status, base), nil
}

// BuildTrackingResult lays out the five fulfilment stages from base, with the
// completed stages first.
func BuildTrackingResult(orderID string, status domain.OrderStatus, base time.Time) *domain.TrackingResult {
	delivered := status == domain.StatusDelivered
	shipped := status == domain.StatusShipped || delivered

	deliveredDate := "Pending"
	if delivered {
		deliveredDate = base.Add(4*24*time.Hour + 105*time.Minute).Format(stageDateLayout)
	}

	history := []domain.TrackingStage{
		{Status: "Order Placed", Date: base.Format(stageDateLayout), Location: "Online", Completed: true},
		{Status: "Payment Confirmed", Date: base.Add(5 * time.Minute).Format(stageDateLayout), Location: "Online", Completed: true},
		{Status: "Processing", Date: base.Add(23*time.Hour + 30*time.Minute).Format(stageDateLayout), Location: "Lagos Warehouse", Completed: status != domain.StatusPlaced},
		{Status: "Shipped", Date: base.Add(2*24*time.Hour + 4*time.Hour).Format(stageDateLayout), Location: "In Transit", Completed: shipped},
		{Status: "Delivered", Date: deliveredDate, Location: "Customer Address", Completed: delivered},
	}
	sort.SliceStable(history, func(i, j int) bool {
		return history[i].Completed && !history[j].Completed
	})

	result := &domain.TrackingResult{
		OrderID:           orderID,
		Status:            status,
		Progress:          Progress(status),
		EstimatedDelivery: base.Add(5 * 24 * time.Hour).Format(deliveryDayLayout),
		CurrentLocation:   "Lagos Warehouse",
		History:           history,
	}
	switch status {
	case domain.StatusDelivered:
		result.EstimatedDelivery = "Delivered"
		result.CurrentLocation = "Delivered"
	case domain.StatusShipped:
		result.CurrentLocation = "Abuja Sorting Hub"
	}
	return result
}

func (uc *trackingUseCase) ListOrders(ctx context.Context, clientID string) ([]domain.Order, error) {
	orders, err := uc.orders.ListOrdersByClientID(ctx, clientID)
	if err != nil {
		uc.log.Errorf("Use Case: Failed to list orders for client %s: %v", clientID, err)
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}
