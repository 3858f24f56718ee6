package clients

import (
	"context"

	"github.com/gabinork/Gabi-Nork-Tech-2/internal/domain"
	"github.com/sirupsen/logrus"
)

type logOrderPublisher struct {
	log *logrus.Logger
}

// NewLogOrderPublisher records events in the log only. Used when no broker is
// configured.
func NewLogOrderPublisher(logger *logrus.Logger) domain.OrderPublisher {
	return &logOrderPublisher{log: logger}
}

func (p *logOrderPublisher) PublishOrderPlaced(_ context.Context, order *domain.Order) error {
	event := domain.NewOrderPlacedEvent(order)
	p.log.WithFields(logrus.Fields{
		"event_type": EventTypeOrderPlaced,
		"order_id":   event.OrderID,
		"client_id":  event.ClientID,
		"total":      event.Total,
		"items":      len(event.Items),
	}).Info("Order event (no broker configured)")
	return nil
}
