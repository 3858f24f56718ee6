package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gabinork/Gabi-Nork-Tech-2/internal/domain"
	"github.com/gabinork/Gabi-Nork-Tech-2/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDemoStatus(t *testing.T) {
	assert.Equal(t, domain.StatusPlaced, DemoStatus("GB-8492!"))
	assert.Equal(t, domain.StatusProcessing, DemoStatus("GB-84"))
	assert.Equal(t, domain.StatusShipped, DemoStatus("GB-849"))
	assert.Equal(t, domain.StatusDelivered, DemoStatus("GB-8492"))
}

func TestTrackingUseCase_TrackOrder(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryOrderRepository(quietLogger())
	uc := NewTrackingUseCase(repo, quietLogger())

	t.Run("short ids are rejected", func(t *testing.T) {
		for _, id := range []string{"", "  ", "GB", " G1 "} {
			_, err := uc.TrackOrder(ctx, id)
			assert.ErrorIs(t, err, domain.ErrInvalidOrderID, "id %q", id)
		}
	})

	t.Run("unknown id follows the demo rule", func(t *testing.T) {
		result, err := uc.TrackOrder(ctx, "gb-849")
		require.NoError(t, err)
		assert.Equal(t, "GB-849", result.OrderID)
		assert.Equal(t, domain.StatusShipped, result.Status)
		assert.Equal(t, 70, result.Progress)
		assert.Equal(t, "Abuja Sorting Hub", result.CurrentLocation)
		assert.Equal(t, "Oct 25, 2024", result.EstimatedDelivery)
		assert.Equal(t, "Oct 20, 2024 - 10:00 AM", result.History[0].Date)
	})

	t.Run("delivered demo order", func(t *testing.T) {
		result, err := uc.TrackOrder(ctx, "GB-8492")
		require.NoError(t, err)
		assert.Equal(t, domain.StatusDelivered, result.Status)
		assert.Equal(t, 100, result.Progress)
		assert.Equal(t, "Delivered", result.EstimatedDelivery)
		assert.Equal(t, "Delivered", result.CurrentLocation)
		last := result.History[len(result.History)-1]
		assert.Equal(t, "Delivered", last.Status)
		assert.Equal(t, "Oct 24, 2024 - 11:45 AM", last.Date)
		for _, stage := range result.History {
			assert.True(t, stage.Completed)
		}
	})

	t.Run("stored order uses its own status", func(t *testing.T) {
		order := &domain.Order{ID: "GB-1234", ClientID: "c1", Status: domain.StatusPlaced, CreatedAt: time.Date(2025, 1, 2, 9, 0, 0, 0, time.UTC)}
		require.NoError(t, repo.CreateOrder(ctx, order))

		result, err := uc.TrackOrder(ctx, "gb-1234")
		require.NoError(t, err)
		assert.Equal(t, domain.StatusPlaced, result.Status)
		assert.Equal(t, 15, result.Progress)
		assert.Equal(t, "Lagos Warehouse", result.CurrentLocation)
		assert.Equal(t, "Jan 07, 2025", result.EstimatedDelivery)
		assert.Equal(t, "Jan 02, 2025 - 09:00 AM", result.History[0].Date)
	})

	t.Run("storage failure surfaces", func(t *testing.T) {
		broken := NewTrackingUseCase(failingOrderRepo{err: errors.New("connection refused")}, quietLogger())
		_, err := broken.TrackOrder(ctx, "GB-1234")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to look up order")
	})
}

func TestBuildTrackingResult_CompletedStagesFirst(t *testing.T) {
	result := BuildTrackingResult("GB-1", domain.StatusProcessing, demoBase)

	var names []string
	seenPending := false
	for _, stage := range result.History {
		names = append(names, stage.Status)
		if !stage.Completed {
			seenPending = true
		} else {
			assert.False(t, seenPending, "completed stage after a pending one")
		}
	}
	assert.Equal(t, []string{"Order Placed", "Payment Confirmed", "Processing", "Shipped", "Delivered"}, names)
	assert.Equal(t, "Pending", result.History[4].Date)
	assert.Equal(t, 40, result.Progress)
}

func TestTrackingUseCase_ListOrders(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryOrderRepository(quietLogger())
	uc := NewTrackingUseCase(repo, quietLogger())

	older := &domain.Order{ID: "GB-1000", ClientID: "c1", Status: domain.StatusPlaced, CreatedAt: time.Now().Add(-time.Hour)}
	newer := &domain.Order{ID: "GB-2000", ClientID: "c1", Status: domain.StatusPlaced, CreatedAt: time.Now()}
	require.NoError(t, repo.CreateOrder(ctx, older))
	require.NoError(t, repo.CreateOrder(ctx, newer))

	orders, err := uc.ListOrders(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, "GB-2000", orders[0].ID)
}
