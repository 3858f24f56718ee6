package delivery

import (
	"github.com/gabinork/Gabi-Nork-Tech-2/internal/domain"
	"github.com/gabinork/Gabi-Nork-Tech-2/pkg/money"
)

type productView struct {
	domain.Product
	PriceDisplay string `json:"price_display"`
}

func toProductView(p domain.Product) productView {
	return productView{Product: p, PriceDisplay: money.FormatNGN(p.Price)}
}

func toProductViews(products []domain.Product) []productView {
	out := make([]productView, 0, len(products))
	for _, p := range products {
		out = append(out, toProductView(p))
	}
	return out
}

type lineItemView struct {
	Product          productView `json:"product"`
	Quantity         int         `json:"quantity"`
	LineTotal        int64       `json:"line_total"`
	LineTotalDisplay string      `json:"line_total_display"`
}

type cartView struct {
	Items         []lineItemView `json:"items"`
	IsOpen        bool           `json:"is_open"`
	ItemCount     int            `json:"item_count"`
	DistinctItems int            `json:"distinct_items"`
	Amount        int64          `json:"amount"`
	AmountDisplay string         `json:"amount_display"`
}

func toCartView(cart domain.Cart) cartView {
	totals := cart.Totals()
	view := cartView{
		Items:         make([]lineItemView, 0, len(cart.Items)),
		IsOpen:        cart.IsOpen,
		ItemCount:     totals.ItemCount,
		DistinctItems: totals.DistinctItems,
		Amount:        totals.Amount,
		AmountDisplay: money.FormatNGN(totals.Amount),
	}
	for _, item := range cart.Items {
		lineTotal := item.Product.Price * int64(item.Quantity)
		view.Items = append(view.Items, lineItemView{
			Product:          toProductView(item.Product),
			Quantity:         item.Quantity,
			LineTotal:        lineTotal,
			LineTotalDisplay: money.FormatNGN(lineTotal),
		})
	}
	return view
}

type orderView struct {
	domain.Order
	TotalDisplay string `json:"total_display"`
}

func toOrderView(order domain.Order) orderView {
	return orderView{Order: order, TotalDisplay: money.FormatNGN(order.Total)}
}
