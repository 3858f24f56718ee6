package domain

type LineItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

type CartTotals struct {
	ItemCount     int   `json:"item_count"`
	DistinctItems int   `json:"distinct_items"`
	Amount        int64 `json:"amount"`
}

// Cart keeps at most one line per product id, in insertion order. Totals are
// derived on demand and never stored.
type Cart struct {
	Items  []LineItem `json:"items"`
	IsOpen bool       `json:"is_open"`
}

func (c *Cart) indexOf(productID string) int {
	for i := range c.Items {
		if c.Items[i].Product.ID == productID {
			return i
		}
	}
	return -1
}

func (c *Cart) Add(product Product, openCart bool) {
	if i := c.indexOf(product.ID); i >= 0 {
		c.Items[i].Quantity++
	} else {
		c.Items = append(c.Items, LineItem{Product: product, Quantity: 1})
	}
	if openCart {
		c.IsOpen = true
	}
}

func (c *Cart) Remove(productID string) {
	i := c.indexOf(productID)
	if i < 0 {
		return
	}
	c.Items = append(c.Items[:i], c.Items[i+1:]...)
}

// UpdateQuantity sets the quantity exactly; zero or less removes the line.
func (c *Cart) UpdateQuantity(productID string, quantity int) {
	if quantity <= 0 {
		c.Remove(productID)
		return
	}
	if i := c.indexOf(productID); i >= 0 {
		c.Items[i].Quantity = quantity
	}
}

func (c *Cart) Clear() {
	c.Items = nil
}

// Deduct takes the given lines out of the cart, lowering each matching line by
// the quantity taken. Lines added since the snapshot was taken stay put.
func (c *Cart) Deduct(lines []LineItem) {
	for _, line := range lines {
		i := c.indexOf(line.Product.ID)
		if i < 0 {
			continue
		}
		c.UpdateQuantity(line.Product.ID, c.Items[i].Quantity-line.Quantity)
	}
}

func (c *Cart) Toggle() { c.IsOpen = !c.IsOpen }
func (c *Cart) Open()   { c.IsOpen = true }
func (c *Cart) Close()  { c.IsOpen = false }

func (c Cart) Totals() CartTotals {
	totals := CartTotals{DistinctItems: len(c.Items)}
	for _, item := range c.Items {
		totals.ItemCount += item.Quantity
		totals.Amount += item.Product.Price * int64(item.Quantity)
	}
	return totals
}

func (c Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Snapshot returns a copy that shares no backing array with c.
func (c Cart) Snapshot() Cart {
	items := make([]LineItem, len(c.Items))
	copy(items, c.Items)
	return Cart{Items: items, IsOpen: c.IsOpen}
}

type CartUseCase interface {
	GetCart(clientID string) Cart
	AddItem(clientID string, product Product, openCart bool) Cart
	RemoveItem(clientID, productID string) Cart
	UpdateQuantity(clientID, productID string, quantity int) Cart
	Clear(clientID string) Cart
	Deduct(clientID string, lines []LineItem) Cart
	Toggle(clientID string) Cart
	Open(clientID string) Cart
	Close(clientID string) Cart
}
