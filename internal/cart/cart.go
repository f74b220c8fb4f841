package cart

import (
	"sync"

	"radhecafe/internal/domain"
)

// Line is one menu item in the cart with its selected quantity. A cart holds
// at most one line per menu item id, and a line's quantity is always positive.
type Line struct {
	Item     domain.MenuItem
	Quantity int
}

// Cart is the in-memory order-in-progress for one customer session. It holds
// no network state and none of its operations can fail. Handlers run on
// separate goroutines, so all access goes through the mutex.
type Cart struct {
	mu    sync.Mutex
	lines []*Line
	index map[string]*Line
}

func New() *Cart {
	return &Cart{index: make(map[string]*Line)}
}

// AddItem increments the quantity for item, inserting a new line at quantity 1
// if the item is not in the cart yet.
func (c *Cart) AddItem(item domain.MenuItem) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if line, ok := c.index[item.ID]; ok {
		line.Quantity++
		return
	}
	line := &Line{Item: item, Quantity: 1}
	c.lines = append(c.lines, line)
	c.index[item.ID] = line
}

// RemoveItem decrements the quantity for itemID, dropping the line entirely
// when the quantity would reach zero. Removing an absent item is a no-op.
func (c *Cart) RemoveItem(itemID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	line, ok := c.index[itemID]
	if !ok {
		return
	}
	if line.Quantity > 1 {
		line.Quantity--
		return
	}
	delete(c.index, itemID)
	for i, l := range c.lines {
		if l == line {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			break
		}
	}
}

// Clear empties the cart. Called after order submission on both the persisted
// and the local-fallback path.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lines = nil
	c.index = make(map[string]*Line)
}

func (c *Cart) ItemQuantity(itemID string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	if line, ok := c.index[itemID]; ok {
		return line.Quantity
	}
	return 0
}

func (c *Cart) TotalItems() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := 0
	for _, line := range c.lines {
		total += line.Quantity
	}
	return total
}

func (c *Cart) Subtotal() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	sum := 0.0
	for _, line := range c.lines {
		sum += line.Item.Price * float64(line.Quantity)
	}
	return sum
}

// Tax is fixed at zero: tax computation is intentionally disabled.
func (c *Cart) Tax() float64 {
	return 0
}

func (c *Cart) Total() float64 {
	return c.Subtotal()
}

// Lines returns copies of the cart lines in insertion order.
func (c *Cart) Lines() []Line {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Line, 0, len(c.lines))
	for _, line := range c.lines {
		out = append(out, *line)
	}
	return out
}

func (c *Cart) Empty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.lines) == 0
}
