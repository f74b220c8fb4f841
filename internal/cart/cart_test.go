package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"radhecafe/internal/domain"
)

func menuItem(id, name string, price float64) domain.MenuItem {
	return domain.MenuItem{ID: id, Name: name, Price: price, IsAvailable: true}
}

func TestCart_AddItem(t *testing.T) {
	c := New()
	chai := menuItem("1", "Masala Chai", 30)

	c.AddItem(chai)
	assert.Equal(t, 1, c.ItemQuantity("1"))

	c.AddItem(chai)
	assert.Equal(t, 2, c.ItemQuantity("1"))
	assert.Equal(t, 2, c.TotalItems())
	assert.Len(t, c.Lines(), 1, "one line per menu item id")
}

func TestCart_RemoveItem(t *testing.T) {
	c := New()
	chai := menuItem("1", "Masala Chai", 30)

	c.AddItem(chai)
	c.AddItem(chai)

	c.RemoveItem("1")
	assert.Equal(t, 1, c.ItemQuantity("1"))

	c.RemoveItem("1")
	assert.Equal(t, 0, c.ItemQuantity("1"))
	assert.Empty(t, c.Lines(), "line is dropped when quantity reaches zero")

	// Removing an absent item is a no-op.
	c.RemoveItem("1")
	c.RemoveItem("nope")
	assert.Equal(t, 0, c.TotalItems())
}

func TestCart_AddRemoveRoundTrip(t *testing.T) {
	c := New()
	chai := menuItem("1", "Masala Chai", 30)
	samosa := menuItem("4", "Samosa", 20)

	c.AddItem(chai)
	c.AddItem(samosa)

	before := c.Lines()

	c.AddItem(chai)
	c.RemoveItem(chai.ID)

	assert.Equal(t, before, c.Lines(), "add followed by remove restores prior state")
}

func TestCart_Totals(t *testing.T) {
	c := New()
	chai := menuItem("1", "Masala Chai", 30)
	samosa := menuItem("4", "Samosa", 20)

	c.AddItem(chai)
	c.AddItem(chai)
	c.AddItem(samosa)

	assert.Equal(t, 3, c.TotalItems())
	assert.Equal(t, 80.0, c.Subtotal())
	assert.Equal(t, 0.0, c.Tax(), "tax computation is disabled")
	assert.Equal(t, 80.0, c.Total())
}

func TestCart_TotalsInvariant(t *testing.T) {
	c := New()
	items := []domain.MenuItem{
		menuItem("1", "Masala Chai", 30),
		menuItem("2", "Adrak Chai", 35),
		menuItem("3", "Filter Coffee", 40),
	}

	// An arbitrary interleaving of adds and removes.
	for i := 0; i < 20; i++ {
		c.AddItem(items[i%len(items)])
		if i%3 == 0 {
			c.RemoveItem(items[(i+1)%len(items)].ID)
		}
	}

	sum := 0
	for _, line := range c.Lines() {
		assert.Positive(t, line.Quantity, "no line may have quantity <= 0")
		sum += line.Quantity
	}
	assert.Equal(t, sum, c.TotalItems())
}

func TestCart_Clear(t *testing.T) {
	c := New()
	c.AddItem(menuItem("1", "Masala Chai", 30))
	c.AddItem(menuItem("4", "Samosa", 20))

	c.Clear()

	assert.True(t, c.Empty())
	assert.Equal(t, 0, c.TotalItems())
	assert.Equal(t, 0.0, c.Total())

	// Cart stays usable after clearing.
	c.AddItem(menuItem("1", "Masala Chai", 30))
	assert.Equal(t, 1, c.TotalItems())
}

func TestCart_LinesKeepInsertionOrder(t *testing.T) {
	c := New()
	c.AddItem(menuItem("b", "Samosa", 20))
	c.AddItem(menuItem("a", "Masala Chai", 30))
	c.AddItem(menuItem("b", "Samosa", 20))

	lines := c.Lines()
	assert.Equal(t, "b", lines[0].Item.ID)
	assert.Equal(t, "a", lines[1].Item.ID)
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()

	c1 := r.Get("session-1")
	c2 := r.Get("session-2")
	assert.NotSame(t, c1, c2, "carts are per session")
	assert.Same(t, c1, r.Get("session-1"))

	c1.AddItem(menuItem("1", "Masala Chai", 30))
	r.Reset()
	assert.True(t, r.Get("session-1").Empty())
}
