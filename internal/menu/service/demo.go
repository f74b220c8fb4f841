package service

import "radhecafe/internal/domain"

// DemoCategories is the built-in menu shown when the database has no
// categories or cannot be reached while checkout runs in degraded mode.
func DemoCategories() []domain.Category {
	return []domain.Category{
		{ID: "cat-1", Name: "Chai & Beverages", SortOrder: 1},
		{ID: "cat-2", Name: "Snacks", SortOrder: 2},
		{ID: "cat-3", Name: "Main Course", SortOrder: 3},
		{ID: "cat-4", Name: "Desserts", SortOrder: 4},
		{ID: "cat-5", Name: "Cold Drinks", SortOrder: 5},
	}
}

func catRef(id string) *string {
	return &id
}

// DemoItems pairs with DemoCategories. Every item is available so the demo
// menu is fully orderable.
func DemoItems() []domain.MenuItem {
	return []domain.MenuItem{
		{ID: "1", Name: "Masala Chai", Description: "Rich aromatic tea with traditional Indian spices", Price: 30, CategoryID: catRef("cat-1"), IsAvailable: true},
		{ID: "2", Name: "Adrak Chai", Description: "Fresh ginger-infused tea, perfect for rainy days", Price: 35, CategoryID: catRef("cat-1"), IsAvailable: true},
		{ID: "3", Name: "Filter Coffee", Description: "South Indian style strong filter coffee", Price: 40, CategoryID: catRef("cat-1"), IsAvailable: true},
		{ID: "4", Name: "Samosa", Description: "Crispy golden pastry filled with spiced potatoes", Price: 20, CategoryID: catRef("cat-2"), IsAvailable: true, IsDailySpecial: true},
		{ID: "5", Name: "Vada Pav", Description: "Mumbai style spiced potato fritter in soft bun", Price: 30, CategoryID: catRef("cat-2"), IsAvailable: true},
		{ID: "6", Name: "Bread Pakora", Description: "Crispy gram flour coated bread with mint chutney", Price: 35, CategoryID: catRef("cat-2"), IsAvailable: true},
		{ID: "7", Name: "Paneer Tikka", Description: "Grilled cottage cheese with bell peppers, spices", Price: 120, CategoryID: catRef("cat-2"), IsAvailable: true},
		{ID: "8", Name: "Pav Bhaji", Description: "Spiced mashed vegetables with buttered pav bread", Price: 80, CategoryID: catRef("cat-2"), IsAvailable: true},
		{ID: "9", Name: "Chole Bhature", Description: "Spicy chickpea curry with fluffy fried bread", Price: 100, CategoryID: catRef("cat-3"), IsAvailable: true},
		{ID: "10", Name: "Paneer Butter Masala", Description: "Creamy tomato gravy with soft paneer cubes", Price: 150, CategoryID: catRef("cat-3"), IsAvailable: true},
		{ID: "11", Name: "Veg Biryani", Description: "Fragrant basmati rice with mixed vegetables", Price: 140, CategoryID: catRef("cat-3"), IsAvailable: true, IsDailySpecial: true},
		{ID: "12", Name: "Gulab Jamun", Description: "Soft milk dumplings soaked in rose-cardamom syrup", Price: 50, CategoryID: catRef("cat-4"), IsAvailable: true},
		{ID: "13", Name: "Kulfi", Description: "Traditional Indian frozen dessert with pistachios", Price: 60, CategoryID: catRef("cat-4"), IsAvailable: true},
		{ID: "14", Name: "Mango Lassi", Description: "Thick creamy yogurt smoothie with fresh mango", Price: 60, CategoryID: catRef("cat-5"), IsAvailable: true},
		{ID: "15", Name: "Cold Coffee", Description: "Iced coffee blended with vanilla ice cream", Price: 70, CategoryID: catRef("cat-5"), IsAvailable: true},
		{ID: "16", Name: "Fresh Lime Soda", Description: "Refreshing citrus soda, sweet or salty", Price: 40, CategoryID: catRef("cat-5"), IsAvailable: true},
	}
}

func findDemoItem(id string) (*domain.MenuItem, bool) {
	for _, item := range DemoItems() {
		if item.ID == id {
			return &item, true
		}
	}
	return nil, false
}
