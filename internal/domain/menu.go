package domain

import "time"

// Category groups menu items on the customer menu. Deleting a category does
// not cascade to its items; orphaned items simply show no category.
type Category struct {
	ID        string
	Name      string
	SortOrder int
}

type MenuItem struct {
	ID             string
	Name           string
	Description    string
	Price          float64
	CategoryID     *string
	IsAvailable    bool
	IsDailySpecial bool
	CreatedAt      time.Time
}
