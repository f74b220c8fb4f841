package dto

import (
	"time"

	"radhecafe/internal/domain"
)

// Wire representations. Field names follow the storage columns so the JSON
// payloads stay stable across schema work.

type CategoryDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	SortOrder int    `json:"sort_order"`
}

type MenuItemDTO struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	Price          float64   `json:"price"`
	CategoryID     *string   `json:"category_id"`
	IsAvailable    bool      `json:"is_available"`
	IsDailySpecial bool      `json:"is_daily_special"`
	CreatedAt      time.Time `json:"created_at"`
}

type MenuResponse struct {
	Categories []CategoryDTO `json:"categories"`
	Items      []MenuItemDTO `json:"items"`
}

type CategoryRequest struct {
	Name      string `json:"name"`
	SortOrder int    `json:"sort_order"`
}

type MenuItemRequest struct {
	Name           string  `json:"name"`
	Description    string  `json:"description"`
	Price          float64 `json:"price"`
	CategoryID     string  `json:"category_id"`
	IsAvailable    bool    `json:"is_available"`
	IsDailySpecial bool    `json:"is_daily_special"`
}

type ItemFlagRequest struct {
	Flag  string `json:"flag"`
	Value bool   `json:"value"`
}

type CartLineDTO struct {
	ItemID   string  `json:"item_id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

type CartResponse struct {
	Items      []CartLineDTO `json:"items"`
	TotalItems int           `json:"total_items"`
	Subtotal   float64       `json:"subtotal"`
	Tax        float64       `json:"tax"`
	Total      float64       `json:"total"`
}

type AddCartItemRequest struct {
	ItemID string `json:"item_id"`
}

type ReviewRequest struct {
	Fulfillment string `json:"fulfillment"`
	TableNumber string `json:"table_number"`
}

type PlaceOrderRequest struct {
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	PaymentMethod string `json:"payment_method"`
}

type OrderDTO struct {
	ID            string    `json:"id"`
	OrderNumber   string    `json:"order_number"`
	CustomerName  string    `json:"customer_name"`
	Phone         string    `json:"phone"`
	Fulfillment   string    `json:"fulfillment"`
	TableNumber   *string   `json:"table_number"`
	PaymentMethod string    `json:"payment_method"`
	PaymentStatus string    `json:"payment_status"`
	Status        string    `json:"status"`
	Subtotal      float64   `json:"subtotal"`
	Tax           float64   `json:"tax"`
	Total         float64   `json:"total"`
	CreatedAt     time.Time `json:"created_at"`
}

type OrderLineDTO struct {
	MenuItemID string  `json:"menu_item_id"`
	ItemName   string  `json:"item_name"`
	Quantity   int     `json:"quantity"`
	Price      float64 `json:"price"`
}

type KitchenOrderDTO struct {
	OrderDTO
	Items  []OrderLineDTO `json:"items"`
	Urgent bool           `json:"urgent"`
}

type StatusCountsDTO struct {
	All       int `json:"all"`
	Pending   int `json:"pending"`
	Preparing int `json:"preparing"`
	Ready     int `json:"ready"`
	Completed int `json:"completed"`
}

type KitchenOrdersResponse struct {
	Orders []KitchenOrderDTO `json:"orders"`
	Counts StatusCountsDTO   `json:"counts"`
}

type StatusUpdateRequest struct {
	Status string `json:"status"`
}

type StatusUpdateResponse struct {
	OrderID string `json:"order_id"`
	Status  string `json:"status"`
}

type ReportOrderDTO struct {
	OrderDTO
	Items []OrderLineDTO `json:"items"`
}

type ReportSummaryDTO struct {
	TotalOrders  int     `json:"total_orders"`
	TotalRevenue float64 `json:"total_revenue"`
	CashOrders   int     `json:"cash_orders"`
	OnlineOrders int     `json:"online_orders"`
	PaidOrders   int     `json:"paid_orders"`
}

type DailyReportResponse struct {
	Date    string           `json:"date"`
	Summary ReportSummaryDTO `json:"summary"`
	Orders  []ReportOrderDTO `json:"orders"`
}

type PaymentToggleResponse struct {
	OrderID       string `json:"order_id"`
	PaymentStatus string `json:"payment_status"`
}

func FromCategory(c domain.Category) CategoryDTO {
	return CategoryDTO{ID: c.ID, Name: c.Name, SortOrder: c.SortOrder}
}

func FromCategories(categories []domain.Category) []CategoryDTO {
	out := make([]CategoryDTO, len(categories))
	for i, c := range categories {
		out[i] = FromCategory(c)
	}
	return out
}

func FromMenuItem(item domain.MenuItem) MenuItemDTO {
	return MenuItemDTO{
		ID:             item.ID,
		Name:           item.Name,
		Description:    item.Description,
		Price:          item.Price,
		CategoryID:     item.CategoryID,
		IsAvailable:    item.IsAvailable,
		IsDailySpecial: item.IsDailySpecial,
		CreatedAt:      item.CreatedAt,
	}
}

func FromMenuItems(items []domain.MenuItem) []MenuItemDTO {
	out := make([]MenuItemDTO, len(items))
	for i, item := range items {
		out[i] = FromMenuItem(item)
	}
	return out
}

func FromOrder(o domain.Order) OrderDTO {
	return OrderDTO{
		ID:            o.ID,
		OrderNumber:   o.OrderNumber,
		CustomerName:  o.CustomerName,
		Phone:         o.Phone,
		Fulfillment:   string(o.Fulfillment),
		TableNumber:   o.TableNumber,
		PaymentMethod: o.PaymentMethod,
		PaymentStatus: o.PaymentStatus,
		Status:        string(o.Status),
		Subtotal:      o.Subtotal,
		Tax:           o.Tax,
		Total:         o.Total,
		CreatedAt:     o.CreatedAt,
	}
}

func FromOrderLines(lines []domain.OrderLine) []OrderLineDTO {
	out := make([]OrderLineDTO, len(lines))
	for i, line := range lines {
		out[i] = OrderLineDTO{
			MenuItemID: line.MenuItemID,
			ItemName:   line.ItemName,
			Quantity:   line.Quantity,
			Price:      line.Price,
		}
	}
	return out
}
