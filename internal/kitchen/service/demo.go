package service

import (
	"time"

	"radhecafe/internal/domain"
)

// DemoOrders is the fixed dataset the dashboard falls back to when the
// database is unreachable, aged relative to now so the urgency flag still
// demonstrates itself.
func DemoOrders(now time.Time) []OrderView {
	table5 := "5"
	table3 := "3"

	orders := []OrderView{
		{
			Order: domain.Order{
				ID:            "demo-1",
				OrderNumber:   "ORD-234567",
				CustomerName:  "Rahul Sharma",
				Phone:         "+91 98765 43210",
				Fulfillment:   domain.FulfillmentDineIn,
				TableNumber:   &table5,
				PaymentMethod: domain.PaymentMethodCash,
				PaymentStatus: domain.PaymentStatusUnpaid,
				Status:        domain.OrderStatusPending,
				Subtotal:      210,
				Total:         210,
				CreatedAt:     now.Add(-5 * time.Minute),
			},
			Items: []domain.OrderLine{
				{OrderID: "demo-1", ItemName: "Masala Chai", Quantity: 2, Price: 30},
				{OrderID: "demo-1", ItemName: "Paneer Tikka", Quantity: 1, Price: 120},
				{OrderID: "demo-1", ItemName: "Samosa", Quantity: 1, Price: 20},
			},
		},
		{
			Order: domain.Order{
				ID:            "demo-2",
				OrderNumber:   "ORD-234568",
				CustomerName:  "Priya Patel",
				Phone:         "+91 87654 32109",
				Fulfillment:   domain.FulfillmentTakeaway,
				PaymentMethod: domain.PaymentMethodCash,
				PaymentStatus: domain.PaymentStatusUnpaid,
				Status:        domain.OrderStatusPreparing,
				Subtotal:      320,
				Total:         320,
				CreatedAt:     now.Add(-12 * time.Minute),
			},
			Items: []domain.OrderLine{
				{OrderID: "demo-2", ItemName: "Chole Bhature", Quantity: 2, Price: 100},
				{OrderID: "demo-2", ItemName: "Mango Lassi", Quantity: 2, Price: 60},
			},
		},
		{
			Order: domain.Order{
				ID:            "demo-3",
				OrderNumber:   "ORD-234569",
				CustomerName:  "Amit Verma",
				Phone:         "+91 76543 21098",
				Fulfillment:   domain.FulfillmentDineIn,
				TableNumber:   &table3,
				PaymentMethod: domain.PaymentMethodCash,
				PaymentStatus: domain.PaymentStatusUnpaid,
				Status:        domain.OrderStatusReady,
				Subtotal:      190,
				Total:         190,
				CreatedAt:     now.Add(-20 * time.Minute),
			},
			Items: []domain.OrderLine{
				{OrderID: "demo-3", ItemName: "Veg Biryani", Quantity: 1, Price: 140},
				{OrderID: "demo-3", ItemName: "Gulab Jamun", Quantity: 1, Price: 50},
			},
		},
	}

	for i := range orders {
		orders[i].Urgent = orders[i].UrgentAt(now, 15*time.Minute)
	}
	return orders
}
