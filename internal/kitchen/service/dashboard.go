package service

import (
	"context"

	"go.uber.org/zap"

	"radhecafe/internal/realtime"
)

// Snapshot is one full refresh of the dashboard.
type Snapshot struct {
	Orders []OrderView  `json:"orders"`
	Counts StatusCounts `json:"counts"`
}

// Dashboard keeps a staff client in sync: it subscribes to order change
// events and re-fetches the complete order list on every one of them instead
// of patching incrementally. Wasteful, but always correct when several staff
// sessions edit concurrently.
type Dashboard struct {
	svc    *KitchenService
	hub    *realtime.Hub
	logger *zap.Logger
}

func NewDashboard(svc *KitchenService, hub *realtime.Hub, logger *zap.Logger) *Dashboard {
	return &Dashboard{svc: svc, hub: hub, logger: logger}
}

// Stream emits an initial snapshot and then one per change event, until ctx
// is cancelled. The subscription is released when the stream ends.
func (d *Dashboard) Stream(ctx context.Context) <-chan Snapshot {
	out := make(chan Snapshot, 1)
	sub := d.hub.Subscribe(realtime.TableOrders, "")

	go func() {
		defer close(out)
		defer sub.Close()

		push := func() bool {
			views, err := d.svc.FetchOrders(ctx)
			if err != nil {
				d.logger.Warn("refreshing dashboard", zap.Error(err))
				return true
			}
			select {
			case out <- Snapshot{Orders: views, Counts: Counts(views)}:
				return true
			case <-ctx.Done():
				return false
			}
		}

		if !push() {
			return
		}
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-sub.C:
				if !ok {
					return
				}
				if !push() {
					return
				}
			}
		}
	}()

	return out
}
