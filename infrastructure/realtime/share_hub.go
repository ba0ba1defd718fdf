package realtime

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"linkedin-autoposter/domain/model"
)

// ShareStatusEvent is the SSE payload sent for every recorded publish outcome.
type ShareStatusEvent struct {
	Type       string               `json:"type"`
	ItemID     string               `json:"item_id"`
	Status     string               `json:"status"`
	SkipReason string               `json:"skip_reason,omitempty"`
	Results    []model.TargetResult `json:"results"`
}

// Hub fans share status events out to connected dashboards.
type Hub struct {
	mu   sync.RWMutex
	subs map[chan ShareStatusEvent]struct{}
}

func NewShareHub() *Hub {
	return &Hub{subs: make(map[chan ShareStatusEvent]struct{})}
}

// Serve streams events to an authenticated caller (user_id set by middleware).
func (h *Hub) Serve(c *gin.Context) {
	if c.GetString("user_id") == "" {
		c.Status(http.StatusUnauthorized)
		return
	}
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	ch := make(chan ShareStatusEvent, 8)
	h.add(ch)
	defer h.remove(ch)

	_, _ = c.Writer.Write([]byte(":ok\n\n"))
	c.Writer.Flush()

	for {
		select {
		case <-c.Request.Context().Done():
			return
		case evt := <-ch:
			data, _ := json.Marshal(evt)
			_, _ = c.Writer.Write([]byte("event: share_status\n"))
			_, _ = c.Writer.Write([]byte("data: "))
			_, _ = c.Writer.Write(data)
			_, _ = c.Writer.Write([]byte("\n\n"))
			c.Writer.Flush()
		}
	}
}

func (h *Hub) add(ch chan ShareStatusEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.subs[ch] = struct{}{}
}

func (h *Hub) remove(ch chan ShareStatusEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.subs, ch)
}

func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// Notify never blocks; slow subscribers drop events.
func (h *Hub) Notify(_ context.Context, outcome model.PublishOutcome) error {
	evt := ShareStatusEvent{
		Type:       "share_status",
		ItemID:     outcome.ItemID,
		Status:     outcome.Status,
		SkipReason: outcome.SkipReason,
		Results:    outcome.Results,
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for ch := range h.subs {
		select {
		case ch <- evt:
		default:
		}
	}
	return nil
}
