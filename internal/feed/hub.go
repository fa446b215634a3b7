package feed

import (
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
)

// Hub fans resource change events out to every connected watcher. Run owns
// the watcher set; all joins, leaves and publishes go through its channels.
type Hub struct {
	watchers map[*Watcher]bool
	Join     chan *Watcher
	Leave    chan *Watcher
	Events   chan Event
}

func New() *Hub {
	return &Hub{
		watchers: make(map[*Watcher]bool),
		Join:     make(chan *Watcher),
		Leave:    make(chan *Watcher),
		Events:   make(chan Event, 64),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case watcher := <-h.Join:
			h.watchers[watcher] = true
		case watcher := <-h.Leave:
			if _, ok := h.watchers[watcher]; ok {
				delete(h.watchers, watcher)
				close(watcher.Receive)
			}
		case event := <-h.Events:
			msg, err := json.Marshal(event)
			if err != nil {
				continue
			}
			h.toAllWatchers(msg)
		}
	}
}

// Publish queues a change event without blocking the caller. Events are
// dropped when the hub is saturated; the feed is advisory, not durable.
func (h *Hub) Publish(action Action, resource, id string) {
	event := Event{
		Action:   action,
		Resource: resource,
		ID:       id,
		At:       time.Now().UTC(),
	}

	select {
	case h.Events <- event:
	default:
	}
}

func (h *Hub) JoinWatcher(conn *websocket.Conn) *Watcher {
	watcher := newWatcher(h, conn)
	h.Join <- watcher

	go watcher.WriteEvents()
	go watcher.ReadEvents()

	return watcher
}

func (h *Hub) toAllWatchers(msg []byte) {
	for watcher := range h.watchers {
		select {
		case watcher.Receive <- msg:
		default:
			// Slow watcher; cut it loose rather than stall the hub.
			delete(h.watchers, watcher)
			close(watcher.Receive)
		}
	}
}
