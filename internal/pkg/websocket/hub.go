package websocket

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Hub maintains the set of active clients and routes notification pushes
// to the recipients they belong to
type Hub struct {
	// Registered clients organized by recipient ID
	clients map[int64]map[*Client]bool

	// Channel for outbound notification pushes
	publish chan *Message

	// Register requests from the clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	// Mutex for concurrent access to clients map
	mu sync.RWMutex

	// Mutex for in-process subscriptions
	subsMu sync.RWMutex

	// In-process subscriptions organized by recipient ID
	subscriptions map[int64]map[*Subscription]bool

	// Logger for Hub operations
	logger zerolog.Logger
}

// Message is the wire form of a notification push
type Message struct {
	// Notification ID from the database
	ID int64 `json:"id"`

	// Recipient this notification is addressed to
	RecipientID int64 `json:"recipientId"`

	// Notification text
	Message string `json:"message"`

	// Notification type: "EVENT", "GENERAL", "ALERT"
	Type string `json:"type"`

	// Timestamp when the notification was created
	Timestamp time.Time `json:"timestamp"`
}

// Subscription is a cancellable in-process feed of one recipient's pushes.
// Deliveries are best-effort: a full channel drops the push rather than
// blocking the hub, and nothing sent before Subscribe is replayed.
type Subscription struct {
	// C receives the recipient's pushes
	C chan *Message

	hub         *Hub
	recipientID int64
	closeOnce   sync.Once
}

// Close cancels the subscription and releases its channel. Safe to call
// more than once.
func (s *Subscription) Close() {
	s.closeOnce.Do(func() {
		s.hub.removeSubscription(s)
	})
}

// NewHub creates a new Hub instance
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		publish:       make(chan *Message),
		register:      make(chan *Client),
		unregister:    make(chan *Client),
		clients:       make(map[int64]map[*Client]bool),
		subscriptions: make(map[int64]map[*Subscription]bool),
		logger:        logger,
	}
}

// Run starts the hub, handling client registrations and pushes
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case message := <-h.publish:
			h.pushMessage(message)
		}
	}
}

// registerClient registers a new client to the hub
func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	recipientID := client.recipientID
	if _, ok := h.clients[recipientID]; !ok {
		h.clients[recipientID] = make(map[*Client]bool)
	}
	h.clients[recipientID][client] = true

	h.logger.Info().
		Int64("recipientID", recipientID).
		Str("addr", client.conn.RemoteAddr().String()).
		Msg("Client registered")
}

// unregisterClient unregisters a client from the hub
func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	recipientID := client.recipientID
	if _, ok := h.clients[recipientID]; ok {
		if _, ok := h.clients[recipientID][client]; ok {
			delete(h.clients[recipientID], client)
			close(client.send)

			// If no more clients for this recipient, clean up
			if len(h.clients[recipientID]) == 0 {
				delete(h.clients, recipientID)
			}

			h.logger.Info().
				Int64("recipientID", recipientID).
				Str("addr", client.conn.RemoteAddr().String()).
				Msg("Client unregistered")
		}
	}
}

// pushMessage delivers a push to all clients and subscriptions of one recipient
func (h *Hub) pushMessage(message *Message) {
	// First, deliver to in-process subscriptions
	h.notifySubscriptions(message)

	// Then push to connected clients
	h.mu.RLock()

	recipientID := message.RecipientID
	clients, ok := h.clients[recipientID]
	if !ok {
		h.mu.RUnlock()
		h.logger.Debug().
			Int64("recipientID", recipientID).
			Msg("No connected clients for push")
		return
	}

	// Serialize message to JSON
	data, err := json.Marshal(message)
	if err != nil {
		h.mu.RUnlock()
		h.logger.Error().
			Err(err).
			Int64("recipientID", recipientID).
			Msg("Failed to marshal message for push")
		return
	}

	// Send to all of the recipient's clients. Slow clients are collected,
	// not signalled through h.unregister: pushMessage runs on the same
	// goroutine that drains that channel, so sending on it would wedge the
	// hub and block every later Publish.
	var slow []*Client
	for client := range clients {
		select {
		case client.send <- data:
			// Message sent successfully
		default:
			// Client's send buffer is full, they might be slow or disconnected
			slow = append(slow, client)
		}
	}
	clientCount := len(clients)
	h.mu.RUnlock()

	for _, client := range slow {
		h.unregisterClient(client)
	}

	h.logger.Debug().
		Int64("recipientID", recipientID).
		Int("clientCount", clientCount).
		Msg("Notification pushed to recipient")
}

// notifySubscriptions delivers a push to the recipient's in-process subscriptions
func (h *Hub) notifySubscriptions(message *Message) {
	h.subsMu.RLock()
	defer h.subsMu.RUnlock()

	subs, ok := h.subscriptions[message.RecipientID]
	if !ok {
		return
	}

	for sub := range subs {
		// Use non-blocking send to avoid blocking on slow subscribers
		select {
		case sub.C <- message:
			// Message sent successfully
		default:
			// Subscriber's channel is full or slow, skip it
			h.logger.Warn().
				Int64("recipientID", message.RecipientID).
				Msg("Skipped slow subscription")
		}
	}
}

// Publish sends a push to everything listening for one recipient
func (h *Hub) Publish(message *Message) {
	h.publish <- message
}

// Subscribe opens an in-process subscription for a recipient's pushes.
// The caller must Close the subscription when done.
func (h *Hub) Subscribe(recipientID int64, buffer int) *Subscription {
	sub := &Subscription{
		C:           make(chan *Message, buffer),
		hub:         h,
		recipientID: recipientID,
	}

	h.subsMu.Lock()
	defer h.subsMu.Unlock()

	if _, ok := h.subscriptions[recipientID]; !ok {
		h.subscriptions[recipientID] = make(map[*Subscription]bool)
	}
	h.subscriptions[recipientID][sub] = true

	h.logger.Debug().
		Int64("recipientID", recipientID).
		Msg("Subscription opened")

	return sub
}

// removeSubscription detaches a subscription and closes its channel
func (h *Hub) removeSubscription(sub *Subscription) {
	h.subsMu.Lock()
	defer h.subsMu.Unlock()

	if subs, ok := h.subscriptions[sub.recipientID]; ok {
		if _, ok := subs[sub]; ok {
			delete(subs, sub)
			close(sub.C)

			if len(subs) == 0 {
				delete(h.subscriptions, sub.recipientID)
			}

			h.logger.Debug().
				Int64("recipientID", sub.recipientID).
				Msg("Subscription closed")
		}
	}
}

// GetClientsCount returns the number of connected clients for a recipient
func (h *Hub) GetClientsCount(recipientID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if clients, ok := h.clients[recipientID]; ok {
		return len(clients)
	}
	return 0
}
