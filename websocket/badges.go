package websocket

import (
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// BadgeClient represents a client connected for badge award updates
type BadgeClient struct {
	Conn    *websocket.Conn
	UserID  string
	writeMu sync.Mutex
}

// BadgeEvent is the payload pushed to clients when a badge is awarded.
type BadgeEvent struct {
	Type      string    `json:"type"`
	UserID    string    `json:"userId"`
	BadgeID   string    `json:"badgeId"`
	BadgeName string    `json:"badgeName"`
	Timestamp time.Time `json:"timestamp"`
}

// SafeWriteJSON safely writes JSON data to the client's WebSocket connection
func (bc *BadgeClient) SafeWriteJSON(v interface{}) error {
	bc.writeMu.Lock()
	defer bc.writeMu.Unlock()
	return bc.Conn.WriteJSON(v)
}

// Global badge hub for broadcasting awards to all connected clients
var (
	badgeClients = make(map[*BadgeClient]bool)
	badgeMutex   sync.RWMutex
)

// RegisterBadgeClient registers a client for badge updates
func RegisterBadgeClient(client *BadgeClient) {
	badgeMutex.Lock()
	defer badgeMutex.Unlock()
	badgeClients[client] = true
	log.Printf("Badge client registered. Total clients: %d", len(badgeClients))
}

// UnregisterBadgeClient removes a client from badge updates
func UnregisterBadgeClient(client *BadgeClient) {
	badgeMutex.Lock()
	defer badgeMutex.Unlock()
	delete(badgeClients, client)
	client.Conn.Close()
	log.Printf("Badge client unregistered. Total clients: %d", len(badgeClients))
}

// BroadcastBadgeEvent broadcasts a badge award to all connected clients
func BroadcastBadgeEvent(event BadgeEvent) {
	badgeMutex.RLock()
	defer badgeMutex.RUnlock()

	for client := range badgeClients {
		if err := client.SafeWriteJSON(event); err != nil {
			log.Printf("Error broadcasting badge event to client: %v", err)
			// Remove client if write fails
			go UnregisterBadgeClient(client)
		}
	}
}

// GetBadgeClientsCount returns the number of connected badge clients
func GetBadgeClientsCount() int {
	badgeMutex.RLock()
	defer badgeMutex.RUnlock()
	return len(badgeClients)
}
