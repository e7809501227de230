package websocket

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var badgeUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// BadgeSocketHandler upgrades the connection and streams badge awards to
// the client until it disconnects.
func BadgeSocketHandler(c *gin.Context) {
	uid := c.GetString("uid")
	if uid == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	conn, err := badgeUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("Failed to upgrade badge websocket: %v", err)
		return
	}

	client := &BadgeClient{Conn: conn, UserID: uid}
	RegisterBadgeClient(client)

	// Drain reads to notice the close frame; events flow one way.
	go func() {
		defer UnregisterBadgeClient(client)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
