package controllers

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"go-milk-delivery/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

var clients = make(map[*websocket.Conn]bool)
var mu sync.Mutex

// Message is the envelope pushed to dashboard clients.
type Message struct {
	Event   string      `json:"event"`
	Payload interface{} `json:"payload"`
}

// HandleWebSocket keeps an admin dashboard connection open and registered
// until the peer goes away.
func HandleWebSocket() gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Printf("websocket upgrade: %v", err)
			return
		}
		defer conn.Close()

		mu.Lock()
		clients[conn] = true
		mu.Unlock()

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				mu.Lock()
				delete(clients, conn)
				mu.Unlock()
				break
			}
		}
	}
}

func notifyNewOrder(order models.Order) {
	broadcast(Message{Event: "newOrder", Payload: order})
}

func notifyStatusUpdate(orderId string, status *string, paymentStatus *string) {
	broadcast(Message{Event: "statusUpdate", Payload: gin.H{
		"order_id":       orderId,
		"status":         status,
		"payment_status": paymentStatus,
	}})
}

func broadcast(message Message) {
	payload, err := json.Marshal(message)
	if err != nil {
		log.Printf("websocket marshal: %v", err)
		return
	}

	mu.Lock()
	defer mu.Unlock()
	for client := range clients {
		if err := client.WriteMessage(websocket.TextMessage, payload); err != nil {
			client.Close()
			delete(clients, client)
		}
	}
}
