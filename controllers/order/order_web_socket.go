package orderControllers

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/PbxInder84/carzone-sub001/models"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// wsMu guards wsClients and serializes writes to each connection;
// gorilla conns do not support concurrent writers.
var (
	wsMu      sync.Mutex
	wsClients = make(map[*websocket.Conn]bool)
)

func registerWSClient(conn *websocket.Conn) {
	wsMu.Lock()
	wsClients[conn] = true
	wsMu.Unlock()
}

func unregisterWSClient(conn *websocket.Conn) {
	wsMu.Lock()
	delete(wsClients, conn)
	wsMu.Unlock()
}

type orderEvent struct {
	Event string       `json:"event"`
	Order models.Order `json:"order"`
}

// OrderWebSocketHandler streams placed orders and status changes to
// connected dashboard clients.
func OrderWebSocketHandler(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	defer conn.Close()
	registerWSClient(conn)

	for {
		_, _, err := conn.ReadMessage()
		if err != nil {
			unregisterWSClient(conn)
			break
		}
	}
}

func broadcast(ev orderEvent) {
	data, err := json.Marshal(ev)
	if err != nil {
		return
	}
	wsMu.Lock()
	defer wsMu.Unlock()
	for client := range wsClients {
		if err := client.WriteMessage(websocket.TextMessage, data); err != nil {
			client.Close()
			delete(wsClients, client)
		}
	}
}

func broadcastNewOrder(order models.Order) {
	broadcast(orderEvent{Event: "order_placed", Order: order})
}

func broadcastOrderUpdate(order models.Order) {
	broadcast(orderEvent{Event: "order_updated", Order: order})
}
