package handler

import (
	"context"
	"log"
	"sync"

	"shop_manager/database"

	"github.com/gofiber/contrib/websocket"
)

var (
	adminClients = make(map[*websocket.Conn]bool)
	adminMu      sync.Mutex
)

// AdminOrderFeed đẩy sự kiện đơn hàng (đặt mới, verify, reject...) xuống
// dashboard admin qua websocket, nguồn là kênh redis orders:events.
func AdminOrderFeed(c *websocket.Conn) {
	// Khi WS disconnect → xoá client
	defer func() {
		adminMu.Lock()
		delete(adminClients, c)
		adminMu.Unlock()
		c.Close()
	}()

	adminMu.Lock()
	adminClients[c] = true
	adminMu.Unlock()

	if database.Redis == nil {
		log.Println("Redis chưa kết nối, live feed không hoạt động")
		return
	}

	// Sub kênh Redis
	pubsub := database.Redis.Subscribe(context.Background(), database.OrderEventsChannel)
	defer pubsub.Close()

	// Lắng nghe message từ Redis
	channel := pubsub.Channel()

	for msg := range channel {
		payload := []byte(msg.Payload)

		adminMu.Lock()
		for client := range adminClients {
			if err := client.WriteMessage(websocket.TextMessage, payload); err != nil {
				delete(adminClients, client)
				client.Close()
			}
		}
		adminMu.Unlock()
	}
}
