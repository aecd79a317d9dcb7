package helper

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"shop_manager/database"
)

type OrderEvent struct {
	OrderCode string    `json:"orderCode"`
	Rail      string    `json:"rail"`
	Event     string    `json:"event"`
	Score     *int      `json:"score,omitempty"`
	At        time.Time `json:"at"`
}

// PublishOrderEvent đẩy sự kiện đơn hàng lên kênh redis cho dashboard admin.
// Best-effort: redis chết thì chỉ log, không bao giờ chặn luồng verify.
func PublishOrderEvent(orderCode, rail, event string, score *int) {
	if database.Redis == nil {
		return
	}

	payload, err := json.Marshal(OrderEvent{
		OrderCode: orderCode,
		Rail:      rail,
		Event:     event,
		Score:     score,
		At:        time.Now(),
	})
	if err != nil {
		log.Printf("Lỗi marshal sự kiện đơn %s: %v", orderCode, err)
		return
	}

	go func() {
		if err := database.Redis.Publish(context.Background(), database.OrderEventsChannel, payload).Err(); err != nil {
			log.Printf("Lỗi publish sự kiện đơn %s: %v", orderCode, err)
		}
	}()
}
