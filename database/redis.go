package database

import (
	"context"
	"log"

	"shop_manager/config"

	"github.com/redis/go-redis/v9"
)

// Kênh sự kiện đơn hàng cho dashboard admin
const OrderEventsChannel = "orders:events"

var Redis *redis.Client

func ConnectRedis() {
	addr := config.Config("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	Redis = redis.NewClient(&redis.Options{Addr: addr})

	if err := Redis.Ping(context.Background()).Err(); err != nil {
		// Redis chỉ phục vụ khoá cron + live feed, chết vẫn chạy tiếp được
		log.Printf("⚠️ Không kết nối được redis (%s), khoá cron và live feed sẽ tắt: %v", addr, err)
	} else {
		log.Println("✅ Đã kết nối redis:", addr)
	}
}
