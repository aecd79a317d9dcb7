package config

import (
	"log"
	"os"
	"strconv"
	"sync"

	"github.com/joho/godotenv"
)

var loadOnce sync.Once

// Config đọc biến môi trường, tự load file .env lần đầu
func Config(key string) string {
	loadOnce.Do(func() {
		if err := godotenv.Load(); err != nil {
			log.Println("⚠️ Không tìm thấy file .env, dùng biến môi trường hệ thống...")
		}
	})
	return os.Getenv(key)
}

// ConfigFloat đọc biến môi trường dạng số, trả về fallback nếu thiếu hoặc sai định dạng
func ConfigFloat(key string, fallback float64) float64 {
	raw := Config(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		log.Printf("⚠️ Biến %s không hợp lệ (%q), dùng mặc định %v", key, raw, fallback)
		return fallback
	}
	return v
}

func ConfigInt(key string, fallback int) int {
	raw := Config(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("⚠️ Biến %s không hợp lệ (%q), dùng mặc định %v", key, raw, fallback)
		return fallback
	}
	return v
}
