package main

import (
	"log"

	"shop_manager/database"
	"shop_manager/helper"
	"shop_manager/router"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	app := fiber.New(fiber.Config{})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     "http://localhost:5173/",
		AllowMethods:     "GET,POST,PUT,DELETE,PATCH,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Authorization, Accept, X-Cron-Secret",
		AllowCredentials: true,
		ExposeHeaders:    "Set-Cookie",
		MaxAge:           600,
	}))

	database.ConnectDB()
	database.ConnectRedis()
	database.SeedData(database.DB)

	helper.StartReconcileScheduler(database.DB)
	defer helper.StopReconcileScheduler()
	helper.StartExpireScheduler()
	defer helper.StopExpireScheduler()

	router.SetupRoutes(app)
	log.Fatal(app.Listen(":8002"))
}
