package router

import (
	"shop_manager/handler"
	"shop_manager/middleware"
	"shop_manager/validate"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func SetupRoutes(app *fiber.App) {
	api := app.Group("/api", logger.New())
	v1 := api.Group("/v1", logger.New())

	order := v1.Group("/order", logger.New())
	order.Post("/", middleware.OptionalJWT(), validate.CreateOrder(), handler.CreateOrder)
	order.Get("/mine", middleware.OptionalJWT(), handler.GetMyOrders)
	order.Get("/:orderCode", handler.GetOrderDetail)

	payment := v1.Group("/payment")
	payment.Post("/bank-transfer/:orderCode/reference", validate.SubmitReference(), handler.SubmitTransactionReference)

	admin := v1.Group("/admin", logger.New())
	admin.Get("/order", middleware.Protected(), handler.GetOrders)
	admin.Patch("/order/:orderCode/status", middleware.Protected(), validate.UpdateOrderStatus(), handler.UpdateOrderStatus)
	admin.Post("/payment/:orderCode/verify", middleware.Protected(), handler.AdminVerifyPayment)
	admin.Post("/payment/:orderCode/reject", middleware.Protected(), validate.RejectPayment(), handler.AdminRejectPayment)

	cron := v1.Group("/cron")
	cron.Post("/reconcile", middleware.CronSecret(), handler.TriggerReconciliation)

	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/admin/orders", websocket.New(handler.AdminOrderFeed))
}
