package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"

	"foodstore/internal/config"
	"foodstore/internal/database"
	"foodstore/internal/handlers"
	"foodstore/internal/middleware"
	"foodstore/internal/payments"
)

func main() {
	config.Load()

	client, err := database.Connect(config.AppEnv.MongoURI)
	if err != nil {
		log.Fatal(err)
	}

	db := client.Database(config.AppEnv.DBName)

	log.Println("MongoDB connected to:", db.Name())

	if err := database.EnsureUserIndexes(db); err != nil {
		log.Printf("⚠️ user index warning: %v", err)
	}
	if err := database.EnsureQuoteIndexes(db); err != nil {
		log.Printf("⚠️ quote index warning: %v", err)
	}
	if err := database.EnsureOrderIndexes(db); err != nil {
		log.Printf("⚠️ order index warning: %v", err)
	}
	if err := database.EnsurePurchaseOrderIndexes(db); err != nil {
		log.Printf("⚠️ purchase order index warning: %v", err)
	}
	if err := database.EnsureNotificationIndexes(db); err != nil {
		log.Printf("⚠️ notification index warning: %v", err)
	}

	verifier, err := payments.NewFlutterwaveClient(config.AppEnv.FlwSecretKey)
	if err != nil {
		log.Fatal(err)
	}

	r := gin.Default()

	r.POST("/auth/register", handlers.Register(db, config.AppEnv.JWTSecret, config.AppEnv.AccessTokenTTL, config.AppEnv.RefreshTokenTTL))
	r.POST("/auth/login", handlers.Login(db, config.AppEnv.JWTSecret, config.AppEnv.AccessTokenTTL, config.AppEnv.RefreshTokenTTL))
	r.POST("/auth/refresh", handlers.Refresh(db, config.AppEnv.JWTSecret, config.AppEnv.AccessTokenTTL, config.AppEnv.RefreshTokenTTL))
	r.POST("/auth/logout", handlers.Logout(db))
	r.GET("/auth/me", middleware.UserAuth(config.AppEnv.JWTSecret), handlers.GetMe(db))

	r.GET("/settings/:name", handlers.GetSettings(db))

	r.POST("/api/payments/webhook", handlers.PaymentWebhook(db, verifier, config.AppEnv.FlwWebhookHash, config.AppEnv.Currency))

	user := r.Group("/")
	user.Use(middleware.UserAuth(config.AppEnv.JWTSecret))
	{
		user.POST("/quotes", handlers.CreateQuote(db))
		user.GET("/quotes", handlers.GetMyQuotes(db))
		user.GET("/quotes/:id", handlers.GetMyQuote(db))
		user.POST("/quotes/:id/accept", handlers.AcceptQuote(db))

		user.POST("/payments/confirm", handlers.ConfirmPayment(db, verifier, config.AppEnv.Currency))

		user.GET("/orders", handlers.GetMyOrders(db))

		user.GET("/user/notifications", handlers.GetUserNotifications(db))
		user.POST("/user/notifications/:id/read", handlers.MarkNotificationRead(db))
	}

	admin := r.Group("/admin/api")
	admin.Use(middleware.AdminAuth(config.AppEnv.JWTSecret))
	{
		admin.GET("/me", func(c *gin.Context) {
			c.JSON(200, gin.H{"ok": true})
		})

		admin.GET("/dashboard", handlers.GetDashboard(db))

		admin.GET("/quotes", handlers.GetAllQuotes(db))
		admin.GET("/quotes/:id", handlers.GetQuote(db))
		admin.PUT("/quotes/:id/pricing", handlers.PriceQuote(db))
		admin.PUT("/quotes/:id/status", handlers.UpdateQuoteStatus(db))

		admin.GET("/orders", handlers.GetAllOrders(db))
		admin.PUT("/orders/:id/status", handlers.UpdateOrderStatus(db))

		admin.GET("/purchase-orders", handlers.GetPurchaseOrders(db))
		admin.POST("/purchase-orders", handlers.CreatePurchaseOrder(db))
		admin.PUT("/purchase-orders/:id", handlers.UpdatePurchaseOrder(db))
		admin.PUT("/purchase-orders/:id/status", handlers.UpdatePurchaseOrderStatus(db))

		admin.GET("/expenses", handlers.GetExpenses(db))
		admin.POST("/expenses", handlers.CreateExpense(db))
		admin.PUT("/expenses/:id", handlers.UpdateExpense(db))

		admin.GET("/ledger", handlers.GetLedger(db))

		admin.GET("/notifications", handlers.GetAdminNotifications(db))
		admin.POST("/notifications/:id/read", handlers.MarkAdminNotificationRead(db))

		admin.PUT("/settings/:name", handlers.UpdateSettings(db))
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r.Run(":" + port)
}
