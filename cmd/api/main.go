package main

import (
	"log"
	"os"

	"backend/internal/client"
	"backend/internal/database"
	"backend/internal/handler"
	"backend/internal/middleware"
	"backend/internal/repository"
	"backend/internal/service"
	"backend/internal/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Night Audit API
// @version         1.0
// @description     Night-audit reconciliation and ledger-posting engine for the hotel operations dashboard.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := godotenv.Load("configs/.env"); err != nil {
		log.Println("No configs/.env file found or error loading it")
	}

	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbUser := os.Getenv("DB_USER")
	dbPassword := os.Getenv("DB_PASSWORD")
	dbName := os.Getenv("DB_NAME")
	dbSslMode := os.Getenv("DB_SSLMODE")

	if dbHost == "" {
		dbHost = "localhost"
	}
	if dbPort == "" {
		dbPort = "5432"
	}
	if dbUser == "" {
		dbUser = "postgres"
	}
	if dbPassword == "" {
		dbPassword = "postgres"
	}
	if dbName == "" {
		dbName = "postgres"
	}
	if dbSslMode == "" {
		dbSslMode = "disable"
	}

	dsn := "postgres://" + dbUser + ":" + dbPassword + "@" + dbHost + ":" + dbPort + "/" + dbName + "?sslmode=" + dbSslMode

	db, err := database.NewConnection(dsn)
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	log.Println("Connected to PostgreSQL successfully.")

	ledgerURL := os.Getenv("LEDGER_API_URL")
	if ledgerURL == "" {
		ledgerURL = "http://localhost:9090"
	}
	fxURL := os.Getenv("FX_API_URL")
	if fxURL == "" {
		fxURL = "http://localhost:9091"
	}

	// Set up WebSocket Hub
	wsHub := websocket.NewHub()
	go wsHub.Run()

	// External collaborators
	ledgerClient := client.NewLedgerClient(ledgerURL, os.Getenv("LEDGER_API_KEY"))
	fxClient := client.NewFXClient(fxURL)

	// Set up dependencies (Repository -> Service -> Handler)
	txManager := repository.NewTransactionManager(db)
	hotelRepo := repository.NewHotelRepository(db)
	taxRuleRepo := repository.NewTaxRuleRepository(db)
	mealRepo := repository.NewMealRepository(db)
	stayRepo := repository.NewStayRepository(db)
	auditRunRepo := repository.NewAuditRunRepository(db)

	hotelService := service.NewHotelService(hotelRepo)
	taxService := service.NewTaxService(taxRuleRepo)
	mealService := service.NewMealService(mealRepo)
	stayService := service.NewStayService(stayRepo)
	chargeService := service.NewChargeService(stayRepo, taxRuleRepo, mealRepo)
	auditService := service.NewAuditService(hotelRepo, auditRunRepo, chargeService, ledgerClient, fxClient, txManager, wsHub)

	// Initialize Handlers
	hotelHandler := handler.NewHotelHandler(hotelService)
	taxHandler := handler.NewTaxHandler(taxService)
	mealHandler := handler.NewMealHandler(mealService)
	stayHandler := handler.NewStayHandler(stayService)
	auditHandler := handler.NewAuditHandler(auditService)

	// Set up Gin Router
	router := gin.Default()

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"http://localhost:5173", "http://127.0.0.1:5173", "http://localhost:5174"} // Frontend URL
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})

	// WebSocket endpoint for audit progress
	router.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(wsHub, c, middleware.GetJWTSecret())
	})

	// Register API Routes
	hotelHandler.RegisterRoutes(router.Group(""))
	taxHandler.RegisterRoutes(router.Group(""))
	mealHandler.RegisterRoutes(router.Group(""))
	stayHandler.RegisterRoutes(router.Group(""))
	auditHandler.RegisterRoutes(router.Group(""))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server listening on :%s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
