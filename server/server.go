package server

import (
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/hivewallet/authority-api/client/hived"
	"github.com/hivewallet/authority-api/handlers"
	"github.com/hivewallet/authority-api/helpers"
	"github.com/hivewallet/authority-api/logger"
	"github.com/hivewallet/authority-api/middleware"
	"github.com/hivewallet/authority-api/services"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// Handler Definitions
var (
	healthHandler    *handlers.HealthHandler
	authorityHandler *handlers.AuthorityHandler
	rcHandler        *handlers.ResourceCreditHandler

	// Clients
	chainClient *hived.Client
)

// InitializeHandlers wires clients, services and handlers from the
// environment. Must run before InitializeRoutes.
func InitializeHandlers() {
	// Load environment variables from .env file for local development
	err := godotenv.Load()
	if err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: Error loading .env file: %v", err) // Use basic log before logger init
	}

	// --- Determine and Validate Stage ---
	stage := os.Getenv("STAGE")
	if stage == "" {
		stage = helpers.StageLocal
		log.Printf("Warning: STAGE environment variable not set, defaulting to '%s'", stage)
	}
	if !helpers.IsValidStage(stage) {
		log.Fatalf("Invalid STAGE environment variable: '%s'. Must be one of: %s, %s, %s",
			stage, helpers.StageProd, helpers.StageDev, helpers.StageLocal)
	}

	// --- Initialize Logger (AFTER stage validation) ---
	logger.InitLogger(stage)
	logger.Info("Initializing handlers for stage", zap.String("stage", stage))

	// --- Chain client ---
	var clientOpts []hived.Option
	if endpoint := os.Getenv("HIVED_URL"); endpoint != "" {
		clientOpts = append(clientOpts, hived.WithEndpoint(endpoint))
	}
	chainClient = hived.NewClient(clientOpts...)

	// --- Services ---
	authorityService := services.NewAuthorityService(chainClient)
	rcService := services.NewResourceCreditService(chainClient)

	// --- Handlers ---
	healthHandler = handlers.NewHealthHandler()
	authorityHandler = handlers.NewAuthorityHandler(authorityService)
	rcHandler = handlers.NewResourceCreditHandler(rcService)
}

// InitializeRoutes registers middleware and routes on the router.
func InitializeRoutes(r *gin.Engine) {
	r.Use(middleware.CorrelationID())

	corsConfig := cors.Config{
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.CorrelationIDHeader},
		ExposeHeaders:    []string{middleware.CorrelationIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if origins := os.Getenv("CORS_ALLOWED_ORIGINS"); origins != "" {
		corsConfig.AllowOrigins = strings.Split(origins, ",")
	} else {
		corsConfig.AllowAllOrigins = true
		corsConfig.AllowCredentials = false
	}
	r.Use(cors.New(corsConfig))

	r.GET("/health", healthHandler.Health)

	v1 := r.Group("/v1")
	{
		v1.GET("/accounts/:account/authority", authorityHandler.GetAuthority)
		v1.POST("/accounts/:account/authority/:level/validate", authorityHandler.ValidateEdit)
		v1.POST("/accounts/:account/authority/:level", authorityHandler.ApplyEdit)
		v1.POST("/errors/classify", authorityHandler.ClassifyError)
		v1.GET("/accounts/:account/resource-credits", rcHandler.GetEstimate)
	}
}
