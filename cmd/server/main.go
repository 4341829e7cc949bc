package main

import (
	"os"
	"strconv"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"greengoals/config"
	"greengoals/controllers"
	"greengoals/middlewares"
	"greengoals/routes"
	"greengoals/services"
	"greengoals/store"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "./config/config.yml"
	}
	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	services.InitVerifierService(cfg)

	st, err := store.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	if err := st.Seed(); err != nil {
		log.Fatalf("Failed to seed store: %v", err)
	}
	log.WithField("path", cfg.Database.Path).Info("Store ready")

	controllers.Init(cfg, st)

	router := setupRouter(cfg, st)
	port := strconv.Itoa(cfg.Server.Port)
	log.Infof("Server starting on port %s", port)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func setupRouter(cfg *config.Config, st *store.Store) *gin.Engine {
	router := gin.Default()

	router.SetTrustedProxies([]string{"127.0.0.1", "localhost"})

	allowOrigins := cfg.CORS.AllowOrigins
	if len(allowOrigins) == 0 {
		allowOrigins = []string{"*"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:  allowOrigins,
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
	}))

	api := router.Group("/api")
	routes.SetupAuthRoutes(api)
	routes.SetupPublicRoutes(api)

	auth := api.Group("/")
	auth.Use(middlewares.AuthMiddleware(cfg.JWT.Secret))
	routes.SetupUserRoutes(auth)

	admin := api.Group("/admin")
	admin.Use(middlewares.AdminMiddleware(cfg.JWT.Secret, st))
	routes.SetupAdminRoutes(admin)

	return router
}
