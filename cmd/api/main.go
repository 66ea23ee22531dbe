package main

import (
	"flag"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"market-sim-go/api/handlers"
	"market-sim-go/api/middleware"
	"market-sim-go/config"
	"market-sim-go/sim"
)

// HTTP 模拟服务：POST 参数进来，轨迹/汇总 JSON 出去。
func main() {
	cfgPath := flag.String("config", "", "config file path (optional)")
	addr := flag.String("addr", "", "listen address (overrides config)")
	flag.Parse()

	_ = godotenv.Load()

	defaults := sim.DefaultParameters()
	listen := ":8080"
	if *cfgPath != "" {
		cfg, err := config.LoadWithEnvOverrides(*cfgPath)
		if err != nil {
			log.Fatalf("load config: %v", err)
		}
		defaults = cfg.Sim
		if cfg.APIAddr != "" {
			listen = cfg.APIAddr
		}
	}
	if *addr != "" {
		listen = *addr
	}

	if os.Getenv("API_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	router.Use(middleware.CORS())
	router.Use(middleware.ErrorHandler())

	h := handlers.NewSimulateHandler(defaults)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	v1 := router.Group("/api/v1")
	{
		v1.POST("/simulate", h.RunSimulation)
		v1.POST("/montecarlo", h.RunMonteCarlo)
	}

	log.Printf("listening on %s", listen)
	if err := router.Run(listen); err != nil {
		log.Fatalf("server: %v", err)
	}
}
