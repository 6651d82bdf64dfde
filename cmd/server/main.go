package main

import (
	"log"

	"truefeedback/internal/config"
	"truefeedback/internal/db"
	"truefeedback/internal/middleware"
	"truefeedback/internal/router"
	"truefeedback/internal/services"
	"truefeedback/internal/store"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading env vars from system")
	}

	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	// Initialize Database
	if err := db.Init(cfg.DatabaseURL); err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	users := store.NewGormStore(db.Get())
	mail := services.NewMailService(cfg.SMTP)
	llm := services.NewLLMService(cfg.LLM)

	r := gin.Default()

	// Setup Sessions
	sessionStore := cookie.NewStore([]byte(cfg.SessionSecret))
	r.Use(sessions.Sessions("truefeedback_session", sessionStore))

	// Middleware
	r.Use(middleware.LoadUser(users))

	router.RegisterRoutes(r, users, mail, llm)

	log.Printf("True Feedback server starting on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
