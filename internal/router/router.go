package router

import (
	"net/http"
	"time"

	"truefeedback/internal/handlers"
	"truefeedback/internal/middleware"
	"truefeedback/internal/services"
	"truefeedback/internal/store"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires all API endpoints. LoadUser and the session middleware
// must already be installed on the engine.
func RegisterRoutes(r *gin.Engine, users store.UserStore, mail *services.MailService, llm *services.LLMService) {
	authHandler := handlers.NewAuthHandler(users, mail)
	messageHandler := handlers.NewMessageHandler(users)
	suggestHandler := handlers.NewSuggestHandler(llm)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"time":   time.Now().Unix(),
		})
	})

	api := r.Group("/api")
	{
		// Public routes
		api.GET("/check-username-unique", authHandler.CheckUsernameUnique)
		api.POST("/sign-up", authHandler.SignUp)
		api.POST("/verify-code", authHandler.VerifyCode)
		api.POST("/sign-in", authHandler.SignIn)
		api.POST("/sign-out", authHandler.SignOut)
		api.POST("/send-message", messageHandler.SendMessage)
		api.POST("/suggest-messages", suggestHandler.SuggestMessages)

		// Session-protected routes
		authorized := api.Group("/")
		authorized.Use(middleware.AuthRequired())
		{
			authorized.GET("/accept-messages", messageHandler.GetAcceptMessages)
			authorized.POST("/accept-messages", messageHandler.UpdateAcceptMessages)
			authorized.GET("/get-messages", messageHandler.GetMessages)
			authorized.DELETE("/delete-message/:messageID", messageHandler.DeleteMessage)
		}
	}
}
