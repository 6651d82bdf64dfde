package handlers

import (
	"truefeedback/internal/services"
	"truefeedback/pkg/response"

	"github.com/gin-gonic/gin"
)

type SuggestHandler struct {
	llm *services.LLMService
}

func NewSuggestHandler(llm *services.LLMService) *SuggestHandler {
	return &SuggestHandler{llm: llm}
}

// SuggestMessages returns three ||-joined conversation starters. Upstream
// failure is masked behind fallback content, so this is always a 200.
// POST /api/suggest-messages
func (h *SuggestHandler) SuggestMessages(c *gin.Context) {
	suggestions := h.llm.SuggestQuestions(c.Request.Context())
	response.OKWith(c, "Suggestions generated successfully", gin.H{
		"suggestions": suggestions,
	})
}
