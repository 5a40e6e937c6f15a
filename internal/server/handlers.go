package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pdiddy/paper-digest/internal/llm"
	"github.com/pdiddy/paper-digest/internal/logger"
	"github.com/pdiddy/paper-digest/internal/qa"
	"github.com/pdiddy/paper-digest/internal/source"
	"github.com/pdiddy/paper-digest/pkg/types"
)

type handlers struct {
	digest Digest
	log    logger.Logger
}

// chatRequest accepts both body shapes; question wins when both are set.
type chatRequest struct {
	Message  string `json:"message"`
	Question string `json:"question"`
}

func (r chatRequest) text() string {
	if q := strings.TrimSpace(r.Question); q != "" {
		return q
	}
	return strings.TrimSpace(r.Message)
}

type chatResponse struct {
	Response string `json:"response"`
	Answer   string `json:"answer"`
}

type indexPage struct {
	Papers []types.SummarizedPaper
	Error  string
}

func (h *handlers) index(c *gin.Context) {
	papers, err := h.digest.List(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		status := http.StatusInternalServerError
		msg := "Something went wrong while building the digest."
		switch {
		case errors.Is(err, source.ErrSourceUnavailable):
			status = http.StatusBadGateway
			msg = "The paper listing service is unavailable. Try again later."
		case errors.Is(err, llm.ErrModelUnavailable):
			status = http.StatusBadGateway
			msg = "The language model is unavailable. Try again later."
		}
		c.HTML(status, "index.html", indexPage{Error: msg})
		return
	}
	c.HTML(http.StatusOK, "index.html", indexPage{Papers: papers})
}

func (h *handlers) chatPage(c *gin.Context) {
	c.HTML(http.StatusOK, "chat.html", gin.H{"Placeholder": qa.Placeholder})
}

func (h *handlers) chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	question := req.text()
	if question == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "question is required"})
		return
	}

	ex, err := h.digest.Ask(c.Request.Context(), question)
	switch {
	case errors.Is(err, qa.ErrNoContext):
		c.JSON(http.StatusOK, chatResponse{Response: qa.Placeholder, Answer: qa.Placeholder})
	case errors.Is(err, llm.ErrModelUnavailable):
		_ = c.Error(err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "language model unavailable"})
	case err != nil:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to answer question"})
	default:
		c.JSON(http.StatusOK, chatResponse{Response: ex.Answer, Answer: ex.Answer})
	}
}

func (h *handlers) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
