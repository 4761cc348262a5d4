package devserver

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/goabroadai/goabroad/internal/store"
)

type askRequest struct {
	UserID   int64  `json:"user_id" binding:"required,gt=0"`
	Question string `json:"question" binding:"required"`
}

func (s *Server) ask(c *gin.Context) {
	var req askRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(badRequest(bindingDetail(err, req)))
		return
	}
	question := strings.TrimSpace(req.Question)
	if question == "" {
		c.Error(badRequest("question is required"))
		return
	}

	ctx := c.Request.Context()
	p, err := s.profiles.Get(ctx, req.UserID)
	if errors.Is(err, store.ErrNotFound) {
		c.Error(notFound("User not found. Please submit your profile first."))
		return
	}
	if err != nil {
		c.Error(internal("Failed to load profile", err))
		return
	}

	if s.advisor == nil {
		c.Error(unavailable("Advisor is not configured"))
		return
	}

	answer, err := s.advisor.Answer(ctx, p, question)
	if err != nil {
		s.logger.Warn("advice failed", zap.Int64("user_id", req.UserID), zap.Error(err))
		c.Error(&httpError{Status: http.StatusBadGateway, Detail: "Failed to generate a response", Err: err})
		return
	}

	c.JSON(http.StatusOK, gin.H{"response": answer})
}
