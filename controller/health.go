package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"supportchat/service"
)

type HealthController struct {
	reply *service.ReplyService
}

func NewHealthController(reply *service.ReplyService) *HealthController {
	return &HealthController{reply: reply}
}

func (ctrl *HealthController) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":     "ok",
		"llmEnabled": ctrl.reply.Enabled(),
		"timestamp":  time.Now().UnixMilli(),
	})
}
