package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/roadassist/backend/internal/config"
	"github.com/roadassist/backend/internal/service"
)

type Handler struct {
	services *service.Services
	config   *config.Config
}

func NewHandler(services *service.Services, cfg *config.Config) *Handler {
	return &Handler{
		services: services,
		config:   cfg,
	}
}

func (h *Handler) Init(api *gin.RouterGroup) {
	v1 := api.Group("/v1")
	{
		verification := v1.Group("/verification")
		{
			verification.POST("/issue", h.issueCode)
			verification.POST("/verify", h.verifyCode)
			verification.GET("/resend-status", h.resendStatus)
		}

		notifications := v1.Group("/notifications")
		{
			notifications.POST("/events", h.notifyEvent)
			notifications.GET("/queue", h.queueDepth)
		}
	}
}
