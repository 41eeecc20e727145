package handler

import (
	"github.com/RobertWLight/BSC/internal/application/admin"
	applead "github.com/RobertWLight/BSC/internal/application/lead"
	"github.com/RobertWLight/BSC/internal/infrastructure/auth"
	"github.com/RobertWLight/BSC/internal/infrastructure/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SessionIssuer signs admin session tokens
type SessionIssuer interface {
	Issue() (*auth.SessionToken, error)
}

// AdminHandler handles the admin PIN session and the lead statistics
type AdminHandler struct {
	BaseHandler
	authenticator admin.Authenticator
	issuer        SessionIssuer
	leadService   *applead.LeadService
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(authenticator admin.Authenticator, issuer SessionIssuer, leadService *applead.LeadService) *AdminHandler {
	return &AdminHandler{
		authenticator: authenticator,
		issuer:        issuer,
		leadService:   leadService,
	}
}

// CreateSessionRequest carries the admin PIN
type CreateSessionRequest struct {
	PIN string `json:"pin" binding:"required,len=4,numeric"`
}

// CreateSession godoc
// @ID           createAdminSession
// @Summary      Exchange the admin PIN for a session token
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        request body CreateSessionRequest true "PIN"
// @Success      200 {object} dto.Response{data=auth.SessionToken}
// @Failure      400 {object} dto.Response
// @Failure      401 {object} dto.Response
// @Router       /admin/session [post]
func (h *AdminHandler) CreateSession(c *gin.Context) {
	var req CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	ok, err := h.authenticator.Authenticate(c.Request.Context(), req.PIN)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if !ok {
		logger.GetGinLogger(c).Warn("Admin PIN rejected", zap.String("client_ip", c.ClientIP()))
		h.Unauthorized(c, admin.ErrMsgIncorrectPIN)
		return
	}

	session, err := h.issuer.Issue()
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, session)
}

// LeadStats godoc
// @ID           getLeadStats
// @Summary      Lead statistics for the admin dashboard
// @Description  Counts are bucketed in the configured reference timezone
// @Tags         admin
// @Produce      json
// @Success      200 {object} dto.Response{data=applead.StatsResponse}
// @Failure      401 {object} dto.Response
// @Security     BearerAuth
// @Router       /admin/lead-stats [get]
func (h *AdminHandler) LeadStats(c *gin.Context) {
	stats, err := h.leadService.Stats(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, stats)
}
