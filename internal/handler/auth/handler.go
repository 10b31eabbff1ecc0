package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sprintindex/notify-api/internal/email"
	"github.com/sprintindex/notify-api/internal/handler"
	apperrors "github.com/sprintindex/notify-api/pkg/errors"
	"github.com/sprintindex/notify-api/pkg/logger"
)

// Handler exposes the synchronous callable surface the mobile client
// invokes outside of Firestore triggers.
type Handler struct {
	emailSvc email.Service
	logger   *logger.Logger
}

func NewHandler(emailSvc email.Service, logger *logger.Logger) *Handler {
	return &Handler{emailSvc: emailSvc, logger: logger}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	auth := r.Group("/auth")
	{
		auth.POST("/password-reset-email", h.SendPasswordResetEmail)
	}
}

type passwordResetRequest struct {
	Email    string `json:"email" binding:"required,email"`
	ResetURL string `json:"resetUrl" binding:"required,url"`
}

type passwordResetResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// SendPasswordResetEmail renders and submits the password reset mail
// synchronously. Nothing is persisted; the caller retries by re-invoking.
func (h *Handler) SendPasswordResetEmail(c *gin.Context) {
	var req passwordResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(
			string(apperrors.ErrInvalidArgument), "Email and resetUrl are required"))
		return
	}

	if err := h.emailSvc.SendPasswordReset(c.Request.Context(), req.Email, req.ResetURL); err != nil {
		appErr := apperrors.AsAppError(err)
		h.logger.Error(err, "password reset email request failed", "recipient", req.Email)
		c.JSON(appErr.HTTPStatus(), handler.NewErrorResponse(string(appErr.Code), appErr.Message))
		return
	}

	c.JSON(http.StatusOK, passwordResetResponse{
		Success: true,
		Message: "Email sent successfully",
	})
}
