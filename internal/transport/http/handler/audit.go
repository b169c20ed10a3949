package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"claimgate/internal/app"
	"claimgate/internal/transport/http/response"
)

type AuditHandler struct {
	auditService *app.AuditService
	authService  *app.AuthService
}

func NewAuditHandler(auditService *app.AuditService, authService *app.AuthService) *AuditHandler {
	return &AuditHandler{
		auditService: auditService,
		authService:  authService,
	}
}

// ListFailedUploads surfaces the company's failed ingest attempts, including
// record_failed rows whose storage paths point at orphaned blobs.
func (h *AuditHandler) ListFailedUploads(c *gin.Context) {
	user, ok := currentUser(c, h.authService)
	if !ok {
		return
	}

	events, err := h.auditService.FailedUploads(user.CompanyID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "list failed uploads failed")
		return
	}

	response.OK(c, events)
}
