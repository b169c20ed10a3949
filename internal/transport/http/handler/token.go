package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"claimgate/internal/app"
	"claimgate/internal/transport/http/response"
)

type TokenHandler struct {
	tokenService *app.TokenService
	claimService *app.ClaimService
	authService  *app.AuthService
}

type IssueTokenRequest struct {
	FieldLabel string `json:"field_label" binding:"max=128"`
	Kind       string `json:"kind" binding:"required,oneof=single_field batch"`
	// TTLHours is optional; omitted means the kind's default window. An
	// explicit zero produces a token that is expired from birth.
	TTLHours *int `json:"ttl_hours"`
}

func NewTokenHandler(tokenService *app.TokenService, claimService *app.ClaimService, authService *app.AuthService) *TokenHandler {
	return &TokenHandler{
		tokenService: tokenService,
		claimService: claimService,
		authService:  authService,
	}
}

func (h *TokenHandler) IssueUploadToken(c *gin.Context) {
	user, ok := currentUser(c, h.authService)
	if !ok {
		return
	}

	claimID, err := parseUintParam(c, "id")
	if err != nil || claimID == 0 {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid claim id")
		return
	}

	var req IssueTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	ttl := app.DefaultTTL(req.Kind)
	if req.TTLHours != nil {
		ttl = time.Duration(*req.TTLHours) * time.Hour
	}

	result, err := h.tokenService.Issue(app.IssueInput{
		ClaimID:        claimID,
		CompanyID:      user.CompanyID,
		IssuedByUserID: user.ID,
		FieldLabel:     req.FieldLabel,
		Kind:           req.Kind,
		TTL:            ttl,
	})
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		case errors.Is(err, app.ErrPreconditionFailed):
			response.Error(c, http.StatusPreconditionFailed, response.CodePreconditionFailed, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "issue upload token failed")
		}
		return
	}

	response.OK(c, result)
}

// ListUploadTokens shows the links issued against one of the caller's claims.
func (h *TokenHandler) ListUploadTokens(c *gin.Context) {
	user, ok := currentUser(c, h.authService)
	if !ok {
		return
	}

	claimID, err := parseUintParam(c, "id")
	if err != nil || claimID == 0 {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid claim id")
		return
	}

	tokens, err := h.tokenService.ListForClaim(claimID, user.CompanyID)
	if err != nil {
		if errors.Is(err, app.ErrPreconditionFailed) {
			response.Error(c, http.StatusPreconditionFailed, response.CodePreconditionFailed, err.Error())
		} else {
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "list upload tokens failed")
		}
		return
	}

	response.OK(c, tokens)
}

// ValidatePublicToken is the anonymous probe behind the public upload page.
// It never distinguishes unknown tokens from expired ones.
func (h *TokenHandler) ValidatePublicToken(c *gin.Context) {
	scope, err := h.tokenService.Validate(c.Request.Context(), c.Param("token"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "validate upload link failed")
		return
	}
	if scope == nil {
		response.Error(c, http.StatusNotFound, response.CodeInvalidUploadLink, "invalid or expired upload link")
		return
	}

	payload := gin.H{
		"claim_id":    scope.ClaimID,
		"field_label": scope.FieldLabel,
		"kind":        scope.Kind,
		"expires_at":  scope.ExpiresAt,
	}
	// Claim number is display-only; the page still works without it.
	if claim, err := h.claimService.Get(scope.ClaimID, scope.CompanyID); err == nil {
		payload["claim_number"] = claim.ClaimNumber
	}

	response.OK(c, payload)
}
