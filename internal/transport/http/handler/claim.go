package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"claimgate/internal/app"
	"claimgate/internal/model"
	"claimgate/internal/transport/http/response"
)

type ClaimHandler struct {
	claimService *app.ClaimService
	authService  *app.AuthService
}

type CreateClaimRequest struct {
	ClaimNumber string `json:"claim_number" binding:"required,max=64"`
	Claimant    string `json:"claimant" binding:"required,max=128"`
}

func NewClaimHandler(claimService *app.ClaimService, authService *app.AuthService) *ClaimHandler {
	return &ClaimHandler{
		claimService: claimService,
		authService:  authService,
	}
}

func (h *ClaimHandler) CreateClaim(c *gin.Context) {
	user, ok := currentUser(c, h.authService)
	if !ok {
		return
	}

	var req CreateClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	claim, err := h.claimService.Create(app.CreateClaimInput{
		CompanyID:   user.CompanyID,
		ClaimNumber: req.ClaimNumber,
		Claimant:    req.Claimant,
	})
	if err != nil {
		if errors.Is(err, app.ErrInvalidInput) {
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		} else {
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "create claim failed")
		}
		return
	}

	response.OK(c, claim)
}

func (h *ClaimHandler) ListClaims(c *gin.Context) {
	user, ok := currentUser(c, h.authService)
	if !ok {
		return
	}

	claims, err := h.claimService.List(user.CompanyID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "list claims failed")
		return
	}

	response.OK(c, claims)
}

func (h *ClaimHandler) ListDocuments(c *gin.Context) {
	user, ok := currentUser(c, h.authService)
	if !ok {
		return
	}

	claimID, err := parseUintParam(c, "id")
	if err != nil || claimID == 0 {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid claim id")
		return
	}

	docs, err := h.claimService.ListDocuments(claimID, user.CompanyID)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrClaimNotFound):
			response.Error(c, http.StatusNotFound, response.CodeClaimNotFound, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "list documents failed")
		}
		return
	}

	response.OK(c, docs)
}

// ListCompanyDocuments is the cross-claim view: everything uploaded against
// any of the company's claims.
func (h *ClaimHandler) ListCompanyDocuments(c *gin.Context) {
	user, ok := currentUser(c, h.authService)
	if !ok {
		return
	}

	docs, err := h.claimService.ListCompanyDocuments(user.CompanyID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "list documents failed")
		return
	}

	response.OK(c, docs)
}

func parseUintParam(c *gin.Context, key string) (uint, error) {
	s := c.Param(key)
	u, err := strconv.ParseUint(s, 10, 64)
	return uint(u), err
}

// currentUser resolves the authenticated user and their company, writing
// the error response itself when that fails. A user without a company
// cannot act on claims at all.
func currentUser(c *gin.Context, authService *app.AuthService) (*model.User, bool) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "invalid token payload")
		return nil, false
	}

	user, err := authService.GetUserByID(userID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "resolve current user failed")
		return nil, false
	}
	if user == nil {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "user not found")
		return nil, false
	}
	if user.CompanyID == 0 {
		response.Error(c, http.StatusPreconditionFailed, response.CodePreconditionFailed, "no company associated with account")
		return nil, false
	}
	return user, true
}
