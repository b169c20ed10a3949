package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"claimgate/internal/app"
	"claimgate/internal/transport/http/response"
)

type UploadHandler struct {
	ingestService *app.IngestService
	tokenService  *app.TokenService
	claimService  *app.ClaimService
	authService   *app.AuthService
}

func NewUploadHandler(ingestService *app.IngestService, tokenService *app.TokenService, claimService *app.ClaimService, authService *app.AuthService) *UploadHandler {
	return &UploadHandler{
		ingestService: ingestService,
		tokenService:  tokenService,
		claimService:  claimService,
		authService:   authService,
	}
}

// UploadDocument ingests one file against a claim on behalf of an
// authenticated company member.
func (h *UploadHandler) UploadDocument(c *gin.Context) {
	user, ok := currentUser(c, h.authService)
	if !ok {
		return
	}

	claimID, err := parseUintParam(c, "id")
	if err != nil || claimID == 0 {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid claim id")
		return
	}

	if _, err := h.claimService.Get(claimID, user.CompanyID); err != nil {
		if errors.Is(err, app.ErrClaimNotFound) {
			response.Error(c, http.StatusNotFound, response.CodeClaimNotFound, err.Error())
		} else {
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "resolve claim failed")
		}
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "missing file")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "read file failed")
		return
	}
	defer file.Close()

	userID := user.ID
	result, err := h.ingestService.Ingest(c.Request.Context(), app.IngestInput{
		ClaimID:          claimID,
		CompanyID:        user.CompanyID,
		FileName:         fileHeader.Filename,
		ContentType:      fileHeader.Header.Get("Content-Type"),
		SizeBytes:        fileHeader.Size,
		Content:          file,
		UploadedByUserID: &userID,
		UploaderName:     user.Username,
	})
	if err != nil {
		writeIngestError(c, err)
		return
	}

	response.OK(c, result)
}

// PublicBatchUpload is the anonymous flow: a token plus up to ten files in
// one multipart request. Files are processed sequentially and one bad file
// does not abort the rest.
func (h *UploadHandler) PublicBatchUpload(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid multipart payload")
		return
	}

	scope, err := h.tokenService.Validate(c.Request.Context(), c.PostForm("token"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "validate upload link failed")
		return
	}
	if scope == nil {
		response.Error(c, http.StatusNotFound, response.CodeInvalidUploadLink, "invalid or expired upload link")
		return
	}

	uploaderName := strings.TrimSpace(c.PostForm("uploader_name"))
	if uploaderName == "" {
		uploaderName = "anonymous"
	}

	fileHeaders := form.File["files"]
	files := make([]app.BatchFile, 0, len(fileHeaders))
	for _, fh := range fileHeaders {
		fh := fh
		files = append(files, app.BatchFile{
			FileName:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			SizeBytes:   fh.Size,
			Open: func() (io.ReadCloser, error) {
				return fh.Open()
			},
		})
	}

	result, err := h.ingestService.IngestBatch(c.Request.Context(), scope, uploaderName, files)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrTooManyFiles):
			response.Error(c, http.StatusBadRequest, response.CodeTooManyFiles, err.Error())
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "no files selected")
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "upload failed")
		}
		return
	}

	payload := gin.H{
		"files":    result.Files,
		"uploaded": result.Uploaded,
		"total":    result.Total,
		"summary":  fmt.Sprintf("%d of %d uploaded", result.Uploaded, result.Total),
	}
	if result.AllUploaded() {
		response.OK(c, payload)
		return
	}
	response.OKWithStatus(c, http.StatusMultiStatus, payload)
}

func writeIngestError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, app.ErrInvalidInput):
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
	case errors.Is(err, app.ErrFileTooLarge):
		response.Error(c, http.StatusBadRequest, response.CodeFileTooLarge, err.Error())
	case errors.Is(err, app.ErrTransferFailed):
		response.Error(c, http.StatusBadGateway, response.CodeInternalServer, err.Error())
	case errors.Is(err, app.ErrStorageFailed):
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "upload failed")
	}
}
