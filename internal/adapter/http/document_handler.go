package http

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/labstack/echo/v4"

	docDomain "loanhub-backend/internal/domain/document"
	docuc "loanhub-backend/internal/usecase/document"
)

type DocumentHandler struct{ uc *docuc.Usecase }

func NewDocumentHandler(uc *docuc.Usecase) *DocumentHandler { return &DocumentHandler{uc: uc} }

// requesterID is zero for admins, who may attach documents to any
// application.
func requesterID(c echo.Context) uint64 {
	if isAdmin(c) {
		return 0
	}
	return sessionUserID(c)
}

// Upload accepts a multipart form: file, applicationId, documentType.
func (h *DocumentHandler) Upload(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return badRequest(c, "file is required")
	}
	ref := c.FormValue("applicationId")
	if ref == "" {
		return badRequest(c, "applicationId is required")
	}
	docType := docDomain.Type(c.FormValue("documentType"))

	f, err := fh.Open()
	if err != nil {
		return badRequest(c, "unreadable file")
	}
	defer f.Close()

	doc, err := h.uc.Upload(c.Request().Context(), requesterID(c), docuc.UploadInput{
		Ref:         ref,
		Type:        docType,
		FileName:    fh.Filename,
		Size:        fh.Size,
		ContentType: fh.Header.Get(echo.HeaderContentType),
		Body:        f,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]any{"document": doc})
}

type associateReq struct {
	ApplicationID string `json:"applicationId" validate:"required"`
	DocumentType  string `json:"documentType" validate:"required"`
	URL           string `json:"url" validate:"required,url"`
	PublicID      string `json:"publicId" validate:"required"`
	FileName      string `json:"fileName"`
	FileSize      int64  `json:"fileSize"`
	MimeType      string `json:"mimeType"`
}

// Associate registers a file the client uploaded straight to the CDN.
func (h *DocumentHandler) Associate(c echo.Context) error {
	var req associateReq
	if err := c.Bind(&req); err != nil {
		return bindError(c)
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}
	doc, err := h.uc.AssociateExternal(c.Request().Context(), requesterID(c), docuc.AssociateInput{
		Ref:      req.ApplicationID,
		Type:     docDomain.Type(req.DocumentType),
		FileName: req.FileName,
		URL:      req.URL,
		PublicID: req.PublicID,
		Size:     req.FileSize,
		MimeType: req.MimeType,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]any{"document": doc})
}

// Download either redirects to the CDN or streams the local file.
func (h *DocumentHandler) Download(c echo.Context) error {
	docID, err := strconv.ParseUint(c.QueryParam("documentId"), 10, 64)
	if err != nil || docID == 0 {
		return badRequest(c, "documentId is required")
	}
	doc, dl, err := h.uc.Download(c.Request().Context(), docID)
	if err != nil {
		return writeDomainError(c, err)
	}
	if dl.RedirectURL != "" {
		return c.Redirect(http.StatusFound, dl.RedirectURL)
	}
	defer dl.Body.Close()

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename=%q`, doc.FileName))
	c.Response().Header().Set(echo.HeaderContentLength, strconv.FormatInt(dl.Size, 10))
	return c.Stream(http.StatusOK, doc.MimeType, dl.Body)
}

type signReq struct {
	Folder   string `json:"folder"`
	PublicID string `json:"publicId"`
}

// SignUploadParams signs parameters for a client-side direct upload.
func (h *DocumentHandler) SignUploadParams(c echo.Context) error {
	var req signReq
	if err := c.Bind(&req); err != nil {
		return bindError(c)
	}
	params := url.Values{}
	if req.Folder != "" {
		params.Set("folder", req.Folder)
	}
	if req.PublicID != "" {
		params.Set("public_id", req.PublicID)
	}
	sig, err := h.uc.SignUpload(params)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, sig)
}
