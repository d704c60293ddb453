package handler

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/openfreight/docintel/service"
	"github.com/openfreight/docintel/types"
)

type UploadHandler struct {
	fileService *service.FileService
}

func NewUploadHandler(fileService *service.FileService) *UploadHandler {
	return &UploadHandler{
		fileService: fileService,
	}
}

// UploadDocumentHandler accepts one multipart file and runs the ingest
// pipeline synchronously, returning the new document id.
func (h *UploadHandler) UploadDocumentHandler(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  false,
			Message: "Invalid file",
		})
		return
	}
	if file.Filename == "" {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  false,
			Message: "No filename provided",
		})
		return
	}

	resp, err := h.fileService.UploadDocument(c, file)
	if err != nil {
		h.sendUploadError(c, file.Filename, err)
		return
	}

	c.JSON(http.StatusOK, types.DataResponse{
		Status: true,
		Data:   resp,
	})
}

func (h *UploadHandler) sendUploadError(c *gin.Context, filename string, err error) {
	switch {
	case errors.Is(err, types.ErrUnsupportedFileType):
		ext := strings.ToLower(filepath.Ext(filename))
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  false,
			Message: fmt.Sprintf("Unsupported file type '%s'. Supported: PDF, DOCX, TXT.", ext),
		})
	case errors.Is(err, types.ErrNoExtractableText):
		c.JSON(http.StatusUnprocessableEntity, types.DataResponse{
			Status:  false,
			Message: "No text could be extracted from the document",
		})
	default:
		c.JSON(http.StatusInternalServerError, types.DataResponse{
			Status:  false,
			Message: err.Error(),
		})
	}
}
