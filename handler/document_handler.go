package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/openfreight/docintel/service"
	"github.com/openfreight/docintel/types"
)

type DocumentHandler struct {
	ragService *service.RAGService
}

func NewDocumentHandler(ragService *service.RAGService) *DocumentHandler {
	return &DocumentHandler{
		ragService: ragService,
	}
}

// AskHandler answers a question about one indexed document.
func (h *DocumentHandler) AskHandler(c *gin.Context) {
	var req types.AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  false,
			Message: "Invalid request body",
		})
		return
	}
	if req.DocID == "" {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  false,
			Message: "doc_id is required",
		})
		return
	}
	if req.Question == "" {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  false,
			Message: "question is required",
		})
		return
	}

	resp, err := h.ragService.Ask(c, req.DocID, req.Question)
	if err != nil {
		h.sendQueryError(c, req.DocID, err)
		return
	}

	c.JSON(http.StatusOK, types.DataResponse{
		Status: true,
		Data:   resp,
	})
}

// ExtractHandler extracts the structured shipment record from one
// indexed document.
func (h *DocumentHandler) ExtractHandler(c *gin.Context) {
	var req types.ExtractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  false,
			Message: "Invalid request body",
		})
		return
	}
	if req.DocID == "" {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  false,
			Message: "doc_id is required",
		})
		return
	}

	result, err := h.ragService.Extract(c, req.DocID)
	if err != nil {
		h.sendQueryError(c, req.DocID, err)
		return
	}

	c.JSON(http.StatusOK, types.DataResponse{
		Status: true,
		Data:   result,
	})
}

func (h *DocumentHandler) sendQueryError(c *gin.Context, docID string, err error) {
	if errors.Is(err, types.ErrDocumentNotFound) {
		c.JSON(http.StatusNotFound, types.DataResponse{
			Status:  false,
			Message: fmt.Sprintf("Document '%s' not found", docID),
		})
		return
	}
	c.JSON(http.StatusInternalServerError, types.DataResponse{
		Status:  false,
		Message: err.Error(),
	})
}
