package handlers

import (
	"io"
	"strings"

	"github.com/gin-gonic/gin"

	"storeops/internal/core/apperror"
	"storeops/internal/domain/quantity"
	"storeops/internal/infrastructure/http/v1/dto"
)

const formFileField = "file"

// AttachmentHandler turns uploaded files into data URLs the console embeds
// in stock-in and asset payloads.
type AttachmentHandler struct {
	*BaseHandler
	limits quantity.Limits
}

// NewAttachmentHandler creates an attachment handler.
func NewAttachmentHandler(base *BaseHandler, limits quantity.Limits) *AttachmentHandler {
	return &AttachmentHandler{BaseHandler: base, limits: limits}
}

// Image encodes a damaged-goods photo.
// POST /api/v1/attachments/images
func (h *AttachmentHandler) Image(c *gin.Context) {
	h.encode(c, quantity.ImageMIMETypes, h.limits.ImageMaxBytes)
}

// BillDocument encodes an asset bill document.
// POST /api/v1/attachments/bill-documents
func (h *AttachmentHandler) BillDocument(c *gin.Context) {
	h.encode(c, quantity.DocumentMIMETypes, h.limits.BillDocumentMaxBytes)
}

func (h *AttachmentHandler) encode(c *gin.Context, allowed []string, maxBytes int64) {
	fh, err := c.FormFile(formFileField)
	if err != nil {
		h.Error(c, apperror.NewValidation("file is required").WithDetail("field", formFileField))
		return
	}
	if fh.Size > maxBytes {
		h.Error(c, apperror.NewTooLarge(fh.Size, maxBytes))
		return
	}

	f, err := fh.Open()
	if err != nil {
		h.Error(c, apperror.NewValidation("file could not be read"))
		return
	}
	defer f.Close()

	raw, err := io.ReadAll(io.LimitReader(f, maxBytes+1))
	if err != nil {
		h.Error(c, apperror.NewValidation("file could not be read"))
		return
	}

	dataURL, err := quantity.EncodeAttachment(raw, allowed, maxBytes)
	if err != nil {
		h.Error(c, err)
		return
	}

	mime := strings.TrimPrefix(dataURL[:strings.IndexByte(dataURL, ';')], "data:")
	h.OK(c, dto.AttachmentResponse{
		DataURL:   dataURL,
		MimeType:  mime,
		SizeBytes: int64(len(raw)),
	})
}
