package dto

// AttachmentResponse is an uploaded file re-encoded as a data URL.
type AttachmentResponse struct {
	DataURL   string `json:"dataUrl"`
	MimeType  string `json:"mimeType"`
	SizeBytes int64  `json:"sizeBytes"`
}
