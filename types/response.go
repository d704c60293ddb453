package types

type DataResponse struct {
	Status  bool        `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

type UploadResponse struct {
	DocID     string `json:"doc_id"`
	Filename  string `json:"filename"`
	NumChunks int    `json:"num_chunks"`
	Message   string `json:"message"`
}

type AskResponse struct {
	Answer          string  `json:"answer"`
	SourceText      *string `json:"source_text"`
	ConfidenceScore float64 `json:"confidence_score"`
}
