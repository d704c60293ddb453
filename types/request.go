package types

type AskRequest struct {
	DocID    string `json:"doc_id"`
	Question string `json:"question"`
}

type ExtractRequest struct {
	DocID string `json:"doc_id"`
}
