package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/openfreight/docintel/metrics"
	"github.com/openfreight/docintel/service"
	"github.com/openfreight/docintel/types"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeStore struct {
	docID    string
	results  []types.RetrievalResult
	fullText string

	storeErr    error
	retrieveErr error
	fullTextErr error

	stored []types.Chunk
}

func (f *fakeStore) StoreDocument(ctx context.Context, chunks []types.Chunk) (string, error) {
	if f.storeErr != nil {
		return "", f.storeErr
	}
	f.stored = chunks
	return f.docID, nil
}

func (f *fakeStore) Retrieve(ctx context.Context, docID, query string, topK int) ([]types.RetrievalResult, error) {
	if f.retrieveErr != nil {
		return nil, f.retrieveErr
	}
	return f.results, nil
}

func (f *fakeStore) FullText(ctx context.Context, docID string) (string, error) {
	if f.fullTextErr != nil {
		return "", f.fullTextErr
	}
	return f.fullText, nil
}

type fakeLLM struct {
	response string
	err      error
}

func (f *fakeLLM) Complete(ctx context.Context, system, user string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func doRequest(t *testing.T, router *gin.Engine, method, path string, body io.Reader, contentType string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return rec, env
}

func newQueryRouter(t *testing.T, store *fakeStore, askLLM, extractLLM *fakeLLM) *gin.Engine {
	t.Helper()
	rag := service.NewRAGService(
		types.RAGServiceConfig{TopK: 3, SimilarityThreshold: 0.3},
		store,
		askLLM,
		extractLLM,
		zerolog.Nop(),
		metrics.NewWith(prometheus.NewRegistry()),
	)
	h := NewDocumentHandler(rag)

	router := gin.New()
	router.POST("/ask", h.AskHandler)
	router.POST("/extract", h.ExtractHandler)
	return router
}

func TestAskEndpointAnswers(t *testing.T) {
	store := &fakeStore{
		results: []types.RetrievalResult{
			{Text: "[Text]\nThe load delivers Tuesday.", Score: 0.8, ChunkIndex: 2},
		},
		fullText: "The load delivers Tuesday.",
	}
	router := newQueryRouter(t, store, &fakeLLM{response: "It delivers Tuesday."}, &fakeLLM{})

	body := strings.NewReader(`{"doc_id":"ab12cd34ef56","question":"When does it deliver?"}`)
	rec, env := doRequest(t, router, http.MethodPost, "/ask", body, "application/json")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	if !env.Status {
		t.Errorf("status flag = false")
	}

	var data types.AskResponse
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if data.Answer != "It delivers Tuesday." {
		t.Errorf("answer = %q", data.Answer)
	}
	if data.SourceText == nil || *data.SourceText != "[Text]\nThe load delivers Tuesday." {
		t.Errorf("source_text = %v", data.SourceText)
	}
	if data.ConfidenceScore != 0.8 {
		t.Errorf("confidence_score = %v", data.ConfidenceScore)
	}
}

func TestAskEndpointBelowThresholdNullsSourceText(t *testing.T) {
	store := &fakeStore{
		results: []types.RetrievalResult{{Text: "chunk", Score: 0.05}},
	}
	router := newQueryRouter(t, store, &fakeLLM{response: "unused"}, &fakeLLM{})

	body := strings.NewReader(`{"doc_id":"ab12cd34ef56","question":"Who is the president?"}`)
	rec, env := doRequest(t, router, http.MethodPost, "/ask", body, "application/json")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(string(env.Data), `"source_text":null`) {
		t.Errorf("source_text should serialize as null: %s", env.Data)
	}
	if !strings.Contains(string(env.Data), `"Not found in document."`) {
		t.Errorf("answer missing: %s", env.Data)
	}
}

func TestAskEndpointUnknownDocument(t *testing.T) {
	store := &fakeStore{
		retrieveErr: fmt.Errorf("%w: nope42", types.ErrDocumentNotFound),
	}
	router := newQueryRouter(t, store, &fakeLLM{}, &fakeLLM{})

	body := strings.NewReader(`{"doc_id":"nope42","question":"anything"}`)
	rec, env := doRequest(t, router, http.MethodPost, "/ask", body, "application/json")

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
	if env.Status {
		t.Errorf("status flag = true on error")
	}
	if got, want := env.Message, "Document 'nope42' not found"; got != want {
		t.Errorf("message = %q, want %q", got, want)
	}
}

func TestAskEndpointValidation(t *testing.T) {
	router := newQueryRouter(t, &fakeStore{}, &fakeLLM{}, &fakeLLM{})

	cases := []struct {
		name    string
		body    string
		message string
	}{
		{"malformed json", `{"doc_id":`, "Invalid request body"},
		{"missing doc_id", `{"question":"anything"}`, "doc_id is required"},
		{"missing question", `{"doc_id":"ab12cd34ef56"}`, "question is required"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, env := doRequest(t, router, http.MethodPost, "/ask", strings.NewReader(tc.body), "application/json")
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d", rec.Code)
			}
			if env.Message != tc.message {
				t.Errorf("message = %q, want %q", env.Message, tc.message)
			}
		})
	}
}

func TestExtractEndpointRecord(t *testing.T) {
	store := &fakeStore{fullText: "Shipment SH-88, carrier Knight, 1850 USD."}
	extractLLM := &fakeLLM{
		response: `{"shipment_id":"SH-88","shipper":null,"consignee":null,"pickup_datetime":null,"delivery_datetime":null,"equipment_type":null,"mode":null,"rate":1850,"currency":"USD","weight":null,"carrier_name":"Knight"}`,
	}
	router := newQueryRouter(t, store, &fakeLLM{}, extractLLM)

	body := strings.NewReader(`{"doc_id":"ab12cd34ef56"}`)
	rec, env := doRequest(t, router, http.MethodPost, "/extract", body, "application/json")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	var data map[string]interface{}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if data["shipment_id"] != "SH-88" {
		t.Errorf("shipment_id = %v", data["shipment_id"])
	}
	if data["carrier_name"] != "Knight" {
		t.Errorf("carrier_name = %v", data["carrier_name"])
	}
	if data["rate"] != 1850.0 {
		t.Errorf("rate = %v", data["rate"])
	}
	if shipper, ok := data["shipper"]; !ok || shipper != nil {
		t.Errorf("shipper = %v, want null", shipper)
	}
	if _, ok := data["error"]; ok {
		t.Errorf("parsed extraction should not carry an error field: %s", env.Data)
	}
}

func TestExtractEndpointFallback(t *testing.T) {
	store := &fakeStore{fullText: "doc"}
	router := newQueryRouter(t, store, &fakeLLM{}, &fakeLLM{response: "no json here"})

	body := strings.NewReader(`{"doc_id":"ab12cd34ef56"}`)
	rec, env := doRequest(t, router, http.MethodPost, "/extract", body, "application/json")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	var data struct {
		RawResponse string `json:"raw_response"`
		Err         string `json:"error"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if data.RawResponse != "no json here" {
		t.Errorf("raw_response = %q", data.RawResponse)
	}
	if data.Err != "Failed to parse LLM JSON output" {
		t.Errorf("error = %q", data.Err)
	}
}

func TestExtractEndpointUnknownDocument(t *testing.T) {
	store := &fakeStore{
		fullTextErr: fmt.Errorf("%w: nope42", types.ErrDocumentNotFound),
	}
	router := newQueryRouter(t, store, &fakeLLM{}, &fakeLLM{})

	body := strings.NewReader(`{"doc_id":"nope42"}`)
	rec, env := doRequest(t, router, http.MethodPost, "/extract", body, "application/json")

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
	if got, want := env.Message, "Document 'nope42' not found"; got != want {
		t.Errorf("message = %q, want %q", got, want)
	}
}

func TestExtractEndpointValidation(t *testing.T) {
	router := newQueryRouter(t, &fakeStore{}, &fakeLLM{}, &fakeLLM{})

	rec, env := doRequest(t, router, http.MethodPost, "/extract", strings.NewReader(`{}`), "application/json")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	if got, want := env.Message, "doc_id is required"; got != want {
		t.Errorf("message = %q, want %q", got, want)
	}
}
