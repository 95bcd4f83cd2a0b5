package feedback

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/muhfery/ecommerce-insights-backend/internal/feedback"
	"github.com/muhfery/ecommerce-insights-backend/pkg/logger"
)

type stubService struct {
	lastSubmit feedback.SubmitParams
	lastList   feedback.ListParams
	calls      int
	entry      *feedback.Entry
	list       *feedback.ListResult
	summary    *feedback.Summary
	err        error
}

func (s *stubService) Submit(ctx context.Context, params feedback.SubmitParams) (*feedback.Entry, error) {
	s.calls++
	s.lastSubmit = params
	return s.entry, s.err
}

func (s *stubService) List(ctx context.Context, params feedback.ListParams) (*feedback.ListResult, error) {
	s.calls++
	s.lastList = params
	return s.list, s.err
}

func (s *stubService) Summarize(ctx context.Context) (*feedback.Summary, error) {
	s.calls++
	return s.summary, s.err
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test"})
}

func TestSubmitCreatesEntry(t *testing.T) {
	stub := &stubService{entry: &feedback.Entry{
		Name:      "Budi",
		Message:   "Great selection",
		Rating:    5,
		Timestamp: "2026-08-29 10:00:00",
	}}
	handler := Submit(stub, testLogger())

	body := strings.NewReader(`{"name":"Budi","message":"Great selection","rating":5}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/feedback", body)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("unexpected status %d: %s", resp.Code, resp.Body.String())
	}
	if stub.lastSubmit.Name != "Budi" || stub.lastSubmit.Rating != 5 {
		t.Fatalf("unexpected submit params: %+v", stub.lastSubmit)
	}

	var envelope struct {
		Data feedback.Entry `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Timestamp != "2026-08-29 10:00:00" {
		t.Fatalf("unexpected entry: %+v", envelope.Data)
	}
}

func TestSubmitRejectsMalformedBody(t *testing.T) {
	stub := &stubService{}
	handler := Submit(stub, testLogger())

	for _, body := range []string{
		`{`,
		`{"name":"Budi","message":"hi","rating":5,"admin":true}`,
		`{"name":"Budi","message":"hi","rating":"five"}`,
	} {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/feedback", strings.NewReader(body))
		resp := httptest.NewRecorder()
		handler.ServeHTTP(resp, req)
		if resp.Code != http.StatusBadRequest {
			t.Fatalf("body %q: expected 400, got %d", body, resp.Code)
		}
	}
	if stub.calls != 0 {
		t.Fatal("service should not be invoked on malformed body")
	}
}

func TestListParsesQuery(t *testing.T) {
	stub := &stubService{list: &feedback.ListResult{
		Items: []feedback.Entry{{Name: "Sari", Message: "ok", Rating: 4, Timestamp: "2026-08-28 09:00:00"}},
		Total: 7,
	}}
	handler := List(stub, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/feedback?min_rating=4&sort=rating_desc&q=ok", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", resp.Code, resp.Body.String())
	}
	if stub.lastList.MinRating != 4 || stub.lastList.Sort != feedback.SortRatingHighest || stub.lastList.Search != "ok" {
		t.Fatalf("unexpected list params: %+v", stub.lastList)
	}

	var envelope struct {
		Data []feedback.Entry `json:"data"`
		Meta struct {
			Count int `json:"count"`
			Total int `json:"total"`
		} `json:"meta"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Meta.Count != 1 || envelope.Meta.Total != 7 {
		t.Fatalf("unexpected meta: %+v", envelope.Meta)
	}
}

func TestListDefaultsToNewest(t *testing.T) {
	stub := &stubService{list: &feedback.ListResult{}}
	handler := List(stub, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/feedback", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.Code)
	}
	if stub.lastList.Sort != feedback.SortNewest {
		t.Fatalf("expected newest default, got %q", stub.lastList.Sort)
	}
}

func TestListRejectsUnknownSort(t *testing.T) {
	stub := &stubService{}
	handler := List(stub, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/feedback?sort=alphabetical", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
	if stub.calls != 0 {
		t.Fatal("service should not be invoked on invalid sort")
	}
}

func TestSummary(t *testing.T) {
	stub := &stubService{summary: &feedback.Summary{Total: 2, AvgRating: 4.5}}
	handler := Summary(stub, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/feedback/summary", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.Code)
	}
	var envelope struct {
		Data feedback.Summary `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Total != 2 || envelope.Data.AvgRating != 4.5 {
		t.Fatalf("unexpected summary: %+v", envelope.Data)
	}
}
