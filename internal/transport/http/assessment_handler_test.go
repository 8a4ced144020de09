package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"ux-career-assessment/internal/domain"
	"ux-career-assessment/internal/questionbank"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func allAnswersJSON(v int) string {
	parts := make([]string, 0, 15)
	for _, q := range questionbank.Default() {
		parts = append(parts, fmt.Sprintf("%q:%d", q.ID, v))
	}
	return `{"answers":{` + strings.Join(parts, ",") + `}}`
}

func do(t *testing.T, ts *testServer, method, path, body string) (*http.Response, map[string]any) {
	t.Helper()
	req, err := http.NewRequest(method, ts.server.URL+path, bytes.NewBufferString(body))
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := ts.server.Client().Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	var out map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp, out
}

func TestCompleteAndRestore(t *testing.T) {
	ts := newTestServer(t)

	resp, body := do(t, ts, http.MethodPost, "/api/assessments", allAnswersJSON(5))
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %v", resp.StatusCode, body)
	}
	id, _ := body["id"].(string)
	if len(id) != 8 {
		t.Fatalf("expected 8-char id, got %q", id)
	}
	results := body["results"].(map[string]any)
	if results["totalScore"].(float64) != 100 || results["stage"] != string(domain.StageStrategicLead) {
		t.Fatalf("unexpected results: %v", results)
	}

	resp, body = do(t, ts, http.MethodGet, "/api/results/"+id, "")
	if resp.StatusCode != http.StatusOK || body["id"] != id {
		t.Fatalf("restore: status %d body %v", resp.StatusCode, body)
	}

	resp, body = do(t, ts, http.MethodGet, "/api/latest-result", "")
	if resp.StatusCode != http.StatusOK || body["id"] != id {
		t.Fatalf("latest: status %d body %v", resp.StatusCode, body)
	}

	resp, body = do(t, ts, http.MethodGet, "/api/results", "")
	if resp.StatusCode != http.StatusOK || len(body["results"].([]any)) != 1 {
		t.Fatalf("history: status %d body %v", resp.StatusCode, body)
	}

	resp, _ = do(t, ts, http.MethodDelete, "/api/results/"+id, "")
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete: expected 204, got %d", resp.StatusCode)
	}
	resp, _ = do(t, ts, http.MethodDelete, "/api/results/"+id, "")
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("second delete: expected 204, got %d", resp.StatusCode)
	}
	resp, _ = do(t, ts, http.MethodGet, "/api/results/"+id, "")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", resp.StatusCode)
	}
}

func TestCompleteRejectsInvalidAnswers(t *testing.T) {
	ts := newTestServer(t)

	for name, body := range map[string]string{
		"empty":       `{"answers":{}}`,
		"missing":     `{}`,
		"range":       `{"answers":{"Q1":7}}`,
		"fraction":    `{"answers":{"Q1":2.5}}`,
		"non-numeric": `{"answers":{"Q1":"four"}}`,
		"not json":    `answers`,
	} {
		resp, out := do(t, ts, http.MethodPost, "/api/assessments", body)
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", name, resp.StatusCode)
		}
		if out["error"] == nil {
			t.Fatalf("%s: expected error envelope, got %v", name, out)
		}
	}
}

func TestPrecompute(t *testing.T) {
	ts := newTestServer(t)

	resp, _ := do(t, ts, http.MethodPost, "/api/assessments/precompute", `{"answers":{"Q1":3,"Q2":3}}`)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204 below halfway, got %d", resp.StatusCode)
	}

	resp, body := do(t, ts, http.MethodPost, "/api/assessments/precompute", allAnswersJSON(2))
	if resp.StatusCode != http.StatusAccepted {
		t.Fatalf("expected 202, got %d", resp.StatusCode)
	}
	if body["results"] == nil {
		t.Fatalf("expected provisional results, got %v", body)
	}
	ts.service.Wait()
}

func TestContentReturnsEverySection(t *testing.T) {
	ts := newTestServer(t)

	_, body := do(t, ts, http.MethodPost, "/api/assessments", allAnswersJSON(3))
	id := body["id"].(string)

	resp, body := do(t, ts, http.MethodGet, "/api/results/"+id+"/content", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	sections := body["sections"].(map[string]any)
	for _, s := range domain.Sections {
		sc, ok := sections[string(s)].(map[string]any)
		if !ok || sc["status"] != domain.StatusSuccess {
			t.Fatalf("section %s missing or unsettled: %v", s, sections[string(s)])
		}
	}

	resp, _ = do(t, ts, http.MethodGet, "/api/results/zzzzzzzz/content", "")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown result, got %d", resp.StatusCode)
	}
}

func TestQuestionsAndHealth(t *testing.T) {
	ts := newTestServer(t)

	resp, body := do(t, ts, http.MethodGet, "/api/questions", "")
	if resp.StatusCode != http.StatusOK || len(body["questions"].([]any)) != 15 {
		t.Fatalf("questions: status %d body %v", resp.StatusCode, body)
	}

	resp, err := ts.server.Client().Get(ts.server.URL + "/healthz")
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("healthz: %v %v", resp, err)
	}
	resp.Body.Close()
}
