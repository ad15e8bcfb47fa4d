package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/rcliao/text-assist/internal/assist"
	"github.com/rcliao/text-assist/internal/generate"
	"github.com/rcliao/text-assist/internal/memory"
	"github.com/rcliao/text-assist/internal/model"
	"github.com/rcliao/text-assist/internal/telemetry"
)

type fakeGen struct {
	out string
}

func (f *fakeGen) Name() string { return "fake" }

func (f *fakeGen) Generate(context.Context, string, generate.Options) (string, error) {
	return f.out, nil
}

type testServer struct {
	srv *httptest.Server
	mem *memory.Store
	reg *prometheus.Registry
}

func newTestServer(t *testing.T, gen generate.Generator, apiKey string) *testServer {
	t.Helper()
	reg := prometheus.NewRegistry()
	m := telemetry.NewMetrics(reg)
	mem, err := memory.NewStore(context.Background(), memory.Config{Metrics: m})
	if err != nil {
		t.Fatal(err)
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	r := NewRouter(Deps{
		Assistant:      assist.New(assist.Config{Generator: gen, Memory: mem, Metrics: m, Logger: logger}),
		Memory:         mem,
		Metrics:        m,
		Gatherer:       reg,
		Logger:         logger,
		APIKey:         apiKey,
		AllowedOrigins: []string{"chrome-extension://abc"},
		Version:        "test",
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return &testServer{srv: srv, mem: mem, reg: reg}
}

func (ts *testServer) do(t *testing.T, method, path, body string, hdr ...string) *http.Response {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, ts.srv.URL+path, rd)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i+1 < len(hdr); i += 2 {
		req.Header.Set(hdr[i], hdr[i+1])
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode: %v", err)
	}
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t, nil, "secret")
	resp := ts.do(t, http.MethodGet, "/health", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if resp.Header.Get("X-Request-ID") == "" {
		t.Error("missing X-Request-ID")
	}
	var body healthResponse
	decode(t, resp, &body)
	if body.Status != "ok" || body.Version != "test" {
		t.Errorf("body = %+v", body)
	}
}

func TestRequestIDIsReused(t *testing.T) {
	ts := newTestServer(t, nil, "")
	resp := ts.do(t, http.MethodGet, "/health", "", "X-Request-ID", "abc123")
	if got := resp.Header.Get("X-Request-ID"); got != "abc123" {
		t.Errorf("X-Request-ID = %q", got)
	}
}

func TestBearerAuth(t *testing.T) {
	ts := newTestServer(t, nil, "secret")

	resp := ts.do(t, http.MethodGet, "/v1/memory", "")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("no token: status = %d", resp.StatusCode)
	}
	resp = ts.do(t, http.MethodGet, "/v1/memory", "", "Authorization", "Bearer wrong")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("wrong token: status = %d", resp.StatusCode)
	}
	resp = ts.do(t, http.MethodGet, "/v1/memory", "", "Authorization", "Bearer secret")
	if resp.StatusCode != http.StatusOK {
		t.Errorf("good token: status = %d", resp.StatusCode)
	}
}

func TestCORS(t *testing.T) {
	ts := newTestServer(t, nil, "")

	resp := ts.do(t, http.MethodOptions, "/v1/route", "", "Origin", "chrome-extension://abc")
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("preflight status = %d", resp.StatusCode)
	}
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "chrome-extension://abc" {
		t.Errorf("allow origin = %q", got)
	}

	resp = ts.do(t, http.MethodGet, "/health", "", "Origin", "https://evil.example")
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("unlisted origin allowed: %q", got)
	}
}

func TestRoute(t *testing.T) {
	ts := newTestServer(t, nil, "")

	resp := ts.do(t, http.MethodPost, "/v1/route", `{"instruction":"translate this to Spanish","text":"hello"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var body struct {
		Routing struct {
			Intent         string `json:"intent"`
			TargetLanguage string `json:"targetLanguage"`
		} `json:"routing"`
		Request map[string]any `json:"request"`
	}
	decode(t, resp, &body)
	if body.Routing.Intent != "translate" || body.Routing.TargetLanguage != "es" {
		t.Errorf("routing = %+v", body.Routing)
	}
	if body.Request["text"] != "hello" {
		t.Errorf("request = %v", body.Request)
	}
}

func TestRoute_BadInput(t *testing.T) {
	ts := newTestServer(t, nil, "")
	tests := map[string]string{
		"empty":          `{}`,
		"unknown intent": `{"text":"x","intent":"dance"}`,
		"malformed":      `{"text":`,
		"unknown field":  `{"txt":"x"}`,
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			resp := ts.do(t, http.MethodPost, "/v1/route", body)
			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("status = %d", resp.StatusCode)
			}
			var e map[string]string
			decode(t, resp, &e)
			if e["error"] == "" {
				t.Error("missing error message")
			}
		})
	}
}

func TestAssist(t *testing.T) {
	ts := newTestServer(t, &fakeGen{out: "Hola"}, "")

	resp := ts.do(t, http.MethodPost, "/v1/assist", `{"instruction":"translate to spanish","text":"hello","useMemory":true}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var out struct {
		Result  string `json:"result"`
		EntryID string `json:"entryId"`
	}
	decode(t, resp, &out)
	if out.Result != "Hola" || out.EntryID == "" {
		t.Errorf("out = %+v", out)
	}
	if ts.mem.Len() != 1 {
		t.Errorf("memory len = %d", ts.mem.Len())
	}
}

func TestAssist_Unavailable(t *testing.T) {
	ts := newTestServer(t, nil, "")
	resp := ts.do(t, http.MethodPost, "/v1/assist", `{"text":"fix the spelling"}`)
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("status = %d", resp.StatusCode)
	}
}

func TestMemoryLifecycle(t *testing.T) {
	ts := newTestServer(t, nil, "")

	resp := ts.do(t, http.MethodPost, "/v1/memory", `{"query":"write a pasta recipe","content":"Boil pasta, add sauce","metadata":{"intent":"write"}}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("add status = %d", resp.StatusCode)
	}
	var e model.Entry
	decode(t, resp, &e)
	if e.ID == "" || e.Metadata["intent"] != "write" {
		t.Fatalf("entry = %+v", e)
	}

	resp = ts.do(t, http.MethodGet, "/v1/memory/"+e.ID, "")
	if resp.StatusCode != http.StatusOK {
		t.Errorf("get status = %d", resp.StatusCode)
	}

	resp = ts.do(t, http.MethodPost, "/v1/memory/retrieve", `{"query":"pasta dinner","topK":2}`)
	var rr retrieveResponse
	decode(t, resp, &rr)
	if len(rr.Results) != 1 || rr.Results[0].ID != e.ID || rr.Results[0].RetrievalType != model.RetrievalSemantic {
		t.Errorf("retrieve = %+v", rr)
	}

	resp = ts.do(t, http.MethodPost, "/v1/memory/context", `{"query":"what did we discuss earlier"}`)
	var cr contextResponse
	decode(t, resp, &cr)
	if !strings.HasPrefix(cr.Context, memory.ContextHeader) || !strings.Contains(cr.Context, "(Recent)") {
		t.Errorf("context = %q", cr.Context)
	}

	resp = ts.do(t, http.MethodGet, "/v1/memory/stats", "")
	var st model.Stats
	decode(t, resp, &st)
	if st.TotalEntries != 1 || st.Intents["write"] != 1 {
		t.Errorf("stats = %+v", st)
	}

	resp = ts.do(t, http.MethodDelete, "/v1/memory/"+e.ID, "")
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("delete status = %d", resp.StatusCode)
	}
	resp = ts.do(t, http.MethodDelete, "/v1/memory/"+e.ID, "")
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("second delete status = %d", resp.StatusCode)
	}
	resp = ts.do(t, http.MethodGet, "/v1/memory/"+e.ID, "")
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("get deleted status = %d", resp.StatusCode)
	}
}

func TestMemoryAdd_Validation(t *testing.T) {
	ts := newTestServer(t, nil, "")
	resp := ts.do(t, http.MethodPost, "/v1/memory", `{"query":"  ","content":"x"}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d", resp.StatusCode)
	}
	resp = ts.do(t, http.MethodPost, "/v1/memory/retrieve", `{"query":""}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("retrieve status = %d", resp.StatusCode)
	}
}

func TestExportImportClear(t *testing.T) {
	ts := newTestServer(t, nil, "")
	ctx := context.Background()
	for _, q := range []string{"first question", "second question"} {
		if _, err := ts.mem.AddConversation(ctx, q, "answer to "+q, nil); err != nil {
			t.Fatal(err)
		}
	}

	resp := ts.do(t, http.MethodGet, "/v1/memory/export", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("export status = %d", resp.StatusCode)
	}
	exported, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}

	resp = ts.do(t, http.MethodDelete, "/v1/memory", "")
	if resp.StatusCode != http.StatusNoContent || ts.mem.Len() != 0 {
		t.Fatalf("clear status = %d len = %d", resp.StatusCode, ts.mem.Len())
	}

	resp = ts.do(t, http.MethodPost, "/v1/memory/import", string(exported))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("import status = %d", resp.StatusCode)
	}
	var ir importResponse
	decode(t, resp, &ir)
	if ir.Imported != 2 || ts.mem.Len() != 2 {
		t.Errorf("imported = %d len = %d", ir.Imported, ts.mem.Len())
	}

	resp = ts.do(t, http.MethodPost, "/v1/memory/import", `{"not":"an array"}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("bad import status = %d", resp.StatusCode)
	}
	if ts.mem.Len() != 2 {
		t.Errorf("failed import changed store: len = %d", ts.mem.Len())
	}
}

func TestMetricsEndpoint(t *testing.T) {
	ts := newTestServer(t, nil, "")
	ts.do(t, http.MethodGet, "/v1/memory", "")

	resp := ts.do(t, http.MethodGet, "/metrics", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if !bytes.Contains(body, []byte("text_assist_http_requests_total")) {
		t.Error("http request counter not exported")
	}

	mfs, err := ts.reg.Gather()
	if err != nil {
		t.Fatal(err)
	}
	found := false
	for _, mf := range mfs {
		if mf.GetName() != "text_assist_http_requests_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, l := range m.GetLabel() {
				if l.GetName() == "route" && strings.TrimSuffix(l.GetValue(), "/") == "/v1/memory" {
					found = true
				}
			}
		}
	}
	if !found {
		t.Error("request not labelled by route pattern")
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{memory.ErrInvalidInput, http.StatusBadRequest},
		{memory.ErrInvalidImport, http.StatusBadRequest},
		{&generate.Error{Backend: "x", Op: "generate", Err: generate.ErrUnavailable}, http.StatusServiceUnavailable},
		{generate.ErrEmptyOutput, http.StatusInternalServerError},
		{io.EOF, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := statusFor(tt.err); got != tt.want {
			t.Errorf("statusFor(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
