package test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/ccollicutt/benchgraph/internal/cli"
	"github.com/ccollicutt/benchgraph/pkg/webhook"
)

// webhookRecorder captures every request an endpoint receives.
type webhookRecorder struct {
	mu       sync.Mutex
	auth     []string
	payloads []webhook.Payload
	status   int
}

func newWebhookServer(t *testing.T, status int) (*httptest.Server, *webhookRecorder) {
	t.Helper()
	rec := &webhookRecorder{status: status}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var p webhook.Payload
		if err := json.Unmarshal(body, &p); err != nil {
			t.Errorf("Invalid JSON payload: %v", err)
		}

		rec.mu.Lock()
		rec.auth = append(rec.auth, r.Header.Get("Authorization"))
		rec.payloads = append(rec.payloads, p)
		rec.mu.Unlock()

		w.WriteHeader(rec.status)
	}))
	t.Cleanup(server.Close)
	return server, rec
}

func (r *webhookRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.payloads)
}

// writeWebhookConfig writes a config whose webhooks all point at url.
func writeWebhookConfig(t *testing.T, input, url string, triggers ...string) string {
	t.Helper()
	var b strings.Builder
	b.WriteString("input: " + input + "\nwebhooks:\n")
	for _, trigger := range triggers {
		b.WriteString("  - name: " + trigger + "\n")
		b.WriteString("    url: " + url + "\n")
		b.WriteString("    token: ${BENCHGRAPH_TEST_WEBHOOK_TOKEN}\n")
		b.WriteString("    trigger: " + trigger + "\n")
	}

	path := filepath.Join(t.TempDir(), "webhooks.yaml")
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

// TestIntegration_WebhookTriggers renders the stress fixture, which drops
// operations, and checks which configured triggers fire.
func TestIntegration_WebhookTriggers(t *testing.T) {
	chdir(t)
	t.Setenv("BENCHGRAPH_TEST_WEBHOOK_TOKEN", "test-token-123")

	server, rec := newWebhookServer(t, http.StatusOK)
	input := filepath.Join(projectRoot, "testdata", "results", "stress_multi.txt")
	configFile := writeWebhookConfig(t, input, server.URL, "on_dropped", "always", "never")
	out := filepath.Join(t.TempDir(), "chart.svg")

	code, _, stderr := runCLI(t, "render", "-c", configFile, "-o", out)
	if code != cli.ExitOK {
		t.Fatalf("exit code = %d, stderr:\n%s", code, stderr)
	}

	if rec.count() != 2 {
		t.Fatalf("webhook calls = %d, want 2 (on_dropped and always)", rec.count())
	}
	for i, auth := range rec.auth {
		if auth != "Bearer test-token-123" {
			t.Errorf("request %d Authorization = %q", i, auth)
		}
	}

	p := rec.payloads[0]
	if p.Event != webhook.EventRendered {
		t.Errorf("event = %q", p.Event)
	}
	if p.Chart != out {
		t.Errorf("chart = %q, want %q", p.Chart, out)
	}
	if p.Report == nil || p.Report.Summary.DroppedOperations != 3 {
		t.Errorf("report = %+v", p.Report)
	}

	for _, name := range []string{"Webhook on_dropped: sent", "Webhook always: sent"} {
		if !strings.Contains(stderr, name) {
			t.Errorf("stderr missing %q:\n%s", name, stderr)
		}
	}
}

// TestIntegration_WebhookNoDrops checks on_dropped stays quiet for aligned runs.
func TestIntegration_WebhookNoDrops(t *testing.T) {
	chdir(t)

	server, rec := newWebhookServer(t, http.StatusOK)
	input := filepath.Join(projectRoot, "testdata", "results", "scenario.txt")
	configFile := writeWebhookConfig(t, input, server.URL, "on_dropped", "always")

	code, _, stderr := runCLI(t, "render", "-c", configFile, "-o", filepath.Join(t.TempDir(), "chart.png"))
	if code != cli.ExitOK {
		t.Fatalf("exit code = %d, stderr:\n%s", code, stderr)
	}
	if rec.count() != 1 {
		t.Errorf("webhook calls = %d, want 1 (always only)", rec.count())
	}
}

// TestIntegration_WebhookFailureDoesNotFailRender checks a failing endpoint
// is reported but the chart is still written and the exit code is 0.
func TestIntegration_WebhookFailureDoesNotFailRender(t *testing.T) {
	chdir(t)

	server, _ := newWebhookServer(t, http.StatusInternalServerError)
	out := filepath.Join(t.TempDir(), "chart.png")

	code, _, stderr := runCLI(t, "render",
		"-i", filepath.Join("testdata", "results", "scenario.txt"),
		"-o", out,
		"--webhook-url", server.URL,
		"--webhook-trigger", "always")
	if code != cli.ExitOK {
		t.Fatalf("exit code = %d, stderr:\n%s", code, stderr)
	}
	requireFile(t, out)
	if !strings.Contains(stderr, "Webhook cli: failed") {
		t.Errorf("stderr = %q", stderr)
	}
}
