package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/crategraph/pkg/depgraph"
)

func demoGraph() *depgraph.Graph {
	g := depgraph.NewGraph()
	g.Add(depgraph.PackageID{Name: "demo", Version: "1.0"}, []string{"left", "right"})
	g.Add(depgraph.PackageID{Name: "left", Version: "1.0"}, []string{"leaf"})
	g.Add(depgraph.PackageID{Name: "right", Version: "1.0"}, []string{"leaf"})
	g.Add(depgraph.PackageID{Name: "leaf", Version: "1.0"}, nil)
	for _, name := range []string{"demo", "left", "right", "leaf"} {
		g.SetVersion(name, "1.0")
	}
	return g
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	s := New(demoGraph(), log.New(io.Discard))
	srv := httptest.NewServer(s.Router())
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, url string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp, body
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)
	resp, body := get(t, srv.URL+"/healthz")
	if resp.StatusCode != http.StatusOK || string(body) != "ok" {
		t.Errorf("healthz = %d %q", resp.StatusCode, body)
	}
	if resp.Header.Get("X-Request-ID") == "" {
		t.Error("missing X-Request-ID header")
	}
}

func TestGraphEndpoint(t *testing.T) {
	srv := newTestServer(t)
	resp, body := get(t, srv.URL+"/api/graph")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var snapshot map[string][]string
	if err := json.Unmarshal(body, &snapshot); err != nil {
		t.Fatalf("snapshot decode: %v", err)
	}
	if len(snapshot) != 4 {
		t.Errorf("snapshot has %d keys, want 4", len(snapshot))
	}
	if deps := snapshot["demo@1.0"]; len(deps) != 2 {
		t.Errorf("demo deps = %v", deps)
	}
}

func TestOrderEndpoint(t *testing.T) {
	srv := newTestServer(t)
	resp, body := get(t, srv.URL+"/api/order")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var out struct {
		Root  string   `json:"root"`
		Order []string `json:"order"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatal(err)
	}
	if out.Root != "demo@1.0" {
		t.Errorf("root = %q", out.Root)
	}
	if len(out.Order) != 4 || out.Order[len(out.Order)-1] != "demo@1.0" {
		t.Errorf("order = %v, want demo last", out.Order)
	}
}

func TestRdepsEndpoint(t *testing.T) {
	srv := newTestServer(t)

	resp, body := get(t, srv.URL+"/api/rdeps/leaf")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var out struct {
		Package    string   `json:"package"`
		Dependents []string `json:"dependents"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatal(err)
	}
	if len(out.Dependents) != 2 {
		t.Errorf("dependents = %v, want left and right", out.Dependents)
	}

	resp, body = get(t, srv.URL+"/api/rdeps/ghost")
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("unknown package status = %d, want 404", resp.StatusCode)
	}
	if !strings.Contains(string(body), "PACKAGE_NOT_FOUND") {
		t.Errorf("error body = %s", body)
	}
}

func TestDOTEndpoint(t *testing.T) {
	srv := newTestServer(t)
	resp, body := get(t, srv.URL+"/api/graph.dot")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if !strings.Contains(string(body), `"demo@1.0" -> "left@1.0";`) {
		t.Errorf("DOT body missing edge:\n%s", body)
	}
}
