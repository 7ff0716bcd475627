package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestCommands(t *testing.T) {
	var gotMethod, gotURI string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotURI = r.Method, r.RequestURI
		if r.URL.Path == "/api/v1/anime/0" {
			w.WriteHeader(http.StatusBadRequest)
		}
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}))
	defer ts.Close()

	tests := []struct {
		args       []string
		wantMethod string
		wantURI    string
		wantErr    bool
	}{
		{[]string{"health"}, http.MethodGet, "/api/v1/health", false},
		{[]string{"reload"}, http.MethodPost, "/api/v1/home/reload", false},
		{[]string{"list", "top/anime?limit=5"}, http.MethodGet, "/api/v1/list?endpoint=top%2Fanime%3Flimit%3D5", false},
		{[]string{"search", "cowboy", "bebop"}, http.MethodGet, "/api/v1/search?q=cowboy+bebop", false},
		{[]string{"anime", "0"}, http.MethodGet, "/api/v1/anime/0", true},
	}
	for _, tt := range tests {
		t.Run(tt.args[0], func(t *testing.T) {
			var out bytes.Buffer
			cmd := newRootCmd(&out)
			cmd.SetArgs(append([]string{"--server", ts.URL}, tt.args...))
			cmd.SetErr(&bytes.Buffer{})

			err := cmd.Execute()
			if tt.wantErr && err == nil {
				t.Fatalf("want error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("Execute: %v", err)
			}
			if gotMethod != tt.wantMethod || gotURI != tt.wantURI {
				t.Fatalf("request: want %s %s, got %s %s", tt.wantMethod, tt.wantURI, gotMethod, gotURI)
			}
			if !strings.Contains(out.String(), `"status": "ok"`) {
				t.Fatalf("output: want pretty-printed body, got %q", out.String())
			}
		})
	}
}
