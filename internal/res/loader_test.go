package res

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestParseDataURL(t *testing.T) {
	tests := []struct {
		url  string
		mime string
		data string
	}{
		{"data:text/csv;base64,YSxiCjEsMgo=", "text/csv", "a,b\n1,2\n"},
		{"data:application/json,%5B%5D", "application/json", "[]"},
		{"data:,hello", "application/octet-stream", "hello"},
	}
	for _, tt := range tests {
		r, err := parseDataURL(tt.url)
		if err != nil {
			t.Fatalf("parseDataURL(%q): %v", tt.url, err)
		}
		if r.MimeType != tt.mime || string(r.Data) != tt.data {
			t.Errorf("parseDataURL(%q) = %q %q", tt.url, r.MimeType, r.Data)
		}
	}
	if _, err := parseDataURL("data:text/csv;base64,!!!"); err == nil {
		t.Error("expected an error for invalid base64")
	}
}

func TestLoadLocalAndSearchPaths(t *testing.T) {
	dir := t.TempDir()
	fonts := filepath.Join(dir, "fonts")
	if err := os.MkdirAll(fonts, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "budget.csv"), []byte("a\n1\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(fonts, "Body.ttf"), []byte("ttf"), 0644); err != nil {
		t.Fatal(err)
	}

	l := NewLoader(dir)
	r, err := l.Load("budget.csv")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if r.Type != ResourceTypeData || r.MimeType != "text/csv" {
		t.Errorf("resource = %+v", r)
	}

	l.AddSearchPath(fonts)
	font, err := l.LoadFont("Body.ttf")
	if err != nil {
		t.Fatalf("LoadFont failed: %v", err)
	}
	if font.GetString() != "ttf" {
		t.Errorf("font data = %q", font.GetString())
	}

	if _, err := l.LoadFont("budget.csv"); err == nil {
		t.Error("expected an error loading data as a font")
	}
	if _, err := l.Load("missing.json"); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestLoadRemoteCaches(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		if r.URL.Path == "/missing.json" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(`[{"a":1}]`))
	}))
	defer srv.Close()

	l := NewLoader("")
	for i := 0; i < 2; i++ {
		r, err := l.LoadData(context.Background(), srv.URL+"/records.json")
		if err != nil {
			t.Fatalf("LoadData failed: %v", err)
		}
		if r.MimeType != "application/json" {
			t.Errorf("mime = %q", r.MimeType)
		}
	}
	if hits != 1 {
		t.Errorf("server hit %d times, want 1", hits)
	}

	if _, err := l.Load(srv.URL + "/missing.json"); err == nil {
		t.Error("expected an error for a 404")
	}
}

func TestLoadRemoteHonorsContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("a\n"))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewLoader("").LoadContext(ctx, srv.URL+"/a.csv"); err == nil {
		t.Error("expected an error with a cancelled context")
	}
}
