package util

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestCreateFileMakesParents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "out.png")
	f, err := CreateFile(path)
	if err != nil {
		t.Fatalf("CreateFile: %v", err)
	}
	f.Close()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("file not created: %v", err)
	}
}

func TestGetBytes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte("card"))
	}))
	defer srv.Close()

	b, err := GetBytes(context.Background(), srv.URL+"/ok")
	if err != nil || string(b) != "card" {
		t.Errorf("GetBytes ok: %q, %v", b, err)
	}
	if _, err := GetBytes(context.Background(), srv.URL+"/missing"); err == nil {
		t.Error("expected error for 404")
	}
}
