package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestLocalStoragePublish(t *testing.T) {
	tmpDir := t.TempDir()
	src := filepath.Join(tmpDir, "render.mp4")
	if err := os.WriteFile(src, []byte("fake video data"), 0644); err != nil {
		t.Fatal(err)
	}

	outDir := filepath.Join(tmpDir, "out")
	s := NewLocalStorage(outDir)

	path, err := s.Publish(context.Background(), src, "startpost/v1/square.mp4")
	if err != nil {
		t.Fatalf("Publish() error = %v", err)
	}

	if !filepath.IsAbs(path) {
		t.Errorf("Publish() path = %q, want absolute", path)
	}

	data, err := os.ReadFile(filepath.Join(outDir, "startpost", "v1", "square.mp4"))
	if err != nil {
		t.Fatalf("published file missing: %v", err)
	}
	if string(data) != "fake video data" {
		t.Errorf("content = %q", data)
	}
}

func TestLocalStoragePublishOverwrites(t *testing.T) {
	tmpDir := t.TempDir()
	src := filepath.Join(tmpDir, "thumb.jpg")
	s := NewLocalStorage(filepath.Join(tmpDir, "out"))

	for _, content := range []string{"first", "second"} {
		if err := os.WriteFile(src, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := s.Publish(context.Background(), src, "thumb.jpg"); err != nil {
			t.Fatalf("Publish() error = %v", err)
		}
	}

	data, _ := os.ReadFile(filepath.Join(tmpDir, "out", "thumb.jpg"))
	if string(data) != "second" {
		t.Errorf("content = %q, want second", data)
	}
}

func TestLocalStoragePublishErrors(t *testing.T) {
	tmpDir := t.TempDir()
	s := NewLocalStorage(tmpDir)

	tests := []struct {
		name       string
		src        string
		objectName string
	}{
		{"missingSource", filepath.Join(tmpDir, "missing.mp4"), "a.mp4"},
		{"escapesOutputDir", filepath.Join(tmpDir, "x"), "../escape.mp4"},
		{"absoluteName", filepath.Join(tmpDir, "x"), "/etc/escape.mp4"},
		{"emptyName", filepath.Join(tmpDir, "x"), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := s.Publish(context.Background(), tt.src, tt.objectName); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestObjectURL(t *testing.T) {
	tests := []struct {
		name   string
		base   string
		bucket string
		object string
		want   string
	}{
		{"default", "", "media", "startpost/v1/square.mp4", "https://storage.googleapis.com/media/startpost/v1/square.mp4"},
		{"customBase", "https://cdn.example.com/", "media", "/a.jpg", "https://cdn.example.com/media/a.jpg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := objectURL(tt.base, tt.bucket, tt.object); got != tt.want {
				t.Errorf("objectURL() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestContentType(t *testing.T) {
	tests := map[string]string{
		"a.mp4":   "video/mp4",
		"b.JPG":   "image/jpeg",
		"c.nope1": "application/octet-stream",
	}
	for name, want := range tests {
		if got := contentType(name); got != want {
			t.Errorf("contentType(%q) = %q, want %q", name, got, want)
		}
	}
}

func TestNewGCSStorageRequiresBucket(t *testing.T) {
	if _, err := NewGCSStorage(context.Background(), GCSOptions{}); err == nil {
		t.Error("expected error without bucket")
	}
}
