package moltbook

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	apperrors "github.com/busse/molt-in-the-mist/pkg/errors"
)

func TestCreatePost(t *testing.T) {
	var gotAuth, gotIdempotency string
	var gotReq PostRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotIdempotency = r.Header.Get("Idempotency-Key")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]string{"id": "abc123"})
	}))
	defer srv.Close()

	c, err := NewClient("secret-key", srv.URL)
	if err != nil {
		t.Fatal(err)
	}

	resp, err := c.CreatePost(context.Background(), PostRequest{
		Title:   "Who runs Moltbook?",
		Content: "body",
	})
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}

	if gotAuth != "Bearer secret-key" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if gotIdempotency == "" {
		t.Error("expected an Idempotency-Key header")
	}
	if gotReq.Submolt != DefaultSubmolt {
		t.Errorf("Submolt = %q, want default", gotReq.Submolt)
	}
	if resp.PostID() != "abc123" {
		t.Errorf("PostID = %q", resp.PostID())
	}
	if resp.URL() != "https://www.moltbook.com/post/abc123" {
		t.Errorf("URL = %q", resp.URL())
	}
}

func TestCreatePostRetriesServerErrors(t *testing.T) {
	var calls int
	var keys []string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		keys = append(keys, r.Header.Get("Idempotency-Key"))
		if calls < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"id": "after-retry"})
	}))
	defer srv.Close()

	c, _ := NewClient("k", srv.URL)
	resp, err := c.CreatePost(context.Background(), PostRequest{Title: "t", Content: "c"})
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
	if resp.PostID() != "after-retry" {
		t.Errorf("PostID = %q", resp.PostID())
	}
	for _, k := range keys[1:] {
		if k != keys[0] {
			t.Error("idempotency key changed across retries")
		}
	}
}

func TestCreatePostTerminalClientError(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"error":"title too long"}`))
	}))
	defer srv.Close()

	c, _ := NewClient("k", srv.URL)
	_, err := c.CreatePost(context.Background(), PostRequest{Title: "t", Content: "c"})
	if err == nil {
		t.Fatal("expected error")
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1 (4xx must not retry)", calls)
	}
	if !strings.Contains(err.Error(), "title too long") {
		t.Errorf("error should include response body, got %v", err)
	}
}

func TestCreatePostUnauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c, _ := NewClient("bad-key", srv.URL)
	_, err := c.CreatePost(context.Background(), PostRequest{Title: "t"})
	if apperrors.GetCode(err) != apperrors.ErrCodeUnauthorized {
		t.Errorf("code = %v, want unauthorized", apperrors.GetCode(err))
	}
}

func TestNewClientRequiresKey(t *testing.T) {
	if _, err := NewClient("", ""); err == nil {
		t.Fatal("expected error for missing key")
	}
}

func TestLoadContentStripsTitle(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "post.md")
	doc := "# The headline\n\n\nFirst paragraph.\n\nSecond.\n"
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	content, err := LoadContent(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(content, "First paragraph.") {
		t.Errorf("content = %q, want title and blanks stripped", content)
	}
}

func TestLoadContentNoTitle(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "post.md")
	if err := os.WriteFile(path, []byte("plain body\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	content, err := LoadContent(path)
	if err != nil {
		t.Fatal(err)
	}
	if content != "plain body\n" {
		t.Errorf("content = %q, want unchanged", content)
	}
}

func TestPreview(t *testing.T) {
	head, rest := Preview("abcdef", 4)
	if head != "abcd" || rest != 2 {
		t.Errorf("got %q, %d", head, rest)
	}
	head, rest = Preview("ab", 4)
	if head != "ab" || rest != 0 {
		t.Errorf("got %q, %d", head, rest)
	}
}
