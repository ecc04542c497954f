package gateway

import (
	"context"
	"errors"
	"testing"
)

// TestParseFileArrayBare tests a plain JSON array response
func TestParseFileArrayBare(t *testing.T) {
	output := `[{"filename":"index.html","type":"html","content":"<h1>Bonjour</h1>"}]`

	files, err := parseFileArray(output)
	if err != nil {
		t.Fatalf("Failed to parse file array: %v", err)
	}
	if len(files) != 1 || files[0].Filename != "index.html" {
		t.Errorf("Expected one index.html file, got %v", files)
	}
}

// TestParseFileArrayFenced tests a markdown-fenced response
func TestParseFileArrayFenced(t *testing.T) {
	output := "```json\n[{\"filename\":\"app.js\",\"type\":\"js\",\"content\":\"console.log(1)\"}]\n```"

	files, err := parseFileArray(output)
	if err != nil {
		t.Fatalf("Failed to parse fenced array: %v", err)
	}
	if len(files) != 1 || files[0].Filename != "app.js" {
		t.Errorf("Expected one app.js file, got %v", files)
	}
}

// TestParseFileArrayWrapped tests object-wrapped responses
func TestParseFileArrayWrapped(t *testing.T) {
	output := `{"files":[{"filename":"style.css","type":"css","content":"body{}"}]}`

	files, err := parseFileArray(output)
	if err != nil {
		t.Fatalf("Failed to parse wrapped array: %v", err)
	}
	if len(files) != 1 || files[0].Filename != "style.css" {
		t.Errorf("Expected one style.css file, got %v", files)
	}
}

// TestParseFileArrayInvalid tests rejection of unparseable output
func TestParseFileArrayInvalid(t *testing.T) {
	for _, output := range []string{"", "pas du JSON", `{"other":1}`} {
		if _, err := parseFileArray(output); err == nil {
			t.Errorf("Expected parse error for %q", output)
		}
	}
}

// TestShouldRetry tests transient-error detection
func TestShouldRetry(t *testing.T) {
	transient := []error{
		errors.New("rate limit exceeded"),
		errors.New("request timeout"),
		errors.New("connection reset by peer"),
		errors.New("502 bad gateway"),
	}
	for _, err := range transient {
		if !shouldRetry(err) {
			t.Errorf("Expected retry for %v", err)
		}
	}

	permanent := []error{
		nil,
		errors.New("401 unauthorized"),
		errors.New("invalid request"),
	}
	for _, err := range permanent {
		if shouldRetry(err) {
			t.Errorf("Expected no retry for %v", err)
		}
	}
}

// TestInvokeUnknownCategory tests category dispatch rejection
func TestInvokeUnknownCategory(t *testing.T) {
	client := NewClient("test-key")

	if _, err := client.Invoke(context.Background(), "prompt", "video"); err == nil {
		t.Error("Expected error for unknown category")
	}
}
