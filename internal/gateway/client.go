// Package gateway wraps the hosted LLM endpoint behind the
// invoke(prompt, category) capability the UI consumes. Blueprint derivation
// never depends on it; a gateway failure degrades the affected category only.
package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// Supported generation categories
const (
	CategoryWebsite = "website"
	CategoryApp     = "app"
	CategoryImage   = "image"
	CategoryMusic   = "music"
	CategoryAgent   = "agent"
)

// GeneratedFile is one file returned by the website/app categories
type GeneratedFile struct {
	Filename string `json:"filename"`
	Type     string `json:"type"`
	Content  string `json:"content"`
}

// Result is the gateway's category-dependent output: Files for website/app,
// ImageURL for image, Content for the text categories.
type Result struct {
	Category string          `json:"category"`
	Content  string          `json:"content,omitempty"`
	ImageURL string          `json:"image_url,omitempty"`
	Files    []GeneratedFile `json:"files,omitempty"`
}

// Client calls the hosted model endpoint
type Client struct {
	api   *openai.Client
	model string
}

// NewClient creates a gateway client for the given API key
func NewClient(apiKey string) *Client {
	return &Client{
		api:   openai.NewClient(apiKey),
		model: openai.GPT4oMini,
	}
}

// Invoke generates content for a category. One retry on transient errors.
func (c *Client) Invoke(ctx context.Context, prompt, category string) (*Result, error) {
	switch category {
	case CategoryWebsite:
		return c.generateFiles(ctx, category, fmt.Sprintf(sitePromptTemplate, prompt))
	case CategoryApp:
		return c.generateFiles(ctx, category, fmt.Sprintf(appPromptTemplate, prompt))
	case CategoryImage:
		return c.generateImage(ctx, prompt)
	case CategoryMusic:
		return c.generateText(ctx, category, fmt.Sprintf(musicPromptTemplate, prompt))
	case CategoryAgent:
		return c.generateText(ctx, category, fmt.Sprintf(agentPromptTemplate, prompt))
	default:
		return nil, fmt.Errorf("unsupported category: %s", category)
	}
}

func (c *Client) complete(ctx context.Context, userPrompt string, temperature float32) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: "Tu es un assistant de création qui suit strictement le format demandé."},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
		Temperature: temperature,
	}

	resp, err := c.api.CreateChatCompletion(ctx, req)
	if err != nil && shouldRetry(err) {
		time.Sleep(2 * time.Second)
		resp, err = c.api.CreateChatCompletion(ctx, req)
	}
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", errors.New("model returned an empty response")
	}
	return resp.Choices[0].Message.Content, nil
}

func (c *Client) generateText(ctx context.Context, category, prompt string) (*Result, error) {
	content, err := c.complete(ctx, prompt, 0.7)
	if err != nil {
		return nil, err
	}
	return &Result{Category: category, Content: content}, nil
}

func (c *Client) generateFiles(ctx context.Context, category, prompt string) (*Result, error) {
	output, err := c.complete(ctx, prompt, 0.3)
	if err != nil {
		return nil, err
	}

	files, err := parseFileArray(output)
	if err != nil {
		return nil, err
	}
	return &Result{Category: category, Files: files}, nil
}

func (c *Client) generateImage(ctx context.Context, prompt string) (*Result, error) {
	req := openai.ImageRequest{
		Prompt:         fmt.Sprintf(imagePromptTemplate, prompt),
		Model:          openai.CreateImageModelDallE3,
		Size:           openai.CreateImageSize1024x1024,
		ResponseFormat: openai.CreateImageResponseFormatURL,
		N:              1,
	}

	resp, err := c.api.CreateImage(ctx, req)
	if err != nil && shouldRetry(err) {
		time.Sleep(2 * time.Second)
		resp, err = c.api.CreateImage(ctx, req)
	}
	if err != nil {
		return nil, fmt.Errorf("image generation failed: %w", err)
	}
	if len(resp.Data) == 0 || resp.Data[0].URL == "" {
		return nil, errors.New("model returned no image")
	}
	return &Result{Category: CategoryImage, ImageURL: resp.Data[0].URL}, nil
}

// parseFileArray extracts the generated file list from model output: a bare
// JSON array, possibly fenced, possibly wrapped in a {"files": [...]} object.
func parseFileArray(output string) ([]GeneratedFile, error) {
	cleaned := strings.TrimSpace(output)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var files []GeneratedFile
	if err := json.Unmarshal([]byte(cleaned), &files); err == nil {
		return files, nil
	}

	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal([]byte(cleaned), &wrapper); err == nil {
		for _, key := range []string{"files", "result", "code", "output"} {
			if raw, ok := wrapper[key]; ok {
				if err := json.Unmarshal(raw, &files); err == nil && len(files) > 0 {
					return files, nil
				}
			}
		}
	}

	return nil, errors.New("could not parse generated file list")
}

// shouldRetry reports whether an API error looks transient
func shouldRetry(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range []string{
		"rate limit", "timeout", "connection reset",
		"502", "503", "504", "500 internal",
	} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
