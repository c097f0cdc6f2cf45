package wordpress

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

// Media is the response of a media upload
type Media struct {
	ID          int      `json:"id"`
	Link        string   `json:"link"`
	Description Rendered `json:"description"`
}

// Post is the response of a post creation
type Post struct {
	ID   int    `json:"id"`
	Link string `json:"link"`
}

// Rendered wraps a WordPress rendered-HTML field
type Rendered struct {
	Rendered string `json:"rendered"`
}

// Client talks to a WordPress REST API using application-password
// credentials supplied at construction time
type Client struct {
	baseURL    string
	apiKey     string
	secret     string
	httpClient *http.Client
}

// NewClient creates a client for the given wp-json base URL
func NewClient(baseURL, apiKey, secret string) *Client {
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		secret:     secret,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

// UploadMedia uploads a binary attachment and returns the created media item
func (c *Client) UploadMedia(ctx context.Context, title, filename string, file io.Reader) (*Media, error) {
	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)

	if err := form.WriteField("title", title); err != nil {
		return nil, fmt.Errorf("encode title: %w", err)
	}
	part, err := form.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("create file part: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("copy file: %w", err)
	}
	if err := form.Close(); err != nil {
		return nil, fmt.Errorf("close form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/wp/v2/media", &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	media := &Media{}
	if err := c.do(req, media); err != nil {
		return nil, fmt.Errorf("upload media: %w", err)
	}
	return media, nil
}

// CreatePost creates a published post referencing already-uploaded content
func (c *Client) CreatePost(ctx context.Context, title, content string, categories []int) (*Post, error) {
	body, err := json.Marshal(struct {
		Status     string `json:"status"`
		Title      string `json:"title"`
		Content    string `json:"content"`
		Categories []int  `json:"categories"`
	}{
		Status:     "publish",
		Title:      title,
		Content:    content,
		Categories: categories,
	})
	if err != nil {
		return nil, fmt.Errorf("encode post: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/wp/v2/posts", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	post := &Post{}
	if err := c.do(req, post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return post, nil
}

// do executes an authenticated request and decodes a 2xx response into out
func (c *Client) do(req *http.Request, out interface{}) error {
	req.SetBasicAuth(c.apiKey, c.secret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("status %d: %s", resp.StatusCode, body)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
