package labelstudio

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client communicates with a Label Studio server over its REST API.
// A zero-valued API key leaves the client unconfigured; callers should
// check Configured before starting annotation workflows.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Configured reports whether an API key is set.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// BaseURL returns the server address the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ProjectURL returns the browser URL for a project's data manager view.
func (c *Client) ProjectURL(projectID int) string {
	return fmt.Sprintf("%s/projects/%d/data", c.baseURL, projectID)
}

// Project describes a Label Studio project.
type Project struct {
	ID        int    `json:"id"`
	Title     string `json:"title"`
	CreatedAt string `json:"created_at"`
	TaskCount int    `json:"task_number"`
}

// TaskData carries one parsed section into Label Studio for review.
type TaskData struct {
	ResumeText      string            `json:"resume_text"`
	SectionName     string            `json:"section_name"`
	OriginalParsing map[string]string `json:"original_parsing,omitempty"`
	Timestamp       string            `json:"timestamp,omitempty"`
}

// Task is one imported task with any annotations attached to it.
type Task struct {
	ID          int          `json:"id"`
	Data        TaskData     `json:"data"`
	Annotations []Annotation `json:"annotations"`
}

// Annotation is one reviewer's submission on a task.
type Annotation struct {
	ID          int                `json:"id"`
	CompletedBy AnnotationUser     `json:"completed_by"`
	CreatedAt   string             `json:"created_at"`
	Result      []AnnotationResult `json:"result"`
}

type AnnotationUser struct {
	Email string `json:"email"`
}

// AnnotationResult is one control's value within an annotation.
type AnnotationResult struct {
	FromName string          `json:"from_name"`
	Value    AnnotationValue `json:"value"`
}

type AnnotationValue struct {
	Choices []string `json:"choices,omitempty"`
	Text    []string `json:"text,omitempty"`
	Rating  int      `json:"rating,omitempty"`
}

// CheckConnection verifies the server is reachable and the key is valid.
func (c *Client) CheckConnection(ctx context.Context) error {
	_, err := c.Projects(ctx)
	return err
}

// Projects lists all projects on the server.
func (c *Client) Projects(ctx context.Context) ([]Project, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/projects", nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Token "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("list projects: status %d: %s", resp.StatusCode, string(respBody))
	}

	var result struct {
		Results []Project `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode projects: %w", err)
	}
	return result.Results, nil
}

// CreateProject creates a new annotation project with the given labeling
// configuration XML.
func (c *Client) CreateProject(ctx context.Context, title, labelConfig string) (int, error) {
	body, err := json.Marshal(map[string]string{
		"title":        title,
		"label_config": labelConfig,
	})
	if err != nil {
		return 0, fmt.Errorf("marshal project: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/projects", bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Token "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return 0, fmt.Errorf("create project: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return 0, fmt.Errorf("create project %s: status %d: %s", title, resp.StatusCode, string(respBody))
	}

	var project Project
	if err := json.NewDecoder(resp.Body).Decode(&project); err != nil {
		return 0, fmt.Errorf("decode project: %w", err)
	}
	return project.ID, nil
}

// ImportTasks imports one task per parsed section into a project.
func (c *Client) ImportTasks(ctx context.Context, projectID int, tasks []TaskData) (int, error) {
	payload := make([]map[string]TaskData, 0, len(tasks))
	for _, t := range tasks {
		payload = append(payload, map[string]TaskData{"data": t})
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return 0, fmt.Errorf("marshal tasks: %w", err)
	}

	u := fmt.Sprintf("%s/api/projects/%d/import", c.baseURL, projectID)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Token "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return 0, fmt.Errorf("import tasks: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return 0, fmt.Errorf("import tasks into project %d: status %d: %s", projectID, resp.StatusCode, string(respBody))
	}

	var result struct {
		TaskCount int `json:"task_count"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return 0, fmt.Errorf("decode import result: %w", err)
	}
	return result.TaskCount, nil
}

// Tasks fetches all tasks of a project, annotations included.
func (c *Client) Tasks(ctx context.Context, projectID int) ([]Task, error) {
	u := fmt.Sprintf("%s/api/tasks?project=%d&fields=all", c.baseURL, projectID)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Token "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("list tasks for project %d: status %d: %s", projectID, resp.StatusCode, string(respBody))
	}

	var result struct {
		Tasks []Task `json:"tasks"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode tasks: %w", err)
	}
	return result.Tasks, nil
}

// Close releases any resources (currently a no-op).
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}
