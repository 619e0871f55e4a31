package summary

import (
	"context"
	"fmt"
	"strings"
	"time"

	"CashCast/internal/domain/models"
	xhttp "CashCast/pkg/http"
)

// OpenAISummarizer turns a forecast table into a short narrative via an
// OpenAI-compatible chat completions endpoint.
type OpenAISummarizer struct {
	baseURL string
	apiKey  string
	model   string
	client  *xhttp.Client
}

// NewOpenAISummarizer creates a summarizer against baseURL using the given
// API key and chat model.
func NewOpenAISummarizer(baseURL, apiKey, model string, timeout time.Duration) *OpenAISummarizer {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &OpenAISummarizer{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
		client:  xhttp.NewClient(xhttp.WithTimeout(timeout)),
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Summarize asks the chat model for a concise advisory summary of the
// forecast table. Failures come back wrapped as SummaryUnavailableError so
// the pipeline can degrade instead of failing the whole report.
func (s *OpenAISummarizer) Summarize(ctx context.Context, table string, horizon int) (string, error) {
	prompt := fmt.Sprintf(
		"Here is a %d-month cash flow forecast for a small business:\n\n%s\n\n"+
			"Summarize the outlook in 3-4 sentences for the business owner. "+
			"Call out the riskiest months and suggest one concrete action.",
		horizon, table)

	req := chatRequest{
		Model: s.model,
		Messages: []chatMessage{
			{Role: "system", Content: "You are an expert financial advisor for small businesses."},
			{Role: "user", Content: prompt},
		},
		Temperature: 0.4,
	}

	var resp chatResponse
	err := s.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodPost,
		URL:    s.baseURL + "/chat/completions",
		Headers: map[string]string{
			"Authorization": "Bearer " + s.apiKey,
		},
		Body: req,
	}, &resp)
	if err != nil {
		return "", &models.SummaryUnavailableError{Err: err}
	}
	if len(resp.Choices) == 0 {
		return "", &models.SummaryUnavailableError{Err: fmt.Errorf("empty completion")}
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
