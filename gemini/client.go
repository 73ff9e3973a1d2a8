package gemini

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"adcheck-bot/models"
)

// Client wraps the Gemini API for the two things the analysis pipeline
// needs: text embeddings for retrieval and multimodal generation. A single
// client serves both the primary and the fallback generative model.
type Client struct {
	genai          *genai.Client
	httpClient     *http.Client
	apiKey         string
	embedBase      string
	embeddingModel string
	primaryModel   string
	fallbackModel  string
}

// NewClient connects to the Gemini API. Model names may be passed with or
// without the "models/" prefix.
func NewClient(ctx context.Context, apiKey, primaryModel, fallbackModel, embeddingModel string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY not set")
	}

	sdk, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &Client{
		genai:          sdk,
		httpClient:     &http.Client{Timeout: 120 * time.Second},
		apiKey:         apiKey,
		embedBase:      apiBase,
		embeddingModel: qualifyModel(embeddingModel),
		primaryModel:   primaryModel,
		fallbackModel:  fallbackModel,
	}, nil
}

// Close releases the underlying API connection.
func (c *Client) Close() error {
	return c.genai.Close()
}

// PrimaryModel returns the name of the default generative model.
func (c *Client) PrimaryModel() string {
	return c.primaryModel
}

// FallbackModel returns the name of the fallback generative model.
func (c *Client) FallbackModel() string {
	return c.fallbackModel
}

func qualifyModel(name string) string {
	if strings.HasPrefix(name, "models/") {
		return name
	}
	return "models/" + name
}

// Usage carries the token counts reported by the API for one call.
type Usage struct {
	PromptTokens    int32
	CandidateTokens int32
	TotalTokens     int32
}

// GenerateResult is the outcome of a single generation call, classified
// into the three states the rest of the system reacts to. Text is set for
// StatusSuccess; Message carries the diagnostic for the other two.
type GenerateResult struct {
	Status       models.AnalysisStatus
	Text         string
	Message      string
	Model        string
	FinishReason genai.FinishReason
	Usage        Usage
}

// Generate runs one generation call against the primary model. Safety
// filters are disabled on the request so that blocking decisions come
// from the model itself and can be classified from the response.
func (c *Client) Generate(ctx context.Context, parts ...genai.Part) *GenerateResult {
	return c.generate(ctx, c.primaryModel, parts)
}

// GenerateWithFallback is Generate against the fallback model. The caller
// decides when to use it; the client never switches models on its own.
func (c *Client) GenerateWithFallback(ctx context.Context, parts ...genai.Part) *GenerateResult {
	return c.generate(ctx, c.fallbackModel, parts)
}

func (c *Client) generate(ctx context.Context, modelName string, parts []genai.Part) *GenerateResult {
	model := c.genai.GenerativeModel(modelName)
	model.SafetySettings = []*genai.SafetySetting{
		{Category: genai.HarmCategoryHarassment, Threshold: genai.HarmBlockNone},
		{Category: genai.HarmCategoryHateSpeech, Threshold: genai.HarmBlockNone},
		{Category: genai.HarmCategorySexuallyExplicit, Threshold: genai.HarmBlockNone},
		{Category: genai.HarmCategoryDangerousContent, Threshold: genai.HarmBlockNone},
	}

	resp, err := model.GenerateContent(ctx, parts...)
	if err != nil {
		return &GenerateResult{
			Status:  models.StatusError,
			Message: fmt.Sprintf("api call failed (%s): %v", modelName, err),
			Model:   modelName,
		}
	}
	return classify(resp, modelName)
}

// classify maps an API response onto the SUCCESS/SAFETY/ERROR triage the
// bot acts on. Only explicit safety verdicts count as SAFETY; everything
// else that is not a clean STOP with text is an ERROR.
func classify(resp *genai.GenerateContentResponse, modelName string) *GenerateResult {
	result := &GenerateResult{Model: modelName}
	if resp.UsageMetadata != nil {
		result.Usage = Usage{
			PromptTokens:    resp.UsageMetadata.PromptTokenCount,
			CandidateTokens: resp.UsageMetadata.CandidatesTokenCount,
			TotalTokens:     resp.UsageMetadata.TotalTokenCount,
		}
	}

	if len(resp.Candidates) == 0 {
		if resp.PromptFeedback != nil {
			reason := resp.PromptFeedback.BlockReason
			if reason == genai.BlockReasonSafety ||
				reason == genai.BlockReasonBlocklist ||
				reason == genai.BlockReasonProhibitedContent {
				result.Status = models.StatusSafety
				result.Message = fmt.Sprintf("prompt blocked, reason: %v", reason)
				return result
			}
			result.Status = models.StatusError
			result.Message = fmt.Sprintf("empty response from api, block reason: %v", reason)
			return result
		}
		result.Status = models.StatusError
		result.Message = "empty response from api (no candidates)"
		return result
	}

	candidate := resp.Candidates[0]
	result.FinishReason = candidate.FinishReason

	switch candidate.FinishReason {
	case genai.FinishReasonStop:
		text := candidateText(candidate)
		if strings.TrimSpace(text) == "" {
			result.Status = models.StatusError
			result.Message = "finish reason STOP but the response text is empty"
			return result
		}
		result.Status = models.StatusSuccess
		result.Text = text
		return result

	case genai.FinishReasonSafety, genai.FinishReasonBlocklist, genai.FinishReasonProhibitedContent:
		result.Status = models.StatusSafety
		result.Message = fmt.Sprintf("content blocked, finish reason: %v", candidate.FinishReason)
		return result

	default:
		result.Status = models.StatusError
		result.Message = fmt.Sprintf("api error, finish reason: %v", candidate.FinishReason)
		return result
	}
}

func candidateText(c *genai.Candidate) string {
	if c.Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range c.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	return b.String()
}

// UploadFile pushes a document to the Gemini Files API and waits until it
// is ready to be referenced from a generation request. PDFs usually
// activate immediately, but the API reports larger uploads as processing
// for a short while.
func (c *Client) UploadFile(ctx context.Context, r io.Reader, displayName, mimeType string) (*genai.File, error) {
	file, err := c.genai.UploadFile(ctx, "", r, &genai.UploadFileOptions{
		DisplayName: displayName,
		MIMEType:    mimeType,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload file: %w", err)
	}

	for file.State == genai.FileStateProcessing {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(time.Second):
		}
		file, err = c.genai.GetFile(ctx, file.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to poll uploaded file: %w", err)
		}
	}
	if file.State != genai.FileStateActive {
		return nil, fmt.Errorf("uploaded file %s is not usable, state: %v", file.Name, file.State)
	}
	return file, nil
}
