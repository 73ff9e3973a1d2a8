package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"adcheck-bot/vector"
)

// Embeddings go through the REST endpoints directly because the request
// needs output_dimensionality, which the SDK does not expose. The corpus
// matrix is built at 768 dimensions and queries must match it.
const (
	apiBase             = "https://generativelanguage.googleapis.com/v1beta"
	embeddingDimensions = 768
	embedBatchSize      = 100

	taskRetrievalQuery    = "RETRIEVAL_QUERY"
	taskRetrievalDocument = "RETRIEVAL_DOCUMENT"
)

type embedRequest struct {
	Model                string       `json:"model"`
	Content              embedContent `json:"content"`
	TaskType             string       `json:"task_type,omitempty"`
	OutputDimensionality int          `json:"output_dimensionality,omitempty"`
}

type embedContent struct {
	Parts []embedPart `json:"parts"`
}

type embedPart struct {
	Text string `json:"text"`
}

type embedValues struct {
	Values []float32 `json:"values"`
}

type embedResponse struct {
	Embedding embedValues `json:"embedding"`
}

type batchEmbedRequest struct {
	Requests []embedRequest `json:"requests"`
}

type batchEmbedResponse struct {
	Embeddings []embedValues `json:"embeddings"`
}

// EmbedQuery embeds a retrieval query and L2-normalizes the result so a
// dot product against the normalized corpus equals cosine similarity.
func (c *Client) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	reqBody := embedRequest{
		Model: c.embeddingModel,
		Content: embedContent{
			Parts: []embedPart{{Text: text}},
		},
		TaskType:             taskRetrievalQuery,
		OutputDimensionality: embeddingDimensions,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	body, err := c.post(ctx, c.embeddingModel+":embedContent", jsonData)
	if err != nil {
		return nil, err
	}

	var apiResp embedResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(apiResp.Embedding.Values) == 0 {
		return nil, fmt.Errorf("embedding API returned an empty vector")
	}

	embedding := apiResp.Embedding.Values
	vector.Normalize(embedding)
	return embedding, nil
}

// EmbedDocuments embeds corpus documents in batches and normalizes every
// vector. Order of the results matches the order of texts.
func (c *Client) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	embeddings := make([][]float32, 0, len(texts))

	for start := 0; start < len(texts); start += embedBatchSize {
		end := start + embedBatchSize
		if end > len(texts) {
			end = len(texts)
		}

		requests := make([]embedRequest, 0, end-start)
		for _, text := range texts[start:end] {
			requests = append(requests, embedRequest{
				Model: c.embeddingModel,
				Content: embedContent{
					Parts: []embedPart{{Text: text}},
				},
				TaskType:             taskRetrievalDocument,
				OutputDimensionality: embeddingDimensions,
			})
		}

		jsonData, err := json.Marshal(batchEmbedRequest{Requests: requests})
		if err != nil {
			return nil, fmt.Errorf("failed to marshal batch request: %w", err)
		}

		body, err := c.post(ctx, c.embeddingModel+":batchEmbedContents", jsonData)
		if err != nil {
			return nil, err
		}

		var apiResp batchEmbedResponse
		if err := json.Unmarshal(body, &apiResp); err != nil {
			return nil, fmt.Errorf("failed to decode batch response: %w", err)
		}
		if len(apiResp.Embeddings) != end-start {
			return nil, fmt.Errorf("batch mismatch: got %d embeddings for %d inputs", len(apiResp.Embeddings), end-start)
		}

		for i, e := range apiResp.Embeddings {
			if len(e.Values) == 0 {
				return nil, fmt.Errorf("document %d has an empty embedding", start+i)
			}
			vector.Normalize(e.Values)
			embeddings = append(embeddings, e.Values)
		}

		// Brief pause between batches keeps the API from throttling bulk
		// corpus builds.
		if end < len(texts) {
			time.Sleep(100 * time.Millisecond)
		}
	}

	return embeddings, nil
}

func (c *Client) post(ctx context.Context, path string, jsonData []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.embedBase+"/"+path, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API error: %d - %s", resp.StatusCode, string(body))
	}
	return body, nil
}
