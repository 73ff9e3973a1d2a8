package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"adcheck-bot/gemini"
	"adcheck-bot/models"
	"adcheck-bot/repository"
	"adcheck-bot/vector"
)

// Builds the corpus embedding matrix the bot searches at runtime: reads
// the precedent CSV, embeds every case with the document task type and
// writes the row-aligned .npy file. Rerun whenever the corpus CSV changes.
func main() {
	// Load .env file from project root (relative to cmd/build-embeddings/)
	// Try current directory first, then project root
	if err := godotenv.Load(); err != nil {
		if err := godotenv.Load("../../.env"); err != nil {
			log.Printf("Warning: No .env file found, using environment variables")
		}
	}

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		log.Fatal("GEMINI_API_KEY environment variable is required")
	}
	dataPath := os.Getenv("RAG_DATA_PATH")
	if dataPath == "" {
		log.Fatal("RAG_DATA_PATH environment variable is required")
	}
	outPath := os.Getenv("CORPUS_EMBEDDINGS_PATH")
	if outPath == "" {
		log.Fatal("CORPUS_EMBEDDINGS_PATH environment variable is required")
	}
	embeddingModel := os.Getenv("EMBEDDING_MODEL")
	if embeddingModel == "" {
		embeddingModel = "gemini-embedding-001"
	}

	precedents, err := repository.LoadPrecedents(dataPath)
	if err != nil {
		log.Fatalf("Failed to load corpus: %v", err)
	}
	if len(precedents) == 0 {
		log.Fatal("Corpus is empty, nothing to embed")
	}
	log.Printf("Loaded %d cases from %s", len(precedents), dataPath)

	inputs := make([]string, len(precedents))
	for i, p := range precedents {
		inputs[i] = buildEmbeddingInput(p)
	}

	ctx := context.Background()
	client, err := gemini.NewClient(ctx, apiKey, "", "", embeddingModel)
	if err != nil {
		log.Fatalf("Failed to initialize Gemini: %v", err)
	}
	defer client.Close()

	log.Printf("Generating embeddings with %s...", embeddingModel)
	embeddings, err := client.EmbedDocuments(ctx, inputs)
	if err != nil {
		log.Fatalf("Failed to generate embeddings: %v", err)
	}
	if len(embeddings) != len(precedents) {
		log.Fatalf("Mismatch: got %d embeddings for %d cases", len(embeddings), len(precedents))
	}

	dims := len(embeddings[0])
	flat := make([]float32, 0, len(embeddings)*dims)
	for i, e := range embeddings {
		if len(e) != dims {
			log.Fatalf("Case %d (%s) has %d dimensions, expected %d", i, precedents[i].CaseID, len(e), dims)
		}
		flat = append(flat, e...)
	}

	matrix, err := vector.NewMatrix(len(embeddings), dims, flat)
	if err != nil {
		log.Fatalf("Failed to build matrix: %v", err)
	}
	if err := vector.WriteMatrix(outPath, matrix); err != nil {
		log.Fatalf("Failed to write %s: %v", outPath, err)
	}

	log.Printf("✅ Wrote %dx%d embedding matrix to %s", matrix.Rows(), matrix.Cols(), outPath)
}

// buildEmbeddingInput assembles the text embedded for one case. The
// bracketed headers give the retrieval model the case identity and tags
// alongside the violation text.
func buildEmbeddingInput(p models.Precedent) string {
	var b strings.Builder

	fmt.Fprintf(&b, "[CASE: %s]\n", p.CaseID)
	if p.ThematicTags != "" {
		fmt.Fprintf(&b, "[TAGS: %s]\n", p.ThematicTags)
	}
	b.WriteString("\n")
	b.WriteString(p.ViolationSummary)
	if p.FASArguments != "" {
		b.WriteString("\n\n")
		b.WriteString(p.FASArguments)
	}

	return b.String()
}
