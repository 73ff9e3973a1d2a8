package repository

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"adcheck-bot/models"
	"adcheck-bot/vector"
)

// PrecedentRepository serves the corpus of FAS precedent cases: case
// metadata read from a semicolon-separated CSV and a row-aligned matrix of
// document embeddings. Row i of the matrix is the embedding of CSV row i,
// so both files must be produced by the same corpus build.
type PrecedentRepository struct {
	precedents []models.Precedent
	matrix     *vector.Matrix
}

// NewPrecedentRepository loads the corpus from dataPath (CSV) and
// matrixPath (.npy), verifies that the two files describe the same number
// of cases and normalizes every embedding row so searches reduce to dot
// products.
func NewPrecedentRepository(dataPath, matrixPath string) (*PrecedentRepository, error) {
	precedents, err := LoadPrecedents(dataPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load rag data: %w", err)
	}

	matrix, err := vector.ReadMatrix(matrixPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load corpus embeddings: %w", err)
	}
	if matrix.Rows() != len(precedents) {
		return nil, fmt.Errorf("corpus mismatch: %d cases in %s but %d embedding rows in %s",
			len(precedents), dataPath, matrix.Rows(), matrixPath)
	}
	matrix.NormalizeRows()

	return &PrecedentRepository{precedents: precedents, matrix: matrix}, nil
}

// LoadPrecedents parses the corpus CSV (semicolon-separated, BOM
// tolerated). The corpus build tool uses it directly to read the cases it
// embeds.
func LoadPrecedents(path string) ([]models.Precedent, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.Comma = ';'
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s is empty, expected a header row", path)
	}

	header := rows[0]
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "﻿")
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{"docID", "caseID"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("%s is missing required column %q", path, required)
		}
	}

	precedents := make([]models.Precedent, 0, len(rows)-1)
	for _, row := range rows[1:] {
		precedents = append(precedents, models.Precedent{
			DocID:            field(row, col, "docID"),
			CaseID:           field(row, col, "caseID"),
			ViolationSummary: field(row, col, "violation_summary"),
			FASArguments:     field(row, col, "fas_arguments"),
			ThematicTags:     field(row, col, "thematic_tags"),
		})
	}
	return precedents, nil
}

func field(row []string, col map[string]int, name string) string {
	idx, ok := col[name]
	if !ok || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// Search scores query against every corpus embedding and returns the topN
// best matches in descending score order. The query must be L2-normalized;
// corpus rows are normalized at load time, so the dot product equals
// cosine similarity. topN larger than the corpus returns the whole corpus
// ranked.
func (r *PrecedentRepository) Search(query []float32, topN int) ([]models.PrecedentMatch, error) {
	if len(query) != r.matrix.Cols() {
		return nil, fmt.Errorf("query must be %d dimensions, got %d", r.matrix.Cols(), len(query))
	}

	scores := make([]float32, r.matrix.Rows())
	for i := range scores {
		scores[i] = vector.Dot(query, r.matrix.Row(i))
	}

	indices := vector.TopK(scores, topN)
	matches := make([]models.PrecedentMatch, 0, len(indices))
	for _, idx := range indices {
		matches = append(matches, models.PrecedentMatch{
			Precedent: r.precedents[idx],
			Score:     scores[idx],
		})
	}
	return matches, nil
}

// Count returns the number of cases in the corpus.
func (r *PrecedentRepository) Count() int {
	return len(r.precedents)
}

// ByCaseID returns the first precedent with the given caseID.
func (r *PrecedentRepository) ByCaseID(caseID string) (models.Precedent, bool) {
	for _, p := range r.precedents {
		if p.CaseID == caseID {
			return p, true
		}
	}
	return models.Precedent{}, false
}

// Dimensions returns the embedding width the corpus was built with.
func (r *PrecedentRepository) Dimensions() int {
	return r.matrix.Cols()
}
