package repository

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adcheck-bot/vector"
)

const testCSV = `docID;caseID;violation_summary;fas_arguments;thematic_tags
doc-1;11111111-1111-4111-8111-111111111111;скрытая реклама;нет пометки;реклама, маркировка
doc-2;22222222-2222-4222-8222-222222222222;реклама алкоголя;запрещённый товар;алкоголь
doc-3;33333333-3333-4333-8333-333333333333;недостоверные сведения;нет подтверждения;вклады
`

func writeCorpus(t *testing.T, csvBody string, rows [][]float32) (string, string) {
	t.Helper()
	dir := t.TempDir()

	dataPath := filepath.Join(dir, "rag_data.csv")
	require.NoError(t, os.WriteFile(dataPath, []byte(csvBody), 0o644))

	flat := make([]float32, 0, len(rows)*len(rows[0]))
	for _, row := range rows {
		flat = append(flat, row...)
	}
	m, err := vector.NewMatrix(len(rows), len(rows[0]), flat)
	require.NoError(t, err)

	matrixPath := filepath.Join(dir, "corpus.npy")
	require.NoError(t, vector.WriteMatrix(matrixPath, m))
	return dataPath, matrixPath
}

func TestNewPrecedentRepository(t *testing.T) {
	t.Run("loads aligned corpus", func(t *testing.T) {
		dataPath, matrixPath := writeCorpus(t, testCSV, [][]float32{
			{1, 0, 0},
			{0, 1, 0},
			{0, 0, 1},
		})

		repo, err := NewPrecedentRepository(dataPath, matrixPath)
		require.NoError(t, err)
		assert.Equal(t, 3, repo.Count())
		assert.Equal(t, 3, repo.Dimensions())

		p, ok := repo.ByCaseID("22222222-2222-4222-8222-222222222222")
		require.True(t, ok)
		assert.Equal(t, "doc-2", p.DocID)
		assert.Equal(t, "реклама алкоголя", p.ViolationSummary)
	})

	t.Run("row count mismatch is an error", func(t *testing.T) {
		dataPath, matrixPath := writeCorpus(t, testCSV, [][]float32{
			{1, 0, 0},
			{0, 1, 0},
		})

		_, err := NewPrecedentRepository(dataPath, matrixPath)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "corpus mismatch")
	})

	t.Run("missing caseID column is an error", func(t *testing.T) {
		dataPath, matrixPath := writeCorpus(t, "docID;summary\nd1;s1\n", [][]float32{{1, 0}})

		_, err := NewPrecedentRepository(dataPath, matrixPath)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `"caseID"`)
	})

	t.Run("BOM before header is tolerated", func(t *testing.T) {
		dataPath, matrixPath := writeCorpus(t, "﻿"+testCSV, [][]float32{
			{1, 0, 0},
			{0, 1, 0},
			{0, 0, 1},
		})

		repo, err := NewPrecedentRepository(dataPath, matrixPath)
		require.NoError(t, err)
		assert.Equal(t, "doc-1", repo.precedents[0].DocID)
	})
}

func TestSearch(t *testing.T) {
	// Rows are deliberately unnormalized to prove load-time normalization.
	dataPath, matrixPath := writeCorpus(t, testCSV, [][]float32{
		{2, 0, 0},
		{3, 3, 0},
		{0, 0, 5},
	})
	repo, err := NewPrecedentRepository(dataPath, matrixPath)
	require.NoError(t, err)

	t.Run("returns topN in descending score order", func(t *testing.T) {
		query := []float32{1, 0, 0}
		vector.Normalize(query)

		matches, err := repo.Search(query, 2)
		require.NoError(t, err)
		require.Len(t, matches, 2)

		assert.Equal(t, "doc-1", matches[0].Precedent.DocID)
		assert.InDelta(t, 1.0, matches[0].Score, 1e-6)
		assert.Equal(t, "doc-2", matches[1].Precedent.DocID)
		assert.InDelta(t, 0.7071, matches[1].Score, 1e-4)
	})

	t.Run("topN beyond corpus returns whole corpus ranked", func(t *testing.T) {
		query := []float32{0, 0, 1}
		matches, err := repo.Search(query, 50)
		require.NoError(t, err)
		require.Len(t, matches, 3)
		assert.Equal(t, "doc-3", matches[0].Precedent.DocID)
	})

	t.Run("dimension mismatch is an error", func(t *testing.T) {
		_, err := repo.Search([]float32{1, 0}, 2)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "dimensions")
	})
}
