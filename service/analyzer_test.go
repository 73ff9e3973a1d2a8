package service

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"adcheck-bot/gemini"
	"adcheck-bot/journal"
	"adcheck-bot/models"
	"adcheck-bot/storage"
)

// fakeGemini scripts the generation results of one analysis and records
// what it was asked.
type fakeGemini struct {
	embedding []float32
	embedErr  error
	results   []*gemini.GenerateResult

	prompts       []string // concatenated text parts per generation call
	embedCalls    int
	fallbackCalls int
	uploads       int
}

func (f *fakeGemini) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	f.embedCalls++
	if f.embedErr != nil {
		return nil, f.embedErr
	}
	return f.embedding, nil
}

func (f *fakeGemini) Generate(ctx context.Context, parts ...genai.Part) *gemini.GenerateResult {
	return f.next(parts)
}

func (f *fakeGemini) GenerateWithFallback(ctx context.Context, parts ...genai.Part) *gemini.GenerateResult {
	f.fallbackCalls++
	return f.next(parts)
}

func (f *fakeGemini) UploadFile(ctx context.Context, r io.Reader, displayName, mimeType string) (*genai.File, error) {
	f.uploads++
	return &genai.File{Name: "files/fake", URI: "https://files.fake/1", MIMEType: mimeType}, nil
}

func (f *fakeGemini) next(parts []genai.Part) *gemini.GenerateResult {
	var b strings.Builder
	for _, p := range parts {
		if text, ok := p.(genai.Text); ok {
			b.WriteString(string(text))
			b.WriteString("\n")
		}
	}
	f.prompts = append(f.prompts, b.String())

	if len(f.results) == 0 {
		return &gemini.GenerateResult{Status: models.StatusError, Message: "fake exhausted"}
	}
	res := f.results[0]
	f.results = f.results[1:]
	return res
}

type fakeSearcher struct {
	matches []models.PrecedentMatch
	err     error

	calls    int
	lastTopN int
}

func (f *fakeSearcher) Search(query []float32, topN int) ([]models.PrecedentMatch, error) {
	f.calls++
	f.lastTopN = topN
	if f.err != nil {
		return nil, f.err
	}
	if len(f.matches) > topN {
		return f.matches[:topN], nil
	}
	return f.matches, nil
}

func success(text string) *gemini.GenerateResult {
	return &gemini.GenerateResult{
		Status: models.StatusSuccess,
		Text:   text,
		Model:  "gemini-test",
		Usage:  gemini.Usage{TotalTokens: 100},
	}
}

func safety(msg string) *gemini.GenerateResult {
	return &gemini.GenerateResult{Status: models.StatusSafety, Message: msg, Model: "gemini-test"}
}

func apiError(msg string) *gemini.GenerateResult {
	return &gemini.GenerateResult{Status: models.StatusError, Message: msg, Model: "gemini-test"}
}

func testPrompts() Prompts {
	return Prompts{
		Preprocessing: "Опиши рекламный креатив.",
		Analysis:      "Креатив:\n{{user_creative_text}}\n\nПрактика ФАС:\n{{rag_cases_context}}",
	}
}

func testMatches() []models.PrecedentMatch {
	return []models.PrecedentMatch{
		{Precedent: models.Precedent{
			CaseID:           "case-1",
			ViolationSummary: "реклама без пометки erid",
			FASArguments:     "нарушение ст. 18.1 Закона о рекламе",
			ThematicTags:     "интернет-реклама",
		}, Score: 0.91},
		{Precedent: models.Precedent{
			CaseID:           "case-2",
			ViolationSummary: "недостоверные сведения о скидке",
			FASArguments:     "нарушение п. 4 ч. 3 ст. 5",
			ThematicTags:     "недостоверная реклама",
		}, Score: 0.83},
	}
}

func newTestAnalyzer(g *fakeGemini, s *fakeSearcher, opts ...AnalyzerOption) *Analyzer {
	base := []AnalyzerOption{
		WithGemini(g),
		WithPrecedents(s),
		WithPrompts(testPrompts()),
		WithTopN(2),
	}
	return NewAnalyzer(append(base, opts...)...)
}

func textRequest(text string) AnalyzeRequest {
	return AnalyzeRequest{Creative: models.Creative{Text: text}, UserID: 42, Username: "ivan"}
}

func TestAnalyzeHappyPath(t *testing.T) {
	g := &fakeGemini{
		embedding: []float32{1, 0},
		results:   []*gemini.GenerateResult{success("нормализованное описание"), success("Вердикт: риск высокий.")},
	}
	s := &fakeSearcher{matches: testMatches()}
	a := newTestAnalyzer(g, s)

	res, err := a.Analyze(context.Background(), textRequest("Лучший банк страны!"))
	require.NoError(t, err)

	assert.Equal(t, models.StatusSuccess, res.Verdict.Status)
	assert.Equal(t, "нормализованное описание", res.Verdict.Preprocessed)
	assert.Equal(t, "gemini-test", res.Verdict.Model)
	assert.Contains(t, res.Verdict.Text, "Вердикт: риск высокий.")
	assert.Contains(t, res.Verdict.Text, "<i>А также не забудьте:</i>")
	assert.Equal(t, []string{"case-1", "case-2"}, res.TopCases)
	assert.Equal(t, int32(200), res.TotalTokens)
	assert.NotEmpty(t, res.RequestID)

	// The first call carries the preprocessing prompt and the raw creative.
	require.Len(t, g.prompts, 2)
	assert.Contains(t, g.prompts[0], "Опиши рекламный креатив.")
	assert.Contains(t, g.prompts[0], "Лучший банк страны!")

	// The final prompt embeds the description and every retrieved case
	// verbatim, with no placeholder left behind.
	final := g.prompts[1]
	assert.Contains(t, final, "нормализованное описание")
	for _, m := range testMatches() {
		assert.Contains(t, final, `Кейс (caseID: "`+m.Precedent.CaseID+`")`)
		assert.Contains(t, final, m.Precedent.ViolationSummary)
		assert.Contains(t, final, m.Precedent.FASArguments)
		assert.Contains(t, final, m.Precedent.ThematicTags)
	}
	assert.NotContains(t, final, creativePlaceholder)
	assert.NotContains(t, final, contextPlaceholder)

	assert.Equal(t, 1, s.calls)
	assert.Equal(t, Stats{Processed: 1}, a.Stats())
}

func TestAnalyzeEmbeddingFailureSkipsRetrieval(t *testing.T) {
	g := &fakeGemini{
		embedErr: errors.New("embedding quota exhausted"),
		results:  []*gemini.GenerateResult{success("описание")},
	}
	s := &fakeSearcher{matches: testMatches()}
	a := newTestAnalyzer(g, s)

	res, err := a.Analyze(context.Background(), textRequest("слоган"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmbeddingFailed)
	assert.Nil(t, res)

	assert.Zero(t, s.calls, "retrieval must not run after an embedding failure")
	assert.Len(t, g.prompts, 1, "the final generation must not run")
	assert.Equal(t, Stats{Errors: 1}, a.Stats())
}

func TestAnalyzeGenerationFailureAfterRetrieval(t *testing.T) {
	g := &fakeGemini{
		embedding: []float32{1, 0},
		results:   []*gemini.GenerateResult{success("описание"), apiError("503 backend overloaded")},
	}
	s := &fakeSearcher{matches: testMatches()}
	a := newTestAnalyzer(g, s)

	res, err := a.Analyze(context.Background(), textRequest("слоган"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrGenerationFailed)
	assert.Contains(t, err.Error(), "503")
	assert.Nil(t, res)

	assert.Equal(t, 1, s.calls, "retrieval ran before the failure")
	assert.Equal(t, Stats{Errors: 1}, a.Stats())
}

func TestAnalyzeRetrievalFailure(t *testing.T) {
	g := &fakeGemini{
		embedding: []float32{1, 0},
		results:   []*gemini.GenerateResult{success("описание")},
	}
	s := &fakeSearcher{err: errors.New("dimension mismatch")}
	a := newTestAnalyzer(g, s)

	_, err := a.Analyze(context.Background(), textRequest("слоган"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRetrievalFailed)
	assert.Len(t, g.prompts, 1)
}

func TestAnalyzeSafetyShortCircuit(t *testing.T) {
	t.Run("at preprocessing", func(t *testing.T) {
		g := &fakeGemini{results: []*gemini.GenerateResult{safety("Контент заблокирован. Причина: SAFETY.")}}
		s := &fakeSearcher{matches: testMatches()}
		a := newTestAnalyzer(g, s)

		res, err := a.Analyze(context.Background(), textRequest("недопустимый контент"))
		require.NoError(t, err, "a safety block is a verdict, not an error")
		assert.True(t, res.Verdict.Blocked())
		assert.Zero(t, s.calls, "retrieval must not run for blocked content")
		assert.Zero(t, g.embedCalls)
		assert.Equal(t, Stats{Safety: 1}, a.Stats())
	})

	t.Run("at final analysis", func(t *testing.T) {
		g := &fakeGemini{
			embedding: []float32{1, 0},
			results:   []*gemini.GenerateResult{success("описание"), safety("Контент заблокирован. Причина: PROHIBITED_CONTENT.")},
		}
		s := &fakeSearcher{matches: testMatches()}
		a := newTestAnalyzer(g, s)

		res, err := a.Analyze(context.Background(), textRequest("слоган"))
		require.NoError(t, err)
		assert.True(t, res.Verdict.Blocked())
		assert.Equal(t, "описание", res.Verdict.Preprocessed)
		assert.Equal(t, []string{"case-1", "case-2"}, res.TopCases)
		assert.Equal(t, Stats{Safety: 1}, a.Stats())
	})
}

func TestAnalyzeEmptyCreative(t *testing.T) {
	a := newTestAnalyzer(&fakeGemini{}, &fakeSearcher{})

	_, err := a.Analyze(context.Background(), AnalyzeRequest{UserID: 1})
	assert.ErrorIs(t, err, ErrEmptyCreative)

	_, err = a.Analyze(context.Background(), textRequest("   \n\t  "))
	assert.ErrorIs(t, err, ErrEmptyCreative)
}

func TestAnalyzeGuardsAgainstMissingDependencies(t *testing.T) {
	_, err := NewAnalyzer(WithPrecedents(&fakeSearcher{}), WithPrompts(testPrompts())).
		Analyze(context.Background(), textRequest("x"))
	require.EqualError(t, err, "gemini client not set")

	_, err = NewAnalyzer(WithGemini(&fakeGemini{}), WithPrompts(testPrompts())).
		Analyze(context.Background(), textRequest("x"))
	require.EqualError(t, err, "precedent repository not set")

	_, err = NewAnalyzer(WithGemini(&fakeGemini{}), WithPrecedents(&fakeSearcher{})).
		Analyze(context.Background(), textRequest("x"))
	assert.ErrorIs(t, err, ErrPromptNotLoaded)
}

func TestAnalyzeUsesFallbackModelWhenAsked(t *testing.T) {
	g := &fakeGemini{
		embedding: []float32{1, 0},
		results:   []*gemini.GenerateResult{success("описание"), success("вердикт")},
	}
	a := newTestAnalyzer(g, &fakeSearcher{matches: testMatches()})

	req := textRequest("слоган")
	req.UseFallback = true
	_, err := a.Analyze(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 2, g.fallbackCalls, "both generation calls go to the fallback model")
}

func TestAnalyzeSearchesDeepEnoughForRankingLog(t *testing.T) {
	var matches []models.PrecedentMatch
	for i := 0; i < 12; i++ {
		matches = append(matches, models.PrecedentMatch{
			Precedent: models.Precedent{CaseID: string(rune('a' + i))},
			Score:     1 - float32(i)/20,
		})
	}
	g := &fakeGemini{
		embedding: []float32{1, 0},
		results:   []*gemini.GenerateResult{success("описание"), success("вердикт")},
	}
	s := &fakeSearcher{matches: matches}
	a := newTestAnalyzer(g, s) // topN = 2

	res, err := a.Analyze(context.Background(), textRequest("слоган"))
	require.NoError(t, err)

	assert.Equal(t, rankLogDepth, s.lastTopN, "search depth covers the ranking log window")
	assert.Equal(t, []string{"a", "b"}, res.TopCases, "the prompt still gets only topN cases")
}

func TestAnalyzeUploadsPDF(t *testing.T) {
	g := &fakeGemini{
		embedding: []float32{1, 0},
		results:   []*gemini.GenerateResult{success("описание PDF"), success("вердикт")},
	}
	a := newTestAnalyzer(g, &fakeSearcher{matches: testMatches()})

	req := AnalyzeRequest{
		UserID: 42,
		Creative: models.Creative{
			PDFData: []byte("%PDF-1.4 fake"),
			PDFName: "creative.pdf",
		},
	}
	res, err := a.Analyze(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 1, g.uploads)
	assert.Equal(t, models.StatusSuccess, res.Verdict.Status)
}

func TestAnalyzeArchivesImageCreative(t *testing.T) {
	dir := t.TempDir()
	store, err := storage.NewStorage(storage.Config{Type: storage.TypeLocal, LocalPath: dir})
	require.NoError(t, err)
	archive, err := storage.NewArchive(store, filepath.Join(dir, "counter.txt"))
	require.NoError(t, err)

	g := &fakeGemini{
		embedding: []float32{1, 0},
		results:   []*gemini.GenerateResult{success("описание картинки"), success("вердикт")},
	}
	a := newTestAnalyzer(g, &fakeSearcher{matches: testMatches()}, WithArchive(archive))

	req := AnalyzeRequest{
		UserID:   777,
		Creative: models.Creative{ImageData: pngBytes(t, 64, 64)},
	}
	_, err = a.Analyze(context.Background(), req)
	require.NoError(t, err)

	var archived []string
	err = filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".jpg") {
			archived = append(archived, path)
		}
		return nil
	})
	require.NoError(t, err)
	require.Len(t, archived, 1)
	assert.Contains(t, archived[0], "777_1.jpg")
}

func TestAnalyzeWritesJournal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.jsonl")
	j, err := journal.Open(path, zap.NewNop())
	require.NoError(t, err)

	g := &fakeGemini{
		embedding: []float32{1, 0},
		results: []*gemini.GenerateResult{
			success("описание"), success("вердикт"),
			safety("заблокировано"),
		},
	}
	a := newTestAnalyzer(g, &fakeSearcher{matches: testMatches()}, WithJournal(j))

	_, err = a.Analyze(context.Background(), textRequest("слоган"))
	require.NoError(t, err)
	res, err := a.Analyze(context.Background(), textRequest("плохой контент"))
	require.NoError(t, err)
	assert.True(t, res.Verdict.Blocked())
	require.NoError(t, j.Close())

	entries, skipped, err := journal.Read(path)
	require.NoError(t, err)
	assert.Zero(t, skipped)
	require.Len(t, entries, 2)

	first := entries[0].Analysis
	require.NotNil(t, first)
	assert.Equal(t, int64(42), first.UserID)
	assert.Equal(t, models.StatusSuccess, first.Status)
	assert.Equal(t, []string{"case-1", "case-2"}, first.TopCases)
	assert.Equal(t, int32(200), first.TotalTokens)
	assert.NotEmpty(t, first.RequestID)

	second := entries[1].Analysis
	require.NotNil(t, second)
	assert.Equal(t, models.StatusSafety, second.Status)
}

func TestFormatCaseContext(t *testing.T) {
	t.Run("no matches", func(t *testing.T) {
		assert.Equal(t, "Контекстные дела из практики ФАС не найдены.", FormatCaseContext(nil))
	})

	t.Run("cases are rendered block by block", func(t *testing.T) {
		got := FormatCaseContext(testMatches())

		expected := "Кейс (caseID: \"case-1\"):\n" +
			"- Описание нарушения: \"реклама без пометки erid\"\n" +
			"- Аргументы ФАС: \"нарушение ст. 18.1 Закона о рекламе\"\n" +
			"- Теги: \"интернет-реклама\"\n" +
			"---\n" +
			"Кейс (caseID: \"case-2\"):\n" +
			"- Описание нарушения: \"недостоверные сведения о скидке\"\n" +
			"- Аргументы ФАС: \"нарушение п. 4 ч. 3 ст. 5\"\n" +
			"- Теги: \"недостоверная реклама\""
		assert.Equal(t, expected, got)
	})
}

func TestLoadPrompts(t *testing.T) {
	dir := t.TempDir()
	p1 := filepath.Join(dir, "prompt1.txt")
	p2 := filepath.Join(dir, "prompt2.txt")
	writeFile(t, p1, "Опиши креатив.")
	writeFile(t, p2, "Текст: {{user_creative_text}}\nКейсы: {{rag_cases_context}}")

	t.Run("valid templates load", func(t *testing.T) {
		prompts, err := LoadPrompts(p1, p2)
		require.NoError(t, err)
		assert.Equal(t, "Опиши креатив.", prompts.Preprocessing)
		assert.Contains(t, prompts.Analysis, contextPlaceholder)
	})

	t.Run("missing file is an error", func(t *testing.T) {
		_, err := LoadPrompts(filepath.Join(dir, "nope.txt"), p2)
		require.Error(t, err)
	})

	t.Run("missing placeholder is an error", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.txt")
		writeFile(t, bad, "Текст: {{user_creative_text}}, кейсов нет")

		_, err := LoadPrompts(p1, bad)
		require.Error(t, err)
		assert.Contains(t, err.Error(), contextPlaceholder)
	})
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}
