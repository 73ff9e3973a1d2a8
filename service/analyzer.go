package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"adcheck-bot/gemini"
	"adcheck-bot/journal"
	"adcheck-bot/models"
	"adcheck-bot/storage"
)

var (
	ErrEmptyCreative    = errors.New("creative is empty")
	ErrInvalidImage     = errors.New("failed to process image")
	ErrPromptNotLoaded  = errors.New("prompt template not loaded")
	ErrEmbeddingFailed  = errors.New("failed to generate embedding")
	ErrRetrievalFailed  = errors.New("failed to retrieve precedents")
	ErrGenerationFailed = errors.New("failed to generate content")
)

const (
	defaultTopN  = 5
	rankLogDepth = 10

	embedTimeout    = 30 * time.Second
	generateTimeout = 5 * time.Minute
)

// Placeholders the analysis prompt template must contain. The template is
// written by lawyers and shipped as a flat file, the code only fills it in.
const (
	creativePlaceholder = "{{user_creative_text}}"
	contextPlaceholder  = "{{rag_cases_context}}"
)

const noCasesFound = "Контекстные дела из практики ФАС не найдены."

// Gemini is the slice of the Gemini client the analyzer depends on,
// declared here so tests can substitute a fake.
type Gemini interface {
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
	Generate(ctx context.Context, parts ...genai.Part) *gemini.GenerateResult
	GenerateWithFallback(ctx context.Context, parts ...genai.Part) *gemini.GenerateResult
	UploadFile(ctx context.Context, r io.Reader, displayName, mimeType string) (*genai.File, error)
}

// PrecedentSearcher retrieves the closest precedent cases for a query
// embedding.
type PrecedentSearcher interface {
	Search(query []float32, topN int) ([]models.PrecedentMatch, error)
}

// Prompts holds the two prompt templates the pipeline runs on.
type Prompts struct {
	// Preprocessing turns the raw creative (text and/or attachment) into a
	// normalized textual description used for retrieval.
	Preprocessing string
	// Analysis produces the final verdict from the description and the
	// retrieved case context.
	Analysis string
}

// LoadPrompts reads both templates from disk. A missing file or a
// template without the required placeholders is a startup error.
func LoadPrompts(preprocessingPath, analysisPath string) (Prompts, error) {
	pre, err := os.ReadFile(preprocessingPath)
	if err != nil {
		return Prompts{}, fmt.Errorf("failed to read preprocessing prompt: %w", err)
	}
	analysis, err := os.ReadFile(analysisPath)
	if err != nil {
		return Prompts{}, fmt.Errorf("failed to read analysis prompt: %w", err)
	}

	p := Prompts{Preprocessing: string(pre), Analysis: string(analysis)}
	for _, placeholder := range []string{creativePlaceholder, contextPlaceholder} {
		if !strings.Contains(p.Analysis, placeholder) {
			return Prompts{}, fmt.Errorf("analysis prompt %s is missing the %s placeholder", analysisPath, placeholder)
		}
	}
	return p, nil
}

// Analyzer runs the full compliance review of one creative: preprocessing,
// retrieval over the precedent corpus and the final verdict, postprocessed
// into Telegram-ready HTML.
type Analyzer struct {
	precedents PrecedentSearcher
	gemini     Gemini
	prompts    Prompts
	topN       int
	journal    *journal.Journal
	archive    *storage.Archive
	logger     *zap.Logger

	succeeded atomic.Int64
	blocked   atomic.Int64
	failed    atomic.Int64
}

// AnalyzerOption is a functional option for Analyzer
type AnalyzerOption func(*Analyzer)

// WithPrecedents sets the precedent corpus used for retrieval
func WithPrecedents(precedents PrecedentSearcher) AnalyzerOption {
	return func(a *Analyzer) {
		a.precedents = precedents
	}
}

// WithGemini sets the Gemini client
func WithGemini(client Gemini) AnalyzerOption {
	return func(a *Analyzer) {
		a.gemini = client
	}
}

// WithPrompts sets the prompt templates
func WithPrompts(prompts Prompts) AnalyzerOption {
	return func(a *Analyzer) {
		a.prompts = prompts
	}
}

// WithTopN sets how many retrieved cases feed the analysis prompt
func WithTopN(topN int) AnalyzerOption {
	return func(a *Analyzer) {
		if topN > 0 {
			a.topN = topN
		}
	}
}

// WithJournal sets the usage journal
func WithJournal(j *journal.Journal) AnalyzerOption {
	return func(a *Analyzer) {
		a.journal = j
	}
}

// WithArchive sets the creative archive
func WithArchive(archive *storage.Archive) AnalyzerOption {
	return func(a *Analyzer) {
		a.archive = archive
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) AnalyzerOption {
	return func(a *Analyzer) {
		a.logger = logger
	}
}

// NewAnalyzer creates a new analyzer
func NewAnalyzer(opts ...AnalyzerOption) *Analyzer {
	a := &Analyzer{
		topN:   defaultTopN,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// AnalyzeRequest describes one creative submitted for review.
type AnalyzeRequest struct {
	Creative models.Creative
	UserID   int64
	Username string
	// RequestID correlates log lines and the journal entry; generated
	// when empty.
	RequestID string
	// UseFallback routes both generation calls to the fallback model.
	UseFallback bool
}

// AnalyzeResult is the outcome of a completed analysis. A safety block is
// a result, not an error: Verdict.Blocked() reports it.
type AnalyzeResult struct {
	Verdict     models.Verdict
	TopCases    []string
	TotalTokens int32
	RequestID   string
	Duration    time.Duration
}

// Stats is a snapshot of the analyzer's lifetime counters.
type Stats struct {
	Processed int64 `json:"processed"`
	Safety    int64 `json:"safety"`
	Errors    int64 `json:"errors"`
}

// Stats returns the current request counters.
func (a *Analyzer) Stats() Stats {
	return Stats{
		Processed: a.succeeded.Load(),
		Safety:    a.blocked.Load(),
		Errors:    a.failed.Load(),
	}
}

// TopN returns how many retrieved cases feed the analysis prompt.
func (a *Analyzer) TopN() int {
	return a.topN
}

// Analyze runs the full pipeline on one creative:
//
//  1. the preprocessing prompt turns the creative into a description,
//  2. the description is embedded and searched against the corpus,
//  3. the analysis prompt is filled with the description and the cases,
//  4. the answer is postprocessed (case links, HTML sanitizing, disclaimer).
//
// Each step aborts the pipeline on failure; a safety block at either
// generation step short-circuits into a StatusSafety verdict instead.
func (a *Analyzer) Analyze(ctx context.Context, req AnalyzeRequest) (*AnalyzeResult, error) {
	if a.gemini == nil {
		return nil, errors.New("gemini client not set")
	}
	if a.precedents == nil {
		return nil, errors.New("precedent repository not set")
	}
	if a.prompts.Preprocessing == "" || a.prompts.Analysis == "" {
		return nil, ErrPromptNotLoaded
	}
	if req.Creative.IsEmpty() {
		return nil, ErrEmptyCreative
	}
	if req.RequestID == "" {
		req.RequestID = uuid.New().String()
	}

	start := time.Now()
	logger := a.logger.With(
		zap.String("request_id", req.RequestID),
		zap.Int64("user_id", req.UserID),
	)
	logger.Info("starting analysis",
		zap.Bool("fallback", req.UseFallback),
		zap.Bool("attachment", req.Creative.HasAttachment()),
		zap.Int("text_len", len(req.Creative.Text)))

	userParts, err := a.creativeParts(ctx, req, logger)
	if err != nil {
		a.fail(logger, req, start, "", 0, err)
		return nil, err
	}
	if len(userParts) == 0 {
		return nil, ErrEmptyCreative
	}

	parts := append([]genai.Part{genai.Text(a.prompts.Preprocessing)}, userParts...)
	pre := a.generate(ctx, req.UseFallback, parts)
	if pre.Status == models.StatusSafety {
		logger.Warn("creative blocked at preprocessing", zap.String("reason", pre.Message))
		return a.blockedResult(req, start, pre, "", nil, pre.Usage.TotalTokens), nil
	}
	if pre.Status != models.StatusSuccess {
		err := fmt.Errorf("%w: %s", ErrGenerationFailed, pre.Message)
		a.fail(logger, req, start, pre.Model, pre.Usage.TotalTokens, err)
		return nil, err
	}
	logger.Debug("creative preprocessed", zap.String("description", pre.Text))

	embedCtx, cancel := context.WithTimeout(ctx, embedTimeout)
	query, err := a.gemini.EmbedQuery(embedCtx, pre.Text)
	cancel()
	if err != nil {
		err = fmt.Errorf("%w: %v", ErrEmbeddingFailed, err)
		a.fail(logger, req, start, pre.Model, pre.Usage.TotalTokens, err)
		return nil, err
	}

	// Retrieval depth covers the log window even when fewer cases are
	// wanted; the prompt still gets only topN of them.
	depth := a.topN
	if depth < rankLogDepth {
		depth = rankLogDepth
	}
	matches, err := a.precedents.Search(query, depth)
	if err != nil {
		err = fmt.Errorf("%w: %v", ErrRetrievalFailed, err)
		a.fail(logger, req, start, pre.Model, pre.Usage.TotalTokens, err)
		return nil, err
	}
	logRanking(logger, matches)
	if len(matches) > a.topN {
		matches = matches[:a.topN]
	}
	topCases := caseIDs(matches)

	prompt := strings.ReplaceAll(a.prompts.Analysis, creativePlaceholder, pre.Text)
	prompt = strings.ReplaceAll(prompt, contextPlaceholder, FormatCaseContext(matches))

	final := a.generate(ctx, req.UseFallback, []genai.Part{genai.Text(prompt)})
	tokens := pre.Usage.TotalTokens + final.Usage.TotalTokens
	if final.Status == models.StatusSafety {
		logger.Warn("verdict blocked by safety filter", zap.String("reason", final.Message))
		return a.blockedResult(req, start, final, pre.Text, topCases, tokens), nil
	}
	if final.Status != models.StatusSuccess {
		err := fmt.Errorf("%w: %s", ErrGenerationFailed, final.Message)
		a.fail(logger, req, start, final.Model, tokens, err)
		return nil, err
	}

	a.succeeded.Add(1)
	a.journalAnalysis(req, start, models.StatusSuccess, final.Model, tokens, topCases, "")
	logger.Info("analysis complete",
		zap.String("model", final.Model),
		zap.Int32("total_tokens", tokens),
		zap.Strings("top_cases", topCases),
		zap.Duration("took", time.Since(start)))

	return &AnalyzeResult{
		Verdict: models.Verdict{
			Status:       models.StatusSuccess,
			Text:         PostprocessVerdict(final.Text),
			Preprocessed: pre.Text,
			Model:        final.Model,
		},
		TopCases:    topCases,
		TotalTokens: tokens,
		RequestID:   req.RequestID,
		Duration:    time.Since(start),
	}, nil
}

// creativeParts converts the creative into generation request parts:
// trimmed text first, then the attachment. PDFs go through the Files API,
// images are downscaled and archived.
func (a *Analyzer) creativeParts(ctx context.Context, req AnalyzeRequest, logger *zap.Logger) ([]genai.Part, error) {
	parts := make([]genai.Part, 0, 2)
	if text := strings.TrimSpace(req.Creative.Text); text != "" {
		parts = append(parts, genai.Text(text))
	}

	switch {
	case len(req.Creative.PDFData) > 0:
		name := req.Creative.PDFName
		if name == "" {
			name = "creative.pdf"
		}
		file, err := a.gemini.UploadFile(ctx, bytes.NewReader(req.Creative.PDFData), name, "application/pdf")
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
		}
		parts = append(parts, genai.FileData{MIMEType: "application/pdf", URI: file.URI})

	case len(req.Creative.ImageData) > 0:
		processed, err := PrepareImage(req.Creative.ImageData)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
		}
		parts = append(parts, genai.ImageData("jpeg", processed))
		a.archiveImage(ctx, req, processed, logger)
	}

	return parts, nil
}

// archiveImage keeps a copy of the processed creative. Failures are
// logged and swallowed: the archive must never fail an analysis.
func (a *Analyzer) archiveImage(ctx context.Context, req AnalyzeRequest, data []byte, logger *zap.Logger) {
	if a.archive == nil {
		return
	}
	path, err := a.archive.SaveImage(ctx, req.UserID, data)
	if err != nil {
		logger.Warn("failed to archive creative image", zap.Error(err))
		return
	}
	logger.Info("creative image archived", zap.String("path", path))
}

func (a *Analyzer) generate(ctx context.Context, useFallback bool, parts []genai.Part) *gemini.GenerateResult {
	genCtx, cancel := context.WithTimeout(ctx, generateTimeout)
	defer cancel()
	if useFallback {
		return a.gemini.GenerateWithFallback(genCtx, parts...)
	}
	return a.gemini.Generate(genCtx, parts...)
}

func (a *Analyzer) blockedResult(req AnalyzeRequest, start time.Time, res *gemini.GenerateResult, preprocessed string, topCases []string, tokens int32) *AnalyzeResult {
	a.blocked.Add(1)
	a.journalAnalysis(req, start, models.StatusSafety, res.Model, tokens, topCases, "")

	return &AnalyzeResult{
		Verdict: models.Verdict{
			Status:       models.StatusSafety,
			Text:         res.Message,
			Preprocessed: preprocessed,
			Model:        res.Model,
		},
		TopCases:    topCases,
		TotalTokens: tokens,
		RequestID:   req.RequestID,
		Duration:    time.Since(start),
	}
}

func (a *Analyzer) fail(logger *zap.Logger, req AnalyzeRequest, start time.Time, model string, tokens int32, err error) {
	a.failed.Add(1)
	a.journalAnalysis(req, start, models.StatusError, model, tokens, nil, err.Error())
	logger.Error("analysis failed", zap.Error(err), zap.Duration("took", time.Since(start)))
}

func (a *Analyzer) journalAnalysis(req AnalyzeRequest, start time.Time, status models.AnalysisStatus, model string, tokens int32, topCases []string, errMsg string) {
	if a.journal == nil {
		return
	}
	a.journal.Analysis(models.AnalysisRecord{
		RequestID:   req.RequestID,
		UserID:      req.UserID,
		Username:    req.Username,
		ReceivedAt:  start,
		DurationSec: time.Since(start).Seconds(),
		Status:      status,
		Model:       model,
		TotalTokens: tokens,
		TopCases:    topCases,
		Error:       errMsg,
	})
}

func logRanking(logger *zap.Logger, matches []models.PrecedentMatch) {
	depth := len(matches)
	if depth > rankLogDepth {
		depth = rankLogDepth
	}
	ranked := make([]string, 0, depth)
	for _, m := range matches[:depth] {
		ranked = append(ranked, fmt.Sprintf("%s=%.4f", m.Precedent.CaseID, m.Score))
	}
	logger.Info("semantic search ranking", zap.Strings("top", ranked))
}

func caseIDs(matches []models.PrecedentMatch) []string {
	ids := make([]string, 0, len(matches))
	for _, m := range matches {
		ids = append(ids, m.Precedent.CaseID)
	}
	return ids
}

// FormatCaseContext renders retrieved precedents into the case context
// block of the analysis prompt.
func FormatCaseContext(matches []models.PrecedentMatch) string {
	if len(matches) == 0 {
		return noCasesFound
	}

	blocks := make([]string, 0, len(matches))
	for _, m := range matches {
		var b strings.Builder
		fmt.Fprintf(&b, "Кейс (caseID: \"%s\"):\n", m.Precedent.CaseID)
		fmt.Fprintf(&b, "- Описание нарушения: \"%s\"\n", m.Precedent.ViolationSummary)
		fmt.Fprintf(&b, "- Аргументы ФАС: \"%s\"\n", m.Precedent.FASArguments)
		fmt.Fprintf(&b, "- Теги: \"%s\"", m.Precedent.ThematicTags)
		blocks = append(blocks, b.String())
	}
	return strings.Join(blocks, "\n---\n")
}
