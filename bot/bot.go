// Package bot implements the Telegram conversation: greeting and consent,
// creative intake, verdict delivery, the safety-violation blocklist and
// the feedback survey.
package bot

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"adcheck-bot/journal"
	"adcheck-bot/models"
	"adcheck-bot/service"
)

// Telegram lets bots download files up to 20 MB; the product promises
// users 10 MB, so that is what we enforce.
const maxFileSize = 10 << 20

var (
	errUnsupportedFile = errors.New("unsupported file type")
	errFileTooLarge    = errors.New("file too large")
)

// Callback data of the inline keyboards.
const (
	callbackLearnMore      = "learn_more"
	callbackAgreeAndUpload = "agree_and_upload"
	callbackCheckAnother   = "check_another"
	callbackGiveFeedback   = "give_feedback"
)

// Bot runs the Telegram side of the service: one long-polling loop,
// in-memory per-chat sessions, analysis via the shared Analyzer.
type Bot struct {
	api        *tgbotapi.BotAPI
	analyzer   *service.Analyzer
	journal    *journal.Journal
	logger     *zap.Logger
	security   *zap.Logger
	adminID    int64
	channelURL string
	httpClient *http.Client

	// Guards the session map; each session synchronizes its own state.
	mu       sync.Mutex
	sessions map[int64]*session
}

// Option is a functional option for Bot
type Option func(*Bot)

// WithJournal sets the usage journal
func WithJournal(j *journal.Journal) Option {
	return func(b *Bot) {
		b.journal = j
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(b *Bot) {
		b.logger = logger
	}
}

// WithSecurityLogger sets the logger for safety incidents
func WithSecurityLogger(logger *zap.Logger) Option {
	return func(b *Bot) {
		b.security = logger
	}
}

// WithAdmin sets the chat notified about startups, crashes and blocks
func WithAdmin(chatID int64) Option {
	return func(b *Bot) {
		b.adminID = chatID
	}
}

// WithChannelURL sets the project channel linked under every verdict
func WithChannelURL(url string) Option {
	return func(b *Bot) {
		b.channelURL = url
	}
}

// New authorizes against the Telegram bot API and prepares the bot.
func New(token string, analyzer *service.Analyzer, opts ...Option) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram client: %w", err)
	}

	b := &Bot{
		api:        api,
		analyzer:   analyzer,
		logger:     zap.NewNop(),
		security:   zap.NewNop(),
		httpClient: &http.Client{Timeout: 2 * time.Minute},
		sessions:   make(map[int64]*session),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// Run notifies the admin chat and consumes updates until the context is
// canceled. Updates are handled concurrently; an analysis in flight
// rate-limits the chat it belongs to via the session processing flag.
func (b *Bot) Run(ctx context.Context) error {
	b.logger.Info("bot authorized", zap.String("username", b.api.Self.UserName))

	if b.adminID != 0 {
		if _, err := b.api.Send(tgbotapi.NewMessage(b.adminID, startupText)); err != nil {
			return fmt.Errorf("failed to notify admin on startup: %w", err)
		}
	}

	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = 60
	updates := b.api.GetUpdatesChan(cfg)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			go b.handleUpdate(ctx, update)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("panic while handling update", zap.Any("panic", r))
		}
	}()

	switch {
	case update.CallbackQuery != nil:
		b.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil && update.Message.IsCommand():
		b.handleCommand(update.Message)
	case update.Message != nil:
		b.handleMessage(ctx, update.Message)
	}
}

func (b *Bot) session(chatID int64) *session {
	b.mu.Lock()
	defer b.mu.Unlock()
	s, ok := b.sessions[chatID]
	if !ok {
		s = &session{}
		b.sessions[chatID] = s
	}
	return s
}

// handleCommand handles /start, the only command the bot knows. During a
// feedback survey /start cancels it and returns to the menu.
func (b *Bot) handleCommand(msg *tgbotapi.Message) {
	if msg.Command() != "start" || msg.From == nil {
		return
	}
	sess := b.session(msg.Chat.ID)

	if rating, usage, profile, ok := sess.cancelSurvey(); ok {
		b.logger.Info("feedback survey canceled",
			zap.Int64("user_id", msg.From.ID),
			zap.Int("rating", rating),
			zap.String("usage", usage),
			zap.String("profile", profile))
		b.reply(msg.Chat.ID, surveyCanceledText)
		b.sendPostSurveyMenu(msg.Chat.ID)
		return
	}

	greeting := tgbotapi.NewMessage(msg.Chat.ID, startText)
	greeting.ParseMode = tgbotapi.ModeHTML
	greeting.ReplyMarkup = startKeyboard()
	b.send(greeting)
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.From == nil {
		return
	}
	sess := b.session(msg.Chat.ID)

	switch sess.surveyStage() {
	case surveyIdle:
		b.handleCreative(ctx, msg, sess)
	case surveyComment:
		if msg.Text == "" {
			return
		}
		rating, usage, profile, ok := sess.finishSurveyAt(surveyComment)
		if !ok {
			return
		}
		b.reply(msg.Chat.ID, surveyCommentSavedText)
		b.finishSurvey(msg.Chat.ID, msg.From, rating, usage, profile, msg.Text)
	default:
		b.reply(msg.Chat.ID, surveyUseButtonsText)
	}
}

// handleCreative runs one analysis round trip for a submitted creative.
func (b *Bot) handleCreative(ctx context.Context, msg *tgbotapi.Message, sess *session) {
	switch sess.beginAnalysis() {
	case gateBusy:
		b.logger.Info("message ignored, previous request still processing", zap.Int64("chat_id", msg.Chat.ID))
		return
	case gateNotArmed:
		b.reply(msg.Chat.ID, useButtonsText)
		return
	case gateBlocked:
		b.logger.Warn("message from blocked user ignored", zap.Int64("user_id", msg.From.ID))
		return
	}
	defer sess.endAnalysis()

	b.reply(msg.Chat.ID, ackText)

	creative, err := b.buildCreative(ctx, msg)
	switch {
	case errors.Is(err, errUnsupportedFile):
		b.reply(msg.Chat.ID, unsupportedFileText)
		return
	case errors.Is(err, errFileTooLarge):
		b.reply(msg.Chat.ID, fileTooLargeText)
		return
	case err != nil:
		b.crash(msg, err)
		return
	}
	if creative.IsEmpty() {
		return
	}

	result, err := b.analyzer.Analyze(ctx, service.AnalyzeRequest{
		Creative: creative,
		UserID:   msg.From.ID,
		Username: msg.From.UserName,
	})
	if err != nil {
		b.crash(msg, err)
		return
	}

	if result.Verdict.Blocked() {
		b.handleViolation(msg, sess)
		return
	}

	sess.resetConsecutive()
	b.sendVerdict(msg.Chat.ID, result.Verdict.Text)
}

// buildCreative extracts the text and downloads the attachment of a
// message. Photos arrive pre-converted by Telegram; documents must be
// jpeg, png or pdf and within the size limit.
func (b *Bot) buildCreative(ctx context.Context, msg *tgbotapi.Message) (models.Creative, error) {
	creative := models.Creative{Text: msg.Text}
	if creative.Text == "" {
		creative.Text = msg.Caption
	}

	switch {
	case len(msg.Photo) > 0:
		// The largest rendition is last.
		data, err := b.downloadFile(ctx, msg.Photo[len(msg.Photo)-1].FileID)
		if err != nil {
			return creative, err
		}
		creative.ImageData = data

	case msg.Document != nil:
		doc := msg.Document
		if doc.FileSize > maxFileSize {
			return creative, errFileTooLarge
		}
		switch doc.MimeType {
		case "application/pdf":
			data, err := b.downloadFile(ctx, doc.FileID)
			if err != nil {
				return creative, err
			}
			creative.PDFData = data
			creative.PDFName = doc.FileName
		case "image/jpeg", "image/png":
			data, err := b.downloadFile(ctx, doc.FileID)
			if err != nil {
				return creative, err
			}
			creative.ImageData = data
		default:
			return creative, errUnsupportedFile
		}
	}

	return creative, nil
}

func (b *Bot) downloadFile(ctx context.Context, fileID string) ([]byte, error) {
	file, err := b.api.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return nil, fmt.Errorf("failed to resolve file %s: %w", fileID, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, file.Link(b.api.Token), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build download request: %w", err)
	}
	resp, err := b.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download file: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download file: status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if len(data) > maxFileSize {
		return nil, errFileTooLarge
	}
	return data, nil
}

// handleViolation counts a safety violation and either warns the user or,
// past a threshold, blocks the chat and notifies the admin.
func (b *Bot) handleViolation(msg *tgbotapi.Message, sess *session) {
	user := msg.From
	consecutive, total, blocked := sess.recordViolation()

	b.security.Warn("safety violation",
		zap.Int64("user_id", user.ID),
		zap.String("username", user.UserName),
		zap.Int("consecutive", consecutive),
		zap.Int("total", total))

	if !blocked {
		warning := tgbotapi.NewMessage(msg.Chat.ID, violationWarningText)
		warning.ReplyMarkup = checkAnotherKeyboard()
		b.send(warning)
		return
	}

	b.security.Error("user blocked",
		zap.Int64("user_id", user.ID),
		zap.String("username", user.UserName),
		zap.Int("consecutive", consecutive),
		zap.Int("total", total))
	if b.journal != nil {
		b.journal.Block(models.BlockRecord{
			UserID:      user.ID,
			Username:    user.UserName,
			CreatedAt:   time.Now(),
			Consecutive: consecutive,
			Total:       total,
		})
	}

	b.reply(msg.Chat.ID, justBlockedText)
	b.notifyAdmin(fmt.Sprintf(adminBlockedText, user.ID, user.UserName))
}

// sendVerdict delivers the verdict in chunks Telegram accepts, keyboard
// on the last one.
func (b *Bot) sendVerdict(chatID int64, text string) {
	parts := splitMessage(text, maxMessageLength)
	for i, part := range parts {
		msg := tgbotapi.NewMessage(chatID, part)
		msg.ParseMode = tgbotapi.ModeHTML
		msg.DisableWebPagePreview = true
		if i == len(parts)-1 {
			msg.ReplyMarkup = b.verdictKeyboard()
		}
		b.send(msg)
	}
}

func (b *Bot) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	// Answer right away so the button stops spinning.
	if _, err := b.api.Request(tgbotapi.NewCallback(cb.ID, "")); err != nil {
		b.logger.Warn("failed to answer callback", zap.Error(err))
	}
	if cb.Message == nil || cb.From == nil {
		return
	}
	sess := b.session(cb.Message.Chat.ID)

	switch data := cb.Data; {
	case data == callbackLearnMore:
		b.sendLearnMore(cb)
	case data == callbackAgreeAndUpload:
		b.agreeAndUpload(cb, sess)
	case data == callbackCheckAnother:
		b.checkAnother(cb, sess)
	case data == callbackGiveFeedback:
		b.startSurvey(cb, sess)
	case strings.HasPrefix(data, "rate_"):
		b.surveyRatingStep(cb, sess, data)
	case strings.HasPrefix(data, "usage_"):
		b.surveyUsageStep(cb, sess, data)
	case strings.HasPrefix(data, "profile_"):
		b.surveyProfileStep(cb, sess, data)
	case strings.HasPrefix(data, "elaborate_"):
		b.surveyElaborateStep(cb, sess, data)
	default:
		b.logger.Warn("unknown callback", zap.String("data", data))
	}
}

// agreeAndUpload swaps the greeting for the upload instructions and arms
// the session. Blocked users are ignored silently.
func (b *Bot) agreeAndUpload(cb *tgbotapi.CallbackQuery, sess *session) {
	if sess.isBlocked() {
		return
	}
	sess.arm()

	edit := tgbotapi.NewEditMessageText(cb.Message.Chat.ID, cb.Message.MessageID, uploadText)
	edit.ParseMode = tgbotapi.ModeHTML
	b.edit(edit)
}

func (b *Bot) checkAnother(cb *tgbotapi.CallbackQuery, sess *session) {
	sess.arm()
	b.replyHTML(cb.Message.Chat.ID, checkAnotherText)
}

// sendLearnMore replaces the pressed message with the project description
// and follows up with the confidentiality part and an upload button.
func (b *Bot) sendLearnMore(cb *tgbotapi.CallbackQuery) {
	edit := tgbotapi.NewEditMessageText(cb.Message.Chat.ID, cb.Message.MessageID, learnMoreTextPart1)
	edit.ParseMode = tgbotapi.ModeHTML
	b.edit(edit)

	followUp := tgbotapi.NewMessage(cb.Message.Chat.ID, learnMoreTextPart2)
	followUp.ParseMode = tgbotapi.ModeHTML
	followUp.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Понятно, хочу загрузить креатив", callbackAgreeAndUpload),
		),
	)
	b.send(followUp)
}

// startSurvey opens the feedback survey: the verdict keyboard is removed
// and question 1 arrives as a new message.
func (b *Bot) startSurvey(cb *tgbotapi.CallbackQuery, sess *session) {
	clearKeyboard := tgbotapi.EditMessageReplyMarkupConfig{
		BaseEdit: tgbotapi.BaseEdit{
			ChatID:    cb.Message.Chat.ID,
			MessageID: cb.Message.MessageID,
		},
	}
	if _, err := b.api.Request(clearKeyboard); err != nil {
		b.logger.Warn("failed to remove verdict keyboard", zap.Error(err))
	}

	sess.startSurvey()

	question := tgbotapi.NewMessage(cb.Message.Chat.ID, surveyRatingText)
	question.ParseMode = tgbotapi.ModeHTML
	question.ReplyMarkup = ratingKeyboard()
	b.send(question)
}

func (b *Bot) surveyRatingStep(cb *tgbotapi.CallbackQuery, sess *session, data string) {
	rating, err := strconv.Atoi(strings.TrimPrefix(data, "rate_"))
	if err != nil {
		b.logger.Warn("unexpected rating callback", zap.String("data", data))
		return
	}
	if !sess.submitRating(rating) {
		return
	}

	edit := tgbotapi.NewEditMessageTextAndMarkup(cb.Message.Chat.ID, cb.Message.MessageID, surveyUsageText, usageKeyboard())
	edit.ParseMode = tgbotapi.ModeHTML
	b.edit(edit)
}

func (b *Bot) surveyUsageStep(cb *tgbotapi.CallbackQuery, sess *session, data string) {
	if !sess.submitUsage(data) {
		return
	}

	edit := tgbotapi.NewEditMessageTextAndMarkup(cb.Message.Chat.ID, cb.Message.MessageID, surveyProfileText, profileKeyboard())
	edit.ParseMode = tgbotapi.ModeHTML
	b.edit(edit)
}

func (b *Bot) surveyProfileStep(cb *tgbotapi.CallbackQuery, sess *session, data string) {
	if !sess.submitProfile(data) {
		return
	}

	edit := tgbotapi.NewEditMessageTextAndMarkup(cb.Message.Chat.ID, cb.Message.MessageID, surveyElaborateText, elaborateKeyboard())
	edit.ParseMode = tgbotapi.ModeHTML
	b.edit(edit)
}

func (b *Bot) surveyElaborateStep(cb *tgbotapi.CallbackQuery, sess *session, data string) {
	if data == "elaborate_yes" {
		if !sess.beginComment() {
			return
		}
		b.edit(tgbotapi.NewEditMessageText(cb.Message.Chat.ID, cb.Message.MessageID, surveyElaborateYesText))
		return
	}

	rating, usage, profile, ok := sess.finishSurveyAt(surveyElaborate)
	if !ok {
		return
	}
	b.edit(tgbotapi.NewEditMessageText(cb.Message.Chat.ID, cb.Message.MessageID, surveyThanksText))
	b.finishSurvey(cb.Message.Chat.ID, cb.From, rating, usage, profile, "")
}

// finishSurvey journals the answers and shows the what-next menu.
func (b *Bot) finishSurvey(chatID int64, user *tgbotapi.User, rating int, usage, profile, comment string) {
	if b.journal != nil {
		b.journal.Feedback(models.FeedbackRecord{
			UserID:    user.ID,
			Username:  user.UserName,
			CreatedAt: time.Now(),
			Rating:    rating,
			Usage:     usage,
			Profile:   profile,
			Comment:   comment,
		})
	}
	b.logger.Info("feedback survey completed",
		zap.Int64("user_id", user.ID),
		zap.Int("rating", rating),
		zap.String("usage", usage),
		zap.String("profile", profile))

	b.sendPostSurveyMenu(chatID)
}

func (b *Bot) sendPostSurveyMenu(chatID int64) {
	menu := tgbotapi.NewMessage(chatID, postSurveyMenuText)
	menu.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Проверить креатив", callbackCheckAnother),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("ℹ️ Узнать об ограничениях", callbackLearnMore),
		),
	)
	b.send(menu)
}

func (b *Bot) crash(msg *tgbotapi.Message, err error) {
	b.logger.Error("creative handling failed",
		zap.Int64("user_id", msg.From.ID),
		zap.Error(err))
	b.reply(msg.Chat.ID, internalErrorText)
	b.notifyAdmin(fmt.Sprintf(adminCrashText, msg.From.ID, err))
}

func (b *Bot) notifyAdmin(text string) {
	if b.adminID == 0 {
		return
	}
	if _, err := b.api.Send(tgbotapi.NewMessage(b.adminID, text)); err != nil {
		b.logger.Error("failed to notify admin", zap.Error(err))
	}
}

func (b *Bot) reply(chatID int64, text string) {
	b.send(tgbotapi.NewMessage(chatID, text))
}

func (b *Bot) replyHTML(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	b.send(msg)
}

// send delivers a message, retrying once as plain text when Telegram
// rejects the markup.
func (b *Bot) send(msg tgbotapi.MessageConfig) {
	_, err := b.api.Send(msg)
	if err == nil {
		return
	}
	if msg.ParseMode == "" {
		b.logger.Error("failed to send message", zap.Int64("chat_id", msg.ChatID), zap.Error(err))
		return
	}

	b.logger.Warn("failed to send formatted message, retrying as plain text", zap.Error(err))
	msg.ParseMode = ""
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Error("failed to send message", zap.Int64("chat_id", msg.ChatID), zap.Error(err))
	}
}

func (b *Bot) edit(cfg tgbotapi.EditMessageTextConfig) {
	if _, err := b.api.Send(cfg); err != nil {
		b.logger.Warn("failed to edit message", zap.Error(err))
	}
}

func startKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("ℹ️ Больше об ограничениях", callbackLearnMore),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Соглашаюсь и хочу загрузить креатив", callbackAgreeAndUpload),
		),
	)
}

func checkAnotherKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Проверить еще один креатив", callbackCheckAnother),
		),
	)
}

// verdictKeyboard is attached to the last chunk of every verdict.
func (b *Bot) verdictKeyboard() tgbotapi.InlineKeyboardMarkup {
	rows := [][]tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Проверить еще один креатив", callbackCheckAnother),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✍️ Дать обратную связь", callbackGiveFeedback),
		),
	}
	if b.channelURL != "" {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL("👩🏻‍💻 Узнать больше о проекте", b.channelURL),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func ratingKeyboard() tgbotapi.InlineKeyboardMarkup {
	row := make([]tgbotapi.InlineKeyboardButton, 0, 5)
	for i := 1; i <= 5; i++ {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(strconv.Itoa(i), fmt.Sprintf("rate_%d", i)))
	}
	return tgbotapi.NewInlineKeyboardMarkup(row)
}

func usageKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("Да", "usage_yes")),
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("Нет", "usage_no")),
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("Частично", "usage_partial")),
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("Бот не предлагал исправлений", "usage_no_recs")),
	)
}

func profileKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("из креативной индустрии", "profile_creative")),
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("юрист", "profile_lawyer")),
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("ИИ-энтузиаст", "profile_ai")),
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("неравнодушный гражданин", "profile_citizen")),
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("иное", "profile_other")),
	)
}

func elaborateKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("Да, хочу рассказать", "elaborate_yes")),
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("Нет", "elaborate_no")),
	)
}
