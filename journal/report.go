package journal

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"adcheck-bot/models"
)

// Incident identifies a user involved in an error, violation or block.
type Incident struct {
	UserID   int64
	Username string
}

// Summary aggregates one day of journal entries for the admin report.
type Summary struct {
	Day         time.Time
	ActiveUsers int
	NewUsers    int
	TotalUsers  int
	Requests    int
	TotalTokens int64
	AvgTokens   int64

	SuccessCount int
	SafetyCount  int
	ErrorCount   int

	Surveys int
	// Ratings counts survey answers by star value, index 1..5.
	Ratings [6]int

	Errors     []Incident
	Violations []Incident
	Blocks     []Incident
}

// Summarize reduces journal entries to the numbers for one calendar day.
// New users are those whose first analysis in the journal falls on that
// day; total users counts everyone seen up to and including it.
func Summarize(entries []Entry, day time.Time) Summary {
	s := Summary{Day: day}

	seenBefore := make(map[int64]bool)
	seenToday := make(map[int64]bool)
	seenEver := make(map[int64]bool)
	surveyed := make(map[int64]bool)

	for _, e := range entries {
		switch {
		case e.Analysis != nil:
			rec := e.Analysis
			if rec.ReceivedAt.After(endOfDay(day)) {
				continue
			}
			seenEver[rec.UserID] = true

			if !sameDay(rec.ReceivedAt, day) {
				seenBefore[rec.UserID] = true
				continue
			}
			seenToday[rec.UserID] = true
			s.Requests++
			s.TotalTokens += int64(rec.TotalTokens)

			switch rec.Status {
			case models.StatusSuccess:
				s.SuccessCount++
			case models.StatusSafety:
				s.SafetyCount++
				s.Violations = append(s.Violations, Incident{rec.UserID, rec.Username})
			default:
				s.ErrorCount++
				s.Errors = append(s.Errors, Incident{rec.UserID, rec.Username})
			}

		case e.Block != nil:
			if sameDay(e.Block.CreatedAt, day) {
				s.Blocks = append(s.Blocks, Incident{e.Block.UserID, e.Block.Username})
			}

		case e.Feedback != nil:
			rec := e.Feedback
			if !sameDay(rec.CreatedAt, day) {
				continue
			}
			surveyed[rec.UserID] = true
			if rec.Rating >= 1 && rec.Rating <= 5 {
				s.Ratings[rec.Rating]++
			}
		}
	}

	s.ActiveUsers = len(seenToday)
	for id := range seenToday {
		if !seenBefore[id] {
			s.NewUsers++
		}
	}
	s.TotalUsers = len(seenEver)
	s.Surveys = len(surveyed)
	if s.Requests > 0 {
		s.AvgTokens = s.TotalTokens / int64(s.Requests)
	}
	return s
}

func sameDay(t, day time.Time) bool {
	y1, m1, d1 := t.Local().Date()
	y2, m2, d2 := day.Local().Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

func endOfDay(day time.Time) time.Time {
	y, m, d := day.Local().Date()
	return time.Date(y, m, d, 23, 59, 59, int(time.Second-time.Nanosecond), day.Location())
}

// FormatReport renders the daily summary as the Telegram-markdown message
// sent to the admin.
func FormatReport(s Summary) string {
	var b strings.Builder

	fmt.Fprintf(&b, "*Ежедневный отчет по боту за %s*\n\n", s.Day.Format("02.01.2006"))

	b.WriteString("📊 *Активность:*\n")
	fmt.Fprintf(&b, "• Пользователей сегодня: *%d*\n", s.ActiveUsers)
	fmt.Fprintf(&b, "• Из них новых: *%d*\n", s.NewUsers)
	fmt.Fprintf(&b, "• Всего пользователей в базе: *%d*\n", s.TotalUsers)
	fmt.Fprintf(&b, "• Всего запросов сегодня: *%d*\n\n", s.Requests)

	b.WriteString("🤖 *API и Расходы:*\n")
	fmt.Fprintf(&b, "• Потрачено токенов: *%d*\n", s.TotalTokens)
	fmt.Fprintf(&b, "• В среднем на запрос: *%d* токенов\n\n", s.AvgTokens)

	b.WriteString("📝 *Обратная связь:*\n")
	fmt.Fprintf(&b, "• Заполнили опросник: *%d* чел.\n", s.Surveys)
	if s.Surveys > 0 {
		for rating := 5; rating >= 1; rating-- {
			if s.Ratings[rating] > 0 {
				fmt.Fprintf(&b, "  %s: %d\n", strings.Repeat("⭐", rating), s.Ratings[rating])
			}
		}
	}
	b.WriteString("\n")

	b.WriteString("⚠️ *Инциденты:*\n")
	fmt.Fprintf(&b, "• Ошибки: *%d*\n", len(s.Errors))
	writeIncidents(&b, s.Errors, "  Ошибок не было.")
	fmt.Fprintf(&b, "\n• Нарушения правил: *%d*\n", len(s.Violations))
	writeIncidents(&b, s.Violations, "  Нарушений не было.")
	fmt.Fprintf(&b, "\n• Блокировки: *%d*\n", len(s.Blocks))
	writeIncidents(&b, s.Blocks, "  Блокировок за сегодня не зафиксировано.")

	return b.String()
}

// ExportCSV writes the day's analysis entries to a CSV file, one row per
// request, for offline inspection alongside the Telegram report.
func ExportCSV(path string, entries []Entry, day time.Time) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create csv: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{"received_at", "user_id", "username", "request_id", "status", "model", "total_tokens", "duration_sec", "top_cases"}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	for _, e := range entries {
		if e.Analysis == nil || !sameDay(e.Analysis.ReceivedAt, day) {
			continue
		}
		rec := e.Analysis
		row := []string{
			rec.ReceivedAt.Local().Format(time.RFC3339),
			strconv.FormatInt(rec.UserID, 10),
			rec.Username,
			rec.RequestID,
			string(rec.Status),
			rec.Model,
			strconv.Itoa(int(rec.TotalTokens)),
			strconv.FormatFloat(rec.DurationSec, 'f', 2, 64),
			strings.Join(rec.TopCases, " "),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write csv: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}

func writeIncidents(b *strings.Builder, incidents []Incident, emptyLine string) {
	if len(incidents) == 0 {
		b.WriteString(emptyLine + "\n")
		return
	}
	for _, inc := range incidents {
		name := inc.Username
		if name == "" {
			name = "без имени"
		} else if !strings.HasPrefix(name, "@") {
			name = "@" + name
		}
		fmt.Fprintf(b, "  - %s (%d)\n", name, inc.UserID)
	}
}
