package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"

	"adcheck-bot/journal"
)

// Builds the daily usage report from the journal and sends it to the admin.
// Meant to run from cron shortly after midnight for the previous day:
//
//	report -date 2026-08-24
func main() {
	// Load .env file from project root (relative to cmd/report/)
	// Try current directory first, then project root
	if err := godotenv.Load(); err != nil {
		if err := godotenv.Load("../../.env"); err != nil {
			log.Printf("Warning: No .env file found, using environment variables")
		}
	}

	dateArg := flag.String("date", "", "report day as YYYY-MM-DD (default today)")
	flag.Parse()

	day := time.Now()
	if *dateArg != "" {
		parsed, err := time.ParseInLocation("2006-01-02", *dateArg, time.Local)
		if err != nil {
			log.Fatalf("Invalid -date %q: %v", *dateArg, err)
		}
		day = parsed
	}

	journalPath := os.Getenv("JOURNAL_PATH")
	if journalPath == "" {
		logsDir := os.Getenv("LOGS_DIR")
		if logsDir == "" {
			logsDir = "user_logs"
		}
		journalPath = filepath.Join(logsDir, "journal.jsonl")
	}

	entries, skipped, err := journal.Read(journalPath)
	if err != nil {
		log.Fatal("Failed to read journal:", err)
	}
	if skipped > 0 {
		log.Printf("Warning: skipped %d corrupt journal lines", skipped)
	}

	summary := journal.Summarize(entries, day)
	report := journal.FormatReport(summary)
	fmt.Println(report)

	csvPath := filepath.Join(filepath.Dir(journalPath), "report_"+day.Format("2006-01-02")+".csv")
	if err := journal.ExportCSV(csvPath, entries, day); err != nil {
		log.Fatal("Failed to export csv:", err)
	}
	log.Printf("Day exported to %s", csvPath)

	token := os.Getenv("TELEGRAM_BOT_TOKEN")
	adminID, _ := strconv.ParseInt(os.Getenv("ADMIN_USER_ID"), 10, 64)
	if token == "" || adminID == 0 {
		log.Println("TELEGRAM_BOT_TOKEN or ADMIN_USER_ID not set, report printed only")
		return
	}

	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		log.Fatal("Failed to initialize Telegram bot:", err)
	}
	msg := tgbotapi.NewMessage(adminID, report)
	msg.ParseMode = tgbotapi.ModeMarkdown
	if _, err := api.Send(msg); err != nil {
		log.Fatal("Failed to send report:", err)
	}
	log.Println("Report sent to admin")
}
