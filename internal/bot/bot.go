package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"github.com/Alias1177/kalilfin/internal/analyze"
	"github.com/Alias1177/kalilfin/models"
)

const helpText = `Kalilfin portfolio bot
/add TICKER - add or refresh a ticker
/remove TICKER - remove a ticker
/portfolio - show the portfolio
/news TICKER - latest headlines
/tip - a financial tip
/export - download the portfolio as CSV`

// Dashboard is the portfolio core the bot drives
type Dashboard interface {
	AddTicker(ctx context.Context, raw string) (*models.TickerRecord, error)
	RemoveTicker(ticker string)
	View(ctx context.Context, errMsg string) *models.PortfolioView
	News(ctx context.Context, ticker string) []models.NewsItem
	Tip() string
	Export() (string, []byte, error)
}

// Document is a file attached to a reply
type Document struct {
	Name string
	Data []byte
}

// Reply is what the bot sends back for one message
type Reply struct {
	Text     string
	Document *Document
}

// Bot serves the dashboard over Telegram
type Bot struct {
	api       *tgbotapi.BotAPI
	dashboard Dashboard
	log       zerolog.Logger
}

// New authorizes against the Bot API with token
func New(token string, dashboard Dashboard, log zerolog.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("initializing telegram bot: %w", err)
	}
	b := &Bot{
		api:       api,
		dashboard: dashboard,
		log:       log.With().Str("component", "bot").Logger(),
	}
	b.log.Info().Str("username", api.Self.UserName).Msg("Authorized on Telegram")
	return b, nil
}

// Run polls for updates until ctx is cancelled
func (b *Bot) Run(ctx context.Context) {
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60

	updates := b.api.GetUpdatesChan(updateConfig)
	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			b.log.Info().Msg("Bot stopped")
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			if update.Message != nil {
				b.handleMessage(ctx, update.Message)
			}
		}
	}
}

func (b *Bot) handleMessage(ctx context.Context, message *tgbotapi.Message) {
	chatID := message.Chat.ID
	reply := Handle(ctx, b.dashboard, message.Text)

	if reply.Document != nil {
		doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{Name: reply.Document.Name, Bytes: reply.Document.Data})
		if _, err := b.api.Send(doc); err != nil {
			b.log.Error().Err(err).Int64("chat_id", chatID).Msg("Failed to send document")
		}
		return
	}

	msg := tgbotapi.NewMessage(chatID, reply.Text)
	msg.DisableWebPagePreview = true
	msg.ReplyMarkup = mainMenuKeyboard()
	if _, err := b.api.Send(msg); err != nil {
		b.log.Error().Err(err).Int64("chat_id", chatID).Msg("Failed to send message")
	}
}

// ParseCommand splits "/cmd@bot arg" into "cmd" and "arg"
func ParseCommand(text string) (string, string) {
	fields := strings.Fields(text)
	if len(fields) == 0 || !strings.HasPrefix(fields[0], "/") {
		return "", ""
	}
	cmd := strings.TrimPrefix(fields[0], "/")
	if i := strings.Index(cmd, "@"); i >= 0 {
		cmd = cmd[:i]
	}
	var arg string
	if len(fields) > 1 {
		arg = fields[1]
	}
	return strings.ToLower(cmd), arg
}

// Handle turns one chat message into a reply
func Handle(ctx context.Context, d Dashboard, text string) Reply {
	cmd, arg := ParseCommand(text)

	switch cmd {
	case "add":
		if arg == "" {
			return Reply{Text: "Usage: /add TICKER"}
		}
		record, err := d.AddTicker(ctx, arg)
		if err != nil {
			return Reply{Text: fmt.Sprintf("Invalid ticker: %s", analyze.NormalizeTicker(arg))}
		}
		return Reply{Text: "Added\n" + formatRecord(*record)}

	case "remove":
		if arg == "" {
			return Reply{Text: "Usage: /remove TICKER"}
		}
		d.RemoveTicker(arg)
		return Reply{Text: fmt.Sprintf("Removed %s", analyze.NormalizeTicker(arg))}

	case "portfolio":
		return Reply{Text: formatView(d.View(ctx, ""))}

	case "news":
		if arg == "" {
			return Reply{Text: "Usage: /news TICKER"}
		}
		return Reply{Text: formatNews(analyze.NormalizeTicker(arg), d.News(ctx, arg))}

	case "tip":
		return Reply{Text: d.Tip()}

	case "export":
		name, data, err := d.Export()
		if errors.Is(err, models.ErrEmptyPortfolio) {
			return Reply{Text: "Portfolio is empty!"}
		}
		if err != nil {
			return Reply{Text: "Export failed, try again later."}
		}
		return Reply{Document: &Document{Name: name, Data: data}}

	default:
		return Reply{Text: helpText}
	}
}

func formatRecord(r models.TickerRecord) string {
	return fmt.Sprintf("%s (%s)\nPrice: $%.2f (%+.2f%%)\nSMA20: %.2f  RSI: %.2f\nDecision: %s\nForecast: $%.2f\nEco score: %d",
		r.Ticker, r.Name, r.Price, r.ChangePct, r.SMA20, r.RSI, r.Decision, r.Prediction, r.EcoScore.Score)
}

func formatView(view *models.PortfolioView) string {
	if len(view.Records) == 0 {
		return "Your portfolio is empty. Use /add TICKER."
	}

	var sb strings.Builder
	for _, r := range view.Records {
		sb.WriteString(formatRecord(r))
		sb.WriteString("\n")
		for _, item := range view.News[r.Ticker] {
			sb.WriteString(fmt.Sprintf("- %s\n", item.Title))
		}
		sb.WriteString("\n")
	}
	sb.WriteString("Tip: ")
	sb.WriteString(view.Tip)
	sb.WriteString("\nUpdated ")
	sb.WriteString(view.Timestamp)
	return sb.String()
}

func formatNews(ticker string, items []models.NewsItem) string {
	if len(items) == 0 {
		return fmt.Sprintf("No news for %s", ticker)
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("News for %s\n", ticker))
	for _, item := range items {
		sb.WriteString(fmt.Sprintf("- %s\n  %s\n", item.Title, item.Link))
	}
	return sb.String()
}

func mainMenuKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("/portfolio"),
			tgbotapi.NewKeyboardButton("/tip"),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("/export"),
		),
	)
}
