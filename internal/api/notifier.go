package telegram

import (
	"context"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"lesion-features/internal/domain/entity"
	"lesion-features/internal/domain/port"
)

const (
	msgRunSucceeded = "✅ Извлечение признаков завершено"
	msgRunFailed    = "⚠️ Извлечение признаков прервано"
)

// sender часть BotAPI, нужная для отправки сообщений
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Notifier отправляет итог прогона в Telegram-чат
type Notifier struct {
	api    sender
	chatID int64
	logger *zap.Logger
}

// NewNotifier авторизуется в Telegram и создаёт уведомитель
func NewNotifier(token string, chatID int64, logger *zap.Logger) (*Notifier, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram auth: %w", err)
	}

	logger.Debug("telegram notifier authorized", zap.String("account", api.Self.UserName))

	return newNotifier(api, chatID, logger), nil
}

func newNotifier(api sender, chatID int64, logger *zap.Logger) *Notifier {
	return &Notifier{
		api:    api,
		chatID: chatID,
		logger: logger,
	}
}

// NotifyRunFinished отправляет одно сообщение с итогом прогона
func (n *Notifier) NotifyRunFinished(ctx context.Context, report *entity.RunReport) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := tgbotapi.NewMessage(n.chatID, formatReport(report))
	if _, err := n.api.Send(msg); err != nil {
		return fmt.Errorf("telegram send: %w", err)
	}

	n.logger.Debug("run notification sent", zap.Int64("chat_id", n.chatID))
	return nil
}

// formatReport собирает текст сообщения
func formatReport(report *entity.RunReport) string {
	var b strings.Builder

	if report.Succeeded() {
		b.WriteString(msgRunSucceeded)
	} else {
		b.WriteString(msgRunFailed)
	}
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "📂 Данные: %s\n", report.DataDir)
	fmt.Fprintf(&b, "📄 Таблица: %s\n", report.OutputPath)
	fmt.Fprintf(&b, "👤 Пациентов: %d\n", report.Patients)
	fmt.Fprintf(&b, "🔬 Очагов: %d\n", report.Lesions)
	if report.Succeeded() {
		fmt.Fprintf(&b, "📊 Строк записано: %d\n", report.Rows)
	}
	fmt.Fprintf(&b, "⏱ Время: %s", report.Duration.Round(time.Millisecond))

	if !report.Succeeded() {
		fmt.Fprintf(&b, "\n\n❌ Ошибка: %v", report.Err)
	}
	return b.String()
}

// NopNotifier используется, когда Telegram не настроен
type NopNotifier struct{}

// NotifyRunFinished ничего не делает
func (NopNotifier) NotifyRunFinished(ctx context.Context, report *entity.RunReport) error {
	return nil
}

// Проверка реализации интерфейса
var (
	_ port.RunNotifier = (*Notifier)(nil)
	_ port.RunNotifier = NopNotifier{}
)
