package services

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/magabrotheeeer/photostudio-crm/internal/lib/sl"
	"github.com/magabrotheeeer/photostudio-crm/internal/lib/smtp"
	"github.com/magabrotheeeer/photostudio-crm/internal/models"
)

// Transport устанавливает SMTP соединение для отправки письма.
type Transport interface {
	Connect() (smtp.Client, error)
	GetSMTPUser() string
}

// SenderService отправляет письма-напоминания владельцам событий.
type SenderService struct {
	transport Transport
	log       *slog.Logger
}

// NewSenderService создает новый экземпляр SenderService.
func NewSenderService(transport Transport, log *slog.Logger) *SenderService {
	return &SenderService{
		transport: transport,
		log:       log,
	}
}

// BuildReminderMessage формирует текст письма-напоминания о событии.
func BuildReminderMessage(from string, reminder models.EventReminder) string {
	subject := fmt.Sprintf("Напоминание: %s завтра", reminder.Title)

	var details strings.Builder
	fmt.Fprintf(&details, "Здравствуйте, %s!\n\n", reminder.UserName)
	fmt.Fprintf(&details, "Завтра, %s, у вас запланировано событие \"%s\" с %s до %s.\n",
		reminder.EventDate.Format("02.01.2006"), reminder.Title,
		reminder.StartTime, reminder.EndTime)
	if reminder.ClientName != nil {
		fmt.Fprintf(&details, "Клиент: %s.\n", *reminder.ClientName)
	}
	if reminder.Location != nil {
		fmt.Fprintf(&details, "Место: %s.\n", *reminder.Location)
	}

	return strings.Join([]string{
		fmt.Sprintf("From: %s", from),
		fmt.Sprintf("To: %s", reminder.Email),
		fmt.Sprintf("Subject: %s", subject),
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		details.String(),
	}, "\r\n")
}

// SendEventReminder разбирает сообщение очереди и отправляет письмо владельцу события.
// Возврат ошибки приводит к повторной доставке сообщения.
func (s *SenderService) SendEventReminder(body []byte) error {
	var reminder models.EventReminder
	if err := json.Unmarshal(body, &reminder); err != nil {
		return fmt.Errorf("error unmarshalling message: %w", err)
	}

	msg := BuildReminderMessage(s.transport.GetSMTPUser(), reminder)

	client, err := s.transport.Connect()
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	if err = client.Mail(s.transport.GetSMTPUser()); err != nil {
		s.log.Error("failed to set mail sender", sl.Err(err))
		return fmt.Errorf("failed to set mail sender: %w", err)
	}
	if err = client.Rcpt(reminder.Email); err != nil {
		s.log.Error("failed to set recipient", sl.Err(err))
		return fmt.Errorf("failed to set recipient %s: %w", reminder.Email, err)
	}

	wc, err := client.Data()
	if err != nil {
		s.log.Error("failed to get write closer", sl.Err(err))
		return fmt.Errorf("failed to get write closer: %w", err)
	}
	if _, err = wc.Write([]byte(msg)); err != nil {
		s.log.Error("failed to write message", sl.Err(err))
		return fmt.Errorf("failed to write message: %w", err)
	}
	if err = wc.Close(); err != nil {
		s.log.Error("failed to close write closer", sl.Err(err))
		return fmt.Errorf("failed to close write closer: %w", err)
	}

	if err = client.Quit(); err != nil {
		s.log.Error("failed to quit SMTP client", sl.Err(err))
		return fmt.Errorf("failed to quit SMTP client: %w", err)
	}

	s.log.Info("reminder email sent", slog.String("to", reminder.Email))
	return nil
}
