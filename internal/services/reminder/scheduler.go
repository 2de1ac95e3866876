// Package services содержит конвейер напоминаний: планировщик находит
// завтрашние события и публикует их в очередь, отправитель рассылает письма.
package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/photostudio-crm/internal/lib/sl"
	"github.com/magabrotheeeer/photostudio-crm/internal/models"
	"github.com/magabrotheeeer/photostudio-crm/internal/rabbitmq"
)

// EventRepository описывает выборку событий для напоминаний.
type EventRepository interface {
	FindEventsForTomorrow(ctx context.Context) ([]*models.EventReminder, error)
}

// SchedulerService периодически ищет завтрашние события и публикует
// напоминания в очередь.
type SchedulerService struct {
	repo EventRepository
	log  *slog.Logger
}

// NewSchedulerService создает новый экземпляр SchedulerService.
func NewSchedulerService(repo EventRepository, log *slog.Logger) *SchedulerService {
	return &SchedulerService{
		repo: repo,
		log:  log,
	}
}

// FindUpcomingEvents раз в 12 часов выбирает завтрашние неотмененные события
// и публикует по одному сообщению на событие. Работает до отмены контекста.
func (s *SchedulerService) FindUpcomingEvents(ctx context.Context, channel *amqp.Channel) {
	ticker := time.NewTicker(12 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.log.Info("starting search for upcoming events")
			reminders, err := s.repo.FindEventsForTomorrow(ctx)
			if err != nil {
				s.log.Error("failed to find upcoming events", sl.Err(err))
				continue
			}
			for _, reminder := range reminders {
				err = rabbitmq.PublishMessage(channel, rabbitmq.Exchange, rabbitmq.KeyUpcoming, reminder)
				if err != nil {
					s.log.Error("failed to publish message", sl.Err(err))
				}
			}
			s.log.Info("published reminders", slog.Int("count", len(reminders)))
		}
	}
}
