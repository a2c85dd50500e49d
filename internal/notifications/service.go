package notifications

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"benchlab/internal/requests"
	"benchlab/internal/shared/config"
	"benchlab/internal/users"
)

// Service is the decision-notification pipeline. It satisfies both the
// users.AccountNotifier and requests.ScheduleNotifier hooks: decisions are
// published to Kafka and delivered by the consumer workers, or sent inline
// when Kafka is disabled.
type Service struct {
	config   *config.Config
	userRepo users.Repository
	producer Producer
	consumer Consumer
	sender   EmailSender

	isRunning bool
	mu        sync.RWMutex
}

func NewService(cfg *config.Config, userRepo users.Repository) (*Service, error) {
	var sender EmailSender
	if cfg.Email.SMTPHost != "" {
		smtpSender, err := NewSMTPSender(&SMTPConfig{
			Host:      cfg.Email.SMTPHost,
			Port:      cfg.Email.SMTPPort,
			Username:  cfg.Email.SMTPUsername,
			Password:  cfg.Email.SMTPPassword,
			FromEmail: cfg.Email.FromEmail,
			FromName:  "Lab Workbench",
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create SMTP sender: %w", err)
		}
		sender = smtpSender
	} else {
		sender = NewLogSender()
	}

	service := &Service{
		config:   cfg,
		userRepo: userRepo,
		sender:   sender,
	}

	if cfg.Kafka.Enabled {
		producerConfig := DefaultKafkaProducerConfig()
		producerConfig.Brokers = cfg.Kafka.Brokers
		producerConfig.NotificationTopic = cfg.Kafka.NotificationTopic

		producer, err := NewKafkaProducer(producerConfig)
		if err != nil {
			return nil, fmt.Errorf("failed to create notification producer: %w", err)
		}

		consumerConfig := DefaultConsumerConfig()
		consumerConfig.Brokers = cfg.Kafka.Brokers
		consumerConfig.Topics = []string{cfg.Kafka.NotificationTopic}
		consumerConfig.GroupID = cfg.Kafka.ConsumerGroup

		consumer, err := NewKafkaConsumer(consumerConfig, sender)
		if err != nil {
			producer.Close()
			return nil, fmt.Errorf("failed to create notification consumer: %w", err)
		}

		service.producer = producer
		service.consumer = consumer
	}

	return service, nil
}

func (s *Service) Start(ctx context.Context, numWorkers int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("notification service is already running")
	}

	if s.consumer != nil {
		if err := s.consumer.StartConsumers(ctx, numWorkers); err != nil {
			return fmt.Errorf("failed to start consumers: %w", err)
		}
	}

	s.isRunning = true
	return nil
}

func (s *Service) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return nil
	}

	if s.consumer != nil {
		if err := s.consumer.Stop(); err != nil {
			log.Printf("Error stopping consumer: %v", err)
		}
	}
	if s.producer != nil {
		if err := s.producer.Close(); err != nil {
			log.Printf("Error closing producer: %v", err)
		}
	}

	s.isRunning = false
	return nil
}

func (s *Service) HealthCheck(ctx context.Context) error {
	s.mu.RLock()
	isRunning := s.isRunning
	s.mu.RUnlock()

	if !isRunning {
		return fmt.Errorf("notification service is not running")
	}

	if s.producer != nil {
		if err := s.producer.HealthCheck(ctx); err != nil {
			return fmt.Errorf("producer health check failed: %w", err)
		}
	}
	if s.consumer != nil {
		if err := s.consumer.HealthCheck(ctx); err != nil {
			return fmt.Errorf("consumer health check failed: %w", err)
		}
	}
	return nil
}

// NotifyAccountDecision implements users.AccountNotifier.
func (s *Service) NotifyAccountDecision(ctx context.Context, user *users.User, approved bool, comment string) {
	notType := NotificationTypeAccountRejected
	subject := "Your lab workbench registration was not approved"
	if approved {
		notType = NotificationTypeAccountApproved
		subject = "Your lab workbench account is approved"
	}

	notification := NewNotificationBuilder().
		WithType(notType).
		WithRecipient(user.ID, user.Email, user.FirstName+" "+user.LastName).
		WithSubject(subject).
		WithTemplateData(map[string]interface{}{
			"Comment": comment,
		}).
		Build()

	s.deliver(ctx, notification)
}

// NotifyScheduleDecision implements requests.ScheduleNotifier.
func (s *Service) NotifyScheduleDecision(ctx context.Context, request *requests.Request, approved bool, comment string) {
	user, err := s.userRepo.GetByID(ctx, request.UserID)
	if err != nil {
		log.Printf("Failed to resolve recipient for request %s: %v", request.ID, err)
		return
	}

	notType := NotificationTypeScheduleRejected
	subject := "Your reservation request was rejected"
	if approved {
		notType = NotificationTypeScheduleApproved
		subject = "Your reservation request is approved"
	}

	data := map[string]interface{}{
		"Comment": comment,
	}
	if request.StartsAt != nil && request.EndsAt != nil {
		data["Start"] = request.StartsAt.Format(time.RFC1123)
		data["End"] = request.EndsAt.Format(time.RFC1123)
	}

	builder := NewNotificationBuilder().
		WithType(notType).
		WithRecipient(user.ID, user.Email, user.FirstName+" "+user.LastName).
		WithSubject(subject).
		WithTemplateData(data).
		WithRequestContext(request.ID)
	if request.BenchID != nil {
		builder = builder.WithBenchContext(*request.BenchID)
	}

	s.deliver(ctx, builder.Build())
}

// deliver publishes through Kafka when enabled, otherwise sends inline.
// Either way the outcome is best effort: a failed notification is logged,
// never bubbled up to the decision that triggered it.
func (s *Service) deliver(ctx context.Context, notification *EmailNotification) {
	var err error
	if s.producer != nil {
		err = s.producer.Publish(ctx, notification)
	} else {
		err = s.sender.Send(ctx, notification)
	}
	if err != nil {
		log.Printf("Failed to deliver %s notification to %s: %v",
			notification.Type, notification.RecipientEmail, err)
	}
}
