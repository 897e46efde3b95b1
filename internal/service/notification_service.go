package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/grievance-service/internal/events"
	"github.com/spec-kit/grievance-service/internal/mailer"
	"github.com/spec-kit/grievance-service/internal/worker"
)

// NotificationService turns domain events into bilingual confirmation emails
// for the citizen and the receiving department. Delivery happens through the
// email worker; submission success is reported independently of it.
type NotificationService struct {
	dispatcher events.Dispatcher
	emails     *worker.EmailWorker
	logger     *zap.Logger
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, emails *worker.EmailWorker, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		emails:     emails,
		logger:     logger,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventComplaintSubmitted, n.handleComplaintSubmitted)
}

func (n *NotificationService) handleComplaintSubmitted(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.ComplaintSubmittedPayload)
	if !ok {
		n.logger.Error("unexpected payload for complaint_submitted", zap.String("event_id", event.ID))
		return nil
	}

	body, err := mailer.RenderComplaintEmail(mailer.ComplaintEmailData{
		ComplaintKey:   event.ComplaintKey,
		UserName:       payload.UserName,
		DepartmentName: payload.DepartmentName,
		Address:        payload.Address,
		Phone:          payload.Phone,
		EnglishContent: payload.EnglishApplication,
		HindiContent:   payload.HindiApplication,
	})
	if err != nil {
		n.logger.Error("failed to render complaint email", zap.Error(err))
		return err
	}

	n.emails.Enqueue(worker.EmailJob{
		Recipient: payload.UserEmail,
		Subject:   fmt.Sprintf("Complaint Registered - ID: %s", event.ComplaintKey),
		HTMLBody:  body,
	})
	n.emails.Enqueue(worker.EmailJob{
		Recipient: payload.DepartmentEmail,
		Subject:   fmt.Sprintf("New Complaint Received - ID: %s", event.ComplaintKey),
		HTMLBody:  body,
	})

	n.logger.Info("complaint notifications queued",
		zap.String("complaint_key", event.ComplaintKey),
		zap.String("user_email", payload.UserEmail),
		zap.String("department_email", payload.DepartmentEmail))
	return nil
}
