package service

import (
	"context"
	"strings"

	"github.com/portfolio/backend/internal/model"
	"github.com/portfolio/backend/internal/repository"
)

// messageServiceImpl is the production implementation of MessageService.
type messageServiceImpl struct {
	repo     repository.MessageRepository
	notifier Notifier
}

// NewMessageService creates a MessageService backed by the given repository.
// notifier may be nil, in which case created messages trigger no
// notification.
func NewMessageService(repo repository.MessageRepository, notifier Notifier) MessageService {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	return &messageServiceImpl{repo: repo, notifier: notifier}
}

type nopNotifier struct{}

func (nopNotifier) Notify(model.Message) {}

// Create trims and validates the input, persists it, and hands the stored
// record to the notifier. The returned value is determined entirely by the
// insert; the notifier cannot alter or fail it.
func (s *messageServiceImpl) Create(ctx context.Context, in CreateMessageInput) (*model.Message, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Subject = strings.TrimSpace(in.Subject)
	in.Body = strings.TrimSpace(in.Body)

	if err := in.Validate(); err != nil {
		return nil, &InvalidInputError{Reason: err.Error()}
	}

	msg := &model.Message{
		Name:    in.Name,
		Email:   in.Email,
		Subject: in.Subject,
		Body:    in.Body,
	}
	if err := s.repo.Save(ctx, msg); err != nil {
		return nil, err
	}

	s.notifier.Notify(*msg)
	return msg, nil
}

// List returns all messages, newest first.
func (s *messageServiceImpl) List(ctx context.Context) ([]*model.Message, error) {
	return s.repo.List(ctx)
}

// MarkRead flips the message to read and returns the updated record.
func (s *messageServiceImpl) MarkRead(ctx context.Context, id int64) (*model.Message, error) {
	return s.repo.MarkRead(ctx, id)
}
