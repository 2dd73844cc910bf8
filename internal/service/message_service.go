package service

import (
	"context"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/portfolio/backend/internal/model"
)

// emailPattern accepts local@domain with at least one dot after the @ and
// no whitespace anywhere.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// InvalidInputError rejects a submission with a user-facing reason.
type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string { return e.Reason }

// CreateMessageInput carries the four user-provided fields of a submission.
type CreateMessageInput struct {
	Name    string
	Email   string
	Subject string
	Body    string
}

// Validate checks the required fields and the email shape. Fields are
// expected to be trimmed already.
func (in CreateMessageInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.Required.Error("name is required")),
		validation.Field(&in.Email,
			validation.Required.Error("email is required"),
			validation.Match(emailPattern).Error("please enter a valid email address")),
		validation.Field(&in.Subject, validation.Required.Error("subject is required")),
		validation.Field(&in.Body, validation.Required.Error("message is required")),
	)
}

// Notifier receives successfully created messages for out-of-band delivery.
// Implementations must not block and must not fail the caller.
type Notifier interface {
	Notify(msg model.Message)
}

// MessageService defines the business logic of the contact intake path.
type MessageService interface {
	// Create validates and persists a submission, returning the stored
	// record. Rejections carry *InvalidInputError.
	Create(ctx context.Context, in CreateMessageInput) (*model.Message, error)

	// List returns all messages, newest first.
	List(ctx context.Context) ([]*model.Message, error)

	// MarkRead flips a message to read (idempotent) and returns the
	// updated record.
	MarkRead(ctx context.Context, id int64) (*model.Message, error)
}
