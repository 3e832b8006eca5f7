package service

import (
	"context"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"ambientefest/internal/model"
	"ambientefest/internal/notify"
	"ambientefest/internal/repository"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ContactService stores contact form messages and alerts the back office.
type ContactService interface {
	// Submit stores the message. A failed notification is only logged.
	Submit(ctx context.Context, in model.ContactInput) (*model.ContactMessage, error)
	List(ctx context.Context) ([]model.ContactMessage, error)
	Get(ctx context.Context, id int64) (*model.ContactMessage, error)
	Replace(ctx context.Context, id int64, in model.ContactInput) (*model.ContactMessage, error)
	Patch(ctx context.Context, id int64, in model.ContactPatch) (*model.ContactMessage, error)
	Delete(ctx context.Context, id int64) error
}

type contactService struct {
	contacts repository.ContactRepository
	notifier notify.Notifier
	logger   *zap.Logger
}

func NewContactService(contacts repository.ContactRepository, notifier notify.Notifier, logger *zap.Logger) ContactService {
	if notifier == nil {
		notifier = notify.Nop{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &contactService{contacts: contacts, notifier: notifier, logger: logger}
}

func (s *contactService) Submit(ctx context.Context, in model.ContactInput) (*model.ContactMessage, error) {
	in, err := cleanContact(in)
	if err != nil {
		return nil, err
	}
	msg, err := s.contacts.Create(ctx, in)
	if err != nil {
		return nil, err
	}
	if err := s.notifier.ContactReceived(ctx, *msg); err != nil {
		s.logger.Error("contact notification failed", zap.Int64("contact_id", msg.ID), zap.Error(err))
	}
	return msg, nil
}

func cleanContact(in model.ContactInput) (model.ContactInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Message = strings.TrimSpace(in.Message)
	if in.Name == "" || in.Email == "" || in.Message == "" {
		return in, invalid("name, email and message are required")
	}
	if !emailPattern.MatchString(in.Email) {
		return in, invalid("email is not valid")
	}
	return in, nil
}

func (s *contactService) List(ctx context.Context) ([]model.ContactMessage, error) {
	return s.contacts.List(ctx)
}

func (s *contactService) Get(ctx context.Context, id int64) (*model.ContactMessage, error) {
	if id <= 0 {
		return nil, ErrIDRequired
	}
	m, err := s.contacts.Get(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	return m, nil
}

func (s *contactService) Replace(ctx context.Context, id int64, in model.ContactInput) (*model.ContactMessage, error) {
	if id <= 0 {
		return nil, ErrIDRequired
	}
	in, err := cleanContact(in)
	if err != nil {
		return nil, err
	}
	m, err := s.contacts.Replace(ctx, id, in)
	if err != nil {
		return nil, translate(err)
	}
	return m, nil
}

func (s *contactService) Patch(ctx context.Context, id int64, in model.ContactPatch) (*model.ContactMessage, error) {
	if id <= 0 {
		return nil, ErrIDRequired
	}
	if in.Name == nil && in.Email == nil && in.Message == nil {
		return nil, invalid("nothing to update")
	}
	for _, f := range []*string{in.Name, in.Email, in.Message} {
		if f != nil {
			*f = strings.TrimSpace(*f)
			if *f == "" {
				return nil, invalid("fields must not be empty")
			}
		}
	}
	if in.Email != nil && !emailPattern.MatchString(*in.Email) {
		return nil, invalid("email is not valid")
	}
	m, err := s.contacts.Patch(ctx, id, in)
	if err != nil {
		return nil, translate(err)
	}
	return m, nil
}

func (s *contactService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrIDRequired
	}
	return translate(s.contacts.Delete(ctx, id))
}
