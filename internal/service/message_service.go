package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dkovac/relay/internal/domain"
	"github.com/dkovac/relay/internal/repository"
)

var ErrEmptyMessage = errors.New("text or image is required")

// Notifier pushes a freshly persisted message to the receiver's live
// connection, if one is open. Best effort, never returns an error.
type Notifier interface {
	NotifyNewMessage(receiverID uuid.UUID, msg *domain.Message)
}

type MessageService struct {
	messageRepo repository.MessageRepository
	userRepo    repository.UserRepository
	uploader    Uploader
	notifier    Notifier
}

func NewMessageService(messageRepo repository.MessageRepository, userRepo repository.UserRepository, uploader Uploader) *MessageService {
	return &MessageService{
		messageRepo: messageRepo,
		userRepo:    userRepo,
		uploader:    uploader,
	}
}

// SetNotifier wires the live delivery channel in after construction, since
// the hub is built after the services.
func (s *MessageService) SetNotifier(n Notifier) {
	s.notifier = n
}

// ListContacts returns every user except the caller, for the sidebar.
func (s *MessageService) ListContacts(ctx context.Context, userID uuid.UUID) ([]domain.User, error) {
	users, err := s.userRepo.ListOthers(ctx, userID)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []domain.User{}
	}
	return users, nil
}

// GetConversation returns the full message history between the caller and
// the other user, oldest first.
func (s *MessageService) GetConversation(ctx context.Context, userID, otherID uuid.UUID) ([]domain.Message, error) {
	messages, err := s.messageRepo.ListConversation(ctx, userID, otherID)
	if err != nil {
		return nil, err
	}
	if messages == nil {
		messages = []domain.Message{}
	}
	return messages, nil
}

// Send persists a message and then notifies the receiver's live connection.
// The send is successful once persisted; delivery is fire-and-forget.
func (s *MessageService) Send(ctx context.Context, senderID, receiverID uuid.UUID, text, image string) (*domain.Message, error) {
	if text == "" && image == "" {
		return nil, ErrEmptyMessage
	}

	var imageURL *string
	if image != "" {
		url, err := s.uploader.Upload(ctx, image)
		if err != nil {
			return nil, fmt.Errorf("uploading image: %w", err)
		}
		imageURL = &url
	}

	var textPtr *string
	if text != "" {
		textPtr = &text
	}

	now := time.Now()
	msg := &domain.Message{
		ID:         uuid.New(),
		SenderID:   senderID,
		ReceiverID: receiverID,
		Text:       textPtr,
		Image:      imageURL,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.messageRepo.Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("creating message: %w", err)
	}

	if s.notifier != nil {
		s.notifier.NotifyNewMessage(receiverID, msg)
	}

	return msg, nil
}
