package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/dkovac/relay/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	// ListOthers returns every user except the given one, ordered by full name.
	ListOthers(ctx context.Context, id uuid.UUID) ([]domain.User, error)
	// UpdateProfilePic persists the new picture URL and returns the updated
	// row, or nil if the user no longer exists.
	UpdateProfilePic(ctx context.Context, id uuid.UUID, url string) (*domain.User, error)
}

type MessageRepository interface {
	Create(ctx context.Context, msg *domain.Message) error
	// ListConversation returns all messages exchanged between the two users,
	// in either direction, oldest first.
	ListConversation(ctx context.Context, userID, otherID uuid.UUID) ([]domain.Message, error)
}
