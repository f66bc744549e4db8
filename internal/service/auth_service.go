package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/dkovac/relay/internal/domain"
	"github.com/dkovac/relay/internal/repository"
	"github.com/dkovac/relay/internal/token"
)

var (
	ErrEmailTaken = errors.New("email already exists")
	// ErrInvalidCredentials covers both unknown email and wrong password so
	// responses cannot be used to enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
)

// Uploader stores an inline image payload and returns a durable URL for it.
type Uploader interface {
	Upload(ctx context.Context, data string) (string, error)
}

type AuthService struct {
	userRepo  repository.UserRepository
	uploader  Uploader
	jwtSecret []byte
}

func NewAuthService(userRepo repository.UserRepository, uploader Uploader, jwtSecret string) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		uploader:  uploader,
		jwtSecret: []byte(jwtSecret),
	}
}

type SignupInput struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *AuthService) Signup(ctx context.Context, input SignupInput) (*domain.User, string, error) {
	existing, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, "", err
	}
	if existing != nil {
		return nil, "", ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("hashing password: %w", err)
	}

	now := time.Now()
	user := &domain.User{
		ID:           uuid.New(),
		FullName:     input.FullName,
		Email:        input.Email,
		PasswordHash: string(hash),
		ProfilePic:   "",
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", fmt.Errorf("creating user: %w", err)
	}

	tok, err := token.Issue(user.ID, s.jwtSecret)
	if err != nil {
		return nil, "", fmt.Errorf("generating token: %w", err)
	}

	return user, tok, nil
}

func (s *AuthService) Login(ctx context.Context, input LoginInput) (*domain.User, string, error) {
	user, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		return nil, "", ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)) != nil {
		return nil, "", ErrInvalidCredentials
	}

	tok, err := token.Issue(user.ID, s.jwtSecret)
	if err != nil {
		return nil, "", fmt.Errorf("generating token: %w", err)
	}

	return user, tok, nil
}

// UpdateProfilePic uploads the inline image and persists the resulting URL.
func (s *AuthService) UpdateProfilePic(ctx context.Context, userID uuid.UUID, profilePic string) (*domain.User, error) {
	url, err := s.uploader.Upload(ctx, profilePic)
	if err != nil {
		return nil, fmt.Errorf("uploading profile pic: %w", err)
	}

	user, err := s.userRepo.UpdateProfilePic(ctx, userID, url)
	if err != nil {
		return nil, err
	}
	if user == nil {
		// Account vanished between the auth check and the update.
		return nil, ErrUserNotFound
	}

	return user, nil
}

func (s *AuthService) GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}
