package auth

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	tokens "github.com/aminedz/microimport/internal/auth"
	"github.com/aminedz/microimport/internal/domain/models"
	"github.com/aminedz/microimport/internal/repository/mongodb"
)

// Errors surfaced to the HTTP layer.
var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountDisabled    = errors.New("account disabled")
)

// Service implements the account flows: registration, login, profile edits
// and password changes.
type Service struct {
	users  *mongodb.UserRepository
	tokens *tokens.TokenManager
	logger *zap.Logger
}

// NewService wires an auth service instance.
func NewService(users *mongodb.UserRepository, tokenManager *tokens.TokenManager, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{users: users, tokens: tokenManager, logger: logger}
}

// RegisterInput carries a new account request.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
	Location string
}

// Register creates an account and returns the user with a fresh session
// token.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*models.User, string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	user := &models.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hash),
		Phone:        in.Phone,
		Location:     in.Location,
		Active:       true,
	}

	if _, err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, mongodb.ErrDuplicate) {
			return nil, "", ErrEmailTaken
		}
		return nil, "", err
	}

	token, err := s.tokens.Generate(user.ID.Hex())
	if err != nil {
		return nil, "", err
	}

	s.logger.Info("user registered", zap.String("user_id", user.ID.Hex()))
	return user, token, nil
}

// Login verifies the credentials and returns the user with a fresh session
// token. Disabled accounts cannot log in.
func (s *Service) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, mongodb.ErrNotFound) {
		return nil, "", ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	if !user.Active {
		return nil, "", ErrAccountDisabled
	}

	token, err := s.tokens.Generate(user.ID.Hex())
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// Me returns the account behind a user id.
func (s *Service) Me(ctx context.Context, userID primitive.ObjectID) (*models.User, error) {
	return s.users.FindByID(ctx, userID)
}

// UpdateProfile edits the profile fields and returns the updated account.
func (s *Service) UpdateProfile(ctx context.Context, userID primitive.ObjectID, name, phone, location string) (*models.User, error) {
	return s.users.UpdateProfile(ctx, userID, name, phone, location)
}

// ChangePassword verifies the current password before storing the new one.
func (s *Service) ChangePassword(ctx context.Context, userID primitive.ObjectID, currentPassword, newPassword string) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return s.users.UpdatePassword(ctx, userID, string(hash))
}
