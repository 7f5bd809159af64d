package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"todo-app/db"
	"todo-app/internal/apperror"
	"todo-app/models"
)

// AuthResult is returned by a successful register or login
type AuthResult struct {
	Token string            `json:"token"`
	User  models.PublicUser `json:"user"`
}

type AuthService struct {
	users      db.UserRepository
	tokens     *TokenIssuer
	bcryptCost int
}

func NewAuthService(users db.UserRepository, tokens *TokenIssuer, bcryptCost int) *AuthService {
	return &AuthService{users: users, tokens: tokens, bcryptCost: bcryptCost}
}

// Register creates a user and signs a token for it
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*AuthResult, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || email == "" || password == "" {
		return nil, apperror.Validation("All fields are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, apperror.Validation("Password must be at most 72 bytes")
		}
		return nil, &apperror.Error{Kind: apperror.KindStore, Message: "Server error", Err: err}
	}

	user, err := s.users.Create(ctx, &models.User{
		Username: username,
		Email:    email,
		Password: string(hash),
	})
	if err != nil {
		if errors.Is(err, db.ErrDuplicate) {
			return nil, apperror.Conflict("Username or email already exists")
		}
		return nil, apperror.Store(err)
	}

	return s.issue(user)
}

// Login checks the password against the stored hash. Unknown users and wrong
// passwords produce the same error.
func (s *AuthService) Login(ctx context.Context, username, password string) (*AuthResult, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, apperror.Validation("Username and password are required")
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, invalidCredentials()
		}
		return nil, apperror.Store(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, invalidCredentials()
	}

	return s.issue(user)
}

// Verify validates a bearer token
func (s *AuthService) Verify(token string) (*Claims, error) {
	return s.tokens.Verify(token)
}

func (s *AuthService) issue(user *models.User) (*AuthResult, error) {
	token, err := s.tokens.GenerateJWT(user)
	if err != nil {
		return nil, &apperror.Error{Kind: apperror.KindStore, Message: "Server error", Err: err}
	}
	return &AuthResult{Token: token, User: user.Public()}, nil
}

func invalidCredentials() error {
	return apperror.Auth(http.StatusBadRequest, "Invalid credentials")
}
