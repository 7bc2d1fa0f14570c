package services

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/dkotenko/timekit-be/internal/models"
)

// UserServiceProvider defines the interface for user services.
type UserServiceProvider interface {
	CreateUser(username, password string) (models.User, error)
	AuthenticateUser(username, password string) (models.User, error)
	GetUserByID(id string) (models.User, error)
}

// UserService provides account creation and credential verification.
type UserService struct {
	db *sql.DB
}

// NewUserService creates a new UserService.
func NewUserService(db *sql.DB) *UserService {
	return &UserService{db: db}
}

// GetUserByID retrieves a single user by their ID.
func (s *UserService) GetUserByID(id string) (models.User, error) {
	var user models.User
	row := s.db.QueryRow("SELECT id, username, created_at FROM users WHERE id = ?", id)
	err := row.Scan(&user.ID, &user.Username, &user.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.User{}, fmt.Errorf("user with ID %s not found", id)
		}
		return models.User{}, err
	}
	return user, nil
}

// getUserByUsername retrieves a single user by username, including the
// password hash. Internal only; the hash never leaves this package.
func (s *UserService) getUserByUsername(username string) (models.User, error) {
	var user models.User
	row := s.db.QueryRow("SELECT id, username, password_hash, created_at FROM users WHERE username = ?", username)
	err := row.Scan(&user.ID, &user.Username, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

// CreateUser creates a new user, hashing their password.
func (s *UserService) CreateUser(username, password string) (models.User, error) {
	if password == "" {
		return models.User{}, ErrInvalidPassword
	}

	if _, err := s.getUserByUsername(username); err == nil {
		return models.User{}, ErrDuplicateUser
	} else if err != sql.ErrNoRows {
		return models.User{}, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		ID:       uuid.New().String(),
		Username: username,
	}

	_, err = s.db.Exec("INSERT INTO users(id, username, password_hash) VALUES(?, ?, ?)", user.ID, user.Username, string(hashedPassword))
	if err != nil {
		// The UNIQUE constraint closes the race between the existence check
		// above and this insert.
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return models.User{}, ErrDuplicateUser
		}
		return models.User{}, err
	}

	return user, nil
}

// AuthenticateUser verifies a user's credentials. Unknown usernames and wrong
// passwords produce the same error to prevent username enumeration.
func (s *UserService) AuthenticateUser(username, password string) (models.User, error) {
	user, err := s.getUserByUsername(username)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.User{}, ErrInvalidCredentials
		}
		return models.User{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return models.User{}, ErrInvalidCredentials
	}

	// Don't hand the hash to callers
	user.PasswordHash = ""
	return user, nil
}
