package auth

import (
	"errors"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/hkhalifa/deen-companion/internal/config"
	"github.com/hkhalifa/deen-companion/internal/database/users"
	"github.com/hkhalifa/deen-companion/internal/entities"
)

func setupTestService(t *testing.T) *Service {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	if err := db.AutoMigrate(&entities.User{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return NewService(users.NewRepository(db), config.Auth{BcryptCost: 10, MaxLoginAttempts: 5})
}

func TestService_Register(t *testing.T) {
	svc := setupTestService(t)

	tests := []struct {
		name    string
		input   RegisterInput
		wantErr error
	}{
		{
			name:    "valid user",
			input:   RegisterInput{Username: "amina", Email: "amina@example.com", Password: "password12345", Name: "Amina"},
			wantErr: nil,
		},
		{
			name:    "missing username",
			input:   RegisterInput{Email: "test@example.com", Password: "password12345"},
			wantErr: ErrUsernameRequired,
		},
		{
			name:    "missing email",
			input:   RegisterInput{Username: "testuser", Password: "password12345"},
			wantErr: ErrEmailRequired,
		},
		{
			name:    "missing password",
			input:   RegisterInput{Username: "testuser", Email: "test@example.com"},
			wantErr: ErrPasswordRequired,
		},
		{
			name:    "password too short",
			input:   RegisterInput{Username: "testuser", Email: "test@example.com", Password: "short"},
			wantErr: ErrPasswordTooShort,
		},
		{
			name:    "username with spaces",
			input:   RegisterInput{Username: "bad user", Email: "test@example.com", Password: "password12345"},
			wantErr: ErrUsernameInvalid,
		},
		{
			name:    "malformed email",
			input:   RegisterInput{Username: "testuser", Email: "not-an-email", Password: "password12345"},
			wantErr: ErrEmailInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := svc.Register(tt.input)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Register() error = %v, wantErr %v", err, tt.wantErr)
				}
				return
			}

			if err != nil {
				t.Errorf("Register() unexpected error = %v", err)
				return
			}
			if user == nil {
				t.Fatal("Register() returned nil user")
			}
			if user.Username != tt.input.Username {
				t.Errorf("user.Username = %v, want %v", user.Username, tt.input.Username)
			}
			if user.PasswordHash == "" {
				t.Error("user.PasswordHash is empty")
			}
			if user.Language != "en" {
				t.Errorf("user.Language = %v, want en", user.Language)
			}
		})
	}
}

func TestService_Register_Duplicate(t *testing.T) {
	svc := setupTestService(t)

	_, err := svc.Register(RegisterInput{Username: "amina", Email: "amina@example.com", Password: "password12345"})
	if err != nil {
		t.Fatalf("Failed to create first user: %v", err)
	}

	_, err = svc.Register(RegisterInput{Username: "amina", Email: "other@example.com", Password: "password12345"})
	if !errors.Is(err, ErrUserExists) {
		t.Errorf("Expected ErrUserExists for duplicate username, got %v", err)
	}

	_, err = svc.Register(RegisterInput{Username: "other", Email: "amina@example.com", Password: "password12345"})
	if !errors.Is(err, ErrUserExists) {
		t.Errorf("Expected ErrUserExists for duplicate email, got %v", err)
	}
}

func TestService_Authenticate(t *testing.T) {
	svc := setupTestService(t)

	_, err := svc.Register(RegisterInput{Username: "amina", Email: "amina@example.com", Password: "password12345"})
	if err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}

	tests := []struct {
		name     string
		username string
		password string
		wantErr  error
	}{
		{
			name:     "valid credentials with username",
			username: "amina",
			password: "password12345",
			wantErr:  nil,
		},
		{
			name:     "valid credentials with email",
			username: "amina@example.com",
			password: "password12345",
			wantErr:  nil,
		},
		{
			name:     "wrong password",
			username: "amina",
			password: "wrongpassword",
			wantErr:  ErrInvalidPassword,
		},
		{
			name:     "non-existent user",
			username: "nobody",
			password: "password12345",
			wantErr:  ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := svc.Authenticate(tt.username, tt.password)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Authenticate() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr == nil && user == nil {
				t.Error("Authenticate() returned nil user for valid credentials")
			}
		})
	}
}

func TestService_Authenticate_Lockout(t *testing.T) {
	svc := setupTestService(t)

	created, err := svc.Register(RegisterInput{Username: "amina", Email: "amina@example.com", Password: "password12345"})
	if err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}

	for i := 0; i < 5; i++ {
		if _, err := svc.Authenticate("amina", "wrongpassword"); !errors.Is(err, ErrInvalidPassword) {
			t.Fatalf("attempt %d: expected ErrInvalidPassword, got %v", i+1, err)
		}
	}

	// Account should now be locked even with the correct password
	if _, err := svc.Authenticate("amina", "password12345"); !errors.Is(err, ErrAccountLocked) {
		t.Errorf("expected ErrAccountLocked after repeated failures, got %v", err)
	}

	locked, err := svc.GetUserByID(created.ID)
	if err != nil {
		t.Fatalf("GetUserByID() error = %v", err)
	}
	if locked.LockedUntil == nil {
		t.Error("expected LockedUntil to be set")
	}
}
