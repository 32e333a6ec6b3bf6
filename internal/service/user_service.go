package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"hotel-management/internal/auth"
	"hotel-management/internal/domain"
	"hotel-management/internal/repository"
)

var (
	// ErrAlreadyExists is returned when the username or email is taken.
	ErrAlreadyExists = errors.New("username or email already exists")
	// ErrInvalidCredentials indicates that provided login credentials are incorrect.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUserNotFound indicates the subject of an operation does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidRole is returned for a role outside guest/staff.
	ErrInvalidRole = errors.New("invalid user role")
)

// MissingFieldError names a required profile field absent from the payload.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return "Missing field: " + e.Field
}

// InvalidFieldError names a profile field with an unusable value.
type InvalidFieldError struct {
	Field string
}

func (e *InvalidFieldError) Error() string {
	return "Invalid field: " + e.Field
}

// RegisterInput carries a registration request. Role defaults to guest.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	Role     string
}

// Profile is a user's identity plus the role-matching profile, if stored.
type Profile struct {
	User  *domain.User
	Guest *domain.GuestProfile
	Staff *domain.StaffProfile
}

// UserService describes the user lifecycle operations.
type UserService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, error)
	CompleteProfile(ctx context.Context, userID int64, payload map[string]any) (domain.Role, error)
	GetProfile(ctx context.Context, userID int64) (*Profile, error)
	ListPositions(ctx context.Context, limit, offset int) ([]domain.Position, error)
}

type userService struct {
	users     repository.UserRepository
	profiles  repository.ProfileRepository
	positions repository.PositionRepository
	tokens    *auth.TokenIssuer
}

func NewUserService(
	users repository.UserRepository,
	profiles repository.ProfileRepository,
	positions repository.PositionRepository,
	tokens *auth.TokenIssuer,
) UserService {
	return &userService{
		users:     users,
		profiles:  profiles,
		positions: positions,
		tokens:    tokens,
	}
}

func (s *userService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	username := strings.TrimSpace(input.Username)
	email := strings.TrimSpace(strings.ToLower(input.Email))
	if username == "" || email == "" || input.Password == "" {
		return nil, errors.New("username, email, and password are required")
	}

	role := domain.Role(input.Role)
	if input.Role == "" {
		role = domain.RoleGuest
	}
	if !role.Valid() {
		return nil, ErrInvalidRole
	}

	// Fast-path check; the unique constraints are the source of truth for
	// concurrent registrations.
	if existing, err := s.users.GetByUsername(ctx, username); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, ErrAlreadyExists
	}
	if existing, err := s.users.GetByEmail(ctx, email); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, ErrAlreadyExists
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	created, err := s.users.Create(ctx, &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrAlreadyExists
		}
		return nil, err
	}

	created.PasswordHash = ""
	return created, nil
}

func (s *userService) Login(ctx context.Context, email, password string) (string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return "", ErrInvalidCredentials
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if user == nil || !auth.CheckPassword(user.PasswordHash, password) {
		return "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, string(user.Role))
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return token, nil
}

var guestRequiredFields = []string{"first_name", "last_name", "date_of_birth", "address"}

var staffRequiredFields = []string{
	"first_name", "last_name", "date_of_birth", "address", "position_id", "hire_date",
}

func (s *userService) CompleteProfile(ctx context.Context, userID int64, payload map[string]any) (domain.Role, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", ErrUserNotFound
	}

	switch user.Role {
	case domain.RoleStaff:
		if err := requireFields(payload, staffRequiredFields); err != nil {
			return "", err
		}
		positionID, ok := toInt64(payload["position_id"])
		if !ok {
			return "", &InvalidFieldError{Field: "position_id"}
		}
		err = s.profiles.UpsertStaff(ctx, &domain.StaffProfile{
			UserID:      userID,
			FirstName:   stringField(payload, "first_name"),
			LastName:    stringField(payload, "last_name"),
			DateOfBirth: stringField(payload, "date_of_birth"),
			Address:     stringField(payload, "address"),
			PositionID:  positionID,
			HireDate:    stringField(payload, "hire_date"),
		})
		if err != nil {
			return "", err
		}

	case domain.RoleGuest:
		if err := requireFields(payload, guestRequiredFields); err != nil {
			return "", err
		}
		var preferences map[string]any
		if raw, ok := payload["preferences"]; ok {
			preferences, ok = raw.(map[string]any)
			if !ok {
				return "", &InvalidFieldError{Field: "preferences"}
			}
		}
		err = s.profiles.UpsertGuest(ctx, &domain.GuestProfile{
			UserID:      userID,
			FirstName:   stringField(payload, "first_name"),
			LastName:    stringField(payload, "last_name"),
			DateOfBirth: stringField(payload, "date_of_birth"),
			Address:     stringField(payload, "address"),
			Preferences: preferences,
		})
		if err != nil {
			return "", err
		}

	default:
		return "", ErrInvalidRole
	}

	if err := s.users.SetProfileCompleted(ctx, userID); err != nil {
		return "", err
	}
	return user.Role, nil
}

func (s *userService) GetProfile(ctx context.Context, userID int64) (*Profile, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	user.PasswordHash = ""

	profile := &Profile{User: user}
	switch user.Role {
	case domain.RoleGuest:
		profile.Guest, err = s.profiles.GetGuest(ctx, userID)
	case domain.RoleStaff:
		profile.Staff, err = s.profiles.GetStaff(ctx, userID)
	}
	if err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *userService) ListPositions(ctx context.Context, limit, offset int) ([]domain.Position, error) {
	return s.positions.List(ctx, limit, offset)
}

func requireFields(payload map[string]any, fields []string) error {
	for _, field := range fields {
		if _, ok := payload[field]; !ok {
			return &MissingFieldError{Field: field}
		}
	}
	return nil
}

func stringField(payload map[string]any, field string) string {
	switch v := payload[field].(type) {
	case string:
		return v
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case float64:
		return int64(n), true
	case string:
		parsed, err := strconv.ParseInt(n, 10, 64)
		return parsed, err == nil
	}
	return 0, false
}
