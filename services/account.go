package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"
	"unicode"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	"infostore/models"
	"infostore/repository"
)

var (
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
	emailPattern    = regexp.MustCompile(`^[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9-.]+$`)
)

// TokenIssuer mints signed access tokens. Implemented by jwt.Manager.
type TokenIssuer interface {
	Generate(userID uint, role string) (token string, tokenID string, expiresAt time.Time, err error)
}

// AccountService handles registration, login/logout and profile management.
type AccountService struct {
	store  *repository.Store
	tokens TokenIssuer
}

func NewAccountService(store *repository.Store, tokens TokenIssuer) *AccountService {
	return &AccountService{store: store, tokens: tokens}
}

type RegisterInput struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
	Phone     string
	Address   string
	City      string
	Country   string
}

func (s *AccountService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if !ValidUsername(in.Username) {
		return nil, invalidArgument("username must be 3-150 characters of letters, digits, '-' or '_'")
	}
	if !ValidEmail(in.Email) {
		return nil, invalidArgument("invalid email address")
	}
	if !ValidPassword(in.Password) {
		return nil, invalidArgument("password must be 8-50 characters with upper, lower, digit and symbol")
	}

	if taken, err := s.store.Users.UsernameExists(ctx, in.Username); err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	} else if taken {
		return nil, alreadyExists("username is already taken")
	}
	if taken, err := s.store.Users.EmailExists(ctx, in.Email, 0); err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	} else if taken {
		return nil, alreadyExists("email is already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Username:  in.Username,
		Email:     in.Email,
		Password:  string(hash),
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Phone:     in.Phone,
		Address:   in.Address,
		City:      in.City,
		Country:   in.Country,
		Role:      models.RoleCustomer,
	}
	if err := s.store.Users.Create(ctx, user); err != nil {
		// Racing registration with the same username/email.
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, alreadyExists("username or email is already registered")
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Login verifies credentials and issues a signed token backed by a
// LoginToken allowlist row.
func (s *AccountService) Login(ctx context.Context, username, password string) (string, *models.User, error) {
	user, err := s.store.Users.GetByUsername(ctx, username)
	if errors.Is(err, repository.ErrNotFound) {
		return "", nil, invalidArgument("invalid username or password")
	}
	if err != nil {
		return "", nil, fmt.Errorf("get user: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return "", nil, invalidArgument("invalid username or password")
	}

	token, tokenID, expiresAt, err := s.tokens.Generate(user.ID, user.Role)
	if err != nil {
		return "", nil, fmt.Errorf("generate token: %w", err)
	}
	err = s.store.Users.CreateLoginToken(ctx, &models.LoginToken{
		TokenID:        tokenID,
		ExpirationTime: expiresAt,
		UserID:         user.ID,
	})
	if err != nil {
		return "", nil, fmt.Errorf("store login token: %w", err)
	}
	return token, user, nil
}

// Logout revokes the token by deleting its allowlist row.
func (s *AccountService) Logout(ctx context.Context, tokenID string) error {
	if err := s.store.Users.DeleteLoginToken(ctx, tokenID); err != nil {
		return fmt.Errorf("delete login token: %w", err)
	}
	return nil
}

func (s *AccountService) GetProfile(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.store.Users.GetByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, notFound("user not found")
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

type UpdateProfileInput struct {
	FirstName *string
	LastName  *string
	Email     *string
	Phone     *string
	Address   *string
	City      *string
	Country   *string
}

func (s *AccountService) UpdateProfile(ctx context.Context, userID uint, in UpdateProfileInput) (*models.User, error) {
	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if in.Email != nil && *in.Email != user.Email {
		if !ValidEmail(*in.Email) {
			return nil, invalidArgument("invalid email address")
		}
		taken, err := s.store.Users.EmailExists(ctx, *in.Email, user.ID)
		if err != nil {
			return nil, fmt.Errorf("check email: %w", err)
		}
		if taken {
			return nil, alreadyExists("email is already in use by another user")
		}
		user.Email = *in.Email
	}
	if in.FirstName != nil {
		user.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		user.LastName = *in.LastName
	}
	if in.Phone != nil {
		user.Phone = *in.Phone
	}
	if in.Address != nil {
		user.Address = *in.Address
	}
	if in.City != nil {
		user.City = *in.City
	}
	if in.Country != nil {
		user.Country = *in.Country
	}

	if err := s.store.Users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}

func ValidUsername(username string) bool {
	if n := utf8.RuneCountInString(username); n < 3 || n > 150 {
		return false
	}
	return usernamePattern.MatchString(username)
}

func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// ValidPassword requires 8-50 characters with at least one upper, one lower,
// one digit and one symbol, and no whitespace.
func ValidPassword(password string) bool {
	// Length limits count characters, not bytes.
	if n := utf8.RuneCountInString(password); n < 8 || n > 50 {
		return false
	}
	var upper, lower, digit, special bool
	for _, r := range password {
		switch {
		case unicode.IsSpace(r):
			return false
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			special = true
		}
	}
	return upper && lower && digit && special
}
