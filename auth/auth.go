package auth

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mbolis/formpilot/fault"
	"github.com/mbolis/formpilot/model"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

const maxBcryptInput = 72

var errInvalidCredentials = fault.New(fault.Credentials, "Invalid Credentials")

// Credentials is the body of both register and login requests.
type Credentials struct {
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required,min=6"`
}

type UserStore interface {
	Insert(ctx context.Context, email, passwordHash string) (model.User, error)
	FindByEmail(ctx context.Context, email string) (model.User, error)
}

type Service struct {
	users     UserStore
	tokens    *Tokens
	cost      int
	validate  *validator.Validate
	dummyHash []byte
}

func NewService(users UserStore, tokens *Tokens, cost int) (*Service, error) {
	// compared against when the email is unknown, so both login failures cost one bcrypt check
	dummyHash, err := bcrypt.GenerateFromPassword([]byte("formpilot:no-such-user"), cost)
	if err != nil {
		return nil, errors.Wrap(err, "prepare dummy hash")
	}

	validate := validator.New()
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		return strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	})

	return &Service{
		users:     users,
		tokens:    tokens,
		cost:      cost,
		validate:  validate,
		dummyHash: dummyHash,
	}, nil
}

func (s *Service) Register(ctx context.Context, email, password string) (model.User, error) {
	creds := Credentials{Email: strings.TrimSpace(email), Password: password}
	if err := s.validate.Struct(creds); err != nil {
		return model.User{}, validationFault(err)
	}

	hash, err := bcrypt.GenerateFromPassword(bcryptInput(creds.Password), s.cost)
	if err != nil {
		return model.User{}, errors.Wrap(err, "hash password")
	}

	user, err := s.users.Insert(ctx, strings.ToLower(creds.Email), string(hash))
	if errors.Is(err, fault.ErrUniqueViolation) {
		return model.User{}, fault.Wrap(fault.Conflict, "Email Already In Use", err)
	}
	if err != nil {
		return model.User{}, err
	}
	return user, nil
}

// Login returns a signed access token for the user.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if errors.Is(err, fault.ErrNotFound) {
		bcrypt.CompareHashAndPassword(s.dummyHash, bcryptInput(password))
		return "", errInvalidCredentials
	}
	if err != nil {
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), bcryptInput(password)); err != nil {
		return "", errInvalidCredentials
	}
	return s.tokens.Issue(user.ID)
}

// bcryptInput cuts a password to the 72 bytes bcrypt reads; longer
// passwords are accepted and compared on their prefix.
func bcryptInput(password string) []byte {
	b := []byte(password)
	if len(b) > maxBcryptInput {
		b = b[:maxBcryptInput]
	}
	return b
}

func validationFault(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fault.Wrap(fault.Validation, "Invalid Request.", err)
	}

	details := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			details = append(details, fmt.Sprintf("%s is required", fe.Field()))
		case "email":
			details = append(details, fmt.Sprintf("%s must be a valid email address", fe.Field()))
		case "min":
			details = append(details, fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param()))
		case "max":
			details = append(details, fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param()))
		default:
			details = append(details, fmt.Sprintf("%s is invalid", fe.Field()))
		}
	}
	return fault.NewValidation(details[0], details...)
}
