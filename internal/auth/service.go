package auth

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"yieldx/internal/i18n"

	"github.com/rotisserie/eris"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid phone or password")
	ErrPhoneTaken         = errors.New("phone already registered")
	ErrMissingFields      = errors.New("missing required fields")
	ErrInvalidPhone       = errors.New("invalid phone number")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
)

const minPasswordLength = 8

var phonePattern = regexp.MustCompile(`^\+?[0-9]{10,15}$`)

type Service struct {
	repo FarmerRepository
}

func NewService(repo FarmerRepository) *Service {
	return &Service{repo: repo}
}

// NormalizePhone strips spaces, dashes and brackets.
func NormalizePhone(phone string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '(', ')', '.':
			return -1
		}
		return r
	}, strings.TrimSpace(phone))
}

// REGISTER
func (s *Service) Register(ctx context.Context, in RegisterInput) (*Farmer, error) {
	name := strings.TrimSpace(in.Name)
	phone := NormalizePhone(in.Phone)
	if name == "" || phone == "" || in.Password == "" {
		return nil, ErrMissingFields
	}
	if !phonePattern.MatchString(phone) {
		return nil, ErrInvalidPhone
	}
	if len(in.Password) < minPasswordLength {
		return nil, ErrWeakPassword
	}

	lang := i18n.Normalize(in.Language)
	if lang == "" {
		lang = i18n.DefaultLanguage
	}

	exists, err := s.repo.ExistsByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrPhoneTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword(
		[]byte(in.Password),
		bcrypt.DefaultCost,
	)
	if err != nil {
		return nil, eris.Wrap(err, "hash password")
	}

	farmer := &Farmer{
		Name:     name,
		Phone:    phone,
		Password: string(hashedPassword),
		Language: lang,
		State:    strings.TrimSpace(in.State),
		District: strings.TrimSpace(in.District),
	}

	if err := s.repo.Save(ctx, farmer); err != nil {
		return nil, err
	}

	return farmer, nil
}

// LOGIN
func (s *Service) Login(ctx context.Context, phone, password string) (*Farmer, error) {
	farmer, err := s.repo.FindByPhone(ctx, NormalizePhone(phone))
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	err = bcrypt.CompareHashAndPassword(
		[]byte(farmer.Password),
		[]byte(password),
	)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	return farmer, nil
}

func (s *Service) Profile(ctx context.Context, farmerID string) (*Farmer, error) {
	return s.repo.FindByID(ctx, farmerID)
}

// FarmerLocation implements core.FarmerReader.
func (s *Service) FarmerLocation(ctx context.Context, farmerID string) (string, string, error) {
	farmer, err := s.repo.FindByID(ctx, farmerID)
	if err != nil {
		return "", "", err
	}
	return farmer.State, farmer.District, nil
}
