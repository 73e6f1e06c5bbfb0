package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"oncodx/internal/domain"
	"oncodx/internal/repository"
)

var (
	ErrInvalidEmail       = errors.New("invalid email")
	ErrPasswordRequired   = errors.New("password required")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrRateLimited        = errors.New("rate limited")
)

// DoctorService coordina registro y autenticación de doctores.
type DoctorService struct {
	logger       *zap.Logger
	doctors      repository.DoctorRepository
	loginLimiter LoginRateLimiter
}

func NewDoctorService(logger *zap.Logger, doctors repository.DoctorRepository, loginLimiter LoginRateLimiter) *DoctorService {
	if loginLimiter == nil {
		loginLimiter = NewLoginRateLimiter(time.Minute, 10)
	}
	return &DoctorService{
		logger:       logger,
		doctors:      doctors,
		loginLimiter: loginLimiter,
	}
}

type RegisterInput struct {
	FullName      string
	Email         string
	LicenseNumber string
	Password      string
}

func (s *DoctorService) Register(ctx context.Context, input RegisterInput) (domain.Doctor, error) {
	if s.doctors == nil {
		return domain.Doctor{}, errors.New("doctor service not configured")
	}

	emailAddr := normalizeEmail(input.Email)
	if emailAddr == "" || !strings.Contains(emailAddr, "@") {
		return domain.Doctor{}, ErrInvalidEmail
	}
	password := strings.TrimSpace(input.Password)
	if password == "" {
		return domain.Doctor{}, ErrPasswordRequired
	}

	_, err := s.doctors.GetByEmail(ctx, emailAddr)
	if err == nil {
		return domain.Doctor{}, ErrEmailTaken
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return domain.Doctor{}, err
	}

	hashBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return domain.Doctor{}, err
	}

	doctor := domain.Doctor{
		ID:            uuid.NewString(),
		FullName:      strings.TrimSpace(input.FullName),
		Email:         emailAddr,
		LicenseNumber: strings.TrimSpace(input.LicenseNumber),
		PasswordHash:  string(hashBytes),
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.doctors.Create(ctx, doctor); err != nil {
		return domain.Doctor{}, err
	}
	return doctor, nil
}

// Authenticate responde ErrInvalidCredentials de forma uniforme para
// email desconocido y password incorrecto.
func (s *DoctorService) Authenticate(ctx context.Context, emailAddr, password string) (domain.Doctor, error) {
	if s.doctors == nil {
		return domain.Doctor{}, errors.New("doctor service not configured")
	}

	emailAddr = normalizeEmail(emailAddr)
	password = strings.TrimSpace(password)
	if emailAddr == "" || password == "" {
		return domain.Doctor{}, ErrInvalidCredentials
	}
	if s.loginLimiter != nil && !s.loginLimiter.Allow(emailAddr) {
		return domain.Doctor{}, ErrRateLimited
	}

	doctor, err := s.doctors.GetByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Doctor{}, ErrInvalidCredentials
		}
		return domain.Doctor{}, err
	}
	if doctor.PasswordHash == "" {
		return domain.Doctor{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(doctor.PasswordHash), []byte(password)); err != nil {
		return domain.Doctor{}, ErrInvalidCredentials
	}
	return doctor, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
