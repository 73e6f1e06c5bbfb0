package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"oncodx/internal/domain"
)

type mockDoctorRepo struct {
	doctors map[string]domain.Doctor
	err     error
}

func newMockDoctorRepo() *mockDoctorRepo {
	return &mockDoctorRepo{doctors: make(map[string]domain.Doctor)}
}

func (m *mockDoctorRepo) Create(ctx context.Context, doctor domain.Doctor) error {
	if m.err != nil {
		return m.err
	}
	m.doctors[doctor.Email] = doctor
	return nil
}

func (m *mockDoctorRepo) GetByEmail(ctx context.Context, email string) (domain.Doctor, error) {
	if m.err != nil {
		return domain.Doctor{}, m.err
	}
	doctor, ok := m.doctors[email]
	if !ok {
		return domain.Doctor{}, pgx.ErrNoRows
	}
	return doctor, nil
}

func TestDoctorService_RegisterAndAuthenticate(t *testing.T) {
	repo := newMockDoctorRepo()
	svc := NewDoctorService(zap.NewNop(), repo, NewLoginRateLimiter(time.Minute, 100))

	doctor, err := svc.Register(context.Background(), RegisterInput{
		FullName:      "Dr. House",
		Email:         "House@Example.com",
		LicenseNumber: "MD-123",
		Password:      "vicodin",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if doctor.Email != "house@example.com" {
		t.Fatalf("expected normalized email, got %q", doctor.Email)
	}
	if doctor.PasswordHash == "" || doctor.PasswordHash == "vicodin" {
		t.Fatalf("expected hashed password")
	}

	authed, err := svc.Authenticate(context.Background(), "house@example.com", "vicodin")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if authed.ID != doctor.ID {
		t.Fatalf("expected same doctor, got %q vs %q", authed.ID, doctor.ID)
	}
}

func TestDoctorService_RegisterDuplicateEmail(t *testing.T) {
	repo := newMockDoctorRepo()
	svc := NewDoctorService(zap.NewNop(), repo, nil)

	input := RegisterInput{Email: "doc@example.com", Password: "pw"}
	if _, err := svc.Register(context.Background(), input); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, err := svc.Register(context.Background(), input); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestDoctorService_RegisterValidation(t *testing.T) {
	svc := NewDoctorService(zap.NewNop(), newMockDoctorRepo(), nil)

	if _, err := svc.Register(context.Background(), RegisterInput{Email: "no-at-sign", Password: "pw"}); !errors.Is(err, ErrInvalidEmail) {
		t.Fatalf("expected ErrInvalidEmail, got %v", err)
	}
	if _, err := svc.Register(context.Background(), RegisterInput{Email: "doc@example.com"}); !errors.Is(err, ErrPasswordRequired) {
		t.Fatalf("expected ErrPasswordRequired, got %v", err)
	}
}

func TestDoctorService_AuthenticateUniformFailure(t *testing.T) {
	repo := newMockDoctorRepo()
	svc := NewDoctorService(zap.NewNop(), repo, NewLoginRateLimiter(time.Minute, 100))

	if _, err := svc.Register(context.Background(), RegisterInput{Email: "doc@example.com", Password: "right"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	// Email desconocido y password incorrecto responden lo mismo.
	_, unknownErr := svc.Authenticate(context.Background(), "ghost@example.com", "whatever")
	_, wrongPassErr := svc.Authenticate(context.Background(), "doc@example.com", "wrong")
	if !errors.Is(unknownErr, ErrInvalidCredentials) || !errors.Is(wrongPassErr, ErrInvalidCredentials) {
		t.Fatalf("expected uniform ErrInvalidCredentials, got %v and %v", unknownErr, wrongPassErr)
	}
}

func TestDoctorService_LoginRateLimited(t *testing.T) {
	repo := newMockDoctorRepo()
	svc := NewDoctorService(zap.NewNop(), repo, NewLoginRateLimiter(time.Minute, 1))

	if _, err := svc.Register(context.Background(), RegisterInput{Email: "doc@example.com", Password: "pw"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := svc.Authenticate(context.Background(), "doc@example.com", "pw"); err != nil {
		t.Fatalf("first login: %v", err)
	}
	if _, err := svc.Authenticate(context.Background(), "doc@example.com", "pw"); !errors.Is(err, ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited, got %v", err)
	}
}
