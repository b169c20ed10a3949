package app

import (
	"errors"
	"testing"
	"time"
)

func newTestAuthService() (*AuthService, *fakeCompanyStore) {
	companies := newFakeCompanyStore()
	svc := NewAuthService(newFakeUserStore(), companies, "test-secret", time.Hour)
	return svc, companies
}

func registerInput() RegisterInput {
	return RegisterInput{
		Username:    "adjuster",
		Email:       "adjuster@example.com",
		Password:    "correct horse",
		CompanyName: "Acme Mutual",
	}
}

func TestRegisterCreatesCompany(t *testing.T) {
	svc, companies := newTestAuthService()

	result, err := svc.Register(registerInput())
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if result.Token == "" {
		t.Error("expected a session token")
	}
	if result.User.CompanyID == 0 {
		t.Error("user should belong to the new company")
	}
	company, _ := companies.GetByID(result.User.CompanyID)
	if company == nil || company.Name != "Acme Mutual" {
		t.Errorf("company not created: %+v", company)
	}
}

func TestRegisterJoinsExistingCompany(t *testing.T) {
	svc, _ := newTestAuthService()

	first, err := svc.Register(registerInput())
	if err != nil {
		t.Fatalf("first Register failed: %v", err)
	}

	in := registerInput()
	in.Username = "examiner"
	in.Email = "examiner@example.com"
	second, err := svc.Register(in)
	if err != nil {
		t.Fatalf("second Register failed: %v", err)
	}
	if second.User.CompanyID != first.User.CompanyID {
		t.Errorf("same company name should share one company: %d vs %d",
			second.User.CompanyID, first.User.CompanyID)
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc, _ := newTestAuthService()

	if _, err := svc.Register(registerInput()); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	in := registerInput()
	in.Email = "other@example.com"
	if _, err := svc.Register(in); !errors.Is(err, ErrUsernameExists) {
		t.Fatalf("expected ErrUsernameExists, got %v", err)
	}
}

func TestRegisterShortPassword(t *testing.T) {
	svc, _ := newTestAuthService()

	in := registerInput()
	in.Password = "short"
	if _, err := svc.Register(in); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestLoginRoundTrip(t *testing.T) {
	svc, _ := newTestAuthService()

	if _, err := svc.Register(registerInput()); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	result, err := svc.Login(LoginInput{Username: "adjuster", Password: "correct horse"})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if result.Token == "" || result.User.Username != "adjuster" {
		t.Errorf("unexpected login result: %+v", result)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newTestAuthService()

	if _, err := svc.Register(registerInput()); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if _, err := svc.Login(LoginInput{Username: "adjuster", Password: "wrong"}); !errors.Is(err, ErrInvalidCredential) {
		t.Fatalf("expected ErrInvalidCredential, got %v", err)
	}
	if _, err := svc.Login(LoginInput{Username: "nobody", Password: "wrong"}); !errors.Is(err, ErrInvalidCredential) {
		t.Fatalf("unknown user should look like a bad credential, got %v", err)
	}
}
