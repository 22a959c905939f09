package onboarding

import (
	"context"
	"errors"
	"math/rand"
	"testing"
)

type fakeAccountPort struct {
	updateErr error
}

func (f fakeAccountPort) UpdateProfile(ctx context.Context, userID, username, displayName string) error {
	return f.updateErr
}

type fakeCareerPort struct {
	ensureErr error
	created   bool
	calls     []string
}

func (f *fakeCareerPort) EnsureCareerRecord(ctx context.Context, userID string) (bool, error) {
	f.calls = append(f.calls, userID)
	if f.ensureErr != nil {
		return false, f.ensureErr
	}
	return f.created, nil
}

func TestOnboardNewUser_CreatesCareerRecord(t *testing.T) {
	careers := &fakeCareerPort{created: true}
	service := NewService(fakeAccountPort{}, careers, rand.New(rand.NewSource(1)))

	result, err := service.OnboardNewUser(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("OnboardNewUser returned error: %v", err)
	}
	if result.ProfileUpdateErr != nil {
		t.Fatalf("Expected no profile update error, got %v", result.ProfileUpdateErr)
	}

	if len(careers.calls) != 1 || careers.calls[0] != "user-1" {
		t.Fatalf("Expected 1 career record call for user-1, got %v", careers.calls)
	}
	if !result.CareerCreated {
		t.Fatal("Expected career record to be marked as created")
	}
}

func TestOnboardNewUser_AccountUpdateFailureStillCreatesCareer(t *testing.T) {
	careers := &fakeCareerPort{created: true}
	service := NewService(fakeAccountPort{updateErr: errors.New("update failed")}, careers, rand.New(rand.NewSource(1)))

	result, err := service.OnboardNewUser(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("OnboardNewUser returned error: %v", err)
	}
	if result.ProfileUpdateErr == nil {
		t.Fatal("Expected profile update error to be captured")
	}

	if len(careers.calls) != 1 {
		t.Fatalf("Expected 1 career record call, got %d", len(careers.calls))
	}
	if !result.CareerCreated {
		t.Fatal("Expected career record to be marked as created")
	}
}

func TestOnboardNewUser_CareerFailureReturnsError(t *testing.T) {
	service := NewService(fakeAccountPort{}, &fakeCareerPort{ensureErr: errors.New("storage failed")}, rand.New(rand.NewSource(1)))

	if _, err := service.OnboardNewUser(context.Background(), "user-1"); err == nil {
		t.Fatal("Expected error when career record creation fails")
	}
}

func TestOnboardNewUser_CareerAlreadyExists(t *testing.T) {
	careers := &fakeCareerPort{created: false}
	service := NewService(fakeAccountPort{}, careers, rand.New(rand.NewSource(1)))

	result, err := service.OnboardNewUser(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("OnboardNewUser returned error: %v", err)
	}
	if result.CareerCreated {
		t.Fatal("Expected existing career record to be reported as not created")
	}
}
