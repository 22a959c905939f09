package onboarding

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"hockeyzone/internal/ports"
)

// Result captures non-fatal onboarding outcomes.
type Result struct {
	// ProfileUpdateErr is set when the profile update failed but onboarding continued.
	ProfileUpdateErr error
	// CareerCreated is false when the career record already existed.
	CareerCreated bool
}

// Service handles post-auth onboarding for new users.
type Service struct {
	accounts ports.AccountPort
	careers  ports.CareerPort
	rng      *rand.Rand
}

// NewService constructs an onboarding service with required ports.
// accounts/careers must be non-nil; rng may be nil to use a time-seeded default.
func NewService(accounts ports.AccountPort, careers ports.CareerPort, rng *rand.Rand) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Service{
		accounts: accounts,
		careers:  careers,
		rng:      rng,
	}
}

// OnboardNewUser initializes the profile and career record for a newly
// created account. Profile updates are best-effort; the career record is the
// part that must exist before the player's first game.
func (s *Service) OnboardNewUser(ctx context.Context, userID string) (Result, error) {
	if s.accounts == nil || s.careers == nil {
		return Result{}, fmt.Errorf("onboarding service not configured")
	}

	result := Result{}
	displayName := s.generateFriendlyName()
	if err := s.accounts.UpdateProfile(ctx, userID, displayName, displayName); err != nil {
		result.ProfileUpdateErr = err
	}

	created, err := s.careers.EnsureCareerRecord(ctx, userID)
	if err != nil {
		return result, fmt.Errorf("failed to create career record: %w", err)
	}
	result.CareerCreated = created

	return result, nil
}

func (s *Service) generateFriendlyName() string {
	adjectives := []string{"Happy", "Shiny", "Brave", "Clever", "Swift", "Calm", "Mighty", "Witty", "Sly", "Wild"}
	nouns := []string{"Sniper", "Grinder", "Dangler", "Tendy", "Enforcer", "Playmaker", "Skater", "Captain", "Rookie", "Bruiser"}

	adj := adjectives[s.rng.Intn(len(adjectives))]
	noun := nouns[s.rng.Intn(len(nouns))]
	num := s.rng.Intn(9000) + 1000

	return fmt.Sprintf("%s%s%d", adj, noun, num)
}
