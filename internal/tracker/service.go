package tracker

import (
	"context"
	"time"

	"github.com/jimezsa/opptrack/internal/models"
	"github.com/rs/zerolog"
)

// Service loads and commits State through a Repository.
type Service struct {
	repo   *Repository
	logger zerolog.Logger
	now    func() time.Time
}

func NewService(repo *Repository, logger zerolog.Logger) *Service {
	return &Service{repo: repo, logger: logger, now: time.Now}
}

func (s *Service) Repository() *Repository {
	return s.repo
}

// Now returns the service clock.
func (s *Service) Now() time.Time {
	return s.now()
}

// Load reads the signed-in user's state with assessments computed.
func (s *Service) Load(ctx context.Context) (State, error) {
	user, ok, err := s.repo.CurrentUser(ctx)
	if err != nil {
		return State{}, err
	}
	if !ok {
		return State{}, ErrNotSignedIn
	}

	records, err := s.repo.LoadRecords(ctx, user.ID)
	if err != nil {
		return State{}, err
	}
	profile, err := s.repo.LoadProfile(ctx, user.ID)
	if err != nil {
		return State{}, err
	}
	s.logger.Debug().Str("user", user.ID).Int("records", len(records)).Msg("state loaded")

	return State{User: user, Records: records, Profile: profile}.Assess(), nil
}

// Commit persists the whole record list and, once it has been edited, the
// profile. The returned state is reassessed.
func (s *Service) Commit(ctx context.Context, state State) (State, error) {
	if !state.User.Valid() {
		return state, ErrNotSignedIn
	}
	if err := s.repo.SaveRecords(ctx, state.User.ID, state.Records); err != nil {
		return state, err
	}
	if !state.Profile.IsEmpty() || !state.Profile.LastUpdated.IsZero() {
		if err := s.repo.SaveProfile(ctx, state.User.ID, state.Profile); err != nil {
			return state, err
		}
	}
	s.logger.Debug().Str("user", state.User.ID).Int("records", len(state.Records)).Msg("state committed")
	return state.Assess(), nil
}

// SignIn records user as the current identity.
func (s *Service) SignIn(ctx context.Context, user models.User) error {
	return s.repo.SignIn(ctx, user)
}

func (s *Service) SignOut(ctx context.Context) error {
	return s.repo.SignOut(ctx)
}
