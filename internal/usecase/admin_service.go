package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/morbidleague/deadpool/internal/domain/person"
	"github.com/morbidleague/deadpool/internal/domain/player"
	"github.com/morbidleague/deadpool/internal/platform/cache"
	idgen "github.com/morbidleague/deadpool/internal/platform/id"
	"github.com/morbidleague/deadpool/internal/platform/logging"
)

// AdminService owns the mutations: pick approval, penalties, and death
// confirmations. Every mutation invalidates the cached season views so the
// next read recomputes from the updated roster.
type AdminService struct {
	playerRepo player.Repository
	personRepo person.Repository
	store      *cache.Store
	ids        idgen.Generator
	logger     *logging.Logger
	now        func() time.Time
}

func NewAdminService(
	playerRepo player.Repository,
	personRepo person.Repository,
	store *cache.Store,
	ids idgen.Generator,
	logger *logging.Logger,
) *AdminService {
	if ids == nil {
		ids = idgen.NewRandomGenerator()
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &AdminService{
		playerRepo: playerRepo,
		personRepo: personRepo,
		store:      store,
		ids:        ids,
		logger:     logger,
		now:        time.Now,
	}
}

// RegisterPerson creates a canonical person record for admins to link picks
// against. The public ID is minted here so callers never supply their own.
func (s *AdminService) RegisterPerson(ctx context.Context, name string, birthDate *time.Time) (person.Person, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AdminService.RegisterPerson")
	defer span.End()

	name = strings.Join(strings.Fields(name), " ")
	if name == "" {
		return person.Person{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	rawID, err := s.ids.NewID()
	if err != nil {
		return person.Person{}, fmt.Errorf("mint person id: %w", err)
	}

	subject := person.Person{
		ID:        "per-" + rawID,
		Name:      name,
		BirthDate: copyDate(birthDate),
	}
	if err := subject.Validate(); err != nil {
		return person.Person{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.personRepo.Upsert(ctx, subject); err != nil {
		return person.Person{}, fmt.Errorf("upsert person %s: %w", subject.ID, err)
	}

	s.logger.InfoContext(ctx, "person registered",
		"person_id", subject.ID,
		"name", name,
	)
	return subject, nil
}

// ApprovePick links a raw pick to a verified person record and marks it
// approved, copying the person's canonical dates onto the pick. Approving an
// already-approved pick is a no-op.
func (s *AdminService) ApprovePick(ctx context.Context, season, pickID, personID string) (player.Pick, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AdminService.ApprovePick")
	defer span.End()

	season = strings.TrimSpace(season)
	pickID = strings.TrimSpace(pickID)
	personID = strings.TrimSpace(personID)
	if season == "" || pickID == "" {
		return player.Pick{}, fmt.Errorf("%w: season and pick id are required", ErrInvalidInput)
	}
	if personID == "" {
		return player.Pick{}, fmt.Errorf("%w: person id is required", ErrInvalidInput)
	}

	ownerID, pick, err := s.findPick(ctx, season, pickID)
	if err != nil {
		return player.Pick{}, err
	}
	if pick.IsApproved() {
		return pick, nil
	}

	subject, exists, err := s.personRepo.GetByID(ctx, personID)
	if err != nil {
		return player.Pick{}, fmt.Errorf("get person %s: %w", personID, err)
	}
	if !exists {
		return player.Pick{}, fmt.Errorf("%w: person %s", ErrNotFound, personID)
	}

	pick.PersonID = subject.ID
	pick.NormalizedName = normalizeName(subject.Name)
	pick.BirthDate = copyDate(subject.BirthDate)
	pick.DeathDate = copyDate(subject.DeathDate)
	pick.Status = player.PickStatusApproved

	if err := pick.Validate(); err != nil {
		return player.Pick{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.playerRepo.UpdatePick(ctx, ownerID, season, pick); err != nil {
		return player.Pick{}, fmt.Errorf("update pick %s: %w", pickID, err)
	}

	s.invalidateSeasonViews(ctx)
	s.logger.InfoContext(ctx, "pick approved",
		"player_id", ownerID,
		"season", season,
		"pick_id", pickID,
		"person_id", personID,
	)
	return pick, nil
}

// ApplyPenalty records a score adjustment against a player. Deltas are signed;
// sanctions are negative and there is no floor on the resulting total.
func (s *AdminService) ApplyPenalty(ctx context.Context, playerID string, delta int, reason string) (player.ScoreHistoryEntry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AdminService.ApplyPenalty")
	defer span.End()

	playerID = strings.TrimSpace(playerID)
	reason = strings.TrimSpace(reason)
	if playerID == "" {
		return player.ScoreHistoryEntry{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}
	if delta == 0 {
		return player.ScoreHistoryEntry{}, fmt.Errorf("%w: delta must be non-zero", ErrInvalidInput)
	}
	if reason == "" {
		return player.ScoreHistoryEntry{}, fmt.Errorf("%w: reason is required", ErrInvalidInput)
	}

	if _, exists, err := s.playerRepo.GetByID(ctx, playerID); err != nil {
		return player.ScoreHistoryEntry{}, fmt.Errorf("get player %s: %w", playerID, err)
	} else if !exists {
		return player.ScoreHistoryEntry{}, fmt.Errorf("%w: player %s", ErrNotFound, playerID)
	}

	entry := player.ScoreHistoryEntry{
		Delta:  delta,
		At:     s.now().UTC(),
		Reason: reason,
	}
	if err := s.playerRepo.AppendScoreHistory(ctx, playerID, entry); err != nil {
		return player.ScoreHistoryEntry{}, fmt.Errorf("append score history for %s: %w", playerID, err)
	}

	s.invalidateSeasonViews(ctx)
	s.logger.InfoContext(ctx, "penalty applied",
		"player_id", playerID,
		"delta", delta,
		"reason", reason,
	)
	return entry, nil
}

// ConfirmDeath records a person's death and propagates the date onto every
// linked pick across the pool. Confirming the same date twice is a no-op;
// a different date for an already-dead person is a conflict.
func (s *AdminService) ConfirmDeath(ctx context.Context, personID string, deathDate time.Time) (person.Person, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AdminService.ConfirmDeath")
	defer span.End()

	personID = strings.TrimSpace(personID)
	if personID == "" {
		return person.Person{}, fmt.Errorf("%w: person id is required", ErrInvalidInput)
	}
	if deathDate.IsZero() {
		return person.Person{}, fmt.Errorf("%w: death date is required", ErrInvalidInput)
	}
	deathDate = deathDate.UTC()

	subject, exists, err := s.personRepo.GetByID(ctx, personID)
	if err != nil {
		return person.Person{}, fmt.Errorf("get person %s: %w", personID, err)
	}
	if !exists {
		return person.Person{}, fmt.Errorf("%w: person %s", ErrNotFound, personID)
	}
	if subject.DeathDate != nil {
		if subject.DeathDate.Equal(deathDate) {
			return subject, nil
		}
		return person.Person{}, fmt.Errorf("%w: person %s already has a death date", ErrConflict, personID)
	}

	subject.DeathDate = &deathDate
	if err := subject.Validate(); err != nil {
		return person.Person{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.personRepo.SetDeathDate(ctx, personID, deathDate); err != nil {
		return person.Person{}, fmt.Errorf("set death date for %s: %w", personID, err)
	}
	if err := s.playerRepo.SetPickDeathDates(ctx, personID, deathDate); err != nil {
		return person.Person{}, fmt.Errorf("propagate death date for %s: %w", personID, err)
	}

	s.invalidateSeasonViews(ctx)
	s.logger.InfoContext(ctx, "death confirmed",
		"person_id", personID,
		"death_date", deathDate.Format("2006-01-02"),
	)
	return subject, nil
}

func (s *AdminService) findPick(ctx context.Context, season, pickID string) (string, player.Pick, error) {
	players, err := s.playerRepo.List(ctx)
	if err != nil {
		return "", player.Pick{}, fmt.Errorf("list players for pick lookup: %w", err)
	}
	for _, p := range players {
		for _, pick := range p.SeasonPicks(season) {
			if pick.ID == pickID {
				return p.ID, pick, nil
			}
		}
	}
	return "", player.Pick{}, fmt.Errorf("%w: pick %s in season %s", ErrNotFound, pickID, season)
}

func (s *AdminService) invalidateSeasonViews(ctx context.Context) {
	if s.store == nil {
		return
	}
	s.store.DeletePrefix(ctx, "leaderboard:")
	s.store.DeletePrefix(ctx, "badges:")
	s.store.DeletePrefix(ctx, "stats:")
}

func normalizeName(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}

func copyDate(value *time.Time) *time.Time {
	if value == nil {
		return nil
	}
	out := *value
	return &out
}
