package httpapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/morbidleague/deadpool/internal/usecase"
)

type Handler struct {
	leaderboardService *usecase.LeaderboardService
	badgeService       *usecase.BadgeService
	playerService      *usecase.PlayerService
	statsService       *usecase.StatsService
	adminService       *usecase.AdminService
	logger             *slog.Logger
	validator          *validator.Validate
}

func NewHandler(
	leaderboardService *usecase.LeaderboardService,
	badgeService *usecase.BadgeService,
	playerService *usecase.PlayerService,
	statsService *usecase.StatsService,
	adminService *usecase.AdminService,
	logger *slog.Logger,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		leaderboardService: leaderboardService,
		badgeService:       badgeService,
		playerService:      playerService,
		statsService:       statsService,
		adminService:       adminService,
		logger:             logger,
		validator:          validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func formatDate(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

func formatDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := formatDate(*t)
	return &s
}

func formatOptionalDate(t time.Time) *string {
	if t.IsZero() {
		return nil
	}
	s := formatDate(t)
	return &s
}
