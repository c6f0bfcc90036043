package httpapi

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/morbidleague/deadpool/internal/domain/scoring"
	"github.com/morbidleague/deadpool/internal/usecase"
)

type approvePickRequest struct {
	Season   string `json:"season" validate:"required"`
	PersonID string `json:"person_id" validate:"required"`
}

type applyPenaltyRequest struct {
	Delta  int    `json:"delta" validate:"required"`
	Reason string `json:"reason" validate:"required,max=200"`
}

type confirmDeathRequest struct {
	DeathDate string `json:"death_date" validate:"required"`
}

type registerPersonRequest struct {
	Name      string `json:"name" validate:"required,max=200"`
	BirthDate string `json:"birth_date" validate:"omitempty"`
}

type personDTO struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	BirthDate *string `json:"birthDate"`
	DeathDate *string `json:"deathDate"`
}

func (h *Handler) ApprovePick(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ApprovePick")
	defer span.End()

	pickID := strings.TrimSpace(r.PathValue("pickID"))

	var req approvePickRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	pick, err := h.adminService.ApprovePick(ctx, req.Season, pickID, req.PersonID)
	if err != nil {
		h.logger.WarnContext(ctx, "approve pick failed", "pick_id", pickID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, pickToDTO(pick))
}

func (h *Handler) ApplyPenalty(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ApplyPenalty")
	defer span.End()

	playerID := strings.TrimSpace(r.PathValue("playerID"))

	var req applyPenaltyRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	entry, err := h.adminService.ApplyPenalty(ctx, playerID, req.Delta, req.Reason)
	if err != nil {
		h.logger.WarnContext(ctx, "apply penalty failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, scoreHistoryEntryDTO{
		Delta:  entry.Delta,
		At:     formatDate(entry.At),
		Reason: entry.Reason,
	})
}

func (h *Handler) RegisterPerson(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RegisterPerson")
	defer span.End()

	var req registerPersonRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	var birthDate *time.Time
	if strings.TrimSpace(req.BirthDate) != "" {
		parsed, ok := scoring.ToDate(req.BirthDate)
		if !ok {
			writeError(ctx, w, fmt.Errorf("%w: birth_date must be a calendar date (2006-01-02)", usecase.ErrInvalidInput))
			return
		}
		birthDate = &parsed
	}

	subject, err := h.adminService.RegisterPerson(ctx, req.Name, birthDate)
	if err != nil {
		h.logger.WarnContext(ctx, "register person failed", "name", req.Name, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, personDTO{
		ID:        subject.ID,
		Name:      subject.Name,
		BirthDate: formatDatePtr(subject.BirthDate),
		DeathDate: formatDatePtr(subject.DeathDate),
	})
}

func (h *Handler) ConfirmDeath(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ConfirmDeath")
	defer span.End()

	personID := strings.TrimSpace(r.PathValue("personID"))

	var req confirmDeathRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	deathDate, ok := scoring.ToDate(req.DeathDate)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: death_date must be a calendar date (2006-01-02)", usecase.ErrInvalidInput))
		return
	}

	subject, err := h.adminService.ConfirmDeath(ctx, personID, deathDate)
	if err != nil {
		h.logger.WarnContext(ctx, "confirm death failed", "person_id", personID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, personDTO{
		ID:        subject.ID,
		Name:      subject.Name,
		BirthDate: formatDatePtr(subject.BirthDate),
		DeathDate: formatDatePtr(subject.DeathDate),
	})
}
