package wellness

import (
	"context"
	"errors"
	"strings"
	"time"

	"pet-wellness/internal/domain/records"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

// HistoryProvider abstrae de dónde sale el historial (records.Service lo
// implementa). El motor nunca hace I/O por su cuenta.
type HistoryProvider interface {
	History(ctx context.Context, petID string) (records.History, error)
}

type Service struct {
	history HistoryProvider
	snaps   SnapshotStore
	calc    *Calculator
	now     func() time.Time
}

func NewService(history HistoryProvider, snaps SnapshotStore) *Service {
	return &Service{
		history: history,
		snaps:   snaps,
		calc:    NewCalculator(),
		now:     time.Now,
	}
}

// AllTime es la ventana "todo el historial hasta ahora": el caso del viejo
// scorer de snapshot único es solo esta ventana.
func AllTime(now time.Time) Window {
	return Window{Start: time.Time{}, End: now}
}

// Evaluate trae el historial una vez y lo evalúa contra la ventana dada.
// Una ventana cero equivale a todo el historial hasta ahora.
func (s *Service) Evaluate(ctx context.Context, petID, species string, w Window) (Score, error) {
	petID = strings.TrimSpace(petID)
	if petID == "" {
		return Score{}, ErrInvalidInput
	}

	h, err := s.history.History(ctx, petID)
	if err != nil {
		return Score{}, err
	}

	if w.Start.IsZero() && w.End.IsZero() {
		w = AllTime(s.now())
	}

	return s.calc.Score(h, w, species), nil
}

// Trend devuelve la serie (label, score) para el período pedido.
func (s *Service) Trend(ctx context.Context, petID, species string, period Period) ([]TrendPoint, error) {
	petID = strings.TrimSpace(petID)
	if petID == "" {
		return nil, ErrInvalidInput
	}

	h, err := s.history.History(ctx, petID)
	if err != nil {
		return nil, err
	}

	return s.calc.TrendSeries(h, period, species), nil
}

// TakeSnapshot evalúa la ventana de los últimos windowDays días y persiste el
// resultado. Lo usa el job diario del scheduler.
func (s *Service) TakeSnapshot(ctx context.Context, petID, species string, windowDays int) (Snapshot, error) {
	petID = strings.TrimSpace(petID)
	if petID == "" {
		return Snapshot{}, ErrInvalidInput
	}
	if windowDays <= 0 {
		windowDays = 7
	}

	now := s.now()
	w := Window{Start: now.AddDate(0, 0, -windowDays), End: now}

	sc, err := s.Evaluate(ctx, petID, species, w)
	if err != nil {
		return Snapshot{}, err
	}

	snap := Snapshot{
		ID:          uuid.NewString(),
		PetID:       petID,
		WindowStart: w.Start,
		WindowEnd:   w.End,
		Score:       sc.Score,
		Components:  sc.Components,
		RecordedAt:  now,
	}
	if err := s.snaps.Save(ctx, snap); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

func (s *Service) Snapshots(ctx context.Context, petID string, limit int) ([]Snapshot, error) {
	petID = strings.TrimSpace(petID)
	if petID == "" {
		return nil, ErrInvalidInput
	}
	return s.snaps.ListByPet(ctx, petID, limit)
}
