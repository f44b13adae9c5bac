package scheduler

import (
	"context"
	"fmt"
	"time"

	"pet-wellness/internal/domain/pets"
	"pet-wellness/internal/domain/wellness"
	"pet-wellness/internal/platform/logger"

	"github.com/robfig/cron/v3"
)

// Scheduler corre el job diario de snapshots de wellness.
type Scheduler struct {
	cron       *cron.Cron
	pets       *pets.Service
	wellness   *wellness.Service
	log        logger.Logger
	windowDays int
}

func New(petsSvc *pets.Service, wellnessSvc *wellness.Service, log logger.Logger, windowDays int) *Scheduler {
	if log == nil {
		log = logger.Nop()
	}
	if windowDays <= 0 {
		windowDays = 7
	}
	return &Scheduler{
		cron:       cron.New(cron.WithSeconds()),
		pets:       petsSvc,
		wellness:   wellnessSvc,
		log:        log,
		windowDays: windowDays,
	}
}

// Register agenda el job de snapshots con la expresión cron dada.
func (s *Scheduler) Register(spec string) error {
	if _, err := s.cron.AddFunc(spec, s.snapshotTask); err != nil {
		return fmt.Errorf("register snapshot task: %w", err)
	}
	return nil
}

func (s *Scheduler) Start() { s.cron.Start() }

func (s *Scheduler) Stop() context.Context { return s.cron.Stop() }

// snapshotTask recomputa y persiste el puntaje de los últimos windowDays días
// para cada mascota. Un error en una mascota no aborta la corrida.
func (s *Scheduler) snapshotTask() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	ids, err := s.pets.ListIDs(ctx)
	if err != nil {
		s.log.Error("snapshot run: list pets failed", map[string]any{"err": err.Error()})
		return
	}

	okCount := 0
	for _, id := range ids {
		p, err := s.pets.GetByID(ctx, id)
		if err != nil {
			s.log.Warn("snapshot run: pet lookup failed", map[string]any{"pet_id": id, "err": err.Error()})
			continue
		}

		snap, err := s.wellness.TakeSnapshot(ctx, p.ID, p.Species, s.windowDays)
		if err != nil {
			s.log.Warn("snapshot run: scoring failed", map[string]any{"pet_id": id, "err": err.Error()})
			continue
		}

		okCount++
		s.log.Debug("snapshot saved", map[string]any{"pet_id": id, "score": snap.Score})
	}

	s.log.Info("snapshot run finished", map[string]any{"pets": len(ids), "saved": okCount})
}

// RunOnce dispara el job una vez fuera del cron (útil al arrancar y en tests).
func (s *Scheduler) RunOnce() { s.snapshotTask() }
