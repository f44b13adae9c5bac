package scheduler

import (
	"context"
	"testing"
	"time"

	mem "pet-wellness/internal/adapters/storage/memory"
	"pet-wellness/internal/domain/pets"
	"pet-wellness/internal/domain/records"
	"pet-wellness/internal/domain/wellness"
)

func TestRunOnce_SavesSnapshotPerPet(t *testing.T) {
	ctx := context.Background()

	petsSvc := pets.NewService(mem.NewPetRepo())
	recordsSvc := records.NewService(mem.NewRecordsRepo())
	wellnessSvc := wellness.NewService(recordsSvc, mem.NewSnapshotsRepo())

	p1, err := petsSvc.Create(ctx, "owner-1", pets.CreateInput{Name: "Milo", Species: "dog"})
	if err != nil {
		t.Fatalf("create pet: %v", err)
	}
	p2, err := petsSvc.Create(ctx, "owner-2", pets.CreateInput{Name: "Luna", Species: "cat"})
	if err != nil {
		t.Fatalf("create pet: %v", err)
	}

	// Algo de historial reciente para que el puntaje no sea trivial
	if _, err := recordsSvc.AddVital(ctx, p1.ID, records.VitalInput{
		Type: records.VitalTemperature, Value: 38.5, RecordedAt: time.Now().AddDate(0, 0, -1),
	}); err != nil {
		t.Fatalf("add vital: %v", err)
	}

	sched := New(petsSvc, wellnessSvc, nil, 7)
	sched.RunOnce()

	for _, id := range []string{p1.ID, p2.ID} {
		snaps, err := wellnessSvc.Snapshots(ctx, id, 10)
		if err != nil {
			t.Fatalf("list snapshots: %v", err)
		}
		if len(snaps) != 1 {
			t.Fatalf("pet %s: expected 1 snapshot, got %d", id, len(snaps))
		}
		if snaps[0].WindowEnd.Before(snaps[0].WindowStart) {
			t.Fatalf("snapshot window is inverted")
		}
	}

	snaps, _ := wellnessSvc.Snapshots(ctx, p1.ID, 10)
	if snaps[0].Score <= 0 {
		t.Fatalf("expected non-zero score with recent vitals, got %d", snaps[0].Score)
	}
}

func TestRegister_RejectsBadCronSpec(t *testing.T) {
	petsSvc := pets.NewService(mem.NewPetRepo())
	recordsSvc := records.NewService(mem.NewRecordsRepo())
	wellnessSvc := wellness.NewService(recordsSvc, mem.NewSnapshotsRepo())

	sched := New(petsSvc, wellnessSvc, nil, 7)
	if err := sched.Register("cada madrugada"); err == nil {
		t.Fatalf("expected error for invalid cron expression")
	}
	if err := sched.Register("0 0 6 * * *"); err != nil {
		t.Fatalf("valid cron expression rejected: %v", err)
	}
}
