package pets

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeRepo struct {
	byID map[string]Pet
}

func newFakeRepo() *fakeRepo { return &fakeRepo{byID: make(map[string]Pet)} }

func (f *fakeRepo) Create(_ context.Context, p Pet) error {
	f.byID[p.ID] = p
	return nil
}

func (f *fakeRepo) Update(_ context.Context, p Pet) error {
	if _, ok := f.byID[p.ID]; !ok {
		return ErrNotFound
	}
	f.byID[p.ID] = p
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, id string) (Pet, error) {
	p, ok := f.byID[id]
	if !ok {
		return Pet{}, ErrNotFound
	}
	return p, nil
}

func (f *fakeRepo) ListByOwner(_ context.Context, ownerUserID string) ([]Pet, error) {
	var out []Pet
	for _, p := range f.byID {
		if p.OwnerUserID == ownerUserID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListIDs(_ context.Context) ([]string, error) {
	out := make([]string, 0, len(f.byID))
	for id := range f.byID {
		out = append(out, id)
	}
	return out, nil
}

func strPtr(s string) *string { return &s }

func TestCreate_ValidationAndNormalization(t *testing.T) {
	svc := NewService(newFakeRepo())
	svc.now = func() time.Time { return time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC) }
	ctx := context.Background()

	if _, err := svc.Create(ctx, "", CreateInput{Name: "Milo", Species: "dog"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput without owner, got %v", err)
	}
	if _, err := svc.Create(ctx, "owner-1", CreateInput{Species: "dog"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput without name, got %v", err)
	}
	if _, err := svc.Create(ctx, "owner-1", CreateInput{Name: "Milo"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput without species, got %v", err)
	}

	p, err := svc.Create(ctx, "owner-1", CreateInput{Name: " Milo ", Species: " Dog "})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ID == "" {
		t.Fatalf("expected generated id")
	}
	if p.Name != "Milo" || p.Species != "dog" {
		t.Fatalf("expected trimmed/lowercased fields, got %q/%q", p.Name, p.Species)
	}
	if !p.CreatedAt.Equal(p.UpdatedAt) {
		t.Fatalf("createdAt and updatedAt should match on create")
	}
}

func TestUpdateProfile_PartialPatch(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	ctx := context.Background()

	p, err := svc.Create(ctx, "owner-1", CreateInput{Name: "Milo", Species: "dog", Breed: "mixed"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := svc.UpdateProfile(ctx, p.ID, UpdateProfileInput{Name: strPtr("Milo II")})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "Milo II" {
		t.Fatalf("expected updated name, got %q", updated.Name)
	}
	if updated.Species != "dog" || updated.Breed != "mixed" {
		t.Fatalf("untouched fields changed: %q/%q", updated.Species, updated.Breed)
	}

	if _, err := svc.UpdateProfile(ctx, p.ID, UpdateProfileInput{Name: strPtr("  ")}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput on blank name, got %v", err)
	}
	if _, err := svc.UpdateProfile(ctx, "nope", UpdateProfileInput{}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestOwnerOf(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	p, err := svc.Create(ctx, "owner-1", CreateInput{Name: "Milo", Species: "dog"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	owner, err := svc.OwnerOf(ctx, p.ID)
	if err != nil {
		t.Fatalf("ownerOf: %v", err)
	}
	if owner != "owner-1" {
		t.Fatalf("expected owner-1, got %q", owner)
	}

	if _, err := svc.OwnerOf(ctx, "nope"); err == nil {
		t.Fatalf("expected error for unknown pet")
	}
}
