package teamstore

import (
	"errors"
	"testing"

	"github.com/sprinthub/sprinthub/internal/app/store"
	"github.com/sprinthub/sprinthub/internal/app/system/indexes"
	"github.com/sprinthub/sprinthub/internal/testutil"
)

func TestCreateListGet(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll: %v", err)
	}

	s := New(db)

	team, err := s.Create(ctx, "Autofill")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if team.ID == "" {
		t.Error("created team has empty id")
	}
	if team.CreatedAt.IsZero() {
		t.Error("created team has zero CreatedAt")
	}

	got, err := s.Get(ctx, team.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Name != "Autofill" {
		t.Errorf("name = %q, want Autofill", got.Name)
	}

	teams, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(teams) != 1 {
		t.Errorf("got %d teams, want 1", len(teams))
	}
}

func TestCreateDuplicateNameCaseInsensitive(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll: %v", err)
	}

	s := New(db)

	if _, err := s.Create(ctx, "Autofill"); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := s.Create(ctx, "AUTOFILL"); !errors.Is(err, store.ErrDuplicateTeamName) {
		t.Errorf("got %v, want ErrDuplicateTeamName", err)
	}
}

func TestGetMissing(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	s := New(db)
	if _, err := s.Get(ctx, "missing"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}
