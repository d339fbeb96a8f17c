package repositories

import (
	"errors"
	"testing"

	"dynastytrade/internal/models"
	"dynastytrade/internal/testhelpers"
)

func newLeagueRepo(t *testing.T) *LeagueRepository {
	t.Helper()
	return &LeagueRepository{DB: testhelpers.SetupTestDB(t)}
}

func TestLeagueRepository_UpsertConnection(t *testing.T) {
	repo := newLeagueRepo(t)

	first := &models.LeagueConnection{UserID: 1, LeagueID: "L1", LeagueName: "Old Name"}
	if err := repo.UpsertConnection(first); err != nil {
		t.Fatalf("first upsert returned error: %v", err)
	}

	// reconnecting the same league overwrites instead of duplicating
	second := &models.LeagueConnection{UserID: 1, LeagueID: "L1", LeagueName: "New Name"}
	if err := repo.UpsertConnection(second); err != nil {
		t.Fatalf("second upsert returned error: %v", err)
	}

	var count int64
	repo.DB.Model(&models.LeagueConnection{}).Where("user_id = ? AND league_id = ?", 1, "L1").Count(&count)
	if count != 1 {
		t.Fatalf("expected a single connection row, got %d", count)
	}

	got, err := repo.GetConnection(1, "L1")
	if err != nil {
		t.Fatalf("GetConnection returned error: %v", err)
	}
	if got.LeagueName != "New Name" {
		t.Fatalf("expected league name overwritten, got %q", got.LeagueName)
	}
}

func TestLeagueRepository_UpdateSelectedTeam(t *testing.T) {
	repo := newLeagueRepo(t)

	conn := &models.LeagueConnection{UserID: 7, LeagueID: "L9", LeagueName: "Dynasty League"}
	if err := repo.UpsertConnection(conn); err != nil {
		t.Fatalf("upsert returned error: %v", err)
	}

	if err := repo.UpdateSelectedTeam(7, "L9", "3", "Gridiron Geeks"); err != nil {
		t.Fatalf("UpdateSelectedTeam returned error: %v", err)
	}

	got, err := repo.GetConnection(7, "L9")
	if err != nil {
		t.Fatalf("GetConnection returned error: %v", err)
	}
	if got.SelectedTeamID != "3" || got.SelectedTeamName != "Gridiron Geeks" {
		t.Fatalf("unexpected team selection: %q / %q", got.SelectedTeamID, got.SelectedTeamName)
	}

	t.Run("unknown league", func(t *testing.T) {
		err := repo.UpdateSelectedTeam(7, "missing", "1", "Nobody")
		if !errors.Is(err, ErrLeagueConnectionNotFound) {
			t.Fatalf("expected ErrLeagueConnectionNotFound, got %v", err)
		}
	})
}

func TestLeagueRepository_ListConnections(t *testing.T) {
	repo := newLeagueRepo(t)

	for _, id := range []string{"L1", "L2"} {
		if err := repo.UpsertConnection(&models.LeagueConnection{UserID: 2, LeagueID: id}); err != nil {
			t.Fatalf("upsert returned error: %v", err)
		}
	}
	if err := repo.UpsertConnection(&models.LeagueConnection{UserID: 3, LeagueID: "L1"}); err != nil {
		t.Fatalf("upsert returned error: %v", err)
	}

	conns, err := repo.ListConnections(2)
	if err != nil {
		t.Fatalf("ListConnections returned error: %v", err)
	}
	if len(conns) != 2 {
		t.Fatalf("expected 2 connections, got %d", len(conns))
	}
}

func TestTransactionRepository_Lifecycle(t *testing.T) {
	repo := &TransactionRepository{DB: testhelpers.SetupTestDB(t)}

	txn := &models.Transaction{
		UserID:            1,
		CheckoutSessionID: "cs_test_1",
		AmountCents:       500,
		PlanType:          models.PlanPro,
		Status:            models.TransactionPending,
	}
	if err := repo.Create(txn); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if err := repo.UpdateStatus("cs_test_1", models.TransactionCompleted, "pi_123"); err != nil {
		t.Fatalf("UpdateStatus returned error: %v", err)
	}

	got, err := repo.GetBySessionID("cs_test_1")
	if err != nil {
		t.Fatalf("GetBySessionID returned error: %v", err)
	}
	if got.Status != models.TransactionCompleted {
		t.Fatalf("expected completed status, got %q", got.Status)
	}
	if got.PaymentIntentID != "pi_123" {
		t.Fatalf("expected payment intent recorded, got %q", got.PaymentIntentID)
	}

	t.Run("unknown session", func(t *testing.T) {
		if _, err := repo.GetBySessionID("cs_missing"); !errors.Is(err, ErrTransactionNotFound) {
			t.Fatalf("expected ErrTransactionNotFound, got %v", err)
		}
		if err := repo.UpdateStatus("cs_missing", models.TransactionFailed, ""); !errors.Is(err, ErrTransactionNotFound) {
			t.Fatalf("expected ErrTransactionNotFound, got %v", err)
		}
	})
}
