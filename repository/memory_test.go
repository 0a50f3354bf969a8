package repository

import (
	"errors"
	"testing"
	"time"

	"motel-backoffice/models"
)

func TestPendingReservationSlotIsPerUser(t *testing.T) {
	s := NewMemory()

	first := &models.PendingReservation{KakaoUserID: "u1", RoomID: 1, TotalPrice: 70000}
	if err := s.SavePendingReservation(first); err != nil {
		t.Fatal(err)
	}
	second := &models.PendingReservation{KakaoUserID: "u1", RoomID: 2, TotalPrice: 30000}
	if err := s.SavePendingReservation(second); err != nil {
		t.Fatal(err)
	}

	got, err := s.GetPendingReservation("u1")
	if err != nil {
		t.Fatal(err)
	}
	if got.RoomID != 2 || got.TotalPrice != 30000 {
		t.Fatalf("last write should win, got %+v", got)
	}

	if err := s.DeletePendingReservation("u1"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.GetPendingReservation("u1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound after delete, got %v", err)
	}
}

func TestDeleteExpiredPendingReservations(t *testing.T) {
	s := NewMemory()
	now := time.Now()

	stale := &models.PendingReservation{KakaoUserID: "old", CreatedAt: now.Add(-20 * time.Minute)}
	fresh := &models.PendingReservation{KakaoUserID: "new", CreatedAt: now.Add(-1 * time.Minute)}
	for _, p := range []*models.PendingReservation{stale, fresh} {
		if err := s.SavePendingReservation(p); err != nil {
			t.Fatal(err)
		}
	}

	n, err := s.DeleteExpiredPendingReservations(now.Add(-10 * time.Minute))
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Fatalf("swept %d, want 1", n)
	}
	if _, err := s.GetPendingReservation("old"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("stale slot should be gone, got %v", err)
	}
	if _, err := s.GetPendingReservation("new"); err != nil {
		t.Fatalf("fresh slot should survive, got %v", err)
	}
}

func TestUpsertAdjustmentKeyedByRoomAndDate(t *testing.T) {
	s := NewMemory()
	day := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	a, err := s.UpsertAdjustment(1, day, 2)
	if err != nil {
		t.Fatal(err)
	}
	b, err := s.UpsertAdjustment(1, day, -1)
	if err != nil {
		t.Fatal(err)
	}
	if b.ID != a.ID || b.Delta != -1 {
		t.Fatalf("second upsert should update in place, got %+v after %+v", b, a)
	}

	// A time-of-day variant still hits the same calendar slot.
	got, err := s.GetAdjustment(1, day.Add(13*time.Hour))
	if err != nil {
		t.Fatal(err)
	}
	if got.Delta != -1 {
		t.Fatalf("delta = %d, want -1", got.Delta)
	}
}

func TestChatbotMessageUpsert(t *testing.T) {
	s := NewMemory()

	m := &models.ChatbotMessage{Situation: models.SituationGreeting, Message: "처음 인사"}
	if err := s.UpsertChatbotMessage(m); err != nil {
		t.Fatal(err)
	}
	update := &models.ChatbotMessage{Situation: models.SituationGreeting, Message: "바뀐 인사"}
	if err := s.UpsertChatbotMessage(update); err != nil {
		t.Fatal(err)
	}
	if update.ID != m.ID {
		t.Fatalf("upsert minted a new row: %d vs %d", update.ID, m.ID)
	}

	msg, err := s.GetChatbotMessage(models.SituationGreeting)
	if err != nil {
		t.Fatal(err)
	}
	if msg != "바뀐 인사" {
		t.Fatalf("message = %q", msg)
	}
}

func TestUpdateMissingRecordReturnsNotFound(t *testing.T) {
	s := NewMemory()
	if err := s.UpdateRoom(99, map[string]interface{}{"name": "x"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("UpdateRoom: %v", err)
	}
	if err := s.UpdateReservation(99, map[string]interface{}{"status": models.StatusConfirmed}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("UpdateReservation: %v", err)
	}
	if err := s.DeleteRoom(99); !errors.Is(err, ErrNotFound) {
		t.Fatalf("DeleteRoom: %v", err)
	}
}
