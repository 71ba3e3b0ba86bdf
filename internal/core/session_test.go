package core

import (
	"errors"
	"testing"
	"time"
)

func testInventory(hosts ...string) InventoryTable {
	records := make([]InventoryRecord, len(hosts))
	for i, h := range hosts {
		records[i] = invRecord(h, true)
	}
	return InventoryTable{Columns: []string{ColHostname}, Records: records}
}

func testStatus(hosts ...string) StatusTable {
	records := make([]AgentStatusRecord, len(hosts))
	for i, h := range hosts {
		records[i] = statusRecord(h, StatusConnected)
	}
	return StatusTable{Columns: []string{"HOST NAME", ColAgentStatus}, Records: records}
}

func TestSessionStore_CreateAndGet(t *testing.T) {
	store := NewSessionStore(time.Hour)

	s := store.Create()
	if s.ID == "" {
		t.Fatal("Create() returned empty id")
	}
	if s.Ready() {
		t.Error("new session should not be ready")
	}

	got, err := store.Get(s.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.ID != s.ID {
		t.Errorf("Get() id = %s, want %s", got.ID, s.ID)
	}
	if store.Len() != 1 {
		t.Errorf("Len() = %d, want 1", store.Len())
	}
}

func TestSessionStore_GetUnknown(t *testing.T) {
	store := NewSessionStore(time.Hour)

	_, err := store.Get("nope")
	if !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Get() error = %v, want ErrSessionNotFound", err)
	}
}

func TestSessionStore_ReportBuiltWhenBothLoaded(t *testing.T) {
	store := NewSessionStore(time.Hour)
	s := store.Create()

	s, err := store.SetInventory(s.ID, testInventory("srv1", "srv2"))
	if err != nil {
		t.Fatalf("SetInventory() error = %v", err)
	}
	if s.Ready() || s.Report != nil {
		t.Fatal("session ready with only inventory loaded")
	}

	s, err = store.SetStatus(s.ID, testStatus("srv1"))
	if err != nil {
		t.Fatalf("SetStatus() error = %v", err)
	}
	if !s.Ready() {
		t.Fatal("session not ready after both uploads")
	}
	if s.Report == nil || len(s.Report.Rows) != 2 {
		t.Fatalf("Report = %+v, want 2 rows", s.Report)
	}
	if s.Report.Rows[0].Category != Compliant || s.Report.Rows[1].Category != NotInstalled {
		t.Errorf("categories = %v, %v", s.Report.Rows[0].Category, s.Report.Rows[1].Category)
	}
}

func TestSessionStore_ReuploadReplacesSnapshot(t *testing.T) {
	store := NewSessionStore(time.Hour)
	s := store.Create()

	store.SetInventory(s.ID, testInventory("srv1"))
	first, err := store.SetStatus(s.ID, testStatus("srv1"))
	if err != nil {
		t.Fatalf("SetStatus() error = %v", err)
	}

	second, err := store.SetInventory(s.ID, testInventory("srv1", "srv9"))
	if err != nil {
		t.Fatalf("SetInventory() error = %v", err)
	}

	if len(first.Report.Rows) != 1 {
		t.Errorf("old snapshot mutated: %d rows", len(first.Report.Rows))
	}
	if len(second.Report.Rows) != 2 {
		t.Errorf("new snapshot has %d rows, want 2", len(second.Report.Rows))
	}

	live, _ := store.Get(s.ID)
	if live != second {
		t.Error("Get() did not return the latest snapshot")
	}
}

func TestSessionStore_SetOnUnknownSession(t *testing.T) {
	store := NewSessionStore(time.Hour)

	if _, err := store.SetInventory("nope", testInventory("srv1")); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("SetInventory() error = %v, want ErrSessionNotFound", err)
	}
	if _, err := store.SetStatus("nope", testStatus("srv1")); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("SetStatus() error = %v, want ErrSessionNotFound", err)
	}
}
