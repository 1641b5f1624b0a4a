package ledger

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/dokzlo13/ledremote/internal/db"
)

func openLedger(t *testing.T) *Ledger {
	t.Helper()
	database, err := db.Open(filepath.Join(t.TempDir(), "ledger.db"))
	if err != nil {
		t.Fatalf("db.Open: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return New(database.DB)
}

func TestAppendAndQuery(t *testing.T) {
	l := openLedger(t)
	ts := time.Unix(1700000000, 0)

	payload := map[string]any{"bri": 128}
	if err := l.Append("e1", EventStateUpdated, ts, "button-triggered", "ir", payload); err != nil {
		t.Fatalf("Append: %v", err)
	}
	// Same event id is ignored.
	if err := l.Append("e1", EventStateUpdated, ts, "button-triggered", "ir", nil); err != nil {
		t.Fatalf("Append duplicate: %v", err)
	}
	if err := l.Append("e2", EventCode, ts.Add(time.Second), "", "rf433", map[string]any{"code": 5}); err != nil {
		t.Fatalf("Append: %v", err)
	}

	entries, err := l.GetByType(EventStateUpdated, 10)
	if err != nil {
		t.Fatalf("GetByType: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(entries))
	}
	e := entries[0]
	if e.EventID != "e1" || e.CallMode != "button-triggered" || e.Source != "ir" {
		t.Errorf("entry = %+v", e)
	}
	if e.Payload["bri"] != float64(128) {
		t.Errorf("payload = %v", e.Payload)
	}

	entries, err = l.GetByTimeRange(ts, ts.Add(time.Minute), 10)
	if err != nil {
		t.Fatalf("GetByTimeRange: %v", err)
	}
	if len(entries) != 2 || entries[0].EventID != "e2" {
		t.Errorf("range entries = %d, first = %+v", len(entries), entries[0])
	}
}

func TestDeleteOlderThan(t *testing.T) {
	l := openLedger(t)
	now := time.Unix(1700000000, 0)
	l.now = func() time.Time { return now }

	_ = l.Append("old", EventButton, now.Add(-48*time.Hour), "", "espnow", nil)
	_ = l.Append("new", EventButton, now.Add(-time.Hour), "", "espnow", nil)

	n, err := l.DeleteOlderThan(24 * time.Hour)
	if err != nil {
		t.Fatalf("DeleteOlderThan: %v", err)
	}
	if n != 1 {
		t.Errorf("deleted = %d, want 1", n)
	}
	entries, _ := l.GetByType(EventButton, 10)
	if len(entries) != 1 || entries[0].EventID != "new" {
		t.Errorf("remaining = %v", entries)
	}
}
