package db

import (
	"testing"
	"time"
)

func TestRecordAndListShorts(t *testing.T) {
	useTempDB(t)

	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	inputs := []SavedShort{
		{QuoteID: "F-001", Author: "Carl Jung", Path: "/tmp/PsyShort-F-001.png", Bytes: 2048, CreatedAt: base},
		{QuoteID: "F-004", Author: "Friedrich Nietzsche", Path: "/tmp/PsyShort-F-004.jpg", MIMEType: "image/jpeg", CreatedAt: base.Add(time.Minute)},
		{QuoteID: "F-001", Author: "Carl Jung", Path: "/tmp/PsyShort-F-001.png", Bytes: 4096, CreatedAt: base.Add(2 * time.Minute)},
	}

	for _, in := range inputs {
		saved, err := RecordShort(in)
		if err != nil {
			t.Fatalf("RecordShort failed: %v", err)
		}
		if saved.ID == "" {
			t.Error("Expected an id to be assigned")
		}
	}

	shorts, err := ListShorts(0)
	if err != nil {
		t.Fatalf("ListShorts failed: %v", err)
	}
	if len(shorts) != 3 {
		t.Fatalf("Expected 3 shorts, got %d", len(shorts))
	}

	// Newest first
	if shorts[0].Bytes != 4096 || shorts[2].QuoteID != "F-001" || shorts[2].Bytes != 2048 {
		t.Errorf("Unexpected order: %+v", shorts)
	}
	if shorts[1].MIMEType != "image/jpeg" {
		t.Errorf("Expected image/jpeg, got %s", shorts[1].MIMEType)
	}
	if !shorts[0].CreatedAt.Equal(base.Add(2 * time.Minute)) {
		t.Errorf("Expected created time round-trip, got %v", shorts[0].CreatedAt)
	}

	limited, err := ListShorts(1)
	if err != nil {
		t.Fatalf("ListShorts(1) failed: %v", err)
	}
	if len(limited) != 1 {
		t.Errorf("Expected 1 short with limit, got %d", len(limited))
	}

	n, err := CountShorts()
	if err != nil {
		t.Fatalf("CountShorts failed: %v", err)
	}
	if n != 3 {
		t.Errorf("Expected count 3, got %d", n)
	}
}

func TestLatestForQuote(t *testing.T) {
	useTempDB(t)

	if _, ok, err := LatestForQuote("F-002"); err != nil || ok {
		t.Fatalf("Expected no short for F-002, got ok=%v err=%v", ok, err)
	}

	now := time.Now()
	RecordShort(SavedShort{QuoteID: "F-002", Path: "a.png", CreatedAt: now.Add(-time.Hour)})
	RecordShort(SavedShort{QuoteID: "F-002", Path: "b.png", CreatedAt: now})

	s, ok, err := LatestForQuote("F-002")
	if err != nil || !ok {
		t.Fatalf("Expected a short for F-002, got ok=%v err=%v", ok, err)
	}
	if s.Path != "b.png" {
		t.Errorf("Expected latest path b.png, got %s", s.Path)
	}
}

func TestRecordShortValidates(t *testing.T) {
	useTempDB(t)

	if _, err := RecordShort(SavedShort{Path: "x.png"}); err == nil {
		t.Error("Expected error without quote id")
	}
	if _, err := RecordShort(SavedShort{QuoteID: "F-001"}); err == nil {
		t.Error("Expected error without path")
	}
}

func TestEmptyHistory(t *testing.T) {
	useTempDB(t)

	shorts, err := ListShorts(10)
	if err != nil {
		t.Fatalf("ListShorts failed: %v", err)
	}
	if shorts == nil || len(shorts) != 0 {
		t.Errorf("Expected empty non-nil slice, got %v", shorts)
	}
}
