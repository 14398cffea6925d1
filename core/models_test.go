package core

import (
	"testing"
	"time"
)

func TestBatch_Add(t *testing.T) {
	tests := []struct {
		name    string
		records []Record
		want    int
	}{
		{
			name:    "empty batch",
			records: nil,
			want:    0,
		},
		{
			name:    "single record",
			records: []Record{{Name: "Apple"}},
			want:    1,
		},
		{
			name: "multiple records",
			records: []Record{
				{Name: "Apple"},
				{Name: "Microsoft"},
				{Name: "NeXT"},
			},
			want: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			batch := &Batch{}
			for _, record := range tt.records {
				batch.Add(record)
			}

			if batch.Count != tt.want {
				t.Errorf("Count = %d, want %d", batch.Count, tt.want)
			}
			if batch.Count != len(batch.Records) {
				t.Errorf("Count = %d, len(Records) = %d, must always match", batch.Count, len(batch.Records))
			}
		})
	}
}

func TestBatch_AddVariadic(t *testing.T) {
	batch := &Batch{}
	batch.Add(Record{Name: "Apple"}, Record{Name: "Microsoft"})
	batch.Add(Record{Name: "NeXT"})

	if batch.Count != 3 {
		t.Errorf("Count = %d, want 3", batch.Count)
	}
	if batch.Count != len(batch.Records) {
		t.Errorf("Count diverged from len(Records)")
	}
}

func TestBatch_ByName(t *testing.T) {
	batch := &Batch{}
	batch.Add(
		Record{Name: "Apple"},
		Record{Name: "apple"},
		Record{Name: "Microsoft"},
	)

	matches := batch.ByName("APPLE")
	if len(matches) != 2 {
		t.Errorf("ByName returned %d records, want 2", len(matches))
	}

	if got := batch.ByName("missing"); len(got) != 0 {
		t.Errorf("ByName for unknown name returned %d records, want 0", len(got))
	}
}

func TestBatch_ByFounder(t *testing.T) {
	batch := &Batch{}
	batch.Add(
		Record{Name: "Apple", Founders: []string{"Steve Jobs", "Steve Wozniak"}},
		Record{Name: "NeXT", Founders: []string{"Steve Jobs"}},
		Record{Name: "Microsoft", Founders: []string{"Bill Gates", "Paul Allen"}},
	)

	matches := batch.ByFounder("steve jobs")
	if len(matches) != 2 {
		t.Errorf("ByFounder returned %d records, want 2", len(matches))
	}

	matches = batch.ByFounder("gates")
	if len(matches) != 1 {
		t.Errorf("ByFounder substring returned %d records, want 1", len(matches))
	}
}

func TestRecord_HasFoundingDate(t *testing.T) {
	record := Record{Name: "Apple"}
	if record.HasFoundingDate() {
		t.Errorf("zero founding date should report absent")
	}

	record.FoundingDate = time.Date(1976, 4, 1, 0, 0, 0, 0, time.UTC)
	if !record.HasFoundingDate() {
		t.Errorf("set founding date should report present")
	}
}
