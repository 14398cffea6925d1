package core

import (
	"errors"
	"testing"
)

func TestValidateRecord(t *testing.T) {
	tests := []struct {
		name    string
		record  *Record
		wantErr error
	}{
		{
			name:   "valid record",
			record: &Record{Name: "Apple", Founders: []string{"Steve Jobs"}},
		},
		{
			name:   "valid record without founders or date",
			record: &Record{Name: "Apple"},
		},
		{
			name:    "nil record",
			record:  nil,
			wantErr: ErrInvalidRecord,
		},
		{
			name:    "empty name",
			record:  &Record{Name: ""},
			wantErr: ErrEmptyName,
		},
		{
			name:    "whitespace-only name",
			record:  &Record{Name: "   \t"},
			wantErr: ErrEmptyName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRecord(tt.record)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("ValidateRecord() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateRecord() error = %v, want %v", err, tt.wantErr)
			}
			if !errors.Is(err, ErrInvalidRecord) {
				t.Errorf("validation errors must wrap ErrInvalidRecord, got %v", err)
			}
		})
	}
}
