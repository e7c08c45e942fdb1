package domain

import (
	"context"
	"encoding/json"
	"testing"
	"time"
)

func TestNewExerciseEntry(t *testing.T) {
	date := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

	tests := []struct {
		name       string
		inputName  string
		inputDate  time.Time
		wantName   string
		wantStamps bool // true when a zero date must be replaced
	}{
		{
			name:      "explicit date kept",
			inputName: "Bench Press",
			inputDate: date,
			wantName:  "Bench Press",
		},
		{
			name:      "name is trimmed",
			inputName: "  Squat \n",
			inputDate: date,
			wantName:  "Squat",
		},
		{
			name:       "zero date is stamped",
			inputName:  "Deadlift",
			inputDate:  time.Time{},
			wantName:   "Deadlift",
			wantStamps: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := NewExerciseEntry(tt.inputName, tt.inputDate, nil)

			if entry.ID == "" {
				t.Error("NewExerciseEntry() must assign an ID")
			}
			if entry.ExerciseName != tt.wantName {
				t.Errorf("ExerciseName = %q, want %q", entry.ExerciseName, tt.wantName)
			}
			if tt.wantStamps {
				if entry.Date.IsZero() {
					t.Error("zero date must be stamped with the current time")
				}
			} else if !entry.Date.Equal(tt.inputDate) {
				t.Errorf("Date = %v, want %v", entry.Date, tt.inputDate)
			}
		})
	}
}

func TestNewExerciseEntryUniqueIDs(t *testing.T) {
	a := NewExerciseEntry("Row", time.Now(), nil)
	b := NewExerciseEntry("Row", time.Now(), nil)
	if a.ID == b.ID {
		t.Errorf("two entries got the same ID %q", a.ID)
	}
}

func TestExerciseSetJSONShape(t *testing.T) {
	weight := 135.0

	tests := []struct {
		name string
		set  ExerciseSet
		want string
	}{
		{
			name: "with weight",
			set:  ExerciseSet{Reps: 10, Weight: &weight, Notes: "warmup"},
			want: `{"reps":10,"weight":135,"notes":"warmup"}`,
		},
		{
			name: "bodyweight encodes weight as null",
			set:  ExerciseSet{Reps: 12},
			want: `{"reps":12,"weight":null,"notes":""}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.set)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			if string(data) != tt.want {
				t.Errorf("marshal = %s, want %s", data, tt.want)
			}
		})
	}
}

func TestCorrelationID(t *testing.T) {
	ctx := context.Background()

	minted := CorrelationID(ctx)
	if minted == "" {
		t.Fatal("CorrelationID must mint an ID when the context carries none")
	}

	ctx = WithCorrelationID(ctx, "req-123")
	if got := CorrelationID(ctx); got != "req-123" {
		t.Errorf("CorrelationID = %q, want %q", got, "req-123")
	}

	// Empty values count as absent.
	ctx = WithCorrelationID(context.Background(), "")
	if got := CorrelationID(ctx); got == "" {
		t.Error("empty correlation ID must be replaced with a minted one")
	}
}
