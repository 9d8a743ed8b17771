package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/ballclash/ballclash-sim/internal/battlesim"
)

// Sweep kinds persisted with a report.
const (
	KindGrid   = "grid"
	KindRandom = "random"
)

// Report is a persisted sweep outcome. Payload holds the serialized
// SweepResult so old reports stay readable after tuning changes.
type Report struct {
	ID            string    `json:"id"`
	Label         string    `json:"label"`
	Kind          string    `json:"kind"`
	Seeds         int       `json:"seeds"`
	Duration      float64   `json:"duration"`
	DT            float64   `json:"dt"`
	ScenarioCount int       `json:"scenario_count"`
	TopScore      float64   `json:"top_score"`
	Payload       []byte    `json:"payload"`
	CreatedAt     time.Time `json:"created_at"`
}

// NewReport wraps a sweep result for persistence.
func NewReport(kind string, result *battlesim.SweepResult) (*Report, error) {
	payload, err := json.Marshal(result)
	if err != nil {
		return nil, err
	}

	topScore := 0.0
	if len(result.TopScenarios) > 0 {
		topScore = result.TopScenarios[0].Score
	}

	return &Report{
		ID:            uuid.NewString(),
		Label:         result.SettingsLabel,
		Kind:          kind,
		Seeds:         result.Seeds,
		Duration:      result.Duration,
		DT:            result.DT,
		ScenarioCount: result.ScenarioCount,
		TopScore:      topScore,
		Payload:       payload,
		CreatedAt:     time.Now().UTC(),
	}, nil
}

// Result decodes the persisted sweep payload.
func (r *Report) Result() (*battlesim.SweepResult, error) {
	var result battlesim.SweepResult
	if err := json.Unmarshal(r.Payload, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ReportStore defines the interface for persistent sweep report storage.
type ReportStore interface {
	// Save inserts a new report.
	Save(ctx context.Context, report *Report) error
	// FindByID looks up a report by ID; nil when absent.
	FindByID(ctx context.Context, id string) (*Report, error)
	// ListRecent returns up to limit reports, newest first.
	ListRecent(ctx context.Context, limit int) ([]*Report, error)
	// Close releases storage resources.
	Close() error
}
