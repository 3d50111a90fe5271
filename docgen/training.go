package docgen

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// TaskState captures training task progress states.
type TaskState string

const (
	TaskQueued    TaskState = "queued"
	TaskRunning   TaskState = "running"
	TaskCompleted TaskState = "completed"
	TaskFailed    TaskState = "failed"
)

// TrainingConfig tunes a model training run.
type TrainingConfig struct {
	Epochs            int  `json:"epochs"`
	BatchSize         int  `json:"batch_size"`
	GenerateSynthetic bool `json:"generate_synthetic"`
	MinTemplates      int  `json:"min_templates"`
}

// TrainingResult is the trainer's completion snapshot.
type TrainingResult struct {
	Accuracy  float64        `json:"accuracy,omitempty"`
	Epochs    int            `json:"epochs,omitempty"`
	Templates int            `json:"templates"`
	Details   map[string]any `json:"details,omitempty"`
}

// TaskRecord is a point-in-time snapshot of a training task.
type TaskRecord struct {
	ID          string          `json:"task_id"`
	State       TaskState       `json:"status"`
	Progress    int             `json:"progress"`
	Message     string          `json:"message,omitempty"`
	Templates   int             `json:"templates"`
	Result      *TrainingResult `json:"result,omitempty"`
	Error       string          `json:"error,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	StartedAt   time.Time       `json:"started_at,omitempty"`
	CompletedAt time.Time       `json:"completed_at,omitempty"`
}

// Trainer runs the model training pipeline. It is an external collaborator;
// the rendering core only observes its boundary.
type Trainer interface {
	Train(ctx context.Context, templates []Template, cfg TrainingConfig, progress func(pct int, msg string)) (TrainingResult, error)
}

// TrainerFunc adapts a function to a Trainer.
type TrainerFunc func(ctx context.Context, templates []Template, cfg TrainingConfig, progress func(pct int, msg string)) (TrainingResult, error)

func (f TrainerFunc) Train(ctx context.Context, templates []Template, cfg TrainingConfig, progress func(pct int, msg string)) (TrainingResult, error) {
	return f(ctx, templates, cfg, progress)
}

// DefaultAsyncThreshold is the template count above which training runs
// in the background.
const DefaultAsyncThreshold = 20

// TrainingManager runs training tasks fire-and-forget: Start returns an
// opaque task id before background work begins, and Status looks up a
// progress snapshot by id. The rendering core never blocks on it.
type TrainingManager struct {
	Trainer        Trainer
	Logger         Logger
	AsyncThreshold int
	Now            func() time.Time

	mu    sync.RWMutex
	tasks map[string]TaskRecord
}

// NewTrainingManager creates a manager around a trainer.
func NewTrainingManager(trainer Trainer) *TrainingManager {
	return &TrainingManager{
		Trainer:        trainer,
		AsyncThreshold: DefaultAsyncThreshold,
		Now:            time.Now,
		tasks:          make(map[string]TaskRecord),
	}
}

// Start launches a training run. Batches below the async threshold train
// synchronously and return a completed record; larger batches return a
// queued record immediately and progress in the background.
func (m *TrainingManager) Start(ctx context.Context, templates []Template, cfg TrainingConfig) (TaskRecord, error) {
	if m == nil || m.Trainer == nil {
		return TaskRecord{}, NewError(KindNotImpl, "trainer not configured", nil)
	}
	if len(templates) == 0 {
		return TaskRecord{}, NewError(KindValidation, "at least one template is required", nil)
	}
	if cfg.Epochs <= 0 {
		cfg.Epochs = 50
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 16
	}

	record := TaskRecord{
		ID:        uuid.NewString(),
		State:     TaskQueued,
		Templates: len(templates),
		CreatedAt: m.now(),
	}
	m.put(record)

	threshold := m.AsyncThreshold
	if threshold <= 0 {
		threshold = DefaultAsyncThreshold
	}

	if len(templates) < threshold {
		m.run(ctx, record.ID, templates, cfg)
		return m.snapshot(record.ID)
	}

	go m.run(context.WithoutCancel(ctx), record.ID, templates, cfg)
	return record, nil
}

// Status returns the snapshot for a task id.
func (m *TrainingManager) Status(ctx context.Context, id string) (TaskRecord, error) {
	_ = ctx
	if m == nil {
		return TaskRecord{}, NewError(KindInternal, "training manager is nil", nil)
	}
	return m.snapshot(id)
}

func (m *TrainingManager) run(ctx context.Context, id string, templates []Template, cfg TrainingConfig) {
	m.update(id, func(r *TaskRecord) {
		r.State = TaskRunning
		r.StartedAt = m.now()
	})

	result, err := m.Trainer.Train(ctx, templates, cfg, func(pct int, msg string) {
		m.update(id, func(r *TaskRecord) {
			r.Progress = pct
			r.Message = msg
		})
	})

	if err != nil {
		if m.Logger != nil {
			m.Logger.Errorf("training task %s failed: %v", id, err)
		}
		m.update(id, func(r *TaskRecord) {
			r.State = TaskFailed
			r.Error = err.Error()
			r.CompletedAt = m.now()
		})
		return
	}

	m.update(id, func(r *TaskRecord) {
		r.State = TaskCompleted
		r.Progress = 100
		r.Result = &result
		r.CompletedAt = m.now()
	})
}

func (m *TrainingManager) put(record TaskRecord) {
	m.mu.Lock()
	if m.tasks == nil {
		m.tasks = make(map[string]TaskRecord)
	}
	m.tasks[record.ID] = record
	m.mu.Unlock()
}

func (m *TrainingManager) update(id string, fn func(*TaskRecord)) {
	m.mu.Lock()
	record, ok := m.tasks[id]
	if ok {
		fn(&record)
		m.tasks[id] = record
	}
	m.mu.Unlock()
}

func (m *TrainingManager) snapshot(id string) (TaskRecord, error) {
	m.mu.RLock()
	record, ok := m.tasks[id]
	m.mu.RUnlock()
	if !ok {
		return TaskRecord{}, NewError(KindNotFound, fmt.Sprintf("task %q not found", id), nil)
	}
	return record, nil
}

func (m *TrainingManager) now() time.Time {
	if m.Now == nil {
		return time.Now()
	}
	return m.Now()
}
