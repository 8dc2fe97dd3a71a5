// Package runner executes wheel generations off the request thread. A worst
// case generation at the resource ceilings runs for seconds, so the API
// offers an asynchronous lane: submit a job, poll its progress or watch the
// websocket stream for the completion alert.
package runner

import (
	"context"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rawblock/wheel-engine/internal/wheel"
	"github.com/rawblock/wheel-engine/pkg/models"
)

// Job statuses reported through JobProgress.
const (
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// WheelAlert is emitted through the alert callback when a job finishes,
// successfully or not.
type WheelAlert struct {
	JobID          string `json:"jobId"`
	Status         string `json:"status"`
	WheelType      string `json:"wheelType"`
	TicketCount    int    `json:"ticketCount,omitempty"`
	SavingsPercent int    `json:"savingsPercent,omitempty"`
	CoverageScore  int    `json:"coverageScore,omitempty"`
	Error          string `json:"error,omitempty"`
	Timestamp      string `json:"timestamp"`
}

// JobProgress is a job's externally visible state.
type JobProgress struct {
	JobID      string              `json:"jobId"`
	Status     string              `json:"status"`
	WheelType  string              `json:"wheelType"`
	StartedAt  string              `json:"startedAt"`
	FinishedAt string              `json:"finishedAt,omitempty"`
	Result     *models.WheelResult `json:"result,omitempty"`
	Error      string              `json:"error,omitempty"`
}

type job struct {
	id        string
	wheelType string
	startedAt time.Time

	mu         sync.RWMutex
	status     string
	finishedAt time.Time
	result     *models.WheelResult
	err        error
}

// Runner tracks background generation jobs by ID. Generation itself is a
// pure function over immutable inputs, so jobs never share state; the runner
// only bounds how many run at once.
type Runner struct {
	limits    wheel.Limits
	alertFunc func(WheelAlert) // optional completion broadcast
	maxActive int64

	active atomic.Int64

	mu   sync.RWMutex
	jobs map[string]*job
}

// New creates a runner allowing at most maxActive concurrent generations.
func New(limits wheel.Limits, maxActive int, alertFunc func(WheelAlert)) *Runner {
	if maxActive < 1 {
		maxActive = 1
	}
	return &Runner{
		limits:    limits,
		alertFunc: alertFunc,
		maxActive: int64(maxActive),
		jobs:      make(map[string]*job),
	}
}

// Start validates capacity, registers a job and launches the generation in
// the background. It returns the job ID immediately; ok is false when the
// runner is saturated.
func (r *Runner) Start(ctx context.Context, req models.WheelRequest) (string, bool) {
	if r.active.Load() >= r.maxActive {
		log.Printf("[Runner] %d generations already in flight, refusing new job", r.active.Load())
		return "", false
	}
	r.active.Add(1)

	j := &job{
		id:        uuid.NewString(),
		wheelType: req.Config.WheelType,
		startedAt: time.Now().UTC(),
		status:    StatusRunning,
	}

	r.mu.Lock()
	r.jobs[j.id] = j
	r.mu.Unlock()

	go func() {
		defer r.active.Add(-1)

		select {
		case <-ctx.Done():
			r.finish(j, nil, ctx.Err())
			return
		default:
		}

		log.Printf("[Runner] Job %s started: %s wheel, pool of %d, ticket size %d",
			j.id, req.Config.WheelType, len(req.Pool), req.Shape.GameSize)

		result, err := wheel.Generate(req.Pool, req.Shape, req.Config, r.limits, nil)
		r.finish(j, result, err)
	}()

	return j.id, true
}

func (r *Runner) finish(j *job, result *models.WheelResult, err error) {
	j.mu.Lock()
	j.finishedAt = time.Now().UTC()
	j.result = result
	j.err = err
	if err != nil {
		j.status = StatusFailed
	} else {
		j.status = StatusCompleted
	}
	status := j.status
	j.mu.Unlock()

	alert := WheelAlert{
		JobID:     j.id,
		Status:    status,
		WheelType: j.wheelType,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	if err != nil {
		alert.Error = err.Error()
		log.Printf("[Runner] Job %s failed: %v", j.id, err)
	} else {
		alert.TicketCount = result.TicketCount
		alert.SavingsPercent = result.SavingsPercent
		alert.CoverageScore = result.CoverageScore
		log.Printf("[Runner] Job %s completed: %d tickets, %d%% savings, coverage %d",
			j.id, result.TicketCount, result.SavingsPercent, result.CoverageScore)
	}

	if r.alertFunc != nil {
		r.alertFunc(alert)
	}
}

// Progress returns a job's current state by ID.
func (r *Runner) Progress(id string) (JobProgress, bool) {
	r.mu.RLock()
	j, ok := r.jobs[id]
	r.mu.RUnlock()
	if !ok {
		return JobProgress{}, false
	}

	j.mu.RLock()
	defer j.mu.RUnlock()

	p := JobProgress{
		JobID:     j.id,
		Status:    j.status,
		WheelType: j.wheelType,
		StartedAt: j.startedAt.Format(time.RFC3339),
	}
	if !j.finishedAt.IsZero() {
		p.FinishedAt = j.finishedAt.Format(time.RFC3339)
	}
	if j.result != nil {
		p.Result = j.result
	}
	if j.err != nil {
		p.Error = j.err.Error()
	}
	return p, true
}

// ActiveCount reports how many generations are currently in flight.
func (r *Runner) ActiveCount() int64 {
	return r.active.Load()
}
