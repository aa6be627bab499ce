// Package etl implements the batch pipeline: three extract-transform-load
// stages, an upload stage and a cleanup stage, chained strictly in order.
// Every failure is fatal to its stage and halts the chain; retries belong
// to the scheduler.
package etl

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"fakestore-etl/internal/logger"
	"fakestore-etl/internal/model"
	"fakestore-etl/internal/storage"
	apperrors "fakestore-etl/pkg/errors"
)

// APIClient is the store API at its interface boundary.
type APIClient interface {
	FetchUsers(ctx context.Context) ([]model.RawUser, error)
	FetchProducts(ctx context.Context) ([]model.RawProduct, error)
	FetchCarts(ctx context.Context) ([]model.RawCart, error)
}

type StageStatus string

const (
	StagePending StageStatus = "pending"
	StageSuccess StageStatus = "success"
	StageFailed  StageStatus = "failed"
	StageSkipped StageStatus = "skipped"
)

// TriggerRule gates a stage's execution. The default rule runs a stage
// when its predecessor succeeded; all_success requires every earlier
// stage to have succeeded. For cleanup the distinction matters: one
// failed upstream stage must suppress it even without a direct edge.
type TriggerRule string

const (
	TriggerDefault    TriggerRule = "default"
	TriggerAllSuccess TriggerRule = "all_success"
)

const StateAllSucceeded = "all-succeeded"

type stage struct {
	name string
	rule TriggerRule
	run  func(ctx context.Context, run *runState) error
}

// runState carries per-run data between stages: the calendar date naming
// files and keys, and the scratch listing snapshot shared by upload and
// cleanup.
type runState struct {
	day   time.Time
	files []string
}

type StageResult struct {
	Name     string        `json:"name"`
	Status   StageStatus   `json:"status"`
	Error    string        `json:"error,omitempty"`
	Duration time.Duration `json:"duration"`
}

// Result is the terminal record of one run: "all-succeeded", or
// "failed-at-stage-N" with the failing stage marked and later stages
// skipped.
type Result struct {
	State      string        `json:"state"`
	Stages     []StageResult `json:"stages"`
	StartedAt  time.Time     `json:"started_at"`
	FinishedAt time.Time     `json:"finished_at"`
}

type Clock func() time.Time

type Pipeline struct {
	client  APIClient
	store   storage.Storage
	scratch string
	now     Clock
	log     zerolog.Logger
}

func New(client APIClient, store storage.Storage, scratchDir string) *Pipeline {
	return &Pipeline{
		client:  client,
		store:   store,
		scratch: scratchDir,
		now:     time.Now,
		log:     logger.Get(),
	}
}

// WithClock overrides the run clock.
func (p *Pipeline) WithClock(now Clock) *Pipeline {
	p.now = now
	return p
}

// Run executes the stage chain for one scheduler trigger. The returned
// error is the failing stage's error, nil when every stage succeeded; the
// Result records the terminal state either way.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	stages := []stage{
		{name: "etl_users", rule: TriggerDefault, run: p.etlUsers},
		{name: "etl_products", rule: TriggerDefault, run: p.etlProducts},
		{name: "etl_carts", rule: TriggerDefault, run: p.etlCarts},
		{name: "send_to_s3", rule: TriggerDefault, run: p.sendToS3},
		{name: "delete_local_files", rule: TriggerAllSuccess, run: p.deleteLocalFiles},
	}

	started := p.now()
	state := &runState{day: started}
	result := &Result{StartedAt: started}

	var runErr error
	failedAt := -1

	for i, st := range stages {
		sr := StageResult{Name: st.name, Status: StagePending}

		skip := failedAt >= 0
		if st.rule == TriggerAllSuccess && !allSucceeded(result.Stages) {
			skip = true
		}
		if skip {
			sr.Status = StageSkipped
			result.Stages = append(result.Stages, sr)
			p.log.Warn().Str("stage", st.name).Msg("Stage skipped, upstream stage did not succeed")
			continue
		}

		stageStart := p.now()
		err := st.run(ctx, state)
		sr.Duration = p.now().Sub(stageStart)

		if err != nil {
			sr.Status = StageFailed
			sr.Error = err.Error()
			failedAt = i
			runErr = err
			p.log.Error().Err(err).Str("stage", st.name).Msg("Stage failed")
		} else {
			sr.Status = StageSuccess
			p.log.Info().Str("stage", st.name).Dur("duration", sr.Duration).Msg("Stage completed")
		}
		result.Stages = append(result.Stages, sr)
	}

	result.FinishedAt = p.now()
	if failedAt >= 0 {
		result.State = fmt.Sprintf("failed-at-stage-%d", failedAt+1)
	} else {
		result.State = StateAllSucceeded
	}

	p.log.Info().
		Str("state", result.State).
		Dur("duration", result.FinishedAt.Sub(result.StartedAt)).
		Msg("Pipeline run finished")

	return result, runErr
}

func allSucceeded(stages []StageResult) bool {
	for _, sr := range stages {
		if sr.Status != StageSuccess {
			return false
		}
	}
	return true
}

func (p *Pipeline) etlUsers(ctx context.Context, run *runState) error {
	raw, err := p.client.FetchUsers(ctx)
	if err != nil {
		return err
	}
	rows, err := TransformUsers(raw, p.now())
	if err != nil {
		return err
	}
	path, err := WriteTable(p.scratch, model.DatasetUsers, run.day, rows)
	if err != nil {
		return err
	}
	p.log.Info().Str("path", path).Int("rows", len(rows)).Msg("Users table written")
	return nil
}

func (p *Pipeline) etlProducts(ctx context.Context, run *runState) error {
	raw, err := p.client.FetchProducts(ctx)
	if err != nil {
		return err
	}
	rows, err := TransformProducts(raw, p.now())
	if err != nil {
		return err
	}
	path, err := WriteTable(p.scratch, model.DatasetProducts, run.day, rows)
	if err != nil {
		return err
	}
	p.log.Info().Str("path", path).Int("rows", len(rows)).Msg("Products table written")
	return nil
}

func (p *Pipeline) etlCarts(ctx context.Context, run *runState) error {
	raw, err := p.client.FetchCarts(ctx)
	if err != nil {
		return err
	}
	rows, err := TransformCarts(raw, p.now())
	if err != nil {
		return err
	}
	path, err := WriteTable(p.scratch, model.DatasetCarts, run.day, rows)
	if err != nil {
		return err
	}
	p.log.Info().Str("path", path).Int("rows", len(rows)).Msg("Cart lines table written")
	return nil
}

// sendToS3 snapshots the scratch listing once, then uploads each file
// under a date-prefixed key. The first failed upload aborts the stage;
// already-uploaded objects stay in the bucket. Cleanup later operates on
// the same snapshot, never on files written after it was taken.
func (p *Pipeline) sendToS3(ctx context.Context, run *runState) error {
	entries, err := os.ReadDir(p.scratch)
	if err != nil {
		return apperrors.UploadError{File: p.scratch, Err: err}
	}
	run.files = run.files[:0]
	for _, entry := range entries {
		if !entry.IsDir() {
			run.files = append(run.files, entry.Name())
		}
	}

	for _, name := range run.files {
		key := model.ObjectKey(run.day, name)
		if err := p.store.UploadFile(ctx, key, filepath.Join(p.scratch, name)); err != nil {
			return apperrors.UploadError{File: name, Err: err}
		}
		p.log.Info().Str("file", name).Str("key", key).Msg("File sent to object storage")
	}
	return nil
}

// deleteLocalFiles removes every file the upload stage attempted. A
// failed delete is fatal but nothing undoes the uploads; leftovers stay
// on scratch storage for inspection.
func (p *Pipeline) deleteLocalFiles(_ context.Context, run *runState) error {
	for _, name := range run.files {
		if err := os.Remove(filepath.Join(p.scratch, name)); err != nil {
			return apperrors.CleanupError{File: name, Err: err}
		}
		p.log.Debug().Str("file", name).Msg("Scratch file deleted")
	}
	return nil
}
