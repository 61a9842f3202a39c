package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/gridironlab/playcore/internal/domain/penalty"
	"github.com/gridironlab/playcore/internal/domain/play"
	"github.com/gridironlab/playcore/internal/platform/logging"
	"github.com/gridironlab/playcore/internal/playcache"
)

const (
	importStatusSuccess = "success"
	importStatusFailed  = "failed"

	defaultImportWorkers = 4
	maxImportWorkers     = 16
	regularSeasonWeeks   = 18
)

// ImportService runs the ingest pipeline: fetch raw plays from a provider,
// canonicalize their vocabulary, resolve each record against the play cache,
// then insert unseen plays and reconcile the rest.
type ImportService struct {
	provider       PlayProvider
	plays          play.Repository
	cache          *playcache.Cache
	reconciler     *ReconcileService
	logger         *logging.Logger
	defaultWorkers int
}

func NewImportService(
	provider PlayProvider,
	plays play.Repository,
	cache *playcache.Cache,
	reconciler *ReconcileService,
	logger *logging.Logger,
) *ImportService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ImportService{
		provider:       provider,
		plays:          plays,
		cache:          cache,
		reconciler:     reconciler,
		logger:         logger,
		defaultWorkers: defaultImportWorkers,
	}
}

// SetDefaultWorkers sets the worker count used when a run does not name its
// own. Values below one are ignored.
func (s *ImportService) SetDefaultWorkers(n int) {
	if n > 0 {
		s.defaultWorkers = n
	}
}

type ImportInput struct {
	Years []int
	// Weeks defaults to the full regular season when empty.
	Weeks      []int
	MaxWorkers int
	// IgnoreConflicts forwards to the reconciler; overwrites are audited.
	IgnoreConflicts bool
	// DryRun computes counts without writing plays or changelog rows.
	DryRun bool
}

type ImportResult struct {
	TaskCount    int                `json:"task_count"`
	SuccessCount int                `json:"success_count"`
	FailedCount  int                `json:"failed_count"`
	WorkerCount  int                `json:"worker_count"`
	Fetched      int                `json:"fetched"`
	Inserted     int                `json:"inserted"`
	Updated      int                `json:"updated"`
	FieldsSet    int                `json:"fields_set"`
	Tasks        []ImportTaskResult `json:"tasks"`
}

type ImportTaskResult struct {
	Year       int    `json:"year"`
	Week       int    `json:"week"`
	Status     string `json:"status"`
	Fetched    int    `json:"fetched"`
	Inserted   int    `json:"inserted"`
	Updated    int    `json:"updated"`
	FieldsSet  int    `json:"fields_set"`
	DurationMs int64  `json:"duration_ms"`
	Message    string `json:"message,omitempty"`
}

// Run imports every (year, week) task on a bounded worker pool.
func (s *ImportService) Run(ctx context.Context, in ImportInput) (ImportResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ImportService.Run")
	defer span.End()

	if len(in.Years) == 0 {
		return ImportResult{}, fmt.Errorf("%w: at least one year is required", ErrInvalidInput)
	}

	weeks := in.Weeks
	if len(weeks) == 0 {
		weeks = make([]int, 0, regularSeasonWeeks)
		for week := 1; week <= regularSeasonWeeks; week++ {
			weeks = append(weeks, week)
		}
	}

	// The cache must cover the imported seasons so records resolve against
	// previously stored rows; a no-op when already initialized.
	if err := s.cache.Preload(ctx, playcache.PreloadOptions{Years: in.Years}); err != nil {
		return ImportResult{}, fmt.Errorf("preload cache for import: %w", err)
	}

	type importTask struct {
		year int
		week int
	}
	tasks := make([]importTask, 0, len(in.Years)*len(weeks))
	for _, year := range in.Years {
		for _, week := range weeks {
			tasks = append(tasks, importTask{year: year, week: week})
		}
	}

	workerCount := in.MaxWorkers
	if workerCount <= 0 {
		workerCount = s.defaultWorkers
	}
	if workerCount <= 0 {
		workerCount = defaultImportWorkers
	}
	if workerCount > maxImportWorkers {
		workerCount = maxImportWorkers
	}
	if workerCount > len(tasks) {
		workerCount = len(tasks)
	}

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return ImportResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	result := ImportResult{
		TaskCount:   len(tasks),
		WorkerCount: workerCount,
		Tasks:       make([]ImportTaskResult, 0, len(tasks)),
	}

	var mu sync.Mutex
	var workers sync.WaitGroup
	for _, task := range tasks {
		task := task
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			start := time.Now()
			row := ImportTaskResult{Year: task.year, Week: task.week, Status: importStatusSuccess}

			fetched, inserted, updated, fieldsSet, taskErr := s.importWeek(ctx, task.year, task.week, in)
			row.Fetched = fetched
			row.Inserted = inserted
			row.Updated = updated
			row.FieldsSet = fieldsSet
			row.DurationMs = time.Since(start).Milliseconds()
			if taskErr != nil {
				row.Status = importStatusFailed
				row.Message = taskErr.Error()
			}

			mu.Lock()
			result.Tasks = append(result.Tasks, row)
			result.Fetched += fetched
			result.Inserted += inserted
			result.Updated += updated
			result.FieldsSet += fieldsSet
			if taskErr != nil {
				result.FailedCount++
			} else {
				result.SuccessCount++
			}
			mu.Unlock()
		}); err != nil {
			workers.Done()
			return ImportResult{}, fmt.Errorf("submit import task: %w", err)
		}
	}
	workers.Wait()

	s.logger.InfoContext(ctx, "import finished",
		"tasks", result.TaskCount,
		"failed", result.FailedCount,
		"fetched", result.Fetched,
		"inserted", result.Inserted,
		"updated", result.Updated,
		"dry_run", in.DryRun,
	)
	return result, nil
}

func (s *ImportService) importWeek(ctx context.Context, year, week int, in ImportInput) (fetched, inserted, updated, fieldsSet int, err error) {
	records, err := s.provider.FetchPlays(ctx, year, week)
	if err != nil {
		return 0, 0, 0, 0, fmt.Errorf("fetch plays year=%d week=%d: %w", year, week, err)
	}
	fetched = len(records)

	var unseen []play.Play
	for _, record := range records {
		normalized := normalizeExternalPlay(record)

		resolved, findErr := s.resolve(record)
		if findErr != nil {
			return fetched, inserted, updated, fieldsSet, findErr
		}

		if resolved == nil {
			unseen = append(unseen, normalized)
			inserted++
			continue
		}

		if in.DryRun {
			continue
		}

		changedCount, applyErr := s.reconciler.Apply(ctx, UpdatePlayInput{
			Esbid:           resolved.Esbid,
			PlayID:          resolved.PlayID,
			Row:             resolved,
			Fields:          updateFields(normalized),
			IgnoreConflicts: in.IgnoreConflicts,
		})
		if applyErr != nil {
			return fetched, inserted, updated, fieldsSet, applyErr
		}
		if changedCount > 0 {
			updated++
			fieldsSet += changedCount
		}
	}

	if in.DryRun || len(unseen) == 0 {
		return fetched, inserted, updated, fieldsSet, nil
	}
	if err := s.plays.InsertMany(ctx, unseen); err != nil {
		return fetched, inserted, updated, fieldsSet, fmt.Errorf("insert plays year=%d week=%d: %w", year, week, err)
	}
	return fetched, inserted, updated, fieldsSet, nil
}

// resolve maps a raw record onto a stored play: the exact composite key is
// authoritative; records whose key misses fall back to context matching
// within the same game.
func (s *ImportService) resolve(record ExternalPlay) (*play.Play, error) {
	playID := record.PlayID
	exact, err := s.cache.Find(playcache.Query{Esbid: record.Esbid, PlayID: &playID})
	if err != nil {
		return nil, fmt.Errorf("resolve play: %w", err)
	}
	if exact != nil {
		return exact, nil
	}

	fuzzy, err := s.cache.Find(playcache.Query{
		Esbid:          record.Esbid,
		Qtr:            record.Qtr,
		Dwn:            record.Dwn,
		YardsToGo:      record.YardsToGo,
		Ydl100:         record.Ydl100,
		Off:            record.Off,
		Def:            record.Def,
		PlayType:       record.PlayType,
		GameClockStart: record.GameClockStart,
	})
	if err != nil {
		return nil, fmt.Errorf("resolve play by context: %w", err)
	}
	return fuzzy, nil
}

// normalizeExternalPlay canonicalizes provider vocabulary onto the internal
// enums before the record is diffed or stored.
func normalizeExternalPlay(record ExternalPlay) play.Play {
	penTeam := play.CanonicalTeam(record.PenTeam)
	off := play.CanonicalTeam(record.Off)

	p := play.Play{
		Esbid:          record.Esbid,
		PlayID:         record.PlayID,
		Year:           record.Year,
		Week:           record.Week,
		Qtr:            record.Qtr,
		Dwn:            record.Dwn,
		YardsToGo:      record.YardsToGo,
		Ydl100:         record.Ydl100,
		YdlSide:        record.YdlSide,
		YdlNum:         record.YdlNum,
		Off:            off,
		Def:            play.CanonicalTeam(record.Def),
		PlayType:       record.PlayType,
		GameClockStart: play.NormalizeGameClock(record.GameClockStart),
		GameClockEnd:   play.NormalizeGameClock(record.GameClockEnd),
		Desc:           record.Desc,
		DescNFLFastR:   record.DescNFLFastR,
		KickResult:     play.StandardizeKickResult(record.KickResult),
		TwoPointResult: play.StandardizeTwoPointResult(record.TwoPointResult),
		ScoreType:      play.StandardizeScoreType(record.ScoreType),
		PenTeam:        penTeam,
	}

	if canonical := penalty.CanonicalType(record.Desc, record.DescNFLFastR, penTeam, off); canonical != "" {
		p.PenType = &canonical
	}
	return p
}

// updateFields builds the reconciler input from a normalized play; empty
// values are omitted so they can never erase stored data.
func updateFields(p play.Play) map[string]any {
	fields := make(map[string]any)
	for _, name := range play.FieldNames() {
		if play.ImmutableField(name) {
			continue
		}
		value, ok := p.FieldValue(name)
		if !ok || play.ValueEmpty(value) {
			continue
		}
		fields[name] = value
	}
	// Season bookkeeping comes from the provider call, not the record body.
	delete(fields, "year")
	delete(fields, "week")
	return fields
}
