package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"backend/internal/client"
	"backend/internal/model"
	"backend/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Per-line posting statuses streamed to observers.
const (
	LineStatusCreating = "creating"
	LineStatusPosted   = "posted"
	LineStatusError    = "error"
)

// runTimeout bounds a detached audit run started via StartNightAudit.
const runTimeout = 30 * time.Minute

// AuditProgressEvent is one tick of the audit progress stream. Indexes are
// zero-based; a stay-level failure before any line is built carries
// LineTotal 0.
type AuditProgressEvent struct {
	RunID     uuid.UUID `json:"run_id"`
	StayID    uuid.UUID `json:"stay_id"`
	StayIndex int       `json:"stay_index"`
	StayTotal int       `json:"stay_total"`
	LineIndex int       `json:"line_index"`
	LineTotal int       `json:"line_total"`
	Status    string    `json:"status"`
}

// --- DTOs ---

type AuditRunResponse struct {
	ID          string   `json:"id"`
	HotelID     string   `json:"hotel_id"`
	AuditDate   string   `json:"audit_date"`
	Status      string   `json:"status"`
	TotalStays  int      `json:"total_stays"`
	PostedStays int      `json:"posted_stays"`
	FailedStays int      `json:"failed_stays"`
	Failures    []string `json:"failures"`
	Committed   bool     `json:"committed"`
	StartedBy   string   `json:"started_by"`
	StartedAt   string   `json:"started_at"`
	FinishedAt  *string  `json:"finished_at"`
}

// --- Interface ---

type AuditService interface {
	// StartNightAudit creates the run record and executes the audit in the
	// background. The returned response carries the run id for polling.
	StartNightAudit(ctx context.Context, hotelID, startedBy string) (AuditRunResponse, error)
	// RunNightAudit executes the audit synchronously and returns the final
	// run state.
	RunNightAudit(ctx context.Context, hotelID, startedBy string) (AuditRunResponse, error)
	GetRun(ctx context.Context, id string) (AuditRunResponse, error)
	ListRuns(ctx context.Context, hotelID string, page, limit int) ([]AuditRunResponse, int64, error)
}

type auditService struct {
	hotelRepo repository.HotelRepository
	runRepo   repository.AuditRunRepository
	charge    ChargeService
	ledger    client.LedgerAPI
	fx        client.FXAPI
	txManager repository.TransactionManager
	hub       interface{ PublishJSON(v interface{}) } // optional progress stream
}

func NewAuditService(
	hotelRepo repository.HotelRepository,
	runRepo repository.AuditRunRepository,
	charge ChargeService,
	ledger client.LedgerAPI,
	fx client.FXAPI,
	txManager repository.TransactionManager,
	hub interface{ PublishJSON(v interface{}) },
) AuditService {
	return &auditService{
		hotelRepo: hotelRepo,
		runRepo:   runRepo,
		charge:    charge,
		ledger:    ledger,
		fx:        fx,
		txManager: txManager,
		hub:       hub,
	}
}

// --- Implementation ---

func (s *auditService) StartNightAudit(ctx context.Context, hotelID, startedBy string) (AuditRunResponse, error) {
	run, hotel, err := s.createRun(ctx, hotelID, startedBy)
	if err != nil {
		return AuditRunResponse{}, err
	}

	go func() {
		runCtx, cancel := context.WithTimeout(context.Background(), runTimeout)
		defer cancel()
		s.execute(runCtx, run, hotel)
	}()

	return toAuditRunResponse(*run), nil
}

func (s *auditService) RunNightAudit(ctx context.Context, hotelID, startedBy string) (AuditRunResponse, error) {
	run, hotel, err := s.createRun(ctx, hotelID, startedBy)
	if err != nil {
		return AuditRunResponse{}, err
	}

	s.execute(ctx, run, hotel)
	return toAuditRunResponse(*run), nil
}

func (s *auditService) GetRun(ctx context.Context, id string) (AuditRunResponse, error) {
	runID, err := uuid.Parse(id)
	if err != nil {
		return AuditRunResponse{}, fmt.Errorf("invalid run id: %w", err)
	}

	run, err := s.runRepo.FindByID(ctx, runID)
	if err != nil {
		return AuditRunResponse{}, fmt.Errorf("failed to fetch audit run: %w", err)
	}

	return toAuditRunResponse(*run), nil
}

func (s *auditService) ListRuns(ctx context.Context, hotelID string, page, limit int) ([]AuditRunResponse, int64, error) {
	hid, err := uuid.Parse(hotelID)
	if err != nil {
		return nil, 0, fmt.Errorf("invalid hotel id: %w", err)
	}

	runs, total, err := s.runRepo.List(ctx, hid, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch audit runs: %w", err)
	}

	res := make([]AuditRunResponse, 0, len(runs))
	for _, r := range runs {
		res = append(res, toAuditRunResponse(r))
	}

	return res, total, nil
}

func (s *auditService) createRun(ctx context.Context, hotelID, startedBy string) (*model.AuditRun, *model.Hotel, error) {
	hid, err := uuid.Parse(hotelID)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid hotel id: %w", err)
	}

	hotel, err := s.hotelRepo.FindByID(ctx, hid)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch hotel: %w", err)
	}

	run := &model.AuditRun{
		HotelID:   hotel.ID,
		AuditDate: hotel.AuditDate,
		Status:    model.RunStatusPreparingFX,
		Failures:  "[]",
		StartedBy: startedBy,
		StartedAt: time.Now(),
	}
	if err := s.runRepo.Create(ctx, run); err != nil {
		return nil, nil, fmt.Errorf("failed to create audit run: %w", err)
	}

	return run, hotel, nil
}

// execute drives one audit run to Completed or Failed. Stays post
// sequentially; FX rates for distinct foreign currencies are fetched
// concurrently up front, one call per currency.
func (s *auditService) execute(ctx context.Context, run *model.AuditRun, hotel *model.Hotel) {
	breakdowns, err := s.charge.BuildBreakdownsForDate(ctx, hotel.ID, hotel.AuditDate)
	if err != nil {
		s.finalizeFailed(ctx, run, []string{err.Error()})
		return
	}

	run.TotalStays = len(breakdowns)

	// An audit with no activity trivially succeeds: no postings, date advances.
	if len(breakdowns) == 0 {
		s.commit(ctx, run, hotel)
		return
	}

	cache := s.prefetchRates(ctx, hotel.BaseCurrency, foreignCurrencies(breakdowns, hotel.BaseCurrency))

	run.Status = model.RunStatusPostingStays
	if err := s.runRepo.Update(ctx, run); err != nil {
		log.Println("WARNING: failed to persist audit run progress:", err)
	}

	var failures []string
	for i, b := range breakdowns {
		if ctx.Err() != nil {
			// Aborted mid-flight: stop submitting, never advance the date.
			// Already-posted stays are not rolled back.
			failures = append(failures, fmt.Sprintf("run aborted: %d of %d stays not submitted", len(breakdowns)-i, len(breakdowns)))
			break
		}

		rate := one
		if b.Currency != hotel.BaseCurrency {
			if blockErr, blocked := cache.blocked[b.Currency]; blocked {
				failures = append(failures, fmt.Sprintf("stay %s: %v", b.StayID, blockErr))
				run.FailedStays++
				s.emit(AuditProgressEvent{RunID: run.ID, StayID: b.StayID, StayIndex: i, StayTotal: len(breakdowns), Status: LineStatusError})
				continue
			}
			rate = cache.rates[b.Currency]
		}

		tx := BuildLedgerTransaction(b, rate, *hotel, hotel.AuditDate)

		for li := range tx.Lines {
			s.emit(AuditProgressEvent{RunID: run.ID, StayID: b.StayID, StayIndex: i, StayTotal: len(breakdowns),
				LineIndex: li, LineTotal: len(tx.Lines), Status: LineStatusCreating})
		}

		status := LineStatusPosted
		if !tx.Balanced() {
			failures = append(failures, fmt.Sprintf("stay %s: transaction out of balance by %s",
				b.StayID, tx.TotalDebit().Sub(tx.TotalCredit()).Abs().StringFixed(2)))
			run.FailedStays++
			status = LineStatusError
		} else if err := s.ledger.PostTransaction(ctx, tx); err != nil {
			failures = append(failures, fmt.Sprintf("stay %s: %v", b.StayID, err))
			run.FailedStays++
			status = LineStatusError
		} else {
			run.PostedStays++
		}

		for li := range tx.Lines {
			s.emit(AuditProgressEvent{RunID: run.ID, StayID: b.StayID, StayIndex: i, StayTotal: len(breakdowns),
				LineIndex: li, LineTotal: len(tx.Lines), Status: status})
		}

		if err := s.runRepo.Update(ctx, run); err != nil {
			log.Println("WARNING: failed to persist audit run progress:", err)
		}
	}

	if len(failures) == 0 {
		s.commit(ctx, run, hotel)
		return
	}
	s.finalizeFailed(ctx, run, failures)
}

// commit advances the business date by exactly one day and finalizes the
// run, atomically. Only reached when every attempted stay posted.
func (s *auditService) commit(ctx context.Context, run *model.AuditRun, hotel *model.Hotel) {
	ctx = context.WithoutCancel(ctx)
	newDate := run.AuditDate.AddDate(0, 0, 1)

	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.hotelRepo.AdvanceAuditDate(txCtx, hotel.ID, newDate, run.StartedBy); err != nil {
			return fmt.Errorf("failed to advance audit date: %w", err)
		}
		now := time.Now()
		run.Status = model.RunStatusCompleted
		run.Committed = true
		run.Failures = "[]"
		run.FinishedAt = &now
		return s.runRepo.Update(txCtx, run)
	})
	if err != nil {
		s.finalizeFailed(ctx, run, []string{err.Error()})
	}
}

func (s *auditService) finalizeFailed(ctx context.Context, run *model.AuditRun, failures []string) {
	// Finalization must survive a canceled run context.
	ctx = context.WithoutCancel(ctx)

	encoded, err := json.Marshal(failures)
	if err != nil {
		encoded = []byte("[]")
	}

	now := time.Now()
	run.Status = model.RunStatusFailed
	run.Committed = false
	run.Failures = string(encoded)
	run.FinishedAt = &now

	if err := s.runRepo.Update(ctx, run); err != nil {
		log.Println("WARNING: failed to finalize audit run:", err)
	}
}

// fxCache holds one audit run's conversion rates. It is built per run and
// passed down the call chain, never shared between runs.
type fxCache struct {
	rates   map[string]decimal.Decimal
	blocked map[string]error
}

// prefetchRates resolves rates for each distinct foreign currency, one call
// per currency, concurrently. A failed lookup blocks that currency's stays;
// the rate is never silently defaulted to 1.
func (s *auditService) prefetchRates(ctx context.Context, baseCurrency string, currencies []string) *fxCache {
	cache := &fxCache{
		rates:   make(map[string]decimal.Decimal, len(currencies)),
		blocked: make(map[string]error),
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	for _, currency := range currencies {
		wg.Add(1)
		go func(currency string) {
			defer wg.Done()
			rate, err := s.fx.GetRate(ctx, currency, baseCurrency)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				cache.blocked[currency] = err
				return
			}
			cache.rates[currency] = rate
		}(currency)
	}
	wg.Wait()

	return cache
}

func (s *auditService) emit(ev AuditProgressEvent) {
	if s.hub != nil {
		s.hub.PublishJSON(ev)
	}
}

// --- Helpers ---

func foreignCurrencies(breakdowns []model.ChargeBreakdown, baseCurrency string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, b := range breakdowns {
		if b.Currency == baseCurrency || seen[b.Currency] {
			continue
		}
		seen[b.Currency] = true
		out = append(out, b.Currency)
	}
	return out
}

func toAuditRunResponse(run model.AuditRun) AuditRunResponse {
	var failures []string
	if run.Failures != "" {
		_ = json.Unmarshal([]byte(run.Failures), &failures)
	}
	if failures == nil {
		failures = []string{}
	}

	res := AuditRunResponse{
		ID:          run.ID.String(),
		HotelID:     run.HotelID.String(),
		AuditDate:   run.AuditDate.Format("2006-01-02"),
		Status:      run.Status,
		TotalStays:  run.TotalStays,
		PostedStays: run.PostedStays,
		FailedStays: run.FailedStays,
		Failures:    failures,
		Committed:   run.Committed,
		StartedBy:   run.StartedBy,
		StartedAt:   run.StartedAt.Format(time.RFC3339),
	}
	if run.FinishedAt != nil {
		s := run.FinishedAt.Format(time.RFC3339)
		res.FinishedAt = &s
	}
	return res
}
