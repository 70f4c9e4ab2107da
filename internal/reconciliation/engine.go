package reconciliation

import (
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"

	"github.com/netair/conciliador/internal/domain"
	"github.com/netair/conciliador/internal/normalize"
)

// Tolerances shared by the classification rules.
const (
	centTolerance      = 0.01 // amounts below this are treated as zero
	reconcileTolerance = 0.10 // decomposition must sum to the statement within this
)

// Config parameterizes an Engine. The chart and markers are treated as
// frozen after construction.
type Config struct {
	Chart      domain.Chart
	CostCenter string
	// InternalAccounts are lowercase substrings identifying the company's own
	// accounts; incoming PIX transfers mentioning one are internal moves, not
	// revenue.
	InternalAccounts []string
}

// Engine classifies statement and settlement rows into ledger entries. It
// holds no per-run state, so a single Engine may serve concurrent requests.
type Engine struct {
	chart      domain.Chart
	costCenter string
	internal   []string
	log        *zap.Logger
}

// NewEngine creates an engine with the given chart and cost center.
func NewEngine(cfg Config, log *zap.Logger) *Engine {
	chart := cfg.Chart
	if chart == nil {
		chart = domain.DefaultChart()
	}
	internal := make([]string, 0, len(cfg.InternalAccounts))
	for _, m := range cfg.InternalAccounts {
		if m = strings.ToLower(strings.TrimSpace(m)); m != "" {
			internal = append(internal, m)
		}
	}
	return &Engine{
		chart:      chart,
		costCenter: cfg.CostCenter,
		internal:   internal,
		log:        log,
	}
}

// Reconcile runs the full reconciliation with the engine's default cost
// center. It fails only when a required report is absent; every per-row
// problem degrades to a skip, a fallback entry or a warning.
func (e *Engine) Reconcile(in *Inputs) (*domain.Result, error) {
	return e.ReconcileWithCostCenter(in, "")
}

// ReconcileWithCostCenter runs the full reconciliation (index build,
// statement pass, settlement forecast pass) stamping entries with the given
// cost center. Empty falls back to the engine default; the override is
// per-run state, so one Engine still serves concurrent requests.
func (e *Engine) ReconcileWithCostCenter(in *Inputs, costCenter string) (*domain.Result, error) {
	if err := in.validate(); err != nil {
		return nil, fmt.Errorf("reconcile: %w", err)
	}
	if costCenter == "" {
		costCenter = e.costCenter
	}

	idx := BuildIndex(in, e.log)

	r := &run{
		engine:     e,
		idx:        idx,
		result:     &domain.Result{},
		multi:      multiOccurrence(in.Statement),
		costCenter: costCenter,
	}

	for _, row := range in.Statement {
		r.classify(row)
	}
	r.forecast(in.Settlement)

	r.result.Summary = domain.Summary{
		Confirmed:    len(r.result.Confirmed),
		Forecast:     len(r.result.Forecast),
		BillPayments: len(r.result.BillPayments),
		Transfers:    len(r.result.Transfers),
		Unclassified: len(r.result.Unclassified),
		ByOrigin:     idx.OriginCounts(),
	}
	return r.result, nil
}

// multiOccurrence returns the operation ids appearing more than once in the
// statement. For those, release-detail records are matched per row by nearest
// net amount instead of being attributed wholesale.
func multiOccurrence(rows []domain.StatementRow) map[string]bool {
	seen := make(map[string]int)
	for _, row := range rows {
		if row.OpID != "" {
			seen[row.OpID]++
		}
	}
	multi := make(map[string]bool)
	for id, n := range seen {
		if n > 1 {
			multi[id] = true
		}
	}
	return multi
}

// run is the per-invocation working state. A fresh run is built for every
// Reconcile call; nothing here is shared.
type run struct {
	engine     *Engine
	idx        *Index
	result     *domain.Result
	multi      map[string]bool
	costCenter string
}

// classify routes one statement row through the ordered rule chain; the
// first matching rule wins.
func (r *run) classify(row domain.StatementRow) {
	if math.Abs(row.NetAmount) < centTolerance {
		return
	}
	sr := stmtRow{
		StatementRow: row,
		label:        strings.ToLower(row.Type),
		desc:         rowDescription(row.OpID, row.Type),
	}
	for _, rule := range statementRules {
		if rule.match(r, sr) {
			rule.apply(r, sr)
			return
		}
	}
	// Unreachable while the chain ends in the catch-all rule.
	r.diagnose(sr)
}

// stmtRow is a statement row prepared for rule evaluation.
type stmtRow struct {
	domain.StatementRow
	label string // lowercased transaction type
	desc  string // entry description
}

func rowDescription(opID, txnType string) string {
	return fmt.Sprintf("%s - %s", opID, truncate(txnType, 50))
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// entry builds a ledger entry with the run's cost center and the row's dates.
// Amounts are rounded to cents at creation.
func (r *run) entry(sr stmtRow, cat domain.Category, amount float64, notes string) domain.LedgerEntry {
	return domain.LedgerEntry{
		OperationID: sr.OpID,
		AccrualDate: sr.Date,
		PaymentDate: sr.Date,
		DueDate:     sr.Date,
		Category:    r.engine.chart.Label(cat),
		Amount:      normalize.Round2(amount),
		CostCenter:  r.costCenter,
		Description: sr.desc,
		Notes:       notes,
	}
}

func (r *run) confirm(e domain.LedgerEntry) {
	r.result.Confirmed = append(r.result.Confirmed, e)
}

func (r *run) billPayment(e domain.LedgerEntry) {
	r.result.BillPayments = append(r.result.BillPayments, e)
}

func (r *run) transfer(e domain.LedgerEntry) {
	e.CostCenter = ""
	r.result.Transfers = append(r.result.Transfers, e)
}

// diagnose emits the catch-all entry and records the raw row for review.
func (r *run) diagnose(sr stmtRow) {
	e := r.entry(sr, domain.CatOther, sr.NetAmount, "Verificar - "+truncate(sr.Type, 50))
	r.confirm(e)
	r.result.Unclassified = append(r.result.Unclassified, sr.StatementRow)
}

// revenueCategory resolves the origin-based revenue account of an operation.
func (r *run) revenueCategory(opID string) domain.Category {
	return domain.RevenueCategory(r.idx.OriginOf(opID))
}

// returnNotes appends the post-sale reason detail, when known, to the notes
// of a return-family entry.
func (r *run) returnNotes(opID, base string) string {
	if reason, ok := r.idx.PostSaleReason[opID]; ok {
		return base + " - " + truncate(reason, 80)
	}
	return base
}

func (r *run) isInternalAccount(label string) bool {
	for _, marker := range r.engine.internal {
		if strings.Contains(label, marker) {
			return true
		}
	}
	return false
}
