package store

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/clinicapay/sheetimport/pkg/sheetimport/dedupe"
	"github.com/clinicapay/sheetimport/pkg/sheetimport/models"
	"github.com/google/uuid"
)

// Summary reports the outcome of one import.
type Summary struct {
	RunID    string                `json:"run_id"`
	TenantID string                `json:"clinica_id"`
	Identity models.TenantIdentity `json:"identity"`
	FileName string                `json:"arquivo"`
	Counts   map[models.Kind]int   `json:"registros"`
	Status   string                `json:"status"`
}

// Importer writes parse results to a Store.
type Importer struct {
	store  Store
	logger *slog.Logger
	now    func() time.Time
	newID  func() string
}

// NewImporter returns an importer writing to s. A nil logger discards logs.
func NewImporter(s Store, logger *slog.Logger) *Importer {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Importer{
		store:  s,
		logger: logger,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// Import resolves the tenant, upserts every non-empty kind in a fixed
// order and records the import history entry.
func (im *Importer) Import(ctx context.Context, fileName string, res *models.ParseResult) (*Summary, error) {
	runID := im.newID()
	log := im.logger.With("run_id", runID, "file", fileName)

	tenantID, err := im.store.ResolveTenant(ctx, res.Identity)
	if err != nil {
		return nil, fmt.Errorf("resolve tenant %s: %w", res.Identity.ExternalTaxID, err)
	}

	counts := make(map[models.Kind]int, len(models.AllKinds()))
	total := 0
	for _, kind := range models.AllKinds() {
		records := dedupe.Apply(res.Records[kind])
		if len(records) == 0 {
			counts[kind] = 0
			continue
		}
		n, err := im.store.Upsert(ctx, kind, tenantID, records)
		if err != nil {
			return nil, fmt.Errorf("upsert %s: %w", kind, err)
		}
		counts[kind] = n
		total += n
		log.Debug("upserted records", "kind", kind, "count", n)
	}

	entry := ImportLog{
		ID:         runID,
		TenantID:   tenantID,
		FileName:   fileName,
		TotalRows:  total,
		Status:     StatusDone,
		Counts:     counts,
		MonthRef:   firstMonthRef(res),
		ImportedAt: im.now().UTC(),
	}
	if err := im.store.RecordImport(ctx, entry); err != nil {
		return nil, fmt.Errorf("record import: %w", err)
	}

	log.Info("import finished", "clinica_id", tenantID, "rows", total)
	return &Summary{
		RunID:    runID,
		TenantID: tenantID,
		Identity: res.Identity,
		FileName: fileName,
		Counts:   counts,
		Status:   StatusDone,
	}, nil
}

// firstMonthRef picks the month an import refers to: the first issued
// invoices row, otherwise the first record of any kind.
func firstMonthRef(res *models.ParseResult) *string {
	for _, kind := range models.AllKinds() {
		recs := res.Records[kind]
		if len(recs) == 0 {
			continue
		}
		if m, ok := recs[0].Values()[0].(string); ok && m != "" {
			return &m
		}
	}
	return nil
}
