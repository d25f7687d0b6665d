// Package store persists parse results: it resolves the tenant, upserts
// each kind against its composite key and records import history.
package store

import (
	"context"
	"time"

	"github.com/clinicapay/sheetimport/pkg/sheetimport/models"
)

// Store is the persistence backend.
//
//go:generate mockgen -destination=mocks/mock_store.go -package=mocks -source=store.go Store
type Store interface {
	// ResolveTenant returns the id of the tenant with the identity's tax id,
	// creating it when absent.
	ResolveTenant(ctx context.Context, id models.TenantIdentity) (string, error)
	// Upsert writes records of one kind keyed on the table conflict columns
	// and returns how many rows were sent.
	Upsert(ctx context.Context, kind models.Kind, tenantID string, records []models.Record) (int, error)
	// RecordImport appends an import history entry.
	RecordImport(ctx context.Context, entry ImportLog) error
}

// ImportLog is one import history entry.
type ImportLog struct {
	ID         string              `json:"id"`
	TenantID   string              `json:"clinica_id"`
	FileName   string              `json:"arquivo_nome"`
	TotalRows  int                 `json:"total_linhas"`
	Status     string              `json:"status"`
	Counts     map[models.Kind]int `json:"log"`
	MonthRef   *string             `json:"mes_ref"`
	ImportedAt time.Time           `json:"importado_em"`
}

// StatusDone marks a completed import.
const StatusDone = "concluido"
