package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/clinicapay/sheetimport/pkg/sheetimport/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var _ Store = (*PostgresStore)(nil)

// PostgresStore writes directly to the database behind the REST store.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore connects a pool to databaseURL.
func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

// Close closes the connection pool.
func (s *PostgresStore) Close() {
	s.pool.Close()
}

func (s *PostgresStore) ResolveTenant(ctx context.Context, id models.TenantIdentity) (string, error) {
	var tenantID string
	err := s.pool.QueryRow(ctx,
		`SELECT id::text FROM clinicas WHERE cnpj = $1 LIMIT 1`,
		id.ExternalTaxID,
	).Scan(&tenantID)
	if err == nil {
		return tenantID, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return "", fmt.Errorf("lookup clinic: %w", err)
	}

	name := id.ExternalTaxID
	if id.ExternalCode != nil {
		name = *id.ExternalCode
	}
	err = s.pool.QueryRow(ctx,
		`INSERT INTO clinicas (cnpj, codigo_clinica, nome) VALUES ($1, $2, $3) RETURNING id::text`,
		id.ExternalTaxID, id.ExternalCode, name,
	).Scan(&tenantID)
	if err != nil {
		return "", fmt.Errorf("create clinic: %w", err)
	}
	return tenantID, nil
}

func (s *PostgresStore) Upsert(ctx context.Context, kind models.Kind, tenantID string, records []models.Record) (int, error) {
	t, err := Table(kind)
	if err != nil {
		return 0, err
	}
	query := UpsertSQL(t)

	batch := &pgx.Batch{}
	for _, r := range records {
		args := append([]any{tenantID}, derefAll(r.Values())...)
		batch.Queue(query, args...)
	}

	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()
	for range records {
		if _, err := br.Exec(); err != nil {
			return 0, fmt.Errorf("upsert %s: %w", t.Name, err)
		}
	}
	return len(records), nil
}

func (s *PostgresStore) RecordImport(ctx context.Context, entry ImportLog) error {
	counts, err := json.Marshal(entry.Counts)
	if err != nil {
		return err
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO importacoes (id, clinica_id, arquivo_nome, total_linhas, status, log, mes_ref, importado_em)
		VALUES ($1, $2, $3, $4, $5, $6::jsonb, $7, $8)`,
		entry.ID, entry.TenantID, entry.FileName, entry.TotalRows, entry.Status,
		string(counts), entry.MonthRef, entry.ImportedAt,
	)
	if err != nil {
		return fmt.Errorf("insert import log: %w", err)
	}
	return nil
}

// UpsertSQL builds the INSERT ... ON CONFLICT statement of a table. The
// first parameter is the tenant id, followed by the table columns.
func UpsertSQL(t TableSpec) string {
	cols := append([]string{TenantColumn}, t.Columns...)
	quoted := make([]string, len(cols))
	params := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = pgx.Identifier{c}.Sanitize()
		params[i] = fmt.Sprintf("$%d", i+1)
	}

	conflict := make(map[string]bool, len(t.Conflict))
	conflictCols := make([]string, len(t.Conflict))
	for i, c := range t.Conflict {
		conflict[c] = true
		conflictCols[i] = pgx.Identifier{c}.Sanitize()
	}

	var sets []string
	for _, c := range t.Columns {
		if !conflict[c] {
			q := pgx.Identifier{c}.Sanitize()
			sets = append(sets, q+" = EXCLUDED."+q)
		}
	}
	action := "DO NOTHING"
	if len(sets) > 0 {
		action = "DO UPDATE SET " + strings.Join(sets, ", ")
	}

	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) ON CONFLICT (%s) %s",
		pgx.Identifier{t.Name}.Sanitize(),
		strings.Join(quoted, ", "),
		strings.Join(params, ", "),
		strings.Join(conflictCols, ", "),
		action,
	)
}

func derefAll(vals []any) []any {
	out := make([]any, len(vals))
	for i, v := range vals {
		out[i] = deref(v)
	}
	return out
}
