package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/clinicapay/sheetimport/pkg/sheetimport/models"
)

const (
	tenantTable  = "clinicas"
	historyTable = "importacoes"
)

// StatusError is a non-2xx reply from the REST store.
type StatusError struct {
	Table string
	Code  int
	Body  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("store %s: status %d: %s", e.Table, e.Code, e.Body)
}

var _ Store = (*RESTStore)(nil)

// RESTStore talks to a PostgREST endpoint (/rest/v1).
type RESTStore struct {
	baseURL string
	key     string
	client  *http.Client
}

// NewRESTStore returns a store for baseURL authenticated with serviceKey.
// A nil client uses http.DefaultClient.
func NewRESTStore(baseURL, serviceKey string, client *http.Client) *RESTStore {
	if client == nil {
		client = http.DefaultClient
	}
	return &RESTStore{baseURL: baseURL, key: serviceKey, client: client}
}

func (s *RESTStore) ResolveTenant(ctx context.Context, id models.TenantIdentity) (string, error) {
	q := url.Values{}
	q.Set("cnpj", "eq."+id.ExternalTaxID)
	q.Set("select", "id")
	var found []map[string]any
	if err := s.do(ctx, http.MethodGet, tenantTable, q, nil, "", &found); err != nil {
		return "", err
	}
	if len(found) > 0 {
		return idString(found[0]["id"])
	}

	name := id.ExternalTaxID
	if id.ExternalCode != nil {
		name = *id.ExternalCode
	}
	payload := map[string]any{
		"cnpj":           id.ExternalTaxID,
		"codigo_clinica": id.ExternalCode,
		"nome":           name,
	}
	var created []map[string]any
	if err := s.do(ctx, http.MethodPost, tenantTable, nil, payload, "return=representation", &created); err != nil {
		return "", err
	}
	if len(created) == 0 {
		return "", fmt.Errorf("store %s: create returned no rows", tenantTable)
	}
	return idString(created[0]["id"])
}

func (s *RESTStore) Upsert(ctx context.Context, kind models.Kind, tenantID string, records []models.Record) (int, error) {
	t, err := Table(kind)
	if err != nil {
		return 0, err
	}
	rows := make([]map[string]any, len(records))
	for i, r := range records {
		rows[i] = t.Row(tenantID, r)
	}
	q := url.Values{}
	q.Set("on_conflict", t.OnConflict())
	if err := s.do(ctx, http.MethodPost, t.Name, q, rows, "resolution=merge-duplicates", nil); err != nil {
		return 0, err
	}
	return len(rows), nil
}

func (s *RESTStore) RecordImport(ctx context.Context, entry ImportLog) error {
	return s.do(ctx, http.MethodPost, historyTable, nil, entry, "", nil)
}

func (s *RESTStore) do(ctx context.Context, method, table string, q url.Values, body any, prefer string, out any) error {
	u := s.baseURL + "/rest/v1/" + table
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	var rdr io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s payload: %w", table, err)
		}
		rdr = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, rdr)
	if err != nil {
		return err
	}
	req.Header.Set("apikey", s.key)
	req.Header.Set("Authorization", "Bearer "+s.key)
	req.Header.Set("Content-Type", "application/json")
	if prefer != "" {
		req.Header.Set("Prefer", prefer)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("store %s: %w", table, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusNoContent {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &StatusError{Table: table, Code: resp.StatusCode, Body: string(msg)}
	}
	if out == nil {
		return nil
	}
	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", table, err)
	}
	return nil
}

func idString(v any) (string, error) {
	switch id := v.(type) {
	case string:
		return id, nil
	case json.Number:
		return id.String(), nil
	case nil:
		return "", fmt.Errorf("store %s: row without id", tenantTable)
	}
	return fmt.Sprint(v), nil
}
