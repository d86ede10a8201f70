package clickhouse

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/aijay3/HubSpot-Integration-System/internal/domain"
	"github.com/aijay3/HubSpot-Integration-System/internal/ledger"
)

// Repository implements ledger.Store on ClickHouse. Touchpoints and
// transitions are append-only; the ReplacingMergeTree engine collapses
// accidental re-inserts of the same touchpoint id.
type Repository struct {
	client *Client
	log    *zap.Logger

	// seq assignment needs a serialized read-modify-write per contact.
	mu   sync.Mutex
	seqs map[string]int
}

// NewRepository creates a new ClickHouse ledger repository
func NewRepository(client *Client, log *zap.Logger) *Repository {
	return &Repository{
		client: client,
		log:    log,
		seqs:   make(map[string]int),
	}
}

// InitSchema initializes the ClickHouse schema
func (r *Repository) InitSchema(ctx context.Context) error {
	touchpoints := `
	CREATE TABLE IF NOT EXISTS touchpoints (
		touchpoint_id String,
		contact_id String,
		timestamp DateTime64(3),
		touchpoint_type LowCardinality(String),
		utm_source String,
		utm_medium String,
		utm_campaign String,
		utm_term String,
		utm_content String,
		gclid String,
		fbclid String,
		msclkid String,
		li_fat_id String,
		seq Int32
	) ENGINE = ReplacingMergeTree()
	PRIMARY KEY (contact_id, touchpoint_id)
	ORDER BY (contact_id, touchpoint_id)
	PARTITION BY toYYYYMM(timestamp)
	SETTINGS index_granularity = 8192
	`

	transitions := `
	CREATE TABLE IF NOT EXISTS lifecycle_transitions (
		contact_id String,
		from_stage LowCardinality(String),
		to_stage LowCardinality(String),
		value_cents Int64,
		timestamp DateTime64(3)
	) ENGINE = MergeTree()
	ORDER BY (contact_id, timestamp)
	PARTITION BY toYYYYMM(timestamp)
	SETTINGS index_granularity = 8192
	`

	if err := r.client.Conn().Exec(ctx, touchpoints); err != nil {
		return fmt.Errorf("failed to create touchpoints table: %w", err)
	}
	if err := r.client.Conn().Exec(ctx, transitions); err != nil {
		return fmt.Errorf("failed to create lifecycle_transitions table: %w", err)
	}

	r.log.Info("ClickHouse schema initialized successfully")
	return nil
}

// AppendTouchpoint appends a touchpoint to the contact's ledger.
func (r *Repository) AppendTouchpoint(ctx context.Context, tp domain.Touchpoint) (domain.Touchpoint, error) {
	seq, err := r.nextSeq(ctx, tp.ContactID)
	if err != nil {
		return domain.Touchpoint{}, err
	}
	tp.Seq = seq
	tp.ID = ledger.TouchpointID(tp)

	err = r.client.Conn().Exec(ctx, `
		INSERT INTO touchpoints (
			touchpoint_id, contact_id, timestamp, touchpoint_type,
			utm_source, utm_medium, utm_campaign, utm_term, utm_content,
			gclid, fbclid, msclkid, li_fat_id, seq
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		tp.ID, tp.ContactID, tp.Timestamp, string(tp.Type),
		tp.Campaign.Source, tp.Campaign.Medium, tp.Campaign.Campaign,
		tp.Campaign.Term, tp.Campaign.Content,
		tp.ClickIDs.GCLID, tp.ClickIDs.FBCLID, tp.ClickIDs.MSCLKID,
		tp.ClickIDs.LIFatID, int32(tp.Seq),
	)
	if err != nil {
		return domain.Touchpoint{}, fmt.Errorf("failed to insert touchpoint: %w", err)
	}

	return tp, nil
}

// nextSeq issues the contact's next insertion sequence number, seeding
// from the stored maximum on first use.
func (r *Repository) nextSeq(ctx context.Context, contactID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.seqs[contactID]; !ok {
		var max int32
		row := r.client.Conn().QueryRow(ctx,
			`SELECT coalesce(max(seq), -1) FROM touchpoints FINAL WHERE contact_id = ?`, contactID)
		if err := row.Scan(&max); err != nil {
			return 0, fmt.Errorf("failed to read max seq: %w", err)
		}
		r.seqs[contactID] = int(max) + 1
	}

	seq := r.seqs[contactID]
	r.seqs[contactID] = seq + 1
	return seq, nil
}

// Touchpoints returns the contact's touchpoints in ledger order.
func (r *Repository) Touchpoints(ctx context.Context, contactID string) ([]domain.Touchpoint, error) {
	rows, err := r.client.Conn().Query(ctx, `
		SELECT touchpoint_id, contact_id, timestamp, touchpoint_type,
		       utm_source, utm_medium, utm_campaign, utm_term, utm_content,
		       gclid, fbclid, msclkid, li_fat_id, seq
		FROM touchpoints FINAL
		WHERE contact_id = ?
		ORDER BY timestamp ASC, seq ASC`, contactID)
	if err != nil {
		return nil, fmt.Errorf("failed to query touchpoints: %w", err)
	}
	defer rows.Close()

	var out []domain.Touchpoint
	for rows.Next() {
		var tp domain.Touchpoint
		var tpType string
		var seq int32
		if err := rows.Scan(
			&tp.ID, &tp.ContactID, &tp.Timestamp, &tpType,
			&tp.Campaign.Source, &tp.Campaign.Medium, &tp.Campaign.Campaign,
			&tp.Campaign.Term, &tp.Campaign.Content,
			&tp.ClickIDs.GCLID, &tp.ClickIDs.FBCLID, &tp.ClickIDs.MSCLKID,
			&tp.ClickIDs.LIFatID, &seq,
		); err != nil {
			return nil, fmt.Errorf("failed to scan touchpoint row: %w", err)
		}
		tp.Type = domain.TouchpointType(tpType)
		tp.Seq = int(seq)
		out = append(out, tp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating touchpoint rows: %w", err)
	}
	return out, nil
}

// RecordTransition records a lifecycle stage change.
func (r *Repository) RecordTransition(ctx context.Context, tr domain.LifecycleTransition) error {
	err := r.client.Conn().Exec(ctx, `
		INSERT INTO lifecycle_transitions (contact_id, from_stage, to_stage, value_cents, timestamp)
		VALUES (?, ?, ?, ?, ?)`,
		tr.ContactID, string(tr.FromStage), string(tr.ToStage), int64(tr.ValueCents), tr.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("failed to insert transition: %w", err)
	}
	return nil
}

// Transitions returns the contact's stage changes in timestamp order.
func (r *Repository) Transitions(ctx context.Context, contactID string) ([]domain.LifecycleTransition, error) {
	rows, err := r.client.Conn().Query(ctx, `
		SELECT contact_id, from_stage, to_stage, value_cents, timestamp
		FROM lifecycle_transitions
		WHERE contact_id = ?
		ORDER BY timestamp ASC`, contactID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transitions: %w", err)
	}
	defer rows.Close()

	var out []domain.LifecycleTransition
	for rows.Next() {
		var tr domain.LifecycleTransition
		var from, to string
		var cents int64
		if err := rows.Scan(&tr.ContactID, &from, &to, &cents, &tr.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan transition row: %w", err)
		}
		tr.FromStage = domain.LifecycleStage(from)
		tr.ToStage = domain.LifecycleStage(to)
		tr.ValueCents = domain.Cents(cents)
		out = append(out, tr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transition rows: %w", err)
	}
	return out, nil
}

// ContactIDs lists every contact with ledger entries.
func (r *Repository) ContactIDs(ctx context.Context) ([]string, error) {
	rows, err := r.client.Conn().Query(ctx, `
		SELECT DISTINCT contact_id FROM (
			SELECT contact_id FROM touchpoints
			UNION ALL
			SELECT contact_id FROM lifecycle_transitions
		) ORDER BY contact_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query contact ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan contact id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating contact id rows: %w", err)
	}
	return ids, nil
}

// Ping checks if the ClickHouse connection is alive
func (r *Repository) Ping(ctx context.Context) error {
	return r.client.Conn().Ping(ctx)
}

// Close closes the ClickHouse connection
func (r *Repository) Close() error {
	return r.client.Close()
}

var _ ledger.Store = (*Repository)(nil)
