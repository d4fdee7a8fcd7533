package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound reports a record ID with no row behind it.
var ErrNotFound = errors.New("email record not found")

// EmailRecord is one persisted triage outcome.
type EmailRecord struct {
	ID                int64     `json:"id"`
	EmailText         string    `json:"email_content"`
	Classification    string    `json:"category"`
	SuggestedResponse string    `json:"suggested_response"`
	CreatedAt         time.Time `json:"created_at"`
}

type EmailRecordStore struct {
	pool *pgxpool.Pool
}

func NewEmailRecordStore(pool *pgxpool.Pool) *EmailRecordStore {
	return &EmailRecordStore{pool: pool}
}

func (s *EmailRecordStore) Save(ctx context.Context, rec *EmailRecord) (int64, error) {
	var id int64
	err := s.pool.QueryRow(ctx,
		`INSERT INTO email_records (email_text, classification, suggested_response)
		 VALUES ($1, $2, $3) RETURNING id`,
		rec.EmailText, rec.Classification, rec.SuggestedResponse).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("error saving email record: %w", err)
	}
	rec.ID = id
	return id, nil
}

func (s *EmailRecordStore) List(ctx context.Context) ([]EmailRecord, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, email_text, classification, suggested_response, created_at
		 FROM email_records ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("error listing email records: %w", err)
	}
	defer rows.Close()

	var records []EmailRecord
	for rows.Next() {
		var rec EmailRecord
		if err := rows.Scan(&rec.ID, &rec.EmailText, &rec.Classification, &rec.SuggestedResponse, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning email record: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (s *EmailRecordStore) Get(ctx context.Context, id int64) (*EmailRecord, error) {
	var rec EmailRecord
	err := s.pool.QueryRow(ctx,
		`SELECT id, email_text, classification, suggested_response, created_at
		 FROM email_records WHERE id = $1`, id).
		Scan(&rec.ID, &rec.EmailText, &rec.Classification, &rec.SuggestedResponse, &rec.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error loading email record %d: %w", id, err)
	}
	return &rec, nil
}

func (s *EmailRecordStore) UpdateResponse(ctx context.Context, id int64, response string) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE email_records SET suggested_response = $1 WHERE id = $2`, response, id)
	if err != nil {
		return fmt.Errorf("error updating email record %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *EmailRecordStore) Delete(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM email_records WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting email record %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
