package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"ux-career-assessment/internal/domain"
	"ux-career-assessment/internal/questionbank"
)

// DefaultBankID names the bank row served when none is configured.
const DefaultBankID = "default"

// BankLoader loads a question bank stored as JSONB in question_banks.
type BankLoader struct {
	pool   *pgxpool.Pool
	bankID string
}

func NewBankLoader(pool *pgxpool.Pool, bankID string) *BankLoader {
	if bankID == "" {
		bankID = DefaultBankID
	}
	return &BankLoader{pool: pool, bankID: bankID}
}

func (l *BankLoader) LoadBank(ctx context.Context) ([]domain.Question, error) {
	var raw []byte
	err := l.pool.QueryRow(ctx, `SELECT data FROM question_banks WHERE id=$1`, l.bankID).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrQuestionBankNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load question bank: %w", err)
	}
	var questions []domain.Question
	if err := json.Unmarshal(raw, &questions); err != nil {
		return nil, fmt.Errorf("unmarshal question bank: %w", err)
	}
	if err := questionbank.Validate(questions); err != nil {
		return nil, fmt.Errorf("question bank %s: %w", l.bankID, err)
	}
	return questions, nil
}

// SeedBank stores questions under bankID unless a bank with that ID
// already exists.
func SeedBank(ctx context.Context, pool *pgxpool.Pool, bankID string, questions []domain.Question) error {
	if bankID == "" {
		bankID = DefaultBankID
	}
	if err := questionbank.Validate(questions); err != nil {
		return err
	}
	raw, err := json.Marshal(questions)
	if err != nil {
		return fmt.Errorf("marshal question bank: %w", err)
	}
	_, err = pool.Exec(ctx, `INSERT INTO question_banks (id, data) VALUES ($1, $2) ON CONFLICT (id) DO NOTHING`, bankID, raw)
	if err != nil {
		return fmt.Errorf("seed question bank: %w", err)
	}
	return nil
}
