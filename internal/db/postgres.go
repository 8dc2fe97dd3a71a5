package db

import (
	"context"
	_ "embed"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rawblock/wheel-engine/pkg/models"
)

// schemaSQL is compiled into the binary at build time so schema init works
// inside runtime images that do not carry the .sql file.
//
//go:embed schema.sql
var schemaSQL string

type PostgresStore struct {
	pool *pgxpool.Pool
}

// Connect initializes the connection pool to PostgreSQL using pgx
func Connect(connStr string) (*PostgresStore, error) {
	pool, err := pgxpool.New(context.Background(), connStr)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %v", err)
	}

	if err := pool.Ping(context.Background()); err != nil {
		return nil, fmt.Errorf("ping failed: %v", err)
	}

	log.Println("Successfully connected to PostgreSQL for wheel history")
	return &PostgresStore{pool: pool}, nil
}

// Close gracefully closes the connection pool
func (s *PostgresStore) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// InitSchema executes the embedded schema.sql DDL statements.
func (s *PostgresStore) InitSchema() error {
	_, err := s.pool.Exec(context.Background(), schemaSQL)
	if err != nil {
		return fmt.Errorf("failed to execute schema migrations: %v", err)
	}

	log.Println("Wheel history schema initialized")
	return nil
}

// SaveWheelRecord persists a summary of a completed generation. The ticket
// list itself is deliberately not stored; it is recomputable from the
// request (plus the seed, for balanced wheels).
func (s *PostgresStore) SaveWheelRecord(ctx context.Context, req models.WheelRequest, result *models.WheelResult) error {
	insertSQL := `
		INSERT INTO wheel_history
			(wheel_type, guarantee, pool_size, game_size, ticket_count,
			 full_wheel_count, savings_percent, coverage_score, balance_score)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := s.pool.Exec(ctx, insertSQL,
		req.Config.WheelType,
		guaranteeLabel(req.Config),
		len(req.Pool),
		req.Shape.GameSize,
		result.TicketCount,
		result.FullWheelCount,
		result.SavingsPercent,
		result.CoverageScore,
		result.BalanceScore,
	)
	if err != nil {
		return fmt.Errorf("failed to insert wheel_history row: %v", err)
	}
	return nil
}

// GetRecentWheels returns a page of generation history, newest first, plus
// the total row count for pagination.
func (s *PostgresStore) GetRecentWheels(ctx context.Context, page, limit int) ([]models.WheelRecord, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 500 {
		limit = 50
	}
	offset := (page - 1) * limit

	var totalCount int
	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM wheel_history`).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count wheel_history rows: %v", err)
	}

	rows, err := s.pool.Query(ctx, `
		SELECT id, created_at, wheel_type, COALESCE(guarantee, ''),
		       pool_size, game_size, ticket_count, full_wheel_count,
		       savings_percent, coverage_score, balance_score
		FROM wheel_history
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2;
	`, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query wheel_history: %v", err)
	}
	defer rows.Close()

	var records []models.WheelRecord
	for rows.Next() {
		var rec models.WheelRecord
		var createdAt time.Time
		if err := rows.Scan(&rec.ID, &createdAt, &rec.WheelType, &rec.Guarantee,
			&rec.PoolSize, &rec.GameSize, &rec.TicketCount, &rec.FullWheelCount,
			&rec.SavingsPercent, &rec.CoverageScore, &rec.BalanceScore); err != nil {
			return nil, 0, fmt.Errorf("failed to scan wheel_history row: %v", err)
		}
		rec.CreatedAt = createdAt.UTC().Format(time.RFC3339)
		records = append(records, rec)
	}

	return records, totalCount, rows.Err()
}

// guaranteeLabel renders the guarantee a request asked for in m-if-t form.
func guaranteeLabel(cfg models.WheelConfig) string {
	if cfg.GuaranteeLevel == models.GuaranteeLevelCustom && cfg.CustomGuarantee != nil {
		return fmt.Sprintf("%d-if-%d", cfg.CustomGuarantee.Guaranteed, cfg.CustomGuarantee.MustMatch)
	}
	return cfg.GuaranteeLevel
}
