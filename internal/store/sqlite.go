package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	derrors "signaldesk/internal/errors"
	"signaldesk/internal/models"
)

// SQLiteStore implements IdeaStore using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite-based idea store.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	s := &SQLiteStore{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS ideas (
		id TEXT PRIMARY KEY,
		symbol TEXT NOT NULL,
		direction TEXT NOT NULL,
		asset_type TEXT NOT NULL,
		source TEXT NOT NULL,
		status TEXT,
		outcome_status TEXT,
		timestamp DATETIME,
		expiry_date DATETIME,
		exit_by DATETIME,
		entry_price REAL NOT NULL DEFAULT 0,
		target_price REAL NOT NULL DEFAULT 0,
		stop_loss REAL NOT NULL DEFAULT 0,
		current_price REAL NOT NULL DEFAULT 0,
		risk_reward REAL NOT NULL DEFAULT 0,
		confidence REAL NOT NULL DEFAULT 0,
		hit_probability REAL NOT NULL DEFAULT 0,
		probability_band TEXT,
		catalyst TEXT,
		is_day_trade INTEGER NOT NULL DEFAULT 0,
		is_lotto_play INTEGER NOT NULL DEFAULT 0,
		realized_pnl REAL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_ideas_symbol ON ideas(symbol);
	CREATE INDEX IF NOT EXISTS idx_ideas_timestamp ON ideas(timestamp);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("%w: %v", derrors.ErrDatabaseError, err)
	}
	return nil
}

const ideaColumns = `id, symbol, direction, asset_type, source, status, outcome_status,
	timestamp, expiry_date, exit_by, entry_price, target_price, stop_loss,
	current_price, risk_reward, confidence, hit_probability, probability_band,
	catalyst, is_day_trade, is_lotto_play, realized_pnl`

// SaveIdeas upserts a batch of ideas, sanitizing each record at the
// boundary: symbol uppercased, raw status strings trimmed, missing IDs
// assigned. Returns the number of records written.
func (s *SQLiteStore) SaveIdeas(ctx context.Context, ideas []models.TradeIdea) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("%w: begin: %v", derrors.ErrDatabaseError, err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO ideas (`+ideaColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			symbol=excluded.symbol, direction=excluded.direction,
			asset_type=excluded.asset_type, source=excluded.source,
			status=excluded.status, outcome_status=excluded.outcome_status,
			timestamp=excluded.timestamp, expiry_date=excluded.expiry_date,
			exit_by=excluded.exit_by, entry_price=excluded.entry_price,
			target_price=excluded.target_price, stop_loss=excluded.stop_loss,
			current_price=excluded.current_price, risk_reward=excluded.risk_reward,
			confidence=excluded.confidence, hit_probability=excluded.hit_probability,
			probability_band=excluded.probability_band, catalyst=excluded.catalyst,
			is_day_trade=excluded.is_day_trade, is_lotto_play=excluded.is_lotto_play,
			realized_pnl=excluded.realized_pnl`)
	if err != nil {
		return 0, fmt.Errorf("%w: prepare: %v", derrors.ErrDatabaseError, err)
	}
	defer stmt.Close()

	written := 0
	for _, idea := range ideas {
		idea = sanitize(idea)
		if _, err := stmt.ExecContext(ctx,
			idea.ID, idea.Symbol, string(idea.Direction), string(idea.AssetType),
			string(idea.Source), idea.Status, idea.OutcomeStatus,
			nullTime(idea.Timestamp), nullTimePtr(idea.ExpiryDate), nullTimePtr(idea.ExitBy),
			idea.EntryPrice, idea.TargetPrice, idea.StopLoss, idea.CurrentPrice,
			idea.RiskRewardRatio, idea.ConfidenceScore, idea.TargetHitProbability,
			idea.ProbabilityBand, idea.Catalyst,
			boolInt(idea.IsDayTrade), boolInt(idea.IsLottoPlay), idea.RealizedPnL,
		); err != nil {
			return written, fmt.Errorf("%w: upsert %s: %v", derrors.ErrDatabaseError, idea.Symbol, err)
		}
		written++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("%w: commit: %v", derrors.ErrDatabaseError, err)
	}
	return written, nil
}

// sanitize applies the one-time ingestion normalization. Raw status strings
// are kept as received (reads normalize defensively), but whitespace and
// symbol casing are fixed here.
func sanitize(idea models.TradeIdea) models.TradeIdea {
	if idea.ID == "" {
		idea.ID = uuid.NewString()
	}
	idea.Symbol = strings.ToUpper(strings.TrimSpace(idea.Symbol))
	idea.Status = strings.TrimSpace(idea.Status)
	idea.OutcomeStatus = strings.TrimSpace(idea.OutcomeStatus)
	return idea
}

// ListIdeas returns all stored ideas, newest first.
func (s *SQLiteStore) ListIdeas(ctx context.Context) ([]models.TradeIdea, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+ideaColumns+` FROM ideas ORDER BY timestamp DESC`)
	if err != nil {
		return nil, fmt.Errorf("%w: query ideas: %v", derrors.ErrDatabaseError, err)
	}
	defer rows.Close()

	var ideas []models.TradeIdea
	for rows.Next() {
		idea, err := scanIdea(rows)
		if err != nil {
			return nil, err
		}
		ideas = append(ideas, idea)
	}
	return ideas, rows.Err()
}

// GetIdea returns a single idea by ID.
func (s *SQLiteStore) GetIdea(ctx context.Context, id string) (*models.TradeIdea, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+ideaColumns+` FROM ideas WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("%w: query idea: %v", derrors.ErrDatabaseError, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, derrors.ErrDataNotFound
	}
	idea, err := scanIdea(rows)
	if err != nil {
		return nil, err
	}
	return &idea, nil
}

func scanIdea(rows *sql.Rows) (models.TradeIdea, error) {
	var idea models.TradeIdea
	var status, outcome, band, catalyst sql.NullString
	var ts, expiry, exitBy sql.NullTime
	var dayTrade, lotto int
	var pnl sql.NullFloat64

	if err := rows.Scan(
		&idea.ID, &idea.Symbol, &idea.Direction, &idea.AssetType, &idea.Source,
		&status, &outcome, &ts, &expiry, &exitBy,
		&idea.EntryPrice, &idea.TargetPrice, &idea.StopLoss, &idea.CurrentPrice,
		&idea.RiskRewardRatio, &idea.ConfidenceScore, &idea.TargetHitProbability,
		&band, &catalyst, &dayTrade, &lotto, &pnl,
	); err != nil {
		return idea, fmt.Errorf("%w: scan idea: %v", derrors.ErrDatabaseError, err)
	}

	idea.Status = status.String
	idea.OutcomeStatus = outcome.String
	idea.ProbabilityBand = band.String
	idea.Catalyst = catalyst.String
	if ts.Valid {
		idea.Timestamp = ts.Time
	}
	if expiry.Valid {
		t := expiry.Time
		idea.ExpiryDate = &t
	}
	if exitBy.Valid {
		t := exitBy.Time
		idea.ExitBy = &t
	}
	idea.IsDayTrade = dayTrade == 1
	idea.IsLottoPlay = lotto == 1
	if pnl.Valid {
		v := pnl.Float64
		idea.RealizedPnL = &v
	}
	return idea, nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func nullTime(t time.Time) interface{} {
	if t.IsZero() {
		return nil
	}
	return t
}

func nullTimePtr(t *time.Time) interface{} {
	if t == nil || t.IsZero() {
		return nil
	}
	return *t
}
