package logger

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"time"

	"AIOverview_Analysis/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresConnection implements DatabaseConnection on a pgx connection pool
type PostgresConnection struct {
	pool *pgxpool.Pool
}

// NewPostgresConnection opens the analysis log store described by connectionString
func NewPostgresConnection(connectionString string) (DatabaseConnection, error) {
	return newPostgresConnection(connectionString)
}

func newPostgresConnection(connectionString string) (*PostgresConnection, error) {
	config, err := pgxpool.ParseConfig(connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database connection string: %w", err)
	}

	config.MaxConns = 10
	config.MinConns = 2

	// Hosted Postgres drops idle connections silently; recycle them.
	config.MaxConnLifetime = 30 * time.Minute
	config.MaxConnIdleTime = 5 * time.Minute

	// Poolers in transaction mode reject named prepared statements
	config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeExec
	config.ConnConfig.StatementCacheCapacity = 0

	config.ConnConfig.DialFunc = func(ctx context.Context, network, addr string) (net.Conn, error) {
		d := &net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}
		return d.DialContext(ctx, "tcp", addr)
	}

	pool, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		return nil, fmt.Errorf("failed to create database connection pool: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("database ping failed on %s:%d: %w", config.ConnConfig.Host, config.ConnConfig.Port, err)
	}

	conn := &PostgresConnection{pool: pool}
	if err := conn.createTableIfNotExists(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create analysis_logs table: %w", err)
	}

	return conn, nil
}

func (p *PostgresConnection) createTableIfNotExists(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS analysis_logs (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			timestamp TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
			severity VARCHAR(10) CHECK (severity IN ('low', 'medium', 'high')),
			message TEXT NOT NULL,
			operation VARCHAR(100) NOT NULL,
			target_name VARCHAR(255),
			process_id UUID NOT NULL,
			process_type VARCHAR(20) NOT NULL CHECK (process_type IN ('request', 'internal')),
			client_ip INET,
			error_details TEXT,
			metadata JSONB,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		);

		CREATE INDEX IF NOT EXISTS idx_analysis_logs_timestamp ON analysis_logs(timestamp DESC);
		CREATE INDEX IF NOT EXISTS idx_analysis_logs_severity ON analysis_logs(severity) WHERE severity IS NOT NULL;
		CREATE INDEX IF NOT EXISTS idx_analysis_logs_operation ON analysis_logs(operation);
		CREATE INDEX IF NOT EXISTS idx_analysis_logs_process_id ON analysis_logs(process_id);
	`

	_, err := p.pool.Exec(ctx, query)
	return err
}

// InsertLog writes one entry to analysis_logs
func (p *PostgresConnection) InsertLog(ctx context.Context, entry *models.LogEntry) error {
	query := `
		INSERT INTO analysis_logs
		(id, timestamp, severity, message, operation, target_name, process_id, process_type, client_ip, error_details, metadata)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	var metadata interface{}
	if len(entry.Metadata) > 0 {
		jsonBytes, err := json.Marshal(entry.Metadata)
		if err != nil {
			return fmt.Errorf("failed to marshal metadata to JSON: %w", err)
		}
		metadata = string(jsonBytes)
	}

	_, err := p.pool.Exec(
		ctx, query,
		entry.ID,
		entry.Timestamp,
		nullable(string(entry.Severity)),
		entry.Message,
		entry.Operation,
		nullable(entry.TargetName),
		entry.ProcessID,
		string(entry.ProcessType),
		nullable(entry.ClientIP),
		nullable(entry.Error),
		metadata,
	)
	if err != nil {
		return fmt.Errorf("failed to insert analysis log entry: %w", err)
	}

	return nil
}

// nullable maps empty strings to SQL NULL
func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// Ping checks if the database connection is alive
func (p *PostgresConnection) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

// Close releases the pool
func (p *PostgresConnection) Close() error {
	p.pool.Close()
	return nil
}
