package lab

import (
	"context"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/nmoreaux/sqlab/internal/database"
	"github.com/nmoreaux/sqlab/internal/session"
)

const (
	// MaxRows is the ceiling on returned and displayed rows per query.
	MaxRows = 1000

	// QueryTimeout is the advisory per-query budget. The service does
	// not enforce it; the calling context is expected to carry a
	// deadline and abort long-running queries.
	QueryTimeout = 10 * time.Second
)

// Service runs lab queries and introspects schemas over the session
// registry. It never opens or closes database handles.
type Service struct {
	registry *session.Registry
	log      *zap.Logger
}

// NewService creates a lab service over a session registry.
func NewService(registry *session.Registry, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{registry: registry, log: log}
}

// ExecuteQuery runs a read-only SQL statement against a session's
// database. Only SELECT statements are accepted (leading-keyword
// check, not a parse) and results are capped at MaxRows. Engine errors
// come back sanitized, never as raw internal codes.
func (s *Service) ExecuteQuery(ctx context.Context, sessionID, stmt string) (*database.QueryResult, error) {
	drv, ok := s.registry.Resolve(sessionID)
	if !ok {
		return nil, &NotFoundError{SessionID: sessionID}
	}

	trimmed := strings.TrimSpace(stmt)
	if !isSelect(trimmed) {
		return nil, &ValidationError{Reason: "only SELECT statements are allowed in the lab"}
	}

	rewritten, limited := enforceLimit(trimmed, MaxRows)

	result, err := drv.Query(ctx, rewritten)
	if err != nil {
		s.log.Warn("query failed",
			zap.String("session", sessionID),
			zap.Error(err),
		)
		return nil, &ExecutionError{Message: sanitizeEngineError(err), Cause: err}
	}

	// A query can hit the cap organically even when its own LIMIT was
	// within bounds.
	if result.RowCount >= MaxRows {
		limited = true
	}
	result.Limited = limited

	s.log.Info("query executed",
		zap.String("session", sessionID),
		zap.Int("rows", result.RowCount),
		zap.Duration("duration", result.Duration),
		zap.Bool("limited", result.Limited),
	)
	return result, nil
}

// Schemas introspects all user tables of a session's database,
// ordered by table name. Nothing is cached; every call re-reads the
// catalog.
func (s *Service) Schemas(ctx context.Context, sessionID string) ([]database.TableSchema, error) {
	drv, ok := s.registry.Resolve(sessionID)
	if !ok {
		return nil, &NotFoundError{SessionID: sessionID}
	}

	tables, err := drv.Tables(ctx)
	if err != nil {
		return nil, err
	}

	schemas := make([]database.TableSchema, 0, len(tables))
	for _, table := range tables {
		columns, err := drv.Columns(ctx, table)
		if err != nil {
			return nil, err
		}
		schemas = append(schemas, database.TableSchema{
			Name:    table,
			Columns: columns,
		})
	}

	sort.Slice(schemas, func(i, j int) bool {
		return schemas[i].Name < schemas[j].Name
	})
	return schemas, nil
}

// isSelect checks the trimmed statement's leading keyword. A prefix
// check only: statements disguised via comments or whitespace tricks
// are out of scope.
func isSelect(stmt string) bool {
	return len(stmt) >= 6 && strings.EqualFold(stmt[:6], "select")
}
