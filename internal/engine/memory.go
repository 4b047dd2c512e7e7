package engine

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/kode4food/frame/engine"
	"github.com/kode4food/frame/engine/config"
	"github.com/kode4food/frame/table"
)

// Memory is the internal implementation of an engine.Memory
type Memory struct {
	id         uuid.UUID
	logger     *slog.Logger
	statements []string
	sets       map[string][]table.Tuple
	params     map[string][]engine.Entry
	mu         sync.RWMutex
}

// MakeMemory instantiates a new in-process Engine
func MakeMemory(o ...config.Option) (*Memory, error) {
	cfg, err := config.Apply(o...)
	if err != nil {
		return nil, err
	}
	return &Memory{
		id:     cfg.SessionID,
		logger: cfg.Logger.With(slog.String("session", cfg.SessionID.String())),
		sets:   map[string][]table.Tuple{},
		params: map[string][]engine.Entry{},
	}, nil
}

func (m *Memory) SessionID() uuid.UUID {
	return m.id
}

func (m *Memory) Declare(ctx context.Context, stmt string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	stmt = strings.TrimSpace(stmt)
	if stmt == "" {
		return engine.ErrEmptyStatement
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.statements = append(m.statements, stmt)
	m.logger.Debug("declared", slog.String("statement", stmt))
	return nil
}

// Import populates entities from a Table. With a target, the key tuples
// replace the members of the target set and each value column replaces the
// parameter of the same name. Without one, only the parameters are replaced
func (m *Memory) Import(
	ctx context.Context, t table.Table, target string,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := t.Validate(); err != nil {
		return err
	}
	rows, err := t.Rows()
	if err != nil {
		return err
	}

	cols := t.ValueColumns()
	members := make([]table.Tuple, 0, t.RowCount())
	params := make([][]engine.Entry, len(cols))
	for r := range rows {
		members = append(members, r.Key)
		for i, v := range r.Values {
			params[i] = append(params[i], engine.Entry{
				Key:   r.Key,
				Value: v,
			})
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if target != "" {
		m.sets[target] = members
	}
	for i, c := range cols {
		m.params[string(c)] = params[i]
	}
	m.logger.Info("imported table",
		slog.String("target", target),
		slog.Int("rows", len(members)),
		slog.Int("params", len(cols)),
	)
	return nil
}

func (m *Memory) Statements() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.statements)
}

func (m *Memory) Set(name string) ([]table.Tuple, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.sets[name]; ok {
		res := make([]table.Tuple, len(s))
		for i, k := range s {
			res[i] = slices.Clone(k)
		}
		return res, nil
	}
	return nil, fmt.Errorf("%w: set %s", engine.ErrUnknownEntity, name)
}

func (m *Memory) Param(name string) ([]engine.Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if p, ok := m.params[name]; ok {
		res := make([]engine.Entry, len(p))
		for i, e := range p {
			res[i] = engine.Entry{
				Key:   slices.Clone(e.Key),
				Value: e.Value,
			}
		}
		return res, nil
	}
	return nil, fmt.Errorf("%w: param %s", engine.ErrUnknownEntity, name)
}
