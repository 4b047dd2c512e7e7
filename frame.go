package frame

import (
	"context"

	"github.com/kode4food/frame/engine"
	"github.com/kode4food/frame/engine/config"
	"github.com/kode4food/frame/table"

	engineImpl "github.com/kode4food/frame/internal/engine"
	tableImpl "github.com/kode4food/frame/internal/table"
)

// NewTable instantiates a new Table given a Layout of key and value columns
func NewTable(l table.Layout) (table.Table, error) {
	t, err := tableImpl.Make(l)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// NewMemoryEngine instantiates a new in-process Engine
func NewMemoryEngine(o ...config.Option) (engine.Memory, error) {
	m, err := engineImpl.MakeMemory(o...)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// Import validates and seals a Table, then hands it to an Engine, leaving it
// to the Engine to match the Table's columns to its entities
func Import(ctx context.Context, e engine.Engine, t table.Table) error {
	return ImportInto(ctx, e, t, "")
}

// ImportInto validates and seals a Table, then hands it to an Engine,
// instructing it to populate the named target entity
func ImportInto(
	ctx context.Context, e engine.Engine, t table.Table, target string,
) error {
	if err := t.Validate(); err != nil {
		return err
	}
	return e.Import(ctx, t, target)
}
