package engine

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/kode4food/frame/table"
)

type (
	// Engine is an external optimization-modeling engine. It accepts
	// declarations of its own sets and parameters, and populates them from
	// validated Tables. A Table never holds a reference to an Engine
	Engine interface {
		// Declare sends an opaque statement to the Engine
		Declare(ctx context.Context, statement string) error

		// Import populates the Engine entity named by target from the
		// provided Table. An empty target asks the Engine to match the
		// Table's columns to entities by name
		Import(ctx context.Context, t table.Table, target string) error
	}

	// Memory is an Engine that keeps everything it receives in process
	Memory interface {
		Engine

		// SessionID identifies this Engine instance
		SessionID() uuid.UUID

		// Statements returns every declared statement, in order
		Statements() []string

		// Set returns the members of an imported set
		Set(name string) ([]table.Tuple, error)

		// Param returns the entries of an imported parameter
		Param(name string) ([]Entry, error)
	}

	// Entry is one indexed value of a parameter
	Entry struct {
		Key   table.Tuple
		Value table.Value
	}
)

// Error messages
var (
	ErrEmptyStatement = errors.New("statement is empty")
	ErrUnknownEntity  = errors.New("entity not found in engine")
	ErrTargetRequired = errors.New("engine requires an explicit import target")
)
