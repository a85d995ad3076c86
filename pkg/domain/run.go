package domain

import "github.com/google/uuid"

// RunID uniquely identifies one solve run. It wraps uuid.UUID to provide type
// safety at the domain layer.
type RunID uuid.UUID

// NewRunID returns a fresh random run identifier.
func NewRunID() RunID { return RunID(uuid.New()) }

// String renders the identifier in canonical UUID form.
func (id RunID) String() string { return uuid.UUID(id).String() }
