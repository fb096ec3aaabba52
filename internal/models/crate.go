package models

import (
	"fmt"
	"time"

	"github.com/desertthunder/bop/internal/shared"
)

// Crate is a named, ordered selection of library tracks, the working unit a
// set gets built from.
type Crate struct {
	id          string
	sequence    int
	name        string
	description string
	createdAt   time.Time
	updatedAt   time.Time
	deletedAt   *time.Time
}

// NewCrate creates an unsaved crate. The ID is assigned on create.
func NewCrate(sequence int, name, description string) *Crate {
	now := time.Now()
	return &Crate{
		sequence:    sequence,
		name:        name,
		description: description,
		createdAt:   now,
		updatedAt:   now,
	}
}

func (c *Crate) ID() string            { return c.id }
func (c *Crate) Sequence() int         { return c.sequence }
func (c *Crate) Name() string          { return c.name }
func (c *Crate) Description() string   { return c.description }
func (c *Crate) CreatedAt() time.Time  { return c.createdAt }
func (c *Crate) UpdatedAt() time.Time  { return c.updatedAt }
func (c *Crate) DeletedAt() *time.Time { return c.deletedAt }

func (c *Crate) SetID(id string)            { c.id = id }
func (c *Crate) SetSequence(seq int)        { c.sequence = seq }
func (c *Crate) SetName(name string)        { c.name = name }
func (c *Crate) SetDescription(d string)    { c.description = d }
func (c *Crate) SetCreatedAt(ts time.Time)  { c.createdAt = ts }
func (c *Crate) SetUpdatedAt(ts time.Time)  { c.updatedAt = ts }
func (c *Crate) SetDeletedAt(ts *time.Time) { c.deletedAt = ts }

// Validate requires a crate name.
func (c *Crate) Validate() error {
	if c.name == "" {
		return fmt.Errorf("%w: crate name is required", shared.ErrInvalidInput)
	}
	return nil
}
