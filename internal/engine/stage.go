package engine

import (
	"fmt"

	"github.com/desertthunder/bop/internal/scene"
	"github.com/desertthunder/bop/internal/shared"
)

// AddStage attaches another synchronized view of the simulation at the given
// scale and returns its handle. All stages render from the same physics; only
// the document build differs.
func (d *Dancer) AddStage(scale float64) string {
	d.mu.Lock()
	defer d.mu.Unlock()

	id := shared.ShortID()
	d.attachStage(id, scale)
	d.logger.Debug("stage added", "id", id, "scale", scale)
	return id
}

// RemoveStage detaches a stage by handle.
func (d *Dancer) RemoveStage(id string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.stages[id]; !ok {
		return fmt.Errorf("%w: %s", shared.ErrStageNotFound, id)
	}
	delete(d.stages, id)
	for i, sid := range d.stageOrder {
		if sid == id {
			d.stageOrder = append(d.stageOrder[:i], d.stageOrder[i+1:]...)
			break
		}
	}
	return nil
}

// StageIDs returns the attached stage handles in attach order.
func (d *Dancer) StageIDs() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]string, len(d.stageOrder))
	copy(out, d.stageOrder)
	return out
}

// attachStage registers a stage built from the dancer's geometry and palette.
// Caller holds the mutex (or is the constructor).
func (d *Dancer) attachStage(id string, scale float64) {
	st := scene.NewStage(id, d.width, d.height, scale)
	if d.background != "" {
		st.Background = d.background
	}
	if d.body != "" {
		st.Body = d.body
	}
	if d.base != "" {
		st.Base = d.base
	}
	d.stages[id] = st
	d.stageOrder = append(d.stageOrder, id)
}
