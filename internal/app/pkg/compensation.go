package pkg

import (
	"context"

	"github.com/sirupsen/logrus"
)

// Compensator records undo steps for side effects that live outside the
// database, such as uploaded media, and replays them in reverse on failure.
type Compensator struct {
	undos []func(ctx context.Context) error
}

func (c *Compensator) Add(undo func(ctx context.Context) error) {
	c.undos = append(c.undos, undo)
}

// Rollback runs every recorded undo, newest first. Undo failures are
// logged and do not stop the remaining steps.
func (c *Compensator) Rollback(ctx context.Context) {
	for i := len(c.undos) - 1; i >= 0; i-- {
		if err := c.undos[i](ctx); err != nil {
			logrus.WithError(err).Warn("compensation step failed")
		}
	}
	c.undos = nil
}

// Commit forgets the recorded undos once the whole operation succeeded.
func (c *Compensator) Commit() {
	c.undos = nil
}

func (c *Compensator) Len() int {
	return len(c.undos)
}
