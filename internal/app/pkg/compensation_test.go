package pkg_test

import (
	"context"
	"errors"
	"testing"

	"github.com/safatanc/vidtube/internal/app/pkg"
	"github.com/stretchr/testify/assert"
)

func TestCompensatorRollbackRunsInReverse(t *testing.T) {
	var order []string
	comp := &pkg.Compensator{}
	comp.Add(func(ctx context.Context) error { order = append(order, "video"); return nil })
	comp.Add(func(ctx context.Context) error { order = append(order, "thumbnail"); return errors.New("gone") })
	comp.Add(func(ctx context.Context) error { order = append(order, "avatar"); return nil })

	comp.Rollback(context.Background())

	assert.Equal(t, []string{"avatar", "thumbnail", "video"}, order)
	assert.Zero(t, comp.Len())
}

func TestCompensatorCommitDropsUndos(t *testing.T) {
	called := false
	comp := &pkg.Compensator{}
	comp.Add(func(ctx context.Context) error { called = true; return nil })

	comp.Commit()
	comp.Rollback(context.Background())

	assert.False(t, called)
}
