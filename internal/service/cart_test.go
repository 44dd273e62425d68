package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/splitcart/splitcart/internal/models"
)

func TestAddItem_AggregatesRepeatedAdds(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	user := mustRegister(t, svc, "alex")

	for i := 0; i < 3; i++ {
		mustAdd(t, svc, user.ID, "p1", "2.50")
	}

	lines, err := svc.ActiveLines(ctx)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	require.EqualValues(t, 3, lines[0].Quantity)

	var rows int64
	require.NoError(t, db.Model(&models.OrderLine{}).Count(&rows).Error)
	require.EqualValues(t, 1, rows)

	total, err := svc.CartTotal(ctx)
	require.NoError(t, err)
	requireAmount(t, "7.50", total)
}

func TestAddItem_FirstWriteWinsDetails(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	user := mustRegister(t, svc, "alex")

	first := mustAdd(t, svc, user.ID, "p1", "2.50")

	line, err := svc.AddItem(ctx, user.ID, "p1", "rewritten", decimal.RequireFromString("9.99"))
	require.NoError(t, err)
	require.Equal(t, first.Description, line.Description)
	requireAmount(t, "2.50", line.UnitPrice)
	require.EqualValues(t, 2, line.Quantity)

	// the running total tracks the retained price, so settlement stays consistent
	total, err := svc.CartTotal(ctx)
	require.NoError(t, err)
	requireAmount(t, "5.00", total)
}

func TestAddItem_OverwriteDetailsFlag(t *testing.T) {
	svc, _ := newTestService(t)
	svc.OverwriteDetails = true
	ctx := context.Background()
	user := mustRegister(t, svc, "alex")

	mustAdd(t, svc, user.ID, "p1", "2.50")

	line, err := svc.AddItem(ctx, user.ID, "p1", "rewritten", decimal.RequireFromString("9.99"))
	require.NoError(t, err)
	require.Equal(t, "rewritten", line.Description)
	requireAmount(t, "9.99", line.UnitPrice)
	require.EqualValues(t, 2, line.Quantity)

	// the total is re-based onto the new price, so a purchase still settles
	total, err := svc.CartTotal(ctx)
	require.NoError(t, err)
	requireAmount(t, "19.98", total)

	receipt, err := svc.Purchase(ctx)
	require.NoError(t, err)
	requireAmount(t, "19.98", receipt.Subtotal)
}

func TestAddItem_UnknownUser(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.AddItem(context.Background(), 42, "p1", "x", decimal.RequireFromString("1.00"))
	require.ErrorIs(t, err, ErrUserNotFound)

	// no cart should have been opened for a rejected add
	_, err = svc.ActiveCart(context.Background())
	require.ErrorIs(t, err, ErrNoActiveCart)
}

func TestAddItem_SeparateLinesPerUserAndProduct(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	alex := mustRegister(t, svc, "alex")
	omar := mustRegister(t, svc, "omar")

	mustAdd(t, svc, alex.ID, "p1", "10.00")
	mustAdd(t, svc, omar.ID, "p1", "10.00")
	mustAdd(t, svc, alex.ID, "p2", "5.00")

	lines, err := svc.ActiveLines(ctx)
	require.NoError(t, err)
	require.Len(t, lines, 3)

	total, err := svc.CartTotal(ctx)
	require.NoError(t, err)
	requireAmount(t, "25.00", total)
}

func TestRemoveItem_DecrementsThenDeletes(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	user := mustRegister(t, svc, "alex")

	mustAdd(t, svc, user.ID, "p1", "2.50")
	mustAdd(t, svc, user.ID, "p1", "2.50")

	remaining, err := svc.RemoveItem(ctx, user.ID, "p1")
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	require.EqualValues(t, 1, remaining[0].Quantity)

	remaining, err = svc.RemoveItem(ctx, user.ID, "p1")
	require.NoError(t, err)
	require.Empty(t, remaining)

	var rows int64
	require.NoError(t, db.Model(&models.OrderLine{}).Count(&rows).Error)
	require.Zero(t, rows)

	total, err := svc.CartTotal(ctx)
	require.NoError(t, err)
	requireAmount(t, "0", total)
}

func TestRemoveItem_NoActiveCart(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.RemoveItem(context.Background(), 1, "p1")
	require.ErrorIs(t, err, ErrNoActiveCart)
}

func TestRemoveItem_LineNotFound(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	user := mustRegister(t, svc, "alex")

	mustAdd(t, svc, user.ID, "p1", "2.50")

	_, err := svc.RemoveItem(ctx, user.ID, "never-added")
	require.ErrorIs(t, err, ErrLineNotFound)

	// cart state unchanged
	lines, err := svc.ActiveLines(ctx)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	require.EqualValues(t, 1, lines[0].Quantity)
}

func TestLinesByCart_UnknownCart(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.LinesByCart(context.Background(), 99)
	require.ErrorIs(t, err, ErrCartNotFound)
}
