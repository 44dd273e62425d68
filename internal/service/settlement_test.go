package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/splitcart/splitcart/internal/models"
)

func TestSplitFee(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		fee   string
		users int
		want  string
	}{
		{name: "even split", fee: "6.00", users: 2, want: "3.00"},
		{name: "half rounds up", fee: "6.95", users: 2, want: "3.48"},
		{name: "repeating third", fee: "10.00", users: 3, want: "3.33"},
		{name: "single user", fee: "6.95", users: 1, want: "6.95"},
		{name: "sub-cent fee", fee: "0.01", users: 3, want: "0.00"},
		{name: "no users", fee: "6.95", users: 0, want: "0"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := splitFee(decimal.RequireFromString(tt.fee), tt.users)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "want %s, got %s", tt.want, got)
		})
	}
}

func TestPurchase_SettlesSharedCart(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	alex := mustRegister(t, svc, "alex")
	omar := mustRegister(t, svc, "omar")

	mustAdd(t, svc, alex.ID, "p1", "10.00")
	mustAdd(t, svc, alex.ID, "p1", "10.00")
	mustAdd(t, svc, omar.ID, "p2", "5.00")

	receipt, err := svc.Purchase(ctx)
	require.NoError(t, err)

	requireAmount(t, "25.00", receipt.Subtotal)
	requireAmount(t, "6.95", receipt.Fee)
	requireAmount(t, "31.95", receipt.Total)
	require.False(t, receipt.CreatedAt.IsZero())

	// fee splits 3.475 -> 3.48 each, half rounded up
	alexObs, err := svc.UserObligations(ctx, alex.ID)
	require.NoError(t, err)
	require.Len(t, alexObs, 1)
	requireAmount(t, "23.48", alexObs[0].Amount)
	require.False(t, alexObs[0].Paid)

	omarObs, err := svc.UserObligations(ctx, omar.ID)
	require.NoError(t, err)
	require.Len(t, omarObs, 1)
	requireAmount(t, "8.48", omarObs[0].Amount)

	// the cart is retired and the next add opens a fresh one
	_, err = svc.ActiveCart(ctx)
	require.ErrorIs(t, err, ErrNoActiveCart)

	cart, err := svc.CartByID(ctx, receipt.CartID)
	require.NoError(t, err)
	require.NotNil(t, cart.PurchasedAt)

	// historical lines survive the purchase
	lines, err := svc.LinesByCart(ctx, receipt.CartID)
	require.NoError(t, err)
	require.Len(t, lines, 2)

	var markers int64
	require.NoError(t, db.Model(&models.ActiveCart{}).Count(&markers).Error)
	require.Zero(t, markers)
}

func TestPurchase_ObligationSumWithinRoundingBound(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	const users = 3
	var ids []uint
	for i := 0; i < users; i++ {
		user := mustRegister(t, svc, fmt.Sprintf("user-%d", i))
		ids = append(ids, user.ID)
		mustAdd(t, svc, user.ID, fmt.Sprintf("p%d", i), "3.37")
	}

	receipt, err := svc.Purchase(ctx)
	require.NoError(t, err)

	sum := decimal.Zero
	for _, id := range ids {
		obs, err := svc.UserObligations(ctx, id)
		require.NoError(t, err)
		require.Len(t, obs, 1)
		sum = sum.Add(obs[0].Amount)
	}

	diff := sum.Sub(receipt.Total)
	bound := decimal.New(int64(users-1), -2)
	require.True(t, diff.GreaterThanOrEqual(decimal.Zero), "sum %s below total %s", sum, receipt.Total)
	require.True(t, diff.LessThanOrEqual(bound), "diff %s exceeds rounding bound %s", diff, bound)
}

func TestPurchase_NoActiveCart(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Purchase(context.Background())
	require.ErrorIs(t, err, ErrNoActiveCart)
}

func TestPurchase_EmptyCart(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.EnsureActive(ctx)
	require.NoError(t, err)

	_, err = svc.Purchase(ctx)
	require.ErrorIs(t, err, ErrEmptyCart)

	// the cart stays open
	_, err = svc.ActiveCart(ctx)
	require.NoError(t, err)
}

func TestPurchase_TotalsMismatchAbortsWithoutWrites(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	user := mustRegister(t, svc, "alex")
	mustAdd(t, svc, user.ID, "p1", "10.00")

	cart, err := svc.ActiveCart(ctx)
	require.NoError(t, err)

	// corrupt the incremental accounting behind the engine's back
	require.NoError(t, db.Model(&models.Cart{}).
		Where("id = ?", cart.ID).
		Update("total", decimal.RequireFromString("999.99")).Error)

	_, err = svc.Purchase(ctx)
	require.ErrorIs(t, err, ErrTotalsMismatch)

	var receipts, obligations int64
	require.NoError(t, db.Model(&models.Receipt{}).Count(&receipts).Error)
	require.NoError(t, db.Model(&models.Obligation{}).Count(&obligations).Error)
	require.Zero(t, receipts)
	require.Zero(t, obligations)

	// the marker survives the aborted transaction
	_, err = svc.ActiveCart(ctx)
	require.NoError(t, err)
}

func TestPurchase_SecondCartAfterPurchase(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	user := mustRegister(t, svc, "alex")
	mustAdd(t, svc, user.ID, "p1", "10.00")

	first, err := svc.Purchase(ctx)
	require.NoError(t, err)

	line := mustAdd(t, svc, user.ID, "p1", "10.00")
	require.NotEqual(t, first.CartID, line.CartID)
	require.EqualValues(t, 1, line.Quantity)

	receipts, err := svc.ListReceipts(ctx)
	require.NoError(t, err)
	require.Len(t, receipts, 1)
}
