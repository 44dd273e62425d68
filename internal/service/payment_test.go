package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPay_MarksObligationPaid(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	user := mustRegister(t, svc, "alex")
	mustAdd(t, svc, user.ID, "p1", "10.00")

	receipt, err := svc.Purchase(ctx)
	require.NoError(t, err)

	ob, err := svc.Pay(ctx, user.ID, receipt.ID)
	require.NoError(t, err)
	require.True(t, ob.Paid)
	require.NotNil(t, ob.PaidAt)
	requireAmount(t, "16.95", ob.Amount)
}

func TestPay_RepayRestampsPaidAt(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	user := mustRegister(t, svc, "alex")
	mustAdd(t, svc, user.ID, "p1", "10.00")

	receipt, err := svc.Purchase(ctx)
	require.NoError(t, err)

	first, err := svc.Pay(ctx, user.ID, receipt.ID)
	require.NoError(t, err)

	second, err := svc.Pay(ctx, user.ID, receipt.ID)
	require.NoError(t, err)
	require.True(t, second.Paid)
	require.NotNil(t, second.PaidAt)
	require.False(t, second.PaidAt.Before(*first.PaidAt))
}

func TestPay_UnknownObligation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Pay(ctx, 1, 1)
	require.ErrorIs(t, err, ErrObligationNotFound)

	// a known receipt with the wrong user is still not found
	user := mustRegister(t, svc, "alex")
	other := mustRegister(t, svc, "omar")
	mustAdd(t, svc, user.ID, "p1", "10.00")

	receipt, err := svc.Purchase(ctx)
	require.NoError(t, err)

	_, err = svc.Pay(ctx, other.ID, receipt.ID)
	require.ErrorIs(t, err, ErrObligationNotFound)
}
