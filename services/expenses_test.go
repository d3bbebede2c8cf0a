package services

import (
	"bytes"
	"context"
	"testing"

	models "Roomio/models/postgres"
	"Roomio/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestSplitEqually(t *testing.T) {
	shares := SplitEqually(1000, []string{"c", "a", "b"})
	require.Len(t, shares, 3)
	assert.Equal(t, models.ExpenseShare{UserID: "a", ShareCents: 334}, shares[0])
	assert.Equal(t, models.ExpenseShare{UserID: "b", ShareCents: 333}, shares[1])
	assert.Equal(t, models.ExpenseShare{UserID: "c", ShareCents: 333}, shares[2])

	shares = SplitEqually(5, []string{"d", "c", "b", "a"})
	assert.Equal(t, int64(2), shares[0].ShareCents)
	assert.Equal(t, int64(1), shares[3].ShareCents)

	assert.Nil(t, SplitEqually(100, nil))
}

func TestSettleUp(t *testing.T) {
	balances := map[string]int64{"a": 600, "b": -200, "c": -400, "d": 0}
	got := SettleUp(balances)
	assert.Equal(t, []Settlement{
		{From: "c", To: "a", AmountCents: 400},
		{From: "b", To: "a", AmountCents: 200},
	}, got)

	assert.Empty(t, SettleUp(map[string]int64{"a": 0}))
}

// household returns a group with three members: owner, bob and carol.
func household(t *testing.T, f *fixture) (groupID, owner, bob, carol string) {
	t.Helper()
	ctx := context.Background()
	owner = f.signUp(t, "owner", models.UserTypeHasRoom)
	bob = f.signUp(t, "bob", models.UserTypeHasRoom)
	carol = f.signUp(t, "carol", models.UserTypeHasRoom)

	group, err := f.svc.Groups.CreateGroup(ctx, owner, "Flat")
	require.NoError(t, err)
	invite, err := f.svc.Groups.CreateInvite(ctx, owner, group.ID, InviteInput{})
	require.NoError(t, err)
	for _, id := range []string{bob, carol} {
		_, err := f.svc.Groups.AcceptInvite(ctx, id, invite.Token)
		require.NoError(t, err)
	}
	return group.ID, owner, bob, carol
}

func TestExpensesAndBalances(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	groupID, owner, bob, carol := household(t, f)
	outsider := f.signUp(t, "outsider", models.UserTypeHasRoom)

	exp, err := f.svc.Expenses.AddExpense(ctx, owner, groupID, ExpenseInput{Description: "Internet", AmountCents: 3000})
	require.NoError(t, err)
	assert.Equal(t, owner, exp.PaidBy)
	require.Len(t, exp.Shares, 3)

	_, err = f.svc.Expenses.AddExpense(ctx, bob, groupID, ExpenseInput{
		Description: "Groceries", AmountCents: 1001, PaidBy: bob, SplitAmong: []string{bob, carol, carol},
	})
	require.NoError(t, err)

	list, err := f.svc.Expenses.ListExpenses(ctx, carol, groupID)
	require.NoError(t, err)
	require.Len(t, list, 2)

	balances, err := f.svc.Expenses.Balances(ctx, carol, groupID)
	require.NoError(t, err)
	var sum int64
	byUser := map[string]int64{}
	for _, b := range balances {
		sum += b.NetCents
		byUser[b.UserID] = b.NetCents
	}
	assert.Zero(t, sum)
	assert.Equal(t, int64(2000), byUser[owner])

	settlements, err := f.svc.Expenses.Settlements(ctx, bob, groupID)
	require.NoError(t, err)
	var paidToOwner int64
	for _, s := range settlements {
		if s.To == owner {
			paidToOwner += s.AmountCents
		}
	}
	assert.Equal(t, int64(2000), paidToOwner)

	t.Run("validation", func(t *testing.T) {
		_, err := f.svc.Expenses.AddExpense(ctx, outsider, groupID, ExpenseInput{Description: "x", AmountCents: 1})
		assertCode(t, err, apperror.ErrCodeForbidden)
		_, err = f.svc.Expenses.AddExpense(ctx, owner, groupID, ExpenseInput{Description: "x", AmountCents: 0})
		assertCode(t, err, apperror.ErrCodeValidation)
		_, err = f.svc.Expenses.AddExpense(ctx, owner, groupID, ExpenseInput{AmountCents: 10})
		assertCode(t, err, apperror.ErrCodeValidation)
		_, err = f.svc.Expenses.AddExpense(ctx, owner, groupID, ExpenseInput{Description: "x", AmountCents: 10, PaidBy: outsider})
		assertCode(t, err, apperror.ErrCodeValidation)
		_, err = f.svc.Expenses.AddExpense(ctx, owner, groupID, ExpenseInput{Description: "x", AmountCents: 10, SplitAmong: []string{outsider}})
		assertCode(t, err, apperror.ErrCodeValidation)
	})
}

func TestExportExpenses(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	groupID, owner, _, _ := household(t, f)

	_, err := f.svc.Expenses.AddExpense(ctx, owner, groupID, ExpenseInput{Description: "Electricity", AmountCents: 9000})
	require.NoError(t, err)

	data, err := f.svc.Expenses.ExportExpenses(ctx, owner, groupID)
	require.NoError(t, err)

	wb, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer wb.Close()

	assert.Equal(t, []string{expensesSheet, balancesSheet}, wb.GetSheetList())

	rows, err := wb.GetRows(expensesSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Electricity", rows[1][1])
	assert.Equal(t, "owner", rows[1][2])
	assert.Equal(t, "90", rows[1][3])

	rows, err = wb.GetRows(balancesSheet)
	require.NoError(t, err)
	assert.Len(t, rows, 4)
}
