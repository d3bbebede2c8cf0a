package services

import (
	"context"
	"sort"
	"strings"
	"unicode/utf8"

	models "Roomio/models/postgres"
	"Roomio/pkg/apperror"
	"Roomio/pkg/logger"
	"Roomio/store"
	"Roomio/utils"
)

type ExpenseService struct {
	store  store.Store
	groups *GroupService
}

type ExpenseInput struct {
	Description string
	AmountCents int64
	PaidBy      string
	SplitAmong  []string
}

// SplitEqually divides amountCents between userIDs. Each share is the floor
// of the even split; the leftover cents go one each to the lowest user ids.
func SplitEqually(amountCents int64, userIDs []string) []models.ExpenseShare {
	if len(userIDs) == 0 {
		return nil
	}
	ids := append([]string(nil), userIDs...)
	sort.Strings(ids)

	n := int64(len(ids))
	base, rem := amountCents/n, amountCents%n
	shares := make([]models.ExpenseShare, len(ids))
	for i, id := range ids {
		share := base
		if int64(i) < rem {
			share++
		}
		shares[i] = models.ExpenseShare{UserID: id, ShareCents: share}
	}
	return shares
}

// ComputeBalances returns paid minus owed per user. The values sum to zero.
func ComputeBalances(expenses []models.Expense) map[string]int64 {
	net := make(map[string]int64)
	for _, e := range expenses {
		net[e.PaidBy] += e.AmountCents
		for _, s := range e.Shares {
			net[s.UserID] -= s.ShareCents
		}
	}
	return net
}

// SettleUp turns balances into transfers by repeatedly paying the largest
// creditor from the largest debtor. Ties break on user id.
func SettleUp(balances map[string]int64) []Settlement {
	type party struct {
		id     string
		amount int64
	}
	var creditors, debtors []*party
	for id, net := range balances {
		switch {
		case net > 0:
			creditors = append(creditors, &party{id, net})
		case net < 0:
			debtors = append(debtors, &party{id, -net})
		}
	}
	largest := func(ps []*party) *party {
		var best *party
		for _, p := range ps {
			if p.amount == 0 {
				continue
			}
			if best == nil || p.amount > best.amount || (p.amount == best.amount && p.id < best.id) {
				best = p
			}
		}
		return best
	}

	var out []Settlement
	for {
		c, d := largest(creditors), largest(debtors)
		if c == nil || d == nil {
			return out
		}
		amount := c.amount
		if d.amount < amount {
			amount = d.amount
		}
		out = append(out, Settlement{From: d.id, To: c.id, AmountCents: amount})
		c.amount -= amount
		d.amount -= amount
	}
}

func (s *ExpenseService) AddExpense(ctx context.Context, userID, groupID string, in ExpenseInput) (*ExpenseView, error) {
	if _, _, err := s.groups.requireMember(ctx, userID, groupID); err != nil {
		return nil, err
	}

	description := utils.SanitizeText(in.Description)
	if description == "" {
		return nil, apperror.Validation("description is required")
	}
	if utf8.RuneCountInString(description) > 255 {
		return nil, apperror.Validation("description must be at most 255 characters")
	}
	if in.AmountCents <= 0 {
		return nil, apperror.Validation("amountCents must be positive")
	}

	members, err := s.store.ListMembers(ctx, groupID)
	if err != nil {
		return nil, internal(err, "list members")
	}
	isMember := make(map[string]bool, len(members))
	for _, m := range members {
		isMember[m.UserID] = true
	}

	paidBy := strings.TrimSpace(in.PaidBy)
	if paidBy == "" {
		paidBy = userID
	}
	if !isMember[paidBy] {
		return nil, apperror.Validation("paidBy must be a group member")
	}

	var participants []string
	if len(in.SplitAmong) == 0 {
		for _, m := range members {
			participants = append(participants, m.UserID)
		}
	} else {
		seen := make(map[string]bool, len(in.SplitAmong))
		for _, id := range in.SplitAmong {
			if !isMember[id] {
				return nil, apperror.Validation("splitAmong must only contain group members")
			}
			if !seen[id] {
				seen[id] = true
				participants = append(participants, id)
			}
		}
	}

	expense := &models.Expense{
		GroupID:     groupID,
		PaidBy:      paidBy,
		Description: description,
		AmountCents: in.AmountCents,
		Shares:      SplitEqually(in.AmountCents, participants),
	}
	if err := s.store.CreateExpense(ctx, expense); err != nil {
		return nil, notFoundOr(err, "Group not found", "create expense")
	}
	logger.Info("Expense added", "group_id", groupID, "expense_id", expense.ID, "amount_cents", expense.AmountCents)
	view := expenseViewOf(expense)
	return &view, nil
}

func (s *ExpenseService) ListExpenses(ctx context.Context, userID, groupID string) ([]ExpenseView, error) {
	expenses, err := s.load(ctx, userID, groupID)
	if err != nil {
		return nil, err
	}
	out := make([]ExpenseView, 0, len(expenses))
	for i := range expenses {
		out = append(out, expenseViewOf(&expenses[i]))
	}
	return out, nil
}

// Balances lists every current member plus anyone still referenced by an
// expense, sorted by user id.
func (s *ExpenseService) Balances(ctx context.Context, userID, groupID string) ([]BalanceView, error) {
	expenses, err := s.load(ctx, userID, groupID)
	if err != nil {
		return nil, err
	}
	members, err := s.store.ListMembers(ctx, groupID)
	if err != nil {
		return nil, internal(err, "list members")
	}
	return balanceViews(ComputeBalances(expenses), members), nil
}

func (s *ExpenseService) Settlements(ctx context.Context, userID, groupID string) ([]Settlement, error) {
	expenses, err := s.load(ctx, userID, groupID)
	if err != nil {
		return nil, err
	}
	out := SettleUp(ComputeBalances(expenses))
	if out == nil {
		out = []Settlement{}
	}
	return out, nil
}

func (s *ExpenseService) load(ctx context.Context, userID, groupID string) ([]models.Expense, error) {
	if _, _, err := s.groups.requireMember(ctx, userID, groupID); err != nil {
		return nil, err
	}
	expenses, err := s.store.ListExpenses(ctx, groupID)
	if err != nil {
		return nil, internal(err, "list expenses")
	}
	return expenses, nil
}

func balanceViews(net map[string]int64, members []models.GroupMember) []BalanceView {
	for _, m := range members {
		if _, ok := net[m.UserID]; !ok {
			net[m.UserID] = 0
		}
	}
	out := make([]BalanceView, 0, len(net))
	for id, amount := range net {
		out = append(out, BalanceView{UserID: id, NetCents: amount})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out
}
