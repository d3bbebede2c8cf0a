package memory

import (
	"context"
	"sort"

	models "Roomio/models/postgres"
	"Roomio/store"
)

func (s *Store) CreateExpense(ctx context.Context, expense *models.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.groups[expense.GroupID]; !ok {
		return store.ErrNotFound
	}
	ensureID(&expense.ID)
	expense.CreatedAt = s.now()
	for i := range expense.Shares {
		expense.Shares[i].ExpenseID = expense.ID
	}

	stored := *expense
	stored.Shares = append([]models.ExpenseShare(nil), expense.Shares...)
	s.expenses[expense.GroupID] = append(s.expenses[expense.GroupID], &stored)
	return nil
}

func (s *Store) ListExpenses(ctx context.Context, groupID string) ([]models.Expense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := s.expenses[groupID]
	out := make([]models.Expense, 0, len(list))
	for i := len(list) - 1; i >= 0; i-- {
		e := *list[i]
		e.Shares = append([]models.ExpenseShare(nil), list[i].Shares...)
		out = append(out, e)
	}
	return out, nil
}

func sortMembers(ms []models.GroupMember) {
	sort.Slice(ms, func(i, j int) bool {
		if ms[i].JoinedAt.Equal(ms[j].JoinedAt) {
			return ms[i].UserID < ms[j].UserID
		}
		return ms[i].JoinedAt.Before(ms[j].JoinedAt)
	})
}

func sortInvites(invs []models.GroupInvite) {
	sort.Slice(invs, func(i, j int) bool {
		if invs[i].CreatedAt.Equal(invs[j].CreatedAt) {
			return invs[i].ID < invs[j].ID
		}
		return invs[i].CreatedAt.After(invs[j].CreatedAt)
	})
}
