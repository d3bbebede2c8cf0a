package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

const (
	expensesSheet = "Expenses"
	balancesSheet = "Balances"
)

// ExportExpenses renders the group's expenses and balances as an xlsx workbook.
func (s *ExpenseService) ExportExpenses(ctx context.Context, userID, groupID string) ([]byte, error) {
	expenses, err := s.load(ctx, userID, groupID)
	if err != nil {
		return nil, err
	}
	members, err := s.store.ListMembers(ctx, groupID)
	if err != nil {
		return nil, internal(err, "list members")
	}
	balances := balanceViews(ComputeBalances(expenses), members)

	ids := make([]string, 0, len(balances))
	for _, b := range balances {
		ids = append(ids, b.UserID)
	}
	users, err := usersByID(ctx, s.store, ids)
	if err != nil {
		return nil, internal(err, "load members")
	}
	name := func(id string) string {
		if u, ok := users[id]; ok && u.FullName != "" {
			return u.FullName
		}
		return id
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", expensesSheet); err != nil {
		return nil, internal(err, "rename sheet")
	}
	header := []interface{}{"Date", "Description", "Paid by", "Amount", "Split among"}
	if err := f.SetSheetRow(expensesSheet, "A1", &header); err != nil {
		return nil, internal(err, "write header")
	}
	for i, e := range expenses {
		names := make([]string, 0, len(e.Shares))
		for _, sh := range e.Shares {
			names = append(names, name(sh.UserID))
		}
		row := []interface{}{
			e.CreatedAt.Format("2006-01-02"),
			e.Description,
			name(e.PaidBy),
			centsToUnits(e.AmountCents),
			strings.Join(names, ", "),
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(expensesSheet, cell, &row); err != nil {
			return nil, internal(err, "write expense row")
		}
	}

	if _, err := f.NewSheet(balancesSheet); err != nil {
		return nil, internal(err, "create sheet")
	}
	if err := f.SetSheetRow(balancesSheet, "A1", &[]interface{}{"Member", "Net"}); err != nil {
		return nil, internal(err, "write header")
	}
	for i, b := range balances {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []interface{}{name(b.UserID), centsToUnits(b.NetCents)}
		if err := f.SetSheetRow(balancesSheet, cell, &row); err != nil {
			return nil, internal(err, "write balance row")
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, internal(err, "write workbook")
	}
	return buf.Bytes(), nil
}

func ExportFilename(groupID string) string {
	return fmt.Sprintf("expenses-%s.xlsx", groupID)
}

func centsToUnits(cents int64) float64 {
	return float64(cents) / 100
}
