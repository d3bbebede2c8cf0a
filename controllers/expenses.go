package controllers

import (
	"net/http"

	"Roomio/middleware"
	"Roomio/services"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type expenseRequest struct {
	Description string   `json:"description"`
	AmountCents int64    `json:"amountCents"`
	PaidBy      string   `json:"paidBy"`
	SplitAmong  []string `json:"splitAmong"`
}

// @Summary Add an expense
// @Description Splits the amount equally between splitAmong (default: every member)
// @Tags expenses
// @Accept json
// @Produce json
// @Param Authorization header string false "Bearer JWT token"
// @Param groupId path string true "Group id"
// @Param body body expenseRequest true "Expense"
// @Success 201 {object} object{success=bool,expense=services.ExpenseView}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 403 {object} object{success=bool,error=string}
// @Router /api/groups/{groupId}/expenses [post]
// @Security ApiKeyAuth
func AddExpense(expenses *services.ExpenseService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req expenseRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body"})
			return
		}

		expense, err := expenses.AddExpense(c.Request.Context(), middleware.CurrentUserID(c), c.Param("groupId"), services.ExpenseInput{
			Description: req.Description,
			AmountCents: req.AmountCents,
			PaidBy:      req.PaidBy,
			SplitAmong:  req.SplitAmong,
		})
		if err != nil {
			respondFailure(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"success": true, "expense": expense})
	}
}

// @Summary List expenses
// @Tags expenses
// @Produce json
// @Param Authorization header string false "Bearer JWT token"
// @Param groupId path string true "Group id"
// @Success 200 {object} object{success=bool,expenses=[]services.ExpenseView}
// @Router /api/groups/{groupId}/expenses [get]
// @Security ApiKeyAuth
func ListExpenses(expenses *services.ExpenseService) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := expenses.ListExpenses(c.Request.Context(), middleware.CurrentUserID(c), c.Param("groupId"))
		if err != nil {
			respondFailure(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "expenses": list})
	}
}

// @Summary Member balances
// @Description Net cents per member, paid minus owed. The values sum to zero
// @Tags expenses
// @Produce json
// @Param Authorization header string false "Bearer JWT token"
// @Param groupId path string true "Group id"
// @Success 200 {object} object{success=bool,balances=[]services.BalanceView}
// @Router /api/groups/{groupId}/balances [get]
// @Security ApiKeyAuth
func GetBalances(expenses *services.ExpenseService) gin.HandlerFunc {
	return func(c *gin.Context) {
		balances, err := expenses.Balances(c.Request.Context(), middleware.CurrentUserID(c), c.Param("groupId"))
		if err != nil {
			respondFailure(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "balances": balances})
	}
}

// @Summary Suggested settlements
// @Tags expenses
// @Produce json
// @Param Authorization header string false "Bearer JWT token"
// @Param groupId path string true "Group id"
// @Success 200 {object} object{success=bool,settlements=[]services.Settlement}
// @Router /api/groups/{groupId}/settlements [get]
// @Security ApiKeyAuth
func GetSettlements(expenses *services.ExpenseService) gin.HandlerFunc {
	return func(c *gin.Context) {
		settlements, err := expenses.Settlements(c.Request.Context(), middleware.CurrentUserID(c), c.Param("groupId"))
		if err != nil {
			respondFailure(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "settlements": settlements})
	}
}

// @Summary Export expenses
// @Description Downloads an xlsx workbook with Expenses and Balances sheets
// @Tags expenses
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param Authorization header string false "Bearer JWT token"
// @Param groupId path string true "Group id"
// @Success 200 {file} file
// @Failure 403 {object} object{success=bool,error=string}
// @Router /api/groups/{groupId}/expenses/export [get]
// @Security ApiKeyAuth
func ExportExpenses(expenses *services.ExpenseService) gin.HandlerFunc {
	return func(c *gin.Context) {
		groupID := c.Param("groupId")
		data, err := expenses.ExportExpenses(c.Request.Context(), middleware.CurrentUserID(c), groupID)
		if err != nil {
			respondFailure(c, err)
			return
		}
		c.Header("Content-Disposition", `attachment; filename="`+services.ExportFilename(groupID)+`"`)
		c.Data(http.StatusOK, xlsxContentType, data)
	}
}
