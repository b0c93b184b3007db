package mapping

import (
	"database/sql"

	"github.com/marmotkit/asset-mgmt-accounting/internal/core/domain"
	"github.com/marmotkit/asset-mgmt-accounting/internal/models"
)

// ToModelMonthlyClosing converts a domain MonthlyClosing to a model MonthlyClosing
func ToModelMonthlyClosing(d domain.MonthlyClosing) models.MonthlyClosing {
	var closingDate sql.NullTime
	if d.ClosingDate != nil {
		closingDate = sql.NullTime{Time: *d.ClosingDate, Valid: true}
	}
	return models.MonthlyClosing{
		ClosingID:    d.ClosingID,
		Year:         d.Year,
		Month:        d.Month,
		TotalIncome:  d.TotalIncome,
		TotalExpense: d.TotalExpense,
		NetAmount:    d.NetAmount,
		Status:       string(d.Status),
		ClosingDate:  closingDate,
		Notes:        d.Notes,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainMonthlyClosing converts a model MonthlyClosing to a domain MonthlyClosing
func ToDomainMonthlyClosing(m models.MonthlyClosing) domain.MonthlyClosing {
	c := domain.MonthlyClosing{
		ClosingID:    m.ClosingID,
		Year:         m.Year,
		Month:        m.Month,
		TotalIncome:  m.TotalIncome,
		TotalExpense: m.TotalExpense,
		NetAmount:    m.NetAmount,
		Status:       domain.ClosingStatus(m.Status),
		Notes:        m.Notes,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
	if m.ClosingDate.Valid {
		t := m.ClosingDate.Time.UTC()
		c.ClosingDate = &t
	}
	return c
}
