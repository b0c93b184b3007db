package mapping

import (
	"database/sql"

	"github.com/marmotkit/asset-mgmt-accounting/internal/core/domain"
	"github.com/marmotkit/asset-mgmt-accounting/internal/models"
)

func toModelSource(s *domain.SourceLink) (sql.NullString, sql.NullString) {
	if s == nil {
		return sql.NullString{}, sql.NullString{}
	}
	return sql.NullString{String: string(s.Domain), Valid: true}, sql.NullString{String: s.ID, Valid: true}
}

func toDomainSource(domainCol, idCol sql.NullString) *domain.SourceLink {
	if !domainCol.Valid || !idCol.Valid {
		return nil
	}
	return &domain.SourceLink{Domain: domain.SourceDomain(domainCol.String), ID: idCol.String}
}

// ToModelReceivable converts a domain Receivable to a model LedgerRecord
func ToModelReceivable(d domain.Receivable) models.LedgerRecord {
	srcDomain, srcID := toModelSource(d.Source)
	return models.LedgerRecord{
		ID:               d.ReceivableID,
		CounterpartyID:   d.CustomerID,
		CounterpartyName: d.CustomerName,
		InvoiceNumber:    d.InvoiceNumber,
		Amount:           d.Amount,
		PaymentAmount:    d.PaymentAmount,
		DueDate:          d.DueDate,
		Description:      d.Description,
		Status:           string(d.Status),
		SourceDomain:     srcDomain,
		SourceID:         srcID,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainReceivable converts a model LedgerRecord to a domain Receivable
func ToDomainReceivable(m models.LedgerRecord) domain.Receivable {
	return domain.Receivable{
		ReceivableID:  m.ID,
		CustomerID:    m.CounterpartyID,
		CustomerName:  m.CounterpartyName,
		InvoiceNumber: m.InvoiceNumber,
		Amount:        m.Amount,
		PaymentAmount: m.PaymentAmount,
		DueDate:       m.DueDate.UTC(),
		Description:   m.Description,
		Status:        domain.LedgerStatus(m.Status),
		Source:        toDomainSource(m.SourceDomain, m.SourceID),
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelPayable converts a domain Payable to a model LedgerRecord
func ToModelPayable(d domain.Payable) models.LedgerRecord {
	srcDomain, srcID := toModelSource(d.Source)
	return models.LedgerRecord{
		ID:               d.PayableID,
		CounterpartyID:   d.SupplierID,
		CounterpartyName: d.SupplierName,
		InvoiceNumber:    d.InvoiceNumber,
		Amount:           d.Amount,
		PaymentAmount:    d.PaymentAmount,
		DueDate:          d.DueDate,
		Description:      d.Description,
		Status:           string(d.Status),
		SourceDomain:     srcDomain,
		SourceID:         srcID,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPayable converts a model LedgerRecord to a domain Payable
func ToDomainPayable(m models.LedgerRecord) domain.Payable {
	return domain.Payable{
		PayableID:     m.ID,
		SupplierID:    m.CounterpartyID,
		SupplierName:  m.CounterpartyName,
		InvoiceNumber: m.InvoiceNumber,
		Amount:        m.Amount,
		PaymentAmount: m.PaymentAmount,
		DueDate:       m.DueDate.UTC(),
		Description:   m.Description,
		Status:        domain.LedgerStatus(m.Status),
		Source:        toDomainSource(m.SourceDomain, m.SourceID),
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}
