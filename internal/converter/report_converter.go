package converter

import (
	"go-hospital-scheduling/internal/delivery/dto"
	"go-hospital-scheduling/internal/domain/entity"
)

// InvoiceToResponse converts an Invoice to InvoiceResponse DTO
func InvoiceToResponse(invoice *entity.Invoice, patientName string) *dto.InvoiceResponse {
	if invoice == nil {
		return nil
	}

	lines := make([]dto.InvoiceLineResponse, len(invoice.Lines))
	for i, line := range invoice.Lines {
		lines[i] = dto.InvoiceLineResponse{
			AssignmentID:  line.AssignmentID,
			TreatmentName: line.TreatmentName,
			Category:      string(line.Category),
			Cost:          line.Cost,
		}
	}

	return &dto.InvoiceResponse{
		Number:       invoice.Number.String(),
		PatientEmail: invoice.PatientEmail,
		PatientName:  patientName,
		Lines:        lines,
		Total:        invoice.Total,
		IssuedAt:     invoice.IssuedAt,
	}
}
