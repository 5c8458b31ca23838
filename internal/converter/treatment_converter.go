package converter

import (
	"go-hospital-scheduling/internal/delivery/dto"
	"go-hospital-scheduling/internal/domain/entity"
	"go-hospital-scheduling/internal/domain/pricing"
)

// TreatmentToResponse converts a Treatment entity to TreatmentResponse DTO,
// pricing it with calc.
func TreatmentToResponse(treatment *entity.Treatment, calc *pricing.Calculator) *dto.TreatmentResponse {
	if treatment == nil {
		return nil
	}

	return &dto.TreatmentResponse{
		ID:           treatment.ID,
		Category:     string(treatment.Category),
		Name:         treatment.Name,
		Quantity:     treatment.Quantity,
		QuantityUnit: treatment.Category.QuantityUnit(),
		UnitPrice:    treatment.UnitPrice,
		Cost:         calc.Cost(*treatment),
	}
}

// TreatmentsToListResponse converts a slice of Treatment entities to TreatmentListResponse DTO
func TreatmentsToListResponse(treatments []entity.Treatment, calc *pricing.Calculator) *dto.TreatmentListResponse {
	responses := make([]dto.TreatmentResponse, len(treatments))
	for i := range treatments {
		responses[i] = *TreatmentToResponse(&treatments[i], calc)
	}
	return &dto.TreatmentListResponse{
		Treatments: responses,
		Total:      len(responses),
	}
}

// AssignmentToResponse converts a TreatmentAssignment entity to AssignmentResponse DTO
func AssignmentToResponse(assignment *entity.TreatmentAssignment, calc *pricing.Calculator) *dto.AssignmentResponse {
	if assignment == nil {
		return nil
	}

	treatment := TreatmentToResponse(&assignment.Treatment, calc)
	return &dto.AssignmentResponse{
		ID:           assignment.ID,
		PatientEmail: assignment.PatientEmail,
		Treatment:    *treatment,
		AssignedAt:   assignment.AssignedAt,
		Note:         assignment.Note,
		Status:       string(assignment.Status),
		Cost:         treatment.Cost,
	}
}

// AssignmentsToResponses converts a slice of TreatmentAssignment entities to a slice of AssignmentResponse DTOs
func AssignmentsToResponses(assignments []entity.TreatmentAssignment, calc *pricing.Calculator) []dto.AssignmentResponse {
	responses := make([]dto.AssignmentResponse, len(assignments))
	for i := range assignments {
		responses[i] = *AssignmentToResponse(&assignments[i], calc)
	}
	return responses
}
