package converter

import (
	"go-hospital-scheduling/internal/delivery/dto"
	"go-hospital-scheduling/internal/domain/entity"
)

// PatientToResponse converts a Patient entity to PatientResponse DTO
func PatientToResponse(patient *entity.Patient) *dto.PatientResponse {
	if patient == nil {
		return nil
	}

	treatmentIDs := patient.TreatmentIDs
	if treatmentIDs == nil {
		treatmentIDs = []int{}
	}

	return &dto.PatientResponse{
		ID:           patient.ID,
		FirstName:    patient.FirstName,
		LastName:     patient.LastName,
		FullName:     patient.FullName(),
		Email:        patient.Email,
		NationalID:   patient.NationalID,
		Insurance:    string(patient.Insurance),
		TreatmentIDs: treatmentIDs,
	}
}

// PatientsToListResponse converts a slice of Patient entities to PatientListResponse DTO
func PatientsToListResponse(patients []entity.Patient) *dto.PatientListResponse {
	responses := make([]dto.PatientResponse, len(patients))
	for i := range patients {
		responses[i] = *PatientToResponse(&patients[i])
	}
	return &dto.PatientListResponse{
		Patients: responses,
		Total:    len(responses),
	}
}
