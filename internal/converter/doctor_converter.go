package converter

import (
	"go-hospital-scheduling/internal/delivery/dto"
	"go-hospital-scheduling/internal/domain/entity"
)

// ScheduleToResponse converts a WeeklySchedule to ScheduleResponse DTO
func ScheduleToResponse(schedule *entity.WeeklySchedule) dto.ScheduleResponse {
	days := make([]string, len(schedule.Days))
	occupied := make(map[string][]string, len(schedule.Days))
	for i, day := range schedule.Days {
		days[i] = day.String()
		times := make([]string, len(schedule.Occupied[day]))
		for j, t := range schedule.Occupied[day] {
			times[j] = t.String()
		}
		occupied[day.String()] = times
	}

	return dto.ScheduleResponse{
		Start:       schedule.Start.String(),
		End:         schedule.End.String(),
		Days:        days,
		SlotMinutes: schedule.SlotMinutes,
		Occupied:    occupied,
	}
}

// DoctorToResponse converts a Doctor entity to DoctorResponse DTO
func DoctorToResponse(doctor *entity.Doctor) *dto.DoctorResponse {
	if doctor == nil {
		return nil
	}

	return &dto.DoctorResponse{
		ID:        doctor.ID,
		FirstName: doctor.FirstName,
		LastName:  doctor.LastName,
		FullName:  doctor.FullName(),
		Email:     doctor.Email,
		License:   doctor.License,
		Gender:    doctor.Gender,
		Specialty: doctor.Specialty,
		Active:    doctor.Active,
		Schedule:  ScheduleToResponse(&doctor.Schedule),
	}
}

// DoctorsToListResponse converts a slice of Doctor entities to DoctorListResponse DTO
func DoctorsToListResponse(doctors []entity.Doctor) *dto.DoctorListResponse {
	responses := make([]dto.DoctorResponse, len(doctors))
	for i := range doctors {
		responses[i] = *DoctorToResponse(&doctors[i])
	}
	return &dto.DoctorListResponse{
		Doctors: responses,
		Total:   len(responses),
	}
}

// SlotsToResponse converts a day's slots to SlotListResponse DTO
func SlotsToResponse(doctorEmail string, day entity.Day, slots []entity.Slot) *dto.SlotListResponse {
	responses := make([]dto.SlotResponse, len(slots))
	for i, slot := range slots {
		responses[i] = dto.SlotResponse{Time: slot.Time.String(), Occupied: slot.Occupied}
	}
	return &dto.SlotListResponse{
		DoctorEmail: doctorEmail,
		Day:         day.String(),
		Slots:       responses,
	}
}
