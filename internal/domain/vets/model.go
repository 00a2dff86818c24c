package vets

import "time"

// Specialty define las especialidades soportadas.
type Specialty string

const (
	SpecialtyGeneralPractice Specialty = "general_practice"
	SpecialtySurgery         Specialty = "surgery"
	SpecialtyDentistry       Specialty = "dentistry"
	SpecialtyDermatology     Specialty = "dermatology"
	SpecialtyCardiology      Specialty = "cardiology"
	SpecialtyOrthopedics     Specialty = "orthopedics"
	SpecialtyOphthalmology   Specialty = "ophthalmology"
	SpecialtyExotics         Specialty = "exotics"
)

func ValidSpecialty(s Specialty) bool {
	switch s {
	case SpecialtyGeneralPractice, SpecialtySurgery, SpecialtyDentistry,
		SpecialtyDermatology, SpecialtyCardiology, SpecialtyOrthopedics,
		SpecialtyOphthalmology, SpecialtyExotics:
		return true
	}
	return false
}

// Day es el día de la semana de una regla de horario.
type Day string

const (
	DayMon Day = "mon"
	DayTue Day = "tue"
	DayWed Day = "wed"
	DayThu Day = "thu"
	DayFri Day = "fri"
	DaySat Day = "sat"
	DaySun Day = "sun"
)

func ValidDay(d Day) bool {
	switch d {
	case DayMon, DayTue, DayWed, DayThu, DayFri, DaySat, DaySun:
		return true
	}
	return false
}

// Vet es el perfil profesional, 1:1 con un usuario de rol vet.
type Vet struct {
	ID     string
	UserID string

	FullName string
	Email    string
	Phone    string

	Specialty Specialty
	Bio       string

	ClinicName    string
	ClinicAddress string
	City          string
	StateRegion   string
	PostalCode    string
	Country       string

	IsActive bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// WorkingHours es una regla semanal recurrente. Puede haber varias filas
// por día; no se valida solapamiento entre reglas.
type WorkingHours struct {
	ID    string
	VetID string

	Day       Day
	StartTime string // HH:MM
	EndTime   string // HH:MM
	IsActive  bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TimeOff es una ventana de ausencia en tiempo absoluto, start < end.
type TimeOff struct {
	ID    string
	VetID string

	StartAt time.Time
	EndAt   time.Time
	Reason  string

	CreatedAt time.Time
	UpdatedAt time.Time
}
