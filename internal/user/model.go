package user

import (
	"time"

	"github.com/google/uuid"
)

const maxWeek = 40

// EmergencyContact is a person to call when something goes wrong.
type EmergencyContact struct {
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	Relation    string `json:"relation"`
	CountryCode string `json:"countryCode"`
}

// DoctorContact identifies the patient's primary care provider.
type DoctorContact struct {
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	Hospital    string `json:"hospital"`
	CountryCode string `json:"countryCode"`
}

type User struct {
	ID                 uuid.UUID          `json:"id"`
	Name               string             `json:"name"`
	Email              string             `json:"email"`
	Phone              string             `json:"phone"`
	PregnancyStartDate time.Time          `json:"pregnancyStartDate"`
	CurrentWeek        int                `json:"currentWeek"`
	EmergencyContacts  []EmergencyContact `json:"emergencyContacts"`
	DoctorContact      DoctorContact      `json:"doctorContact"`
	CreatedAt          time.Time          `json:"createdAt"`
}

// WeekAt derives the gestational week from the pregnancy start date, clamped
// to [1, 40]. Persisted CurrentWeek can lag; this is the source of truth.
func (u *User) WeekAt(now time.Time) int {
	weeksPassed := int(now.Sub(u.PregnancyStartDate).Hours() / (24 * 7))
	week := weeksPassed + 1
	if week < 1 {
		week = 1
	}
	if week > maxWeek {
		week = maxWeek
	}
	return week
}

// StartDateForWeek back-derives a pregnancy start date such that WeekAt(now)
// yields the given week.
func StartDateForWeek(week int, now time.Time) time.Time {
	return now.AddDate(0, 0, -(week-1)*7)
}
