package models

import (
	"emr-service/internal/pkg/constvars"
	"fmt"

	"github.com/goccy/go-json"
)

// PatientRecord is the aggregate served by the record backend under a NIK.
// Every list is append only and kept in entry order.
type PatientRecord struct {
	PersonalInfo      PersonalInfo       `json:"personalInfo"`
	Diagnosis         []Diagnosis        `json:"diagnosis"`
	Vitals            []VitalSign        `json:"vitals"`
	LabResults        []LabResult        `json:"labResults"`
	Treatments        []Treatment        `json:"treatments"`
	ConsultationNotes []ConsultationNote `json:"consultationNotes"`
	Disposition       []Disposition      `json:"disposition"`
}

type PersonalInfo struct {
	Name      string `json:"name"`
	NIK       string `json:"nik"`
	BirthDate Date   `json:"birthDate"`
	Gender    Gender `json:"gender"`
	Address   string `json:"address"`
	Phone     string `json:"phone"`
}

type Diagnosis struct {
	Date      Date   `json:"date"`
	Diagnosis string `json:"diagnosis"`
	ICD10     string `json:"icd10"`
	Doctor    string `json:"doctor"`
}

type VitalSign struct {
	Date          Date          `json:"date"`
	Time          string        `json:"time"`
	BloodPressure BloodPressure `json:"bloodPressure"`
	HeartRate     Measurement   `json:"heartRate"`
	Temperature   Measurement   `json:"temperature"`
	Weight        Measurement   `json:"weight"`
	Height        Measurement   `json:"height"`
}

type LabResult struct {
	Date           Date      `json:"date"`
	Test           string    `json:"testName"`
	Result         string    `json:"result"`
	ReferenceRange string    `json:"referenceRange"`
	Status         LabStatus `json:"status"`
}

type Treatment struct {
	Date       Date   `json:"date"`
	Medication string `json:"medication"`
	Dosage     string `json:"dosage"`
	Duration   string `json:"duration"`
	Doctor     string `json:"doctor"`
}

type ConsultationNote struct {
	Date           Date   `json:"date"`
	Doctor         string `json:"doctor"`
	Specialty      string `json:"specialty"`
	ChiefComplaint string `json:"chiefComplaint"`
	Assessment     string `json:"assessment"`
	Plan           string `json:"plan"`
}

type Disposition struct {
	Date            Date   `json:"date"`
	Status          string `json:"status"`
	Instructions    string `json:"instructions"`
	NextAppointment *Date  `json:"nextAppointment,omitempty"`
}

func (r *PatientRecord) Key() string {
	return r.PersonalInfo.NIK
}

// Validate checks the record against the NIK it was requested with and
// replaces missing lists with empty ones.
func (r *PatientRecord) Validate(nik string) error {
	if r.PersonalInfo.NIK != nik {
		return fmt.Errorf(constvars.ErrDevPatientRecordKeyMismatch, r.PersonalInfo.NIK, nik)
	}
	if r.PersonalInfo.Gender == "" {
		return fmt.Errorf("personalInfo.gender is missing")
	}

	if r.Diagnosis == nil {
		r.Diagnosis = []Diagnosis{}
	}
	if r.Vitals == nil {
		r.Vitals = []VitalSign{}
	}
	if r.LabResults == nil {
		r.LabResults = []LabResult{}
	}
	if r.Treatments == nil {
		r.Treatments = []Treatment{}
	}
	if r.ConsultationNotes == nil {
		r.ConsultationNotes = []ConsultationNote{}
	}
	if r.Disposition == nil {
		r.Disposition = []Disposition{}
	}
	return nil
}

// The record backend stores some fields under short or snake_case keys
// (bp, hr, temp, reference, chief_complaint, next_appointment) while the
// entry form uses camelCase. Decoding accepts both spellings.

func (v *VitalSign) UnmarshalJSON(data []byte) error {
	var raw struct {
		Date          Date    `json:"date"`
		Time          string  `json:"time"`
		BloodPressure *string `json:"bloodPressure"`
		BP            *string `json:"bp"`
		HeartRate     *string `json:"heartRate"`
		HR            *string `json:"hr"`
		Temperature   *string `json:"temperature"`
		Temp          *string `json:"temp"`
		Weight        string  `json:"weight"`
		Height        string  `json:"height"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*v = VitalSign{
		Date:          raw.Date,
		Time:          raw.Time,
		BloodPressure: ParseBloodPressure(firstOf(raw.BloodPressure, raw.BP)),
		HeartRate:     ParseMeasurement(firstOf(raw.HeartRate, raw.HR), constvars.UnitBeatsPerMinute),
		Temperature:   ParseMeasurement(firstOf(raw.Temperature, raw.Temp), constvars.UnitCelsius),
		Weight:        ParseMeasurement(raw.Weight, constvars.UnitKilogram),
		Height:        ParseMeasurement(raw.Height, constvars.UnitCentimeter),
	}
	return nil
}

func (l *LabResult) UnmarshalJSON(data []byte) error {
	var raw struct {
		Date           Date      `json:"date"`
		TestName       *string   `json:"testName"`
		Test           *string   `json:"test"`
		Result         string    `json:"result"`
		ReferenceRange *string   `json:"referenceRange"`
		Reference      *string   `json:"reference"`
		Status         LabStatus `json:"status"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*l = LabResult{
		Date:           raw.Date,
		Test:           firstOf(raw.TestName, raw.Test),
		Result:         raw.Result,
		ReferenceRange: firstOf(raw.ReferenceRange, raw.Reference),
		Status:         raw.Status,
	}
	return nil
}

func (c *ConsultationNote) UnmarshalJSON(data []byte) error {
	var raw struct {
		Date                Date    `json:"date"`
		Doctor              string  `json:"doctor"`
		Specialty           string  `json:"specialty"`
		ChiefComplaint      *string `json:"chiefComplaint"`
		ChiefComplaintSnake *string `json:"chief_complaint"`
		Assessment          string  `json:"assessment"`
		Plan                string  `json:"plan"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*c = ConsultationNote{
		Date:           raw.Date,
		Doctor:         raw.Doctor,
		Specialty:      raw.Specialty,
		ChiefComplaint: firstOf(raw.ChiefComplaint, raw.ChiefComplaintSnake),
		Assessment:     raw.Assessment,
		Plan:           raw.Plan,
	}
	return nil
}

func (d *Disposition) UnmarshalJSON(data []byte) error {
	var raw struct {
		Date                 Date   `json:"date"`
		Status               string `json:"status"`
		Instructions         string `json:"instructions"`
		NextAppointment      *Date  `json:"nextAppointment"`
		NextAppointmentSnake *Date  `json:"next_appointment"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	next := raw.NextAppointment
	if next == nil || next.IsZero() {
		next = raw.NextAppointmentSnake
	}
	if next != nil && next.IsZero() {
		next = nil
	}

	*d = Disposition{
		Date:            raw.Date,
		Status:          raw.Status,
		Instructions:    raw.Instructions,
		NextAppointment: next,
	}
	return nil
}

func firstOf(values ...*string) string {
	for _, value := range values {
		if value != nil && *value != "" {
			return *value
		}
	}
	return ""
}
