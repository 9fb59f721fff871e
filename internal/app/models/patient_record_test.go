package models

import (
	"os"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadSampleRecord(t *testing.T) []byte {
	t.Helper()
	data, err := os.ReadFile("testdata/patient_3201234567890123.json")
	require.NoError(t, err)
	return data
}

func TestPatientRecordDecode(t *testing.T) {
	t.Run("decodes the backend record shape", func(t *testing.T) {
		var record PatientRecord
		require.NoError(t, json.Unmarshal(loadSampleRecord(t), &record))
		require.NoError(t, record.Validate("3201234567890123"))

		assert.Equal(t, "Budi Santoso", record.PersonalInfo.Name)
		assert.Equal(t, GenderMale, record.PersonalInfo.Gender)
		assert.Equal(t, NewDate(1985, time.May, 15), record.PersonalInfo.BirthDate)

		require.Len(t, record.Diagnosis, 2)
		assert.Equal(t, "I10", record.Diagnosis[0].ICD10)
		assert.Equal(t, "E11", record.Diagnosis[1].ICD10, "entry order is kept")

		require.Len(t, record.Vitals, 1)
		vital := record.Vitals[0]
		assert.Equal(t, 140, vital.BloodPressure.Systolic)
		assert.Equal(t, 90, vital.BloodPressure.Diastolic)
		assert.Equal(t, 82.0, vital.HeartRate.Value)
		assert.Equal(t, "bpm", vital.HeartRate.Unit)
		assert.InDelta(t, 36.7, vital.Temperature.Value, 0.0001)
		assert.Equal(t, 75.0, vital.Weight.Value)
		assert.Equal(t, "cm", vital.Height.Unit)

		require.Len(t, record.LabResults, 2)
		assert.Equal(t, "Blood Glucose", record.LabResults[0].Test)
		assert.Equal(t, "70-100 mg/dL", record.LabResults[0].ReferenceRange)
		assert.Equal(t, LabStatusHigh, record.LabResults[0].Status)
		assert.Equal(t, "High", record.LabResults[0].Status.Display())

		assert.Equal(t, "Headache and dizziness", record.ConsultationNotes[0].ChiefComplaint)

		require.NotNil(t, record.Disposition[0].NextAppointment)
		assert.Equal(t, "2023-06-10", record.Disposition[0].NextAppointment.String())
	})

	t.Run("accepts camelCase keys used by the entry form", func(t *testing.T) {
		body := `{
			"date": "2024-01-02",
			"time": "10:00",
			"bloodPressure": "120/80",
			"heartRate": "70",
			"temperature": "36.5°C",
			"weight": "60kg",
			"height": "165cm"
		}`

		var vital VitalSign
		require.NoError(t, json.Unmarshal([]byte(body), &vital))

		assert.Equal(t, 120, vital.BloodPressure.Systolic)
		assert.Equal(t, 70.0, vital.HeartRate.Value)
	})

	t.Run("missing lists become empty", func(t *testing.T) {
		body := `{"personalInfo":{"name":"Siti","nik":"3201111111111111","birthDate":"1990-01-01","gender":"female","address":"","phone":""}}`

		var record PatientRecord
		require.NoError(t, json.Unmarshal([]byte(body), &record))
		require.NoError(t, record.Validate("3201111111111111"))

		assert.Equal(t, GenderFemale, record.PersonalInfo.Gender)
		assert.NotNil(t, record.Diagnosis)
		assert.Empty(t, record.Disposition)
	})

	t.Run("record for a different nik is rejected", func(t *testing.T) {
		var record PatientRecord
		require.NoError(t, json.Unmarshal(loadSampleRecord(t), &record))

		assert.Error(t, record.Validate("3209999999999999"))
	})

	t.Run("unknown gender fails decoding", func(t *testing.T) {
		body := `{"personalInfo":{"nik":"3201234567890123","gender":"unknown"}}`

		var record PatientRecord
		assert.Error(t, json.Unmarshal([]byte(body), &record))
	})

	t.Run("unknown lab status fails decoding", func(t *testing.T) {
		var lab LabResult
		assert.Error(t, json.Unmarshal([]byte(`{"date":"2024-01-01","test":"HbA1c","status":"pending"}`), &lab))
	})

	t.Run("malformed date fails decoding", func(t *testing.T) {
		var diagnosis Diagnosis
		assert.Error(t, json.Unmarshal([]byte(`{"date":"10/05/2023","diagnosis":"Flu"}`), &diagnosis))
	})
}

func TestValidatedEncounterWireFormat(t *testing.T) {
	next := NewDate(2030, time.January, 2)
	encounter := ValidatedEncounter{
		Diagnosis: Diagnosis{Date: NewDate(2024, time.March, 1), Diagnosis: "Hypertension", ICD10: "I10", Doctor: "Dr. Ahmad"},
		Vitals: VitalSign{
			Date:          NewDate(2024, time.March, 1),
			Time:          "09:00",
			BloodPressure: ParseBloodPressure("120/80"),
			HeartRate:     ParseMeasurement("72", "bpm"),
			Temperature:   ParseMeasurement("36.7°C", "°C"),
			Weight:        ParseMeasurement("70kg", "kg"),
			Height:        ParseMeasurement("170cm", "cm"),
		},
		LabResults:  LabResult{Date: NewDate(2024, time.March, 1), Test: "Glucose", Result: "95", ReferenceRange: "70-100", Status: LabStatusNormal},
		Disposition: Disposition{Date: NewDate(2024, time.March, 1), Status: "discharged", Instructions: "Rest", NextAppointment: &next},
	}

	body, err := json.Marshal(encounter)
	require.NoError(t, err)

	var decoded map[string]map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &decoded))

	assert.Equal(t, "2024-03-01", decoded["diagnosis"]["date"])
	assert.Equal(t, "120/80", decoded["vitals"]["bloodPressure"])
	assert.Equal(t, "36.7°C", decoded["vitals"]["temperature"])
	assert.Equal(t, "Glucose", decoded["labResults"]["testName"])
	assert.Equal(t, "normal", decoded["labResults"]["status"])
	assert.Equal(t, "2030-01-02", decoded["disposition"]["nextAppointment"])
	assert.Contains(t, decoded, "treatments")
	assert.Contains(t, decoded, "consultationNotes")
}
