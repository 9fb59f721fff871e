package medical_records

import (
	"emr-service/internal/app/models"
	"emr-service/internal/pkg/constvars"
	"emr-service/internal/pkg/dto/requests"
	"emr-service/internal/pkg/exceptions"
	"emr-service/internal/pkg/utils"
	"time"

	"github.com/go-playground/validator/v10"
)

const tagNotPastDate = "not_past_date"

type ValidatorOption func(*EncounterValidator)

// WithClock replaces time.Now when deciding what "today" is.
func WithClock(now func() time.Time) ValidatorOption {
	return func(v *EncounterValidator) {
		v.now = now
	}
}

// WithLocation sets the timezone in which appointment dates are compared.
func WithLocation(location *time.Location) ValidatorOption {
	return func(v *EncounterValidator) {
		if location != nil {
			v.location = location
		}
	}
}

// EncounterValidator checks a draft encounter field by field and converts it
// into the typed entry that is appended to the record.
type EncounterValidator struct {
	validate *validator.Validate
	location *time.Location
	now      func() time.Time
}

func NewEncounterValidator(opts ...ValidatorOption) *EncounterValidator {
	v := &EncounterValidator{
		validate: utils.NewValidator(),
		location: time.Local,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(v)
	}
	_ = v.validate.RegisterValidation(tagNotPastDate, v.notPastDate)
	return v
}

// Validate reports every failing field in struct order, so the same draft
// always produces the same errors. The draft is not modified.
func (v *EncounterValidator) Validate(draft *requests.DraftEncounter) (*models.ValidatedEncounter, error) {
	if draft == nil {
		return nil, exceptions.ValidationErrors{{
			Field:   "encounter",
			Tag:     "required",
			Message: constvars.CustomValidationErrorMessages["required"],
		}}
	}

	err := v.validate.Struct(draft)
	if err != nil {
		fieldErrs := exceptions.NewValidationErrors(err)
		if len(fieldErrs) == 0 {
			return nil, err
		}
		return nil, fieldErrs
	}
	return toEncounter(draft)
}

func (v *EncounterValidator) today() time.Time {
	now := v.now().In(v.location)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, v.location)
}

func (v *EncounterValidator) notPastDate(fl validator.FieldLevel) bool {
	date, err := time.ParseInLocation(constvars.DateLayout, fl.Field().String(), v.location)
	if err != nil {
		return false
	}
	return !date.Before(v.today())
}

func toEncounter(draft *requests.DraftEncounter) (*models.ValidatedEncounter, error) {
	var parseErr error
	date := func(value string) models.Date {
		parsed, err := models.ParseDate(value)
		if err != nil && parseErr == nil {
			parseErr = err
		}
		return parsed
	}

	labStatus, err := models.ParseLabStatus(draft.LabResults.Status)
	if err != nil {
		return nil, err
	}

	var nextAppointment *models.Date
	if draft.Disposition.NextAppointment != "" {
		next := date(draft.Disposition.NextAppointment)
		nextAppointment = &next
	}

	encounter := &models.ValidatedEncounter{
		Diagnosis: models.Diagnosis{
			Date:      date(draft.Diagnosis.Date),
			Diagnosis: draft.Diagnosis.Diagnosis,
			ICD10:     draft.Diagnosis.ICD10,
			Doctor:    draft.Diagnosis.Doctor,
		},
		Vitals: models.VitalSign{
			Date:          date(draft.Vitals.Date),
			Time:          draft.Vitals.Time,
			BloodPressure: models.ParseBloodPressure(draft.Vitals.BloodPressure),
			HeartRate:     models.ParseMeasurement(draft.Vitals.HeartRate, constvars.UnitBeatsPerMinute),
			Temperature:   models.ParseMeasurement(draft.Vitals.Temperature, constvars.UnitCelsius),
			Weight:        models.ParseMeasurement(draft.Vitals.Weight, constvars.UnitKilogram),
			Height:        models.ParseMeasurement(draft.Vitals.Height, constvars.UnitCentimeter),
		},
		LabResults: models.LabResult{
			Date:           date(draft.LabResults.Date),
			Test:           draft.LabResults.TestName,
			Result:         draft.LabResults.Result,
			ReferenceRange: draft.LabResults.ReferenceRange,
			Status:         labStatus,
		},
		Treatments: models.Treatment{
			Date:       date(draft.Treatments.Date),
			Medication: draft.Treatments.Medication,
			Dosage:     draft.Treatments.Dosage,
			Duration:   draft.Treatments.Duration,
			Doctor:     draft.Treatments.Doctor,
		},
		ConsultationNotes: models.ConsultationNote{
			Date:           date(draft.ConsultationNotes.Date),
			Doctor:         draft.ConsultationNotes.Doctor,
			Specialty:      draft.ConsultationNotes.Specialty,
			ChiefComplaint: draft.ConsultationNotes.ChiefComplaint,
			Assessment:     draft.ConsultationNotes.Assessment,
			Plan:           draft.ConsultationNotes.Plan,
		},
		Disposition: models.Disposition{
			Date:            date(draft.Disposition.Date),
			Status:          draft.Disposition.Status,
			Instructions:    draft.Disposition.Instructions,
			NextAppointment: nextAppointment,
		},
	}
	if parseErr != nil {
		return nil, parseErr
	}
	return encounter, nil
}
