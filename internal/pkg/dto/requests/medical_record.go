package requests

// DraftEncounter is the encounter form exactly as the user entered it. Dates
// are kept as YYYY-MM-DD strings so a half filled form can be stored and
// shown again without loss.
type DraftEncounter struct {
	Diagnosis         DraftDiagnosis        `json:"diagnosis"`
	Vitals            DraftVitals           `json:"vitals"`
	LabResults        DraftLabResult        `json:"labResults"`
	Treatments        DraftTreatment        `json:"treatments"`
	ConsultationNotes DraftConsultationNote `json:"consultationNotes"`
	Disposition       DraftDisposition      `json:"disposition"`
}

type DraftDiagnosis struct {
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
	Diagnosis string `json:"diagnosis" validate:"required"`
	ICD10     string `json:"icd10" validate:"required"`
	Doctor    string `json:"doctor" validate:"required"`
}

type DraftVitals struct {
	Date          string `json:"date" validate:"required,datetime=2006-01-02"`
	Time          string `json:"time" validate:"required"`
	BloodPressure string `json:"bloodPressure" validate:"required"`
	HeartRate     string `json:"heartRate" validate:"required"`
	Temperature   string `json:"temperature" validate:"required"`
	Weight        string `json:"weight" validate:"required"`
	Height        string `json:"height" validate:"required"`
}

type DraftLabResult struct {
	Date           string `json:"date" validate:"required,datetime=2006-01-02"`
	TestName       string `json:"testName" validate:"required"`
	Result         string `json:"result" validate:"required"`
	ReferenceRange string `json:"referenceRange" validate:"required"`
	Status         string `json:"status" validate:"required,oneof=normal abnormal critical"`
}

type DraftTreatment struct {
	Date       string `json:"date" validate:"required,datetime=2006-01-02"`
	Medication string `json:"medication" validate:"required"`
	Dosage     string `json:"dosage" validate:"required"`
	Duration   string `json:"duration" validate:"required"`
	Doctor     string `json:"doctor" validate:"required"`
}

type DraftConsultationNote struct {
	Date           string `json:"date" validate:"required,datetime=2006-01-02"`
	Doctor         string `json:"doctor" validate:"required"`
	Specialty      string `json:"specialty" validate:"required"`
	ChiefComplaint string `json:"chiefComplaint" validate:"required"`
	Assessment     string `json:"assessment" validate:"required"`
	Plan           string `json:"plan" validate:"required"`
}

type DraftDisposition struct {
	Date            string `json:"date" validate:"required,datetime=2006-01-02"`
	Status          string `json:"status" validate:"required,oneof=discharged admitted transferred referred"`
	Instructions    string `json:"instructions" validate:"required"`
	NextAppointment string `json:"nextAppointment,omitempty" validate:"omitempty,datetime=2006-01-02,not_past_date"`
}
