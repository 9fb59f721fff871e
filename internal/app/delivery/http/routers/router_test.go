package routers

import (
	"bytes"
	"emr-service/internal/app/config"
	"emr-service/internal/app/contracts"
	"emr-service/internal/app/delivery/http/controllers"
	"emr-service/internal/app/delivery/http/middlewares"
	"emr-service/internal/app/services/core/medical_records"
	"emr-service/internal/app/services/core/patients"
	"emr-service/internal/app/services/core/workspaces"
	"emr-service/internal/app/services/emr_api/patient_records"
	"emr-service/internal/app/services/shared/drafts"
	"emr-service/internal/app/services/shared/events"
	"emr-service/internal/app/services/shared/locker"
	"emr-service/internal/pkg/constvars"
	"emr-service/internal/pkg/dto/requests"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const budiNIK = "3201234567890123"

const budiRecord = `{
  "personalInfo": {"name": "Budi Santoso", "nik": "3201234567890123", "birthDate": "1985-05-15", "gender": "Male", "address": "Jl. Merdeka No. 123, Jakarta", "phone": "081234567890"},
  "diagnosis": [{"date": "2023-05-10", "diagnosis": "Hypertension", "icd10": "I10", "doctor": "Dr. Ahmad"}],
  "vitals": [{"date": "2023-05-10", "time": "09:30", "bp": "140/90", "hr": "82", "temp": "36.7", "weight": "75kg", "height": "170cm"}],
  "labResults": [{"date": "2023-05-10", "test": "Blood Glucose", "result": "180 mg/dL", "reference": "70-100 mg/dL", "status": "High"}],
  "treatments": [],
  "consultationNotes": [],
  "disposition": []
}`

// recordBackend plays the remote EMR service.
type recordBackend struct {
	mu          sync.Mutex
	appended    []map[string]interface{}
	failMessage string
}

func (b *recordBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	nik := strings.TrimPrefix(r.URL.Path, constvars.ResourcePasien+"/")
	w.Header().Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)

	switch r.Method {
	case http.MethodGet:
		if nik != budiNIK {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"message":"not found"}`))
			return
		}
		_, _ = w.Write([]byte(budiRecord))
	case http.MethodPost:
		b.mu.Lock()
		defer b.mu.Unlock()
		if b.failMessage != "" {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"message":"` + b.failMessage + `"}`))
			return
		}
		var body map[string]interface{}
		_ = json.NewDecoder(r.Body).Decode(&body)
		b.appended = append(b.appended, body)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"success":true}`))
	}
}

func (b *recordBackend) appendedCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.appended)
}

func newTestRouter(t *testing.T, backend *recordBackend) http.Handler {
	t.Helper()
	logger := zap.NewNop()

	remote := httptest.NewServer(backend)
	t.Cleanup(remote.Close)

	internalConfig := &config.InternalConfig{
		App: config.App{
			Version:                    "v1",
			EndpointPrefix:             "api",
			CORSAllowedOrigins:         "*",
			MaxRequests:                1000,
			RequestBodyLimitInMegabyte: 1,
			WriteRateLimitPerMinute:    1000,
			WriteRateLimitBlockSeconds: 1,
		},
	}

	client := patient_records.NewPatientRecordClient(remote.URL, 5*time.Second, 0, logger)
	lockerService := locker.NewMemoryLockService(logger)
	draftStore := drafts.NewMemoryDraftStore(time.Hour)
	publisher := events.NewLogEventPublisher(logger)
	validator := medical_records.NewEncounterValidator(medical_records.WithLocation(time.UTC))

	registry := workspaces.NewWorkspaceRegistry(func(workspaceID string) (contracts.PatientDirectory, contracts.MedicalRecordSubmission) {
		directory := patients.NewPatientDirectory(client, logger)
		submission := medical_records.NewMedicalRecordSubmission(workspaceID, client, directory, validator, lockerService, draftStore, publisher, time.Minute, logger)
		return directory, submission
	}, time.Hour, logger)

	router := chi.NewRouter()
	SetupRoutes(
		router,
		internalConfig,
		middlewares.NewMiddlewares(logger, internalConfig),
		controllers.NewWorkspaceController(logger, registry),
		controllers.NewPatientController(logger, patients.NewPatientUsecase(client, registry, publisher, logger), 5*time.Second),
		controllers.NewMedicalRecordController(logger, medical_records.NewMedicalRecordUsecase(registry, logger), 5*time.Second),
		controllers.NewHealthController("v1"),
	)
	return router
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  []struct {
		Field string `json:"field"`
		Tag   string `json:"tag"`
	} `json:"errors"`
}

func doRequest(t *testing.T, handler http.Handler, method, path string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	var decoded envelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &decoded), rr.Body.String())
	return rr, decoded
}

func createWorkspace(t *testing.T, handler http.Handler) string {
	t.Helper()
	rr, body := doRequest(t, handler, http.MethodPost, "/api/v1/workspaces", nil)
	require.Equal(t, http.StatusCreated, rr.Code)

	var workspace struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &workspace))
	require.NotEmpty(t, workspace.ID)
	return workspace.ID
}

func encounterDraft() requests.DraftEncounter {
	today := time.Now().UTC().Format(constvars.DateLayout)
	return requests.DraftEncounter{
		Diagnosis:         requests.DraftDiagnosis{Date: today, Diagnosis: "Hypertension", ICD10: "I10", Doctor: "Dr. Ahmad"},
		Vitals:            requests.DraftVitals{Date: today, Time: "10:00", BloodPressure: "135/85", HeartRate: "78", Temperature: "36.5", Weight: "74", Height: "170"},
		LabResults:        requests.DraftLabResult{Date: today, TestName: "HbA1c", Result: "7.2%", ReferenceRange: "< 5.7%", Status: "abnormal"},
		Treatments:        requests.DraftTreatment{Date: today, Medication: "Metformin", Dosage: "500mg twice daily", Duration: "30 days", Doctor: "Dr. Siti"},
		ConsultationNotes: requests.DraftConsultationNote{Date: today, Doctor: "Dr. Siti", Specialty: "Internal Medicine", ChiefComplaint: "Routine control", Assessment: "Stable", Plan: "Continue therapy"},
		Disposition:       requests.DraftDisposition{Date: today, Status: "discharged", Instructions: "Return in one month", NextAppointment: time.Now().UTC().AddDate(0, 1, 0).Format(constvars.DateLayout)},
	}
}

func TestRouter_HealthCheck(t *testing.T) {
	handler := newTestRouter(t, &recordBackend{})

	rr, body := doRequest(t, handler, http.MethodGet, "/api/v1/healthz", nil)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, body.Success)
	assert.NotEmpty(t, rr.Header().Get(constvars.HeaderXRequestID))
}

func TestRouter_SearchPatient(t *testing.T) {
	handler := newTestRouter(t, &recordBackend{})
	workspaceID := createWorkspace(t, handler)

	t.Run("Loads Budi Santoso", func(t *testing.T) {
		rr, body := doRequest(t, handler, http.MethodPost, "/api/v1/workspaces/"+workspaceID+"/search", map[string]string{"nik": budiNIK})
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

		var state struct {
			Data struct {
				PersonalInfo struct {
					Name string `json:"name"`
				} `json:"personalInfo"`
			} `json:"data"`
			Loading bool    `json:"loading"`
			Error   *string `json:"error"`
		}
		require.NoError(t, json.Unmarshal(body.Data, &state))
		assert.Equal(t, "Budi Santoso", state.Data.PersonalInfo.Name)
		assert.False(t, state.Loading)
		assert.Nil(t, state.Error)
	})

	t.Run("Short NIK Is Rejected", func(t *testing.T) {
		rr, body := doRequest(t, handler, http.MethodPost, "/api/v1/workspaces/"+workspaceID+"/search", map[string]string{"nik": "12345"})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, constvars.ErrClientInvalidNIK, body.Message)
	})

	t.Run("Unknown NIK Is Not Found", func(t *testing.T) {
		rr, body := doRequest(t, handler, http.MethodPost, "/api/v1/workspaces/"+workspaceID+"/search", map[string]string{"nik": "3209999999999999"})
		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Equal(t, constvars.ErrClientPatientNotFound, body.Message)
	})

	t.Run("State Keeps The Last Loaded Record", func(t *testing.T) {
		rr, body := doRequest(t, handler, http.MethodGet, "/api/v1/workspaces/"+workspaceID+"/patient", nil)
		require.Equal(t, http.StatusOK, rr.Code)

		var state struct {
			Data  *json.RawMessage `json:"data"`
			Error *string          `json:"error"`
		}
		require.NoError(t, json.Unmarshal(body.Data, &state))
		assert.NotNil(t, state.Data)
		require.NotNil(t, state.Error)
		assert.Equal(t, constvars.ErrClientPatientNotFound, *state.Error)
	})

	t.Run("Unknown Workspace", func(t *testing.T) {
		rr, _ := doRequest(t, handler, http.MethodPost, "/api/v1/workspaces/missing/search", map[string]string{"nik": budiNIK})
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("Malformed Body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/workspaces/"+workspaceID+"/search", strings.NewReader("{"))
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Oversized Body Is Rejected", func(t *testing.T) {
		oversized := `{"nik":"` + strings.Repeat("3", 2<<20) + `"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/workspaces/"+workspaceID+"/search", strings.NewReader(oversized))
		req.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusRequestEntityTooLarge, rr.Code, rr.Body.String())
		assert.Equal(t, constvars.ErrClientRequestEntityTooLarge, decodeMessage(t, rr))
	})
}

func decodeMessage(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var decoded envelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &decoded), rr.Body.String())
	return decoded.Message
}

func TestRouter_FindPatientByNIK(t *testing.T) {
	handler := newTestRouter(t, &recordBackend{})

	rr, _ := doRequest(t, handler, http.MethodGet, "/api/v1/patients/"+budiNIK, nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr, _ = doRequest(t, handler, http.MethodGet, "/api/v1/patients/123", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestRouter_SubmitMedicalRecord(t *testing.T) {
	t.Run("Requires A Loaded Patient", func(t *testing.T) {
		backend := &recordBackend{}
		handler := newTestRouter(t, backend)
		workspaceID := createWorkspace(t, handler)

		rr, _ := doRequest(t, handler, http.MethodPost, "/api/v1/workspaces/"+workspaceID+"/medical-records", encounterDraft())

		assert.Equal(t, http.StatusPreconditionFailed, rr.Code)
		assert.Equal(t, 0, backend.appendedCount())
	})

	t.Run("Saves Encounter", func(t *testing.T) {
		backend := &recordBackend{}
		handler := newTestRouter(t, backend)
		workspaceID := createWorkspace(t, handler)
		doRequest(t, handler, http.MethodPost, "/api/v1/workspaces/"+workspaceID+"/search", map[string]string{"nik": budiNIK})

		rr, body := doRequest(t, handler, http.MethodPost, "/api/v1/workspaces/"+workspaceID+"/medical-records", encounterDraft())

		require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
		assert.True(t, body.Success)
		require.Equal(t, 1, backend.appendedCount())

		appended := backend.appended[0]
		for _, key := range []string{"diagnosis", "vitals", "labResults", "treatments", "consultationNotes", "disposition"} {
			assert.Contains(t, appended, key)
		}
		diagnosis, ok := appended["diagnosis"].(map[string]interface{})
		require.True(t, ok, "each category is a single object")
		assert.Equal(t, "I10", diagnosis["icd10"])

		rr, _ = doRequest(t, handler, http.MethodGet, "/api/v1/workspaces/"+workspaceID+"/medical-records/draft", nil)
		assert.Equal(t, http.StatusNotFound, rr.Code, "draft is cleared after a successful save")
	})

	t.Run("Field Errors", func(t *testing.T) {
		backend := &recordBackend{}
		handler := newTestRouter(t, backend)
		workspaceID := createWorkspace(t, handler)
		doRequest(t, handler, http.MethodPost, "/api/v1/workspaces/"+workspaceID+"/search", map[string]string{"nik": budiNIK})

		draft := encounterDraft()
		draft.Diagnosis.Doctor = ""
		rr, body := doRequest(t, handler, http.MethodPost, "/api/v1/workspaces/"+workspaceID+"/medical-records", draft)

		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
		require.Len(t, body.Errors, 1)
		assert.Equal(t, "diagnosis.doctor", body.Errors[0].Field)
		assert.Equal(t, 0, backend.appendedCount())
	})

	t.Run("Server Failure Keeps Draft", func(t *testing.T) {
		backend := &recordBackend{failMessage: "db unavailable"}
		handler := newTestRouter(t, backend)
		workspaceID := createWorkspace(t, handler)
		doRequest(t, handler, http.MethodPost, "/api/v1/workspaces/"+workspaceID+"/search", map[string]string{"nik": budiNIK})

		rr, body := doRequest(t, handler, http.MethodPost, "/api/v1/workspaces/"+workspaceID+"/medical-records", encounterDraft())

		assert.Equal(t, http.StatusBadGateway, rr.Code)
		assert.Equal(t, "db unavailable", body.Message)

		rr, body = doRequest(t, handler, http.MethodGet, "/api/v1/workspaces/"+workspaceID+"/medical-records/draft", nil)
		require.Equal(t, http.StatusOK, rr.Code)

		var draft requests.DraftEncounter
		require.NoError(t, json.Unmarshal(body.Data, &draft))
		assert.Equal(t, encounterDraft(), draft)
	})
}

func TestRouter_ValidateMedicalRecord(t *testing.T) {
	backend := &recordBackend{}
	handler := newTestRouter(t, backend)
	workspaceID := createWorkspace(t, handler)

	draft := encounterDraft()
	draft.Disposition.NextAppointment = "2000-01-01"
	rr, body := doRequest(t, handler, http.MethodPost, "/api/v1/workspaces/"+workspaceID+"/medical-records/validate", draft)

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	require.Len(t, body.Errors, 1)
	assert.Equal(t, "disposition.nextAppointment", body.Errors[0].Field)

	rr, _ = doRequest(t, handler, http.MethodPost, "/api/v1/workspaces/"+workspaceID+"/medical-records/validate", encounterDraft())
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 0, backend.appendedCount())
}

func TestRouter_CloseWorkspace(t *testing.T) {
	handler := newTestRouter(t, &recordBackend{})
	workspaceID := createWorkspace(t, handler)

	rr, _ := doRequest(t, handler, http.MethodDelete, "/api/v1/workspaces/"+workspaceID, nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr, _ = doRequest(t, handler, http.MethodGet, "/api/v1/workspaces/"+workspaceID+"/patient", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestAllowedOrigins(t *testing.T) {
	assert.Equal(t, []string{"*"}, allowedOrigins(""))
	assert.Equal(t, []string{"https://emr.example.id", "http://localhost:3000"}, allowedOrigins("https://emr.example.id, http://localhost:3000"))
}
