package patients

import (
	"context"
	"emr-service/internal/app/contracts"
	"emr-service/internal/app/models"
	"emr-service/internal/pkg/constvars"
	"emr-service/internal/pkg/exceptions"
	"sync"

	"go.uber.org/zap"
)

type DirectoryOption func(*patientDirectory)

// WithAutoFetch makes SetNIK start a fetch in the background, the way a
// record screen loads as soon as a NIK is known.
func WithAutoFetch(enabled bool) DirectoryOption {
	return func(d *patientDirectory) {
		d.autoFetch = enabled
	}
}

// WithFetchContext sets the parent context for background fetches started by
// SetNIK. It defaults to context.Background.
func WithFetchContext(ctx context.Context) DirectoryOption {
	return func(d *patientDirectory) {
		d.baseCtx = ctx
	}
}

type patientDirectory struct {
	client    contracts.PatientRecordClient
	log       *zap.Logger
	autoFetch bool
	baseCtx   context.Context

	mu        sync.Mutex
	nik       string
	state     models.FetchState
	latest    uint64
	observers map[int]func(models.FetchState)
	nextObsID int

	notifyMu  sync.Mutex
	delivered uint64

	inFlight sync.WaitGroup
}

func NewPatientDirectory(client contracts.PatientRecordClient, logger *zap.Logger, opts ...DirectoryOption) contracts.PatientDirectory {
	directory := &patientDirectory{
		client:    client,
		log:       logger,
		baseCtx:   context.Background(),
		observers: make(map[int]func(models.FetchState)),
	}
	for _, opt := range opts {
		opt(directory)
	}
	return directory
}

// Fetch loads the record for nik, or for the current NIK when nik is empty.
// Results are applied to the state only while they belong to the most
// recently issued fetch; older completions are returned to their caller but
// never shown.
func (d *patientDirectory) Fetch(ctx context.Context, nik string) (*models.PatientRecord, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	d.mu.Lock()
	if nik == "" {
		nik = d.nik
	}
	if nik == "" {
		// latest is left alone: a fetch in flight always has d.nik set, so
		// there is none here whose completion could overwrite this error.
		message := constvars.ErrClientNoNIKProvided
		d.state.Loading = false
		d.state.Error = &message
		snapshot := d.state
		d.mu.Unlock()

		d.log.Warn("patientDirectory.Fetch called without NIK",
			zap.String(constvars.LoggingRequestIDKey, requestID),
		)
		d.notify(snapshot)
		return nil, exceptions.ErrNIKRequired
	}

	d.latest++
	seq := d.latest
	d.nik = nik
	d.state.NIK = nik
	d.state.Loading = true
	d.state.Error = nil
	d.state.Sequence = seq
	snapshot := d.state
	d.mu.Unlock()

	d.log.Info("patientDirectory.Fetch called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingNIKKey, nik),
		zap.Uint64(constvars.LoggingSequenceKey, seq),
	)
	d.notify(snapshot)

	record, err := d.client.FindPatientByNIK(ctx, nik)

	d.mu.Lock()
	if seq != d.latest {
		latest := d.latest
		d.mu.Unlock()

		d.log.Info("patientDirectory.Fetch discarded stale response",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingNIKKey, nik),
			zap.Uint64(constvars.LoggingSequenceKey, seq),
			zap.Uint64(constvars.LoggingLatestSequenceKey, latest),
		)
		return record, err
	}

	d.state.Loading = false
	if err != nil {
		message := exceptions.UserMessage(err)
		d.state.Error = &message
	} else {
		d.state.Data = record
		d.state.Error = nil
	}
	snapshot = d.state
	d.mu.Unlock()

	if err != nil {
		d.log.Error("patientDirectory.Fetch failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingNIKKey, nik),
			zap.Error(err),
		)
	} else {
		d.log.Info("patientDirectory.Fetch succeeded",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingNIKKey, nik),
		)
	}
	d.notify(snapshot)
	return record, err
}

func (d *patientDirectory) SetNIK(ctx context.Context, nik string) {
	d.mu.Lock()
	d.nik = nik
	autoFetch := d.autoFetch
	d.mu.Unlock()

	if !autoFetch || nik == "" {
		return
	}

	fetchCtx := d.baseCtx
	if requestID, ok := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string); ok {
		fetchCtx = context.WithValue(fetchCtx, constvars.CONTEXT_REQUEST_ID_KEY, requestID)
	}

	d.inFlight.Add(1)
	go func() {
		defer d.inFlight.Done()
		d.Fetch(fetchCtx, nik)
	}()
}

func (d *patientDirectory) State() models.FetchState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// Subscribe registers observer for every state transition. Observers run on
// the goroutine that caused the transition, one at a time and in sequence
// order. An observer must not call Fetch on the same directory.
func (d *patientDirectory) Subscribe(observer func(models.FetchState)) func() {
	d.mu.Lock()
	id := d.nextObsID
	d.nextObsID++
	d.observers[id] = observer
	d.mu.Unlock()

	return func() {
		d.mu.Lock()
		delete(d.observers, id)
		d.mu.Unlock()
	}
}

// Wait blocks until fetches started by SetNIK have completed.
func (d *patientDirectory) Wait() {
	d.inFlight.Wait()
}

// notify delivers snapshots in sequence order. A snapshot older than one
// already delivered is dropped, so a completion accepted just before a newer
// fetch started cannot reach observers after that fetch's loading state.
func (d *patientDirectory) notify(state models.FetchState) {
	d.notifyMu.Lock()
	defer d.notifyMu.Unlock()
	if state.Sequence < d.delivered {
		return
	}
	d.delivered = state.Sequence

	d.mu.Lock()
	observers := make([]func(models.FetchState), 0, len(d.observers))
	for _, observer := range d.observers {
		observers = append(observers, observer)
	}
	d.mu.Unlock()

	for _, observer := range observers {
		observer(state)
	}
}
