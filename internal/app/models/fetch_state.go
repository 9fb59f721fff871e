package models

// FetchState mirrors what a record screen renders: the last loaded record,
// whether a request is outstanding and the last error message. Data is
// shared between snapshots and must be treated as read only.
type FetchState struct {
	NIK      string         `json:"nik,omitempty"`
	Data     *PatientRecord `json:"data"`
	Loading  bool           `json:"loading"`
	Error    *string        `json:"error"`
	Sequence uint64         `json:"-"`
}

// HasRecordFor reports whether the loaded record belongs to nik.
func (s FetchState) HasRecordFor(nik string) bool {
	return s.Data != nil && s.Data.Key() == nik
}

func (s FetchState) ErrorMessage() string {
	if s.Error == nil {
		return ""
	}
	return *s.Error
}
