package requests

type SearchPatient struct {
	NIK string `json:"nik" validate:"required,min=10"`
}
