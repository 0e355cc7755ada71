package domain

import (
	"fmt"
	"strings"
)

type ApplicationStatus string

const (
	StatusPending        ApplicationStatus = "pending"
	StatusLolosBerkas    ApplicationStatus = "lolos_berkas"
	StatusLolosWawancara ApplicationStatus = "lolos_wawancara"
	StatusDiterima       ApplicationStatus = "diterima"
	StatusDitolak        ApplicationStatus = "ditolak"
)

func ParseApplicationStatus(raw string) (ApplicationStatus, error) {
	s := ApplicationStatus(strings.ToLower(strings.TrimSpace(raw)))
	if !s.Valid() {
		return "", fmt.Errorf("%w: unknown application status %q", ErrInvalidInput, raw)
	}
	return s, nil
}

func (s ApplicationStatus) Valid() bool {
	switch s {
	case StatusPending, StatusLolosBerkas, StatusLolosWawancara, StatusDiterima, StatusDitolak:
		return true
	}
	return false
}

// Terminal reports whether the review pipeline exposes no further
// transition from s.
func (s ApplicationStatus) Terminal() bool {
	return s == StatusDiterima || s == StatusDitolak
}

func (s ApplicationStatus) Display() string {
	switch s {
	case StatusPending:
		return "Menunggu Review"
	case StatusLolosBerkas:
		return "Lolos Berkas"
	case StatusLolosWawancara:
		return "Lolos Wawancara"
	case StatusDiterima:
		return "Diterima"
	case StatusDitolak:
		return "Ditolak"
	}
	return string(s)
}

// transitions is the advisory selection pipeline. The selector stays
// permissive (an admin may re-select any state); the only hard gate is
// interview-field completeness when the target is lolos_berkas.
var transitions = map[ApplicationStatus][]ApplicationStatus{
	StatusPending:        {StatusLolosBerkas, StatusDitolak},
	StatusLolosBerkas:    {StatusLolosWawancara, StatusDitolak},
	StatusLolosWawancara: {StatusDiterima, StatusDitolak},
	StatusDiterima:       {},
	StatusDitolak:        {},
}

// CanTransition reports whether to is the next expected stage after from.
func CanTransition(from, to ApplicationStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// StatusForm is the payload of a single-application status update.
// Interview fields use the wire formats of the admin API: date YYYY-MM-DD,
// time HH:MM.
type StatusForm struct {
	Status        ApplicationStatus `json:"status"`
	CatatanAdmin  string            `json:"catatan_admin"`
	InterviewDate string            `json:"interview_date"`
	InterviewTime string            `json:"interview_time"`
	InterviewLink string            `json:"interview_link"`
}

// FieldError marks a single form field that blocks submission.
type FieldError struct {
	Field  string
	Reason string
}

type FormValidationError struct {
	Fields []FieldError
}

func (e *FormValidationError) Error() string {
	if e == nil || len(e.Fields) == 0 {
		return "form tidak valid"
	}
	reasons := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		reasons = append(reasons, f.Reason)
	}
	return strings.Join(reasons, "; ")
}

func (e *FormValidationError) Unwrap() error { return ErrInvalidInput }

// Validate applies the client-side gate before any request is issued.
// A lolos_berkas target requires the full interview triple; other targets
// ignore whatever interview values the form carries.
func (f StatusForm) Validate() error {
	if !f.Status.Valid() {
		return &FormValidationError{Fields: []FieldError{{
			Field:  "status",
			Reason: fmt.Sprintf("status %q tidak dikenal", string(f.Status)),
		}}}
	}
	if f.Status != StatusLolosBerkas {
		return nil
	}

	var fields []FieldError
	if strings.TrimSpace(f.InterviewDate) == "" {
		fields = append(fields, FieldError{Field: "interview_date", Reason: "Tanggal wawancara wajib diisi"})
	}
	if strings.TrimSpace(f.InterviewTime) == "" {
		fields = append(fields, FieldError{Field: "interview_time", Reason: "Waktu wawancara wajib diisi"})
	}
	if strings.TrimSpace(f.InterviewLink) == "" {
		fields = append(fields, FieldError{Field: "interview_link", Reason: "Link wawancara wajib diisi"})
	}
	if len(fields) > 0 {
		return &FormValidationError{Fields: fields}
	}
	return nil
}

// ValidateBulkTarget gates bulk updates. lolos_berkas needs per-application
// interview scheduling and is never a legal bulk target.
func ValidateBulkTarget(status ApplicationStatus) error {
	if !status.Valid() {
		return fmt.Errorf("%w: unknown application status %q", ErrInvalidInput, string(status))
	}
	if status == StatusLolosBerkas {
		return fmt.Errorf("%w: status lolos_berkas memerlukan jadwal wawancara per aplikasi dan tidak dapat diterapkan massal", ErrInvalidInput)
	}
	return nil
}
