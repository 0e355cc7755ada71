package domain

import (
	"errors"
	"testing"
)

func TestParseApplicationStatus(t *testing.T) {
	cases := []struct {
		raw     string
		want    ApplicationStatus
		wantErr bool
	}{
		{"pending", StatusPending, false},
		{" Lolos_Berkas ", StatusLolosBerkas, false},
		{"diterima", StatusDiterima, false},
		{"ditolak", StatusDitolak, false},
		{"lolos_wawancara", StatusLolosWawancara, false},
		{"approved", "", true},
		{"", "", true},
	}
	for _, tc := range cases {
		got, err := ParseApplicationStatus(tc.raw)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseApplicationStatus(%q) expected error", tc.raw)
			} else if !errors.Is(err, ErrInvalidInput) {
				t.Errorf("ParseApplicationStatus(%q) error kind = %v", tc.raw, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseApplicationStatus(%q) error = %v", tc.raw, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseApplicationStatus(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestCanTransitionPipeline(t *testing.T) {
	allowed := []struct{ from, to ApplicationStatus }{
		{StatusPending, StatusLolosBerkas},
		{StatusPending, StatusDitolak},
		{StatusLolosBerkas, StatusLolosWawancara},
		{StatusLolosBerkas, StatusDitolak},
		{StatusLolosWawancara, StatusDiterima},
		{StatusLolosWawancara, StatusDitolak},
	}
	for _, tc := range allowed {
		if !CanTransition(tc.from, tc.to) {
			t.Errorf("CanTransition(%s, %s) = false, want true", tc.from, tc.to)
		}
	}

	blocked := []struct{ from, to ApplicationStatus }{
		{StatusPending, StatusDiterima},
		{StatusPending, StatusLolosWawancara},
		{StatusDiterima, StatusDitolak},
		{StatusDitolak, StatusPending},
		{StatusLolosBerkas, StatusDiterima},
	}
	for _, tc := range blocked {
		if CanTransition(tc.from, tc.to) {
			t.Errorf("CanTransition(%s, %s) = true, want false", tc.from, tc.to)
		}
	}

	if !StatusDiterima.Terminal() || !StatusDitolak.Terminal() {
		t.Error("diterima and ditolak must be terminal")
	}
	if StatusLolosBerkas.Terminal() {
		t.Error("lolos_berkas must not be terminal")
	}
}

func TestStatusFormRequiresInterviewTripleForLolosBerkas(t *testing.T) {
	form := StatusForm{Status: StatusLolosBerkas, CatatanAdmin: "ok"}
	err := form.Validate()
	if err == nil {
		t.Fatal("expected validation error for empty interview fields")
	}
	var vErr *FormValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected *FormValidationError, got %T", err)
	}
	if len(vErr.Fields) != 3 {
		t.Fatalf("expected 3 field errors, got %d: %v", len(vErr.Fields), vErr.Fields)
	}
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("validation error must unwrap to ErrInvalidInput, got %v", err)
	}

	// blank-but-present values still fail
	form = StatusForm{
		Status:        StatusLolosBerkas,
		InterviewDate: "2025-08-01",
		InterviewTime: "   ",
		InterviewLink: "https://meet.example/x",
	}
	err = form.Validate()
	if err == nil {
		t.Fatal("expected validation error for blank interview time")
	}
	if !errors.As(err, &vErr) || len(vErr.Fields) != 1 || vErr.Fields[0].Field != "interview_time" {
		t.Fatalf("expected single interview_time error, got %v", err)
	}

	form.InterviewTime = "10:00"
	if err := form.Validate(); err != nil {
		t.Fatalf("complete lolos_berkas form must validate, got %v", err)
	}
}

func TestStatusFormIgnoresInterviewFieldsForOtherTargets(t *testing.T) {
	// reject-without-reason: empty catatan_admin is allowed
	form := StatusForm{Status: StatusDitolak}
	if err := form.Validate(); err != nil {
		t.Fatalf("ditolak with empty note must validate, got %v", err)
	}

	// moving to diterima never re-validates interview fields
	form = StatusForm{Status: StatusDiterima, InterviewLink: "https://meet.example/x"}
	if err := form.Validate(); err != nil {
		t.Fatalf("diterima with existing interview link must validate, got %v", err)
	}

	form = StatusForm{Status: StatusLolosWawancara}
	if err := form.Validate(); err != nil {
		t.Fatalf("lolos_wawancara without interview fields must validate, got %v", err)
	}
}

func TestValidateBulkTarget(t *testing.T) {
	if err := ValidateBulkTarget(StatusDitolak); err != nil {
		t.Fatalf("ditolak must be a legal bulk target, got %v", err)
	}
	if err := ValidateBulkTarget(StatusDiterima); err != nil {
		t.Fatalf("diterima must be a legal bulk target, got %v", err)
	}
	if err := ValidateBulkTarget(StatusLolosBerkas); err == nil {
		t.Fatal("lolos_berkas must never be a bulk target")
	} else if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("bulk gate error kind = %v", err)
	}
	if err := ValidateBulkTarget(ApplicationStatus("nope")); err == nil {
		t.Fatal("unknown status must be rejected")
	}
}
