package domain

import "time"

// User is the applicant identity embedded in an application record.
type User struct {
	ID    int    `json:"id"`
	Nama  string `json:"nama"`
	Email string `json:"email"`
}

// VerificationProgress is computed server-side from document completeness.
type VerificationProgress struct {
	Percentage int `json:"percentage"`
	Verified   int `json:"verified"`
	Total      int `json:"total"`
}

// Application is one scholarship submission, one per applicant per period.
// All fields are owned by the Scholarship API; the client never mutates
// them except through a status update followed by a full refresh.
type Application struct {
	ID            int               `json:"id"`
	BeswanID      int               `json:"beswan_id"`
	User          User              `json:"user"`
	Status        ApplicationStatus `json:"status"`
	StatusDisplay string            `json:"status_display,omitempty"`
	SubmittedAt   *time.Time        `json:"submitted_at,omitempty"`
	FinalizedAt   *time.Time        `json:"finalized_at,omitempty"`
	InterviewDate string            `json:"interview_date,omitempty"`
	InterviewTime string            `json:"interview_time,omitempty"`
	InterviewLink string            `json:"interview_link,omitempty"`
	CatatanAdmin  string            `json:"catatan_admin,omitempty"`

	VerificationProgress *VerificationProgress `json:"verification_progress,omitempty"`
	Reviewer             *User                 `json:"reviewer,omitempty"`
}

// ApplicationDetail is the full nested record behind a single row,
// display-only.
type ApplicationDetail struct {
	Application

	Keluarga  map[string]any     `json:"keluarga,omitempty"`
	Alamat    map[string]any     `json:"alamat,omitempty"`
	Sekolah   map[string]any     `json:"sekolah,omitempty"`
	Documents []UploadedDocument `json:"documents,omitempty"`
	Breakdown map[string]int     `json:"verification_breakdown,omitempty"`
}

// ListFilter narrows the application listing. Zero values mean "no
// constraint"; Status "all" is treated the same as empty.
type ListFilter struct {
	Search    string
	Status    string
	Period    string
	Finalized string
}

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

type Sort struct {
	Field string
	Order SortOrder
}

// PerPageChoices is the fixed page-size set the listing accepts.
var PerPageChoices = []int{10, 15, 25, 50}

func ValidPerPage(n int) bool {
	for _, c := range PerPageChoices {
		if n == c {
			return true
		}
	}
	return false
}

// ListQuery is the assembled request for one page of applications.
type ListQuery struct {
	Filter  ListFilter
	Sort    Sort
	Page    int
	PerPage int
}

// PageMeta mirrors the list envelope's meta block.
type PageMeta struct {
	LastPage int `json:"last_page"`
	Total    int `json:"total"`
}

type ApplicationPage struct {
	Applications []Application
	Meta         PageMeta
}

// Statistics is the aggregate returned by /admin/applications/statistics.
type Statistics struct {
	Total    int            `json:"total"`
	ByStatus map[string]int `json:"by_status"`
	Periods  []PeriodStats  `json:"periods,omitempty"`
}

type PeriodStats struct {
	Period string         `json:"period"`
	Total  int            `json:"total"`
	Counts map[string]int `json:"by_status,omitempty"`
}

// MediaSosial is the auxiliary social/contact link configuration.
type MediaSosial struct {
	ID            int    `json:"id,omitempty"`
	InstagramLink string `json:"instagram_link,omitempty"`
	FacebookLink  string `json:"facebook_link,omitempty"`
	TwitterLink   string `json:"twitter_link,omitempty"`
	YoutubeLink   string `json:"youtube_link,omitempty"`
	LinkedinLink  string `json:"linkedin_link,omitempty"`
	WhatsappLink  string `json:"whatsapp_link,omitempty"`
}
