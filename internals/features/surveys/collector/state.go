package collector

import "errors"

// State is the lifecycle of one form session.
type State int

const (
	StateEditing State = iota
	StateValidating
	StateSubmitting
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateEditing:
		return "editing"
	case StateValidating:
		return "validating"
	case StateSubmitting:
		return "submitting"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

var (
	ErrSubmissionInFlight = errors.New("submission already in flight")
	ErrAlreadySubmitted   = errors.New("survey already submitted")
	ErrUnknownSubAspect   = errors.New("unknown sub aspect")
	ErrClosed             = errors.New("session closed")
)

// ProblemKind classifies a user-facing failure.
type ProblemKind int

const (
	ProblemRespondentIncomplete ProblemKind = iota + 1
	ProblemConsentRequired
	ProblemSurveyIncomplete
	ProblemSubmitFailed
)

// Problem is a failure shown to the respondent. Status is the upstream HTTP
// status when the problem came back from the relay.
type Problem struct {
	Kind    ProblemKind
	Title   string
	Message string
	Status  int
}

func (p *Problem) Error() string {
	return p.Title + ": " + p.Message
}

// Local reports whether the problem was found before any network call.
func (p *Problem) Local() bool {
	return p.Status == 0 && p.Kind != ProblemSubmitFailed
}

const (
	SuccessTitle   = "Data berhasil disimpan"
	SuccessMessage = "Terima kasih! Respon kamu sudah tersimpan."
)

func respondentIncomplete() *Problem {
	return &Problem{
		Kind:    ProblemRespondentIncomplete,
		Title:   "Data responden belum lengkap",
		Message: "Data responden ada yang belum di isi. Silakan lengkapi data responden terlebih dulu.",
	}
}

func consentRequired(status int) *Problem {
	return &Problem{
		Kind:    ProblemConsentRequired,
		Title:   "Persetujuan diperlukan",
		Message: "Silakan centang kotak persetujuan.",
		Status:  status,
	}
}

func surveyIncomplete() *Problem {
	return &Problem{
		Kind:    ProblemSurveyIncomplete,
		Title:   "Survey belum lengkap",
		Message: "Ada survey yang belum di isi. Silakan lengkapi jawaban terlebih dulu.",
	}
}

func submitFailed(status int, message string) *Problem {
	return &Problem{
		Kind:    ProblemSubmitFailed,
		Title:   "Submit gagal",
		Message: message,
		Status:  status,
	}
}
