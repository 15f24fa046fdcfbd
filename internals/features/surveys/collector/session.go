// Package collector tracks the answers of one survey form session, validates
// them and submits them through the response relay.
package collector

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/bytedance/sonic"

	"surveikita_web/internals/features/surveys/normalizer"
)

const (
	DefaultRedirectTo    = "/terimakasih"
	DefaultRedirectDelay = time.Second
)

// Submitter posts an encoded SubmissionPayload for a survey and returns the
// upstream status and body.
type Submitter interface {
	SubmitResponses(ctx context.Context, surveyID string, payload []byte) (status int, body []byte, err error)
}

// Navigator moves the respondent to another page.
type Navigator interface {
	Navigate(to string)
}

type NavigatorFunc func(to string)

func (f NavigatorFunc) Navigate(to string) { f(to) }

type Options struct {
	RedirectTo    string
	RedirectDelay time.Duration
}

func (o Options) withDefaults() Options {
	if o.RedirectTo == "" {
		o.RedirectTo = DefaultRedirectTo
	}
	if o.RedirectDelay <= 0 {
		o.RedirectDelay = DefaultRedirectDelay
	}
	return o
}

// Session is the state of one form instance. A nil Navigator leaves the
// post-success navigation to the caller (see Redirect).
type Session struct {
	surveyID  string
	groups    []normalizer.AspectGroup
	submitter Submitter
	navigator Navigator
	opts      Options

	mu         sync.Mutex
	state      State
	respondent Respondent
	consent    bool
	ids        []string
	answers    map[string]string
	problem    *Problem
	notice     string
	timer      *time.Timer
	navigated  bool
	closed     bool
}

func NewSession(surveyID string, groups []normalizer.AspectGroup, submitter Submitter, navigator Navigator, opts Options) *Session {
	s := &Session{
		surveyID:  surveyID,
		groups:    groups,
		submitter: submitter,
		navigator: navigator,
		opts:      opts.withDefaults(),
		answers:   map[string]string{},
	}
	for _, sa := range normalizer.Flatten(groups) {
		if sa.ID == "" {
			continue
		}
		if _, seen := s.answers[sa.ID]; seen {
			continue
		}
		s.ids = append(s.ids, sa.ID)
		s.answers[sa.ID] = ""
	}
	return s
}

func (s *Session) SurveyID() string                 { return s.surveyID }
func (s *Session) Groups() []normalizer.AspectGroup { return s.groups }

// Redirect is where and after how long a succeeded session navigates.
func (s *Session) Redirect() (string, time.Duration) {
	return s.opts.RedirectTo, s.opts.RedirectDelay
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Problem is the last failure, nil when there is none.
func (s *Session) Problem() *Problem {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.problem == nil {
		return nil
	}
	p := *s.problem
	return &p
}

// Notice is the confirmation text of a succeeded session.
func (s *Session) Notice() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.notice
}

func (s *Session) Respondent() Respondent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.respondent
}

func (s *Session) Consent() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.consent
}

// Value returns the answer recorded for a sub-aspect.
func (s *Session) Value(id string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.answers[id]
}

// Answers returns a copy of the response map.
func (s *Session) Answers() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]string, len(s.answers))
	for k, v := range s.answers {
		out[k] = v
	}
	return out
}

// Missing lists the seeded ids without an answer, in display order.
func (s *Session) Missing() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.missingLocked()
}

func (s *Session) SetRespondent(r Respondent) error {
	return s.edit(func() error {
		s.respondent = r
		return nil
	})
}

func (s *Session) SetConsent(consent bool) error {
	return s.edit(func() error {
		s.consent = consent
		return nil
	})
}

// Answer records value for the sub-aspect id.
func (s *Session) Answer(id, value string) error {
	return s.edit(func() error {
		if _, ok := s.answers[id]; !ok {
			return fmt.Errorf("%w: %q", ErrUnknownSubAspect, id)
		}
		s.answers[id] = value
		return nil
	})
}

func (s *Session) edit(fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case s.closed:
		return ErrClosed
	case s.state == StateSucceeded:
		return ErrAlreadySubmitted
	}
	if err := fn(); err != nil {
		return err
	}
	if s.state == StateFailed {
		s.state = StateEditing
		s.problem = nil
	}
	return nil
}

// Validate checks the form without changing the session state.
func (s *Session) Validate() *Problem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.validateLocked()
}

func (s *Session) validateLocked() *Problem {
	if !s.respondent.Complete() {
		return respondentIncomplete()
	}
	if !s.consent {
		return consentRequired(0)
	}
	if len(s.missingLocked()) > 0 {
		return surveyIncomplete()
	}
	return nil
}

func (s *Session) missingLocked() []string {
	var missing []string
	for _, id := range s.ids {
		if strings.TrimSpace(s.answers[id]) == "" {
			missing = append(missing, id)
		}
	}
	return missing
}

// Payload builds the submission payload from the current form values.
func (s *Session) Payload() SubmissionPayload {
	s.mu.Lock()
	defer s.mu.Unlock()
	return BuildPayload(s.surveyID, s.consent, s.respondent, s.ids, s.answers)
}

// Submit validates the form and, when it passes, posts it once. A returned
// *Problem describes a validation or upstream failure.
func (s *Session) Submit(ctx context.Context) error {
	s.mu.Lock()
	switch {
	case s.closed:
		s.mu.Unlock()
		return ErrClosed
	case s.state == StateSubmitting:
		s.mu.Unlock()
		return ErrSubmissionInFlight
	case s.state == StateSucceeded:
		s.mu.Unlock()
		return ErrAlreadySubmitted
	}

	s.state = StateValidating
	if p := s.validateLocked(); p != nil {
		s.state = StateEditing
		s.problem = p
		s.mu.Unlock()
		return p
	}

	s.state = StateSubmitting
	s.problem = nil
	s.notice = ""
	payload := BuildPayload(s.surveyID, s.consent, s.respondent, s.ids, s.answers)
	s.mu.Unlock()

	status, body, err := s.post(ctx, payload)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		return s.failLocked(submitFailed(0, "Submit gagal: "+err.Error()))
	}
	if status < 200 || status > 299 {
		text := string(body)
		// TODO: switch to a structured error code once the survey API exposes one for missing consent.
		if status == 400 && strings.Contains(text, "Consent") {
			return s.failLocked(consentRequired(status))
		}
		msg := fmt.Sprintf("Submit gagal. Status: %d", status)
		if text != "" {
			msg += " - " + text
		}
		return s.failLocked(submitFailed(status, msg))
	}

	s.state = StateSucceeded
	s.notice = SuccessMessage
	s.scheduleRedirectLocked()
	return nil
}

func (s *Session) post(ctx context.Context, payload SubmissionPayload) (int, []byte, error) {
	raw, err := sonic.Marshal(payload)
	if err != nil {
		return 0, nil, fmt.Errorf("encode payload: %w", err)
	}
	return s.submitter.SubmitResponses(ctx, s.surveyID, raw)
}

func (s *Session) failLocked(p *Problem) error {
	s.state = StateFailed
	s.problem = p
	return p
}

func (s *Session) scheduleRedirectLocked() {
	if s.navigator == nil || s.closed {
		return
	}
	to := s.opts.RedirectTo
	s.timer = time.AfterFunc(s.opts.RedirectDelay, func() {
		s.mu.Lock()
		if s.closed || s.navigated {
			s.mu.Unlock()
			return
		}
		s.navigated = true
		s.mu.Unlock()
		s.navigator.Navigate(to)
	})
}

// Close tears the session down. A navigation that has not started yet will
// not run after Close returns.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}
