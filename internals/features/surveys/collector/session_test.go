package collector

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"surveikita_web/internals/features/surveys/normalizer"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type call struct {
	surveyID string
	payload  []byte
}

type fakeSubmitter struct {
	mu      sync.Mutex
	calls   []call
	status  int
	body    string
	err     error
	gate    chan struct{}
	entered chan struct{}
}

func (f *fakeSubmitter) SubmitResponses(ctx context.Context, surveyID string, payload []byte) (int, []byte, error) {
	f.mu.Lock()
	f.calls = append(f.calls, call{surveyID: surveyID, payload: payload})
	f.mu.Unlock()
	if f.entered != nil {
		f.entered <- struct{}{}
	}
	if f.gate != nil {
		<-f.gate
	}
	return f.status, []byte(f.body), f.err
}

func (f *fakeSubmitter) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type recordingNavigator struct {
	mu   sync.Mutex
	dest []string
	hit  chan string
}

func newNavigator() *recordingNavigator {
	return &recordingNavigator{hit: make(chan string, 4)}
}

func (n *recordingNavigator) Navigate(to string) {
	n.mu.Lock()
	n.dest = append(n.dest, to)
	n.mu.Unlock()
	n.hit <- to
}

func (n *recordingNavigator) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.dest)
}

func testGroups() []normalizer.AspectGroup {
	return []normalizer.AspectGroup{
		{Name: "Pelayanan", SubAspects: []normalizer.SubAspect{{ID: "q1", Label: "Ramah"}, {ID: "q2", Label: "Cepat"}}},
		{Name: "Fasilitas", SubAspects: []normalizer.SubAspect{{ID: "q3", Label: "Bersih"}, {ID: "q1", Label: "Duplikat"}, {Label: "Tanpa id"}}},
	}
}

func validRespondent() Respondent {
	return Respondent{Name: "Siti", Job: "Wiraswasta", Gender: "Perempuan", Age: "34", Education: "D4/S1"}
}

func filledSession(t *testing.T, sub Submitter, nav Navigator, opts Options) *Session {
	t.Helper()
	s := NewSession("srv-1", testGroups(), sub, nav, opts)
	require.NoError(t, s.SetRespondent(validRespondent()))
	require.NoError(t, s.SetConsent(true))
	require.NoError(t, s.Answer("q1", "Setuju"))
	require.NoError(t, s.Answer("q2", "Netral"))
	require.NoError(t, s.Answer("q3", "Tidak Setuju"))
	return s
}

func TestNewSessionSeedsEveryID(t *testing.T) {
	s := NewSession("srv-1", testGroups(), &fakeSubmitter{}, nil, Options{})
	assert.Equal(t, map[string]string{"q1": "", "q2": "", "q3": ""}, s.Answers())
	assert.Equal(t, []string{"q1", "q2", "q3"}, s.Missing())
	assert.Equal(t, StateEditing, s.State())

	to, delay := s.Redirect()
	assert.Equal(t, "/terimakasih", to)
	assert.Equal(t, time.Second, delay)
}

func TestSubmitBlocked(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(s *Session)
		kind   ProblemKind
		title  string
	}{
		{"empty name", func(s *Session) { r := validRespondent(); r.Name = "  "; _ = s.SetRespondent(r) }, ProblemRespondentIncomplete, "Data responden belum lengkap"},
		{"empty job", func(s *Session) { r := validRespondent(); r.Job = ""; _ = s.SetRespondent(r) }, ProblemRespondentIncomplete, "Data responden belum lengkap"},
		{"empty gender", func(s *Session) { r := validRespondent(); r.Gender = ""; _ = s.SetRespondent(r) }, ProblemRespondentIncomplete, "Data responden belum lengkap"},
		{"empty education", func(s *Session) { r := validRespondent(); r.Education = "\t"; _ = s.SetRespondent(r) }, ProblemRespondentIncomplete, "Data responden belum lengkap"},
		{"non numeric age", func(s *Session) { r := validRespondent(); r.Age = "dua puluh"; _ = s.SetRespondent(r) }, ProblemRespondentIncomplete, "Data responden belum lengkap"},
		{"zero age", func(s *Session) { r := validRespondent(); r.Age = "0"; _ = s.SetRespondent(r) }, ProblemRespondentIncomplete, "Data responden belum lengkap"},
		{"negative age", func(s *Session) { r := validRespondent(); r.Age = "-3"; _ = s.SetRespondent(r) }, ProblemRespondentIncomplete, "Data responden belum lengkap"},
		{"infinite age", func(s *Session) { r := validRespondent(); r.Age = "Infinity"; _ = s.SetRespondent(r) }, ProblemRespondentIncomplete, "Data responden belum lengkap"},
		{"no consent", func(s *Session) { _ = s.SetConsent(false) }, ProblemConsentRequired, "Persetujuan diperlukan"},
		{"missing answer", func(s *Session) { _ = s.Answer("q2", " ") }, ProblemSurveyIncomplete, "Survey belum lengkap"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := &fakeSubmitter{status: 201}
			s := filledSession(t, sub, nil, Options{})
			tt.mutate(s)

			err := s.Submit(context.Background())

			var p *Problem
			require.ErrorAs(t, err, &p)
			assert.Equal(t, tt.kind, p.Kind)
			assert.Equal(t, tt.title, p.Title)
			assert.True(t, p.Local())
			assert.Equal(t, 0, sub.count())
			assert.Equal(t, StateEditing, s.State())
			assert.Equal(t, p, s.Problem())
		})
	}
}

func TestSubmitValidationOrder(t *testing.T) {
	sub := &fakeSubmitter{status: 201}
	s := NewSession("srv-1", testGroups(), sub, nil, Options{})

	err := s.Submit(context.Background())
	var p *Problem
	require.ErrorAs(t, err, &p)
	assert.Equal(t, ProblemRespondentIncomplete, p.Kind)

	require.NoError(t, s.SetRespondent(validRespondent()))
	require.ErrorAs(t, s.Submit(context.Background()), &p)
	assert.Equal(t, ProblemConsentRequired, p.Kind)

	require.NoError(t, s.SetConsent(true))
	require.ErrorAs(t, s.Submit(context.Background()), &p)
	assert.Equal(t, ProblemSurveyIncomplete, p.Kind)
	assert.Equal(t, 0, sub.count())
}

func TestSubmitSuccess(t *testing.T) {
	sub := &fakeSubmitter{status: 201, body: `{"ok":true}`}
	nav := newNavigator()
	s := filledSession(t, sub, nav, Options{RedirectDelay: 20 * time.Millisecond})
	defer s.Close()

	require.NoError(t, s.Submit(context.Background()))
	assert.Equal(t, StateSucceeded, s.State())
	assert.Equal(t, SuccessMessage, s.Notice())
	assert.Nil(t, s.Problem())

	require.Equal(t, 1, sub.count())
	assert.Equal(t, "srv-1", sub.calls[0].surveyID)

	var body map[string]any
	require.NoError(t, sonic.Unmarshal(sub.calls[0].payload, &body))
	assert.Equal(t, "srv-1", body["survey_id"])
	assert.Equal(t, true, body["consent"])
	respondent := body["respondent"].(map[string]any)
	assert.Equal(t, float64(34), respondent["age"])
	assert.Equal(t, "Siti", respondent["name"])
	assert.Equal(t, []any{
		map[string]any{"sub_aspect_id": "q1", "value": "Setuju"},
		map[string]any{"sub_aspect_id": "q2", "value": "Netral"},
		map[string]any{"sub_aspect_id": "q3", "value": "Tidak Setuju"},
	}, body["responses"])

	select {
	case to := <-nav.hit:
		assert.Equal(t, "/terimakasih", to)
	case <-time.After(time.Second):
		t.Fatal("navigation did not fire")
	}
	time.Sleep(40 * time.Millisecond)
	assert.Equal(t, 1, nav.count())

	assert.ErrorIs(t, s.Submit(context.Background()), ErrAlreadySubmitted)
	assert.ErrorIs(t, s.Answer("q1", "Netral"), ErrAlreadySubmitted)
	assert.Equal(t, 1, sub.count())
}

func TestCloseCancelsNavigation(t *testing.T) {
	sub := &fakeSubmitter{status: 200}
	nav := newNavigator()
	s := filledSession(t, sub, nav, Options{RedirectDelay: 50 * time.Millisecond})

	require.NoError(t, s.Submit(context.Background()))
	s.Close()

	time.Sleep(120 * time.Millisecond)
	assert.Equal(t, 0, nav.count())
	assert.ErrorIs(t, s.Submit(context.Background()), ErrClosed)
}

func TestSubmitUpstreamConsentRejection(t *testing.T) {
	sub := &fakeSubmitter{status: 400, body: `{"error":"Consent not recorded"}`}
	s := filledSession(t, sub, nil, Options{})

	err := s.Submit(context.Background())
	var p *Problem
	require.ErrorAs(t, err, &p)
	assert.Equal(t, ProblemConsentRequired, p.Kind)
	assert.Equal(t, "Silakan centang kotak persetujuan.", p.Message)
	assert.Equal(t, 400, p.Status)
	assert.False(t, p.Local())
	assert.Equal(t, StateFailed, s.State())
}

func TestSubmitUpstreamFailure(t *testing.T) {
	tests := []struct {
		name    string
		sub     *fakeSubmitter
		message string
	}{
		{"server error with body", &fakeSubmitter{status: 500, body: "boom"}, "Submit gagal. Status: 500 - boom"},
		{"400 without consent marker", &fakeSubmitter{status: 400, body: "bad survey"}, "Submit gagal. Status: 400 - bad survey"},
		{"empty body", &fakeSubmitter{status: 503}, "Submit gagal. Status: 503"},
		{"transport error", &fakeSubmitter{err: errors.New("connection refused")}, "Submit gagal: connection refused"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := filledSession(t, tt.sub, nil, Options{})
			err := s.Submit(context.Background())
			var p *Problem
			require.ErrorAs(t, err, &p)
			assert.Equal(t, ProblemSubmitFailed, p.Kind)
			assert.Equal(t, tt.message, p.Message)
			assert.Equal(t, StateFailed, s.State())
		})
	}
}

func TestFailedReturnsToEditing(t *testing.T) {
	sub := &fakeSubmitter{status: 500}
	s := filledSession(t, sub, nil, Options{})
	require.Error(t, s.Submit(context.Background()))
	require.Equal(t, StateFailed, s.State())

	require.NoError(t, s.Answer("q1", "Netral"))
	assert.Equal(t, StateEditing, s.State())
	assert.Nil(t, s.Problem())

	sub.status = 201
	require.NoError(t, s.Submit(context.Background()))
	assert.Equal(t, 2, sub.count())
}

func TestSingleSubmissionInFlight(t *testing.T) {
	sub := &fakeSubmitter{status: 201, gate: make(chan struct{}), entered: make(chan struct{}, 1)}
	s := filledSession(t, sub, nil, Options{})

	done := make(chan error, 1)
	go func() { done <- s.Submit(context.Background()) }()

	<-sub.entered
	assert.Equal(t, StateSubmitting, s.State())
	assert.ErrorIs(t, s.Submit(context.Background()), ErrSubmissionInFlight)

	close(sub.gate)
	require.NoError(t, <-done)
	assert.Equal(t, 1, sub.count())
}

func TestUnknownIDsRejected(t *testing.T) {
	s := NewSession("srv-1", testGroups(), &fakeSubmitter{}, nil, Options{})

	require.NoError(t, s.Answer("q1", "Setuju"))
	assert.Equal(t, "Setuju", s.Value("q1"))
	require.NoError(t, s.Answer("q1", ""))
	assert.Equal(t, "", s.Value("q1"))

	assert.ErrorIs(t, s.Answer("nope", "Setuju"), ErrUnknownSubAspect)
	assert.NotContains(t, s.Answers(), "nope")
}

func TestBuildPayload(t *testing.T) {
	r := validRespondent()
	r.Age = ""
	p := BuildPayload("srv-9", false, r, []string{"b", "a", "c"}, map[string]string{"a": "Setuju", "b": "  ", "c": "Netral"})

	assert.Nil(t, p.Respondent.Age)
	assert.Equal(t, []ResponseItem{{SubAspectID: "a", Value: "Setuju"}, {SubAspectID: "c", Value: "Netral"}}, p.Responses)

	raw, err := sonic.Marshal(BuildPayload("srv-9", true, r, nil, nil))
	require.NoError(t, err)
	assert.JSONEq(t, `{"survey_id":"srv-9","consent":true,"respondent":{"name":"Siti","job":"Wiraswasta","gender":"Perempuan","age":null,"education":"D4/S1"},"responses":[]}`, string(raw))
}

func TestParseAge(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"25", 25, true},
		{" 30 ", 30, true},
		{"17.5", 17.5, true},
		{"1e2", 100, true},
		{"", 0, false},
		{"abc", 0, false},
		{"NaN", 0, false},
		{"-Infinity", 0, false},
		{"0x10", 16, true},
		{"0o17", 15, true},
		{"0B101", 5, true},
		{"-0x10", 0, false},
		{"0x", 0, false},
		{"0x1p4", 0, false},
		{"1_000", 0, false},
		{"0xZZ", 0, false},
		{".5", 0.5, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseAge(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidateAndPayloadWithoutSubmitting(t *testing.T) {
	sub := &fakeSubmitter{status: 201}
	s := NewSession("srv-1", testGroups(), sub, nil, Options{})
	require.NoError(t, s.SetRespondent(validRespondent()))
	require.NoError(t, s.SetConsent(true))
	require.NoError(t, s.Answer("q1", "Setuju"))

	p := s.Validate()
	require.NotNil(t, p)
	assert.Equal(t, ProblemSurveyIncomplete, p.Kind)
	assert.Equal(t, StateEditing, s.State())
	assert.Nil(t, s.Problem())

	payload := s.Payload()
	assert.Equal(t, "srv-1", payload.SurveyID)
	require.NotNil(t, payload.Respondent.Age)
	assert.Equal(t, 34.0, *payload.Respondent.Age)
	assert.Equal(t, []ResponseItem{{SubAspectID: "q1", Value: "Setuju"}}, payload.Responses)

	require.NoError(t, s.Answer("q2", "Netral"))
	require.NoError(t, s.Answer("q3", "Netral"))
	assert.Nil(t, s.Validate())
	assert.Zero(t, sub.count())
}
