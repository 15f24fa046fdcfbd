package dto

import (
	"fmt"
	"net/url"

	"surveikita_web/internals/features/surveys/collector"
	"surveikita_web/internals/features/surveys/normalizer"
)

// ============================
// View models (server-rendered)
// ============================

type QuestionView struct {
	Number int
	ID     string
	Label  string
	Value  string
}

type GroupView struct {
	Name      string
	Questions []QuestionView
}

type AlertView struct {
	Title   string
	Message string
	Failure bool // true = gagal submit, false = validasi
}

type SurveyFormView struct {
	PageTitle   string
	Title       string
	Description string
	Action      string
	FormToken   string // satu pengiriman per token

	Groups     []GroupView
	Respondent collector.Respondent
	Consent    bool
	Alert      *AlertView

	AnswerOptions    []string
	JobOptions       []string
	GenderOptions    []string
	EducationOptions []string
}

type SurveyInactiveView struct {
	PageTitle   string
	Title       string
	Description string
}

type SurveySuccessView struct {
	PageTitle    string
	Title        string
	SuccessTitle string
	Notice       string
	RedirectTo   string
}

// ============================
// Converters
// ============================

// SurveyAction adalah URL form, sama dengan halaman survey itu sendiri.
func SurveyAction(surveyID, slug string) string {
	return fmt.Sprintf("/%s/%s", url.PathEscape(surveyID), url.PathEscape(slug))
}

// ToSurveyFormView merender state session. Nomor pertanyaan berlanjut lintas grup.
func ToSurveyFormView(s normalizer.Survey, slug string, sess *collector.Session) SurveyFormView {
	view := SurveyFormView{
		PageTitle:        s.Title,
		Title:            s.Title,
		Description:      s.Description,
		Action:           SurveyAction(sess.SurveyID(), slug),
		Respondent:       sess.Respondent(),
		Consent:          sess.Consent(),
		AnswerOptions:    collector.AnswerOptions,
		JobOptions:       collector.JobOptions,
		GenderOptions:    collector.GenderOptions,
		EducationOptions: collector.EducationOptions,
	}

	n := 0
	for _, g := range sess.Groups() {
		gv := GroupView{Name: g.Name}
		for _, sa := range g.SubAspects {
			n++
			gv.Questions = append(gv.Questions, QuestionView{
				Number: n,
				ID:     sa.ID,
				Label:  sa.Label,
				Value:  sess.Value(sa.ID),
			})
		}
		view.Groups = append(view.Groups, gv)
	}

	if p := sess.Problem(); p != nil {
		view.Alert = &AlertView{
			Title:   p.Title,
			Message: p.Message,
			Failure: p.Kind == collector.ProblemSubmitFailed,
		}
	}
	return view
}

func ToSurveyInactiveView(s normalizer.Survey) SurveyInactiveView {
	return SurveyInactiveView{PageTitle: s.Title, Title: s.Title, Description: s.Description}
}

func ToSurveySuccessView(s normalizer.Survey, sess *collector.Session) SurveySuccessView {
	to, _ := sess.Redirect()
	return SurveySuccessView{
		PageTitle:    s.Title,
		Title:        s.Title,
		SuccessTitle: collector.SuccessTitle,
		Notice:       sess.Notice(),
		RedirectTo:   to,
	}
}
