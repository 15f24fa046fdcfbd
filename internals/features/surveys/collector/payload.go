package collector

import "strings"

// SubmissionPayload is the JSON body posted to the response relay.
type SubmissionPayload struct {
	SurveyID   string            `json:"survey_id"`
	Consent    bool              `json:"consent"`
	Respondent RespondentPayload `json:"respondent"`
	Responses  []ResponseItem    `json:"responses"`
}

type RespondentPayload struct {
	Name      string   `json:"name"`
	Job       string   `json:"job"`
	Gender    string   `json:"gender"`
	Age       *float64 `json:"age"`
	Education string   `json:"education"`
}

type ResponseItem struct {
	SubAspectID string `json:"sub_aspect_id"`
	Value       string `json:"value"`
}

// BuildPayload assembles a payload. Responses follow ids order and blank
// answers are left out; age is null when it cannot be coerced.
func BuildPayload(surveyID string, consent bool, r Respondent, ids []string, answers map[string]string) SubmissionPayload {
	var age *float64
	if n, ok := ParseAge(r.Age); ok {
		age = &n
	}

	items := make([]ResponseItem, 0, len(ids))
	for _, id := range ids {
		v := answers[id]
		if strings.TrimSpace(v) == "" {
			continue
		}
		items = append(items, ResponseItem{SubAspectID: id, Value: v})
	}

	return SubmissionPayload{
		SurveyID: surveyID,
		Consent:  consent,
		Respondent: RespondentPayload{
			Name:      r.Name,
			Job:       r.Job,
			Gender:    r.Gender,
			Age:       age,
			Education: r.Education,
		},
		Responses: items,
	}
}
