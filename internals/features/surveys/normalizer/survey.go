package normalizer

import (
	"fmt"
	"math"

	"github.com/bytedance/sonic"
)

const defaultTitle = "Survey"

// Survey is the renderable view of a survey document.
type Survey struct {
	Active      bool
	Title       string
	Description string
	Shape       Shape
	Groups      []AspectGroup
	Doc         map[string]any
}

// SubAspects lists every question of the survey in display order.
func (s Survey) SubAspects() []SubAspect {
	return Flatten(s.Groups)
}

// Parse decodes a survey API response body. Only undecodable JSON is an error;
// any decodable body yields a (possibly empty) Survey.
func Parse(raw []byte) (Survey, error) {
	var root any
	if err := sonic.Unmarshal(raw, &root); err != nil {
		return Survey{}, fmt.Errorf("decode survey body: %w", err)
	}
	return FromDocument(PickPayload(root)), nil
}

// FromDocument builds the Survey view of an already decoded survey object.
func FromDocument(doc map[string]any) Survey {
	if doc == nil {
		doc = map[string]any{}
	}
	groups, shape := Classify(doc)

	title := defaultTitle
	if s, ok := doc["title"].(string); ok {
		title = s
	}
	description, _ := doc["description"].(string)

	return Survey{
		Active:      truthy(doc["is_active"]),
		Title:       title,
		Description: description,
		Shape:       shape,
		Groups:      groups,
		Doc:         doc,
	}
}

// PickPayload finds the survey object inside an API body: `data`, then
// `survey`, then the root itself.
func PickPayload(root any) map[string]any {
	obj, ok := root.(map[string]any)
	if !ok {
		return map[string]any{}
	}
	if data, ok := obj["data"].(map[string]any); ok {
		return data
	}
	if survey, ok := obj["survey"].(map[string]any); ok {
		return survey
	}
	return obj
}

func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case float64:
		return t != 0 && !math.IsNaN(t)
	case int:
		return t != 0
	case int64:
		return t != 0
	default:
		return true
	}
}
