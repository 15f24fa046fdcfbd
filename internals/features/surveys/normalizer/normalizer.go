// Package normalizer turns the loosely typed survey document returned by the
// survey API into an ordered list of question groups.
//
// The API contract is not strictly typed, so every lookup is best effort:
// unexpected shapes degrade to empty results instead of errors.
package normalizer

import (
	"math"
	"strconv"
)

const (
	// FallbackGroupName dipakai untuk grup sintetis berisi sub_aspects datar.
	FallbackGroupName = "Pertanyaan"
	// UntitledGroupName dipakai untuk aspek yang punya pertanyaan tapi tanpa nama.
	UntitledGroupName = "Tanpa Judul"
)

var (
	groupNameKeys = []string{"name", "title", "label"}
	subLabelKeys  = []string{"name", "title", "question", "label"}
	subIDKeys     = []string{"id", "sub_aspect_id"}
)

// SubAspect is one question of a survey.
type SubAspect struct {
	ID    string
	Label string
	Raw   map[string]any
}

// AspectGroup is a named group of questions.
type AspectGroup struct {
	Name       string
	SubAspects []SubAspect
}

// Shape reports which question layout a survey document uses.
type Shape int

const (
	ShapeEmpty Shape = iota
	ShapeAspects
	ShapeFlat
)

func (s Shape) String() string {
	switch s {
	case ShapeAspects:
		return "aspects"
	case ShapeFlat:
		return "flat"
	default:
		return "empty"
	}
}

// Normalize returns the question groups of doc in input order.
func Normalize(doc map[string]any) []AspectGroup {
	groups, _ := Classify(doc)
	return groups
}

// Classify is Normalize plus the layout the groups were read from.
func Classify(doc map[string]any) ([]AspectGroup, Shape) {
	if groups := namedGroups(doc); len(groups) > 0 {
		return groups, ShapeAspects
	}
	if flat := flatSubAspects(doc); len(flat) > 0 {
		return []AspectGroup{{Name: FallbackGroupName, SubAspects: flat}}, ShapeFlat
	}
	return nil, ShapeEmpty
}

// Flatten lists the sub-aspects of all groups in display order.
func Flatten(groups []AspectGroup) []SubAspect {
	var out []SubAspect
	for _, g := range groups {
		out = append(out, g.SubAspects...)
	}
	return out
}

func namedGroups(doc map[string]any) []AspectGroup {
	var groups []AspectGroup
	for _, aspect := range objects(doc["aspects"]) {
		name := firstString(aspect, groupNameKeys...)
		subs := parseSubAspects(aspect["sub_aspects"])
		if name == "" && len(subs) == 0 {
			continue
		}
		if name == "" {
			name = UntitledGroupName
		}
		groups = append(groups, AspectGroup{Name: name, SubAspects: subs})
	}
	return groups
}

func flatSubAspects(doc map[string]any) []SubAspect {
	var out []SubAspect
	for _, aspect := range objects(doc["aspects"]) {
		out = append(out, parseSubAspects(aspect["sub_aspects"])...)
	}
	return append(out, parseSubAspects(doc["sub_aspects"])...)
}

func parseSubAspects(v any) []SubAspect {
	objs := objects(v)
	if len(objs) == 0 {
		return nil
	}
	out := make([]SubAspect, 0, len(objs))
	for _, obj := range objs {
		out = append(out, parseSubAspect(obj))
	}
	return out
}

func parseSubAspect(obj map[string]any) SubAspect {
	id := ""
	for _, k := range subIDKeys {
		if id = idString(obj[k]); id != "" {
			break
		}
	}
	label := firstString(obj, subLabelKeys...)
	if label == "" {
		label = "Pertanyaan (" + id + ")"
	}
	return SubAspect{ID: id, Label: label, Raw: obj}
}

// objects keeps the object elements of v when v is an array.
func objects(v any) []map[string]any {
	arr, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]map[string]any, 0, len(arr))
	for _, el := range arr {
		if obj, ok := el.(map[string]any); ok {
			out = append(out, obj)
		}
	}
	return out
}

func firstString(obj map[string]any, keys ...string) string {
	for _, k := range keys {
		if s, ok := obj[k].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

// idString accepts string ids and non-zero numeric ids.
func idString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		if t == 0 || math.IsNaN(t) || math.IsInf(t, 0) {
			return ""
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		if t == 0 {
			return ""
		}
		return strconv.Itoa(t)
	case int64:
		if t == 0 {
			return ""
		}
		return strconv.FormatInt(t, 10)
	default:
		return ""
	}
}
