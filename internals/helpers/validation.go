package helper

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationFieldErrors mengubah validator.ValidationErrors jadi map field → pesan,
// dipakai JsonValidationError. messages opsional: key "field.tag" atau "field".
func ValidationFieldErrors(err error, messages ...map[string]string) map[string][]string {
	out := map[string][]string{}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		out["_"] = []string{err.Error()}
		return out
	}

	var custom map[string]string
	if len(messages) > 0 {
		custom = messages[0]
	}
	for _, fe := range ve {
		field := toSnake(fe.Field())
		msg, ok := custom[field+"."+fe.Tag()]
		if !ok {
			msg, ok = custom[field]
		}
		if !ok {
			msg = fe.Tag()
			if fe.Param() != "" {
				msg += "=" + fe.Param()
			}
		}
		out[field] = append(out[field], msg)
	}
	return out
}

func toSnake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}
