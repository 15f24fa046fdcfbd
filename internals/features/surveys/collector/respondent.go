package collector

import (
	"math"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	AnswerOptions = []string{"Setuju", "Netral", "Tidak Setuju"}
	GenderOptions = []string{"Laki-laki", "Perempuan"}
	JobOptions    = []string{
		"Tidak bekerja",
		"Pelajar/Mahasiswa",
		"Pegawai Pemerintah",
		"Pegawai Swasta",
		"Wiraswasta",
	}
	EducationOptions = []string{
		"Tidak Sekolah / Tidak Tamat SD",
		"SD",
		"SMP",
		"SMA",
		"D1/D2",
		"D3",
		"D4/S1",
		"S2",
		"S3",
	}
)

// Respondent holds the respondent metadata as typed into the form.
// Age stays a string until the payload is built.
type Respondent struct {
	Name      string `json:"name" yaml:"name" validate:"required"`
	Job       string `json:"job" yaml:"job" validate:"required"`
	Gender    string `json:"gender" yaml:"gender" validate:"required"`
	Age       string `json:"age" yaml:"age" validate:"required,positive_number"`
	Education string `json:"education" yaml:"education" validate:"required"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("positive_number", func(fl validator.FieldLevel) bool {
		n, ok := ParseAge(fl.Field().String())
		return ok && n > 0
	})
	return v
}

// Complete reports whether every field is filled and age is a positive number.
func (r Respondent) Complete() bool {
	trimmed := Respondent{
		Name:      strings.TrimSpace(r.Name),
		Job:       strings.TrimSpace(r.Job),
		Gender:    strings.TrimSpace(r.Gender),
		Age:       strings.TrimSpace(r.Age),
		Education: strings.TrimSpace(r.Education),
	}
	return validate.Struct(trimmed) == nil
}

// ParseAge coerces the age field to a finite number the way a browser
// Number() cast does: decimal and exponent forms, plus unsigned 0x/0o/0b
// integer literals. Hex floats, underscores and Infinity are rejected.
func ParseAge(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" || strings.ContainsRune(s, '_') {
		return 0, false
	}
	if len(s) > 2 && s[0] == '0' {
		if base := prefixBase(s[1]); base != 0 {
			n, err := strconv.ParseUint(s[2:], base, 64)
			if err != nil {
				return 0, false
			}
			return float64(n), true
		}
	}
	if strings.ContainsAny(s, "xXpP") {
		return 0, false
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

func prefixBase(c byte) int {
	switch c {
	case 'x', 'X':
		return 16
	case 'o', 'O':
		return 8
	case 'b', 'B':
		return 2
	}
	return 0
}
