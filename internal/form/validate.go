package form

import (
	"strings"
	"time"

	"github.com/alexanderramin/rpdform/internal/cascade"
	"github.com/alexanderramin/rpdform/internal/domain"
)

// ValidationErrors maps each offending field to its message.
type ValidationErrors map[domain.Field]string

func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for _, f := range v.Fields() {
		parts = append(parts, string(f)+": "+v[f])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Fields returns the offending fields in display order.
func (v ValidationErrors) Fields() []domain.Field {
	var out []domain.Field
	for _, f := range domain.Fields {
		if _, ok := v[f]; ok {
			out = append(out, f)
		}
	}
	return out
}

var requiredMessages = map[domain.Field]string{
	domain.FieldClassSection: "Sınıf/Şube seçimi zorunludur",
	domain.FieldStudent:      "Öğrenci seçimi zorunludur",
	domain.FieldService:      "RPD Hizmet Türü seçimi zorunludur",
	domain.FieldStage1:       "1. Aşama seçimi zorunludur",
	domain.FieldStage2:       "2. Aşama seçimi zorunludur",
	domain.FieldStage3:       "3. Aşama seçimi bu hizmet türü için zorunludur",
	domain.FieldDate:         "Görüşme tarihi zorunludur",
	domain.FieldStartTime:    "Başlama saati zorunludur",
	domain.FieldEndTime:      "Bitiş saati zorunludur",
	domain.FieldLocation:     "Çalışma yeri seçimi zorunludur",
}

const msgEndBeforeStart = "Bitiş saati, başlama saatinden sonra olmalıdır"

// TimeLayout is the HH:MM format of the start and end times.
const TimeLayout = "15:04"

// Validate checks required fields and time ordering. It returns nil when
// the selection can be submitted.
func Validate(sel domain.Selection) ValidationErrors {
	errs := make(ValidationErrors)
	for _, f := range domain.Fields {
		if f == domain.FieldStage3 && !cascade.IsStage3Required(sel.Stage1) {
			continue
		}
		if strings.TrimSpace(sel.Get(f)) == "" {
			errs[f] = requiredMessages[f]
		}
	}

	if sel.StartTime != "" && sel.EndTime != "" && !endsAfter(sel.StartTime, sel.EndTime) {
		errs[domain.FieldEndTime] = msgEndBeforeStart
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// endsAfter compares HH:MM values as times, falling back to string order
// when either does not parse.
func endsAfter(start, end string) bool {
	s, errS := time.Parse(TimeLayout, start)
	e, errE := time.Parse(TimeLayout, end)
	if errS != nil || errE != nil {
		return start < end
	}
	return e.After(s)
}
