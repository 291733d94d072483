package domain

// Field identifies one control of the RPD intake form. The string values
// match the form keys used by the MEB RPD system.
type Field string

const (
	FieldClassSection Field = "sinifSube"
	FieldStudent      Field = "ogrenci"
	FieldService      Field = "rpdHizmetTuru"
	FieldStage1       Field = "asama1"
	FieldStage2       Field = "asama2"
	FieldStage3       Field = "asama3"
	FieldDate         Field = "gorusmeTarihi"
	FieldStartTime    Field = "gorusmeBaslamaSaati"
	FieldEndTime      Field = "gorusmeBitisSaati"
	FieldLocation     Field = "calismaYeri"
)

// Fields lists every form field in display order.
var Fields = []Field{
	FieldClassSection,
	FieldStudent,
	FieldService,
	FieldStage1,
	FieldStage2,
	FieldStage3,
	FieldDate,
	FieldStartTime,
	FieldEndTime,
	FieldLocation,
}

// Title returns the Turkish label shown next to the field.
func (f Field) Title() string {
	switch f {
	case FieldClassSection:
		return "Sınıf / Şube"
	case FieldStudent:
		return "Öğrenci"
	case FieldService:
		return "RPD Hizmet Türü"
	case FieldStage1:
		return "1. Aşama"
	case FieldStage2:
		return "2. Aşama"
	case FieldStage3:
		return "3. Aşama"
	case FieldDate:
		return "Görüşme Tarihi"
	case FieldStartTime:
		return "Başlama Saati"
	case FieldEndTime:
		return "Bitiş Saati"
	case FieldLocation:
		return "Çalışmanın Yapıldığı Yer"
	default:
		return string(f)
	}
}

// IsChoice reports whether the field is picked from an option list rather
// than typed.
func (f Field) IsChoice() bool {
	switch f {
	case FieldDate, FieldStartTime, FieldEndTime:
		return false
	default:
		return true
	}
}

// Well-known category names in the dataset.
const (
	CategoryClassSection = "Sinif_Sube"
	CategoryService      = "RPD_Hizmet_Turu"
	CategoryLocation     = "Calisma_Yeri"
)

// Stage-1 codes with special handling.
const (
	// Stage1PsychosocialIntervention (İP) makes stage 3 mandatory.
	Stage1PsychosocialIntervention = "18"
	// Stage1IndividualCounseling (İB) has no stage-3 branch.
	Stage1IndividualCounseling = "17"
	// Stage1Referral (İS) has no stage-3 branch.
	Stage1Referral = "19"
)
