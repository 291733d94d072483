package domain

// Selection is the working record of one intake form. All choice fields
// hold option codes, never labels. Date is YYYY-MM-DD and times are HH:MM.
type Selection struct {
	ClassSection string `json:"sinifSube"`
	Student      string `json:"ogrenci"`
	Service      string `json:"rpdHizmetTuru"`
	Stage1       string `json:"asama1"`
	Stage2       string `json:"asama2"`
	Stage3       string `json:"asama3"`
	Date         string `json:"gorusmeTarihi"`
	StartTime    string `json:"gorusmeBaslamaSaati"`
	EndTime      string `json:"gorusmeBitisSaati"`
	Location     string `json:"calismaYeri"`
}

// Get returns the value of f.
func (s *Selection) Get(f Field) string {
	if p := s.ptr(f); p != nil {
		return *p
	}
	return ""
}

// Set assigns v to f without touching any other field. Unknown fields are
// ignored.
func (s *Selection) Set(f Field, v string) {
	if p := s.ptr(f); p != nil {
		*p = v
	}
}

// IsEmpty reports whether no field has been filled in.
func (s Selection) IsEmpty() bool {
	return s == Selection{}
}

func (s *Selection) ptr(f Field) *string {
	switch f {
	case FieldClassSection:
		return &s.ClassSection
	case FieldStudent:
		return &s.Student
	case FieldService:
		return &s.Service
	case FieldStage1:
		return &s.Stage1
	case FieldStage2:
		return &s.Stage2
	case FieldStage3:
		return &s.Stage3
	case FieldDate:
		return &s.Date
	case FieldStartTime:
		return &s.StartTime
	case FieldEndTime:
		return &s.EndTime
	case FieldLocation:
		return &s.Location
	default:
		return nil
	}
}
