package form

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/rpdform/internal/cascade"
	"github.com/alexanderramin/rpdform/internal/dataset"
	"github.com/alexanderramin/rpdform/internal/domain"
	"github.com/alexanderramin/rpdform/internal/stages"
)

func validSelection() domain.Selection {
	return domain.Selection{
		ClassSection: "22602658#0",
		Student:      "31550011#0",
		Service:      "5",
		Stage1:       "17",
		Stage2:       "171",
		Date:         "2025-03-10",
		StartTime:    "10:00",
		EndTime:      "10:40",
		Location:     "1",
	}
}

func fill(t *testing.T, m *Machine, sel domain.Selection) {
	t.Helper()
	for _, f := range domain.Fields {
		require.NoError(t, m.Set(f, sel.Get(f)))
	}
}

func TestDependents_Table(t *testing.T) {
	assert.Equal(t, []domain.Field{domain.FieldStudent}, Dependents[domain.FieldClassSection])
	assert.ElementsMatch(t, []domain.Field{domain.FieldStage1, domain.FieldStage2, domain.FieldStage3}, Dependents[domain.FieldService])
	assert.ElementsMatch(t, []domain.Field{domain.FieldStage2, domain.FieldStage3}, Dependents[domain.FieldStage1])
	assert.Equal(t, []domain.Field{domain.FieldStage3}, Dependents[domain.FieldStage2])
	assert.Empty(t, Dependents[domain.FieldStage3])
	assert.Empty(t, Dependents[domain.FieldDate])
}

func TestDependents_Transitive(t *testing.T) {
	for f, deps := range Dependents {
		for _, d := range deps {
			for _, dd := range Dependents[d] {
				assert.Contains(t, deps, dd, "%s clears %s, so it must also clear %s", f, d, dd)
			}
		}
	}
}

func TestApply(t *testing.T) {
	sel := validSelection()
	sel.Stage3 = "x"

	tests := []struct {
		field   domain.Field
		cleared []domain.Field
	}{
		{domain.FieldClassSection, []domain.Field{domain.FieldStudent}},
		{domain.FieldService, []domain.Field{domain.FieldStage1, domain.FieldStage2, domain.FieldStage3}},
		{domain.FieldStage1, []domain.Field{domain.FieldStage2, domain.FieldStage3}},
		{domain.FieldStage2, []domain.Field{domain.FieldStage3}},
		{domain.FieldLocation, nil},
	}
	for _, tt := range tests {
		t.Run(string(tt.field), func(t *testing.T) {
			got := Apply(sel, tt.field, "new")
			assert.Equal(t, "new", got.Get(tt.field))
			for _, f := range domain.Fields {
				if f == tt.field {
					continue
				}
				if containsField(tt.cleared, f) {
					assert.Empty(t, got.Get(f), f)
				} else {
					assert.Equal(t, sel.Get(f), got.Get(f), f)
				}
			}
		})
	}
}

func containsField(fs []domain.Field, f domain.Field) bool {
	for _, x := range fs {
		if x == f {
			return true
		}
	}
	return false
}

func TestMachine_ServiceChangeClearsStages(t *testing.T) {
	m := NewMachine(ModeSingle)
	fill(t, m, validSelection())
	require.NoError(t, m.Set(domain.FieldStage3, "1811"))

	for _, svc := range []string{"6", "", "5x"} {
		require.NoError(t, m.Set(domain.FieldService, svc))
		assert.Empty(t, m.Get(domain.FieldStage1))
		assert.Empty(t, m.Get(domain.FieldStage2))
		assert.Empty(t, m.Get(domain.FieldStage3))
		assert.Equal(t, "31550011#0", m.Get(domain.FieldStudent))

		require.NoError(t, m.Set(domain.FieldStage1, "18"))
		require.NoError(t, m.Set(domain.FieldStage2, "183"))
		require.NoError(t, m.Set(domain.FieldStage3, "1831"))
	}
}

func TestValidate_Empty(t *testing.T) {
	errs := Validate(domain.Selection{})
	require.NotNil(t, errs)
	assert.Len(t, errs, 9)
	assert.NotContains(t, errs, domain.FieldStage3)
	assert.Equal(t, "Sınıf/Şube seçimi zorunludur", errs[domain.FieldClassSection])
}

func TestValidate_Valid(t *testing.T) {
	assert.Nil(t, Validate(validSelection()))
}

func TestValidate_Stage3RequiredFor18(t *testing.T) {
	sel := validSelection()
	sel.Stage1 = "18"
	sel.Stage2 = "181"

	errs := Validate(sel)
	require.Len(t, errs, 1)
	assert.Equal(t, "3. Aşama seçimi bu hizmet türü için zorunludur", errs[domain.FieldStage3])

	sel.Stage3 = "1811"
	assert.Nil(t, Validate(sel))
}

func TestValidate_TimeOrdering(t *testing.T) {
	tests := []struct {
		start, end string
		ok         bool
	}{
		{"10:00", "09:30", false},
		{"10:00", "10:00", false},
		{"09:30", "10:00", true},
		{"9:30", "10:00", true},
		{"23:59", "00:00", false},
		{"ab", "cd", true},
		{"cd", "ab", false},
	}
	for _, tt := range tests {
		t.Run(tt.start+"-"+tt.end, func(t *testing.T) {
			sel := validSelection()
			sel.StartTime, sel.EndTime = tt.start, tt.end
			errs := Validate(sel)
			if tt.ok {
				assert.Nil(t, errs)
				return
			}
			require.Len(t, errs, 1)
			assert.Equal(t, msgEndBeforeStart, errs[domain.FieldEndTime])
		})
	}
}

func TestValidationErrors_Error(t *testing.T) {
	errs := ValidationErrors{
		domain.FieldEndTime: "b",
		domain.FieldStudent: "a",
	}
	assert.Equal(t, []domain.Field{domain.FieldStudent, domain.FieldEndTime}, errs.Fields())
	assert.Equal(t, "validation failed: ogrenci: a; gorusmeBitisSaati: b", errs.Error())
}

func TestMachine_SubmitBlockedAndCorrected(t *testing.T) {
	m := NewMachine(ModeSingle)
	sel := validSelection()
	sel.StartTime, sel.EndTime = "10:00", "09:30"
	sel.Location = ""
	fill(t, m, sel)

	_, err := m.Submit()
	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs, domain.FieldEndTime)
	assert.Contains(t, verrs, domain.FieldLocation)
	assert.Equal(t, StateEditing, m.State())

	require.NoError(t, m.Set(domain.FieldLocation, "2"))
	assert.NotContains(t, m.Errors(), domain.FieldLocation)
	assert.Contains(t, m.Errors(), domain.FieldEndTime)

	require.NoError(t, m.Set(domain.FieldEndTime, "11:00"))
	rec, err := m.Submit()
	require.NoError(t, err)
	assert.Equal(t, "2", rec.Selection.Location)
	assert.Equal(t, StateEmitted, m.State())
	assert.Nil(t, m.Errors())
	assert.Len(t, m.Output(), 1)

	assert.ErrorIs(t, m.Set(domain.FieldDate, "2025-01-01"), ErrNotEditing)
	_, err = m.Submit()
	assert.ErrorIs(t, err, ErrNotEditing)

	m.Reset()
	assert.Equal(t, StateEditing, m.State())
	assert.True(t, m.Selection().IsEmpty())
	assert.Empty(t, m.Output())
}

func TestMachine_BatchOrder(t *testing.T) {
	m := NewMachine(ModeBatch)
	dates := []string{"2025-03-10", "2025-03-11", "2025-03-12"}
	for _, d := range dates {
		sel := validSelection()
		sel.Date = d
		fill(t, m, sel)
		_, err := m.Submit()
		require.NoError(t, err)
		assert.True(t, m.Selection().IsEmpty())
		assert.Equal(t, StateEditing, m.State())
	}

	recs, err := m.FinishBatch()
	require.NoError(t, err)
	require.Len(t, recs, 3)
	for i, d := range dates {
		assert.Equal(t, d, recs[i].Selection.Date)
	}
	assert.NotEqual(t, recs[0].ID, recs[1].ID)
	assert.Equal(t, StateEmitted, m.State())
	assert.Empty(t, m.Batch())
}

func TestMachine_BatchRemove(t *testing.T) {
	m := NewMachine(ModeBatch)
	for _, d := range []string{"a", "b", "c"} {
		sel := validSelection()
		sel.Date = d
		fill(t, m, sel)
		_, err := m.Submit()
		require.NoError(t, err)
	}

	require.NoError(t, m.Remove(1))
	assert.ErrorIs(t, m.Remove(2), ErrIndexOutOfRange)
	assert.ErrorIs(t, m.Remove(-1), ErrIndexOutOfRange)

	recs, err := m.FinishBatch()
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "a", recs[0].Selection.Date)
	assert.Equal(t, "c", recs[1].Selection.Date)
}

func TestMachine_FinishBatchGuards(t *testing.T) {
	m := NewMachine(ModeBatch)
	_, err := m.FinishBatch()
	assert.ErrorIs(t, err, ErrEmptyBatch)

	fill(t, m, validSelection())
	_, err = m.Submit()
	require.NoError(t, err)
	m.Clear()
	_, err = m.FinishBatch()
	assert.ErrorIs(t, err, ErrEmptyBatch)

	single := NewMachine(ModeSingle)
	_, err = single.FinishBatch()
	assert.ErrorIs(t, err, ErrNotEditing)
}

func TestMachine_InvalidBatchSubmitKeepsForm(t *testing.T) {
	m := NewMachine(ModeBatch)
	sel := validSelection()
	sel.Date = ""
	fill(t, m, sel)

	_, err := m.Submit()
	require.Error(t, err)
	assert.Empty(t, m.Batch())
	assert.Equal(t, "22602658#0", m.Get(domain.FieldClassSection))
}

func TestMachine_SetMode(t *testing.T) {
	m := NewMachine(ModeBatch)
	fill(t, m, validSelection())
	_, err := m.Submit()
	require.NoError(t, err)
	require.NoError(t, m.Set(domain.FieldDate, "2025-01-01"))

	m.SetMode(ModeBatch)
	assert.Len(t, m.Batch(), 1, "same mode is a no-op")
	assert.Equal(t, "2025-01-01", m.Get(domain.FieldDate))

	m.SetMode(ModeSingle)
	assert.Equal(t, ModeSingle, m.Mode())
	assert.Empty(t, m.Batch())
	assert.True(t, m.Selection().IsEmpty())

	require.NoError(t, m.Set(domain.FieldDate, "2025-01-02"))
	m.SetMode(ModeBatch)
	assert.True(t, m.Selection().IsEmpty())
	assert.Equal(t, "batch", m.Mode().String())
}

func TestEndToEnd_PsychosocialRequiresStage3(t *testing.T) {
	table, err := dataset.Default()
	require.NoError(t, err)
	doc, err := stages.Default()
	require.NoError(t, err)
	r := cascade.NewResolver(table, stages.Build(doc), cascade.RosterOptions{})

	m := NewMachine(ModeSingle)

	classSection := "22602658#0"
	require.NoError(t, m.Set(domain.FieldClassSection, classSection))
	students := r.Options(m.Selection(), domain.FieldStudent)
	require.Len(t, students, 1)
	require.NoError(t, m.Set(domain.FieldStudent, students[0].Code))

	var service string
	for _, o := range r.Options(m.Selection(), domain.FieldService) {
		s1 := cascade.Stage1Options(r.Graph(), o.Code)
		if len(s1) == 1 && s1[0].Code == "18" {
			service = o.Code
		}
	}
	require.NotEmpty(t, service)
	require.NoError(t, m.Set(domain.FieldService, service))
	require.NoError(t, m.Set(domain.FieldStage1, "18"))

	stage2 := r.Options(m.Selection(), domain.FieldStage2)
	require.NotEmpty(t, stage2)
	require.NoError(t, m.Set(domain.FieldStage2, stage2[0].Code))
	require.NoError(t, m.Set(domain.FieldDate, "2025-03-10"))
	require.NoError(t, m.Set(domain.FieldStartTime, "10:00"))
	require.NoError(t, m.Set(domain.FieldEndTime, "10:45"))
	require.NoError(t, m.Set(domain.FieldLocation, r.Options(m.Selection(), domain.FieldLocation)[0].Code))

	assert.True(t, r.Required(m.Selection(), domain.FieldStage3))

	_, err = m.Submit()
	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	require.Len(t, verrs, 1)
	assert.Contains(t, verrs, domain.FieldStage3)

	stage3 := r.Options(m.Selection(), domain.FieldStage3)
	require.NotEmpty(t, stage3)
	require.NoError(t, m.Set(domain.FieldStage3, stage3[0].Code))

	rec, err := m.Submit()
	require.NoError(t, err)
	assert.Equal(t, "1831", rec.Selection.Stage3)
}
