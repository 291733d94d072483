package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/rpdform/internal/domain"
	"github.com/alexanderramin/rpdform/internal/form"
)

func TestApplySelection(t *testing.T) {
	app := testApp(t)
	r := app.Data.Resolver()

	tests := []struct {
		name    string
		mutate  func(*domain.Selection)
		dropped []domain.Field
	}{
		{name: "valid", mutate: func(*domain.Selection) {}},
		{
			name:    "student outside roster",
			mutate:  func(s *domain.Selection) { s.Student = "31550101#0" },
			dropped: []domain.Field{domain.FieldStudent},
		},
		{
			name:    "unknown service clears stages",
			mutate:  func(s *domain.Selection) { s.Service = "99" },
			dropped: []domain.Field{domain.FieldService, domain.FieldStage1, domain.FieldStage2, domain.FieldStage3},
		},
		{
			name:    "unknown location",
			mutate:  func(s *domain.Selection) { s.Location = "9" },
			dropped: []domain.Field{domain.FieldLocation},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel := completeSelection()
			tt.mutate(&sel)
			m := form.NewMachine(form.ModeSingle)

			dropped, err := applySelection(m, r, sel)
			require.NoError(t, err)
			assert.Equal(t, tt.dropped, dropped)
			for _, f := range tt.dropped {
				assert.Empty(t, m.Get(f))
			}
			assert.Equal(t, sel.Date, m.Get(domain.FieldDate))
		})
	}
}

func TestApplySelection_AfterEmit(t *testing.T) {
	app := testApp(t)
	m := form.NewMachine(form.ModeSingle)
	_, err := applySelection(m, app.Data.Resolver(), completeSelection())
	require.NoError(t, err)
	_, err = m.Submit()
	require.NoError(t, err)

	_, err = applySelection(m, app.Data.Resolver(), domain.Selection{Service: "6"})
	assert.ErrorIs(t, err, form.ErrNotEditing)
}

func TestHuhOptions(t *testing.T) {
	app := testApp(t)
	r := app.Data.Resolver()

	opts := huhOptions(r, domain.Selection{}, domain.FieldStudent)
	require.Len(t, opts, 1)
	assert.Equal(t, "Önce şube seçiniz...", opts[0].Key)
	assert.Equal(t, "", opts[0].Value)

	opts = huhOptions(r, domain.Selection{Service: "5", Stage1: "18"}, domain.FieldStage2)
	require.Len(t, opts, 3)
	assert.Equal(t, "Seçiniz...", opts[0].Key)
	assert.Equal(t, "181", opts[1].Value)
	assert.Equal(t, "Kriz Müdahalesi", opts[1].Key)

	opts = huhOptions(r, domain.Selection{Service: "5", Stage1: "17", Stage2: "171"}, domain.FieldStage3)
	require.Len(t, opts, 1)
	assert.Equal(t, "Seçiniz... (opsiyonel)", opts[0].Key)
}

func TestHuhOptions_NoStages(t *testing.T) {
	app := testAppWithoutStages(t)
	opts := huhOptions(app.Data.Resolver(), domain.Selection{Service: "5"}, domain.FieldStage1)
	require.Len(t, opts, 1)
	assert.Equal(t, "Aşama verileri yüklenemedi.", opts[0].Key)
}

func TestFieldTitleAndDescription(t *testing.T) {
	app := testApp(t)
	r := app.Data.Resolver()

	sel := domain.Selection{Service: "5", Stage1: "18", Stage2: "181"}
	assert.Equal(t, "3. Aşama (Zorunlu)", stripANSI(fieldTitle(r, sel, domain.FieldStage3)))
	assert.Equal(t, "2. Aşama", stripANSI(fieldTitle(r, sel, domain.FieldStage2)))

	desc := stripANSI(fieldDescription(r, sel, nil, domain.FieldStage2))
	assert.Contains(t, desc, "Sistem değeri: 181")

	errs := form.ValidationErrors{domain.FieldStage3: "3. Aşama seçimi bu hizmet türü için zorunludur"}
	desc = stripANSI(fieldDescription(r, sel, errs, domain.FieldStage3))
	assert.Contains(t, desc, "3. Aşama seçimi bu hizmet türü için zorunludur")

	desc = stripANSI(fieldDescription(r, domain.Selection{ClassSection: "22602661#0"}, nil, domain.FieldStudent))
	assert.Empty(t, desc)
}

func TestValidateInputs(t *testing.T) {
	assert.NoError(t, validateDate(""))
	assert.NoError(t, validateDate("2025-03-10"))
	assert.Error(t, validateDate("10.03.2025"))
	assert.NoError(t, validateClock("09:05"))
	assert.Error(t, validateClock("9.05"))
}

func TestFieldAccessor_ChangeClearsDependents(t *testing.T) {
	tests := []struct {
		name    string
		field   domain.Field
		value   string
		cleared []domain.Field
		kept    []domain.Field
	}{
		{
			name:    "class section",
			field:   domain.FieldClassSection,
			value:   "22602659#0",
			cleared: []domain.Field{domain.FieldStudent},
			kept:    []domain.Field{domain.FieldService, domain.FieldStage1, domain.FieldLocation},
		},
		{
			name:    "service",
			field:   domain.FieldService,
			value:   "7",
			cleared: []domain.Field{domain.FieldStage1, domain.FieldStage2, domain.FieldStage3},
			kept:    []domain.Field{domain.FieldStudent, domain.FieldDate},
		},
		{
			name:    "stage 2",
			field:   domain.FieldStage2,
			value:   "182",
			cleared: []domain.Field{domain.FieldStage3},
			kept:    []domain.Field{domain.FieldStage1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel := completeSelection()
			want := completeSelection()
			fieldAccessor{sel: &sel, field: tt.field}.Set(tt.value)

			assert.Equal(t, tt.value, sel.Get(tt.field))
			for _, f := range tt.cleared {
				assert.Empty(t, sel.Get(f), string(f))
			}
			for _, f := range tt.kept {
				assert.Equal(t, want.Get(f), sel.Get(f), string(f))
			}
		})
	}
}

func TestFieldAccessor_SameValueKeepsDependents(t *testing.T) {
	sel := completeSelection()
	fieldAccessor{sel: &sel, field: domain.FieldService}.Set("5")
	assert.Equal(t, completeSelection(), sel)
}
