package form

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/userform/internal/record"
	"github.com/dshills/userform/internal/validate"
)

// fill drives m to a fully valid state the way a user would.
func fill(t *testing.T, m *Machine) {
	t.Helper()
	require.NoError(t, m.Settle(record.FieldDepartment))
	for f, v := range map[record.Field]string{
		record.FieldFullName:  "Jane Doe",
		record.FieldBirthDate: "31/02/2020",
		record.FieldEmail:     "a@b.co",
	} {
		require.NoError(t, m.Edit(f, v))
		require.NoError(t, m.Blur(f))
	}
	m.ToggleTerms()
}

func TestNew_DefaultsAndPristine(t *testing.T) {
	m := New()
	assert.Equal(t, record.Default(), m.Values())
	assert.Equal(t, Editable, m.Phase())
	for _, f := range record.Fields() {
		assert.Equal(t, Pristine, m.Field(f).State, f)
		assert.False(t, m.Field(f).Dirty, f)
	}
	assert.False(t, m.CanSubmit())
}

func TestEdit_DoesNotValidate(t *testing.T) {
	m := New()
	require.NoError(t, m.Edit(record.FieldEmail, "a@b"))
	assert.Equal(t, "a@b", m.Values().Email)
	assert.Equal(t, Pristine, m.Field(record.FieldEmail).State)
	assert.True(t, m.Field(record.FieldEmail).Dirty)
	assert.Empty(t, m.Message(record.FieldEmail))
}

func TestBlur_Validates(t *testing.T) {
	m := New()
	require.NoError(t, m.Edit(record.FieldEmail, "a@b"))
	require.NoError(t, m.Blur(record.FieldEmail))
	assert.Equal(t, TouchedInvalid, m.Field(record.FieldEmail).State)
	assert.Equal(t, validate.Malformed, m.Field(record.FieldEmail).Result)
	assert.Equal(t, "Wrong email address", m.Message(record.FieldEmail))

	require.NoError(t, m.Edit(record.FieldEmail, ""))
	require.NoError(t, m.Blur(record.FieldEmail))
	assert.Equal(t, "This field is required", m.Message(record.FieldEmail))

	require.NoError(t, m.Edit(record.FieldEmail, "a@b.co"))
	require.NoError(t, m.Blur(record.FieldEmail))
	assert.Equal(t, TouchedValid, m.Field(record.FieldEmail).State)
	assert.Empty(t, m.Message(record.FieldEmail))
}

func TestUnknownField(t *testing.T) {
	m := New()
	assert.ErrorIs(t, m.Edit("nickname", "x"), ErrUnknownField)
	assert.ErrorIs(t, m.Blur("nickname"), ErrUnknownField)
	assert.ErrorIs(t, m.Settle("nickname"), ErrUnknownField)
}

func TestEdit_RejectsNonTextFields(t *testing.T) {
	m := New()
	assert.ErrorIs(t, m.Edit(record.FieldTerms, "true"), ErrNotText)
	assert.False(t, m.Values().AcceptedTerms)
	assert.Equal(t, "This field is required", m.Message(record.FieldTerms))

	assert.ErrorIs(t, m.Edit(record.FieldDepartment, "999"), ErrNotText)
	assert.Equal(t, record.DefaultDepartmentID, m.Values().DepartmentID)
}

func TestToggleTerms_ValidatesWithoutBlur(t *testing.T) {
	m := New()
	assert.Equal(t, "This field is required", m.Message(record.FieldTerms), "pristine terms show the required message")

	m.ToggleTerms()
	assert.Equal(t, TouchedValid, m.Field(record.FieldTerms).State)
	assert.Equal(t, validate.Valid, m.Field(record.FieldTerms).Result)
	assert.Empty(t, m.Message(record.FieldTerms))

	m.ToggleTerms()
	assert.Equal(t, TouchedInvalid, m.Field(record.FieldTerms).State)
	assert.Equal(t, "This field is required", m.Message(record.FieldTerms))
}

func TestSelect_ValidatesImmediately(t *testing.T) {
	m := New()
	m.Select("2")
	assert.Equal(t, "2", m.Values().DepartmentID)
	assert.Equal(t, TouchedValid, m.Field(record.FieldDepartment).State)
	assert.True(t, m.Field(record.FieldDepartment).Dirty)

	m.Select("")
	assert.Equal(t, TouchedInvalid, m.Field(record.FieldDepartment).State)
}

func TestCanSubmit_RequiresEveryField(t *testing.T) {
	m := New()
	fill(t, m)
	assert.True(t, m.CanSubmit())

	for _, f := range []record.Field{record.FieldFullName, record.FieldBirthDate, record.FieldEmail} {
		m := New()
		fill(t, m)
		require.NoError(t, m.Edit(f, ""))
		require.NoError(t, m.Blur(f))
		assert.False(t, m.CanSubmit(), "field %s invalid", f)
	}

	m = New()
	fill(t, m)
	m.ToggleTerms()
	assert.False(t, m.CanSubmit(), "terms unchecked")
}

func TestCanSubmit_NeverValidatedFieldBlocks(t *testing.T) {
	m := New()
	require.NoError(t, m.Edit(record.FieldFullName, "Jane Doe"))
	require.NoError(t, m.Blur(record.FieldFullName))
	require.NoError(t, m.Edit(record.FieldBirthDate, "01/01/2000"))
	require.NoError(t, m.Blur(record.FieldBirthDate))
	require.NoError(t, m.Edit(record.FieldEmail, "a@b.co"))
	require.NoError(t, m.Blur(record.FieldEmail))
	m.ToggleTerms()
	assert.False(t, m.CanSubmit(), "department never settled")

	require.NoError(t, m.Settle(record.FieldDepartment))
	assert.True(t, m.CanSubmit())
}

func TestBeginSubmit_SnapshotAndLock(t *testing.T) {
	m := New()
	fill(t, m)

	snap, err := m.BeginSubmit()
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", snap.FullName)
	assert.Equal(t, Submitting, m.Phase())
	assert.False(t, m.CanSubmit())

	_, err = m.BeginSubmit()
	assert.ErrorIs(t, err, ErrNotSubmittable)
}

func TestBeginSubmit_RevalidatesUnblurredEdit(t *testing.T) {
	m := New()
	fill(t, m)
	require.NoError(t, m.Edit(record.FieldEmail, "a@b"))
	assert.False(t, m.CanSubmit())

	_, err := m.BeginSubmit()
	assert.ErrorIs(t, err, ErrNotSubmittable)
	assert.Equal(t, Editable, m.Phase())
	assert.Equal(t, TouchedInvalid, m.Field(record.FieldEmail).State)
}

func TestAccept_ResetsToDefaults(t *testing.T) {
	m := New()
	fill(t, m)
	_, err := m.BeginSubmit()
	require.NoError(t, err)

	require.NoError(t, m.Accept())
	assert.Equal(t, Submitted, m.Phase())
	assert.Equal(t, record.Default(), m.Values())
	assert.Equal(t, Pristine, m.Field(record.FieldFullName).State)
	assert.Equal(t, TouchedValid, m.Field(record.FieldDepartment).State, "settled fields stay settled")
	assert.False(t, m.Dirty())

	require.NoError(t, m.Edit(record.FieldFullName, "J"))
	assert.Equal(t, Editable, m.Phase())
}

func TestReject_KeepsValues(t *testing.T) {
	m := New()
	fill(t, m)
	before := m.Values()
	_, err := m.BeginSubmit()
	require.NoError(t, err)

	require.NoError(t, m.Reject())
	assert.Equal(t, Editable, m.Phase())
	assert.Equal(t, before, m.Values())
	assert.True(t, m.CanSubmit(), "user may resubmit")
}

func TestAcceptReject_WithoutPending(t *testing.T) {
	m := New()
	assert.ErrorIs(t, m.Accept(), ErrNotSubmitting)
	assert.ErrorIs(t, m.Reject(), ErrNotSubmitting)
}

func TestStrings(t *testing.T) {
	assert.Equal(t, "touched-invalid", TouchedInvalid.String())
	assert.Equal(t, "submitting", Submitting.String())
}

func TestCanSubmit_DisabledByUnblurredInvalidEdit(t *testing.T) {
	m := New()
	fill(t, m)
	require.True(t, m.CanSubmit())

	require.NoError(t, m.Edit(record.FieldEmail, "a@b"))
	assert.False(t, m.CanSubmit())
	assert.Equal(t, TouchedValid, m.Field(record.FieldEmail).State, "state changes on blur")
	assert.Empty(t, m.Message(record.FieldEmail), "message waits for the blur")

	require.NoError(t, m.Edit(record.FieldEmail, "a@b.co"))
	assert.True(t, m.CanSubmit())
}
