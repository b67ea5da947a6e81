package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stayForm struct {
	CheckIn   string `json:"check_in" validate:"required,datetime=2006-01-02,notpast"`
	CheckOut  string `json:"check_out" validate:"required,datetime=2006-01-02,stayafter=CheckIn"`
	Adults    int    `json:"adults" validate:"min=1"`
	ChildAges []int  `json:"child_ages" validate:"max=6,dive,min=0,max=17"`
}

func newTestValidator() *Validator {
	return New(func() time.Time { return time.Date(2026, 5, 10, 15, 0, 0, 0, time.UTC) })
}

func TestValidStay(t *testing.T) {
	v := newTestValidator()

	err := v.Struct(stayForm{CheckIn: "2026-05-10", CheckOut: "2026-05-12", Adults: 2, ChildAges: []int{4, 9}})
	assert.NoError(t, err)
}

func TestCheckOutMustFollowCheckIn(t *testing.T) {
	v := newTestValidator()

	for _, out := range []string{"2026-05-12", "2026-05-11"} {
		err := v.Struct(stayForm{CheckIn: "2026-05-12", CheckOut: out, Adults: 1})
		inputErr, ok := AsInputError(err)
		require.True(t, ok, "check-out %s", out)
		assert.Equal(t, []string{"check-out date must be after check-in date"}, inputErr.Fields["check_out"])
	}
}

func TestCheckInNotInPast(t *testing.T) {
	v := newTestValidator()

	err := v.Struct(stayForm{CheckIn: "2026-05-09", CheckOut: "2026-05-12", Adults: 1})
	inputErr, ok := AsInputError(err)
	require.True(t, ok)
	assert.Equal(t, []string{"check-in date cannot be in the past"}, inputErr.Fields["check_in"])
	assert.NotContains(t, inputErr.Fields, "check_out")
}

func TestChildBounds(t *testing.T) {
	v := newTestValidator()

	err := v.Struct(stayForm{CheckIn: "2026-05-10", CheckOut: "2026-05-11", Adults: 1, ChildAges: []int{1, 2, 3, 4, 5, 6, 7}})
	inputErr, ok := AsInputError(err)
	require.True(t, ok)
	assert.Contains(t, inputErr.Fields, "child_ages")

	err = v.Struct(stayForm{CheckIn: "2026-05-10", CheckOut: "2026-05-11", Adults: 1, ChildAges: []int{18}})
	inputErr, ok = AsInputError(err)
	require.True(t, ok)
	assert.Contains(t, inputErr.Fields, "child_ages[0]")
}

func TestInputErrorMessage(t *testing.T) {
	e := &InputError{}
	assert.NoError(t, e.OrNil())

	e.Add("room_count", "must be at most 2")
	e.Add("adults", "is required")
	assert.Equal(t, "invalid input: adults: is required; room_count: must be at most 2", e.Error())
	assert.Error(t, e.OrNil())
}
