package travelconflict

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestClassify_Conflict(t *testing.T) {
	conflict := Classify(ClassifyParams{GapMinutes: 20, TravelMinutes: 15, BufferMinutes: 10})

	assert.Equal(t, STATUS_CONFLICT, conflict.Status)
	assert.Equal(t, 25, conflict.RequiredGapMinutes)
	assert.Equal(t, 5, conflict.ShortByMinutes)
	assert.Equal(t, 0, conflict.SlackMinutes)
}

func TestClassify_Tight(t *testing.T) {
	conflict := Classify(ClassifyParams{GapMinutes: 28, TravelMinutes: 15, BufferMinutes: 10})

	assert.Equal(t, STATUS_TIGHT, conflict.Status)
	assert.Equal(t, 3, conflict.SlackMinutes)
	assert.Equal(t, 0, conflict.ShortByMinutes)
}

func TestClassify_OK(t *testing.T) {
	conflict := Classify(ClassifyParams{GapMinutes: 60, TravelMinutes: 15, BufferMinutes: 10})

	assert.Equal(t, STATUS_OK, conflict.Status)
	assert.Equal(t, 35, conflict.SlackMinutes)
}

func TestClassify_CustomThreshold(t *testing.T) {
	conflict := Classify(ClassifyParams{
		GapMinutes: 40, TravelMinutes: 15, BufferMinutes: 10, TightThresholdMinutes: 20,
	})

	assert.Equal(t, STATUS_TIGHT, conflict.Status)
}

func TestSuggestShift_BasicShift(t *testing.T) {
	shift := SuggestShift(ShiftParams{
		FromEndMin: 600, ToStartMin: 620, ToEndMin: 680, RequiredGapMin: 30,
	})

	require.NotNil(t, shift)
	assert.Equal(t, 10, shift.ShiftMin)
	assert.Equal(t, 630, shift.NewStartMin)
	assert.Equal(t, 690, shift.NewEndMin)
}

func TestSuggestShift_CollidesWithNextActivity(t *testing.T) {
	shift := SuggestShift(ShiftParams{
		FromEndMin: 600, ToStartMin: 620, ToEndMin: 680, RequiredGapMin: 30,
		NextStartMin: intPtr(719),
	})

	assert.Nil(t, shift)
}

func TestSuggestShift_NoShiftNeeded(t *testing.T) {
	shift := SuggestShift(ShiftParams{
		FromEndMin: 600, ToStartMin: 640, ToEndMin: 700, RequiredGapMin: 30,
	})

	assert.Nil(t, shift)
}

func TestSuggestShift_ExceedsMaxShift(t *testing.T) {
	shift := SuggestShift(ShiftParams{
		FromEndMin: 600, ToStartMin: 610, ToEndMin: 670, RequiredGapMin: 120,
	})

	assert.Nil(t, shift)
}

func TestSuggestShift_PastDayEnd(t *testing.T) {
	shift := SuggestShift(ShiftParams{
		FromEndMin: 600, ToStartMin: 620, ToEndMin: 680, RequiredGapMin: 30,
		DayEndMin: intPtr(685),
	})

	assert.Nil(t, shift)
}

func TestSuggestShift_PastEndOfDay(t *testing.T) {
	shift := SuggestShift(ShiftParams{
		FromEndMin: 1380, ToStartMin: 1390, ToEndMin: 1435, RequiredGapMin: 20,
	})

	assert.Nil(t, shift)
}
