package browse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInputCriteriaConvertsDates(t *testing.T) {
	cr, errs := Input{EventName: "  jazz ", From: "2026-11-01", To: "2026-11-30"}.Criteria()
	require.Empty(t, errs)
	assert.Equal(t, Criteria{
		EventName: "jazz",
		StartDate: "2026-11-01T00:00:00Z",
		EndDate:   "2026-11-30T00:00:00Z",
	}, cr)
	assert.Equal(t, "jazz", cr.Query("", 12).Values().Get("event_name"))
}

func TestInputCriteriaRejectsBadDates(t *testing.T) {
	_, errs := Input{From: "01/11/2026"}.Criteria()
	assert.Contains(t, errs, FieldFrom)

	_, errs = Input{To: "2026-13-01"}.Criteria()
	assert.Contains(t, errs, FieldTo)
}

func TestInputCriteriaKeepsReversedRange(t *testing.T) {
	cr, errs := Input{From: "2026-11-30", To: "2026-11-01"}.Criteria()
	require.Empty(t, errs)
	assert.Equal(t, "2026-11-30T00:00:00Z", cr.StartDate)
	assert.Equal(t, "2026-11-01T00:00:00Z", cr.EndDate)
}

func TestBlankInputIsEmptyCriteria(t *testing.T) {
	cr, errs := Input{EventName: "   "}.Criteria()
	require.Empty(t, errs)
	assert.True(t, cr.IsZero())
	assert.Empty(t, cr.Query("", 12).Values().Get("event_name"))
	assert.Equal(t, "{}", cr.String())
}

func TestCriteriaTags(t *testing.T) {
	cr := Criteria{EventName: "jazz", Location: "Jakarta", StartDate: "2026-11-01T00:00:00Z"}
	assert.Equal(t, []string{`"jazz"`, "Jakarta", "From 2026-11-01"}, cr.Tags())
	assert.Nil(t, Criteria{}.Tags())
}
