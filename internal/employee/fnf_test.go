package employee

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFnFStatusAt(t *testing.T) {
	leftOn := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
	at := func(days int) time.Time { return leftOn.AddDate(0, 0, days) }

	tests := []struct {
		name   string
		reason ExitReason
		leftOn time.Time
		now    time.Time
		want   FnFStatus
	}{
		{"missing reason", "", leftOn, at(400), FnFPending},
		{"missing leaving date", ExitResigned, time.Time{}, at(400), FnFPending},
		{"resigned at 60 days", ExitResigned, leftOn, at(60), FnFPending},
		{"resigned at 61 days", ExitResigned, leftOn, at(61), FnFCompleted},
		{"retired after window", ExitRetired, leftOn, at(61), FnFCompleted},
		{"contract completed within window", ExitContractCompleted, leftOn, at(30), FnFPending},
		{"terminated at 61 days", ExitTerminated, leftOn, at(61), FnFPending},
		{"terminated at 90 days", ExitTerminated, leftOn, at(90), FnFPending},
		{"terminated at 91 days", ExitTerminated, leftOn, at(91), FnFCompleted},
		{"absconding at 91 days", ExitAbsconding, leftOn, at(91), FnFCompleted},
		{"other reason never completes", ExitOther, leftOn, at(1000), FnFPending},
		{"unknown reason never completes", ExitReason("Laid Off"), leftOn, at(1000), FnFPending},
		{"leaving date in future", ExitResigned, leftOn, at(-10), FnFPending},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FnFStatusAt(tt.reason, tt.leftOn, tt.now))
		})
	}
}

func TestRecordFnFStatus(t *testing.T) {
	r := &Record{ExitReason: ExitResigned, DateOfLeaving: time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)}
	assert.Equal(t, FnFCompleted, r.FnFStatus(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, FnFPending, r.FnFStatus(time.Date(2024, 4, 15, 0, 0, 0, 0, time.UTC)))
}

func TestLabels(t *testing.T) {
	assert.Equal(t, "TVS-CSHIB", EntityTVSCSHIB.Label())
	assert.Equal(t, "Others", ExitOther.Label())
	assert.Equal(t, "Unknown Co", Entity("Unknown Co").Label())
	assert.False(t, Designation("CEO").IsValid())
}
