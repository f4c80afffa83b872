package employee

import "time"

// FnFStatus is the derived full-and-final settlement indicator. It depends on
// the current date and is never persisted.
type FnFStatus string

const (
	FnFCompleted FnFStatus = "Completed"
	FnFPending   FnFStatus = "Pending"
)

const (
	voluntaryExitSettlementDays   = 60
	involuntaryExitSettlementDays = 90
)

// FnFStatusAt derives the settlement status as of now. Missing inputs and
// unknown exit reasons stay Pending.
func FnFStatusAt(reason ExitReason, leftOn, now time.Time) FnFStatus {
	if reason == "" || leftOn.IsZero() {
		return FnFPending
	}

	var threshold int
	switch reason {
	case ExitResigned, ExitRetired, ExitContractCompleted:
		threshold = voluntaryExitSettlementDays
	case ExitTerminated, ExitAbsconding:
		threshold = involuntaryExitSettlementDays
	default:
		return FnFPending
	}

	if daysBetween(leftOn, now) > threshold {
		return FnFCompleted
	}
	return FnFPending
}

// FnFStatus derives the record's settlement status as of now.
func (r *Record) FnFStatus(now time.Time) FnFStatus {
	return FnFStatusAt(r.ExitReason, r.DateOfLeaving, now)
}

// daysBetween counts whole elapsed days from a to b, flooring partial days.
func daysBetween(a, b time.Time) int {
	d := b.Sub(a)
	if d < 0 {
		return -int((-d).Hours() / 24)
	}
	return int(d.Hours() / 24)
}
