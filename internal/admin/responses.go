package admin

import (
	"time"

	amodels "veriport/internal/appeal/models"
	"veriport/internal/comparison"
	vhandler "veriport/internal/verification/handler"
)

// DashboardResponse is the body of GET /admin/dashboard.
type DashboardResponse struct {
	TotalEmployees      int                             `json:"total_employees"`
	TotalVerifications  int                             `json:"total_verifications"`
	VerificationsStatus map[string]int                  `json:"verifications_by_status"`
	AppealsStatus       map[string]int                  `json:"appeals_by_status"`
	PendingAppeals      int                             `json:"pending_appeals"`
	Trend               []DayCount                      `json:"trend"`
	Recent              []vhandler.VerificationResponse `json:"recent_verifications"`
	GeneratedAt         time.Time                       `json:"generated_at"`
}

// FromDashboard lists every status, including those with no records.
func FromDashboard(d *Dashboard) DashboardResponse {
	verifications := map[string]int{}
	for _, st := range []comparison.Status{comparison.StatusMatched, comparison.StatusPartialMatch, comparison.StatusMismatch} {
		verifications[string(st)] = d.VerificationsByState[st]
	}
	appeals := map[string]int{}
	for _, st := range []amodels.Status{amodels.StatusPending, amodels.StatusApproved, amodels.StatusRejected} {
		appeals[string(st)] = d.AppealsByStatus[st]
	}
	recent := make([]vhandler.VerificationResponse, 0, len(d.Recent))
	for _, r := range d.Recent {
		recent = append(recent, vhandler.FromRecord(r))
	}
	return DashboardResponse{
		TotalEmployees:      d.TotalEmployees,
		TotalVerifications:  d.VerificationsTotal,
		VerificationsStatus: verifications,
		AppealsStatus:       appeals,
		PendingAppeals:      d.AppealsByStatus[amodels.StatusPending],
		Trend:               d.Trend,
		Recent:              recent,
		GeneratedAt:         d.GeneratedAt,
	}
}
