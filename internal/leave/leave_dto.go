package leave

import "time"

type CreateLeaveRequest struct {
	LeaveTypeID string `json:"leave_type_id" binding:"required,uuid"`
	StartDate   string `json:"start_date" binding:"required"`
	EndDate     string `json:"end_date" binding:"required"`
	Reason      string `json:"reason" binding:"max=2000"`
	EmailDraft  string `json:"email_draft" binding:"max=5000"`
}

type RejectLeaveRequest struct {
	Reason string `json:"reason" binding:"required,max=2000"`
}

type ProvideProofRequest struct {
	ProofURL string `json:"proof_url" binding:"required,url"`
}

type LeaveResponse struct {
	ID              string  `json:"id"`
	Reference       string  `json:"reference"`
	CompanyID       string  `json:"company_id"`
	EmployeeID      string  `json:"employee_id"`
	LeaveTypeID     string  `json:"leave_type_id"`
	StartDate       string  `json:"start_date"`
	EndDate         string  `json:"end_date"`
	TotalDays       int     `json:"total_days"`
	Reason          string  `json:"reason"`
	Status          string  `json:"status"`
	ReviewedBy      *string `json:"reviewed_by,omitempty"`
	ReviewedAt      *string `json:"reviewed_at,omitempty"`
	RejectionReason *string `json:"rejection_reason,omitempty"`
	ProofRequested  bool    `json:"proof_requested"`
	ProofURL        *string `json:"proof_url,omitempty"`
	EmailDraft      *string `json:"email_draft,omitempty"`
	CreatedBy       string  `json:"created_by"`
}

func mapToResponse(l Leave) LeaveResponse {
	resp := LeaveResponse{
		ID:              l.ID.String(),
		Reference:       l.Reference,
		CompanyID:       l.CompanyID.String(),
		EmployeeID:      l.EmployeeID.String(),
		LeaveTypeID:     l.LeaveTypeID.String(),
		StartDate:       l.StartDate.Format("2006-01-02"),
		EndDate:         l.EndDate.Format("2006-01-02"),
		TotalDays:       l.TotalDays,
		Reason:          l.Reason,
		Status:          l.Status,
		RejectionReason: l.RejectionReason,
		ProofRequested:  l.ProofRequested,
		ProofURL:        l.ProofURL,
		EmailDraft:      l.EmailDraft,
		CreatedBy:       l.CreatedBy.String(),
	}
	if l.ReviewedBy != nil {
		v := l.ReviewedBy.String()
		resp.ReviewedBy = &v
	}
	if l.ReviewedAt != nil {
		v := l.ReviewedAt.Format(time.RFC3339)
		resp.ReviewedAt = &v
	}
	return resp
}

func mapToListResponse(leaves []Leave) []LeaveResponse {
	resp := make([]LeaveResponse, len(leaves))
	for i, l := range leaves {
		resp[i] = mapToResponse(l)
	}
	return resp
}
