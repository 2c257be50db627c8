package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	assistanterrors "leavesync/internal/assistant/errors"
	"leavesync/internal/calendar"
	leaveerrors "leavesync/internal/leave/errors"

	"go.uber.org/zap"
)

const rankSystemPrompt = "You are an AI leave optimization assistant. " +
	"You receive a structured calendar snapshot and answer in JSON only."

const draftSystemPrompt = "You are a professional email assistant specializing in leave applications. " +
	"Take the employee's reason, enhance it professionally, and produce a complete, " +
	"well-structured email body without a subject line. Use a formal but friendly tone; " +
	"keep it concise, clear and professional."

type Service interface {
	// RankSuggestions asks the model to pick the best leave windows from the
	// snapshot. Callers treat any error as a soft failure and fall back to
	// the deterministic engine.
	RankSuggestions(ctx context.Context, snap calendar.SuggestionContext) ([]calendar.Suggestion, error)

	// DraftEmail produces a leave request email. On any assistant failure it
	// degrades to the deterministic template and never returns an error for
	// that reason.
	DraftEmail(ctx context.Context, req DraftEmailRequest) (DraftEmailResponse, error)
}

type service struct {
	client *Client
	logger *zap.Logger
}

func NewService(client *Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("assistant.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("assistant.service")
	}
	return &service{client: client, logger: l}
}

type rankedIdea struct {
	Start  string `json:"start"`
	End    string `json:"end"`
	Reason string `json:"reason"`
}

type rankedPayload struct {
	Suggestions []struct {
		Month string       `json:"month"`
		Ideas []rankedIdea `json:"ideas"`
	} `json:"suggestions"`
}

func (s *service) RankSuggestions(ctx context.Context, snap calendar.SuggestionContext) ([]calendar.Suggestion, error) {
	snapshot, err := json.Marshal(snap)
	if err != nil {
		return nil, err
	}

	prompt := fmt.Sprintf(
		"Using this structured calendar JSON:\n%s\n\n"+
			"Generate at most 5 recommended leave ideas in JSON ONLY, format:\n"+
			`{"suggestions": [{"month": "Month Name", "ideas": [{"start": "YYYY-MM-DD", "end": "YYYY-MM-DD", "reason": "brief explanation"}]}]}`,
		snapshot,
	)

	content, err := s.client.Complete(ctx, rankSystemPrompt, prompt)
	if err != nil {
		return nil, err
	}

	var payload rankedPayload
	if err := json.Unmarshal([]byte(stripCodeFence(content)), &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", assistanterrors.ErrMalformedPayload, err)
	}

	var out []calendar.Suggestion
	for _, month := range payload.Suggestions {
		for _, idea := range month.Ideas {
			if idea.Start == "" {
				continue
			}
			label := fmt.Sprintf("%s: %s", month.Month, idea.Start)
			if idea.End != "" && idea.End != idea.Start {
				label += " to " + idea.End
			}
			out = append(out, calendar.Suggestion{
				Label:       label,
				Explanation: idea.Reason,
			})
		}
	}
	if len(out) == 0 {
		return nil, assistanterrors.ErrEmptyCompletion
	}
	return out, nil
}

func (s *service) DraftEmail(ctx context.Context, req DraftEmailRequest) (DraftEmailResponse, error) {
	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return DraftEmailResponse{}, leaveerrors.ErrInvalidDateFormat
	}
	end, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return DraftEmailResponse{}, leaveerrors.ErrInvalidDateFormat
	}
	if start.After(end) {
		return DraftEmailResponse{}, leaveerrors.ErrInvalidDateRange
	}

	manager := req.ManagerName
	if manager == "" {
		manager = "Manager"
	}
	totalDays := int(end.Sub(start).Hours()/24) + 1

	prompt := fmt.Sprintf(
		"Create a professional leave application email with these details:\n\n"+
			"Employee Name: %s\nLeave Type: %s\nStart Date: %s\nEnd Date: %s\n"+
			"Total Days: %d\nManager Name: %s\n\n"+
			"Employee's Original Reason (enhance this professionally):\n%s",
		req.EmployeeName, req.LeaveTypeName,
		start.Format("January 02, 2006"), end.Format("January 02, 2006"),
		totalDays, manager, req.Reason,
	)

	content, err := s.client.Complete(ctx, draftSystemPrompt, prompt)
	if err != nil {
		s.logger.Warn("email draft enhancement unavailable, using template", zap.Error(err))
		return DraftEmailResponse{
			Email:  fallbackEmail(req.LeaveTypeName, start, end, req.Reason, req.EmployeeName, manager),
			Source: "template",
		}, nil
	}

	return DraftEmailResponse{Email: content, Source: "assistant"}, nil
}

// fallbackEmail renders the deterministic request template used whenever the
// model is unavailable.
func fallbackEmail(leaveType string, start, end time.Time, reason, employeeName, managerName string) string {
	totalDays := int(end.Sub(start).Hours()/24) + 1
	plural := ""
	if totalDays > 1 {
		plural = "s"
	}

	return fmt.Sprintf(`Dear %s,

I am writing to request %s leave from %s to %s (%d day%s).

Reason: %s

I have ensured that my work responsibilities will be covered during my absence. I will be available for any urgent matters via email.

Thank you for considering my request.

Best regards,
%s`,
		managerName, leaveType,
		start.Format("January 02, 2006"), end.Format("January 02, 2006"),
		totalDays, plural,
		tidyReason(reason),
		employeeName,
	)
}

// tidyReason applies minimal cleanup to the employee's free-text reason
// before it lands in the template.
func tidyReason(reason string) string {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return "Personal reasons."
	}
	r := []rune(reason)
	if r[0] >= 'a' && r[0] <= 'z' {
		r[0] = r[0] - 'a' + 'A'
	}
	reason = string(r)
	if !strings.HasSuffix(reason, ".") && !strings.HasSuffix(reason, "!") && !strings.HasSuffix(reason, "?") {
		reason += "."
	}
	return reason
}

// stripCodeFence unwraps ```json fenced blocks some models insist on.
func stripCodeFence(content string) string {
	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, "```") {
		return content
	}
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	return strings.TrimSpace(content)
}
