package domain

import (
	"fmt"
	"strings"
	"time"
)

type ReportStatus string

const (
	ReportStatusOpen     ReportStatus = "OPEN"
	ReportStatusResolved ReportStatus = "RESOLVED"
)

// ModerationAction is what an admin does with a report when resolving it.
type ModerationAction string

const (
	ModerationDismiss       ModerationAction = "DISMISS"
	ModerationRemoveListing ModerationAction = "REMOVE_LISTING"
)

func ParseModerationAction(s string) (ModerationAction, error) {
	switch a := ModerationAction(strings.ToUpper(strings.TrimSpace(s))); a {
	case ModerationDismiss, ModerationRemoveListing:
		return a, nil
	default:
		return "", fmt.Errorf("%w: unknown moderation action %q", ErrInvalidInput, s)
	}
}

type Report struct {
	ID          string
	PropertyID  string
	ReporterID  string
	Description string
	Status      ReportStatus
	Resolution  ModerationAction
	CreatedAt   time.Time
	ResolvedAt  *time.Time
}
