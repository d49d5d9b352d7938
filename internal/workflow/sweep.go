package workflow

import (
	"fmt"
	"time"

	"github.com/crewly-dev/crewly/internal/models"
	"github.com/crewly-dev/crewly/internal/notify"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// How far ahead a deadline counts as "soon", and how far back the dedup
// guard looks for an earlier notification of the same kind.
const sweepWindow = 24 * time.Hour

// SweepService is the periodic deadline scan. It is stateless: dedup works
// by looking for a notification of the same type and project created within
// the last 24 hours instead of keeping a "last notified" marker.
type SweepService struct {
	db       *gorm.DB
	notifier *notify.Service
}

func NewSweepService(db *gorm.DB, notifier *notify.Service) *SweepService {
	return &SweepService{db: db, notifier: notifier}
}

type SweepResult struct {
	SoonProjects    int `json:"soon_projects"`
	OverdueProjects int `json:"overdue_projects"`
	Notified        int `json:"notified"`
}

// Run scans for projects whose deadline falls within the next 24 hours and
// for overdue projects that still have unfinished tasks, and notifies the
// owner plus all members of each, at most once per 24-hour window.
//
// The lookback dedup assumes the sweep runs at least once per day. If it
// runs less often, a deadline can slide through the whole "soon" window
// between two runs and never produce a DEADLINE_SOON notification; the
// overdue pass will still catch the project afterwards.
func (s *SweepService) Run(now time.Time) (SweepResult, error) {
	var result SweepResult

	in24h := now.Add(sweepWindow)
	cutoff := now.Add(-sweepWindow)

	var soon []models.Project
	if err := s.db.
		Where("deadline >= ? AND deadline <= ?", now, in24h).
		Find(&soon).Error; err != nil {
		return result, err
	}
	result.SoonProjects = len(soon)

	var overdue []models.Project
	if err := s.db.
		Where("deadline < ?", now).
		Where("EXISTS (SELECT 1 FROM tasks WHERE tasks.project_id = projects.id AND tasks.status <> ? AND tasks.deleted_at IS NULL)",
			models.TaskStatusDone).
		Find(&overdue).Error; err != nil {
		return result, err
	}
	result.OverdueProjects = len(overdue)

	for _, project := range soon {
		result.Notified += s.sweepProject(project, models.NotifyDeadlineSoon,
			fmt.Sprintf("Deadline for project %q is less than 24 hours away!", project.Name), cutoff)
	}

	for _, project := range overdue {
		result.Notified += s.sweepProject(project, models.NotifyDeadlineOverdue,
			fmt.Sprintf("Project %q is past its deadline!", project.Name), cutoff)
	}

	return result, nil
}

// sweepProject emits one notification per recipient unless the project was
// already notified for this type within the lookback window. Failures are
// logged and skipped; one broken project must not stop the batch.
func (s *SweepService) sweepProject(project models.Project, typ models.NotificationType, message string, cutoff time.Time) int {
	var existing int64
	if err := s.db.Model(&models.Notification{}).
		Where("type = ? AND reference_id = ? AND created_at >= ?", typ, project.ID, cutoff).
		Count(&existing).Error; err != nil {
		zap.L().Error("sweep dedup check failed",
			zap.Uint("project_id", project.ID),
			zap.String("type", string(typ)),
			zap.Error(err))
		return 0
	}
	if existing > 0 {
		return 0
	}

	memberIDs, err := memberUserIDs(s.db, project.ID)
	if err != nil {
		zap.L().Error("sweep member lookup failed",
			zap.Uint("project_id", project.ID),
			zap.Error(err))
		return 0
	}

	seen := map[uint]struct{}{project.OwnerID: {}}
	recipients := []uint{project.OwnerID}
	for _, userID := range memberIDs {
		if _, ok := seen[userID]; ok {
			continue
		}
		seen[userID] = struct{}{}
		recipients = append(recipients, userID)
	}

	ref := project.ID
	link := projectLink(project.ID)
	messages := make([]notify.Message, 0, len(recipients))
	for _, userID := range recipients {
		messages = append(messages, notify.Message{
			UserID:      userID,
			Type:        typ,
			Message:     message,
			Link:        link,
			ReferenceID: &ref,
		})
	}
	s.notifier.DispatchMany(messages)

	return len(messages)
}
