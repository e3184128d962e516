package cron

import (
	"log"
	"time"

	"github.com/artemshak/tutor-platform/internal/services"

	"github.com/robfig/cron/v3"
)

// StartJobs запускает фоновые задачи по расписанию
func StartJobs(spec string, assignmentService services.AssignmentService) *cron.Cron {
	c := cron.New()

	// Напоминание о назначениях с дедлайном в ближайшие сутки
	if _, err := c.AddFunc(spec, func() {
		now := time.Now()
		due, err := assignmentService.DueBetween(now, now.Add(24*time.Hour))
		if err != nil {
			log.Printf("deadline reminder failed: %v", err)
			return
		}
		for _, a := range due {
			log.Printf("deadline soon: assignment=%s lesson=%s deadline=%s",
				a.ID, a.LessonID, a.Deadline.Format(time.RFC3339))
		}
	}); err != nil {
		log.Printf("failed to schedule reminder job: %v", err)
	}

	c.Start()
	return c
}
