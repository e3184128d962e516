package services

import (
	"fmt"

	"github.com/artemshak/tutor-platform/internal/repository"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

// ReportService собирает отчеты преподавателя
type ReportService interface {
	// ProgressReport строит xlsx-отчет о прогрессе учеников преподавателя
	ProgressReport(teacherID uuid.UUID) (*excelize.File, error)
}

type reportService struct {
	progressRepo repository.ProgressRepository
	lessonRepo   repository.LessonRepository
	userRepo     repository.UserRepository
}

// NewReportService создает новый сервис отчетов
func NewReportService(
	progressRepo repository.ProgressRepository,
	lessonRepo repository.LessonRepository,
	userRepo repository.UserRepository,
) ReportService {
	return &reportService{
		progressRepo: progressRepo,
		lessonRepo:   lessonRepo,
		userRepo:     userRepo,
	}
}

func (s *reportService) ProgressReport(teacherID uuid.UUID) (*excelize.File, error) {
	progresses, err := s.progressRepo.ListByTeacher(teacherID)
	if err != nil {
		return nil, fmt.Errorf("failed to load progress: %w", err)
	}

	// Кэшируем имена учеников и названия уроков
	studentNames := map[uuid.UUID]string{}
	lessonTitles := map[uuid.UUID]string{}

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	headers := []string{"Ученик", "Урок", "Пройден", "Баллы", "Шагов отмечено", "Дата завершения"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for row, p := range progresses {
		name, ok := studentNames[p.StudentID]
		if !ok {
			if user, err := s.userRepo.GetByID(p.StudentID); err == nil {
				name = user.FullName()
			} else {
				name = p.StudentID.String()
			}
			studentNames[p.StudentID] = name
		}

		title, ok := lessonTitles[p.LessonID]
		if !ok {
			if lesson, err := s.lessonRepo.GetByID(p.LessonID); err == nil {
				title = lesson.Title
			} else {
				title = p.LessonID.String()
			}
			lessonTitles[p.LessonID] = title
		}

		completed := "нет"
		if p.IsCompleted {
			completed = "да"
		}
		completedAt := ""
		if p.CompletedAt != nil {
			completedAt = p.CompletedAt.Format("02.01.2006 15:04")
		}

		values := []interface{}{name, title, completed, p.TotalScore, len(p.CompletedSteps.Data()), completedAt}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	return f, nil
}
