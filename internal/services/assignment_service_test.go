package services

import (
	"errors"
	"testing"

	"github.com/artemshak/tutor-platform/internal/models"
)

func TestAssignRequiresExactlyOneTarget(t *testing.T) {
	env := newTestEnv(t)
	teacher := env.teacher(t, "teacher@example.com")
	student := env.student(t, "student@example.com", teacher.ID)
	lesson, err := env.lessons.CreateLesson(teacher.ID, "Урок", nil, nil)
	if err != nil {
		t.Fatalf("CreateLesson: %v", err)
	}
	group, err := env.groups.CreateGroup(teacher.ID, "Группа")
	if err != nil {
		t.Fatalf("CreateGroup: %v", err)
	}

	if _, err := env.assignments.Assign(teacher.ID, lesson.ID, nil, nil, nil); !errors.Is(err, ErrAssignTarget) {
		t.Fatalf("Assign without target = %v, want ErrAssignTarget", err)
	}
	if _, err := env.assignments.Assign(teacher.ID, lesson.ID, &student.ID, &group.ID, nil); !errors.Is(err, ErrAssignTarget) {
		t.Fatalf("Assign with both targets = %v, want ErrAssignTarget", err)
	}
}

func TestAssignOwnershipChecks(t *testing.T) {
	env := newTestEnv(t)
	teacher := env.teacher(t, "teacher@example.com")
	other := env.teacher(t, "other@example.com")
	student := env.student(t, "student@example.com", teacher.ID)
	lesson, err := env.lessons.CreateLesson(teacher.ID, "Урок", nil, nil)
	if err != nil {
		t.Fatalf("CreateLesson: %v", err)
	}

	// Чужой преподаватель не может выдавать чужой урок
	if _, err := env.assignments.Assign(other.ID, lesson.ID, &student.ID, nil, nil); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("Assign foreign lesson = %v, want ErrNotOwner", err)
	}

	// Свой урок нельзя выдать чужому ученику
	foreign := env.student(t, "foreign@example.com", other.ID)
	if _, err := env.assignments.Assign(teacher.ID, lesson.ID, &foreign.ID, nil, nil); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("Assign to foreign student = %v, want ErrNotOwner", err)
	}
}

func TestAssignedLessonsAndAccess(t *testing.T) {
	env := newTestEnv(t)
	teacher := env.teacher(t, "teacher@example.com")
	student := env.student(t, "student@example.com", teacher.ID)

	direct, err := env.lessons.CreateLesson(teacher.ID, "Личный", nil, nil)
	if err != nil {
		t.Fatalf("CreateLesson: %v", err)
	}
	grouped, err := env.lessons.CreateLesson(teacher.ID, "Групповой", nil, nil)
	if err != nil {
		t.Fatalf("CreateLesson: %v", err)
	}
	draft, err := env.lessons.CreateLesson(teacher.ID, "Черновик", nil, nil)
	if err != nil {
		t.Fatalf("CreateLesson: %v", err)
	}
	for _, l := range []*models.Lesson{direct, grouped} {
		if _, err := env.lessons.SetPublished(teacher.ID, l.ID, true); err != nil {
			t.Fatalf("SetPublished: %v", err)
		}
	}

	group, err := env.groups.CreateGroup(teacher.ID, "Группа")
	if err != nil {
		t.Fatalf("CreateGroup: %v", err)
	}
	if err := env.groups.AddMember(teacher.ID, group.ID, student.ID); err != nil {
		t.Fatalf("AddMember: %v", err)
	}

	if _, err := env.assignments.Assign(teacher.ID, direct.ID, &student.ID, nil, nil); err != nil {
		t.Fatalf("Assign direct: %v", err)
	}
	if _, err := env.assignments.Assign(teacher.ID, grouped.ID, nil, &group.ID, nil); err != nil {
		t.Fatalf("Assign via group: %v", err)
	}
	if _, err := env.assignments.Assign(teacher.ID, draft.ID, &student.ID, nil, nil); err != nil {
		t.Fatalf("Assign draft: %v", err)
	}

	lessons, err := env.assignments.AssignedLessons(student.ID)
	if err != nil {
		t.Fatalf("AssignedLessons: %v", err)
	}
	// Черновик выдан, но не опубликован — ученик его не видит
	if len(lessons) != 2 {
		t.Fatalf("len(lessons) = %d, want 2", len(lessons))
	}

	ok, err := env.assignments.HasAccess(student.ID, grouped.ID)
	if err != nil || !ok {
		t.Fatalf("HasAccess(grouped) = %v, %v, want true", ok, err)
	}
	stranger := env.student(t, "stranger@example.com", teacher.ID)
	ok, err = env.assignments.HasAccess(stranger.ID, direct.ID)
	if err != nil || ok {
		t.Fatalf("HasAccess(stranger) = %v, %v, want false", ok, err)
	}
}

func TestHasAccessAfterLessonDelete(t *testing.T) {
	env := newTestEnv(t)
	teacher := env.teacher(t, "teacher@example.com")
	student := env.student(t, "student@example.com", teacher.ID)
	lesson, err := env.lessons.CreateLesson(teacher.ID, "Урок", nil, nil)
	if err != nil {
		t.Fatalf("CreateLesson: %v", err)
	}
	if _, err := env.assignments.Assign(teacher.ID, lesson.ID, &student.ID, nil, nil); err != nil {
		t.Fatalf("Assign: %v", err)
	}

	if err := env.lessons.DeleteLesson(teacher.ID, lesson.ID); err != nil {
		t.Fatalf("DeleteLesson: %v", err)
	}

	// Назначение удалено каскадом вместе с уроком
	ok, err := env.assignments.HasAccess(student.ID, lesson.ID)
	if err != nil || ok {
		t.Fatalf("HasAccess after delete = %v, %v, want false", ok, err)
	}
	assignments, err := env.assignments.ListByTeacher(teacher.ID)
	if err != nil {
		t.Fatalf("ListByTeacher: %v", err)
	}
	if len(assignments) != 0 {
		t.Fatalf("len(assignments) = %d, want 0", len(assignments))
	}
}

func TestSubmitStepEndToEnd(t *testing.T) {
	env := newTestEnv(t)
	teacher := env.teacher(t, "teacher@example.com")
	student := env.student(t, "student@example.com", teacher.ID)

	lesson, err := env.lessons.CreateLesson(teacher.ID, "Квиз", nil, nil)
	if err != nil {
		t.Fatalf("CreateLesson: %v", err)
	}
	step, err := env.lessons.AddStep(teacher.ID, lesson.ID, models.StepQuiz, map[string]interface{}{
		"question": "2+2?",
		"options":  []interface{}{"3", "4"},
		"correct":  "4",
		"points":   float64(10),
	})
	if err != nil {
		t.Fatalf("AddStep: %v", err)
	}
	if _, err := env.lessons.SetPublished(teacher.ID, lesson.ID, true); err != nil {
		t.Fatalf("SetPublished: %v", err)
	}

	// Без назначения шаг сдать нельзя
	if _, err := env.progress.SubmitStep(student.ID, lesson.ID, step.ID, map[string]interface{}{"answer": "4"}); !errors.Is(err, ErrLessonNotAssigned) {
		t.Fatalf("SubmitStep unassigned = %v, want ErrLessonNotAssigned", err)
	}

	if _, err := env.assignments.Assign(teacher.ID, lesson.ID, &student.ID, nil, nil); err != nil {
		t.Fatalf("Assign: %v", err)
	}

	result, err := env.progress.SubmitStep(student.ID, lesson.ID, step.ID, map[string]interface{}{"answer": "4"})
	if err != nil {
		t.Fatalf("SubmitStep: %v", err)
	}
	if result.Status != StepStatusCorrect || result.Score != 10 {
		t.Fatalf("result = %+v, want correct/10", result)
	}

	progress, err := env.progress.GetProgress(student.ID, lesson.ID)
	if err != nil {
		t.Fatalf("GetProgress: %v", err)
	}
	if !progress.IsCompleted || progress.TotalScore != 10 {
		t.Errorf("progress = completed %v score %d, want true/10", progress.IsCompleted, progress.TotalScore)
	}

	// Баллы начислены ученику
	profile, err := env.users.GetStudent(student.ID)
	if err != nil {
		t.Fatalf("GetStudent: %v", err)
	}
	if profile.Points != 10 {
		t.Errorf("points = %d, want 10", profile.Points)
	}

	// Пересдача с неверным ответом отнимает начисленное
	result, err = env.progress.SubmitStep(student.ID, lesson.ID, step.ID, map[string]interface{}{"answer": "3"})
	if err != nil {
		t.Fatalf("SubmitStep resubmit: %v", err)
	}
	if result.Status != StepStatusIncorrect {
		t.Fatalf("resubmit result = %+v, want incorrect", result)
	}
	profile, err = env.users.GetStudent(student.ID)
	if err != nil {
		t.Fatalf("GetStudent: %v", err)
	}
	if profile.Points != 0 {
		t.Errorf("points after resubmit = %d, want 0", profile.Points)
	}
}
