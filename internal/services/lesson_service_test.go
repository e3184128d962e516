package services

import (
	"errors"
	"testing"

	"github.com/artemshak/tutor-platform/internal/models"

	"github.com/google/uuid"
)

func TestAddStepRejectsUnknownType(t *testing.T) {
	env := newTestEnv(t)
	teacher := env.teacher(t, "teacher@example.com")
	lesson, err := env.lessons.CreateLesson(teacher.ID, "Урок", nil, nil)
	if err != nil {
		t.Fatalf("CreateLesson: %v", err)
	}

	if _, err := env.lessons.AddStep(teacher.ID, lesson.ID, "slideshow", nil); !errors.Is(err, ErrUnknownStep) {
		t.Fatalf("AddStep(slideshow) = %v, want ErrUnknownStep", err)
	}
}

func TestLessonOwnership(t *testing.T) {
	env := newTestEnv(t)
	owner := env.teacher(t, "owner@example.com")
	intruder := env.teacher(t, "intruder@example.com")
	lesson, err := env.lessons.CreateLesson(owner.ID, "Урок", nil, nil)
	if err != nil {
		t.Fatalf("CreateLesson: %v", err)
	}

	if _, err := env.lessons.GetLesson(intruder.ID, lesson.ID); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("GetLesson by intruder = %v, want ErrNotOwner", err)
	}
	if err := env.lessons.DeleteLesson(intruder.ID, lesson.ID); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("DeleteLesson by intruder = %v, want ErrNotOwner", err)
	}
	if _, err := env.lessons.SetPublished(intruder.ID, lesson.ID, true); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("SetPublished by intruder = %v, want ErrNotOwner", err)
	}
}

func TestReorderSteps(t *testing.T) {
	env := newTestEnv(t)
	teacher := env.teacher(t, "teacher@example.com")
	lesson, err := env.lessons.CreateLesson(teacher.ID, "Урок", nil, nil)
	if err != nil {
		t.Fatalf("CreateLesson: %v", err)
	}

	first, err := env.lessons.AddStep(teacher.ID, lesson.ID, models.StepText, nil)
	if err != nil {
		t.Fatalf("AddStep: %v", err)
	}
	second, err := env.lessons.AddStep(teacher.ID, lesson.ID, models.StepText, nil)
	if err != nil {
		t.Fatalf("AddStep: %v", err)
	}

	got, err := env.lessons.ReorderSteps(teacher.ID, lesson.ID, []uuid.UUID{second.ID, first.ID})
	if err != nil {
		t.Fatalf("ReorderSteps: %v", err)
	}
	if got.StepsOrder[0] != second.ID || got.StepsOrder[1] != first.ID {
		t.Errorf("StepsOrder = %v, want [%s %s]", got.StepsOrder, second.ID, first.ID)
	}

	badOrders := [][]uuid.UUID{
		{first.ID},                        // не все шаги
		{first.ID, uuid.New()},            // чужой ID
		{first.ID, first.ID},              // дубликат
		{first.ID, second.ID, uuid.New()}, // лишний шаг
	}
	for _, order := range badOrders {
		if _, err := env.lessons.ReorderSteps(teacher.ID, lesson.ID, order); !errors.Is(err, ErrBadStepOrder) {
			t.Fatalf("ReorderSteps(%v) = %v, want ErrBadStepOrder", order, err)
		}
	}
}

func TestFolderNesting(t *testing.T) {
	env := newTestEnv(t)
	teacher := env.teacher(t, "teacher@example.com")
	other := env.teacher(t, "other@example.com")

	parent, err := env.lessons.CreateFolder(teacher.ID, "Грамматика", nil)
	if err != nil {
		t.Fatalf("CreateFolder: %v", err)
	}
	child, err := env.lessons.CreateFolder(teacher.ID, "Времена", &parent.ID)
	if err != nil {
		t.Fatalf("CreateFolder nested: %v", err)
	}
	if child.ParentID == nil || *child.ParentID != parent.ID {
		t.Errorf("child.ParentID = %v, want %s", child.ParentID, parent.ID)
	}

	// Нельзя вложить папку в чужую
	if _, err := env.lessons.CreateFolder(other.ID, "Чужая", &parent.ID); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("CreateFolder in foreign parent = %v, want ErrNotOwner", err)
	}
}
