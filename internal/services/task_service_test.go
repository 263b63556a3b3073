package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"plan-tracker.com/plan-tracker/internal/constants"
	apperrors "plan-tracker.com/plan-tracker/internal/errors"
	model "plan-tracker.com/plan-tracker/internal/models"
	repository "plan-tracker.com/plan-tracker/internal/repositories"
)

func newTaskServiceForTest(t *testing.T) (*TaskService, *repository.TaskRepository, *repository.MilestoneRepository) {
	t.Helper()
	db := setupTestDB(t)
	taskRepo := repository.NewTaskRepository(db)
	milestoneRepo := repository.NewMilestoneRepository(db)
	return NewTaskService(taskRepo), taskRepo, milestoneRepo
}

func TestShareLink_Lifecycle(t *testing.T) {
	svc, taskRepo, _ := newTaskServiceForTest(t)
	ctx := context.Background()

	ownerID := uuid.NewString()
	task, err := taskRepo.Create(ctx, ownerID, "Trip Plan", "")
	if err != nil {
		t.Fatalf("failed to create task: %v", err)
	}

	result, err := svc.GenerateShareLink(ctx, task.ID, ownerID)
	if err != nil {
		t.Fatalf("failed to generate share link: %v", err)
	}
	if !result.IsPublic || result.ShareableLink == "" {
		t.Fatalf("expected a public link, got %+v", result)
	}
	if !strings.Contains(result.ShareableLink, "-") {
		t.Errorf("expected timestamp-suffix token format, got %q", result.ShareableLink)
	}

	shared, err := svc.GetByShareableLink(ctx, result.ShareableLink)
	if err != nil {
		t.Fatalf("public lookup failed: %v", err)
	}
	if shared.ID != task.ID {
		t.Errorf("expected task %s from lookup, got %s", task.ID, shared.ID)
	}

	if _, err := svc.DeleteShareLink(ctx, task.ID, ownerID); err != nil {
		t.Fatalf("failed to delete share link: %v", err)
	}

	if _, err := svc.GetByShareableLink(ctx, result.ShareableLink); err != apperrors.ErrTaskNotFound {
		t.Errorf("expected revoked link to return not found, got %v", err)
	}
}

func TestGetTask_StoredParentCycleSurfacesError(t *testing.T) {
	svc, taskRepo, milestoneRepo := newTaskServiceForTest(t)
	ctx := context.Background()

	ownerID := uuid.NewString()
	task, err := taskRepo.Create(ctx, ownerID, "Plan", "")
	if err != nil {
		t.Fatalf("failed to create task: %v", err)
	}

	first, _ := milestoneRepo.Create(ctx, repository.CreateMilestoneParams{TaskID: task.ID, Title: "Phase 1"})
	second, _ := milestoneRepo.Create(ctx, repository.CreateMilestoneParams{TaskID: task.ID, Title: "Phase 2", ParentID: &first.ID})

	// Rows pointing at each other must not be silently dropped from the view.
	first.ParentID = &second.ID
	if err := milestoneRepo.Update(ctx, first); err != nil {
		t.Fatalf("failed to seed malformed rows: %v", err)
	}

	if _, err := svc.GetTask(ctx, ownerID, task.ID); err != apperrors.ErrCyclicHierarchy {
		t.Errorf("expected cycle error from task view, got %v", err)
	}
}

func TestShareLink_GenerateRequiresOwnership(t *testing.T) {
	svc, taskRepo, _ := newTaskServiceForTest(t)
	ctx := context.Background()

	task, _ := taskRepo.Create(ctx, uuid.NewString(), "Private Plan", "")

	if _, err := svc.GenerateShareLink(ctx, task.ID, uuid.NewString()); err != apperrors.ErrTaskNotFound {
		t.Errorf("expected not found for foreign task, got %v", err)
	}
}

func TestShareLink_RotateAndRevokeRequireOwnership(t *testing.T) {
	svc, taskRepo, _ := newTaskServiceForTest(t)
	ctx := context.Background()

	ownerID := uuid.NewString()
	task, _ := taskRepo.Create(ctx, ownerID, "Shared Plan", "")
	first, err := svc.GenerateShareLink(ctx, task.ID, ownerID)
	if err != nil {
		t.Fatalf("failed to generate share link: %v", err)
	}

	strangerID := uuid.NewString()
	if _, err := svc.UpdateShareLink(ctx, task.ID, strangerID, true); err != apperrors.ErrTaskNotFound {
		t.Errorf("expected not found when a stranger rotates the link, got %v", err)
	}
	if _, err := svc.DeleteShareLink(ctx, task.ID, strangerID); err != apperrors.ErrTaskNotFound {
		t.Errorf("expected not found when a stranger revokes the link, got %v", err)
	}

	if _, err := svc.GetByShareableLink(ctx, first.ShareableLink); err != nil {
		t.Errorf("expected owner's link to survive the stranger's attempts, got %v", err)
	}
}

func TestShareLink_RegenerateInvalidatesOldLink(t *testing.T) {
	svc, taskRepo, _ := newTaskServiceForTest(t)
	ctx := context.Background()

	ownerID := uuid.NewString()
	task, _ := taskRepo.Create(ctx, ownerID, "Plan", "")

	first, err := svc.GenerateShareLink(ctx, task.ID, ownerID)
	if err != nil {
		t.Fatalf("failed to generate share link: %v", err)
	}

	second, err := svc.UpdateShareLink(ctx, task.ID, ownerID, true)
	if err != nil {
		t.Fatalf("failed to regenerate share link: %v", err)
	}
	if second.ShareableLink == first.ShareableLink {
		t.Fatal("expected a fresh token after regeneration")
	}

	if _, err := svc.GetByShareableLink(ctx, first.ShareableLink); err != apperrors.ErrTaskNotFound {
		t.Errorf("expected old link to be dead, got %v", err)
	}
	if _, err := svc.GetByShareableLink(ctx, second.ShareableLink); err != nil {
		t.Errorf("expected new link to resolve, got %v", err)
	}
}

func TestShareLink_UpdateWithoutRegenerateKeepsToken(t *testing.T) {
	svc, taskRepo, _ := newTaskServiceForTest(t)
	ctx := context.Background()

	ownerID := uuid.NewString()
	task, _ := taskRepo.Create(ctx, ownerID, "Plan", "")
	first, _ := svc.GenerateShareLink(ctx, task.ID, ownerID)

	same, err := svc.UpdateShareLink(ctx, task.ID, ownerID, false)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if same.ShareableLink != first.ShareableLink {
		t.Error("expected token to survive a no-regenerate update")
	}
}

func TestShareLink_UpdateOnPrivateTaskFails(t *testing.T) {
	svc, taskRepo, _ := newTaskServiceForTest(t)
	ctx := context.Background()

	ownerID := uuid.NewString()
	task, _ := taskRepo.Create(ctx, ownerID, "Plan", "")

	if _, err := svc.UpdateShareLink(ctx, task.ID, ownerID, true); err != apperrors.ErrTaskNotShared {
		t.Errorf("expected ErrTaskNotShared, got %v", err)
	}
}

func TestShareLink_DeleteOnPrivateTaskIsNoOp(t *testing.T) {
	svc, taskRepo, _ := newTaskServiceForTest(t)
	ctx := context.Background()

	ownerID := uuid.NewString()
	task, _ := taskRepo.Create(ctx, ownerID, "Plan", "")

	result, err := svc.DeleteShareLink(ctx, task.ID, ownerID)
	if err != nil {
		t.Fatalf("expected no-op success, got %v", err)
	}
	if result.Message == "" {
		t.Error("expected a message for the no-op delete")
	}
}

func seedCloneSource(t *testing.T, svc *TaskService, milestoneRepo *repository.MilestoneRepository) (*model.Task, string) {
	t.Helper()
	ctx := context.Background()

	ownerID := uuid.NewString()
	source, err := svc.CreateTask(ctx, ownerID, "Marathon Training", "16 week schedule")
	if err != nil {
		t.Fatalf("failed to create source task: %v", err)
	}

	root, err := milestoneRepo.Create(ctx, repository.CreateMilestoneParams{
		TaskID: source.ID,
		Title:  "Base building",
		Status: constants.StatusInProgress,
	})
	if err != nil {
		t.Fatalf("failed to create root milestone: %v", err)
	}

	childDeadline := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	child, err := milestoneRepo.Create(ctx, repository.CreateMilestoneParams{
		TaskID:   source.ID,
		ParentID: &root.ID,
		Title:    "Weekly long run",
		Deadline: &childDeadline,
		Status:   constants.StatusCompleted,
	})
	if err != nil {
		t.Fatalf("failed to create child milestone: %v", err)
	}

	if _, err := milestoneRepo.Create(ctx, repository.CreateMilestoneParams{
		TaskID:   source.ID,
		ParentID: &child.ID,
		Title:    "Sunday 20k",
		Status:   constants.StatusCompleted,
	}); err != nil {
		t.Fatalf("failed to create grandchild milestone: %v", err)
	}

	return source, ownerID
}

func TestCloneTask_DepthTruncation(t *testing.T) {
	svc, _, milestoneRepo := newTaskServiceForTest(t)
	ctx := context.Background()

	source, _ := seedCloneSource(t, svc, milestoneRepo)

	targetUserID := uuid.NewString()
	clone, err := svc.CloneTask(ctx, source.ID, targetUserID)
	if err != nil {
		t.Fatalf("clone failed: %v", err)
	}

	if clone.UserID != targetUserID {
		t.Errorf("expected clone owned by target user, got %s", clone.UserID)
	}
	if clone.IsPublic || clone.ShareableLink != nil {
		t.Error("clone must always start private")
	}
	if clone.Title != source.Title {
		t.Errorf("expected title copied, got %q", clone.Title)
	}

	if len(clone.Milestones) != 1 {
		t.Fatalf("expected 1 root milestone in clone, got %d", len(clone.Milestones))
	}
	root := clone.Milestones[0]
	if len(root.Children) != 1 {
		t.Fatalf("expected 1 child milestone in clone, got %d", len(root.Children))
	}
	if len(root.Children[0].Children) != 0 {
		t.Error("grandchildren must not survive the clone")
	}
}

func TestCloneTask_ChildFieldReset(t *testing.T) {
	svc, _, milestoneRepo := newTaskServiceForTest(t)
	ctx := context.Background()

	source, _ := seedCloneSource(t, svc, milestoneRepo)

	clone, err := svc.CloneTask(ctx, source.ID, uuid.NewString())
	if err != nil {
		t.Fatalf("clone failed: %v", err)
	}

	root := clone.Milestones[0]
	if root.Status != constants.StatusInProgress {
		t.Errorf("root milestone should keep its status, got %s", root.Status)
	}

	child := root.Children[0]
	if child.Title != "Weekly long run" {
		t.Errorf("child title should be copied, got %q", child.Title)
	}
	// Child copies carry title and description only.
	if child.Status != constants.StatusNotStarted {
		t.Errorf("child status should reset to NOT_STARTED, got %s", child.Status)
	}
	if child.Deadline != nil {
		t.Error("child deadline should not be copied")
	}
}

func TestCloneTask_NewIdentities(t *testing.T) {
	svc, _, milestoneRepo := newTaskServiceForTest(t)
	ctx := context.Background()

	source, _ := seedCloneSource(t, svc, milestoneRepo)

	clone, err := svc.CloneTask(ctx, source.ID, uuid.NewString())
	if err != nil {
		t.Fatalf("clone failed: %v", err)
	}

	if clone.ID == source.ID {
		t.Error("clone must get a fresh id")
	}

	flatSource, _ := svc.taskRepo.FindByID(ctx, source.ID)
	sourceIDs := make(map[string]bool)
	for _, m := range flatSource.Milestones {
		sourceIDs[m.ID] = true
	}
	flatClone, _ := svc.taskRepo.FindByID(ctx, clone.ID)
	for _, m := range flatClone.Milestones {
		if sourceIDs[m.ID] {
			t.Errorf("clone reused milestone id %s", m.ID)
		}
		if m.TaskID != clone.ID {
			t.Errorf("cloned milestone points at task %s, want %s", m.TaskID, clone.ID)
		}
	}
}

func TestCloneTask_SourceMustExist(t *testing.T) {
	svc, _, _ := newTaskServiceForTest(t)

	if _, err := svc.CloneTask(context.Background(), uuid.NewString(), uuid.NewString()); err != apperrors.ErrTaskNotFound {
		t.Errorf("expected not found for missing source, got %v", err)
	}
}

func TestCloneTask_DoesNotRequireSourceOwnership(t *testing.T) {
	svc, _, milestoneRepo := newTaskServiceForTest(t)
	ctx := context.Background()

	source, ownerID := seedCloneSource(t, svc, milestoneRepo)
	stranger := uuid.NewString()
	if stranger == ownerID {
		t.Fatal("test users collided")
	}

	if _, err := svc.CloneTask(ctx, source.ID, stranger); err != nil {
		t.Errorf("clone by non-owner should succeed, got %v", err)
	}
}

func TestGetTask_HidesForeignTasks(t *testing.T) {
	svc, taskRepo, _ := newTaskServiceForTest(t)
	ctx := context.Background()

	task, _ := taskRepo.Create(ctx, uuid.NewString(), "Plan", "")

	if _, err := svc.GetTask(ctx, uuid.NewString(), task.ID); err != apperrors.ErrTaskNotFound {
		t.Errorf("expected foreign task to be hidden, got %v", err)
	}
}

func TestGetTask_ReturnsNestedMilestones(t *testing.T) {
	svc, _, milestoneRepo := newTaskServiceForTest(t)
	ctx := context.Background()

	source, ownerID := seedCloneSource(t, svc, milestoneRepo)

	task, err := svc.GetTask(ctx, ownerID, source.ID)
	if err != nil {
		t.Fatalf("get task failed: %v", err)
	}

	if len(task.Milestones) != 1 {
		t.Fatalf("expected 1 root milestone, got %d", len(task.Milestones))
	}
	if len(task.Milestones[0].Children) != 1 || len(task.Milestones[0].Children[0].Children) != 1 {
		t.Error("expected the full three-level hierarchy on read")
	}
}
