package state

import (
	"reflect"
	"testing"
)

// ============================================================
// Minutes rule
// ============================================================

func TestLogMinutes(t *testing.T) {
	tests := []struct {
		start, end int64
		want       int
	}{
		{0, 1, 1},
		{0, 59_999, 1},
		{0, 60_000, 1},
		{0, 60_001, 2},
		{0, 90_000, 2},
		{0, 120_000, 2},
		{1_000_000, 1_000_000 + 25*60_000, 25},
	}
	for _, tt := range tests {
		if got := LogMinutes(tt.start, tt.end); got != tt.want {
			t.Errorf("LogMinutes(%d, %d) = %d, want %d", tt.start, tt.end, got, tt.want)
		}
	}
}

// ============================================================
// Tasks
// ============================================================

func TestCreateTask(t *testing.T) {
	s := newTestStore(t)
	setClock(s, 1000)

	id, err := s.CreateTask("  Write report  ", TaskPatch{})
	if err != nil {
		t.Fatal(err)
	}
	if id == "" {
		t.Fatal("expected non-empty id")
	}

	task := s.State().TaskByID(id)
	if task == nil {
		t.Fatal("task not found")
	}
	if task.Title != "Write report" {
		t.Fatalf("title = %q, want trimmed", task.Title)
	}
	if task.Status != StatusTodo {
		t.Fatalf("status = %q, want todo", task.Status)
	}
	if task.CreatedAt != 1000 || task.UpdatedAt != 1000 {
		t.Fatalf("timestamps = %d/%d, want 1000/1000", task.CreatedAt, task.UpdatedAt)
	}
}

func TestCreateTaskBlankTitleGetsPlaceholder(t *testing.T) {
	s := newTestStore(t)
	id, _ := s.CreateTask("   ", TaskPatch{})
	if got := s.State().TaskByID(id).Title; got != placeholderTitle {
		t.Fatalf("title = %q, want placeholder", got)
	}
}

func TestCreateTaskNewestFirst(t *testing.T) {
	s := newTestStore(t)
	s.CreateTask("first", TaskPatch{})
	s.CreateTask("second", TaskPatch{})

	tasks := s.State().Tasks
	if tasks[0].Title != "second" || tasks[1].Title != "first" {
		t.Fatalf("order = %q, %q; want newest first", tasks[0].Title, tasks[1].Title)
	}
}

func TestCreateTaskWithOverrides(t *testing.T) {
	s := newTestStore(t)
	est := 45
	id, _ := s.CreateTask("deep work", TaskPatch{
		Tags:        []string{"focus"},
		PlannedDate: strPtr("2024-01-03"),
		EstimateMin: &est,
	})
	task := s.State().TaskByID(id)
	if task.PlannedDate != "2024-01-03" {
		t.Fatalf("plannedDate = %q", task.PlannedDate)
	}
	if task.EstimateMin == nil || *task.EstimateMin != 45 {
		t.Fatalf("estimateMin = %v", task.EstimateMin)
	}
	if len(task.Tags) != 1 || task.Tags[0] != "focus" {
		t.Fatalf("tags = %v", task.Tags)
	}
}

func TestCreateTaskFoldsTagsIntoLibrary(t *testing.T) {
	s := newTestStore(t)
	s.CreateTask("a", TaskPatch{Tags: []string{"focus", "deep"}})
	s.CreateTask("b", TaskPatch{Tags: []string{"deep", "admin"}})

	lib := s.State().Settings.TagLibrary
	want := []string{"focus", "deep", "admin"}
	if !reflect.DeepEqual(lib, want) {
		t.Fatalf("tagLibrary = %v, want %v", lib, want)
	}
}

func TestUpdateTask(t *testing.T) {
	s := newTestStore(t)
	setClock(s, 1000)
	id, _ := s.CreateTask("original", TaskPatch{})

	setClock(s, 2000)
	if err := s.UpdateTask(id, TaskPatch{Notes: strPtr("some notes")}); err != nil {
		t.Fatal(err)
	}

	task := s.State().TaskByID(id)
	if task.Notes != "some notes" {
		t.Fatalf("notes = %q", task.Notes)
	}
	if task.Title != "original" {
		t.Fatal("unpatched fields must be preserved")
	}
	if task.UpdatedAt != 2000 || task.CreatedAt != 1000 {
		t.Fatalf("timestamps = %d/%d", task.CreatedAt, task.UpdatedAt)
	}
}

func TestUpdateTaskUnknownIDIsNoop(t *testing.T) {
	s := newTestStore(t)
	n := 0
	s.Subscribe(func(AppState) { n++ })
	if err := s.UpdateTask("missing", TaskPatch{Notes: strPtr("x")}); err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Fatal("no-op must not commit")
	}
}

func TestUpdateTaskClearsNullableFields(t *testing.T) {
	s := newTestStore(t)
	est := 30
	id, _ := s.CreateTask("x", TaskPatch{EstimateMin: &est, DeadlineAt: int64Ptr(99999)})

	zero := 0
	var zeroTS int64
	s.UpdateTask(id, TaskPatch{EstimateMin: &zero, DeadlineAt: &zeroTS})

	task := s.State().TaskByID(id)
	if task.EstimateMin != nil || task.DeadlineAt != nil {
		t.Fatalf("nullable fields not cleared: %v %v", task.EstimateMin, task.DeadlineAt)
	}
}

func TestMoveTask(t *testing.T) {
	s := newTestStore(t)
	id, _ := s.CreateTask("x", TaskPatch{})

	s.MoveTask(id, "2024-02-01", "09:30")
	task := s.State().TaskByID(id)
	if task.PlannedDate != "2024-02-01" || task.PlannedStart != "09:30" {
		t.Fatalf("planning fields = %q/%q", task.PlannedDate, task.PlannedStart)
	}

	// Moving with empty strings un-plans the task.
	s.MoveTask(id, "", "")
	task = s.State().TaskByID(id)
	if task.PlannedDate != "" || task.PlannedStart != "" {
		t.Fatal("planning fields should be cleared")
	}
}

func TestToggleTask(t *testing.T) {
	s := newTestStore(t)
	id, _ := s.CreateTask("x", TaskPatch{})

	s.ToggleTask(id)
	if s.State().TaskByID(id).Status != StatusDone {
		t.Fatal("expected done after first toggle")
	}
	s.ToggleTask(id)
	if s.State().TaskByID(id).Status != StatusTodo {
		t.Fatal("expected todo after second toggle")
	}
}

func TestDeleteTaskCascades(t *testing.T) {
	s := newTestStore(t)
	id, _ := s.CreateTask("doomed", TaskPatch{})
	other, _ := s.CreateTask("survivor", TaskPatch{})

	s.AddTimeLog(ManualLog{TaskID: id, StartedAt: 0, EndedAt: 60_000})
	s.AddTimeLog(ManualLog{TaskID: other, StartedAt: 0, EndedAt: 60_000})
	unassigned, _ := s.AddTimeLog(ManualLog{StartedAt: 0, EndedAt: 60_000})
	s.AddBlock(id, "2024-01-01", 480, 540)

	if err := s.DeleteTask(id); err != nil {
		t.Fatal(err)
	}

	st := s.State()
	if st.TaskByID(id) != nil {
		t.Fatal("task not deleted")
	}
	for _, l := range st.TimeLogs {
		if l.TaskID == id {
			t.Fatal("orphaned log remains")
		}
	}
	if st.LogByID(unassigned) == nil {
		t.Fatal("unassociated log must be untouched")
	}
	if len(st.TimeLogs) != 2 {
		t.Fatalf("expected 2 surviving logs, got %d", len(st.TimeLogs))
	}
	if len(st.Blocks) != 0 {
		t.Fatal("blocks referencing the task must be deleted")
	}
}

func TestDeleteTaskUnknownIDIsNoop(t *testing.T) {
	s := newTestStore(t)
	n := 0
	s.Subscribe(func(AppState) { n++ })
	s.DeleteTask("missing")
	if n != 0 {
		t.Fatal("no-op must not commit")
	}
}

// ============================================================
// Timer
// ============================================================

func TestStartAndStopTimer(t *testing.T) {
	s := newTestStore(t)
	id, _ := s.CreateTask("tracked", TaskPatch{})

	setClock(s, 10_000)
	if err := s.StartTimer(id, Classification{Kind: KindUseful}); err != nil {
		t.Fatal(err)
	}
	timer := s.State().ActiveTimer
	if timer == nil || timer.TaskID != id || timer.StartedAt != 10_000 {
		t.Fatalf("timer = %+v", timer)
	}

	setClock(s, 10_000+25*60_000)
	logID, err := s.StopTimer("pomodoro done")
	if err != nil {
		t.Fatal(err)
	}

	st := s.State()
	if st.ActiveTimer != nil {
		t.Fatal("timer should be cleared after stop")
	}
	l := st.LogByID(logID)
	if l == nil {
		t.Fatal("stop must create exactly one log")
	}
	if l.Minutes != 25 {
		t.Fatalf("minutes = %d, want 25", l.Minutes)
	}
	if l.Note != "pomodoro done" || l.TaskID != id {
		t.Fatalf("log = %+v", l)
	}
}

func TestStartTimerReplacesRunningTimer(t *testing.T) {
	s := newTestStore(t)
	setClock(s, 1000)
	s.StartTimer("task-a", Classification{})
	setClock(s, 2000)
	s.StartTimer("task-b", Classification{})

	st := s.State()
	if st.ActiveTimer.TaskID != "task-b" || st.ActiveTimer.StartedAt != 2000 {
		t.Fatalf("timer = %+v, want replacement", st.ActiveTimer)
	}
	// Replacement discards the first timer without logging it.
	if len(st.TimeLogs) != 0 {
		t.Fatal("replacing a timer must not emit a log")
	}
}

func TestStopTimerWithoutTimerIsNoop(t *testing.T) {
	s := newTestStore(t)
	n := 0
	s.Subscribe(func(AppState) { n++ })
	id, err := s.StopTimer("")
	if err != nil || id != "" {
		t.Fatalf("id=%q err=%v, want no-op", id, err)
	}
	if n != 0 {
		t.Fatal("no-op must not commit")
	}
}

func TestStopTimerZeroElapsedStillLogsAMinute(t *testing.T) {
	s := newTestStore(t)
	setClock(s, 5000)
	s.StartTimer("", Classification{})
	logID, _ := s.StopTimer("")

	l := s.State().LogByID(logID)
	if l == nil || l.Minutes != 1 {
		t.Fatalf("log = %+v, want 1 minute floor", l)
	}
	if l.EndedAt <= l.StartedAt {
		t.Fatal("endedAt must stay strictly after startedAt")
	}
}

// ============================================================
// Time logs
// ============================================================

func TestAddTimeLog(t *testing.T) {
	s := newTestStore(t)
	id, err := s.AddTimeLog(ManualLog{
		StartedAt: 0,
		EndedAt:   90_000,
		Note:      "standup",
		Classification: Classification{
			Kind: KindRest,
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	l := s.State().LogByID(id)
	if l.Minutes != 2 {
		t.Fatalf("minutes = %d, want 2", l.Minutes)
	}
	if l.Kind != KindRest {
		t.Fatalf("kind = %q", l.Kind)
	}
}

func TestAddTimeLogInvalidRangeIsNoop(t *testing.T) {
	s := newTestStore(t)
	n := 0
	s.Subscribe(func(AppState) { n++ })

	if id, _ := s.AddTimeLog(ManualLog{StartedAt: 100, EndedAt: 100}); id != "" {
		t.Fatal("equal range should be rejected")
	}
	if id, _ := s.AddTimeLog(ManualLog{StartedAt: 100, EndedAt: 50}); id != "" {
		t.Fatal("inverted range should be rejected")
	}
	if n != 0 {
		t.Fatal("rejected input must not commit")
	}
}

func TestUpdateTimeLogRecomputesMinutes(t *testing.T) {
	s := newTestStore(t)
	id, _ := s.AddTimeLog(ManualLog{StartedAt: 0, EndedAt: 60_000})

	end := int64(10 * 60_000)
	s.UpdateTimeLog(id, TimeLogPatch{EndedAt: &end})

	l := s.State().LogByID(id)
	if l.Minutes != 10 {
		t.Fatalf("minutes = %d, want 10", l.Minutes)
	}
}

func TestUpdateTimeLogRejectsInvertedRange(t *testing.T) {
	s := newTestStore(t)
	id, _ := s.AddTimeLog(ManualLog{StartedAt: 60_000, EndedAt: 120_000, Note: "keep"})
	before := *s.State().LogByID(id)

	bad := int64(30_000)
	if err := s.UpdateTimeLog(id, TimeLogPatch{EndedAt: &bad}); err != nil {
		t.Fatal(err)
	}

	after := *s.State().LogByID(id)
	if !reflect.DeepEqual(before, after) {
		t.Fatalf("rejected update must leave log unchanged: %+v vs %+v", before, after)
	}
}

func TestUpdateTimeLogUnknownIDIsNoop(t *testing.T) {
	s := newTestStore(t)
	n := 0
	s.Subscribe(func(AppState) { n++ })
	s.UpdateTimeLog("missing", TimeLogPatch{Note: strPtr("x")})
	if n != 0 {
		t.Fatal("no-op must not commit")
	}
}

func TestDeleteTimeLog(t *testing.T) {
	s := newTestStore(t)
	id, _ := s.AddTimeLog(ManualLog{StartedAt: 0, EndedAt: 60_000})
	s.DeleteTimeLog(id)
	if s.State().LogByID(id) != nil {
		t.Fatal("log not deleted")
	}
}

// ============================================================
// Lists
// ============================================================

func TestAddListItem(t *testing.T) {
	s := newTestStore(t)
	id, err := s.AddListItem(ListGoals, "  Get fit  ")
	if err != nil {
		t.Fatal(err)
	}
	goals := s.State().Lists.Goals
	if len(goals) != 1 || goals[0].ID != id || goals[0].Name != "Get fit" {
		t.Fatalf("goals = %+v", goals)
	}
}

func TestAddListItemBlankNameIsNoop(t *testing.T) {
	s := newTestStore(t)
	if id, _ := s.AddListItem(ListSinks, "   "); id != "" {
		t.Fatal("blank name should be rejected")
	}
	if len(s.State().Lists.Sinks) != 0 {
		t.Fatal("document should be unchanged")
	}
}

func TestListItemsNewestFirst(t *testing.T) {
	s := newTestStore(t)
	s.AddListItem(ListContexts, "home")
	s.AddListItem(ListContexts, "office")
	ctx := s.State().Lists.Contexts
	if ctx[0].Name != "office" || ctx[1].Name != "home" {
		t.Fatalf("order = %v", ctx)
	}
}

func TestRenameListItem(t *testing.T) {
	s := newTestStore(t)
	id, _ := s.AddListItem(ListRoles, "Engineer")
	s.RenameListItem(ListRoles, id, "Staff Engineer")
	if s.State().Lists.Roles[0].Name != "Staff Engineer" {
		t.Fatal("rename did not apply")
	}
}

func TestRenameListItemNoops(t *testing.T) {
	s := newTestStore(t)
	id, _ := s.AddListItem(ListRoles, "Engineer")
	s.RenameListItem(ListRoles, id, "   ")
	s.RenameListItem(ListRoles, "missing", "X")
	if s.State().Lists.Roles[0].Name != "Engineer" {
		t.Fatal("no-op rename changed the item")
	}
}

func TestRemoveListItem(t *testing.T) {
	s := newTestStore(t)
	id, _ := s.AddListItem(ListTimeTypes, "Deep work")
	s.RemoveListItem(ListTimeTypes, id)
	if len(s.State().Lists.TimeTypes) != 0 {
		t.Fatal("item not removed")
	}
	// Unknown id: no-op.
	s.RemoveListItem(ListTimeTypes, "missing")
}

func TestListCategoriesAreIndependent(t *testing.T) {
	s := newTestStore(t)
	s.AddListItem(ListGoals, "goal")
	s.AddListItem(ListProjects, "project")
	st := s.State()
	if len(st.Lists.Goals) != 1 || len(st.Lists.Projects) != 1 {
		t.Fatal("categories should be independent")
	}
	if len(st.Lists.Contexts) != 0 {
		t.Fatal("untouched category should stay empty")
	}
}

// ============================================================
// Reviews
// ============================================================

func TestUpsertReviewCreatesThenPatches(t *testing.T) {
	s := newTestStore(t)
	setClock(s, 1000)

	id1, err := s.UpsertReview("2024-01-01", ReviewPatch{Wins: strPtr("shipped")})
	if err != nil {
		t.Fatal(err)
	}

	setClock(s, 2000)
	id2, _ := s.UpsertReview("2024-01-01", ReviewPatch{Focus: strPtr("health")})

	if id1 != id2 {
		t.Fatal("upsert must reuse the existing entry")
	}
	if len(s.State().Reviews) != 1 {
		t.Fatal("at most one entry per weekStart")
	}
	r := s.State().ReviewFor("2024-01-01")
	if r.Wins != "shipped" || r.Focus != "health" {
		t.Fatalf("merge-patch failed: %+v", r)
	}
	if r.CreatedAt != 1000 || r.UpdatedAt != 2000 {
		t.Fatalf("timestamps = %d/%d", r.CreatedAt, r.UpdatedAt)
	}
}

func TestUpsertReviewDifferentWeeks(t *testing.T) {
	s := newTestStore(t)
	s.UpsertReview("2024-01-01", ReviewPatch{})
	s.UpsertReview("2024-01-08", ReviewPatch{})
	if len(s.State().Reviews) != 2 {
		t.Fatal("different weeks get separate entries")
	}
}

// ============================================================
// Plans
// ============================================================

func TestAddPlanTaskAtEachLevel(t *testing.T) {
	s := newTestStore(t)
	locs := []PlanLocation{
		{Level: LevelYear},
		{Level: LevelMonth},
		{Level: LevelWeek, WeekStart: "2024-01-01"},
		{Level: LevelDay, WeekStart: "2024-01-01", Day: "2024-01-03"},
	}
	for _, loc := range locs {
		if _, err := s.AddPlanTask(loc, "item at "+loc.Level.String()); err != nil {
			t.Fatalf("add at %v: %v", loc, err)
		}
	}

	st := s.State()
	if len(st.Plans.Year) != 1 || len(st.Plans.Month) != 1 {
		t.Fatal("year/month plan tasks missing")
	}
	wp := st.Plans.Weeks["2024-01-01"]
	if len(wp.Week) != 1 || len(wp.Days["2024-01-03"]) != 1 {
		t.Fatalf("week plan = %+v", wp)
	}
}

func TestAddPlanTaskBlankTitleGetsPlaceholder(t *testing.T) {
	s := newTestStore(t)
	id, _ := s.AddPlanTask(PlanLocation{Level: LevelYear}, "  ")
	if s.State().Plans.Year[0].ID != id || s.State().Plans.Year[0].Title != placeholderTitle {
		t.Fatalf("plan task = %+v", s.State().Plans.Year[0])
	}
}

func TestMovePlanTaskIsAtomic(t *testing.T) {
	s := newTestStore(t)
	from := PlanLocation{Level: LevelYear}
	to := PlanLocation{Level: LevelDay, WeekStart: "2024-01-01", Day: "2024-01-02"}
	id, _ := s.AddPlanTask(from, "migrate database")

	n := 0
	s.Subscribe(func(AppState) { n++ })
	if err := s.MovePlanTask(from, id, to); err != nil {
		t.Fatal(err)
	}

	if n != 1 {
		t.Fatalf("move must be a single commit, saw %d", n)
	}
	st := s.State()
	if len(st.Plans.Year) != 0 {
		t.Fatal("task should be gone from the old location")
	}
	moved := st.Plans.Weeks["2024-01-01"].Days["2024-01-02"]
	if len(moved) != 1 || moved[0].ID != id || moved[0].Title != "migrate database" {
		t.Fatalf("moved = %+v, identity/content must be preserved", moved)
	}
}

func TestMovePlanTaskUnknownIDIsNoop(t *testing.T) {
	s := newTestStore(t)
	n := 0
	s.Subscribe(func(AppState) { n++ })
	s.MovePlanTask(PlanLocation{Level: LevelYear}, "missing", PlanLocation{Level: LevelMonth})
	if n != 0 {
		t.Fatal("no-op must not commit")
	}
}

func TestTogglePlanTask(t *testing.T) {
	s := newTestStore(t)
	loc := PlanLocation{Level: LevelMonth}
	id, _ := s.AddPlanTask(loc, "review budget")
	s.TogglePlanTask(loc, id)
	if !s.State().Plans.Month[0].Done {
		t.Fatal("expected done")
	}
}

func TestRenameAndDeletePlanTask(t *testing.T) {
	s := newTestStore(t)
	loc := PlanLocation{Level: LevelWeek, WeekStart: "2024-01-01"}
	id, _ := s.AddPlanTask(loc, "old")
	s.RenamePlanTask(loc, id, "new")
	if s.State().Plans.Weeks["2024-01-01"].Week[0].Title != "new" {
		t.Fatal("rename did not apply")
	}
	s.DeletePlanTask(loc, id)
	if len(s.State().Plans.Weeks["2024-01-01"].Week) != 0 {
		t.Fatal("delete did not apply")
	}
}

func TestMovePlanTaskDoesNotMutateOldSnapshot(t *testing.T) {
	s := newTestStore(t)
	from := PlanLocation{Level: LevelWeek, WeekStart: "2024-01-01"}
	id, _ := s.AddPlanTask(from, "x")
	snapshot := s.State()

	s.MovePlanTask(from, id, PlanLocation{Level: LevelYear})

	if len(snapshot.Plans.Weeks["2024-01-01"].Week) != 1 {
		t.Fatal("previous snapshot must not be mutated by a later commit")
	}
}

// ============================================================
// Schedule blocks
// ============================================================

func TestAddBlock(t *testing.T) {
	s := newTestStore(t)
	id, err := s.AddBlock("task-1", "2024-01-01", 540, 600)
	if err != nil {
		t.Fatal(err)
	}
	b := s.State().BlockByID(id)
	if b == nil || b.StartMin != 540 || b.EndMin != 600 {
		t.Fatalf("block = %+v", b)
	}
}

func TestAddBlockInvalidRangeIsNoop(t *testing.T) {
	s := newTestStore(t)
	if id, _ := s.AddBlock("t", "2024-01-01", 600, 600); id != "" {
		t.Fatal("empty range should be rejected")
	}
	if id, _ := s.AddBlock("t", "2024-01-01", 600, 500); id != "" {
		t.Fatal("inverted range should be rejected")
	}
}

func TestUpdateBlockRejectsInvertedRange(t *testing.T) {
	s := newTestStore(t)
	id, _ := s.AddBlock("t", "2024-01-01", 540, 600)
	before := *s.State().BlockByID(id)

	bad := 500
	s.UpdateBlock(id, BlockPatch{EndMin: &bad})
	after := *s.State().BlockByID(id)
	if !reflect.DeepEqual(before, after) {
		t.Fatal("rejected update must leave block unchanged")
	}
}

func TestUpdateBlockLock(t *testing.T) {
	s := newTestStore(t)
	id, _ := s.AddBlock("t", "2024-01-01", 540, 600)
	locked := true
	s.UpdateBlock(id, BlockPatch{Locked: &locked})
	if !s.State().BlockByID(id).Locked {
		t.Fatal("lock did not apply")
	}
}

func TestBlocksOnSortsByStart(t *testing.T) {
	s := newTestStore(t)
	s.AddBlock("t", "2024-01-01", 700, 760)
	s.AddBlock("t", "2024-01-01", 480, 540)
	s.AddBlock("t", "2024-01-02", 500, 560)

	blocks := s.State().BlocksOn("2024-01-01")
	if len(blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(blocks))
	}
	if blocks[0].StartMin != 480 || blocks[1].StartMin != 700 {
		t.Fatalf("not sorted: %+v", blocks)
	}
}

func TestDeleteBlock(t *testing.T) {
	s := newTestStore(t)
	id, _ := s.AddBlock("t", "2024-01-01", 480, 540)
	s.DeleteBlock(id)
	if s.State().BlockByID(id) != nil {
		t.Fatal("block not deleted")
	}
}

// ============================================================
// Slot finder
// ============================================================

func testWindow() Settings {
	// 08:00-21:00, a 780-minute window.
	return Settings{WeekStartsOn: 1, DayStartHour: 8, DayEndHour: 21}
}

func block(start, end int) ScheduleBlock {
	return ScheduleBlock{ID: newID(), TaskID: "t", Date: "2024-01-01", StartMin: start, EndMin: end}
}

func TestFindSlotEmptyDayPlacesAtWindowStart(t *testing.T) {
	start, end, ok := FindSlot(nil, 90, testWindow())
	if !ok || start != 480 || end != 570 {
		t.Fatalf("got %d-%d ok=%v, want 480-570", start, end, ok)
	}
}

func TestFindSlotFitsBeforeFirstBlock(t *testing.T) {
	blocks := []ScheduleBlock{block(660, 720)} // 11:00-12:00
	start, end, ok := FindSlot(blocks, 90, testWindow())
	if !ok || start != 480 || end != 570 {
		t.Fatalf("got %d-%d ok=%v, want the gap before 11:00", start, end, ok)
	}
}

func TestFindSlotSkipsTooSmallLeadingGap(t *testing.T) {
	// 09:00-10:00 block: the 60-minute gap before it cannot take 90
	// minutes, so the slot goes right after the block.
	blocks := []ScheduleBlock{block(540, 600)}
	start, end, ok := FindSlot(blocks, 90, testWindow())
	if !ok || start != 600 || end != 690 {
		t.Fatalf("got %d-%d ok=%v, want 600-690", start, end, ok)
	}
}

func TestFindSlotFitsBetweenBlocks(t *testing.T) {
	blocks := []ScheduleBlock{block(480, 540), block(720, 780)}
	start, end, ok := FindSlot(blocks, 90, testWindow())
	if !ok || start != 540 || end != 630 {
		t.Fatalf("got %d-%d ok=%v, want 540-630", start, end, ok)
	}
}

func TestFindSlotFitsAfterLastBlock(t *testing.T) {
	blocks := []ScheduleBlock{block(480, 600), block(600, 720)}
	start, end, ok := FindSlot(blocks, 120, testWindow())
	if !ok || start != 720 || end != 840 {
		t.Fatalf("got %d-%d ok=%v, want 720-840", start, end, ok)
	}
}

func TestFindSlotNoRoom(t *testing.T) {
	blocks := []ScheduleBlock{block(480, 1230)} // fills 08:00-20:30
	if _, _, ok := FindSlot(blocks, 60, testWindow()); ok {
		t.Fatal("expected no-slot-available")
	}
}

func TestFindSlotUnsortedInput(t *testing.T) {
	blocks := []ScheduleBlock{block(720, 780), block(480, 540)}
	start, _, ok := FindSlot(blocks, 60, testWindow())
	if !ok || start != 540 {
		t.Fatalf("start = %d ok=%v, want 540", start, ok)
	}
}

func TestPlaceTask(t *testing.T) {
	s := newTestStore(t)
	s.UpdateSettings(SettingsPatch{DayStartHour: intPtr(8), DayEndHour: intPtr(21)})
	s.AddBlock("other", "2024-01-01", 480, 540)

	b, ok, err := s.PlaceTask("task-1", "2024-01-01", 60)
	if err != nil || !ok {
		t.Fatalf("ok=%v err=%v", ok, err)
	}
	if b.StartMin != 540 || b.EndMin != 600 {
		t.Fatalf("placed at %d-%d", b.StartMin, b.EndMin)
	}
	if s.State().BlockByID(b.ID) == nil {
		t.Fatal("placement must be committed")
	}
}

func TestPlaceTaskNoFreeWindow(t *testing.T) {
	s := newTestStore(t)
	s.UpdateSettings(SettingsPatch{DayStartHour: intPtr(8), DayEndHour: intPtr(10)})
	s.AddBlock("other", "2024-01-01", 480, 600)

	n := len(s.State().Blocks)
	_, ok, err := s.PlaceTask("task-1", "2024-01-01", 30)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("expected no free window")
	}
	if len(s.State().Blocks) != n {
		t.Fatal("failed placement must not commit")
	}
}

// ============================================================
// Settings
// ============================================================

func TestUpdateSettings(t *testing.T) {
	s := newTestStore(t)
	s.UpdateSettings(SettingsPatch{
		WeekStartsOn: intPtr(0),
		DayStartHour: intPtr(6),
		DayEndHour:   intPtr(22),
	})
	set := s.State().Settings
	if set.WeekStartsOn != 0 || set.DayStartHour != 6 || set.DayEndHour != 22 {
		t.Fatalf("settings = %+v", set)
	}
}

func TestUpdateSettingsIgnoresOutOfRange(t *testing.T) {
	s := newTestStore(t)
	s.UpdateSettings(SettingsPatch{
		WeekStartsOn: intPtr(3),
		DayStartHour: intPtr(-1),
		DayEndHour:   intPtr(24),
	})
	set := s.State().Settings
	if set.WeekStartsOn != 1 || set.DayStartHour != 8 || set.DayEndHour != 21 {
		t.Fatalf("out-of-range values must be ignored: %+v", set)
	}
}

// ============================================================
// Helpers
// ============================================================

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }
func int64Ptr(i int64) *int64 { return &i }
