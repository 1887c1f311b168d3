package scheduler

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/hibiken/asynq"
)

func TestScheduleSavedSearchRefreshCoalesces(t *testing.T) {
	mr := miniredis.RunT(t)

	opt := asynq.RedisClientOpt{Addr: mr.Addr()}
	client := &Client{client: asynq.NewClient(opt), queue: "default"}
	defer client.Close()

	ctx := context.Background()
	if err := client.ScheduleSavedSearchRefresh(ctx, "members.member.created"); err != nil {
		t.Fatalf("first enqueue failed: %v", err)
	}
	if err := client.ScheduleSavedSearchRefresh(ctx, "members.member.updated"); err != nil {
		t.Fatalf("coalesced enqueue should not error: %v", err)
	}

	inspector := asynq.NewInspector(opt)
	defer inspector.Close()

	tasks, err := inspector.ListScheduledTasks("default")
	if err != nil {
		t.Fatalf("list scheduled tasks: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("expected one queued refresh, got %d", len(tasks))
	}
	if tasks[0].Type != TaskSavedSearchRefresh {
		t.Fatalf("unexpected task type %q", tasks[0].Type)
	}
}

func TestSavedSearchRefreshPayloadRoundTrip(t *testing.T) {
	task, err := NewSavedSearchRefreshTask(SavedSearchRefreshPayload{Reason: "members.member.deleted"})
	if err != nil {
		t.Fatalf("build task: %v", err)
	}

	payload, err := ParseSavedSearchRefreshPayload(task)
	if err != nil {
		t.Fatalf("parse payload: %v", err)
	}
	if payload.Reason != "members.member.deleted" {
		t.Fatalf("unexpected reason %q", payload.Reason)
	}
}
