package service

import (
	"context"
	"errors"
	"testing"

	"github.com/mikl0s/JAI/internal/model"
)

type fakeModerator struct {
	approveErr error
	updateErr  error
	deleteErr  error
	statuses   map[int64]string
	deleted    []int64
	pending    []model.PendingGroup
}

func (f *fakeModerator) Approve(ctx context.Context, id int64) (int64, error) {
	if f.approveErr != nil {
		return 0, f.approveErr
	}
	return 100 + id, nil
}

func (f *fakeModerator) UpdateStatus(ctx context.Context, id int64, status string) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	if f.statuses == nil {
		f.statuses = make(map[int64]string)
	}
	f.statuses[id] = status
	return nil
}

func (f *fakeModerator) Delete(ctx context.Context, id int64) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeModerator) ListPendingGrouped(ctx context.Context) ([]model.PendingGroup, error) {
	return f.pending, nil
}

type fakeGeoFinder struct {
	entries map[string]*model.GeoEntry
}

func (f *fakeGeoFinder) FindByIP(ctx context.Context, ip string) (*model.GeoEntry, error) {
	return f.entries[ip], nil
}

type fakeAudit struct {
	actions []string
	err     error
}

func (f *fakeAudit) Insert(ctx context.Context, username, action, details, ip string) error {
	if f.err != nil {
		return f.err
	}
	f.actions = append(f.actions, action)
	return nil
}

func TestModeration_ApproveLogsAction(t *testing.T) {
	audit := &fakeAudit{}
	svc := NewModerationService(&fakeModerator{}, &fakeGeoFinder{}, audit, nil)

	judgeID, err := svc.Approve(context.Background(), 7, "admin", "10.0.0.1")
	if err != nil {
		t.Fatalf("Approve() error = %v", err)
	}
	if judgeID != 107 {
		t.Errorf("judgeID = %d, want 107", judgeID)
	}
	if len(audit.actions) != 1 || audit.actions[0] != "approve_submission" {
		t.Errorf("audit actions = %v, want [approve_submission]", audit.actions)
	}
}

func TestModeration_AuditFailureDoesNotAbort(t *testing.T) {
	audit := &fakeAudit{err: errors.New("audit table unavailable")}
	mod := &fakeModerator{}
	svc := NewModerationService(mod, &fakeGeoFinder{}, audit, nil)

	if err := svc.Reject(context.Background(), 3, "admin", "10.0.0.1"); err != nil {
		t.Fatalf("Reject() error = %v, audit failures must be swallowed", err)
	}
	if mod.statuses[3] != model.SubmissionRejected {
		t.Errorf("status = %q, want rejected", mod.statuses[3])
	}
}

func TestModeration_RejectAndDelete(t *testing.T) {
	audit := &fakeAudit{}
	mod := &fakeModerator{}
	svc := NewModerationService(mod, &fakeGeoFinder{}, audit, nil)

	if err := svc.Reject(context.Background(), 1, "admin", "10.0.0.1"); err != nil {
		t.Fatalf("Reject() error = %v", err)
	}
	if err := svc.Delete(context.Background(), 2, "admin", "10.0.0.1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if mod.statuses[1] != model.SubmissionRejected {
		t.Error("reject should set status rejected")
	}
	if len(mod.deleted) != 1 || mod.deleted[0] != 2 {
		t.Errorf("deleted = %v, want [2]", mod.deleted)
	}
	if len(audit.actions) != 2 {
		t.Errorf("audit actions = %v, want two entries", audit.actions)
	}
}

func TestModeration_ModerationErrorSkipsAudit(t *testing.T) {
	audit := &fakeAudit{}
	mod := &fakeModerator{deleteErr: errors.New("row locked")}
	svc := NewModerationService(mod, &fakeGeoFinder{}, audit, nil)

	if err := svc.Delete(context.Background(), 2, "admin", "10.0.0.1"); err == nil {
		t.Fatal("expected delete error")
	}
	if len(audit.actions) != 0 {
		t.Error("failed moderation action must not be audit-logged")
	}
}

func TestModeration_PendingQueueLocations(t *testing.T) {
	mod := &fakeModerator{pending: []model.PendingGroup{
		{Name: "Judge A", IPAddresses: []string{"1.1.1.1", "2.2.2.2"}},
	}}
	geo := &fakeGeoFinder{entries: map[string]*model.GeoEntry{
		"1.1.1.1": {CountryName: "United States", Region: "Texas"},
	}}
	svc := NewModerationService(mod, geo, &fakeAudit{}, nil)

	groups, err := svc.PendingQueue(context.Background())
	if err != nil {
		t.Fatalf("PendingQueue() error = %v", err)
	}
	if len(groups) != 1 {
		t.Fatalf("groups = %d, want 1", len(groups))
	}
	locs := groups[0].Locations
	if len(locs) != 2 {
		t.Fatalf("locations = %v, want 2 entries", locs)
	}
	if locs[0] != "Texas, United States" {
		t.Errorf("locations[0] = %q, want \"Texas, United States\"", locs[0])
	}
	if locs[1] != "Unknown" {
		t.Errorf("locations[1] = %q, want Unknown fallback", locs[1])
	}
}
