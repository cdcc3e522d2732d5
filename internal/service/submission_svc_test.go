package service

import (
	"context"
	"errors"
	"testing"

	"github.com/mikl0s/JAI/internal/model"
	"github.com/mikl0s/JAI/pkg/pow"
)

type fakeSubmissionStore struct {
	insertCalls int
	insertErr   error
	lastIP      string
}

func (f *fakeSubmissionStore) Insert(ctx context.Context, req model.SubmissionRequest, ip string) (int64, error) {
	f.insertCalls++
	f.lastIP = ip
	if f.insertErr != nil {
		return 0, f.insertErr
	}
	return 1, nil
}

type fakeGeoWarmer struct {
	warmed []string
}

func (f *fakeGeoWarmer) Warm(ip string) {
	f.warmed = append(f.warmed, ip)
}

func newSubmissionService(store *fakeSubmissionStore, wl *fakeWhitelist, history *fakeSubmissionHistory, geo *fakeGeoWarmer) *SubmissionService {
	gate := NewGateService(wl, history)
	if geo == nil {
		// Avoid wrapping a typed nil in the GeoWarmer interface.
		return NewSubmissionService(store, gate, nil)
	}
	return NewSubmissionService(store, gate, geo)
}

func TestSubmit_RateLimited(t *testing.T) {
	store := &fakeSubmissionStore{}
	svc := newSubmissionService(store, &fakeWhitelist{}, &fakeSubmissionHistory{recent: true}, nil)

	err := svc.Submit(context.Background(), "1.2.3.4", model.SubmissionRequest{Name: "A Judge"})
	if !errors.Is(err, ErrSubmissionRateLimited) {
		t.Errorf("err = %v, want ErrSubmissionRateLimited", err)
	}
	if store.insertCalls != 0 {
		t.Error("insert must not run for a rate-limited IP")
	}
}

func TestSubmit_LocalhostBypassesRateLimit(t *testing.T) {
	store := &fakeSubmissionStore{}
	history := &fakeSubmissionHistory{recent: true}
	geo := &fakeGeoWarmer{}
	svc := newSubmissionService(store, &fakeWhitelist{}, history, geo)

	err := svc.Submit(context.Background(), "127.0.0.1", model.SubmissionRequest{
		Name:        "A Judge",
		ProofOfWork: solvedProof(t),
	})
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if history.calls != 0 {
		t.Error("localhost should bypass the submission history lookup")
	}
}

func TestSubmit_WhitelistBypassesRateLimit(t *testing.T) {
	store := &fakeSubmissionStore{}
	svc := newSubmissionService(store, &fakeWhitelist{whitelisted: true}, &fakeSubmissionHistory{recent: true}, nil)

	err := svc.Submit(context.Background(), "9.9.9.9", model.SubmissionRequest{
		Name:        "A Judge",
		ProofOfWork: solvedProof(t),
	})
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if store.insertCalls != 1 {
		t.Errorf("insert calls = %d, want 1", store.insertCalls)
	}
}

func TestSubmit_HoneypotRejectedGenerically(t *testing.T) {
	store := &fakeSubmissionStore{}
	svc := newSubmissionService(store, &fakeWhitelist{}, &fakeSubmissionHistory{}, nil)

	err := svc.Submit(context.Background(), "1.2.3.4", model.SubmissionRequest{
		Name:        "A Judge",
		Honeypot:    "gotcha",
		ProofOfWork: solvedProof(t),
	})
	if !errors.Is(err, ErrSubmissionRejected) {
		t.Errorf("err = %v, want ErrSubmissionRejected", err)
	}
	if store.insertCalls != 0 {
		t.Error("honeypot submissions must never persist")
	}
}

func TestSubmit_ProofRequired(t *testing.T) {
	store := &fakeSubmissionStore{}
	svc := newSubmissionService(store, &fakeWhitelist{}, &fakeSubmissionHistory{}, nil)

	err := svc.Submit(context.Background(), "1.2.3.4", model.SubmissionRequest{Name: "A Judge"})
	if !errors.Is(err, ErrMissingProof) {
		t.Errorf("err = %v, want ErrMissingProof", err)
	}

	err = svc.Submit(context.Background(), "1.2.3.4", model.SubmissionRequest{
		Name:        "A Judge",
		ProofOfWork: pow.Proof{Nonce: "n", Hash: "bad"},
	})
	if !errors.Is(err, ErrInvalidProof) {
		t.Errorf("err = %v, want ErrInvalidProof", err)
	}
}

func TestSubmit_GeoWarmFiredAfterInsert(t *testing.T) {
	store := &fakeSubmissionStore{}
	geo := &fakeGeoWarmer{}
	svc := newSubmissionService(store, &fakeWhitelist{}, &fakeSubmissionHistory{}, geo)

	err := svc.Submit(context.Background(), "5.6.7.8", model.SubmissionRequest{
		Name:        "A Judge",
		ProofOfWork: solvedProof(t),
	})
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if len(geo.warmed) != 1 || geo.warmed[0] != "5.6.7.8" {
		t.Errorf("geo warm = %v, want one warm for 5.6.7.8", geo.warmed)
	}
}

func TestSubmit_GeoWarmSkippedOnInsertFailure(t *testing.T) {
	store := &fakeSubmissionStore{insertErr: errors.New("constraint violation")}
	geo := &fakeGeoWarmer{}
	svc := newSubmissionService(store, &fakeWhitelist{}, &fakeSubmissionHistory{}, geo)

	err := svc.Submit(context.Background(), "5.6.7.8", model.SubmissionRequest{
		Name:        "A Judge",
		ProofOfWork: solvedProof(t),
	})
	if err == nil {
		t.Fatal("expected persistence error")
	}
	if len(geo.warmed) != 0 {
		t.Error("geo warm should not fire when persistence fails")
	}
}
