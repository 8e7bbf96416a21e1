package services

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/justfortestingnothibghere/DataForge-Cloud/models"
)

func newUploadFixture() (*fakeUserRepo, *fakeUploadRepo, *fakeAnalyticsRepo, *memStore, UploadService) {
	users := newFakeUserRepo()
	uploads := newFakeUploadRepo()
	analytics := &fakeAnalyticsRepo{}
	store := newMemStore()
	svc := NewUploadService(fakeTxManager{}, users, uploads, analytics, store)
	return users, uploads, analytics, store, svc
}

func TestUploadServiceCreateTextUpload(t *testing.T) {
	users, uploads, analytics, store, svc := newUploadFixture()
	user := seedUser(t, users, models.User{Username: "alice", Email: "alice@example.com", StorageLimit: 100})

	out, err := svc.Create(context.Background(), user.ID, CreateUploadInput{
		Kind:    models.KindText,
		Content: "hi",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.ItemID == 0 {
		t.Fatalf("expected an item id")
	}
	if out.AccessURL != "/api/v2/alice?uploads=1" {
		t.Fatalf("unexpected access url: %q", out.AccessURL)
	}
	if out.ShareLink != "" {
		t.Fatalf("text upload should not get a share link")
	}

	stored := uploads.uploadsByID[out.ItemID]
	if stored.Content != "hi" || stored.FilePath != "" {
		t.Fatalf("expected inline content only, got %+v", stored)
	}
	if len(store.blobs) != 0 {
		t.Fatalf("text upload should not write a blob")
	}
	if len(analytics.events) != 1 || analytics.events[0].EventType != models.EventUpload {
		t.Fatalf("expected one upload analytics event, got %+v", analytics.events)
	}
}

func TestUploadServiceCreateRejectsInvalidKind(t *testing.T) {
	users, _, _, _, svc := newUploadFixture()
	user := seedUser(t, users, models.User{Username: "alice", Email: "alice@example.com"})

	_, err := svc.Create(context.Background(), user.ID, CreateUploadInput{Kind: "archive", Data: []byte("x")})
	appErr, ok := err.(*AppError)
	if !ok || appErr.HTTPCode != 400 {
		t.Fatalf("expected HTTP 400 AppError, got %v", err)
	}
}

func TestUploadServiceTextRequiresContent(t *testing.T) {
	users, _, _, _, svc := newUploadFixture()
	user := seedUser(t, users, models.User{Username: "alice", Email: "alice@example.com"})

	_, err := svc.Create(context.Background(), user.ID, CreateUploadInput{Kind: models.KindText})
	appErr, ok := err.(*AppError)
	if !ok || appErr.HTTPCode != 400 {
		t.Fatalf("expected HTTP 400 AppError, got %v", err)
	}
}

func TestUploadServiceBinaryRequiresFile(t *testing.T) {
	users, _, _, _, svc := newUploadFixture()
	user := seedUser(t, users, models.User{Username: "alice", Email: "alice@example.com"})

	_, err := svc.Create(context.Background(), user.ID, CreateUploadInput{Kind: models.KindImage})
	appErr, ok := err.(*AppError)
	if !ok || appErr.HTTPCode != 400 {
		t.Fatalf("expected HTTP 400 AppError, got %v", err)
	}
}

func TestUploadServiceQuotaExceededThenPremiumPasses(t *testing.T) {
	users, _, _, _, svc := newUploadFixture()
	user := seedUser(t, users, models.User{Username: "alice", Email: "alice@example.com", StorageLimit: 10})

	payload := CreateUploadInput{
		Kind:     models.KindImage,
		FileName: "big.png",
		Data:     bytes.Repeat([]byte("a"), 11),
	}

	_, err := svc.Create(context.Background(), user.ID, payload)
	appErr, ok := err.(*AppError)
	if !ok {
		t.Fatalf("expected AppError, got %T", err)
	}
	if appErr.HTTPCode != 403 {
		t.Fatalf("expected HTTP 403, got %d", appErr.HTTPCode)
	}
	if appErr.Data == nil {
		t.Fatalf("expected quota detail payload")
	}

	// The identical upload succeeds once the owner is premium.
	premium := user
	premium.IsPremium = true
	users.usersByID[user.ID] = premium

	if _, err := svc.Create(context.Background(), user.ID, payload); err != nil {
		t.Fatalf("premium upload should pass the quota check: %v", err)
	}
}

func TestUploadServiceQuotaCountsExistingUsage(t *testing.T) {
	users, _, _, store, svc := newUploadFixture()
	user := seedUser(t, users, models.User{Username: "alice", Email: "alice@example.com", StorageLimit: 10})

	// 6 bytes already on disk under alice's namespace.
	if err := store.Save("aaaa_1.bin", []byte("123456")); err != nil {
		t.Fatalf("seed blob failed: %v", err)
	}

	_, err := svc.Create(context.Background(), user.ID, CreateUploadInput{
		Kind: models.KindDocument, FileName: "doc.pdf", Data: []byte("12345"),
	})
	appErr, ok := err.(*AppError)
	if !ok || appErr.HTTPCode != 403 {
		t.Fatalf("expected quota rejection, got %v", err)
	}
}

func TestUploadServiceShareTokenIssued(t *testing.T) {
	users, uploads, _, _, svc := newUploadFixture()
	user := seedUser(t, users, models.User{Username: "alice", Email: "alice@example.com", StorageLimit: 100})

	before := time.Now()
	out, err := svc.Create(context.Background(), user.ID, CreateUploadInput{
		Kind:     models.KindImage,
		FileName: "pic.png",
		Data:     []byte("img"),
		Share:    true,
		TTLHours: 2,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stored := uploads.uploadsByID[out.ItemID]
	if stored.ShareToken == "" {
		t.Fatalf("expected a share token")
	}
	if !strings.Contains(out.ShareLink, stored.ShareToken) {
		t.Fatalf("share link %q does not carry the token", out.ShareLink)
	}
	if stored.ShareExpiresAt == nil {
		t.Fatalf("expected a share expiry")
	}
	expiry := *stored.ShareExpiresAt
	if expiry.Before(before.Add(2*time.Hour-time.Minute)) || expiry.After(time.Now().Add(2*time.Hour+time.Minute)) {
		t.Fatalf("expiry %v not near now+2h", expiry)
	}
}

func TestUploadServiceShareDefaultsTTL(t *testing.T) {
	users, uploads, _, _, svc := newUploadFixture()
	user := seedUser(t, users, models.User{Username: "alice", Email: "alice@example.com", StorageLimit: 100})

	out, err := svc.Create(context.Background(), user.ID, CreateUploadInput{
		Kind: models.KindVideo, FileName: "clip.mp4", Data: []byte("vid"), Share: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stored := uploads.uploadsByID[out.ItemID]
	if stored.ShareExpiresAt == nil {
		t.Fatalf("expected a share expiry")
	}
	if time.Until(*stored.ShareExpiresAt) < 23*time.Hour {
		t.Fatalf("expected default 24h ttl, got expiry %v", stored.ShareExpiresAt)
	}
}

func TestUploadServiceAnalyticsFailureDoesNotFailUpload(t *testing.T) {
	users := newFakeUserRepo()
	uploads := newFakeUploadRepo()
	analytics := &fakeAnalyticsRepo{createErr: errors.New("analytics db down")}
	svc := NewUploadService(fakeTxManager{}, users, uploads, analytics, newMemStore())
	user := seedUser(t, users, models.User{Username: "alice", Email: "alice@example.com", StorageLimit: 100})

	if _, err := svc.Create(context.Background(), user.ID, CreateUploadInput{
		Kind: models.KindText, Content: "still works",
	}); err != nil {
		t.Fatalf("analytics failure must not surface: %v", err)
	}
}

func TestUploadServiceCreateCleansUpBlobOnDBFailure(t *testing.T) {
	users := newFakeUserRepo()
	uploads := newFakeUploadRepo()
	uploads.createErr = errors.New("insert failed")
	store := newMemStore()
	svc := NewUploadService(fakeTxManager{}, users, uploads, &fakeAnalyticsRepo{}, store)
	user := seedUser(t, users, models.User{Username: "alice", Email: "alice@example.com", StorageLimit: 100})

	_, err := svc.Create(context.Background(), user.ID, CreateUploadInput{
		Kind: models.KindImage, FileName: "pic.png", Data: []byte("img"),
	})
	if err == nil {
		t.Fatalf("expected error")
	}
	if len(store.blobs) != 0 {
		t.Fatalf("blob should be removed after record insert fails")
	}
}

func TestUploadServiceDeleteRemovesRecordAndBlob(t *testing.T) {
	users, uploads, _, store, svc := newUploadFixture()
	user := seedUser(t, users, models.User{Username: "alice", Email: "alice@example.com", StorageLimit: 100})

	out, err := svc.Create(context.Background(), user.ID, CreateUploadInput{
		Kind: models.KindDocument, FileName: "doc.pdf", Data: []byte("pdf-bytes"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(store.blobs) != 1 {
		t.Fatalf("expected one blob on disk")
	}

	if err := svc.Delete(context.Background(), user.ID, out.ItemID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := uploads.uploadsByID[out.ItemID]; ok {
		t.Fatalf("record should be gone")
	}
	if len(store.blobs) != 0 {
		t.Fatalf("blob should be gone")
	}
}

func TestUploadServiceDeleteIsOwnerOnly(t *testing.T) {
	users, _, _, _, svc := newUploadFixture()
	alice := seedUser(t, users, models.User{Username: "alice", Email: "alice@example.com", StorageLimit: 100})
	mallory := seedUser(t, users, models.User{Username: "mallory", Email: "m@example.com", StorageLimit: 100})

	out, err := svc.Create(context.Background(), alice.ID, CreateUploadInput{
		Kind: models.KindText, Content: "mine",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err = svc.Delete(context.Background(), mallory.ID, out.ItemID)
	appErr, ok := err.(*AppError)
	if !ok || appErr.HTTPCode != 404 {
		t.Fatalf("expected 404 for someone else's upload, got %v", err)
	}
}

func TestUploadServiceLifecycleViaAPIKeyIdentity(t *testing.T) {
	users, _, _, _, svc := newUploadFixture()
	user := seedUser(t, users, models.User{Username: "alice", Email: "alice@example.com", APIKey: "key-123", StorageLimit: 100})

	out, err := svc.Create(context.Background(), user.ID, CreateUploadInput{
		Kind: models.KindText, Content: "hi",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	detail, err := svc.GetForOwner(context.Background(), user, out.ItemID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if detail.Content != "hi" || detail.Owner != "alice" || detail.Kind != "text" {
		t.Fatalf("unexpected detail: %+v", detail)
	}

	if err := svc.Delete(context.Background(), user.ID, out.ItemID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = svc.GetForOwner(context.Background(), user, out.ItemID)
	appErr, ok := err.(*AppError)
	if !ok || appErr.HTTPCode != 404 {
		t.Fatalf("expected 404 after delete, got %v", err)
	}
}

func TestUploadServiceAnalyticsSummary(t *testing.T) {
	users, _, _, store, svc := newUploadFixture()
	user := seedUser(t, users, models.User{Username: "alice", Email: "alice@example.com", StorageLimit: 1000})

	if _, err := svc.Create(context.Background(), user.ID, CreateUploadInput{Kind: models.KindText, Content: "a"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.Create(context.Background(), user.ID, CreateUploadInput{
		Kind: models.KindImage, FileName: "p.png", Data: []byte("12345"),
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	summary, err := svc.AnalyticsSummary(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.UploadsCount != 2 {
		t.Fatalf("expected 2 uploads, got %d", summary.UploadsCount)
	}
	used, _ := store.UsedByOwner(user.ID)
	if summary.StorageUsed != used || used != 5 {
		t.Fatalf("expected storage used 5, got summary=%d scan=%d", summary.StorageUsed, used)
	}
	if len(summary.Labels) != 2 {
		t.Fatalf("expected 2 event labels, got %v", summary.Labels)
	}
}

func TestUploadServiceExport(t *testing.T) {
	users, _, _, _, svc := newUploadFixture()
	user := seedUser(t, users, models.User{Username: "alice", Email: "alice@example.com", StorageLimit: 1000})

	text, err := svc.Create(context.Background(), user.ID, CreateUploadInput{Kind: models.KindText, Content: "note body"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	blob, err := svc.Create(context.Background(), user.ID, CreateUploadInput{
		Kind: models.KindDocument, FileName: "report.pdf", Data: []byte("pdf-bytes"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	archive, err := svc.Export(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	zr, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	if err != nil {
		t.Fatalf("export is not a valid zip: %v", err)
	}

	entries := map[string][]byte{}
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open zip entry failed: %v", err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("read zip entry failed: %v", err)
		}
		entries[f.Name] = data
	}

	textName := fmt.Sprintf("%d.txt", text.ItemID)
	if string(entries[textName]) != "note body" {
		t.Fatalf("missing or wrong text entry %q: %v", textName, entries)
	}
	blobName := fmt.Sprintf("%d.pdf", blob.ItemID)
	if string(entries[blobName]) != "pdf-bytes" {
		t.Fatalf("missing or wrong blob entry %q", blobName)
	}
}
