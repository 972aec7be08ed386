package mysql

import (
	"context"
	"testing"

	domain "loanhub-backend/internal/domain/document"
)

func TestDocumentUpsert_ReplacesSameType(t *testing.T) {
	db := openTestDB(t)
	repo := NewDocumentRepository(db)
	ctx := context.Background()

	first := &domain.Document{
		ApplicationID: 42,
		DocumentType:  domain.TypeGovernmentID,
		FileName:      "id-v1.png",
		StoragePath:   "/uploads/applications/APP-X/government_id",
		FileSize:      1024,
		MimeType:      "image/png",
		PublicID:      "applications/APP-X/government_id",
	}
	if err := repo.Upsert(ctx, first); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	second := &domain.Document{
		ApplicationID: 42,
		DocumentType:  domain.TypeGovernmentID,
		FileName:      "id-v2.pdf",
		StoragePath:   "/uploads/applications/APP-X/government_id",
		FileSize:      2048,
		MimeType:      "application/pdf",
		PublicID:      "applications/APP-X/government_id",
	}
	if err := repo.Upsert(ctx, second); err != nil {
		t.Fatalf("Upsert(replace): %v", err)
	}

	docs, err := repo.ListByApplication(ctx, 42)
	if err != nil {
		t.Fatalf("ListByApplication: %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("rows = %d, want 1 (one current version per type)", len(docs))
	}
	if docs[0].FileName != "id-v2.pdf" || docs[0].FileSize != 2048 {
		t.Errorf("metadata not replaced: %+v", docs[0])
	}
}

func TestDocumentUpsert_DistinctTypesCoexist(t *testing.T) {
	db := openTestDB(t)
	repo := NewDocumentRepository(db)
	ctx := context.Background()

	for _, dt := range []domain.Type{domain.TypeGovernmentID, domain.TypeUtilityBill, domain.TypeSelfie} {
		d := &domain.Document{
			ApplicationID: 42,
			DocumentType:  dt,
			FileName:      string(dt) + ".png",
			MimeType:      "image/png",
		}
		if err := repo.Upsert(ctx, d); err != nil {
			t.Fatalf("Upsert(%s): %v", dt, err)
		}
	}

	docs, err := repo.ListByApplication(ctx, 42)
	if err != nil {
		t.Fatalf("ListByApplication: %v", err)
	}
	if len(docs) != 3 {
		t.Errorf("rows = %d, want 3", len(docs))
	}
}
