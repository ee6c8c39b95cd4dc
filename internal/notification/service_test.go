package notification

import (
	"context"
	"testing"

	"solartally/internal/storage"
)

func TestSaveConfigAssignsID(t *testing.T) {
	svc := NewService(storage.NewMemory())
	ctx := context.Background()

	if err := svc.SaveConfig(ctx, storage.EmailConfig{Provider: "smtp", Enabled: true}); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}

	cfg, err := svc.GetConfig(ctx)
	if err != nil || cfg == nil {
		t.Fatalf("GetConfig: %+v err=%v", cfg, err)
	}
	if cfg.ID == "" {
		t.Error("ID not assigned")
	}
}

func TestSendEmailWithoutConfig(t *testing.T) {
	svc := NewService(storage.NewMemory())
	if err := svc.SendEmail(context.Background(), "a@b.c", "subject", "body"); err == nil {
		t.Fatal("expected error without stored config")
	}
}

func TestSendEmailUnknownProvider(t *testing.T) {
	store := storage.NewMemory()
	svc := NewService(store)
	ctx := context.Background()

	if err := store.SaveEmailConfig(ctx, storage.EmailConfig{
		ID: "1", Provider: "carrier-pigeon", Enabled: true, ToAddress: "a@b.c",
	}); err != nil {
		t.Fatalf("seed config: %v", err)
	}

	if err := svc.SendEmail(ctx, "", "subject", "body"); err == nil {
		t.Fatal("expected unknown provider error")
	}
}
