package appinfo

import (
	"context"
	"testing"
)

func TestDefault(t *testing.T) {
	info, err := Default("").AppInfos(context.Background())
	if err != nil {
		t.Fatalf("AppInfos failed: %v", err)
	}
	if info.Version != Version {
		t.Errorf("Version: got %q, want %q", info.Version, Version)
	}
	if info.Name != Name {
		t.Errorf("Name: got %q, want %q", info.Name, Name)
	}

	info, err = Default("1.2.3").AppInfos(context.Background())
	if err != nil {
		t.Fatalf("AppInfos failed: %v", err)
	}
	if info.Version != "1.2.3" {
		t.Errorf("override Version: got %q, want 1.2.3", info.Version)
	}
}

func TestAppInfosCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Default("").AppInfos(ctx); err == nil {
		t.Error("expected error for cancelled context")
	}
}
