package registry

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"equity-radar/internal/domain"

	"go.opentelemetry.io/otel/trace"
)

func newTestFileStore(t *testing.T) *FileStore {
	t.Helper()
	return NewFileStore(t.TempDir(), trace.NewNoopTracerProvider().Tracer("test"))
}

func TestFileStoreEmptyDir(t *testing.T) {
	store := newTestFileStore(t)
	artifact, err := store.Latest(context.Background())
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if artifact != nil {
		t.Fatalf("expected no artifact, got version %d", artifact.Version)
	}
}

func TestFileStoreSaveAndLoad(t *testing.T) {
	store := newTestFileStore(t)
	ctx := context.Background()

	trainedAt := time.Date(2025, 3, 1, 6, 30, 0, 0, time.UTC)
	saved, err := store.Save(ctx, domain.ModelArtifact{
		ModelBlob:  []byte(`{"model":"m"}`),
		ScalerBlob: []byte(`{"scaler":"s"}`),
		Metadata: domain.ModelMetadata{
			ModelType:    "BoostedStumps",
			TrainedAt:    trainedAt,
			Accuracy:     0.62,
			FeatureNames: []string{"returns"},
		},
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if saved.Version != 1 {
		t.Fatalf("expected version 1, got %d", saved.Version)
	}

	loaded, err := store.Latest(ctx)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if loaded == nil {
		t.Fatal("expected artifact")
	}
	if string(loaded.ModelBlob) != `{"model":"m"}` || string(loaded.ScalerBlob) != `{"scaler":"s"}` {
		t.Fatal("blobs do not round trip")
	}
	if loaded.Metadata.ModelType != "BoostedStumps" || loaded.Metadata.Accuracy != 0.62 {
		t.Fatalf("metadata lost: %+v", loaded.Metadata)
	}
	if !loaded.Metadata.TrainedAt.Equal(trainedAt) {
		t.Fatalf("trained_at rewritten: want %v, got %v", trainedAt, loaded.Metadata.TrainedAt)
	}
}

func TestFileStoreStampsTrainedAtWhenUnset(t *testing.T) {
	store := newTestFileStore(t)
	saved, err := store.Save(context.Background(), domain.ModelArtifact{
		ModelBlob:  []byte("m"),
		ScalerBlob: []byte("s"),
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if saved.Metadata.TrainedAt.IsZero() {
		t.Fatal("expected trained_at fallback stamp")
	}
}

func TestFileStoreVersionIncrements(t *testing.T) {
	store := newTestFileStore(t)
	ctx := context.Background()

	for want := 1; want <= 3; want++ {
		saved, err := store.Save(ctx, domain.ModelArtifact{
			ModelBlob:  []byte("m"),
			ScalerBlob: []byte("s"),
		})
		if err != nil {
			t.Fatalf("save %d: %v", want, err)
		}
		if saved.Version != want {
			t.Fatalf("expected version %d, got %d", want, saved.Version)
		}
	}
}

func TestFileStoreRejectsPartialArtifact(t *testing.T) {
	store := newTestFileStore(t)
	if _, err := store.Save(context.Background(), domain.ModelArtifact{ModelBlob: []byte("m")}); err == nil {
		t.Fatal("expected error for missing scaler blob")
	}
}

// An interrupted second save must never pair a new model with the previous
// scaler: whatever is on disk is either the old trio or the new one.
func TestFileStoreInterruptedSaveKeepsArtifactConsistent(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(dir, trace.NewNoopTracerProvider().Tracer("test"))
	ctx := context.Background()

	if _, err := store.Save(ctx, domain.ModelArtifact{
		ModelBlob:  []byte(`{"model":"model-v1"}`),
		ScalerBlob: []byte(`{"scaler":"scaler-v1"}`),
	}); err != nil {
		t.Fatalf("save v1: %v", err)
	}

	// Crash mid-save: the v2 document reached the staging file but was
	// never renamed into place.
	staged := filepath.Join(dir, "."+artifactFile+".tmp")
	if err := os.WriteFile(staged, []byte(`{"version":2,"model":"bW9kZWwtdjI=","scaler":""}`), 0o644); err != nil {
		t.Fatalf("write staged: %v", err)
	}

	loaded, err := store.Latest(ctx)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if loaded == nil {
		t.Fatal("expected v1 artifact")
	}
	if loaded.Version != 1 {
		t.Fatalf("expected version 1, got %d", loaded.Version)
	}
	if string(loaded.ModelBlob) != `{"model":"model-v1"}` || string(loaded.ScalerBlob) != `{"scaler":"scaler-v1"}` {
		t.Fatalf("model and scaler out of step: %s / %s", loaded.ModelBlob, loaded.ScalerBlob)
	}

	// The next save still versions past the completed artifact, not the
	// abandoned staging file.
	saved, err := store.Save(ctx, domain.ModelArtifact{
		ModelBlob:  []byte(`{"model":"model-v2"}`),
		ScalerBlob: []byte(`{"scaler":"scaler-v2"}`),
	})
	if err != nil {
		t.Fatalf("save v2: %v", err)
	}
	if saved.Version != 2 {
		t.Fatalf("expected version 2, got %d", saved.Version)
	}
}

func TestFileStoreCorruptArtifactReturnsError(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(dir, trace.NewNoopTracerProvider().Tracer("test"))

	if err := os.WriteFile(filepath.Join(dir, artifactFile), []byte("not json"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := store.Latest(context.Background()); err == nil {
		t.Fatal("expected decode error")
	}
}
