package registry

import (
	"context"

	"equity-radar/internal/domain"
)

// ArtifactStore persists trained model artifacts. Save must be atomic:
// a reader never observes a model blob without its matching scaler.
type ArtifactStore interface {
	Save(ctx context.Context, artifact domain.ModelArtifact) (*domain.ModelArtifact, error)
	Latest(ctx context.Context) (*domain.ModelArtifact, error)
}
