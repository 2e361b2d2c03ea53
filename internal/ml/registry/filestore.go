package registry

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"

	"equity-radar/internal/domain"

	"go.opentelemetry.io/otel/trace"
)

const artifactFile = "model_artifact.json"

// FileStore keeps the serving artifact on local disk, used when the
// service runs without Postgres. Model, scaler and metadata travel as one
// JSON document written to a staging file and renamed into place in a
// single step, so readers only ever observe a complete version.
type FileStore struct {
	dir    string
	tracer trace.Tracer
}

func NewFileStore(dir string, tracer trace.Tracer) *FileStore {
	return &FileStore{dir: dir, tracer: tracer}
}

func (s *FileStore) Save(ctx context.Context, artifact domain.ModelArtifact) (*domain.ModelArtifact, error) {
	_, span := s.tracer.Start(ctx, "model-filestore.save")
	defer span.End()

	if len(artifact.ModelBlob) == 0 || len(artifact.ScalerBlob) == 0 {
		return nil, errors.New("artifact requires both model and scaler blobs")
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, err
	}

	artifact.Version = s.nextVersion()
	artifact.CreatedAt = time.Now().UTC()
	if artifact.Metadata.TrainedAt.IsZero() {
		artifact.Metadata.TrainedAt = artifact.CreatedAt
	}

	blob, err := json.Marshal(fileArtifact{
		Version:   artifact.Version,
		Metadata:  artifact.Metadata,
		Model:     artifact.ModelBlob,
		Scaler:    artifact.ScalerBlob,
		CreatedAt: artifact.CreatedAt,
	})
	if err != nil {
		return nil, err
	}

	tmp := filepath.Join(s.dir, "."+artifactFile+".tmp")
	if err := os.WriteFile(tmp, blob, 0o644); err != nil {
		return nil, err
	}
	if err := os.Rename(tmp, filepath.Join(s.dir, artifactFile)); err != nil {
		os.Remove(tmp)
		return nil, err
	}
	return &artifact, nil
}

func (s *FileStore) Latest(ctx context.Context) (*domain.ModelArtifact, error) {
	_, span := s.tracer.Start(ctx, "model-filestore.latest")
	defer span.End()

	raw, err := os.ReadFile(filepath.Join(s.dir, artifactFile))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var stored fileArtifact
	if err := json.Unmarshal(raw, &stored); err != nil {
		return nil, err
	}
	if len(stored.Model) == 0 || len(stored.Scaler) == 0 {
		return nil, errors.New("stored artifact is missing model or scaler")
	}
	return &domain.ModelArtifact{
		Version:    stored.Version,
		ModelBlob:  stored.Model,
		ScalerBlob: stored.Scaler,
		Metadata:   stored.Metadata,
		CreatedAt:  stored.CreatedAt,
	}, nil
}

func (s *FileStore) nextVersion() int {
	raw, err := os.ReadFile(filepath.Join(s.dir, artifactFile))
	if err != nil {
		return 1
	}
	var stored fileArtifact
	if err := json.Unmarshal(raw, &stored); err != nil {
		return 1
	}
	return stored.Version + 1
}

type fileArtifact struct {
	Version   int                  `json:"version"`
	Metadata  domain.ModelMetadata `json:"metadata"`
	Model     []byte               `json:"model"`
	Scaler    []byte               `json:"scaler"`
	CreatedAt time.Time            `json:"created_at"`
}
