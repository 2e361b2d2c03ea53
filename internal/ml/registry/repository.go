package registry

import (
	"context"
	"encoding/json"
	"errors"

	"equity-radar/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.opentelemetry.io/otel/trace"
)

const createArtifactsTable = `
CREATE TABLE IF NOT EXISTS model_artifacts (
    version        BIGINT PRIMARY KEY,
    model_blob     BYTEA NOT NULL,
    scaler_blob    BYTEA NOT NULL,
    metadata_json  JSONB NOT NULL,
    created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`

type pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repository stores model artifacts in Postgres, one row per trained
// version. The highest version is the serving artifact.
type Repository struct {
	pool   pool
	tracer trace.Tracer
}

func NewRepository(pool pool, tracer trace.Tracer) *Repository {
	return &Repository{pool: pool, tracer: tracer}
}

func (r *Repository) RunMigrations(ctx context.Context) error {
	_, span := r.tracer.Start(ctx, "model-registry.run-migrations")
	defer span.End()

	_, err := r.pool.Exec(ctx, createArtifactsTable)
	return err
}

func (r *Repository) Save(ctx context.Context, artifact domain.ModelArtifact) (*domain.ModelArtifact, error) {
	ctx, span := r.tracer.Start(ctx, "model-registry.save")
	defer span.End()

	if len(artifact.ModelBlob) == 0 || len(artifact.ScalerBlob) == 0 {
		return nil, errors.New("artifact requires both model and scaler blobs")
	}
	metadata, err := json.Marshal(artifact.Metadata)
	if err != nil {
		return nil, err
	}

	var out domain.ModelArtifact
	var metadataRaw []byte
	err = r.pool.QueryRow(ctx, `
INSERT INTO model_artifacts (version, model_blob, scaler_blob, metadata_json)
VALUES ((SELECT COALESCE(MAX(version), 0) + 1 FROM model_artifacts), $1, $2, $3)
RETURNING version, model_blob, scaler_blob, metadata_json, created_at`,
		artifact.ModelBlob,
		artifact.ScalerBlob,
		metadata,
	).Scan(
		&out.Version,
		&out.ModelBlob,
		&out.ScalerBlob,
		&metadataRaw,
		&out.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(metadataRaw, &out.Metadata); err != nil {
		return nil, err
	}
	out.CreatedAt = out.CreatedAt.UTC()
	return &out, nil
}

func (r *Repository) Latest(ctx context.Context) (*domain.ModelArtifact, error) {
	ctx, span := r.tracer.Start(ctx, "model-registry.latest")
	defer span.End()

	var out domain.ModelArtifact
	var metadataRaw []byte
	err := r.pool.QueryRow(ctx, `
SELECT version, model_blob, scaler_blob, metadata_json, created_at
FROM model_artifacts
ORDER BY version DESC
LIMIT 1`).Scan(
		&out.Version,
		&out.ModelBlob,
		&out.ScalerBlob,
		&metadataRaw,
		&out.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if err := json.Unmarshal(metadataRaw, &out.Metadata); err != nil {
		return nil, err
	}
	out.CreatedAt = out.CreatedAt.UTC()
	return &out, nil
}
