package domain

import "time"

// BuildRecord captures the outcome of one toolchain build.
type BuildRecord struct {
	ConfigHash   string        `json:"config_hash,omitzero"`
	Product      string        `json:"product,omitzero"`
	ArtifactPath string        `json:"artifact_path,omitzero"`
	ArtifactHash string        `json:"artifact_hash,omitzero"`
	Duration     time.Duration `json:"duration,omitzero"`
	Success      bool          `json:"success"`
	CompletedAt  time.Time     `json:"completed_at,omitzero"`
}
