package ml

import (
	"encoding/json"
	"fmt"
	"time"
)

const (
	ArtifactFormat = "travelinsure.model"
	FormatVersion  = 1
	// LibraryVersion 导出时写入模型文件，版本不同的文件加载时告警
	LibraryVersion = "1.3.0"
)

type ArtifactInfo struct {
	Format         string              `json:"format"`
	FormatVersion  int                 `json:"format_version"`
	LibraryVersion string              `json:"library_version"`
	ModelType      string              `json:"model_type"`
	FeatureNames   []string            `json:"feature_names,omitempty"`
	Categories     map[string][]string `json:"categories,omitempty"`
	TrainedAt      *time.Time          `json:"trained_at,omitempty"`
	Description    string              `json:"description,omitempty"`
}

type artifactFile struct {
	ArtifactInfo
	Model json.RawMessage `json:"model"`
}

func parseArtifact(payload []byte) (*artifactFile, error) {
	var artifact artifactFile
	if err := json.Unmarshal(payload, &artifact); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrArtifactCorrupt, err)
	}
	if artifact.Format != ArtifactFormat {
		return nil, fmt.Errorf("%w: format %q, want %q", ErrUnsupportedFormat, artifact.Format, ArtifactFormat)
	}
	if artifact.FormatVersion != FormatVersion {
		return nil, fmt.Errorf("%w: format version %d, want %d", ErrUnsupportedFormat, artifact.FormatVersion, FormatVersion)
	}
	if err := checkSchema(artifact.ArtifactInfo); err != nil {
		return nil, err
	}
	if len(artifact.Model) == 0 || string(artifact.Model) == "null" {
		return nil, fmt.Errorf("%w: missing model body", ErrArtifactCorrupt)
	}
	return &artifact, nil
}

// checkSchema 比对模型文件记录的训练时列结构与编码器的列结构，未记录时不做检查
func checkSchema(info ArtifactInfo) error {
	if len(info.FeatureNames) > 0 {
		names := FeatureNames()
		if !equalStrings(info.FeatureNames, names) {
			return fmt.Errorf("%w: artifact columns %v, encoder columns %v", ErrSchemaMismatch, info.FeatureNames, names)
		}
	}
	for column, values := range info.Categories {
		expected := Categories(column)
		if expected == nil {
			return fmt.Errorf("%w: artifact declares categories for non-categorical column %q", ErrSchemaMismatch, column)
		}
		if !equalStrings(values, expected) {
			return fmt.Errorf("%w: column %s categories %v, encoder uses %v", ErrSchemaMismatch, column, values, expected)
		}
	}
	return nil
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
