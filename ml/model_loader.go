package ml

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

type LoadStatus int

const (
	LoadOK LoadStatus = iota
	LoadVersionMismatch
	LoadNotLoaded
)

func (s LoadStatus) String() string {
	switch s {
	case LoadOK:
		return "ok"
	case LoadVersionMismatch:
		return "version_mismatch"
	case LoadNotLoaded:
		return "not_loaded"
	default:
		return "unknown"
	}
}

type LoadResult struct {
	Model    MLModel
	Info     ArtifactInfo
	Status   LoadStatus
	Mismatch *VersionMismatchError
}

// LoadModel 读取并反序列化模型文件。返回的错误均为 *LoadError，属致命错误；
// 库版本不一致通过结果中的 Status 报告
func LoadModel(path string) (*LoadResult, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &LoadError{Path: path, Err: ErrArtifactNotFound}
		}
		return nil, &LoadError{Path: path, Err: fmt.Errorf("%w: %v", ErrArtifactUnreadable, err)}
	}

	artifact, err := parseArtifact(payload)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	decode, ok := modelDecoders[artifact.ModelType]
	if !ok {
		return nil, &LoadError{Path: path, Err: fmt.Errorf("%w: %q", ErrUnsupportedModel, artifact.ModelType)}
	}
	model, err := decode(artifact.Model)
	if err != nil {
		return nil, &LoadError{Path: path, Err: fmt.Errorf("%w: %s: %v", ErrArtifactCorrupt, artifact.ModelType, err)}
	}

	result := &LoadResult{
		Model:  model,
		Info:   artifact.ArtifactInfo,
		Status: LoadOK,
	}
	if artifact.LibraryVersion != LibraryVersion {
		result.Status = LoadVersionMismatch
		result.Mismatch = &VersionMismatchError{
			Path:            path,
			ArtifactVersion: artifact.LibraryVersion,
			RuntimeVersion:  LibraryVersion,
		}
	}
	return result, nil
}
