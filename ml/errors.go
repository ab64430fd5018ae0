package ml

import (
	"errors"
	"fmt"
)

var (
	ErrArtifactNotFound   = errors.New("model artifact not found")
	ErrArtifactUnreadable = errors.New("model artifact unreadable")
	ErrArtifactCorrupt    = errors.New("model artifact corrupt")
	ErrUnsupportedFormat  = errors.New("unsupported model artifact format")
	ErrUnsupportedModel   = errors.New("unsupported model type")
	ErrSchemaMismatch     = errors.New("model feature schema mismatch")
)

// LoadError 模型加载的致命错误，出现后不得继续提供预测
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load model artifact %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// VersionMismatchError 模型文件由其他库版本生成，但内容仍可解析
type VersionMismatchError struct {
	Path            string
	ArtifactVersion string
	RuntimeVersion  string
}

func (e *VersionMismatchError) Error() string {
	return fmt.Sprintf("model artifact %s was produced by library version %q, runtime is %q",
		e.Path, e.ArtifactVersion, e.RuntimeVersion)
}
