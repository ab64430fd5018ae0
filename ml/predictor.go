package ml

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
)

type Prediction struct {
	Class      int     `json:"class"`
	Purchase   bool    `json:"purchase"`
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

// Predictor 启动时加载一次的预测器，无可变状态，可在多个goroutine间共享
type Predictor struct {
	model  MLModel
	info   ArtifactInfo
	status LoadStatus
}

func NewPredictor(model MLModel, info ArtifactInfo) *Predictor {
	return &Predictor{model: model, info: info, status: LoadOK}
}

// OpenPredictor 加载模型文件。库版本不一致时记录告警并继续，strictVersion 为真时返回错误
func OpenPredictor(path string, strictVersion bool, logger *zap.Logger) (*Predictor, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	result, err := LoadModel(path)
	if err != nil {
		return nil, err
	}
	if result.Mismatch != nil {
		if strictVersion {
			return nil, result.Mismatch
		}
		logger.Warn("model artifact library version differs from runtime, loading anyway",
			zap.String("path", path),
			zap.String("artifact_version", result.Mismatch.ArtifactVersion),
			zap.String("runtime_version", result.Mismatch.RuntimeVersion),
		)
	}
	logger.Info("model artifact loaded",
		zap.String("path", path),
		zap.String("model_type", result.Info.ModelType),
		zap.String("library_version", result.Info.LibraryVersion),
		zap.Stringer("status", result.Status),
	)
	return &Predictor{model: result.Model, info: result.Info, status: result.Status}, nil
}

func (p *Predictor) Predict(record CustomerRecord) (Prediction, error) {
	if p == nil || p.model == nil {
		return Prediction{}, errors.New("model not loaded")
	}
	label, confidence, err := p.model.Predict(FeatureVector(record))
	if err != nil {
		return Prediction{}, fmt.Errorf("predict: %w", err)
	}
	if !isBinaryLabel(label) {
		return Prediction{}, fmt.Errorf("predict: classifier returned label %d", label)
	}
	purchase := label == 1
	return Prediction{
		Class:      label,
		Purchase:   purchase,
		Label:      Label(purchase),
		Confidence: confidence,
	}, nil
}

func (p *Predictor) Info() ArtifactInfo {
	if p == nil {
		return ArtifactInfo{}
	}
	info := p.info
	info.FeatureNames = append([]string(nil), p.info.FeatureNames...)
	if p.info.Categories != nil {
		info.Categories = make(map[string][]string, len(p.info.Categories))
		for column, values := range p.info.Categories {
			info.Categories[column] = append([]string(nil), values...)
		}
	}
	return info
}

func (p *Predictor) Status() LoadStatus {
	if p == nil || p.model == nil {
		return LoadNotLoaded
	}
	return p.status
}
