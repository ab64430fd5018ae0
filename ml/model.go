package ml

import "encoding/json"

type MLModel interface {
	Predict(features []float64) (int, float64, error)
}

const (
	ModelTypeDecisionTree       = "decision_tree"
	ModelTypeLogisticRegression = "logistic_regression"
)

// modelDecoders 将模型文件的 "model" 字段解码为校验过的分类器
var modelDecoders = map[string]func(json.RawMessage) (MLModel, error){
	ModelTypeDecisionTree:       decodeDecisionTree,
	ModelTypeLogisticRegression: decodeLogisticRegression,
}

func isBinaryLabel(label int) bool {
	return label == 0 || label == 1
}
