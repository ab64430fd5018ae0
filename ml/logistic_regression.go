package ml

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
)

type LogisticRegression struct {
	coefficients []float64
	intercept    float64
}

type logisticRegressionBody struct {
	Coefficients []float64 `json:"coefficients"`
	Intercept    float64   `json:"intercept"`
}

func NewLogisticRegression(coefficients []float64, intercept float64) (*LogisticRegression, error) {
	if len(coefficients) != FeatureCount() {
		return nil, fmt.Errorf("expected %d coefficients, got %d", FeatureCount(), len(coefficients))
	}
	for i, c := range coefficients {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return nil, fmt.Errorf("coefficient %d is not finite", i)
		}
	}
	if math.IsNaN(intercept) || math.IsInf(intercept, 0) {
		return nil, errors.New("intercept is not finite")
	}
	return &LogisticRegression{
		coefficients: append([]float64(nil), coefficients...),
		intercept:    intercept,
	}, nil
}

func (lr *LogisticRegression) Predict(features []float64) (int, float64, error) {
	if len(features) != len(lr.coefficients) {
		return 0, 0, fmt.Errorf("expected %d features, got %d", len(lr.coefficients), len(features))
	}
	z := lr.intercept
	for i, x := range features {
		z += lr.coefficients[i] * x
	}
	p := sigmoid(z)
	if p >= 0.5 {
		return 1, p, nil
	}
	return 0, 1 - p, nil
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}

func decodeLogisticRegression(raw json.RawMessage) (MLModel, error) {
	var body logisticRegressionBody
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, err
	}
	return NewLogisticRegression(body.Coefficients, body.Intercept)
}
