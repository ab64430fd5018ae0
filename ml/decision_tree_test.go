package ml

import "testing"

func leaf(label int, confidence float64) TreeNode {
	return TreeNode{FeatureIdx: -1, LeftChild: -1, RightChild: -1, ClassLabel: label, Confidence: confidence, IsLeaf: true}
}

func TestDecisionTreePredict(t *testing.T) {
	model, err := NewDecisionTree([]TreeNode{
		{FeatureIdx: 3, Threshold: 1000000, LeftChild: 1, RightChild: 2},
		leaf(0, 0.8),
		leaf(1, 0.7),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	label, confidence, err := model.Predict([]float64{30, 0, 1, 1000000, 4, 0, 0, 0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if label != 0 || confidence != 0.8 {
		t.Fatalf("expected label 0 with 0.8, got %d with %f", label, confidence)
	}

	label, _, err = model.Predict([]float64{30, 0, 1, 1000001, 4, 0, 0, 0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if label != 1 {
		t.Fatalf("expected label 1, got %d", label)
	}
}

func TestDecisionTreeRejectsInvalidStructure(t *testing.T) {
	cases := map[string][]TreeNode{
		"empty":              nil,
		"non binary label":   {leaf(2, 0.5)},
		"self loop":          {{FeatureIdx: 0, LeftChild: 0, RightChild: 1}, leaf(0, 0)},
		"child out of range": {{FeatureIdx: 0, LeftChild: 1, RightChild: 5}, leaf(0, 0)},
		"feature overflow":   {{FeatureIdx: 8, LeftChild: 1, RightChild: 2}, leaf(0, 0), leaf(1, 0)},
		"bad confidence":     {leaf(1, 1.5)},
	}
	for name, nodes := range cases {
		if _, err := NewDecisionTree(nodes); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestDecisionTreeShortVector(t *testing.T) {
	model, err := NewDecisionTree([]TreeNode{
		{FeatureIdx: 7, Threshold: 0.5, LeftChild: 1, RightChild: 2},
		leaf(0, 0),
		leaf(1, 0),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, _, err := model.Predict([]float64{1, 2}); err == nil {
		t.Fatal("expected error for short feature vector")
	}
}

func TestLogisticRegressionPredict(t *testing.T) {
	model, err := NewLogisticRegression([]float64{0, 0, 0, 0, 0, 0, 0, 2}, -1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	label, confidence, err := model.Predict([]float64{0, 0, 0, 0, 0, 0, 0, 0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if label != 0 || confidence <= 0.5 {
		t.Fatalf("expected label 0 with confidence > 0.5, got %d/%f", label, confidence)
	}
	label, confidence, err = model.Predict([]float64{0, 0, 0, 0, 0, 0, 0, 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if label != 1 || confidence <= 0.5 {
		t.Fatalf("expected label 1 with confidence > 0.5, got %d/%f", label, confidence)
	}
}

func TestLogisticRegressionCoefficientCount(t *testing.T) {
	if _, err := NewLogisticRegression([]float64{1, 2, 3}, 0); err == nil {
		t.Fatal("expected error for wrong coefficient count")
	}
}
