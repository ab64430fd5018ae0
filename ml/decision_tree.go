package ml

import (
	"encoding/json"
	"errors"
	"fmt"
)

type DecisionTree struct {
	nodes []TreeNode
}

type TreeNode struct {
	FeatureIdx int     `json:"feature_idx"`
	Threshold  float64 `json:"threshold"`
	LeftChild  int     `json:"left_child"`
	RightChild int     `json:"right_child"`
	ClassLabel int     `json:"class_label"`
	Confidence float64 `json:"confidence,omitempty"`
	IsLeaf     bool    `json:"is_leaf"`
}

type decisionTreeBody struct {
	Nodes []TreeNode `json:"nodes"`
}

func NewDecisionTree(nodes []TreeNode) (*DecisionTree, error) {
	if err := validateTree(nodes, FeatureCount()); err != nil {
		return nil, err
	}
	return &DecisionTree{nodes: append([]TreeNode(nil), nodes...)}, nil
}

func (dt *DecisionTree) Predict(features []float64) (int, float64, error) {
	if len(dt.nodes) == 0 {
		return 0, 0, errors.New("model not loaded")
	}
	idx := 0
	for {
		node := dt.nodes[idx]
		if node.IsLeaf {
			return node.ClassLabel, node.Confidence, nil
		}
		if node.FeatureIdx < 0 || node.FeatureIdx >= len(features) {
			return 0, 0, errors.New("feature index out of range")
		}
		if features[node.FeatureIdx] <= node.Threshold {
			idx = node.LeftChild
		} else {
			idx = node.RightChild
		}
		if idx < 0 || idx >= len(dt.nodes) {
			return 0, 0, errors.New("invalid tree state")
		}
	}
}

func (dt *DecisionTree) Nodes() []TreeNode {
	return append([]TreeNode(nil), dt.nodes...)
}

func decodeDecisionTree(raw json.RawMessage) (MLModel, error) {
	var body decisionTreeBody
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, err
	}
	return NewDecisionTree(body.Nodes)
}

// validateTree 要求子节点位于父节点之后，保证遍历必然结束
func validateTree(nodes []TreeNode, featureCount int) error {
	if len(nodes) == 0 {
		return errors.New("decision tree has no nodes")
	}
	for i, node := range nodes {
		if node.IsLeaf {
			if !isBinaryLabel(node.ClassLabel) {
				return fmt.Errorf("node %d: class label %d is not 0 or 1", i, node.ClassLabel)
			}
			if node.Confidence < 0 || node.Confidence > 1 {
				return fmt.Errorf("node %d: confidence %f out of [0,1]", i, node.Confidence)
			}
			continue
		}
		if node.FeatureIdx < 0 || node.FeatureIdx >= featureCount {
			return fmt.Errorf("node %d: feature index %d out of range", i, node.FeatureIdx)
		}
		for _, child := range []int{node.LeftChild, node.RightChild} {
			if child <= i || child >= len(nodes) {
				return fmt.Errorf("node %d: child index %d out of range", i, child)
			}
		}
	}
	return nil
}
