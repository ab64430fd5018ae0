package ml

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadModelDecisionTree(t *testing.T) {
	result, err := LoadModel(filepath.Join("testdata", "decision_tree.json"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Status != LoadOK || result.Mismatch != nil {
		t.Fatalf("expected clean load, got %s", result.Status)
	}
	if result.Info.ModelType != ModelTypeDecisionTree {
		t.Fatalf("unexpected model type: %s", result.Info.ModelType)
	}
	if result.Info.TrainedAt == nil {
		t.Fatal("expected trained_at to be parsed")
	}
	if _, ok := result.Model.(*DecisionTree); !ok {
		t.Fatalf("expected *DecisionTree, got %T", result.Model)
	}
}

func TestLoadModelLogisticRegression(t *testing.T) {
	result, err := LoadModel(filepath.Join("testdata", "logistic_regression.json"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := result.Model.(*LogisticRegression); !ok {
		t.Fatalf("expected *LogisticRegression, got %T", result.Model)
	}
}

func TestLoadModelMissingArtifact(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.json")
	result, err := LoadModel(path)
	if err == nil {
		t.Fatal("expected error for missing artifact")
	}
	if result != nil {
		t.Fatal("expected no result with a fatal error")
	}
	var loadErr *LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("expected *LoadError, got %T", err)
	}
	if loadErr.Path != path {
		t.Fatalf("unexpected path in error: %s", loadErr.Path)
	}
	if !errors.Is(err, ErrArtifactNotFound) {
		t.Fatalf("expected ErrArtifactNotFound, got %v", err)
	}
}

func TestLoadModelUnreadableArtifact(t *testing.T) {
	_, err := LoadModel(t.TempDir())
	if !errors.Is(err, ErrArtifactUnreadable) {
		t.Fatalf("expected ErrArtifactUnreadable for a directory, got %v", err)
	}
}

func TestLoadModelFatalErrors(t *testing.T) {
	cases := []struct {
		file string
		want error
	}{
		{"corrupt.json", ErrArtifactCorrupt},
		{"format_v2.json", ErrUnsupportedFormat},
		{"category_mismatch.json", ErrSchemaMismatch},
		{"unknown_model.json", ErrUnsupportedModel},
		{"bad_tree.json", ErrArtifactCorrupt},
	}
	for _, tc := range cases {
		_, err := LoadModel(filepath.Join("testdata", tc.file))
		if !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.file, tc.want, err)
		}
		var loadErr *LoadError
		if !errors.As(err, &loadErr) {
			t.Fatalf("%s: expected *LoadError, got %T", tc.file, err)
		}
	}
}

func TestLoadModelWrongFormatName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.json")
	payload := `{"format":"sklearn.pickle","format_version":1,"library_version":"1.3.0","model_type":"decision_tree","model":{"nodes":[]}}`
	if err := os.WriteFile(path, []byte(payload), 0o600); err != nil {
		t.Fatalf("write artifact: %v", err)
	}
	if _, err := LoadModel(path); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestLoadModelFeatureOrderMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.json")
	payload := `{"format":"travelinsure.model","format_version":1,"library_version":"1.3.0","model_type":"logistic_regression",
"feature_names":["EmploymentType","Age","GraduateOrNot","AnnualIncome","FamilyMembers","ChronicDiseases","FrequentFlyer","EverTravelledAbroad"],
"model":{"coefficients":[0,0,0,0,0,0,0,0],"intercept":0}}`
	if err := os.WriteFile(path, []byte(payload), 0o600); err != nil {
		t.Fatalf("write artifact: %v", err)
	}
	if _, err := LoadModel(path); !errors.Is(err, ErrSchemaMismatch) {
		t.Fatalf("expected ErrSchemaMismatch, got %v", err)
	}
}

func TestLoadModelVersionMismatchIsRecoverable(t *testing.T) {
	result, err := LoadModel(filepath.Join("testdata", "version_mismatch.json"))
	if err != nil {
		t.Fatalf("expected version mismatch to load, got %v", err)
	}
	if result.Status != LoadVersionMismatch {
		t.Fatalf("expected version_mismatch status, got %s", result.Status)
	}
	if result.Mismatch == nil || result.Mismatch.ArtifactVersion != "0.24.1" || result.Mismatch.RuntimeVersion != LibraryVersion {
		t.Fatalf("unexpected mismatch detail: %+v", result.Mismatch)
	}
	if result.Model == nil {
		t.Fatal("expected model to be deserialized despite mismatch")
	}
}
