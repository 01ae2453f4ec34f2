// Package metrics computes evaluation metrics for binary classification and
// regression models from (actual, predicted) sample pairs.
package metrics

import (
	"fmt"
	"math"
)

// TaskType identifies the kind of model being evaluated.
type TaskType string

const (
	TaskClassification TaskType = "classification"
	TaskRegression     TaskType = "regression"
)

// Sample is a single (actual, predicted) pair. For classification tasks the
// actual value is 0 or 1 and the predicted value is a score in [0, 1].
type Sample struct {
	Actual    float64 `json:"actual"`
	Predicted float64 `json:"predicted"`
}

// Samples is an ordered collection of samples, fixed at evaluation time.
type Samples []Sample

// ValidationError describes malformed input that cannot produce a meaningful
// metric set.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid samples: " + e.Reason
}

// DetectTaskType returns TaskRegression when the actual values take more than
// two distinct values, TaskClassification otherwise.
func DetectTaskType(samples Samples) TaskType {
	seen := make(map[float64]struct{}, 3)
	for _, s := range samples {
		seen[s.Actual] = struct{}{}
		if len(seen) > 2 {
			return TaskRegression
		}
	}
	return TaskClassification
}

// Validate checks structural soundness common to both task types.
func Validate(samples Samples) error {
	if len(samples) == 0 {
		return &ValidationError{Reason: "empty sample set"}
	}
	for i, s := range samples {
		if math.IsNaN(s.Actual) || math.IsInf(s.Actual, 0) {
			return &ValidationError{Reason: fmt.Sprintf("sample %d: actual value is not finite", i)}
		}
		if math.IsNaN(s.Predicted) || math.IsInf(s.Predicted, 0) {
			return &ValidationError{Reason: fmt.Sprintf("sample %d: predicted value is not finite", i)}
		}
	}
	return nil
}

// ValidateClassification checks that samples form a valid binary
// classification evaluation set: actual labels in {0, 1} and predicted scores
// in [0, 1].
func ValidateClassification(samples Samples) error {
	if err := Validate(samples); err != nil {
		return err
	}
	for i, s := range samples {
		if s.Actual != 0 && s.Actual != 1 {
			return &ValidationError{Reason: fmt.Sprintf("sample %d: actual label %v is not 0 or 1", i, s.Actual)}
		}
		if s.Predicted < 0 || s.Predicted > 1 {
			return &ValidationError{Reason: fmt.Sprintf("sample %d: score %v outside [0, 1]", i, s.Predicted)}
		}
	}
	return nil
}

// Positives counts samples whose actual label is the positive class.
func (s Samples) Positives() int {
	n := 0
	for _, v := range s {
		if v.Actual != 0 {
			n++
		}
	}
	return n
}

// Negatives counts samples whose actual label is the negative class.
func (s Samples) Negatives() int {
	return len(s) - s.Positives()
}

// Mean computes the arithmetic mean of a float64 slice.
// Returns 0 for empty input.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// Variance computes the population variance of a float64 slice.
// Returns 0 for empty input.
func Variance(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m := Mean(values)
	sumSq := 0.0
	for _, v := range values {
		d := v - m
		sumSq += d * d
	}
	return sumSq / float64(len(values))
}

// StdDev computes the population standard deviation.
func StdDev(values []float64) float64 {
	return math.Sqrt(Variance(values))
}
