package factory

import (
	"fmt"
	"math"
	"sync"

	"github.com/renjie/driftkit/pkg/core/domain"
	"github.com/renjie/driftkit/pkg/core/ports"
	"github.com/renjie/driftkit/pkg/core/services/rules"
)

// ClassifierBuilder defines the contract for creating a specific classifier
type ClassifierBuilder func(params map[string]float64) (ports.Classifier, error)

// ClassifierFactory is the registry for all available classifier types
type ClassifierFactory struct {
	builders map[domain.ClassifierType]ClassifierBuilder
	mu       sync.RWMutex
}

var (
	instance *ClassifierFactory
	once     sync.Once
)

// GetClassifierFactory returns the singleton instance
func GetClassifierFactory() *ClassifierFactory {
	once.Do(func() {
		instance = NewClassifierFactory()
	})
	return instance
}

// NewClassifierFactory creates a factory with the built-in classifiers registered
func NewClassifierFactory() *ClassifierFactory {
	f := &ClassifierFactory{
		builders: make(map[domain.ClassifierType]ClassifierBuilder),
	}
	f.Register(domain.ClassifierTypeNearest, buildNearest)
	f.Register(domain.ClassifierTypeThreshold, buildThreshold)
	return f
}

// Register adds or overrides a classifier builder
func (f *ClassifierFactory) Register(t domain.ClassifierType, builder ClassifierBuilder) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.builders[t] = builder
}

// CreateClassifier instantiates a classifier based on configuration
func (f *ClassifierFactory) CreateClassifier(spec domain.ClassifierSpec) (ports.Classifier, error) {
	f.mu.RLock()
	builder, ok := f.builders[spec.Type]
	f.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: no builder registered for classifier type: %q", domain.ErrInvalidConfig, spec.Type)
	}
	return builder(spec.Parameters)
}

// param 读取必填参数; 缺失或非有限值都是配置错误
func param(params map[string]float64, name string, t domain.ClassifierType) (float64, error) {
	v, ok := params[name]
	if !ok {
		return 0, fmt.Errorf("%w: %s classifier needs parameter %q", domain.ErrInvalidConfig, t, name)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %s classifier parameter %q is not finite", domain.ErrInvalidConfig, t, name)
	}
	return v, nil
}

// buildNearest (Built-in implementation)
func buildNearest(params map[string]float64) (ports.Classifier, error) {
	short, err := param(params, "short", domain.ClassifierTypeNearest)
	if err != nil {
		return nil, err
	}
	long, err := param(params, "long", domain.ClassifierTypeNearest)
	if err != nil {
		return nil, err
	}
	if short >= long {
		return nil, fmt.Errorf("%w: NEAREST classifier needs short < long, got %v >= %v", domain.ErrInvalidConfig, short, long)
	}
	return &rules.NearestReference{Short: short, Long: long}, nil
}

// buildThreshold (Built-in implementation)
func buildThreshold(params map[string]float64) (ports.Classifier, error) {
	limit, err := param(params, "threshold", domain.ClassifierTypeThreshold)
	if err != nil {
		return nil, err
	}
	return &rules.Threshold{Limit: limit}, nil
}
