// Package model provides the shared building blocks of linfit estimators:
// fitted-state tracking, capability interfaces and seeded weight initialization.
package model

import (
	"sync"

	"github.com/YuminosukeSato/linfit/pkg/errors"
)

// StateManager は学習状態と学習時の次元をスレッドセーフに管理する。
// 各推定器はこれを埋め込みではなくフィールドとして保持する。
type StateManager struct {
	mu sync.RWMutex

	fitted    bool
	nFeatures int
	nOutputs  int
	nSamples  int
}

// NewStateManager は未学習状態の StateManager を作成する。
func NewStateManager() *StateManager {
	return &StateManager{}
}

// IsFitted は学習済みかどうかを返す。
func (s *StateManager) IsFitted() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fitted
}

// SetFitted は学習時の次元を記録し、学習済み状態にする。
func (s *StateManager) SetFitted(nFeatures, nOutputs, nSamples int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fitted = true
	s.nFeatures = nFeatures
	s.nOutputs = nOutputs
	s.nSamples = nSamples
}

// Reset は未学習状態に戻す。
func (s *StateManager) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fitted = false
	s.nFeatures = 0
	s.nOutputs = 0
	s.nSamples = 0
}

// Dimensions は学習時の特徴量数・出力数・サンプル数を返す。
func (s *StateManager) Dimensions() (nFeatures, nOutputs, nSamples int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nFeatures, s.nOutputs, s.nSamples
}

// RequireFitted は未学習なら NotFittedError を返す。
func (s *StateManager) RequireFitted(modelName, method string) error {
	if !s.IsFitted() {
		return errors.NewNotFittedError(modelName, method)
	}
	return nil
}

// RequireFeatures は学習済みかつ特徴量数が一致することを確認する。
func (s *StateManager) RequireFeatures(modelName, method string, got int) error {
	if err := s.RequireFitted(modelName, method); err != nil {
		return err
	}
	nFeatures, _, _ := s.Dimensions()
	if got != nFeatures {
		return errors.NewDimensionError(modelName+"."+method, nFeatures, got, 1)
	}
	return nil
}
