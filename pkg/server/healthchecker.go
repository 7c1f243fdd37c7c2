package server

import "context"

type HealthChecker interface {
	Healthy(ctx context.Context) bool
}

// HealthCheckerFunc adapts a plain function, typically a database ping.
type HealthCheckerFunc func(ctx context.Context) bool

func (f HealthCheckerFunc) Healthy(ctx context.Context) bool {
	return f(ctx)
}

type OkHealthChecker struct {
}

func NewOkHealthChecker() *OkHealthChecker {
	return &OkHealthChecker{}
}

func (hc *OkHealthChecker) Healthy(ctx context.Context) bool {
	return true
}

// MultiHealthChecker is healthy only when every dependency is.
type MultiHealthChecker struct {
	checkers []HealthChecker
}

func NewMultiHealthChecker(checkers ...HealthChecker) *MultiHealthChecker {
	return &MultiHealthChecker{checkers: checkers}
}

func (hc *MultiHealthChecker) Healthy(ctx context.Context) bool {
	for _, c := range hc.checkers {
		if !c.Healthy(ctx) {
			return false
		}
	}
	return true
}
