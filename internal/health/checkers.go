// SPDX-License-Identifier: MIT

package health

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// FuncChecker adapts a function to Checker.
type FuncChecker struct {
	name string
	fn   func(ctx context.Context) CheckResult
}

// NewFuncChecker creates a named checker from fn.
func NewFuncChecker(name string, fn func(ctx context.Context) CheckResult) *FuncChecker {
	return &FuncChecker{name: name, fn: fn}
}

func (c *FuncChecker) Name() string {
	return c.name
}

func (c *FuncChecker) Check(ctx context.Context) CheckResult {
	return c.fn(ctx)
}

// Pinger is anything with a liveness ping, e.g. the preference store.
type Pinger interface {
	Ping(ctx context.Context) error
}

// NewPingChecker reports unhealthy when Ping fails.
func NewPingChecker(name string, p Pinger) Checker {
	return NewFuncChecker(name, func(ctx context.Context) CheckResult {
		if err := p.Ping(ctx); err != nil {
			return CheckResult{Status: StatusUnhealthy, Error: err.Error()}
		}
		return CheckResult{Status: StatusHealthy}
	})
}

// DocumentState is what the portfolio checker needs to know.
type DocumentState interface {
	// DocumentStatus returns the revision, whether the fallback is active
	// and which required sections are missing.
	DocumentStatus() (revision uint64, fallback bool, missing []string)
}

// NewDocumentChecker is degraded while the fallback document or an
// incomplete document is served; visitors still get a page.
func NewDocumentChecker(name string, s DocumentState) Checker {
	return NewFuncChecker(name, func(context.Context) CheckResult {
		rev, fallback, missing := s.DocumentStatus()
		switch {
		case fallback:
			return CheckResult{Status: StatusDegraded, Message: fmt.Sprintf("serving fallback document (revision %d)", rev)}
		case len(missing) > 0:
			return CheckResult{Status: StatusDegraded, Message: "missing sections: " + strings.Join(missing, ", ")}
		default:
			return CheckResult{Status: StatusHealthy, Message: fmt.Sprintf("revision %d", rev)}
		}
	})
}

// NewDirChecker reports unhealthy when path is not an existing directory.
// An empty path is optional and healthy.
func NewDirChecker(name, path string) Checker {
	return NewFuncChecker(name, func(context.Context) CheckResult {
		if path == "" {
			return CheckResult{Status: StatusHealthy, Message: "not configured (optional)"}
		}
		info, err := os.Stat(path)
		if err != nil {
			return CheckResult{Status: StatusUnhealthy, Error: err.Error()}
		}
		if !info.IsDir() {
			return CheckResult{Status: StatusUnhealthy, Error: "expected directory, got file"}
		}
		return CheckResult{Status: StatusHealthy}
	})
}
