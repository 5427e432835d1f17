// Command shadow_compare replays read-only class queries against the legacy
// service and this API and reports contract differences.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
)

func main() {
	var (
		goBase      string
		legacyBase  string
		targetsPath string
		timeout     time.Duration
	)

	flag.StringVar(&goBase, "go-base", "http://localhost:3333", "Go API base URL")
	flag.StringVar(&legacyBase, "legacy-base", "http://localhost:3334", "Legacy API base URL")
	flag.StringVar(&targetsPath, "targets", filepath.Join("scripts", "shadow_compare", "targets.json"), "Path to JSON targets file")
	flag.DurationVar(&timeout, "timeout", 5*time.Second, "HTTP client timeout")
	flag.Parse()

	logr, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(2)
	}
	defer logr.Sync() //nolint:errcheck

	targets, err := loadTargets(targetsPath)
	if err != nil {
		logr.Fatal("failed to load targets", zap.String("path", targetsPath), zap.Error(err))
	}

	cmp := &comparer{client: &http.Client{Timeout: timeout}, goBase: goBase, legacyBase: legacyBase}
	breaking, optional := 0, 0
	for _, t := range targets {
		res := cmp.compare(context.Background(), t)
		fields := []zap.Field{
			zap.String("path", t.Path),
			zap.Int("go_status", res.GoStatus),
			zap.Int("legacy_status", res.LegacyStatus),
			zap.Duration("go_latency", res.DurationGo),
			zap.Duration("legacy_latency", res.DurationLegacy),
			zap.Bool("critical", t.Critical),
		}
		switch {
		case res.Error != nil:
			logr.Error("compare failed", append(fields, zap.Error(res.Error))...)
		case !res.StatusMatch || !res.BodyMatch:
			logr.Warn("contract diff", append(fields, zap.Bool("status_match", res.StatusMatch), zap.Bool("body_match", res.BodyMatch))...)
		default:
			logr.Info("match", fields...)
			continue
		}
		if t.Critical {
			breaking++
		} else {
			optional++
		}
	}

	logr.Info("shadow compare finished", zap.Int("targets", len(targets)), zap.Int("breaking", breaking), zap.Int("optional", optional))
	if breaking > 0 {
		os.Exit(1)
	}
}
