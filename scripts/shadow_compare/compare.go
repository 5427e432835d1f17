package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

// target is one read-only request replayed against both services.
// IgnoreFields names object keys whose values differ by construction,
// such as generated identifiers.
type target struct {
	Path         string   `json:"path"`
	Critical     bool     `json:"critical"`
	IgnoreFields []string `json:"ignore_fields"`
}

type targetsFile struct {
	Targets []target `json:"targets"`
}

type comparison struct {
	Target         target
	LegacyStatus   int
	GoStatus       int
	StatusMatch    bool
	BodyMatch      bool
	Error          error
	DurationGo     time.Duration
	DurationLegacy time.Duration
}

func loadTargets(path string) ([]target, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var file targetsFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, err
	}
	if len(file.Targets) == 0 {
		return nil, fmt.Errorf("no targets defined in %s", path)
	}
	return file.Targets, nil
}

type comparer struct {
	client     *http.Client
	goBase     string
	legacyBase string
}

func (c *comparer) compare(ctx context.Context, tgt target) comparison {
	res := comparison{Target: tgt}

	goStatus, goBody, goDur, err := c.fetch(ctx, c.goBase, tgt.Path)
	if err != nil {
		res.Error = fmt.Errorf("go request failed: %w", err)
		return res
	}
	legacyStatus, legacyBody, legacyDur, err := c.fetch(ctx, c.legacyBase, tgt.Path)
	if err != nil {
		res.Error = fmt.Errorf("legacy request failed: %w", err)
		return res
	}

	res.GoStatus, res.LegacyStatus = goStatus, legacyStatus
	res.DurationGo, res.DurationLegacy = goDur, legacyDur
	res.StatusMatch = goStatus == legacyStatus
	res.BodyMatch = bodiesEqual(goBody, legacyBody, tgt.IgnoreFields)
	return res
}

func (c *comparer) fetch(ctx context.Context, base, path string) (int, []byte, time.Duration, error) {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, strings.TrimRight(base, "/")+path, nil)
	if err != nil {
		return 0, nil, 0, err
	}
	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return 0, nil, 0, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, 0, fmt.Errorf("read body: %w", err)
	}
	return resp.StatusCode, body, time.Since(start), nil
}

// bodiesEqual compares two JSON documents ignoring array order and the
// given object keys. Non-JSON bodies must match byte for byte.
func bodiesEqual(a, b []byte, ignore []string) bool {
	var aj, bj interface{}
	if json.Unmarshal(a, &aj) != nil || json.Unmarshal(b, &bj) != nil {
		return strings.TrimSpace(string(a)) == strings.TrimSpace(string(b))
	}
	skip := make(map[string]struct{}, len(ignore))
	for _, key := range ignore {
		skip[key] = struct{}{}
	}
	return reflect.DeepEqual(normalize(aj, skip), normalize(bj, skip))
}

func normalize(v interface{}, skip map[string]struct{}) interface{} {
	switch val := v.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(val))
		for k, item := range val {
			if _, ok := skip[k]; ok {
				continue
			}
			out[k] = normalize(item, skip)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(val))
		keys := make([]string, len(val))
		for i, item := range val {
			out[i] = normalize(item, skip)
			raw, _ := json.Marshal(out[i])
			keys[i] = string(raw)
		}
		sort.Sort(byKey{items: out, keys: keys})
		return out
	case float64:
		if val == float64(int64(val)) {
			return int64(val)
		}
		return val
	default:
		return val
	}
}

type byKey struct {
	items []interface{}
	keys  []string
}

func (b byKey) Len() int           { return len(b.items) }
func (b byKey) Less(i, j int) bool { return b.keys[i] < b.keys[j] }
func (b byKey) Swap(i, j int) {
	b.items[i], b.items[j] = b.items[j], b.items[i]
	b.keys[i], b.keys[j] = b.keys[j], b.keys[i]
}
