// Command shadow_compare replays a list of read-only requests against the
// legacy Next.js deployment and this API, reporting status and body
// mismatches. Used during the migration cutover to verify response parity.
package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"
)

type target struct {
	Method   string `json:"method"`
	Path     string `json:"path"`
	Critical bool   `json:"critical"`
}

type config struct {
	Targets []target `json:"targets"`
}

type comparison struct {
	Target         target
	LegacyStatus   int
	APIStatus      int
	StatusMatch    bool
	BodyMatch      bool
	Error          error
	DurationAPI    time.Duration
	DurationLegacy time.Duration
}

// volatileKeys are fields that legitimately differ between the legacy app
// and this API (server-side timestamps) and are dropped before comparing.
var volatileKeys = map[string]bool{
	"created_at":    true,
	"updated_at":    true,
	"last_login_at": true,
	"generated_at":  true,
}

func main() {
	var (
		apiBase     string
		legacyBase  string
		targetsPath string
		cookieName  string
		sessionTok  string
		timeout     time.Duration
	)

	flag.StringVar(&apiBase, "api-base", "http://localhost:8080", "recursos-api base URL")
	flag.StringVar(&legacyBase, "legacy-base", "http://localhost:3000", "Legacy Next.js base URL")
	flag.StringVar(&targetsPath, "targets", filepath.Join("scripts", "shadow_compare", "targets.json"), "Path to JSON targets file")
	flag.StringVar(&cookieName, "cookie-name", "session", "Session cookie name")
	flag.StringVar(&sessionTok, "session", "", "Session token sent as cookie to both sides")
	flag.DurationVar(&timeout, "timeout", 5*time.Second, "HTTP client timeout")
	flag.Parse()

	targets, err := loadTargets(targetsPath)
	if err != nil {
		log.Fatalf("failed to load targets: %v", err)
	}

	client := &http.Client{Timeout: timeout}
	runner := &runner{
		client:     client,
		apiBase:    apiBase,
		legacyBase: legacyBase,
		cookieName: cookieName,
		session:    sessionTok,
	}

	var (
		comparisons  []comparison
		breaking     int
		optionalDiff int
	)

	for _, t := range targets {
		comp := runner.compare(t)
		if comp.Error != nil {
			if t.Critical {
				breaking++
			}
		} else {
			if !comp.StatusMatch || !comp.BodyMatch {
				if t.Critical {
					breaking++
				} else {
					optionalDiff++
				}
			}
		}
		comparisons = append(comparisons, comp)
	}

	printReport(comparisons)

	fmt.Printf("Breaking diffs: %d, Optional diffs: %d\n", breaking, optionalDiff)
	if breaking > 0 {
		os.Exit(1)
	}
}

func loadTargets(path string) ([]target, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if len(cfg.Targets) == 0 {
		return nil, fmt.Errorf("no targets defined in %s", path)
	}
	return cfg.Targets, nil
}

type runner struct {
	client     *http.Client
	apiBase    string
	legacyBase string
	cookieName string
	session    string
}

func (r *runner) compare(tgt target) comparison {
	comp := comparison{Target: tgt}
	apiResp, apiDur, apiErr := r.perform(r.apiBase, tgt)
	legacyResp, legacyDur, legacyErr := r.perform(r.legacyBase, tgt)
	comp.DurationAPI = apiDur
	comp.DurationLegacy = legacyDur

	if apiErr != nil {
		comp.Error = fmt.Errorf("api request failed: %w", apiErr)
		return comp
	}
	if legacyErr != nil {
		comp.Error = fmt.Errorf("legacy request failed: %w", legacyErr)
		return comp
	}

	comp.APIStatus = apiResp.StatusCode
	comp.LegacyStatus = legacyResp.StatusCode
	comp.StatusMatch = comp.APIStatus == comp.LegacyStatus

	defer apiResp.Body.Close()
	defer legacyResp.Body.Close()

	apiBody, err := io.ReadAll(apiResp.Body)
	if err != nil {
		comp.Error = fmt.Errorf("read api body: %w", err)
		return comp
	}
	legacyBody, err := io.ReadAll(legacyResp.Body)
	if err != nil {
		comp.Error = fmt.Errorf("read legacy body: %w", err)
		return comp
	}

	comp.BodyMatch = bodiesEqual(apiBody, legacyBody)

	return comp
}

func (r *runner) perform(base string, tgt target) (*http.Response, time.Duration, error) {
	if r.client == nil {
		return nil, 0, errors.New("nil client")
	}
	method := strings.ToUpper(strings.TrimSpace(tgt.Method))
	if method == "" {
		method = http.MethodGet
	}
	path := tgt.Path
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	url := strings.TrimRight(base, "/") + path

	req, err := http.NewRequest(method, url, nil)
	if err != nil {
		return nil, 0, err
	}
	if r.session != "" {
		req.AddCookie(&http.Cookie{Name: r.cookieName, Value: r.session})
	}
	start := time.Now()
	resp, err := r.client.Do(req)
	if err != nil {
		return nil, 0, err
	}
	return resp, time.Since(start), nil
}

func bodiesEqual(a, b []byte) bool {
	if bytes.Equal(bytes.TrimSpace(a), bytes.TrimSpace(b)) {
		return true
	}

	var aj, bj interface{}
	if err := json.Unmarshal(a, &aj); err != nil {
		return false
	}
	if err := json.Unmarshal(b, &bj); err != nil {
		return false
	}
	normalize(&aj)
	normalize(&bj)
	return reflect.DeepEqual(aj, bj)
}

func normalize(v *interface{}) {
	switch val := (*v).(type) {
	case map[string]interface{}:
		for k, v2 := range val {
			if volatileKeys[k] {
				delete(val, k)
				continue
			}
			normalize(&v2)
			val[k] = v2
		}
	case []interface{}:
		for i, v2 := range val {
			normalize(&v2)
			val[i] = v2
		}
	case float64:
		if val == float64(int64(val)) {
			*v = int64(val)
		}
	}
}

func printReport(results []comparison) {
	fmt.Println("Shadow Compare Report")
	fmt.Println("======================")
	for _, res := range results {
		status := "OK"
		if res.Error != nil {
			status = "ERROR"
		} else if !res.StatusMatch || !res.BodyMatch {
			status = "DIFF"
		}
		fmt.Printf("[%s] %s %s\n", status, res.Target.Method, res.Target.Path)
		fmt.Printf("  API Status: %d (%s)\n", res.APIStatus, res.DurationAPI)
		fmt.Printf("  Legacy Status: %d (%s)\n", res.LegacyStatus, res.DurationLegacy)
		if res.Error != nil {
			fmt.Printf("  Error: %v\n", res.Error)
		} else {
			fmt.Printf("  Status match: %t | Body match: %t | Critical: %t\n", res.StatusMatch, res.BodyMatch, res.Target.Critical)
		}
	}
}
