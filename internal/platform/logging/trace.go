package logging

import (
	"fmt"
	"os"
	"regexp"
	"sync"

	"go.uber.org/zap"
)

const traceparentHeader = "traceparent"

// traceparentRe matches version-traceid-parentid-flags, e.g.
// 00-ab42124a3c573678d4d8b21ba52df3bf-d21f7bc17caa5aba-01.
var traceparentRe = regexp.MustCompile(`^([0-9a-fA-F]{2})-([0-9a-fA-F]{32})-([0-9a-fA-F]{16})-([0-9a-fA-F]{2})$`)

var (
	projectMu sync.RWMutex
	projectID string
	envOnce   sync.Once
	envProjID string
)

// SetProjectID pins the Google Cloud project used for trace resources.
// An empty id restores the environment lookup.
func SetProjectID(id string) {
	projectMu.Lock()
	projectID = id
	projectMu.Unlock()
}

func resolveProjectID() string {
	projectMu.RLock()
	id := projectID
	projectMu.RUnlock()
	if id != "" {
		return id
	}
	envOnce.Do(func() {
		for _, key := range []string{"GOOGLE_CLOUD_PROJECT", "GCP_PROJECT", "FIREBASE_PROJECT_ID", "PROJECT_ID"} {
			if v := os.Getenv(key); v != "" {
				envProjID = v
				return
			}
		}
	})
	return envProjID
}

type traceContext struct {
	resource string
	spanID   string
	sampled  bool
}

func parseTraceparent(header, project string) (traceContext, bool) {
	if project == "" {
		return traceContext{}, false
	}
	m := traceparentRe.FindStringSubmatch(header)
	if len(m) != 5 {
		return traceContext{}, false
	}
	return traceContext{
		resource: fmt.Sprintf("projects/%s/traces/%s", project, m[2]),
		spanID:   m[3],
		sampled:  m[4] == "01",
	}, true
}

func loggerWithTrace(base *zap.Logger, tc traceContext, ok bool, requestID string) *zap.Logger {
	if base == nil {
		base = zap.NewNop()
	}
	var fields []zap.Field
	if ok {
		fields = append(fields,
			zap.String("logging.googleapis.com/trace", tc.resource),
			zap.String("logging.googleapis.com/spanId", tc.spanID),
			zap.Bool("logging.googleapis.com/trace_sampled", tc.sampled),
		)
	}
	if requestID != "" {
		fields = append(fields, zap.String("requestId", requestID))
	}
	if len(fields) == 0 {
		return base
	}
	return base.With(fields...)
}
