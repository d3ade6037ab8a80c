package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.IncScan(ResultSuccess)
	pr.IncScan(ResultFailed)
	pr.ObserveRender("page", 15*time.Millisecond, ResultSuccess)
	pr.IncArtifactReadFailure()
	pr.ObserveBuildDuration("root", 500*time.Millisecond)
	pr.IncBuildOutcome("root", ResultSuccess)
	pr.AddPagesWritten("root", 3)
	pr.ObserveHTTPRequest("/page/{number}", http.StatusNotFound, time.Millisecond)

	if got := testutil.ToFloat64(pr.readFailures); got != 1 {
		t.Fatalf("expected 1 read failure, got %v", got)
	}
	if got := testutil.ToFloat64(pr.pagesWritten.WithLabelValues("root")); got != 3 {
		t.Fatalf("expected 3 pages written, got %v", got)
	}
	if got := testutil.ToFloat64(pr.scans.WithLabelValues("failed")); got != 1 {
		t.Fatalf("expected 1 failed scan, got %v", got)
	}

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if len(mfs) == 0 {
		t.Fatalf("expected metrics, got none")
	}
}

func TestNilPrometheusRecorderIsSafe(t *testing.T) {
	var pr *PrometheusRecorder
	pr.IncScan(ResultSuccess)
	pr.IncArtifactReadFailure()
	pr.AddPagesWritten("root", 1)
}

func TestResultLabel(t *testing.T) {
	if Result(nil) != ResultSuccess {
		t.Fatal("nil error should be success")
	}
	if Result(errors.New("x")) != ResultFailed {
		t.Fatal("error should be failed")
	}
}

func TestHTTPHandlerServesRegistry(t *testing.T) {
	reg := NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.IncScan(ResultSuccess)

	rec := httptest.NewRecorder()
	HTTPHandler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "mirview_directory_scans_total") {
		t.Fatalf("expected scan counter in output")
	}
}
