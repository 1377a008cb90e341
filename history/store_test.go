package history

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func TestRecordAndGet(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	scan := &Scan{
		URL:         "https://animate-ui.com/",
		StartedAt:   time.UnixMilli(1000),
		FinishedAt:  time.UnixMilli(2000),
		Status:      StatusOK,
		VarCount:    12,
		RuleCount:   340,
		SampleCount: 25,
		ResultJSON:  `{"css_variables":{}}`,
	}
	if err := st.Record(ctx, scan); err != nil {
		t.Fatal(err)
	}
	if scan.ID == 0 {
		t.Fatal("expected assigned id")
	}

	got, err := st.Get(ctx, scan.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.URL != scan.URL || got.Status != StatusOK || got.RuleCount != 340 {
		t.Errorf("got %+v", got)
	}
	if !got.StartedAt.Equal(scan.StartedAt) {
		t.Errorf("started_at = %v, want %v", got.StartedAt, scan.StartedAt)
	}
	if got.ResultJSON != scan.ResultJSON {
		t.Errorf("result_json = %q", got.ResultJSON)
	}
}

func TestFailedRunRecorded(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	scan := &Scan{
		URL:        "https://unreachable.invalid/",
		StartedAt:  time.Now(),
		FinishedAt: time.Now(),
		Status:     StatusError,
		Error:      "navigate: net::ERR_NAME_NOT_RESOLVED",
	}
	if err := st.Record(ctx, scan); err != nil {
		t.Fatal(err)
	}

	got, err := st.Get(ctx, scan.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != StatusError || got.Error == "" || got.ResultJSON != "" {
		t.Errorf("got %+v", got)
	}
}

func TestLatestAndList(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		err := st.Record(ctx, &Scan{
			URL:        "https://animate-ui.com/",
			StartedAt:  time.UnixMilli(int64(1000 * (i + 1))),
			FinishedAt: time.UnixMilli(int64(1000*(i+1) + 500)),
			Status:     StatusOK,
		})
		if err != nil {
			t.Fatal(err)
		}
	}

	latest, err := st.Latest(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if latest.StartedAt.UnixMilli() != 3000 {
		t.Errorf("latest started_at = %d, want 3000", latest.StartedAt.UnixMilli())
	}

	scans, err := st.List(ctx, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(scans) != 2 {
		t.Fatalf("list = %d entries, want 2", len(scans))
	}
	if scans[0].StartedAt.UnixMilli() != 3000 || scans[1].StartedAt.UnixMilli() != 2000 {
		t.Errorf("list not newest-first: %v, %v", scans[0].StartedAt, scans[1].StartedAt)
	}
}

func TestNotFound(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	if _, err := st.Latest(ctx); !errors.Is(err, ErrNotFound) {
		t.Errorf("Latest on empty history: err = %v, want ErrNotFound", err)
	}
	if _, err := st.Get(ctx, 42); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(42): err = %v, want ErrNotFound", err)
	}
}
