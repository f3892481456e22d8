package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jaydipmangukiya/Prop-valuer-sub000/models"
	"github.com/jaydipmangukiya/Prop-valuer-sub000/utils"
)

func testValuer(url string) *Valuer {
	return NewValuer(Options{
		Endpoint:       url,
		Timeout:        5 * time.Second,
		MaxConcurrency: 2,
		MaxRetries:     3,
		BaseDelay:      time.Millisecond,
	}, utils.NewLoggerTo(io.Discard, io.Discard, utils.LevelDebug))
}

func TestSubmitSendsPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if body["carpet_area"] != 1000.0 || body["super_built_up_area"] != 1666.0 || body["loading"] != 40.0 {
			http.Error(w, "bad areas", http.StatusUnprocessableEntity)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"market_value": 8500000, "rate_per_sqft": 5102}`))
	}))
	defer srv.Close()

	val, err := testValuer(srv.URL).Submit(context.Background(), &models.ValuationRequest{
		ID: "a1", PropertyType: models.Apartment, CarpetArea: 1000, SuperBuiltUpArea: 1666, Loading: 40,
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if val.RequestID != "a1" || val.MarketValue != 8500000 {
		t.Errorf("got %+v", val)
	}
}

func TestSubmitRetriesServerErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	val, err := testValuer(srv.URL).Submit(context.Background(), &models.ValuationRequest{ID: "v1"})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if n := atomic.LoadInt32(&calls); n != 3 {
		t.Errorf("calls: got %d, want 3", n)
	}
	if val.RequestID != "v1" {
		t.Errorf("RequestID: got %q", val.RequestID)
	}
}

func TestSubmitDoesNotRetryClientErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		http.Error(w, "unit_size required", http.StatusBadRequest)
	}))
	defer srv.Close()

	if _, err := testValuer(srv.URL).Submit(context.Background(), &models.ValuationRequest{ID: "x"}); err == nil {
		t.Fatal("expected an error for a 400 response")
	}
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Errorf("calls: got %d, want 1", n)
	}
}

func TestSubmitAllSkipsAlreadySent(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	v := testValuer(srv.URL)
	reqs := []*models.ValuationRequest{{ID: "a"}, {ID: "b"}, {ID: "a"}}

	vals, errs := v.SubmitAll(context.Background(), reqs)
	if len(vals) != 2 || len(errs) != 0 {
		t.Errorf("first batch: got %d valuations, %d errors", len(vals), len(errs))
	}

	vals, errs = v.SubmitAll(context.Background(), reqs)
	if len(vals) != 0 || len(errs) != 0 {
		t.Errorf("second batch: got %d valuations, %d errors", len(vals), len(errs))
	}
	if n := atomic.LoadInt32(&calls); n != 2 {
		t.Errorf("calls: got %d, want 2", n)
	}
}
