package fhir_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"smart_scout/internal/fhir"
)

const patientBundle = `{
	"resourceType": "Bundle",
	"entry": [
		{"resource": {"resourceType": "Patient", "id": "pat-1"}},
		{"resource": {"resourceType": "Patient", "id": "pat-2"}}
	]
}`

func TestSearchPatients(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/Patient" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.Header.Get("Accept"); got != "application/fhir+json" {
			t.Errorf("accept = %q", got)
		}
		if got := r.URL.Query().Get("family"); got != "Smith" {
			t.Errorf("family = %q", got)
		}
		_, _ = w.Write([]byte(patientBundle))
	}))
	defer srv.Close()

	client := fhir.NewClient(srv.URL, time.Second)
	patients, err := client.SearchPatients(context.Background(), "Smith")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(patients) != 2 {
		t.Fatalf("patients = %d, want 2", len(patients))
	}
	if patients[0].ID() != "pat-1" {
		t.Errorf("id = %q", patients[0].ID())
	}
}

func TestSearchObservations(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/Observation" {
			t.Errorf("path = %q", r.URL.Path)
		}
		query := r.URL.Query()
		if query.Get("patient") != "Patient/pat-1" || query.Get("category") != "survey" {
			t.Errorf("query = %v", query)
		}
		_, _ = w.Write([]byte(`{"entry": [{"resource": {"id": "obs-1"}}]}`))
	}))
	defer srv.Close()

	client := fhir.NewClient(srv.URL, time.Second)
	observations, err := client.SearchObservations(context.Background(), "Patient/pat-1", "survey")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(observations) != 1 {
		t.Fatalf("observations = %d, want 1", len(observations))
	}
}

func TestSearch_EmptyBundle(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"resourceType": "Bundle", "total": 0}`))
	}))
	defer srv.Close()

	client := fhir.NewClient(srv.URL, time.Second)
	patients, err := client.SearchPatients(context.Background(), "")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(patients) != 0 {
		t.Fatalf("patients = %d, want 0", len(patients))
	}
}

func TestSearch_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := fhir.NewClient(srv.URL, time.Second)
	if _, err := client.SearchPatients(context.Background(), ""); err == nil {
		t.Fatal("expected error on 500")
	}
}

func TestSearch_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	client := fhir.NewClient(url, time.Second)
	if _, err := client.SearchPatients(context.Background(), ""); err == nil {
		t.Fatal("expected transport error")
	}
}
