package wmata

import (
	"context"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, "test-key", 2*time.Second)
}

func TestStations(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/Rail.svc/json/jStations" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if got := r.Header.Get("api_key"); got != "test-key" {
			t.Errorf("api_key header = %q, want test-key", got)
		}
		w.Write([]byte(`{"Stations":[
			{"Code":"A01","Name":"Metro Center","LineCode1":"RD","LineCode2":null,"LineCode3":null,"LineCode4":null,"StationTogether1":"C01"},
			{"Code":"B03","Name":"Union Station","LineCode1":"RD","StationTogether1":""}
		]}`))
	})

	stations, err := client.Stations(context.Background())
	if err != nil {
		t.Fatalf("Stations: %v", err)
	}

	if len(stations) != 2 {
		t.Fatalf("got %d stations, want 2", len(stations))
	}
	if stations[0].Code != "A01" || stations[0].StationTogether1 != "C01" {
		t.Errorf("first station = %+v", stations[0])
	}
	// Null line codes decode to empty and are skipped uniformly.
	if got := stations[0].LineCodes(); !reflect.DeepEqual(got, []string{"RD"}) {
		t.Errorf("LineCodes = %v, want [RD]", got)
	}
}

func TestLineCodesOrderAndDuplicates(t *testing.T) {
	s := Station{LineCode1: "BL", LineCode2: "OR", LineCode3: "BL", LineCode4: "SV"}
	want := []string{"BL", "OR", "BL", "SV"}
	if got := s.LineCodes(); !reflect.DeepEqual(got, want) {
		t.Errorf("LineCodes = %v, want %v (order kept, duplicates kept)", got, want)
	}
}

func TestStationPredictions(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/StationPrediction.svc/json/GetPrediction/A01" {
			t.Errorf("path = %s", r.URL.Path)
		}
		w.Write([]byte(`{"Trains":[
			{"Car":"8","Destination":"Glenmont","DestinationName":"Glenmont","Line":"RD","LocationCode":"A01","Min":"BRD"}
		]}`))
	})

	trains, err := client.StationPredictions(context.Background(), "A01")
	if err != nil {
		t.Fatalf("StationPredictions: %v", err)
	}
	if len(trains) != 1 || trains[0].Min != "BRD" || trains[0].Line != "RD" {
		t.Errorf("trains = %+v", trains)
	}
}

func TestRailIncidents(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"Incidents":[
			{"IncidentID":"ABC","IncidentType":"Delay","LinesAffected":"RD; OR;","Description":"Single tracking"}
		]}`))
	})

	incidents, err := client.RailIncidents(context.Background())
	if err != nil {
		t.Fatalf("RailIncidents: %v", err)
	}
	if len(incidents) != 1 || incidents[0].LinesAffected != "RD; OR;" {
		t.Errorf("incidents = %+v", incidents)
	}
}

func TestStopPredictions(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("StopID"); got != "3004076" {
			t.Errorf("StopID = %q", got)
		}
		w.Write([]byte(`{"StopName":"Wisconsin Ave + M St","Predictions":[
			{"RouteID":"31","DirectionText":"North to Friendship Heights","Minutes":4}
		]}`))
	})

	name, predictions, err := client.StopPredictions(context.Background(), "3004076")
	if err != nil {
		t.Fatalf("StopPredictions: %v", err)
	}
	if name != "Wisconsin Ave + M St" {
		t.Errorf("stop name = %q", name)
	}
	if len(predictions) != 1 || predictions[0].Minutes != 4 {
		t.Errorf("predictions = %+v", predictions)
	}
}

func TestNon200IsError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	})

	if _, err := client.Stations(context.Background()); err == nil {
		t.Error("Stations on 403 response returned no error")
	}
}

func TestBadJSONIsError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"Stations":`))
	})

	if _, err := client.Stations(context.Background()); err == nil {
		t.Error("Stations on truncated body returned no error")
	}
}
