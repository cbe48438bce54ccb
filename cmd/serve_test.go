package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/fleet-cli/internal/fleet"
	"github.com/sells-group/fleet-cli/internal/session"
	"github.com/sells-group/fleet-cli/internal/table"
)

func newTestSession() *session.Session {
	finance := table.New("Unit ID", "Make", "Model", "Year", "Monthly Payment")
	finance.AppendRow(table.Row{
		"Unit ID": "SPOT-77", "Make": "Kenworth", "Model": "T680",
		"Year": "2019", "Monthly Payment": "500",
	})
	finance.AppendRow(table.Row{
		"Unit ID": "SPOT-12", "Make": "Volvo", "Model": "VNL",
		"Year": "2022", "Monthly Payment": "4000",
	})

	repairs := table.New("Truck", "Repair Amount")
	repairs.AppendRow(table.Row{"Truck": "SPOT-77", "Repair Amount": "9000"})
	repairs.AppendRow(table.Row{"Truck": "SPOT-12", "Repair Amount": "100"})

	odometer := table.New("Unit", "Odometer Reading")
	odometer.AppendRow(table.Row{"Unit": "SPOT-77", "Odometer Reading": "520000"})
	odometer.AppendRow(table.Row{"Unit": "SPOT-12", "Odometer Reading": "80000"})

	distance := table.New("Unit", "Distance Traveled")
	distance.AppendRow(table.Row{"Unit": "SPOT-77", "Distance Traveled": "2500"})
	distance.AppendRow(table.Row{"Unit": "SPOT-12", "Distance Traveled": "5000"})

	return session.New(fleet.Snapshot{
		Finance:  finance,
		Repairs:  repairs,
		Odometer: odometer,
		Distance: distance,
	})
}

func TestRouter_HealthEndpoint(t *testing.T) {
	router := newRouter(newTestSession())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "application/json")

	var body map[string]string
	err := json.Unmarshal(rr.Body.Bytes(), &body)
	require.NoError(t, err)
	assert.Equal(t, "ok", body["status"])
}

func TestRouter_Report(t *testing.T) {
	router := newRouter(newTestSession())

	req := httptest.NewRequest(http.MethodGet, "/api/report", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var rep fleet.Report
	err := json.Unmarshal(rr.Body.Bytes(), &rep)
	require.NoError(t, err)
	require.Len(t, rep.Records, 2)
	assert.Equal(t, "77", rep.Records[0].UnitID)
	assert.Equal(t, fleet.ActionSell, rep.Records[0].Action)
	assert.Equal(t, fleet.ActionKeep, rep.Records[1].Action)
}

func TestRouter_Report_FilterByAction(t *testing.T) {
	router := newRouter(newTestSession())

	req := httptest.NewRequest(http.MethodGet, "/api/report?action=SELL", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var rep fleet.Report
	err := json.Unmarshal(rr.Body.Bytes(), &rep)
	require.NoError(t, err)
	require.Len(t, rep.Records, 1)
	assert.Equal(t, "77", rep.Records[0].UnitID)
}

func TestRouter_Report_InvalidFilter(t *testing.T) {
	router := newRouter(newTestSession())

	req := httptest.NewRequest(http.MethodGet, "/api/report?action=BOGUS", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "invalid action filter")
}

func TestRouter_Summary(t *testing.T) {
	router := newRouter(newTestSession())

	req := httptest.NewRequest(http.MethodGet, "/api/summary", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var s fleet.Summary
	err := json.Unmarshal(rr.Body.Bytes(), &s)
	require.NoError(t, err)
	assert.Equal(t, 2, s.Trucks)
}

func TestRouter_AddTruck(t *testing.T) {
	sess := newTestSession()
	router := newRouter(sess)

	body, _ := json.Marshal(session.Truck{
		UnitID: "SPOT-901", Make: "Peterbilt", Model: "579",
		Year: "2021", MonthlyPayment: 650,
	})

	req := httptest.NewRequest(http.MethodPost, "/api/trucks", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, 1, sess.Version())

	// The next report includes the added truck.
	req = httptest.NewRequest(http.MethodGet, "/api/report", nil)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	var rep fleet.Report
	err := json.Unmarshal(rr.Body.Bytes(), &rep)
	require.NoError(t, err)
	require.Len(t, rep.Records, 3)
	assert.Equal(t, "901", rep.Records[2].UnitID)
	assert.Equal(t, 7800.0, rep.Records[2].PayoffBalance)
	assert.Equal(t, 1, rep.Version)
}

func TestRouter_AddTruck_MissingUnitID(t *testing.T) {
	router := newRouter(newTestSession())

	req := httptest.NewRequest(http.MethodPost, "/api/trucks", strings.NewReader(`{"make":"Volvo"}`))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "unit id is required")
}

func TestRouter_AddTruck_InvalidJSON(t *testing.T) {
	router := newRouter(newTestSession())

	req := httptest.NewRequest(http.MethodPost, "/api/trucks", strings.NewReader("not json"))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "invalid request body")
}

func TestRouter_ExportCSV(t *testing.T) {
	router := newRouter(newTestSession())

	req := httptest.NewRequest(http.MethodGet, "/api/export.csv", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, rr.Header().Get("Content-Disposition"), "truck_decisions.csv")

	lines := strings.Split(strings.TrimSpace(rr.Body.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "clean_id")
	assert.Contains(t, lines[1], "SELL")
}
