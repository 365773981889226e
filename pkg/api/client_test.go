package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/session/start", r.URL.Path)
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(StartSessionResponse{SessionID: "sess-42"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	id, err := c.StartSession(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "sess-42", id)
}

func TestStartSession_EmptyID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(StartSessionResponse{})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.StartSession(context.Background())
	require.Error(t, err)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, KindServer, apiErr.Kind)
}

func TestSendMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/session/message", r.URL.Path)

		var req SendMessageRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "sess-42", req.SessionID)
		assert.Equal(t, "harvester vibrating", req.Message)
		assert.Equal(t, "user-123-abc", req.UserID)

		json.NewEncoder(w).Encode(SendReply{
			OK:                 true,
			Reply:              "Checking telemetry",
			FlowState:          "collecting_info",
			NeedsClarification: true,
			WorkOrderID:        "WO-9",
			ExecutionSummary:   map[string]any{"agents_executed": float64(2)},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	reply, err := c.SendMessage(context.Background(), "sess-42", "harvester vibrating", "user-123-abc")
	require.NoError(t, err)

	assert.True(t, reply.OK)
	assert.Equal(t, "Checking telemetry", reply.Reply)
	assert.Equal(t, "collecting_info", reply.FlowState)
	assert.True(t, reply.NeedsClarification)
	assert.Equal(t, "WO-9", reply.WorkOrderID)
	assert.Equal(t, float64(2), reply.ExecutionSummary["agents_executed"])
}

func TestSendMessage_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"detail":"Failed to process message"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.SendMessage(context.Background(), "sess-42", "hello", "")
	require.Error(t, err)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, KindServer, apiErr.Kind)
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
	assert.Equal(t, "Failed to process message", apiErr.Message)
}

func TestSendMessage_StaleSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail":"Session not found"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.SendMessage(context.Background(), "gone", "hello", "")

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, KindNotFound, apiErr.Kind)
}

func TestSendMessage_NetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	c := NewClient(srv.URL)
	c.SetTimeout(500 * time.Millisecond)
	_, err := c.SendMessage(context.Background(), "sess-42", "hello", "")

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, KindNetwork, apiErr.Kind)
	assert.Equal(t, 0, apiErr.Status)
}

func TestHistory(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/session/history/sess-42", r.URL.Path)
		json.NewEncoder(w).Encode(HistoryResponse{Messages: []HistoryMessage{
			{Role: "user", Content: "hello", Timestamp: "2025-11-14T08:05:00"},
			{Role: "bot", Content: "hi there", Timestamp: "2025-11-14T08:05:02"},
		}})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	msgs, err := c.History(context.Background(), "sess-42")
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "user", msgs[0].Role)
	assert.Equal(t, "bot", msgs[1].Role)
}

func TestCloseSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/session/close/sess-42", r.URL.Path)
		json.NewEncoder(w).Encode(CloseResponse{OK: true, Message: "Session and thread closed successfully"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	ack, err := c.CloseSession(context.Background(), "sess-42")
	require.NoError(t, err)
	assert.True(t, ack.OK)
}

func TestDashboardEndpoints(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/tickets":
			json.NewEncoder(w).Encode([]Ticket{{ID: "T-001", Status: "open"}})
		case "/api/agents":
			json.NewEncoder(w).Encode([]Agent{{ID: "field-sense", Name: "FieldSense"}})
		case "/api/runbooks":
			json.NewEncoder(w).Encode([]Runbook{{ID: "RB-01", Safe: true}})
		case "/api/metrics":
			json.NewEncoder(w).Encode(Metrics{Accuracy: 92})
		case "/api/plots":
			json.NewEncoder(w).Encode([]Plot{{ID: "T-22", Lat: -22.5}})
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	ctx := context.Background()

	tickets, err := c.Tickets(ctx)
	require.NoError(t, err)
	require.Len(t, tickets, 1)
	assert.Equal(t, "T-001", tickets[0].ID)

	agents, err := c.Agents(ctx)
	require.NoError(t, err)
	assert.Equal(t, "FieldSense", agents[0].Name)

	runbooks, err := c.Runbooks(ctx)
	require.NoError(t, err)
	assert.True(t, runbooks[0].Safe)

	metrics, err := c.Metrics(ctx)
	require.NoError(t, err)
	assert.Equal(t, 92, metrics.Accuracy)

	plots, err := c.Plots(ctx)
	require.NoError(t, err)
	assert.Equal(t, -22.5, plots[0].Lat)
}

func TestErrorDetail(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"fastapi detail", `{"detail":"Session not found"}`, "Session not found"},
		{"error field", `{"error":"boom"}`, "boom"},
		{"raw body", `gateway timeout`, "gateway timeout"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errorDetail([]byte(tt.body)))
		})
	}
}
