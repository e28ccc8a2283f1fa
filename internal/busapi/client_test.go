package busapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchBusesNormalizesEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/buses/", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"buses": []map[string]interface{}{
				{"bus_number": "OA-1", "status": "in_transit", "capacity": 45},
				{"busNumber": "OA-2", "status": "archived"},
			},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	buses, err := client.FetchBuses(context.Background())
	require.NoError(t, err)
	require.Len(t, buses, 2)

	assert.Equal(t, "OA-1", buses[0].BusNumber)
	assert.Equal(t, "In Transit", buses[0].Status)
	assert.Equal(t, 45, buses[0].Capacity)
	assert.Equal(t, "OA-2", buses[1].BusNumber)
	assert.Equal(t, "Offline", buses[1].Status)
}

func TestFetchBusesBareArray(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]map[string]interface{}{{"bus_number": "OA-1"}})
	}))
	defer server.Close()

	buses, err := NewClient(server.URL).FetchBuses(context.Background())
	require.NoError(t, err)
	assert.Len(t, buses, 1)
}

func TestFetchBusesMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	buses, err := NewClient(server.URL).FetchBuses(context.Background())
	require.NoError(t, err)
	assert.Empty(t, buses)
}

func TestBearerTokenAttached(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		w.Write([]byte("[]"))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	client.SetToken("tok-123")
	_, err := client.FetchBuses(context.Background())
	require.NoError(t, err)
}

func TestUpdateBusSendsPayload(t *testing.T) {
	var got map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/buses/42", r.URL.Path)
		json.NewDecoder(r.Body).Decode(&got)
		w.Write([]byte("{}"))
	}))
	defer server.Close()

	_, err := NewClient(server.URL).UpdateBus(context.Background(), "42", map[string]interface{}{"status": "offline"})
	require.NoError(t, err)
	assert.Equal(t, "offline", got["status"])
}

func TestValidationDetailJoined(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"detail":[{"loc":["body","bus_number"],"msg":"field required"},{"loc":["body","capacity"],"msg":"value is not a valid integer"}]}`))
	}))
	defer server.Close()

	_, err := NewClient(server.URL).CreateBus(context.Background(), map[string]interface{}{})
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.StatusCode)
	assert.Equal(t, "bus_number: field required; capacity: value is not a valid integer", apiErr.Message)
}

func TestStringDetail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail":"invalid credentials"}`))
	}))
	defer server.Close()

	_, err := NewClient(server.URL).Login(context.Background(), "a@b.c", "nope")
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "invalid credentials", apiErr.Message)
}

func TestGenericErrorMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("boom"))
	}))
	defer server.Close()

	err := NewClient(server.URL).DeleteBus(context.Background(), "1")
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "request failed with status 500", apiErr.Message)
}

func TestLoginReturnsRawPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/login", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"token": "tok-1",
			"user":  map[string]interface{}{"email": "ops@example.com"},
		})
	}))
	defer server.Close()

	payload, err := NewClient(server.URL).Login(context.Background(), "ops@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "tok-1", payload["token"])
}
