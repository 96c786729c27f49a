package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"herbtrace/models"
)

func TestAddBatch(t *testing.T) {
	var gotReq AddBatchRequest
	var gotAuth, gotRID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/farmer/add-batch", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		gotRID = r.Header.Get("X-Request-ID")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		_ = json.NewEncoder(w).Encode(AddBatchResponse{
			QRDataURL: "data:image/png;base64,qr",
			Batch:     models.Batch{ID: "a1", BatchID: "B-100", HerbType: gotReq.HerbType},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, "secret-token")
	lat, lng := 12.9, 77.6
	ctx := WithRequestID(context.Background(), "sub-42")
	resp, err := c.AddBatch(ctx, AddBatchRequest{
		HerbType:   "Ashwagandha",
		QuantityKg: 5,
		GPS:        models.Coordinates{Lat: &lat, Lng: &lng},
	})

	require.NoError(t, err)
	assert.Equal(t, "B-100", resp.Batch.BatchID)
	assert.Equal(t, "data:image/png;base64,qr", resp.QRDataURL)
	assert.Equal(t, "Ashwagandha", gotReq.HerbType)
	assert.Equal(t, "Bearer secret-token", gotAuth)
	assert.Equal(t, "sub-42", gotRID)
}

func TestAddBatchServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"message":"duplicate batch"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "")
	_, err := c.AddBatch(context.Background(), AddBatchRequest{HerbType: "Tulsi", QuantityKg: 1})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.Equal(t, "duplicate batch", apiErr.Message)
}

func TestAddBatchErrorWithoutMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(srv.URL, "")
	_, err := c.AddBatch(context.Background(), AddBatchRequest{HerbType: "Tulsi", QuantityKg: 1})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Empty(t, apiErr.Message)
	assert.Contains(t, apiErr.Error(), "500")
}

func TestHistory(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/farmer/history", r.URL.Path)
		_, _ = w.Write([]byte(`{"batches":[{"_id":"a1","batchId":"B-2","herbType":"Neem","quantityKg":3,"status":"created"}]}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "")
	batches, err := c.History(context.Background())
	require.NoError(t, err)
	require.Len(t, batches, 1)
	assert.Equal(t, "B-2", batches[0].BatchID)
	assert.Equal(t, "created", batches[0].Status)
}

func TestHistoryMissingBatchesKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "")
	batches, err := c.History(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, batches)
	assert.Empty(t, batches)
}

func TestBatchByID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/farmer/batch/B-7", r.URL.Path)
		_, _ = w.Write([]byte(`{"batches":[{"batchId":"B-7"}]}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "")
	batches, err := c.BatchByID(context.Background(), "B-7")
	require.NoError(t, err)
	require.Len(t, batches, 1)
	assert.Equal(t, "B-7", batches[0].BatchID)
}

func TestTransportErrorWrapped(t *testing.T) {
	c := New("http://127.0.0.1:1", "")
	_, err := c.History(context.Background())
	require.Error(t, err)

	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr), "transport errors are not APIErrors")
	assert.Contains(t, err.Error(), "ledger call failed")
}
