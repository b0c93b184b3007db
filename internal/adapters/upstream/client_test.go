package upstream_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/marmotkit/asset-mgmt-accounting/internal/adapters/upstream"
	"github.com/marmotkit/asset-mgmt-accounting/internal/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_ListPendingFees_BareArrayWithBearerToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/fees", r.URL.Path)
		assert.Equal(t, "pending", r.URL.Query().Get("status"))
		assert.Equal(t, "Bearer secret-token", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":"fee-1","member_id":"m-1","member_no":"A001","member_name":"王小明","member_type":"一般會員","amount":"1200.50","due_date":"2025-07-31"},
			{"id":"fee-2","member_no":"A002","member_name":"Alice","amount":300,"due_date":null}]`))
	}))
	defer srv.Close()

	client, err := upstream.NewClient(context.Background(), upstream.Config{BaseURL: srv.URL + "/api/", APIToken: "secret-token"})
	require.NoError(t, err)

	fees, err := client.ListPendingFees(context.Background())
	require.NoError(t, err)
	require.Len(t, fees, 2)
	assert.Equal(t, "fee-1", fees[0].FeeID)
	assert.Equal(t, "1200.5", fees[0].Amount.String())
	require.NotNil(t, fees[0].DueDate)
	assert.Equal(t, time.Date(2025, 7, 31, 0, 0, 0, 0, time.UTC), *fees[0].DueDate)
	assert.Nil(t, fees[1].DueDate)
	assert.Equal(t, "300", fees[1].Amount.String())
}

func TestClient_ListPendingRentals_DataEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rental-payments", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"data":[{"id":"rent-1","investment_id":"inv-9","investment_name":"台北店面","tenant_id":"t-1","tenant_name":"好租客","year":2025,"month":7,"amount":"30000"}]}`))
	}))
	defer srv.Close()

	client, err := upstream.NewClient(context.Background(), upstream.Config{BaseURL: srv.URL})
	require.NoError(t, err)

	rentals, err := client.ListPendingRentals(context.Background())
	require.NoError(t, err)
	require.Len(t, rentals, 1)
	assert.Equal(t, "rent-1", rentals[0].PaymentID)
	assert.Equal(t, 7, rentals[0].Month)
}

func TestClient_ListPendingProfits_ClientCredentials(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/token", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"issued-token","token_type":"bearer","expires_in":3600}`))
	})
	mux.HandleFunc("/member-profits", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer issued-token", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"data":[]}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	client, err := upstream.NewClient(context.Background(), upstream.Config{
		BaseURL:      srv.URL,
		TokenURL:     srv.URL + "/oauth/token",
		ClientID:     "accounting",
		ClientSecret: "shh",
	})
	require.NoError(t, err)

	profits, err := client.ListPendingProfits(context.Background())
	require.NoError(t, err)
	assert.Empty(t, profits)
}

func TestClient_ErrorsWrapUpstream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/fees":
			w.WriteHeader(http.StatusBadGateway)
		default:
			_, _ = w.Write([]byte(`not json`))
		}
	}))
	defer srv.Close()

	client, err := upstream.NewClient(context.Background(), upstream.Config{BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = client.ListPendingFees(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrUpstream)

	_, err = client.ListPendingRentals(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrUpstream)
}

func TestNewClient_RejectsInvalidBaseURL(t *testing.T) {
	_, err := upstream.NewClient(context.Background(), upstream.Config{BaseURL: "not a url"})
	assert.Error(t, err)
}
