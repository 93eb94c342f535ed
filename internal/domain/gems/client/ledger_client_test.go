package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"gemshop_api/internal/pkg/config"

	"github.com/stretchr/testify/assert"
)

func newTestClient(serverURL string) LedgerClient {
	return NewLedgerClient(config.LedgerConfig{
		BaseURL:   serverURL,
		SecretKey: "test-secret",
		ProjectID: "proj-1",
	})
}

func TestAdjustBalance(t *testing.T) {
	t.Run("Adjustment is keyed by GEM and carries the server secret", func(t *testing.T) {
		var gotPath, gotAuth string
		var gotBody AdjustmentRequest

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotAuth = r.Header.Get("Authorization")
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"transactionId":"tx-1","balances":{"GEM":150}}`))
		}))
		defer server.Close()

		c := newTestClient(server.URL)
		data, err := c.AdjustBalance(context.Background(), "ledger-user-1", -50, "purchase", map[string]interface{}{"sku": "hat"})

		assert.NoError(t, err)
		assert.Equal(t, "/v1/projects/proj-1/users/ledger-user-1/transactions", gotPath)
		assert.Equal(t, "Bearer test-secret", gotAuth)
		assert.Equal(t, int64(-50), gotBody.Currencies["GEM"])
		assert.Equal(t, "purchase", gotBody.Reason)
		assert.JSONEq(t, `{"transactionId":"tx-1","balances":{"GEM":150}}`, string(data))
	})

	t.Run("Ledger rejection keeps original status and body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusPaymentRequired)
			w.Write([]byte(`{"error":"insufficient balance"}`))
		}))
		defer server.Close()

		c := newTestClient(server.URL)
		data, err := c.AdjustBalance(context.Background(), "ledger-user-1", -5000, "purchase", nil)

		assert.Nil(t, data)
		var ledgerErr *LedgerError
		assert.ErrorAs(t, err, &ledgerErr)
		assert.Equal(t, http.StatusPaymentRequired, ledgerErr.StatusCode)
		assert.JSONEq(t, `{"error":"insufficient balance"}`, string(ledgerErr.Body))
	})
}

func TestCreateAccount(t *testing.T) {
	t.Run("Account id returned by the ledger", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v1/projects/proj-1/users", r.URL.Path)

			var body map[string]string
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "app-user-1", body["externalId"])

			w.Write([]byte(`{"id":"ledger-user-9"}`))
		}))
		defer server.Close()

		c := newTestClient(server.URL)
		id, err := c.CreateAccount(context.Background(), "app-user-1")

		assert.NoError(t, err)
		assert.Equal(t, "ledger-user-9", id)
	})

	t.Run("Missing id in response is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{}`))
		}))
		defer server.Close()

		c := newTestClient(server.URL)
		id, err := c.CreateAccount(context.Background(), "app-user-1")

		assert.Error(t, err)
		assert.Empty(t, id)
	})
}

func TestGetBalance(t *testing.T) {
	t.Run("Balance is read straight from the ledger", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "/v1/projects/proj-1/users/ledger-user-1/balances", r.URL.Path)
			w.Write([]byte(`{"GEM":150}`))
		}))
		defer server.Close()

		c := newTestClient(server.URL)
		data, err := c.GetBalance(context.Background(), "ledger-user-1")

		assert.NoError(t, err)
		assert.JSONEq(t, `{"GEM":150}`, string(data))
	})
}
