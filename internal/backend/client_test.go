package backend

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reglabs/coaflow/internal/common"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(server.URL, 5*time.Second)
	require.NoError(t, err)
	return client
}

func TestNewClientRequiresURL(t *testing.T) {
	_, err := NewClient("  ", time.Second)
	assert.ErrorIs(t, err, common.ErrMissingConfig)
}

func TestCompounds(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/compounds", r.URL.Path)
		_, _ = w.Write([]byte(`{"success":true,"data":[{"id":"c1","code":"HX-101","name":"Hexorin"}]}`))
	})

	compounds, err := client.Compounds(context.Background())
	require.NoError(t, err)
	require.Len(t, compounds, 1)
	assert.Equal(t, "HX-101", compounds[0].Code)
}

func TestTemplatesPassesCompoundID(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "c1", r.URL.Query().Get("compound_id"))
		_, _ = w.Write([]byte(`{"success":true,"data":[{"id":"t1","compoundId":"c1","region":"US"}]}`))
	})

	templates, err := client.Templates(context.Background(), "c1")
	require.NoError(t, err)
	require.Len(t, templates, 1)
	assert.Equal(t, "US", templates[0].Region)
}

func TestTableData(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/documents/d1/table-data", r.URL.Path)
		_, _ = w.Write([]byte(`{"success":true,"data":[{"field":"lot_number","value":"ABC123","confidence":0.95}]}`))
	})

	fields, err := client.TableData(context.Background(), "d1")
	require.NoError(t, err)
	require.Len(t, fields, 1)
	assert.Equal(t, "lot_number", fields[0].Field)
	assert.InDelta(t, 0.95, fields[0].Confidence, 1e-9)
}

func TestErrorClassification(t *testing.T) {
	tests := []struct {
		name     string
		handler  http.HandlerFunc
		wantKind common.Kind
	}{
		{
			name: "envelope failure is a server error",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"success":false,"error":"extraction failed"}`))
			},
			wantKind: common.KindServer,
		},
		{
			name: "404 is not found",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusNotFound)
			},
			wantKind: common.KindNotFound,
		},
		{
			name: "500 is a server error",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte(`{"success":false,"error":"backend exploded"}`))
			},
			wantKind: common.KindServer,
		},
		{
			name: "malformed envelope is invalid",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`not json`))
			},
			wantKind: common.KindValidation,
		},
		{
			name: "wrong payload shape is invalid",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"success":true,"data":{"unexpected":"object"}}`))
			},
			wantKind: common.KindValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, tt.handler)

			_, err := client.Compounds(context.Background())
			require.Error(t, err)
			assert.Equal(t, tt.wantKind, common.KindOf(err))
		})
	}
}

func TestUnreachableBackendIsTransport(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close()

	client, err := NewClient(server.URL, time.Second)
	require.NoError(t, err)

	_, err = client.Compounds(context.Background())
	require.Error(t, err)
	assert.Equal(t, common.KindTransport, common.KindOf(err))
	assert.False(t, common.IsRetryable(err), "connection refused is not a timeout")
}

func TestTimeoutIsRetryableTransport(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte(`{"success":true,"data":[]}`))
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := client.Compounds(ctx)
	require.Error(t, err)
	assert.Equal(t, common.KindTransport, common.KindOf(err))
	assert.True(t, common.IsRetryable(err))
}

func TestProcessSendsDocumentID(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/documents/process", r.URL.Path)
		_, _ = w.Write([]byte(`{"success":true,"data":{"documentId":"d1","status":"completed","extractedData":[{"id":"f1","documentId":"d1","fieldName":"lot_number","fieldValue":"ABC123","confidenceScore":0.92}]}}`))
	})

	fields, err := client.Process(context.Background(), "d1")
	require.NoError(t, err)
	require.Len(t, fields, 1)
	assert.Equal(t, "ABC123", fields[0].FieldValue)
}
