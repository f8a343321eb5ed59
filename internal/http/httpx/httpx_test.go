package httpx_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/tally/internal/http/httpx"
)

type askRequest struct {
	Query string `json:"query" validate:"required"`
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    string
		wantErr string
	}{
		{name: "Success", body: `{"query": "spend"}`, want: "spend"},
		{name: "MissingField", body: `{}`, wantErr: "Query"},
		{name: "NotJSON", body: `query=spend`, wantErr: "decoding body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))

			var got askRequest
			err := httpx.Decode(httptest.NewRecorder(), req, &got)

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Query)
		})
	}
}

func TestError(t *testing.T) {
	rec := httptest.NewRecorder()

	httpx.Error(rec, http.StatusBadGateway, "upstream down")

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error": "upstream down"}`, rec.Body.String())
}
