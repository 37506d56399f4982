package handlers

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bliki-feed-api/core/errors"
)

func TestToHumaError(t *testing.T) {
	tests := []struct {
		name           string
		input          error
		expectedStatus int
		expectedCode   string
		expectedInMsg  string
	}{
		{
			name:           "FeedUnavailableError returns 404",
			input:          &errors.FeedUnavailableError{},
			expectedStatus: 404,
			expectedCode:   "feed-unavailable",
			expectedInMsg:  "Syndication feeds are not available",
		},
		{
			name:           "InvalidFeedFormatError returns 400",
			input:          &errors.InvalidFeedFormatError{Format: "rdf"},
			expectedStatus: 400,
			expectedCode:   "feed-invalid",
			expectedInMsg:  `Invalid subscription feed type: "rdf"`,
		},
		{
			name:           "wrapped FeedUnavailableError returns 404",
			input:          errors.WrapError(&errors.FeedUnavailableError{}, "handle"),
			expectedStatus: 404,
			expectedCode:   "feed-unavailable",
			expectedInMsg:  "Syndication feeds are not available",
		},
		{
			name:           "ValidationError returns 400",
			input:          &errors.ValidationError{Field: "from", Message: "invalid timestamp"},
			expectedStatus: 400,
			expectedCode:   "badparams",
			expectedInMsg:  "field 'from': invalid timestamp",
		},
		{
			name:           "wrapped ValidationError returns 400",
			input:          fmt.Errorf("resolve: %w", &errors.ValidationError{Field: "days", Message: "must be at least 1"}),
			expectedStatus: 400,
			expectedCode:   "badparams",
			expectedInMsg:  "field 'days': must be at least 1",
		},
		{
			name:           "unknown error returns 500",
			input:          fmt.Errorf("database is locked"),
			expectedStatus: 500,
			expectedCode:   CodeInternal,
			expectedInMsg:  "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := toHumaError(tt.input)
			require.Error(t, result)

			var se huma.StatusError
			require.ErrorAs(t, result, &se)
			assert.Equal(t, tt.expectedStatus, se.GetStatus())
			assert.Contains(t, result.Error(), tt.expectedInMsg)

			apiErr, ok := result.(*APIError)
			require.True(t, ok)
			assert.Equal(t, tt.expectedCode, apiErr.Code)
		})
	}
}

func TestToHumaError_Nil(t *testing.T) {
	assert.NoError(t, toHumaError(nil))
}

func TestAPIError_JSONBody(t *testing.T) {
	err := toHumaError(&errors.FeedUnavailableError{})

	data, marshalErr := json.Marshal(err)
	require.NoError(t, marshalErr)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &body))
	assert.Equal(t, "feed-unavailable", body["code"])
	assert.Equal(t, float64(404), body["status"])
	assert.Equal(t, "Syndication feeds are not available", body["detail"])
}
