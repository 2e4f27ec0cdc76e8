package proto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCalculateRequestFieldNames(t *testing.T) {
	b, err := json.Marshal(CalculateRequest{
		Image:      "data:image/png;base64,AAAA",
		DictOfVars: map[string]string{"x": "2"},
	})
	require.NoError(t, err)
	require.JSONEq(t, `{"image":"data:image/png;base64,AAAA","dict_of_vars":{"x":"2"}}`, string(b))
}

func TestCalculateResponseDecode(t *testing.T) {
	var resp CalculateResponse
	require.NoError(t, json.Unmarshal([]byte(`{
		"status": "success",
		"message": "Image processed",
		"data": [
			{"expr": "x", "result": "4", "assign": true},
			{"expr": "2 + 2", "result": "4", "assign": false},
			{"expr": "x", "result": "5", "assign": true}
		]
	}`), &resp))

	require.Equal(t, "success", resp.Status)
	require.Equal(t, "Image processed", resp.Message)
	require.Len(t, resp.Data, 3)
	require.Equal(t, map[string]string{"x": "5"}, resp.Assignments())
}

func TestCalculateResponseNullData(t *testing.T) {
	var resp CalculateResponse
	require.NoError(t, json.Unmarshal([]byte(`{"status":"success","message":"","data":null}`), &resp))
	require.Empty(t, resp.Data)
	require.Empty(t, resp.Assignments())

	var nilResp *CalculateResponse
	require.Empty(t, nilResp.Assignments())
}
