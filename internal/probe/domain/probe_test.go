package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOutcomeJSON(t *testing.T) {
	t.Parallel()

	ok, err := json.Marshal(Outcome{Success: true, Count: 0, Data: []any{}})
	require.NoError(t, err)
	require.JSONEq(t, `{"success":true,"count":0,"data":[]}`, string(ok))

	failed, err := json.Marshal(Outcome{Error: "API Error: 404 - Not found", Status: 404})
	require.NoError(t, err)
	require.JSONEq(t, `{"success":false,"status":404,"error":"API Error: 404 - Not found"}`, string(failed))
}

func TestOrganizationProbeJSON(t *testing.T) {
	t.Parallel()

	failed, err := json.Marshal(OrganizationProbe{OrganizationID: "a", Error: "boom"})
	require.NoError(t, err)
	require.JSONEq(t, `{"organizationId":"a","error":"boom"}`, string(failed))

	ok, err := json.Marshal(OrganizationProbe{OrganizationID: "b", RecordCount: 0})
	require.NoError(t, err)
	require.JSONEq(t, `{"organizationId":"b","recordCount":0,"data":[]}`, string(ok))
}
