package usecase

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepairArrayClean(t *testing.T) {
	t.Parallel()

	var items []reviewItem
	status := repairArray(`[{"articleID":"a","compatibility":70}]`, &items)

	assert.Equal(t, ParseClean, status)
	require.Len(t, items, 1)
	assert.Equal(t, "a", items[0].ArticleID)
	assert.Equal(t, 70, items[0].Compatibility.value)
}

func TestRepairArrayWrapsBareObject(t *testing.T) {
	t.Parallel()

	var items []reviewItem
	status := repairArray(`{"articleID":"solo","compatibility":40}`, &items)

	assert.Equal(t, ParseRepaired, status)
	require.Len(t, items, 1)
	assert.Equal(t, "solo", items[0].ArticleID)
}

func TestRepairArrayExtractsSpansFromProse(t *testing.T) {
	t.Parallel()

	reply := `Here are the scored articles:
{"articleID":"a","compatibility":10},
{"articleID":"b","compatibility":20}
Let me know if you need anything else.`

	var items []reviewItem
	status := repairArray(reply, &items)

	assert.Equal(t, ParseRepaired, status)
	require.Len(t, items, 2)
	assert.Equal(t, "b", items[1].ArticleID)
}

func TestRepairArrayStripsFence(t *testing.T) {
	t.Parallel()

	reply := "```json\n[{\"articleID\":\"fenced\"}]\n```"

	var items []reviewItem
	status := repairArray(reply, &items)

	assert.Equal(t, ParseClean, status)
	require.Len(t, items, 1)
	assert.Equal(t, "fenced", items[0].ArticleID)
}

func TestRepairArrayFailed(t *testing.T) {
	t.Parallel()

	var items []reviewItem
	assert.Equal(t, ParseFailed, repairArray("I cannot help with that.", &items))
	assert.Empty(t, items)
}

func TestRepairObjectClean(t *testing.T) {
	t.Parallel()

	var parsed analysisReply
	status := repairObject(`{"analysis_compatibility":85,"analysis_company":"Aldi"}`, &parsed)

	assert.Equal(t, ParseClean, status)
	assert.True(t, parsed.Compatibility.ok)
	assert.Equal(t, 85, parsed.Compatibility.value)
	assert.Equal(t, "Aldi", parsed.Company)
}

func TestRepairObjectFromFence(t *testing.T) {
	t.Parallel()

	reply := "Sure, here is the analysis:\n```json\n{\"analysis_summary\":\"new store\"}\n```"

	var parsed analysisReply
	status := repairObject(reply, &parsed)

	assert.Equal(t, ParseRepaired, status)
	assert.Equal(t, "new store", parsed.Summary)
}

func TestRepairObjectFromBraceSpan(t *testing.T) {
	t.Parallel()

	reply := `The analysis follows. {"analysis_location":"Austin, TX"} Hope this helps.`

	var parsed analysisReply
	status := repairObject(reply, &parsed)

	assert.Equal(t, ParseRepaired, status)
	assert.Equal(t, "Austin, TX", parsed.Location)
}

func TestRepairObjectFailed(t *testing.T) {
	t.Parallel()

	var parsed analysisReply
	assert.Equal(t, ParseFailed, repairObject("no json here", &parsed))
}

func TestLooseIntVariants(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		raw   string
		want  int
		isSet bool
	}{
		{"number", `{"compatibility": 75}`, 75, true},
		{"numeric string", `{"compatibility": "60"}`, 60, true},
		{"float", `{"compatibility": 82.4}`, 82, true},
		{"junk string", `{"compatibility": "high"}`, 0, false},
		{"null", `{"compatibility": null}`, 0, false},
		{"missing", `{}`, 0, false},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var item reviewItem
			require.NoError(t, json.Unmarshal([]byte(tc.raw), &item))
			assert.Equal(t, tc.isSet, item.Compatibility.ok)
			assert.Equal(t, tc.want, item.Compatibility.value)
		})
	}
}
