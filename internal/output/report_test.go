package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/MyCarrier-DevOps/go-rebaseplan/internal/plan"
	"github.com/MyCarrier-DevOps/go-rebaseplan/internal/rebase"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func testPlan() *plan.Plan {
	return plan.New("main", "HEAD", []rebase.EditableCommit{
		{OID: "a1", ShortID: "a1", Summary: "First", Action: rebase.ActionPick},
		{OID: "b2", ShortID: "b2", Summary: "Second", Action: rebase.ActionSquash},
		{OID: "c3", ShortID: "c3", Summary: "Third", Action: rebase.ActionDrop},
	})
}

func TestNewReport(t *testing.T) {
	r := NewReport(testPlan())
	require.Len(t, r.Preview, 1)
	require.Equal(t, rebase.Stats{Kept: 1, Squashed: 1, Dropped: 1}, r.Stats)
	require.False(t, r.HasErrors)
	require.True(t, r.CanExecute)
}

func TestWriteReport_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, NewReport(testPlan()), "json"))

	var parsed map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &parsed))
	require.Equal(t, false, parsed["hasErrors"])
	require.Equal(t, true, parsed["canExecute"])
	require.NotContains(t, parsed, "unmatched")

	stats := parsed["stats"].(map[string]interface{})
	require.Equal(t, float64(1), stats["squashed"])
}

func TestWriteReport_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, NewReport(testPlan()), "yaml"))

	var parsed Report
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &parsed))
	require.Equal(t, NewReport(testPlan()), parsed)
}

func TestWriteReport_Text(t *testing.T) {
	r := NewReport(testPlan())
	r.Unmatched = []string{"d4"}

	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, r, ""))
	out := buf.String()
	require.Contains(t, out, "  a1  First\n")
	require.Contains(t, out, "warning: d4 has no autosquash target\n")
	require.Contains(t, out, "1 kept, 1 squashed, 1 dropped, 0 reworded (3 commits)\n")
}

func TestWriteReport_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	err := WriteReport(&buf, Report{}, "xml")
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown output format")
}

func TestWriteTodo(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTodo(&buf, "pick a1 First"))
	require.Equal(t, "pick a1 First\n", buf.String())

	buf.Reset()
	require.NoError(t, WriteTodo(&buf, ""))
	require.Empty(t, buf.String())
}
