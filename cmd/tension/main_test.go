package main

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/tension-core/internal/application/handlers"
	"github.com/ersonp/tension-core/internal/domain/entities"
	derrors "github.com/ersonp/tension-core/internal/domain/errors"
	"github.com/ersonp/tension-core/internal/domain/services"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("COAIAN_CURRENT_CHART", "")
	t.Setenv("TENSION_STORE_BACKEND", "")

	cmd := newRootCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return buf.String(), err
}

func TestCLI_ChartLifecycle(t *testing.T) {
	mem := filepath.Join(t.TempDir(), "memory.jsonl")

	out, err := execute(t, "-M", mem, "--json", "create",
		"-o", "A published recipe website",
		"-r", "Twelve recipes written in a notebook",
		"-d", "2099-06-01",
		"-s", "Choose a host",
	)
	require.NoError(t, err, out)

	var created services.ChartResult
	require.NoError(t, json.Unmarshal([]byte(out), &created))
	chartID := created.ChartID
	require.NotEmpty(t, chartID)
	step := entities.ActionStepName(chartID, 1)

	out, err = execute(t, "-M", mem, "list")
	require.NoError(t, err)
	assert.Contains(t, out, chartID)
	assert.Contains(t, out, "A published recipe website")
	assert.Contains(t, out, "0% (0/1 action steps)")

	out, err = execute(t, "-M", mem, "-C", chartID, "view")
	require.NoError(t, err)
	assert.Contains(t, out, "Twelve recipes written in a notebook")
	assert.Contains(t, out, markPending+" "+step)

	out, err = execute(t, "-M", mem, "-C", chartID, "update-reality", "Domain name registered")
	require.NoError(t, err)
	assert.Contains(t, out, "Domain name registered")

	out, err = execute(t, "-M", mem, "complete", step)
	require.NoError(t, err)
	assert.Contains(t, out, "Completed "+step)

	out, err = execute(t, "-M", mem, "progress", chartID)
	require.NoError(t, err)
	assert.Contains(t, out, "100% (1/1 action steps)")

	out, err = execute(t, "-M", mem, "--json", "stats")
	require.NoError(t, err)
	var stats services.Stats
	require.NoError(t, json.Unmarshal([]byte(out), &stats))
	assert.Equal(t, 1, stats.TotalCharts)
	assert.Equal(t, 1, stats.CompletedActions)
}

func TestCLI_AddActionAndRemove(t *testing.T) {
	mem := filepath.Join(t.TempDir(), "memory.jsonl")

	out, err := execute(t, "-M", mem, "--json", "create",
		"-o", "A published recipe website",
		"-r", "Twelve recipes written in a notebook",
		"-d", "2099-06-01",
	)
	require.NoError(t, err, out)
	var created services.ChartResult
	require.NoError(t, json.Unmarshal([]byte(out), &created))

	out, err = execute(t, "-M", mem, "-C", created.ChartID, "--json", "add-action", "Photograph each dish",
		"-r", "Phone camera only, no lighting")
	require.NoError(t, err, out)
	var added services.ActionStepResult
	require.NoError(t, json.Unmarshal([]byte(out), &added))
	assert.Equal(t, entities.OutcomeName(added.ChartID), added.ActionStepName)

	out, err = execute(t, "-M", mem, "--json", "list")
	require.NoError(t, err)
	var list handlers.ListResult
	require.NoError(t, json.Unmarshal([]byte(out), &list))
	require.Len(t, list.Charts, 2)
	assert.Equal(t, created.ChartID, list.Charts[1].ParentChart)

	_, err = execute(t, "-M", mem, "-C", created.ChartID, "remove-action", added.ActionStepName)
	require.NoError(t, err)

	out, err = execute(t, "-M", mem, "--json", "list")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &list))
	assert.Len(t, list.Charts, 1)
}

func TestCLI_Errors(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		check func(error) bool
		want  string
	}{
		{
			name:  "problem solving outcome",
			args:  []string{"create", "-o", "Fix my diet", "-r", "Eat out most days", "-d", "2099-06-01"},
			check: derrors.IsPrincipleViolation,
			want:  "CREATIVE ORIENTATION REQUIRED",
		},
		{
			name:  "missing due date",
			args:  []string{"create", "-o", "A home garden", "-r", "Bare yard"},
			check: derrors.IsValidation,
			want:  "dueDate",
		},
		{
			name:  "unknown chart",
			args:  []string{"progress", "chart_404"},
			check: derrors.IsNotFound,
			want:  "chart_404",
		},
		{
			name:  "no chart selected",
			args:  []string{"view"},
			check: func(err error) bool { return err != nil },
			want:  "chart id is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mem := filepath.Join(t.TempDir(), "memory.jsonl")

			_, err := execute(t, append([]string{"-M", mem}, tt.args...)...)

			require.Error(t, err)
			assert.True(t, tt.check(err), "unexpected error type: %v", err)
			assert.Contains(t, derrors.Message(err), tt.want)
		})
	}
}
