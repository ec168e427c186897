package cmd

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"docreq.dev/pkg/docreq/internal/domain"
	m "docreq.dev/pkg/docreq/internal/model"
)

func TestListCmd_RendersStatsTable(t *testing.T) {
	workflow := swapWorkflow(t)
	cmd, out, _ := newTestCmd(t, newListCmd())

	workflow.On("Estimate", mock.Anything,
		mock.MatchedBy(func(args domain.CheckArgs) bool {
			return len(args.Paths) == 1 && args.Paths[0] == m.Path("./pkg")
		})).Return([]m.FileStat{
		{Path: "pkg/a.go", Constructs: 5, Missing: 2},
		{Path: "pkg/b.go", Constructs: 3, Missing: 0},
	}, nil)

	cmd.SetArgs([]string{"list", "./pkg"})
	err := cmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, out.String(), "pkg/a.go")
	assert.Contains(t, out.String(), "pkg/b.go")
	assert.Contains(t, out.String(), "Total Files 2")
	workflow.AssertExpectations(t)
}

func TestListCmd_FatalErrorExitsTwo(t *testing.T) {
	workflow := swapWorkflow(t)
	cmd, _, _ := newTestCmd(t, newListCmd())

	workflow.On("Estimate", mock.Anything, mock.Anything).
		Return(nil, errors.New("file not found: nope"))

	cmd.SetArgs([]string{"list", "nope"})
	err := cmd.Execute()

	assert.Equal(t, 2, exitCode(t, err))
}

func TestListCmd_InvalidExcludeExitsTwo(t *testing.T) {
	swapWorkflow(t)
	cmd, _, _ := newTestCmd(t, newListCmd())

	cmd.SetArgs([]string{"list", "--exclude", "(["})
	err := cmd.Execute()

	assert.Equal(t, 2, exitCode(t, err))
	assert.Contains(t, err.Error(), "invalid --exclude pattern")
}
