package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Fix the Login Bug!", "fix-the-login-bug"},
		{"  spaces   everywhere  ", "spaces-everywhere"},
		{"already-a-slug", "already-a-slug"},
		{"___", ""},
		{"Version 2.0 release", "version-2-0-release"},
	}

	for _, tc := range cases {
		require.Equal(t, tc.want, Slugify(tc.in), "input: %q", tc.in)
	}
}

func TestGenerateBranchName(t *testing.T) {
	branch, err := GenerateBranchName(42, "Fix the Login Bug!")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(branch, "task-42-fix-the-login-bug-"), branch)

	// The random suffix makes repeated calls unique.
	other, err := GenerateBranchName(42, "Fix the Login Bug!")
	require.NoError(t, err)
	require.NotEqual(t, branch, other)
}

func TestGenerateBranchName_EmptyTitle(t *testing.T) {
	branch, err := GenerateBranchName(7, "!!!")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(branch, "task-7-task-"), branch)
}
