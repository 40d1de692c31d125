package remote

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRepoName(t *testing.T) {
	tests := []struct {
		name    string
		repo    string
		wantErr bool
	}{
		{name: "valid", repo: "vercel-labs/agent-skills"},
		{name: "empty", repo: "", wantErr: true},
		{name: "no slash", repo: "skills", wantErr: true},
		{name: "empty owner", repo: "/skills", wantErr: true},
		{name: "empty repo", repo: "owner/", wantErr: true},
		{name: "nested path", repo: "owner/repo/extra", wantErr: true},
		{name: "dot dot", repo: "../repo", wantErr: true},
		{name: "whitespace", repo: "owner/my repo", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRepoName(tt.repo)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParseRepoRef(t *testing.T) {
	repo, ref, err := ParseRepoRef("owner/repo")
	require.NoError(t, err)
	assert.Equal(t, "owner/repo", repo)
	assert.Empty(t, ref)

	repo, ref, err = ParseRepoRef("owner/repo@v1.2.0")
	require.NoError(t, err)
	assert.Equal(t, "owner/repo", repo)
	assert.Equal(t, "v1.2.0", ref)

	_, _, err = ParseRepoRef("owner/repo@")
	assert.Error(t, err)

	_, _, err = ParseRepoRef("repo@main")
	assert.Error(t, err)
}

func TestRepoCacheDir(t *testing.T) {
	assert.Equal(t, filepath.Join("cache", "skills", "owner", "repo"), RepoCacheDir(filepath.Join("cache", "skills"), "owner/repo"))
	assert.Equal(t, "https://github.com/owner/repo.git", GitHubURL("owner/repo"))
}
