package config_test

import (
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/ferry/pkg/cli/config"
)

func TestOwnerRepo(t *testing.T) {
	cfg := config.GitHub{Repo: "m-mizutani/ferry"}
	owner, repo, err := cfg.OwnerRepo()
	gt.NoError(t, err)
	gt.Value(t, owner).Equal("m-mizutani")
	gt.Value(t, repo).Equal("ferry")
}

func TestOwnerRepoInvalid(t *testing.T) {
	cases := []struct {
		name string
		repo string
	}{
		{"empty", ""},
		{"no slash", "ferry"},
		{"empty owner", "/ferry"},
		{"empty repo", "m-mizutani/"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.GitHub{Repo: tc.repo}
			_, _, err := cfg.OwnerRepo()
			gt.Error(t, err)
		})
	}
}
