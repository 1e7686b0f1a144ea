package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/faas-installer/internal/config"
)

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		modify  func(*config.Config)
		wantErr string
	}{
		{
			name:   "defaults",
			modify: func(*config.Config) {},
		},
		{
			name:   "pinned version",
			modify: func(c *config.Config) { c.Version = "v0.16.4" },
		},
		{
			name:    "empty base name",
			modify:  func(c *config.Config) { c.BaseName = " " },
			wantErr: "base_name is required",
		},
		{
			name:    "base name with separator",
			modify:  func(c *config.Config) { c.BaseName = "../faas-cli" },
			wantErr: "path separators",
		},
		{
			name:    "repo without owner",
			modify:  func(c *config.Config) { c.Repo = "faas-cli" },
			wantErr: "owner/name",
		},
		{
			name:    "repo too deep",
			modify:  func(c *config.Config) { c.Repo = "a/b/c" },
			wantErr: "owner/name",
		},
		{
			name:    "bad version",
			modify:  func(c *config.Config) { c.Version = "next!" },
			wantErr: "version",
		},
		{
			name:    "missing api url",
			modify:  func(c *config.Config) { c.APIURL = "" },
			wantErr: "api_url is required",
		},
		{
			name:    "non http web url",
			modify:  func(c *config.Config) { c.WebURL = "ftp://github.com" },
			wantErr: "http or https",
		},
		{
			name:    "web url without host",
			modify:  func(c *config.Config) { c.WebURL = "https://" },
			wantErr: "no host",
		},
		{
			name:    "negative timeout",
			modify:  func(c *config.Config) { c.Timeout = -time.Second },
			wantErr: "timeout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := config.Defaults()
			tt.modify(cfg)

			err := config.Validate(cfg)
			if tt.wantErr == "" {
				require.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
