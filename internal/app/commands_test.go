package app

import (
	"testing"

	"github.com/keketcl/umanager/internal/config"
)

func TestApplySetting(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		wantErr bool
		check   func(cfg *config.Config) bool
	}{
		{
			name: "poll interval", key: "poll-interval", value: "5",
			check: func(cfg *config.Config) bool { return cfg.PollIntervalSeconds == 5 },
		},
		{
			name: "poll interval rejects zero", key: "poll-interval", value: "0",
			wantErr: true,
		},
		{
			name: "max depth", key: "max-depth", value: "3",
			check: func(cfg *config.Config) bool { return cfg.MaxAncestorDepth == 3 },
		},
		{
			name: "show hidden", key: "show-hidden", value: "true",
			check: func(cfg *config.Config) bool { return cfg.ShowHiddenFiles },
		},
		{
			name: "show hidden rejects junk", key: "show-hidden", value: "maybe",
			wantErr: true,
		},
		{
			name: "browse root", key: "browse-root", value: `E:\`,
			check: func(cfg *config.Config) bool { return cfg.DefaultBrowseRoot == `E:\` },
		},
		{
			name: "unknown key", key: "colour", value: "blue",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{}
			err := applySetting(cfg, tt.key, tt.value)
			if (err != nil) != tt.wantErr {
				t.Fatalf("applySetting(%q, %q) error = %v, wantErr %t", tt.key, tt.value, err, tt.wantErr)
			}
			if tt.check != nil && !tt.check(cfg) {
				t.Errorf("applySetting(%q, %q) did not apply the value", tt.key, tt.value)
			}
		})
	}
}
