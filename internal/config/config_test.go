package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/y-kondo/retento/internal/testutil"
)

func TestConfigLoader_Load(t *testing.T) {
	tests := []struct {
		name              string
		configContent     string
		env               map[string]string
		wantErr           bool
		want              *Config
		wantErrorContains []string
	}{
		{
			name: "valid config file with custom values",
			configContent: `storage:
  backend: yaml
  yaml:
    items_file: custom/items.yml
review:
  question_count: 10
  owner_id: alice
`,
			want: &Config{
				Storage: Storage{
					Backend: "yaml",
					Yaml: Yaml{
						ItemsFile: "custom/items.yml",
					},
					MySQL: Database{
						Host:     "localhost",
						Port:     3306,
						Database: "retento",
						Username: "user",
					},
				},
				OpenAI: OpenAI{
					Model:            "gpt-4o-mini",
					MaxRetryAttempts: 3,
				},
				Review: Review{
					QuestionCount: 10,
					OwnerID:       "alice",
				},
			},
		},
		{
			name:          "missing config file uses defaults",
			configContent: "",
			want: &Config{
				Storage: Storage{
					Backend: "yaml",
					Yaml: Yaml{
						ItemsFile: filepath.Join("items", "items.yml"),
					},
					MySQL: Database{
						Host:     "localhost",
						Port:     3306,
						Database: "retento",
						Username: "user",
					},
				},
				OpenAI: OpenAI{
					Model:            "gpt-4o-mini",
					MaxRetryAttempts: 3,
				},
				Review: Review{
					QuestionCount: 5,
					OwnerID:       "local",
				},
			},
		},
		{
			name: "mysql backend with environment password",
			configContent: `storage:
  backend: mysql
  mysql:
    host: db.example.com
    port: 3307
    database: retento
    username: admin
`,
			env: map[string]string{
				"DB_PASSWORD": "secret",
			},
			want: &Config{
				Storage: Storage{
					Backend: "mysql",
					Yaml: Yaml{
						ItemsFile: filepath.Join("items", "items.yml"),
					},
					MySQL: Database{
						Host:     "db.example.com",
						Port:     3307,
						Database: "retento",
						Username: "admin",
						Password: "secret",
					},
				},
				OpenAI: OpenAI{
					Model:            "gpt-4o-mini",
					MaxRetryAttempts: 3,
				},
				Review: Review{
					QuestionCount: 5,
					OwnerID:       "local",
				},
			},
		},
		{
			name: "invalid storage backend",
			configContent: `storage:
  backend: sqlite
`,
			wantErr:           true,
			wantErrorContains: []string{"invalid configuration", "backend"},
		},
		{
			name: "question count out of range",
			configContent: `review:
  question_count: 50
`,
			wantErr:           true,
			wantErrorContains: []string{"invalid configuration", "question_count"},
		},
		{
			name:          "malformed yaml",
			configContent: "storage: [unclosed",
			wantErr:       true,
			wantErrorContains: []string{
				"configuration file found but could not be read",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for key, value := range tt.env {
				t.Setenv(key, value)
			}

			tempDir := t.TempDir()
			var configPath string
			if tt.configContent != "" {
				configPath = filepath.Join(tempDir, "config.yml")
				err := os.WriteFile(configPath, []byte(tt.configContent), 0644)
				require.NoError(t, err)
			} else {
				// No config file: let viper search the (empty) working directory.
				t.Chdir(tempDir)
			}

			loader, err := NewConfigLoader(configPath)
			require.NoError(t, err)

			got, err := loader.Load()
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)
				for _, wantMsg := range tt.wantErrorContains {
					assert.Contains(t, err.Error(), wantMsg)
				}
				return
			}

			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConfigLoader_Load_generatedFixture(t *testing.T) {
	tempDir := t.TempDir()
	configPath := testutil.SetupTestConfigWithAPIKey(t, tempDir)

	loader, err := NewConfigLoader(configPath)
	require.NoError(t, err)

	cfg, err := loader.Load()
	require.NoError(t, err)
	assert.Equal(t, "yaml", cfg.Storage.Backend)
	assert.Equal(t, filepath.Join(tempDir, "items", "items.yml"), cfg.Storage.Yaml.ItemsFile)
	assert.Equal(t, "fake-key-for-testing", cfg.OpenAI.APIKey)
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAI.Model)
}
