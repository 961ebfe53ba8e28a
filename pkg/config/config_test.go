package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"spk/pipeline-cli/pkg/options"
)

func stradr(str string) *string {
	return &str
}

func TestParse(t *testing.T) {
	t.Setenv("SPK_TEST_PAT", "from-env")
	tests := []struct {
		name    string
		content string
		want    Config
		wantErr bool
	}{
		{
			name: "full config",
			content: `
azure_devops:
  org: myorg
  project: myproject
  access_token: ${env:SPK_TEST_PAT}
  hld_repository: https://dev.azure.com/myorg/myproject/_git/hld
  manifest_repository: https://dev.azure.com/myorg/myproject/_git/manifest
`,
			want: Config{AzureDevOps: AzureDevOps{
				Org:                stradr("myorg"),
				Project:            stradr("myproject"),
				AccessToken:        stradr("from-env"),
				HldRepository:      stradr("https://dev.azure.com/myorg/myproject/_git/hld"),
				ManifestRepository: stradr("https://dev.azure.com/myorg/myproject/_git/manifest"),
			}},
		},
		{
			name: "unset keys stay nil",
			content: `
azure_devops:
  org: ""
  access_token_secret: azdo-pat
`,
			want: Config{AzureDevOps: AzureDevOps{
				Org:               stradr(""),
				AccessTokenSecret: stradr("azdo-pat"),
			}},
		},
		{
			name:    "unset environment variable expands to empty",
			content: "azure_devops:\n  access_token: ${env:SPK_TEST_UNSET_VARIABLE}\n",
			want:    Config{AzureDevOps: AzureDevOps{AccessToken: stradr("")}},
		},
		{
			name:    "invalid yaml",
			content: "azure_devops: [",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse([]byte(tt.content))
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Parse() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	got, err := Load(filepath.Join(dir, "missing.yaml"))
	if err != nil {
		t.Fatalf("Load() of missing file error = %v", err)
	}
	if !reflect.DeepEqual(got, Config{}) {
		t.Errorf("Load() of missing file = %+v", got)
	}

	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("azure_devops:\n  project: p\n"), 0600); err != nil {
		t.Fatal(err)
	}
	got, err = Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got.AzureDevOps.Project == nil || *got.AzureDevOps.Project != "p" {
		t.Errorf("Load() = %+v", got)
	}
}

func TestConfig_Source(t *testing.T) {
	config := Config{AzureDevOps: AzureDevOps{Org: stradr("o"), HldRepository: stradr("https://h")}}
	got := config.Source(map[string]string{
		"orgName":             "org",
		"personalAccessToken": "access_token",
		"hldUrl":              "hld_repository",
		"unknown":             "no_such_key",
	})
	want := options.MapSource{
		"orgName":             stradr("o"),
		"personalAccessToken": nil,
		"hldUrl":              stradr("https://h"),
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Source() = %v, want %v", got, want)
	}
	if _, ok := got.Lookup("personalAccessToken"); ok {
		t.Error("unset config key reported as set")
	}
}

func TestReadEnvironment(t *testing.T) {
	t.Setenv("SPK_CONFIG_PATH", "/tmp/spk.yaml")
	t.Setenv("SPK_LOG_LEVEL", "debug")
	env, err := ReadEnvironment()
	if err != nil {
		t.Fatalf("ReadEnvironment() error = %v", err)
	}
	if env.ConfigPath != "/tmp/spk.yaml" || env.LogLevel != "debug" || env.K8SNamespace == "" {
		t.Errorf("ReadEnvironment() = %+v", env)
	}
}

func TestReadEnvironment_DefaultConfigPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("SPK_CONFIG_PATH", "")
	env, err := ReadEnvironment()
	if err != nil {
		t.Fatalf("ReadEnvironment() error = %v", err)
	}
	if want := filepath.Join(home, ".spk", "config.yaml"); env.ConfigPath != want {
		t.Errorf("ConfigPath = %s, want %s", env.ConfigPath, want)
	}
}
