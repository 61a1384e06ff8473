package utils

import (
	"fmt"
	"os"
	"path"

	"gopkg.in/yaml.v3"

	"github.com/wheelhouse-trading/wheelhouse/src/eventmodels"
)

// LoadDashboardConfig reads dashboard-config.yaml from the project source
// tree.
func LoadDashboardConfig(projectsDir string) (*eventmodels.DashboardConfigYAML, error) {
	configInDir := path.Join(projectsDir, "wheelhouse", "src", "dashboard-config.yaml")
	data, err := os.ReadFile(configInDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read dashboard config: %v", err)
	}

	var config eventmodels.DashboardConfigYAML
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal dashboard config: %v", err)
	}

	if config.BackendURL == "" {
		config.BackendURL = os.Getenv("DASHBOARD_BACKEND_URL")
	}

	if config.BackendURL == "" {
		return nil, fmt.Errorf("dashboard config: backend_url is required")
	}

	return &config, nil
}
