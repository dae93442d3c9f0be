package common

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v2"
)

// Deployment kinds the portal knows how to connect to.
const (
	DeploymentKindSQLite          = "sqlite"
	DeploymentKindDirectoryExport = "directory-export"
)

type DeploymentConfig struct {
	Name string `yaml:"name"`
	Kind string `yaml:"kind"`
	Path string `yaml:"path"`
}

type DeploymentsConfig struct {
	Deployments []DeploymentConfig `yaml:"deployments"`
}

// LoadDeployments reads the deployment roster the portal aggregates over.
func LoadDeployments(deploymentsFile string) ([]DeploymentConfig, error) {
	var deploymentsPath string
	if filepath.IsAbs(deploymentsFile) {
		deploymentsPath = deploymentsFile
	} else {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		deploymentsPath = filepath.Join(wd, deploymentsFile)
	}

	data, err := os.ReadFile(deploymentsPath)
	if err != nil {
		return nil, fmt.Errorf("unable to read %s: %w", deploymentsFile, err)
	}

	var config DeploymentsConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("unable to parse %s: %w", deploymentsFile, err)
	}

	for i, dep := range config.Deployments {
		if dep.Name == "" {
			return nil, fmt.Errorf("deployment at index %d missing name", i)
		}
		if dep.Kind == "" {
			return nil, fmt.Errorf("deployment at index %d missing kind", i)
		}
		if dep.Path == "" {
			return nil, fmt.Errorf("deployment at index %d missing path", i)
		}
	}

	return config.Deployments, nil
}
