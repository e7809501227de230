package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`

	Cognito struct {
		AppClientId     string `yaml:"appClientId"`
		AppClientSecret string `yaml:"appClientSecret"`
		UserPoolId      string `yaml:"userPoolId"`
		Region          string `yaml:"region"`
	} `yaml:"cognito"`

	Database struct {
		URI string `yaml:"uri"`
	} `yaml:"database"`

	Storage struct {
		Bucket          string `yaml:"bucket"`
		Region          string `yaml:"region"`
		AccessKeyId     string `yaml:"accessKeyId"`
		AccessKeySecret string `yaml:"accessKeySecret"`
		Endpoint        string `yaml:"endpoint"`
		PublicBaseURL   string `yaml:"publicBaseUrl"`
	} `yaml:"storage"`

	Places struct {
		ApiKey string `yaml:"apiKey"`
	} `yaml:"places"`

	JWT struct {
		Secret string `yaml:"secret"`
		Expiry int    `yaml:"expiry"` // token expiry in hours
	} `yaml:"jwt"`
}

// LoadConfig reads the configuration file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal yaml: %w", err)
	}

	return &cfg, nil
}
