package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"rgbfaucet/contexts/asset-distribution/faucet-service/domain/entities"
)

// Config is centralized process configuration.
// Keep infra values here and pass typed config into builders.
type Config struct {
	ServiceName string
	HTTPPort    string
	PostgresDSN string

	UserAPIKey     string
	OperatorAPIKey string

	TransportEndpoints []string
	BatchLimit         int
	CycleInterval      time.Duration
	GroupsFile         string
}

func Load() (Config, error) {
	service := os.Getenv("SERVICE_NAME")
	if service == "" {
		service = "rgbfaucet"
	}

	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080"
	}

	var endpoints []string
	for _, value := range strings.Split(os.Getenv("TRANSPORT_ENDPOINTS"), ",") {
		value = strings.TrimSpace(value)
		if value != "" {
			endpoints = append(endpoints, value)
		}
	}
	if len(endpoints) == 0 {
		endpoints = []string{"rpc://localhost:3000/json-rpc"}
	}

	groupsFile := os.Getenv("ASSET_GROUPS_FILE")
	if groupsFile == "" {
		groupsFile = "asset_groups.yaml"
	}

	return Config{
		ServiceName: service,
		HTTPPort:    port,
		PostgresDSN: os.Getenv("POSTGRES_DSN"),

		UserAPIKey:     os.Getenv("API_KEY"),
		OperatorAPIKey: os.Getenv("API_KEY_OPERATOR"),

		TransportEndpoints: endpoints,
		BatchLimit:         envInt("BATCH_LIMIT", 25),
		CycleInterval:      envDuration("CYCLE_INTERVAL", 10*time.Second),
		GroupsFile:         groupsFile,
	}, nil
}

// assetGroupsFile is the on-disk shape of the asset group configuration.
type assetGroupsFile struct {
	Groups map[string]assetGroupEntry `yaml:"groups"`
}

type assetGroupEntry struct {
	AssetID           string `yaml:"asset_id"`
	AmountPerRequest  uint64 `yaml:"amount_per_request"`
	RequestsPerWallet int    `yaml:"requests_per_wallet"`
}

// LoadGroups reads the asset group configuration from a YAML file.
// Every group must name an asset and carry positive amount and quota values.
func LoadGroups(path string) (map[string]entities.AssetGroup, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read asset groups file: %w", err)
	}
	return ParseGroups(raw)
}

// ParseGroups decodes asset group YAML already held in memory.
func ParseGroups(raw []byte) (map[string]entities.AssetGroup, error) {
	var parsed assetGroupsFile
	if err := yaml.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("parse asset groups: %w", err)
	}
	if len(parsed.Groups) == 0 {
		return nil, fmt.Errorf("asset group configuration defines no groups")
	}

	groups := make(map[string]entities.AssetGroup, len(parsed.Groups))
	for name, entry := range parsed.Groups {
		trimmed := strings.TrimSpace(name)
		if trimmed == "" {
			return nil, fmt.Errorf("asset group configuration contains a group with an empty name")
		}
		if strings.TrimSpace(entry.AssetID) == "" {
			return nil, fmt.Errorf("asset group %q is missing an asset_id", trimmed)
		}
		if entry.AmountPerRequest == 0 {
			return nil, fmt.Errorf("asset group %q must have a positive amount_per_request", trimmed)
		}
		if entry.RequestsPerWallet <= 0 {
			return nil, fmt.Errorf("asset group %q must have a positive requests_per_wallet", trimmed)
		}
		groups[trimmed] = entities.AssetGroup{
			AssetID:           strings.TrimSpace(entry.AssetID),
			AmountPerRequest:  entry.AmountPerRequest,
			RequestsPerWallet: entry.RequestsPerWallet,
		}
	}
	return groups, nil
}

func envInt(name string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}

func envDuration(name string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	value, err := time.ParseDuration(raw)
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}
