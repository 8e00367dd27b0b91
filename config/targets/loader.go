package targets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/aws/constructs-go/constructs/v10"
	"gopkg.in/yaml.v3"

	infraCfg "github.com/trufnetwork/tznode-dns/config"
)

// LoadConfig reads the targets file at filePath. ".toml" files are decoded as TOML,
// anything else as YAML. A missing file is not an error: it yields a nil config.
func LoadConfig(filePath string) (*TargetsConfig, error) {
	raw, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("error reading targets file %s: %w", filePath, err)
	}

	var cfg TargetsConfig
	if strings.EqualFold(filepath.Ext(filePath), ".toml") {
		if _, err := toml.Decode(string(raw), &cfg); err != nil {
			return nil, fmt.Errorf("error decoding targets TOML from %s: %w", filePath, err)
		}
	} else {
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return nil, fmt.Errorf("error unmarshalling targets YAML from %s: %w", filePath, err)
		}
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid targets in %s: %w", filePath, err)
	}
	return &cfg, nil
}

// Validate checks every target of every stack suffix.
func Validate(cfg TargetsConfig) error {
	for suffix, st := range cfg {
		if err := infraCfg.Validator().Struct(st); err != nil {
			return fmt.Errorf("stack %q: %w", suffix, err)
		}
	}
	return nil
}

// ForSuffix returns the targets configured for suffix, nil when there are none.
func ForSuffix(cfg *TargetsConfig, suffix string) []Target {
	if cfg == nil {
		return nil
	}
	if st, ok := (*cfg)[suffix]; ok {
		return st.Targets
	}
	return nil
}

// GetTargetsForStack returns the targets of the current stack suffix (see infraCfg.StackSuffix).
func GetTargetsForStack(scope constructs.Construct, cfg *TargetsConfig) []Target {
	return ForSuffix(cfg, infraCfg.StackSuffix(scope))
}
