// Copyright 2025 Naren Yellavula
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const configFileName = ".pairtree.yaml"

type DisplayConfig struct {
	Color        bool `yaml:"color"`
	ShowDistance bool `yaml:"show_distance"`
	ShowSummary  bool `yaml:"show_summary"`
}

type LoaderConfig struct {
	ShowProgress      bool `yaml:"show_progress"`
	BloomFilterSize   uint `yaml:"bloom_filter_size"`
	BloomFilterHashes uint `yaml:"bloom_filter_hashes"`
}

type UIConfig struct {
	WordWrap int `yaml:"word_wrap"`
}

type Config struct {
	Display DisplayConfig `yaml:"display"`
	Loader  LoaderConfig  `yaml:"loader"`
	UI      UIConfig      `yaml:"ui"`
}

var defaultConfig = Config{
	Display: DisplayConfig{
		Color:        true,
		ShowDistance: false,
		ShowSummary:  false,
	},
	Loader: LoaderConfig{
		ShowProgress:      true,
		BloomFilterSize:   1 << 20,
		BloomFilterHashes: 5,
	},
	UI: UIConfig{
		WordWrap: 72,
	},
}

// LoadConfig reads ~/.pairtree.yaml. Any problem falls back to the defaults.
func LoadConfig() (*Config, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return defaultConfigCopy(), nil
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return defaultConfigCopy(), nil
	}

	config, err := loadConfigFile(configPath)
	if err != nil {
		log.Printf("Ignoring %s: %v", configPath, err)
		return defaultConfigCopy(), nil
	}
	return config, nil
}

// loadConfigFile decodes path on top of the defaults, so keys missing from
// the file keep their default values.
func loadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %v", err)
	}

	config := defaultConfigCopy()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %v", err)
	}

	if config.Loader.BloomFilterSize == 0 {
		config.Loader.BloomFilterSize = defaultConfig.Loader.BloomFilterSize
	}
	if config.Loader.BloomFilterHashes == 0 {
		config.Loader.BloomFilterHashes = defaultConfig.Loader.BloomFilterHashes
	}
	if config.UI.WordWrap <= 0 {
		config.UI.WordWrap = defaultConfig.UI.WordWrap
	}
	return config, nil
}

func defaultConfigCopy() *Config {
	config := defaultConfig
	return &config
}

func getConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, configFileName), nil
}

func writeConfigFile(path string, config *Config) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %v", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %v", err)
	}
	return nil
}

func displaySettings() {
	configPath, err := getConfigPath()
	if err != nil {
		fmt.Printf("❌ Failed to get config path: %v\n", err)
		return
	}

	config, _ := LoadConfig()

	configExists := true
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		configExists = false
		fmt.Printf("📝 Configuration file not found. Creating default configuration...\n\n")

		if err := writeConfigFile(configPath, &defaultConfig); err != nil {
			fmt.Printf("❌ Failed to create default config file: %v\n", err)
			return
		}
		fmt.Printf("✅ Created default configuration at: %s\n\n", configPath)
	}

	fmt.Printf("🔧 Pairtree Configuration Settings\n")
	fmt.Printf("═══════════════════════════════════\n\n")

	if configExists {
		fmt.Printf("📍 Config file: %s\n", configPath)
	} else {
		fmt.Printf("📍 Config file: %s (newly created)\n", configPath)
	}

	fmt.Printf("📊 Current settings:\n\n")

	fmt.Printf("🖥  %sDisplay:%s\n", Green, Reset)
	fmt.Printf("  • %scolor%s: %t\n", Green, Reset, config.Display.Color)
	fmt.Printf("  • %sshow_distance%s: %t\n", Green, Reset, config.Display.ShowDistance)
	fmt.Printf("  • %sshow_summary%s: %t\n\n", Green, Reset, config.Display.ShowSummary)

	fmt.Printf("📥 %sLoader:%s\n", Green, Reset)
	fmt.Printf("  • %sshow_progress%s: %t\n", Green, Reset, config.Loader.ShowProgress)
	fmt.Printf("  • %sbloom_filter_size%s: %d\n", Green, Reset, config.Loader.BloomFilterSize)
	fmt.Printf("  • %sbloom_filter_hashes%s: %d\n\n", Green, Reset, config.Loader.BloomFilterHashes)

	fmt.Printf("🎨 %sUI:%s\n", Green, Reset)
	fmt.Printf("  • %sword_wrap%s: %d\n\n", Green, Reset, config.UI.WordWrap)

	fmt.Printf("💡 Edit %s to change these settings.\n", configPath)
}
