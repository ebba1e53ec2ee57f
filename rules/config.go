/*
 * Copyright 2025 The RuleGo Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package rules

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"

	"github.com/rulego/transsql/internal/json"
	"github.com/rulego/transsql/types"
)

// RuleConfig is the JSON form of one pattern rule. Enabled, Priority and
// Flags stay loosely typed so configurations may use whatever scalar form
// their source emits; they are coerced during engine construction.
type RuleConfig struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Pattern     string      `json:"pattern"`
	Replacement *string     `json:"replacement"`
	Flags       interface{} `json:"flags"`
	Condition   string      `json:"condition"`
	Enabled     interface{} `json:"enabled"`
	Priority    interface{} `json:"priority"`
}

// SettingsConfig carries the pipeline settings block. Absent values keep
// their defaults: rules run before the structural stage and failures do
// not halt the pipeline.
type SettingsConfig struct {
	ApplyBeforeDefault interface{} `json:"apply_before_default"`
	ContinueOnError    interface{} `json:"continue_on_error"`
}

// Config is the full rule configuration document.
type Config struct {
	Settings    SettingsConfig `json:"settings"`
	CustomRules []RuleConfig   `json:"custom_rules"`
}

// ParseConfig decodes a JSON rule configuration.
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrConfig, err)
	}
	return &cfg, nil
}

// LoadConfigFile reads a rule configuration from disk. Viper resolves the
// format from the extension, so JSON and YAML configurations both work.
func LoadConfigFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrConfig, err)
	}

	var cfg Config
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		Result:           &cfg,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrConfig, err)
	}
	if err := dec.Decode(v.AllSettings()); err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrConfig, err)
	}
	return &cfg, nil
}
