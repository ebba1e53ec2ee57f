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

package transsql

import (
	"github.com/rulego/transsql/logger"
	"github.com/rulego/transsql/rules"
)

type options struct {
	ruleConfig *rules.Config
	configPath string
	strict     bool
	logLevel   logger.Level
	discardLog bool
}

// Option configures a Translator.
type Option func(*options)

// WithRuleConfig supplies an already parsed rule configuration.
func WithRuleConfig(cfg *rules.Config) Option {
	return func(o *options) {
		o.ruleConfig = cfg
	}
}

// WithRuleConfigFile loads the rule configuration from a JSON or YAML
// file. Takes precedence over WithRuleConfig.
func WithRuleConfigFile(path string) Option {
	return func(o *options) {
		o.configPath = path
	}
}

// WithStrictHierarchy makes an untranslatable CONNECT BY shape an error
// instead of a warning; the result is then marked incomplete.
func WithStrictHierarchy() Option {
	return func(o *options) {
		o.strict = true
	}
}

// WithLogLevel sets the translator's log verbosity.
func WithLogLevel(level logger.Level) Option {
	return func(o *options) {
		o.logLevel = level
	}
}

// WithDiscardLog silences all translator logging.
func WithDiscardLog() Option {
	return func(o *options) {
		o.discardLog = true
	}
}
