package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const configTemplate = `# Options Journal Configuration

[journal]
# Account starting balance used for risk sizing
initial_capital = 10000.0
# Default target as a percent of entry price
default_target_percent = 20.0
# Default stop-loss as a percent of entry price
default_stop_percent = 10.0
# Maximum trade-slots per calendar day (entry and exit each count 0.5)
max_trades_per_day = 3
# Maximum percent of balance that may be risked on a single trade
max_risk_percent = 4.0

[volatility]
# Volatility index level above which new trades require acknowledgment
threshold = 25.0
# Optional endpoint returning the current index value as JSON
source_url = ""

[ui]
# Enable colored output
color_enabled = true
# Date format
date_format = "02-Jan-2006"
# Time format
time_format = "15:04:05"

# Pre-trade discipline checklist. maxTradesRespected and maxRiskRespected are
# filled from the automatic checks; the rest are asked before each trade.
[[checklist]]
id = "inStrategyPlan"
label = "Trade is in my strategy plan"
enabled = true

[[checklist]]
id = "riskDefined"
label = "Risk is defined with a stop-loss"
enabled = true

[[checklist]]
id = "maxTradesRespected"
label = "Daily trade limit respected"
enabled = true

[[checklist]]
id = "maxRiskRespected"
label = "Per-trade risk limit respected"
enabled = true

[[checklist]]
id = "ivConditionsMet"
label = "IV conditions are favorable"
enabled = true

[[checklist]]
id = "emotionallyStable"
label = "I am emotionally stable"
enabled = true
`

const credentialsTemplate = `# Options Journal Credentials
# Used only for the optional AI coaching narrative.

[openai]
api_key = ""
model = "gpt-4o-mini"
`

func writeTemplate(configDir, name, content string) error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	path := filepath.Join(configDir, name)
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	return nil
}

func createTemplateConfig(configDir string) error {
	return writeTemplate(configDir, "config.toml", configTemplate)
}

func createTemplateCredentials(configDir string) error {
	return writeTemplate(configDir, "credentials.toml", credentialsTemplate)
}
