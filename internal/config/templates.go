package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const configTemplate = `# MT5 Back-Office Client Configuration

[api]
# Backend base URL
base_url = "http://localhost:8000"
# Request timeout (e.g., "30s", "1m")
timeout = "30s"

[ui]
# Enable colored output
color_enabled = true
# Date format
date_format = "02 Jan 2006"
# Display currency
currency = "USD"

[cache]
# Cache fetched account snapshots locally for offline viewing
enabled = true
# Path of the local cache database (default: <config dir>/backoffice.db)
path = ""
`

const credentialsTemplate = `# MT5 Back-Office Client Credentials
# Keep this file private (written with mode 0600).

[backoffice]
# Stored login for non-interactive use (optional)
email = ""
password = ""

[mt5]
# Operator-level bridge credentials used for the post-login terminal
# connect. Replace once per-user terminal accounts exist.
user = "backofficeApi"
password = "Trade@2022"
host = "173.208.156.141"
port = 443
`

func createTemplateConfig(configDir string) error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	path := filepath.Join(configDir, "config.toml")
	if err := os.WriteFile(path, []byte(configTemplate), 0644); err != nil {
		return fmt.Errorf("writing config template: %w", err)
	}

	return nil
}

func createTemplateCredentials(configDir string) error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	path := filepath.Join(configDir, "credentials.toml")
	// Restricted permissions for credentials file
	if err := os.WriteFile(path, []byte(credentialsTemplate), 0600); err != nil {
		return fmt.Errorf("writing credentials template: %w", err)
	}

	return nil
}
