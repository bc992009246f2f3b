package llm

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

const apiKeyEnv = "OPENAI_API_KEY"

// LoadAPIKey resolves the OpenAI API key: the OPENAI_API_KEY environment
// variable wins; otherwise the credentials file is read, accepting either
// JSON ({"openai_api_key": "..."}) or an `export OPENAI_API_KEY=...` line.
func LoadAPIKey(credentialsFile string) (string, error) {
	if key := os.Getenv(apiKeyEnv); key != "" {
		return key, nil
	}
	if credentialsFile == "" {
		return "", fmt.Errorf("%s not set and no credentials file configured", apiKeyEnv)
	}

	data, err := os.ReadFile(credentialsFile)
	if err != nil {
		return "", fmt.Errorf("read credentials file: %w", err)
	}

	var creds struct {
		OpenAIAPIKey string `json:"openai_api_key"`
	}
	if err := json.Unmarshal(data, &creds); err == nil {
		if creds.OpenAIAPIKey == "" {
			return "", fmt.Errorf("credentials file %s has no openai_api_key", credentialsFile)
		}
		return creds.OpenAIAPIKey, nil
	}

	if key := scanExportLine(string(data)); key != "" {
		return key, nil
	}
	return "", fmt.Errorf("no OpenAI API key found in %s", credentialsFile)
}

func scanExportLine(contents string) string {
	scanner := bufio.NewScanner(strings.NewReader(contents))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		value, ok := strings.CutPrefix(line, "export "+apiKeyEnv+"=")
		if !ok {
			continue
		}
		return strings.Trim(value, `"'`)
	}
	return ""
}
