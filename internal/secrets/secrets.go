// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads API keys and credentials from a directory of plain-text files
// and an optional dotenv file. Each file in the directory represents one secret: the
// filename is the key name and the file contents (trimmed) are the value.
//
// Supported key files: openai-api-key, anthropic-api-key, gemini-api-key, crossref-mailto.
package secrets

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// Key names understood by the CLI and server.
const (
	OpenAIKey      = "openai-api-key"
	AnthropicKey   = "anthropic-api-key"
	GeminiKey      = "gemini-api-key"
	CrossrefMailto = "crossref-mailto"
)

// Load reads all files in dir and returns a map of filename to trimmed contents.
// A missing directory or missing files are not errors; Load returns an empty map.
// Unreadable files produce a warning on w but do not abort.
func Load(dir string, w io.Writer) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	secrets := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			if w != nil {
				fmt.Fprintf(w, "warning: could not read secret %s: %v\n", name, err)
			}
			continue
		}

		value := strings.TrimSpace(string(data))
		if value != "" {
			secrets[name] = value
		}
	}

	return secrets, nil
}

// LoadDotEnv reads a dotenv file and returns its entries under key names,
// so OPENAI_API_KEY becomes openai-api-key. A missing file yields an
// empty map.
func LoadDotEnv(path string) (map[string]string, error) {
	env, err := godotenv.Read(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	out := make(map[string]string, len(env))
	for k, v := range env {
		if v = strings.TrimSpace(v); v != "" {
			out[KeyName(k)] = v
		}
	}
	return out, nil
}

// LoadAll merges the dotenv file with the secrets directory. Directory
// files win over dotenv entries of the same key.
func LoadAll(dir, envFile string, w io.Writer) (map[string]string, error) {
	merged, err := LoadDotEnv(envFile)
	if err != nil {
		return nil, err
	}
	files, err := Load(dir, w)
	if err != nil {
		return nil, err
	}
	for k, v := range files {
		merged[k] = v
	}
	return merged, nil
}

// EnvName maps a key name to its environment variable: openai-api-key
// becomes OPENAI_API_KEY.
func EnvName(key string) string {
	return strings.ToUpper(strings.ReplaceAll(key, "-", "_"))
}

// KeyName is the inverse of EnvName.
func KeyName(env string) string {
	return strings.ToLower(strings.ReplaceAll(env, "_", "-"))
}

// Resolve returns the first non-empty value among flag, the loaded
// secrets, and the process environment.
func Resolve(flag string, secrets map[string]string, key string) string {
	if flag != "" {
		return flag
	}
	if v := secrets[key]; v != "" {
		return v
	}
	return strings.TrimSpace(os.Getenv(EnvName(key)))
}
