package auth

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrNoToken is returned when no provider in a chain can supply a token.
var ErrNoToken = errors.New("no access token configured")

// TokenProvider supplies an access token for API authentication.
type TokenProvider interface {
	AccessToken() (string, error)
}

// FileTokenProvider reads a bearer token from a file on disk.
type FileTokenProvider struct {
	path string
}

// NewFileTokenProvider creates a TokenProvider that reads from the given file path.
func NewFileTokenProvider(path string) *FileTokenProvider {
	return &FileTokenProvider{path: path}
}

// AccessToken reads and returns the token, trimming whitespace.
// The file is re-read on every call so a refreshed token is picked up
// without restarting.
func (f *FileTokenProvider) AccessToken() (string, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return "", fmt.Errorf("reading token from %s: %w", f.path, err)
	}

	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", fmt.Errorf("token file %s is empty", f.path)
	}

	return token, nil
}

// EnvTokenProvider reads a bearer token from an environment variable.
type EnvTokenProvider struct {
	name string
}

// NewEnvTokenProvider creates a TokenProvider backed by the named variable.
func NewEnvTokenProvider(name string) *EnvTokenProvider {
	return &EnvTokenProvider{name: name}
}

func (e *EnvTokenProvider) AccessToken() (string, error) {
	token := strings.TrimSpace(os.Getenv(e.name))
	if token == "" {
		return "", fmt.Errorf("%s is not set", e.name)
	}
	return token, nil
}

// ChainTokenProvider returns the first token any of its providers yields.
type ChainTokenProvider []TokenProvider

func (c ChainTokenProvider) AccessToken() (string, error) {
	var errs []error
	for _, p := range c {
		token, err := p.AccessToken()
		if err == nil {
			return token, nil
		}
		errs = append(errs, err)
	}
	return "", fmt.Errorf("%w: %w", ErrNoToken, errors.Join(errs...))
}
