package config

import "github.com/y3pio/unicon/internal/domain"

// Provider exposes the config file as a domain.ConfigProvider so other
// packages can read and mutate settings without touching file handling.
type Provider struct{}

var _ domain.ConfigProvider = (*Provider)(nil)

func NewProvider() *Provider {
	return &Provider{}
}

func (p *Provider) Get(key string) (string, bool) {
	return Get(key)
}

func (p *Provider) GetAll() (map[string]string, error) {
	return GetAll()
}

// Set persists key=value, replacing any existing assignment in place.
func (p *Provider) Set(key, value string) error {
	return rewrite(func(lines []string) []string {
		updated, _ := Set(lines, key, value)
		return updated
	})
}

// Unset removes every assignment of key, keeping the rest of the file as is.
func (p *Provider) Unset(key string) error {
	return rewrite(func(lines []string) []string {
		updated, _ := Unset(lines, key)
		return updated
	})
}

// rewrite runs one read-modify-write cycle over the config file.
func rewrite(mutate func([]string) []string) error {
	lines, err := ReadLines()
	if err != nil {
		return err
	}
	return WriteLines(mutate(lines))
}
