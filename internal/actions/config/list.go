package config

import (
	"github.com/y3pio/unicon/internal/dispatchers"
	"github.com/y3pio/unicon/internal/domain"
)

func List(args []string, flags *dispatchers.ParsedFlags) error {
	return list(args, flags, DefaultDeps())
}

func list(_ []string, _ *dispatchers.ParsedFlags, deps Deps) error {
	configMap, err := deps.GetAll()
	if err != nil {
		return err
	}

	for _, key := range domain.VisibleConfigKeys() {
		value, exists := configMap[key.Name]
		if !exists || (value == "" && key.HideIfEmpty) {
			continue
		}
		deps.Printf("%s=%s\n", key.Name, value)
	}

	return nil
}
