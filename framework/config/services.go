package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// Services is the parsed services file: the named providers the container
// registers and the router's middleware settings.
//
//	providers:
//	  mailer: [services.Mailer, true]   # name: [type, singleton]
//	  users: services.UserStore         # name: type (transient)
//	middlewares:
//	  default: [requestlog]
//	  strict: false
//	  aliases:
//	    auth: middleware.Auth
type Services struct {
	Providers   Providers   `yaml:"providers"`
	Middlewares Middlewares `yaml:"middlewares"`
}

// Service is one provider entry.
type Service struct {
	Name      string
	Type      string
	Singleton bool
}

// Providers keeps provider entries in file order.
type Providers []Service

type Middlewares struct {
	Default []string          `yaml:"default"`
	Strict  bool              `yaml:"strict"`
	Aliases map[string]string `yaml:"aliases"`
}

// LoadServices reads and parses the services file at path. A missing file
// yields an empty configuration.
func LoadServices(path string) (*Services, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return ParseServices(nil)
	}
	if err != nil {
		return nil, fmt.Errorf("config: reading services file: %w", err)
	}
	s, err := ParseServices(data)
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return s, nil
}

// ParseServices parses services YAML.
func ParseServices(data []byte) (*Services, error) {
	var s Services
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	if s.Middlewares.Aliases == nil {
		s.Middlewares.Aliases = make(map[string]string)
	}
	return &s, nil
}

// UnmarshalYAML decodes the providers mapping without losing key order.
func (p *Providers) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: providers must be a mapping", node.Line)
	}

	out := make(Providers, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i], node.Content[i+1]
		svc, err := decodeService(key.Value, val)
		if err != nil {
			return err
		}
		out = append(out, svc)
	}
	*p = out
	return nil
}

// decodeService accepts "type" or "[type, singleton]".
func decodeService(name string, node *yaml.Node) (Service, error) {
	svc := Service{Name: name}
	switch node.Kind {
	case yaml.ScalarNode:
		svc.Type = node.Value
	case yaml.SequenceNode:
		if len(node.Content) == 0 || len(node.Content) > 2 {
			return svc, fmt.Errorf("line %d: provider [%s] must be [type] or [type, singleton]", node.Line, name)
		}
		if node.Content[0].Kind != yaml.ScalarNode {
			return svc, fmt.Errorf("line %d: provider [%s] type must be a string", node.Line, name)
		}
		svc.Type = node.Content[0].Value
		if len(node.Content) == 2 {
			if err := node.Content[1].Decode(&svc.Singleton); err != nil {
				return svc, fmt.Errorf("line %d: provider [%s] singleton flag: %w", node.Line, name, err)
			}
		}
	default:
		return svc, fmt.Errorf("line %d: provider [%s] must be a type name or a list", node.Line, name)
	}
	if svc.Type == "" {
		return svc, fmt.Errorf("line %d: provider [%s] has an empty type", node.Line, name)
	}
	return svc, nil
}
