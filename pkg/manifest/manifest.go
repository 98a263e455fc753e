package manifest

import (
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/arthur-debert/dispatchr/pkg/errors"
	"github.com/arthur-debert/dispatchr/pkg/handler"
	"github.com/arthur-debert/dispatchr/pkg/store"
)

// Manifest is the decoded routing manifest
type Manifest struct {
	Stores  []StoreEntry  `koanf:"stores"`
	Domains []DomainEntry `koanf:"domains"`
}

// StoreEntry declares one store
type StoreEntry struct {
	// Name is the store name; Type is the fallback identity
	Name     string         `koanf:"name"`
	Type     string         `koanf:"type"`
	Handlers []HandlerEntry `koanf:"handlers"`
}

// HandlerEntry declares one action handler, in manifest order
type HandlerEntry struct {
	Action  string   `koanf:"action"`
	Method  string   `koanf:"method"`
	WaitFor []string `koanf:"wait_for"`
}

// DomainEntry declares one domain
type DomainEntry struct {
	Name string `koanf:"name"`
	Type string `koanf:"type"`
}

// Load reads a manifest, choosing the parser from the file extension
func Load(path string) (*Manifest, error) {
	var parser koanf.Parser
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		parser = toml.Parser()
	case ".yaml", ".yml":
		parser = yaml.Parser()
	default:
		return nil, errors.Newf(errors.ErrManifestValid, "unsupported manifest format %q", filepath.Ext(path)).
			WithDetail("path", path)
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to load manifest from %s", path).
			WithDetail("path", path)
	}

	var m Manifest
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &m,
			WeaklyTypedInput: true,
			ErrorUnused:      true,
		},
	}
	if err := k.UnmarshalWithConf("", &m, unmarshalConf); err != nil {
		return nil, errors.Wrapf(err, errors.ErrManifestValid, "failed to decode manifest %s", path).
			WithDetail("path", path)
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks that every entry can be registered
func (m *Manifest) Validate() error {
	for i, s := range m.Stores {
		if s.Name == "" && s.Type == "" {
			return errors.Newf(errors.ErrManifestValid, "store %d has neither name nor type", i).
				WithDetail("index", i)
		}
		for j, h := range s.Handlers {
			if h.Action == "" || h.Method == "" {
				return errors.Newf(errors.ErrManifestValid,
					"handler %d of store %s needs both action and method", j, s.identity()).
					WithDetail("store", s.identity()).
					WithDetail("index", j)
			}
		}
	}
	for i, d := range m.Domains {
		if d.Name == "" && d.Type == "" {
			return errors.Newf(errors.ErrManifestValid, "domain %d has neither name nor type", i).
				WithDetail("index", i)
		}
	}
	return nil
}

// Build returns store classes and domains in manifest order
func (m *Manifest) Build() ([]*store.Class, []store.Domain) {
	classes := make([]*store.Class, 0, len(m.Stores))
	for _, s := range m.Stores {
		classes = append(classes, s.class())
	}

	domains := make([]store.Domain, 0, len(m.Domains))
	for _, d := range m.Domains {
		domains = append(domains, &store.NamedDomain{DomainName: d.Name, Name: d.Type})
	}
	return classes, domains
}

func (s StoreEntry) identity() string {
	if s.Name != "" {
		return s.Name
	}
	return s.Type
}

func (s StoreEntry) class() *store.Class {
	name := s.identity()
	waits := make(map[string][]string, len(s.Handlers))
	decls := make([]handler.Decl, 0, len(s.Handlers))
	for _, h := range s.Handlers {
		decls = append(decls, handler.On(h.Action, h.Method))
		if len(h.WaitFor) > 0 {
			waits[h.Method] = h.WaitFor
		}
	}

	return &store.Class{
		StoreName: s.Name,
		Name:      s.Type,
		Handlers:  decls,
		New: func(d store.Dispatcher) any {
			return NewRecorder(name, d, waits)
		},
	}
}
