package symptoms

import (
	_ "embed"
	"errors"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

var ErrUnknownSymptom = errors.New("unknown symptom")

//go:embed catalog.yaml
var defaultCatalogYAML []byte

// Symptom es una entrada del vocabulario.
type Symptom struct {
	Name     string `yaml:"name" json:"name"`
	Priority int    `yaml:"priority" json:"priority"`
}

type catalogFile struct {
	DefaultPriority int       `yaml:"default_priority"`
	Symptoms        []Symptom `yaml:"symptoms"`
}

// Catalog es de solo lectura una vez construido.
type Catalog struct {
	byName map[string]Symptom
	names  []string
}

// Default carga el catálogo embebido.
func Default() (*Catalog, error) {
	return Parse(defaultCatalogYAML)
}

// MustDefault se usa en main/router: el catálogo embebido siempre es válido.
func MustDefault() *Catalog {
	c, err := Default()
	if err != nil {
		panic(err)
	}
	return c
}

func Parse(b []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("symptoms: parse catalog: %w", err)
	}
	if f.DefaultPriority <= 0 {
		f.DefaultPriority = 1
	}

	c := &Catalog{byName: make(map[string]Symptom, len(f.Symptoms))}
	for _, s := range f.Symptoms {
		name := Normalize(s.Name)
		if name == "" {
			return nil, errors.New("symptoms: empty symptom name in catalog")
		}
		if _, dup := c.byName[name]; dup {
			return nil, fmt.Errorf("symptoms: duplicated symptom %q", name)
		}
		if s.Priority <= 0 {
			s.Priority = f.DefaultPriority
		}
		s.Name = name
		c.byName[name] = s
		c.names = append(c.names, name)
	}
	sort.Strings(c.names)
	return c, nil
}

// Normalize: minúsculas, sin espacios en los extremos, espacios -> "_".
func Normalize(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	return strings.Join(strings.Fields(s), "_")
}

func (c *Catalog) Lookup(raw string) (Symptom, error) {
	s, ok := c.byName[Normalize(raw)]
	if !ok {
		return Symptom{}, fmt.Errorf("%w: %q", ErrUnknownSymptom, raw)
	}
	return s, nil
}

func (c *Catalog) Has(raw string) bool {
	_, ok := c.byName[Normalize(raw)]
	return ok
}

// All devuelve el vocabulario ordenado por nombre.
func (c *Catalog) All() []Symptom {
	out := make([]Symptom, 0, len(c.names))
	for _, n := range c.names {
		out = append(out, c.byName[n])
	}
	return out
}

// Names devuelve solo los nombres (para prompts y listados).
func (c *Catalog) Names() []string {
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

// Resolve normaliza, descarta desconocidos y duplicados, y si hay más de
// limit se queda con los de mayor prioridad (empates: orden de entrada).
// limit <= 0 = sin límite.
func (c *Catalog) Resolve(raw []string, limit int) []Symptom {
	out := make([]Symptom, 0, len(raw))
	seen := map[string]struct{}{}
	for _, r := range raw {
		s, err := c.Lookup(r)
		if err != nil {
			continue
		}
		if _, ok := seen[s.Name]; ok {
			continue
		}
		seen[s.Name] = struct{}{}
		out = append(out, s)
	}

	if limit > 0 && len(out) > limit {
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Priority > out[j].Priority
		})
		out = out[:limit]
	}
	return out
}
