package content

import (
	_ "embed"
	"os"
	"slices"

	apperrors "github.com/jrsteele09/go-profile-optimizer/internal/errors"
	"gopkg.in/yaml.v3"
)

//go:embed templates.yaml
var defaultCatalog []byte

type catalogFile struct {
	Templates  []Template          `yaml:"templates"`
	Phrases    map[string][]string `yaml:"phrases"`
	Networking []string            `yaml:"networking"`
}

// Catalog is the immutable set of templates and phrase banks.
type Catalog struct {
	templates  []Template
	byID       map[string]Template
	phrases    map[string][]string
	networking []string
}

// DefaultCatalog returns the built-in catalog.
func DefaultCatalog() *Catalog {
	c, err := ParseCatalog(defaultCatalog)
	if err != nil {
		panic(err)
	}
	return c
}

// LoadCatalog reads a catalog from path, or returns the built-in catalog when path
// is empty. Phrase banks and networking messages missing from the file are taken
// from the built-in catalog.
func LoadCatalog(path string) (*Catalog, error) {
	if path == "" {
		return DefaultCatalog(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.Wrapf(err, "failed to read template catalog %s", path)
	}
	c, err := ParseCatalog(data)
	if err != nil {
		return nil, apperrors.Wrapf(err, "invalid template catalog %s", path)
	}
	return c.withDefaults(DefaultCatalog()), nil
}

// ParseCatalog decodes and validates a YAML catalog.
func ParseCatalog(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}

	c := &Catalog{
		byID:       make(map[string]Template, len(f.Templates)),
		phrases:    f.Phrases,
		networking: f.Networking,
	}
	if c.phrases == nil {
		c.phrases = map[string][]string{}
	}
	for _, t := range f.Templates {
		switch {
		case t.ID == "":
			return nil, apperrors.New("template without id")
		case t.Body == "":
			return nil, apperrors.Wrapf(apperrors.ErrInvalidRequest, "template %s has no body", t.ID)
		case !t.Tone.Valid():
			return nil, apperrors.Wrapf(apperrors.ErrInvalidRequest, "template %s has unknown tone %q", t.ID, t.Tone)
		case !slices.Contains(TemplateTypes, t.Type):
			return nil, apperrors.Wrapf(apperrors.ErrInvalidRequest, "template %s has unknown type %q", t.ID, t.Type)
		}
		if _, dup := c.byID[t.ID]; dup {
			return nil, apperrors.Wrapf(apperrors.ErrInvalidRequest, "duplicate template id %s", t.ID)
		}
		c.byID[t.ID] = t
		c.templates = append(c.templates, t)
	}
	for _, tone := range Tones {
		if len(c.ByTone(tone)) == 0 {
			return nil, apperrors.Wrapf(apperrors.ErrInvalidRequest, "no templates for tone %s", tone)
		}
	}
	return c, nil
}

func (c *Catalog) withDefaults(def *Catalog) *Catalog {
	for key, values := range def.phrases {
		if len(c.phrases[key]) == 0 {
			c.phrases[key] = values
		}
	}
	if len(c.networking) == 0 {
		c.networking = def.networking
	}
	return c
}

// Templates returns every template in catalog order.
func (c *Catalog) Templates() []Template {
	return slices.Clone(c.templates)
}

// Template looks up a template by id.
func (c *Catalog) Template(id string) (Template, bool) {
	t, ok := c.byID[id]
	return t, ok
}

// ByTone returns the templates written in tone.
func (c *Catalog) ByTone(tone Tone) []Template {
	var pool []Template
	for _, t := range c.templates {
		if t.Tone == tone {
			pool = append(pool, t)
		}
	}
	return pool
}

// ByType returns the templates of type tt.
func (c *Catalog) ByType(tt TemplateType) []Template {
	var pool []Template
	for _, t := range c.templates {
		if t.Type == tt {
			pool = append(pool, t)
		}
	}
	return pool
}

// Phrases returns the phrase bank for key.
func (c *Catalog) Phrases(key string) []string {
	return c.phrases[key]
}

// NetworkingTemplates returns the connection-request templates.
func (c *Catalog) NetworkingTemplates() []string {
	return slices.Clone(c.networking)
}
