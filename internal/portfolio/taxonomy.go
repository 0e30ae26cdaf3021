package portfolio

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultOtherSector is the fallback bucket for holdings whose sector is
// missing or not part of the configured taxonomy.
const DefaultOtherSector = "Other"

// Taxonomy is the externally configured set of sector and exchange labels.
// An empty sector set accepts any non-blank label.
type Taxonomy struct {
	OtherSector string   `yaml:"other_sector"`
	Sectors     []string `yaml:"sectors"`
	Exchanges   []string `yaml:"exchanges"`

	sectors   map[string]struct{}
	exchanges map[string]struct{}
}

// NewTaxonomy builds a taxonomy from label lists. Blank labels are ignored.
func NewTaxonomy(otherSector string, sectors, exchanges []string) *Taxonomy {
	t := &Taxonomy{OtherSector: otherSector, Sectors: sectors, Exchanges: exchanges}
	t.index()
	return t
}

// ParseTaxonomy decodes a YAML taxonomy document.
func ParseTaxonomy(data []byte) (*Taxonomy, error) {
	var t Taxonomy
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("failed to parse taxonomy: %w", err)
	}
	t.index()
	return &t, nil
}

// LoadTaxonomy reads a YAML taxonomy file. A missing file yields an
// accept-all taxonomy.
func LoadTaxonomy(path string) (*Taxonomy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewTaxonomy("", nil, nil), nil
		}
		return nil, fmt.Errorf("failed to read taxonomy file: %w", err)
	}
	return ParseTaxonomy(data)
}

func (t *Taxonomy) index() {
	t.OtherSector = strings.TrimSpace(t.OtherSector)
	if t.OtherSector == "" {
		t.OtherSector = DefaultOtherSector
	}
	t.sectors = labelSet(t.Sectors)
	t.exchanges = labelSet(t.Exchanges)
}

func labelSet(labels []string) map[string]struct{} {
	set := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		if l = strings.TrimSpace(l); l != "" {
			set[l] = struct{}{}
		}
	}
	return set
}

// SectorFor maps a raw sector label to the bucket it is grouped under.
// Matching is exact and case-sensitive after trimming surrounding space.
func (t *Taxonomy) SectorFor(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return t.OtherSector
	}
	if len(t.sectors) == 0 {
		return label
	}
	if _, ok := t.sectors[label]; ok {
		return label
	}
	return t.OtherSector
}

// KnownExchange reports whether label is an accepted exchange. With no
// exchanges configured every non-blank label is accepted.
func (t *Taxonomy) KnownExchange(label string) bool {
	label = strings.TrimSpace(label)
	if label == "" {
		return false
	}
	if len(t.exchanges) == 0 {
		return true
	}
	_, ok := t.exchanges[label]
	return ok
}
