// Package content loads encounter and skill content packs: JSON documents
// checked against an embedded JSON Schema and a semver format version.
package content

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/mod/semver"

	"github.com/abhisek/masquerade/internal/encounter"
	"github.com/abhisek/masquerade/internal/skills"
)

// FormatMajor is the pack format major version this build reads.
const FormatMajor = "v1"

// ErrUnsupportedVersion is returned for packs with a different major version.
var ErrUnsupportedVersion = errors.New("unsupported content pack version")

//go:embed data/default.json
var defaultPack []byte

// Pack is one content document.
type Pack struct {
	Version    string                `json:"version"`
	Encounters []encounter.Encounter `json:"encounters,omitempty"`
	Skills     []skills.Definition   `json:"skills,omitempty"`
}

// Parse validates raw against the pack schema, decodes it and checks the
// semantic rules the schema cannot express.
func Parse(raw []byte) (*Pack, error) {
	if err := validateSchema(raw); err != nil {
		return nil, err
	}
	var p Pack
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("decode pack: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Validate checks the version and every record.
func (p *Pack) Validate() error {
	if err := checkVersion(p.Version); err != nil {
		return err
	}
	var errs []error
	ids := make(map[string]bool, len(p.Encounters))
	for i := range p.Encounters {
		e := &p.Encounters[i]
		if err := e.Validate(); err != nil {
			errs = append(errs, err)
		}
		if ids[e.ID] {
			errs = append(errs, fmt.Errorf("duplicate encounter id %q", e.ID))
		}
		ids[e.ID] = true
	}
	types := make(map[skills.Type]bool, len(p.Skills))
	for _, s := range p.Skills {
		if !s.Type.Valid() {
			errs = append(errs, fmt.Errorf("skill %q: %w", s.Type, skills.ErrUnknownSkill))
		}
		if types[s.Type] {
			errs = append(errs, fmt.Errorf("duplicate skill %q", s.Type))
		}
		types[s.Type] = true
	}
	return errors.Join(errs...)
}

func checkVersion(v string) error {
	if !semver.IsValid(v) {
		return fmt.Errorf("pack version %q is not valid semver", v)
	}
	if semver.Major(v) != FormatMajor {
		return fmt.Errorf("%w: %s (want %s.x.y)", ErrUnsupportedVersion, v, FormatMajor)
	}
	return nil
}

// Default returns the embedded pack shipped with the binary.
func Default() (*Pack, error) {
	p, err := Parse(defaultPack)
	if err != nil {
		return nil, fmt.Errorf("embedded pack: %w", err)
	}
	return p, nil
}

// LoadFile reads and parses one pack file.
func LoadFile(path string) (*Pack, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read pack: %w", err)
	}
	p, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return p, nil
}

// LoadDir parses every *.json file in dir, in name order, and merges them.
func LoadDir(dir string) (*Pack, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read content dir: %w", err)
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.EqualFold(filepath.Ext(e.Name()), ".json") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	var packs []*Pack
	for _, n := range names {
		p, err := LoadFile(filepath.Join(dir, n))
		if err != nil {
			return nil, err
		}
		packs = append(packs, p)
	}
	return Merge(packs...), nil
}

// Load returns the default pack, overlaid with the packs in dir when dir is
// non-empty.
func Load(dir string) (*Pack, error) {
	base, err := Default()
	if err != nil {
		return nil, err
	}
	if dir == "" {
		return base, nil
	}
	extra, err := LoadDir(dir)
	if err != nil {
		return nil, err
	}
	return Merge(base, extra), nil
}

// Merge combines packs. Later packs replace earlier encounters with the same
// ID and skills with the same type. The result carries the highest version.
func Merge(packs ...*Pack) *Pack {
	out := &Pack{Version: FormatMajor + ".0.0"}
	encIdx := map[string]int{}
	skillIdx := map[skills.Type]int{}
	for _, p := range packs {
		if p == nil {
			continue
		}
		if semver.Compare(p.Version, out.Version) > 0 {
			out.Version = p.Version
		}
		for _, e := range p.Encounters {
			if i, ok := encIdx[e.ID]; ok {
				out.Encounters[i] = e
				continue
			}
			encIdx[e.ID] = len(out.Encounters)
			out.Encounters = append(out.Encounters, e)
		}
		for _, s := range p.Skills {
			if i, ok := skillIdx[s.Type]; ok {
				out.Skills[i] = s
				continue
			}
			skillIdx[s.Type] = len(out.Skills)
			out.Skills = append(out.Skills, s)
		}
	}
	return out
}

// Write encodes p as indented JSON.
func Write(w io.Writer, p *Pack) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(p)
}

// FriendGroups returns the distinct friend groups in the pack, sorted.
func (p *Pack) FriendGroups() []string {
	seen := map[string]bool{}
	var out []string
	for _, e := range p.Encounters {
		if e.FriendGroup != "" && !seen[e.FriendGroup] {
			seen[e.FriendGroup] = true
			out = append(out, e.FriendGroup)
		}
	}
	sort.Strings(out)
	return out
}
