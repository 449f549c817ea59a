package entity

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// FileStore is a YAML-backed entity store. Every .yaml/.yml file in
// the configured directory may carry any of the typed sections; the
// whole directory is re-read on Load, so a reload is a full swap.
type FileStore struct {
	dir    string
	logger *slog.Logger

	mu     sync.RWMutex
	byType map[TypeTag]map[string]Entity
}

// document is the on-disk shape of one source file.
type document struct {
	Datasets             []*Dataset             `yaml:"datasets"`
	Distributions        []*Distribution        `yaml:"distributions"`
	WebServices          []*WebService          `yaml:"webservices"`
	Operations           []*Operation           `yaml:"operations"`
	Organizations        []*Organization        `yaml:"organizations"`
	ContactPoints        []*ContactPoint        `yaml:"contact_points"`
	Persons              []*Person              `yaml:"persons"`
	Facilities           []*Facility            `yaml:"facilities"`
	Equipment            []*Equipment           `yaml:"equipment"`
	Services             []*Service             `yaml:"services"`
	SoftwareApplications []*SoftwareApplication `yaml:"software_applications"`
	SoftwareSourceCodes  []*SoftwareSourceCode  `yaml:"software_source_codes"`
	Categories           []*Category            `yaml:"categories"`
	CategorySchemes      []*CategoryScheme      `yaml:"category_schemes"`
}

// NewFileStore creates a store over dir. Call Load before first use.
func NewFileStore(dir string, logger *slog.Logger) *FileStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileStore{
		dir:    dir,
		logger: logger,
		byType: make(map[TypeTag]map[string]Entity),
	}
}

// Load re-reads every YAML file in the directory and swaps the
// in-memory state. Individual malformed files fail the whole load;
// partial source state must never be published.
func (s *FileStore) Load() error {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return fmt.Errorf("filestore: read dir %s: %w", s.dir, err)
	}

	next := make(map[TypeTag]map[string]Entity)
	files := 0
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		path := filepath.Join(s.dir, e.Name())
		raw, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("filestore: read %s: %w", path, err)
		}
		var doc document
		if err := yaml.Unmarshal(raw, &doc); err != nil {
			return fmt.Errorf("filestore: parse %s: %w", path, err)
		}
		addDocument(next, &doc)
		files++
	}

	s.mu.Lock()
	s.byType = next
	s.mu.Unlock()

	s.logger.Info("entity source loaded",
		slog.String("dir", s.dir),
		slog.Int("files", files),
		slog.Int("entities", s.Count()))
	return nil
}

func addDocument(dst map[TypeTag]map[string]Entity, doc *document) {
	add := func(e Entity) {
		if e.UID() == "" {
			return
		}
		m := dst[e.TypeTag()]
		if m == nil {
			m = make(map[string]Entity)
			dst[e.TypeTag()] = m
		}
		m[e.UID()] = e
	}
	for _, e := range doc.Datasets {
		add(e)
	}
	for _, e := range doc.Distributions {
		add(e)
	}
	for _, e := range doc.WebServices {
		add(e)
	}
	for _, e := range doc.Operations {
		add(e)
	}
	for _, e := range doc.Organizations {
		add(e)
	}
	for _, e := range doc.ContactPoints {
		add(e)
	}
	for _, e := range doc.Persons {
		add(e)
	}
	for _, e := range doc.Facilities {
		add(e)
	}
	for _, e := range doc.Equipment {
		add(e)
	}
	for _, e := range doc.Services {
		add(e)
	}
	for _, e := range doc.SoftwareApplications {
		add(e)
	}
	for _, e := range doc.SoftwareSourceCodes {
		add(e)
	}
	for _, e := range doc.Categories {
		add(e)
	}
	for _, e := range doc.CategorySchemes {
		add(e)
	}
}

// Count returns the total number of loaded entities.
func (s *FileStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, m := range s.byType {
		n += len(m)
	}
	return n
}

// Repository returns the read interface for one entity type.
func (s *FileStore) Repository(t TypeTag) Repository {
	return &typeRepo{store: s, tag: t}
}

// RegisterAll installs a repository per known type into the registry.
func (s *FileStore) RegisterAll(reg *Registry) {
	for _, t := range AllTypes() {
		reg.Register(t, s.Repository(t))
	}
}

type typeRepo struct {
	store *FileStore
	tag   TypeTag
}

func (r *typeRepo) RetrieveAll(_ context.Context) ([]Entity, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	m := r.store.byType[r.tag]
	uids := make([]string, 0, len(m))
	for uid := range m {
		uids = append(uids, uid)
	}
	sort.Strings(uids)

	out := make([]Entity, 0, len(uids))
	for _, uid := range uids {
		out = append(out, m[uid])
	}
	return out, nil
}

func (r *typeRepo) RetrieveByUID(_ context.Context, uid string) (Entity, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	if e, ok := r.store.byType[r.tag][uid]; ok {
		return e, nil
	}
	return nil, fmt.Errorf("%s %q: %w", r.tag, uid, ErrNotFound)
}
