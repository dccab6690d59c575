package project

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"atlasgrip/internal/domain"
	"atlasgrip/internal/eventbus"
	"atlasgrip/internal/logging"
)

var (
	// ErrDuplicateAtlas is returned when an atlas with the same name is already registered
	ErrDuplicateAtlas = errors.New("atlas already registered")
	// ErrNotFound is returned when an atlas is not part of the project
	ErrNotFound = errors.New("atlas not found")
	// ErrOnlyAtlases is returned when a removal includes something other than atlases
	ErrOnlyAtlases = errors.New("only atlases can be removed")
	// ErrNoPath is returned when saving a project that was never given a path
	ErrNoPath = errors.New("project has no path")
)

// Manager owns the open project and the atlas registry
type Manager interface {
	Project() *domain.Project
	Open(path string) error
	Reset()
	Save() error
	SaveAs(path string) error
	AddAtlas(file string) error
	AddAtlases(files ...string) []string
	CanRemove(payloads []any) bool
	RemoveAtlases(payloads []any) error
}

// manager is the concrete implementation
type manager struct {
	bus     eventbus.EventBus
	mu      sync.RWMutex
	project *domain.Project
	names   map[string]*domain.Atlas // registration name -> atlas
}

// NewManager creates a manager around p, or an empty project when p is nil
func NewManager(bus eventbus.EventBus, p *domain.Project) Manager {
	if p == nil {
		p = &domain.Project{}
	}
	m := &manager{bus: bus}
	m.replace(p)
	return m
}

func (m *manager) replace(p *domain.Project) {
	m.project = p
	m.names = make(map[string]*domain.Atlas, len(p.Atlases))
	for _, a := range p.Atlases {
		m.names[a.Name()] = a
	}
}

func (m *manager) publish(e eventbus.DomainEvent) {
	if m.bus != nil {
		m.bus.Publish(e)
	}
}

// Project returns the open project
func (m *manager) Project() *domain.Project {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.project
}

// Open replaces the open project with the descriptor at path
func (m *manager) Open(path string) error {
	p, err := Load(path)
	if err != nil {
		m.publish(eventbus.ErrorEvent{Message: "failed to open project", Err: err})
		return err
	}

	m.mu.Lock()
	m.replace(p)
	m.mu.Unlock()

	m.publish(eventbus.ProjectLoadedEvent{Path: path, Atlases: len(p.Atlases)})
	return nil
}

// Reset starts a new untitled project
func (m *manager) Reset() {
	m.mu.Lock()
	m.replace(&domain.Project{})
	m.mu.Unlock()

	logging.Infof("Started new project")
	m.publish(eventbus.ProjectResetEvent{})
}

// Save writes the project to its current path
func (m *manager) Save() error {
	m.mu.RLock()
	path := m.project.Path
	m.mu.RUnlock()

	if path == "" {
		return ErrNoPath
	}
	return m.SaveAs(path)
}

// SaveAs writes the project to path and makes it the current path
func (m *manager) SaveAs(path string) error {
	m.mu.Lock()
	err := Save(m.project, path)
	if err == nil {
		m.project.Path = path
		m.project.Modified = false
	}
	m.mu.Unlock()

	if err != nil {
		m.publish(eventbus.ErrorEvent{Message: "failed to save project", Err: err})
		return err
	}
	m.publish(eventbus.ProjectSavedEvent{Path: path})
	return nil
}

// AddAtlas registers an atlas file; names must be unique within the project.
// Relative paths are taken from the working directory.
func (m *manager) AddAtlas(file string) error {
	abs, err := filepath.Abs(file)
	if err != nil {
		return fmt.Errorf("failed to resolve atlas path %s: %w", file, err)
	}
	file = abs
	name := domain.AtlasName(file)

	m.mu.Lock()
	if _, exists := m.names[name]; exists {
		m.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrDuplicateAtlas, name)
	}
	atlas := &domain.Atlas{File: file}
	m.names[name] = atlas
	m.project.Atlases = append(m.project.Atlases, atlas)
	m.project.Modified = true
	m.mu.Unlock()

	logging.Infof("Added atlas %s (%s)", name, file)
	m.publish(eventbus.AtlasAddedEvent{Name: name, File: file})
	return nil
}

// AddAtlases registers each file and returns the names that were rejected
func (m *manager) AddAtlases(files ...string) []string {
	var invalid []string
	for _, f := range files {
		if err := m.AddAtlas(f); err != nil {
			invalid = append(invalid, domain.AtlasName(f))
		}
	}
	return invalid
}

// CanRemove reports whether every payload is an atlas of this project
func (m *manager) CanRemove(payloads []any) bool {
	if len(payloads) == 0 {
		return false
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, p := range payloads {
		a, ok := p.(*domain.Atlas)
		if !ok || m.names[a.Name()] != a {
			return false
		}
	}
	return true
}

// RemoveAtlases unregisters the given atlases. Nothing is removed unless
// every payload is a registered atlas.
func (m *manager) RemoveAtlases(payloads []any) error {
	m.mu.Lock()
	var atlases []*domain.Atlas
	for _, p := range payloads {
		a, ok := p.(*domain.Atlas)
		if !ok {
			m.mu.Unlock()
			return ErrOnlyAtlases
		}
		if m.names[a.Name()] != a {
			m.mu.Unlock()
			return fmt.Errorf("%w: %s", ErrNotFound, a.Name())
		}
		atlases = append(atlases, a)
	}

	for _, a := range atlases {
		delete(m.names, a.Name())
		m.project.Atlases = removeAtlas(m.project.Atlases, a)
	}
	if len(atlases) > 0 {
		m.project.Modified = true
	}
	m.mu.Unlock()

	for _, a := range atlases {
		logging.Infof("Removed atlas %s", a.Name())
		m.publish(eventbus.AtlasRemovedEvent{Name: a.Name()})
	}
	return nil
}

func removeAtlas(atlases []*domain.Atlas, target *domain.Atlas) []*domain.Atlas {
	out := atlases[:0]
	for _, a := range atlases {
		if a != target {
			out = append(out, a)
		}
	}
	return out
}
