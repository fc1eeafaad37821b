package build

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	yaml "go.yaml.in/yaml/v3"

	"github.com/nimburion/i18nbuild/pkg/i18n"
)

// WorkspaceProvider reads project metadata and build options from a workspace file
// shaped like angular.json. Files ending in .yaml or .yml are read as YAML, anything
// else as JSON with comments allowed. Key order is kept.
type WorkspaceProvider struct {
	path     string
	root     string
	document *i18n.Object
}

// NewWorkspaceProvider loads the workspace file at path.
func NewWorkspaceProvider(path string) (*WorkspaceProvider, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve workspace path %s: %w", path, err)
	}
	raw, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("read workspace %s: %w", path, err)
	}
	document, err := decodeWorkspace(abs, raw)
	if err != nil {
		return nil, fmt.Errorf("parse workspace %s: %w", path, err)
	}
	return &WorkspaceProvider{
		path:     abs,
		root:     filepath.Dir(abs),
		document: document,
	}, nil
}

// Root returns the workspace root directory.
func (w *WorkspaceProvider) Root() string {
	return w.root
}

// Projects lists the project names in document order.
func (w *WorkspaceProvider) Projects() []string {
	projects, ok := w.object(w.document, "projects")
	if !ok {
		return nil
	}
	return projects.Keys()
}

// DefaultProject returns the "defaultProject" field, or the only project.
func (w *WorkspaceProvider) DefaultProject() string {
	if value, ok := w.document.Get("defaultProject"); ok {
		if name, isString := value.(string); isString && name != "" {
			return name
		}
	}
	if projects := w.Projects(); len(projects) == 1 {
		return projects[0]
	}
	return ""
}

// ProjectMetadata implements MetadataProvider.
func (w *WorkspaceProvider) ProjectMetadata(_ context.Context, target Target) (any, error) {
	return w.project(target.Project)
}

// BuildOptions returns the options of the target merged with its configurations.
// Configuration may name several configurations separated by commas; later ones win.
func (w *WorkspaceProvider) BuildOptions(target Target) (Options, error) {
	project, err := w.project(target.Project)
	if err != nil {
		return Options{}, err
	}
	targets, ok := w.object(project, "architect")
	if !ok {
		targets, ok = w.object(project, "targets")
	}
	if !ok {
		return Options{}, fmt.Errorf("project '%s' has no targets", target.Project)
	}
	definition, ok := w.object(targets, target.Target)
	if !ok {
		return Options{}, fmt.Errorf("project '%s' has no target '%s'", target.Project, target.Target)
	}

	merged := map[string]any{}
	if options, ok := w.object(definition, "options"); ok {
		for key, value := range options.Plain() {
			merged[key] = value
		}
	}
	if target.Configuration != "" {
		configurations, _ := w.object(definition, "configurations")
		for _, name := range strings.Split(target.Configuration, ",") {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			configuration, ok := w.object(configurations, name)
			if !ok {
				return Options{}, fmt.Errorf("target '%s' has no configuration '%s'", target, name)
			}
			for key, value := range configuration.Plain() {
				merged[key] = value
			}
		}
	}
	return DecodeOptions(merged)
}

func (w *WorkspaceProvider) project(name string) (*i18n.Object, error) {
	projects, ok := w.object(w.document, "projects")
	if !ok {
		return nil, fmt.Errorf("workspace %s has no projects", w.path)
	}
	project, ok := w.object(projects, name)
	if !ok {
		return nil, fmt.Errorf("project '%s' does not exist in %s", name, w.path)
	}
	return project, nil
}

func (w *WorkspaceProvider) object(parent *i18n.Object, key string) (*i18n.Object, bool) {
	value, ok := parent.Get(key)
	if !ok {
		return nil, false
	}
	obj, isObject := value.(*i18n.Object)
	return obj, isObject && obj != nil
}

func decodeWorkspace(path string, raw []byte) (*i18n.Object, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		document := i18n.NewObject()
		if err := yaml.Unmarshal(raw, document); err != nil {
			return nil, err
		}
		return document, nil
	}
	return i18n.DecodeJSONObject(raw)
}
