package scripting

import (
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// Script is one behavior instance attached to a node: a class name and the
// instance fields. It holds no VM state; the engine materializes self tables
// per call, so a Script value can be copied, serialized, and restored freely.
type Script struct {
	Class  string
	Fields map[string]any
}

// Clone returns a deep copy.
func (s *Script) Clone() *Script {
	fields := make(map[string]any, len(s.Fields))
	for k, v := range s.Fields {
		fields[k] = v
	}
	return &Script{Class: s.Class, Fields: fields}
}

// RestoreResources re-requests every resource path the script's class
// declares, so handles inside the environment are fresh after the script
// crossed a serialization boundary.
func (s *Script) RestoreResources(ctx *Context, env ResourceEnv) error {
	class, ok := ctx.engine.Class(s.Class)
	if !ok {
		return fmt.Errorf("scripting: unknown script class %q", s.Class)
	}
	for _, field := range class.Resources {
		path, ok := s.Fields[field].(string)
		if !ok || path == "" {
			continue
		}
		if err := env.RequestResource(path); err != nil {
			return fmt.Errorf("scripting: restore %s.%s: %w", s.Class, field, err)
		}
	}
	return nil
}

// FieldNames returns the instance field names in sorted order.
func (s *Script) FieldNames() []string {
	names := make([]string, 0, len(s.Fields))
	for k := range s.Fields {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Context is the serialization environment for scripts: it resolves class
// names against the engine's registry.
type Context struct {
	engine *Engine
}

// SerializationContext returns the context for scripts of this engine.
func (e *Engine) SerializationContext() *Context {
	return &Context{engine: e}
}

// scriptBlob is the wire form of a serialized script.
type scriptBlob struct {
	Class  string         `yaml:"class"`
	Fields map[string]any `yaml:"fields,omitempty"`
}

// SaveScript serializes a script to an opaque byte blob.
func (c *Context) SaveScript(s *Script) ([]byte, error) {
	if _, ok := c.engine.Class(s.Class); !ok {
		return nil, fmt.Errorf("scripting: save of unknown script class %q", s.Class)
	}
	data, err := yaml.Marshal(scriptBlob{Class: s.Class, Fields: s.Fields})
	if err != nil {
		return nil, fmt.Errorf("scripting: save script %q: %w", s.Class, err)
	}
	return data, nil
}

// LoadScript deserializes a blob produced by SaveScript. The class must be
// registered with the engine; an unknown class is a data error surfaced to
// the caller, not a panic.
func (c *Context) LoadScript(data []byte) (*Script, error) {
	var blob scriptBlob
	if err := yaml.Unmarshal(data, &blob); err != nil {
		return nil, fmt.Errorf("scripting: load script: %w", err)
	}
	if _, ok := c.engine.Class(blob.Class); !ok {
		return nil, fmt.Errorf("scripting: load of unknown script class %q", blob.Class)
	}
	if blob.Fields == nil {
		blob.Fields = make(map[string]any)
	}
	return &Script{Class: blob.Class, Fields: blob.Fields}, nil
}
