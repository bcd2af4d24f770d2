// Package feeds holds the static registry of named RSS sources keyed by
// topic and region.
package feeds

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Source is one registry entry. Immutable once loaded.
type Source struct {
	Name   string `yaml:"name"`
	URL    string `yaml:"url"`
	Topic  string `yaml:"-"`
	Region string `yaml:"-"`
}

// Registry maps (topic, region) to feed sources. The "general" sources are
// appended to every topic/region combination.
type Registry struct {
	topics  map[string]map[string][]Source
	general []Source
}

// registryFile is the YAML layout of a feeds config file:
//
//	topics:
//	  education:
//	    india:
//	      - name: ...
//	        url: ...
//	general:
//	  - name: ...
//	    url: ...
type registryFile struct {
	Topics  map[string]map[string][]Source `yaml:"topics"`
	General []Source                       `yaml:"general"`
}

// Load reads a registry from a YAML file. A missing file falls back to the
// built-in default source set; a malformed file is an error.
func Load(path string) (*Registry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("read feeds config %s: %w", path, err)
	}

	var file registryFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse feeds config %s: %w", path, err)
	}
	return newRegistry(file.Topics, file.General), nil
}

func newRegistry(topics map[string]map[string][]Source, general []Source) *Registry {
	r := &Registry{topics: make(map[string]map[string][]Source)}
	for topic, regions := range topics {
		t := strings.ToLower(topic)
		r.topics[t] = make(map[string][]Source)
		for region, sources := range regions {
			rg := strings.ToLower(region)
			for _, s := range sources {
				s.Topic = t
				s.Region = rg
				r.topics[t][rg] = append(r.topics[t][rg], s)
			}
		}
	}
	for _, s := range general {
		s.Topic = "general"
		r.general = append(r.general, s)
	}
	return r
}

// List returns the topic/region sources followed by the general sources.
// When names is non-empty, both groups are restricted to sources whose name
// is in that set. Unknown topic or region yields only the general sources.
func (r *Registry) List(topic, region string, names []string) []Source {
	topic = strings.ToLower(topic)
	region = strings.ToLower(region)

	var topicSources []Source
	if regions, ok := r.topics[topic]; ok {
		topicSources = regions[region]
	}

	allowed := func(Source) bool { return true }
	if len(names) > 0 {
		set := make(map[string]struct{}, len(names))
		for _, n := range names {
			set[n] = struct{}{}
		}
		allowed = func(s Source) bool {
			_, ok := set[s.Name]
			return ok
		}
	}

	out := make([]Source, 0, len(topicSources)+len(r.general))
	for _, s := range topicSources {
		if allowed(s) {
			out = append(out, s)
		}
	}
	for _, s := range r.general {
		if allowed(s) {
			out = append(out, s)
		}
	}
	return out
}

// Names returns every source name known for a topic/region pair, general
// sources included. Used by callers presenting a source picker.
func (r *Registry) Names(topic, region string) []string {
	sources := r.List(topic, region, nil)
	names := make([]string, 0, len(sources))
	for _, s := range sources {
		names = append(names, s.Name)
	}
	return names
}
