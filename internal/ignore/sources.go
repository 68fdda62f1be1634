package ignore

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/dgerlanc/offlimits/internal/logger"
	"gopkg.in/yaml.v3"
)

// Discover reads ignore files from the project root in the given
// precedence order. Missing or unreadable files are skipped; they never
// block the remaining sources.
func Discover(root string, names []string) []Source {
	var sources []Source
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(root, name))
		if err != nil {
			if !os.IsNotExist(err) {
				logger.Debug("skipping unreadable ignore file", "file", name, "error", err)
			}
			continue
		}
		sources = append(sources, Source{
			Label: name,
			Lines: strings.Split(string(data), "\n"),
		})
	}
	return sources
}

// policyFile is the schema of the project-local .offlimits.yaml file.
// Allow entries become negation patterns appended after the protect list.
type policyFile struct {
	Protect []string `yaml:"protect"`
	Allow   []string `yaml:"allow"`
}

// LoadPolicy reads the project-local YAML policy file, if present.
// Its patterns are appended after all ignore-file sources, so they win
// ties under last-match-wins evaluation.
func LoadPolicy(root, name string) (Source, bool) {
	if name == "" {
		return Source{}, false
	}
	data, err := os.ReadFile(filepath.Join(root, name))
	if err != nil {
		return Source{}, false
	}

	var pf policyFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		logger.Debug("skipping malformed policy file", "file", name, "error", err)
		return Source{}, false
	}

	lines := make([]string, 0, len(pf.Protect)+len(pf.Allow))
	lines = append(lines, pf.Protect...)
	for _, a := range pf.Allow {
		lines = append(lines, "!"+a)
	}
	if len(lines) == 0 {
		return Source{}, false
	}
	return Source{Label: name, Lines: lines}, true
}
