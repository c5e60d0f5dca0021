package analyzer

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// defaultSkills is the Java-role keyword list. JDBC appears twice and is
// collapsed by NewCatalog.
var defaultSkills = []string{
	"Java", "Spring Boot", "Spring Framework", "Hibernate", "JPA",
	"JUnit", "Maven", "Gradle", "Microservices", "REST API",
	"JDBC", "Servlet", "JSP", "Design Patterns", "Multithreading",
	"Collections", "Stream API", "Lambda Expressions", "SOLID Principles", "JDBC",
	"SQL", "JVM", "Garbage Collection", "Jackson", "JSON",
	"XML", "Git", "CI/CD", "Jenkins", "Docker", "AWS", "Azure",
	"Agile", "Scrum", "TDD", "JMeter", "Log4j", "SLF4J",
}

// Catalog is an ordered, duplicate-free list of skill names
type Catalog struct {
	skills []string
}

// NewCatalog builds a catalog from names, trimming blanks and keeping the first
// occurrence of names that differ only in case.
func NewCatalog(names []string) Catalog {
	seen := make(map[string]bool, len(names))
	skills := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if seen[key] {
			continue
		}
		seen[key] = true
		skills = append(skills, name)
	}
	return Catalog{skills: skills}
}

// DefaultCatalog returns the built-in Java-role catalog
func DefaultCatalog() Catalog {
	return NewCatalog(defaultSkills)
}

// Skills returns a copy of the catalog entries in order
func (c Catalog) Skills() []string {
	out := make([]string, len(c.skills))
	copy(out, c.skills)
	return out
}

func (c Catalog) Len() int {
	return len(c.skills)
}

// Contains reports whether name is in the catalog, ignoring case
func (c Catalog) Contains(name string) bool {
	for _, s := range c.skills {
		if strings.EqualFold(s, name) {
			return true
		}
	}
	return false
}

// catalogFile is the mapping form accepted by LoadCatalogFile
type catalogFile struct {
	Skills []string `yaml:"skills"`
}

// LoadCatalogFile reads a catalog from disk. YAML files may hold either a plain
// list or a mapping with a "skills" key; any other extension is read as one
// skill per line with "#" comments.
func LoadCatalogFile(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("failed to read catalog file %s: %w", path, err)
	}

	var names []string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		names, err = parseYAMLCatalog(data)
		if err != nil {
			return Catalog{}, fmt.Errorf("failed to parse catalog file %s: %w", path, err)
		}
	default:
		names = parseLineCatalog(data)
	}

	catalog := NewCatalog(names)
	if catalog.Len() == 0 {
		return Catalog{}, fmt.Errorf("catalog file %s contains no skills", path)
	}
	return catalog, nil
}

func parseYAMLCatalog(data []byte) ([]string, error) {
	var list []string
	if err := yaml.Unmarshal(data, &list); err == nil {
		return list, nil
	}
	var doc catalogFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc.Skills, nil
}

func parseLineCatalog(data []byte) []string {
	var names []string
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		names = append(names, line)
	}
	return names
}
