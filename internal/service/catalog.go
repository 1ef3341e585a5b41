package service

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"gopkg.in/yaml.v3"

	"docintake-backend/internal/logger"
)

//go:embed labels/*.yaml
var labelFiles embed.FS

// catalogService translates document keys to human-readable labels. The
// per-language catalogs are embedded YAML files.
type catalogService struct {
	labels map[string]map[string]string
}

const fallbackLanguage = "en"

func NewCatalogService() (CatalogService, error) {
	labels := make(map[string]map[string]string)

	entries, err := fs.ReadDir(labelFiles, "labels")
	if err != nil {
		return nil, fmt.Errorf("failed to read label catalogs: %w", err)
	}
	for _, entry := range entries {
		language := strings.TrimSuffix(entry.Name(), path.Ext(entry.Name()))
		data, err := labelFiles.ReadFile(path.Join("labels", entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read label catalog %s: %w", entry.Name(), err)
		}
		catalog := make(map[string]string)
		if err := yaml.Unmarshal(data, &catalog); err != nil {
			return nil, fmt.Errorf("failed to parse label catalog %s: %w", entry.Name(), err)
		}
		labels[language] = catalog
	}

	if _, ok := labels[fallbackLanguage]; !ok {
		return nil, fmt.Errorf("label catalog for fallback language %q is missing", fallbackLanguage)
	}
	return &catalogService{labels: labels}, nil
}

func (s *catalogService) LabelsFor(language string) map[string]string {
	if catalog, ok := s.labels[language]; ok {
		return catalog
	}
	logger.Debug("No label catalog for language, falling back", "language", language)
	return s.labels[fallbackLanguage]
}
