package main

import (
	"github.com/philipparndt/gortho/internal/logging"
	"github.com/philipparndt/gortho/pkg/project"
)

func loadProject(path string) (*project.Project, error) {
	p, err := project.Load(path)
	if err != nil {
		return nil, err
	}
	logger.Debug("loaded project",
		logging.String("path", path),
		logging.String("analysis", p.Analysis.Name),
		logging.Int("landmarks", p.Analysis.Landmarks.Len()),
		logging.Int("measurements", p.Analysis.Measurements.Len()),
		logging.Float64("pixelsPerMillimeter", p.PixelsPerMillimeter),
	)
	return p, nil
}

func saveProject(path string, p *project.Project) error {
	if err := project.Save(path, p); err != nil {
		return err
	}
	logger.Info("saved project", logging.String("path", path))
	return nil
}
