package config

import (
	"errors"
	"fmt"
)

// Validate checks value ranges that env-default tags cannot express.
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port %d out of range", c.Server.Port))
	}
	if c.Render.CanvasWidth <= 0 || c.Render.CanvasHeight <= 0 {
		errs = append(errs, errors.New("render canvas must be positive"))
	}
	if c.Render.MinGridColumns < 1 || c.Render.MaxGridColumns < c.Render.MinGridColumns {
		errs = append(errs, fmt.Errorf("render grid columns [%d, %d] invalid", c.Render.MinGridColumns, c.Render.MaxGridColumns))
	}
	if c.Render.AgendaThreshold < 0 || c.Render.AgendaColumnSplit < 0 {
		errs = append(errs, fmt.Errorf("render.agenda_threshold %d and agenda_column_split %d must not be negative", c.Render.AgendaThreshold, c.Render.AgendaColumnSplit))
	}
	if c.Assets.WhiteThreshold < 0 || c.Assets.WhiteThreshold > 255 {
		errs = append(errs, fmt.Errorf("assets.white_threshold %d not in [0, 255]", c.Assets.WhiteThreshold))
	}
	if c.Assets.Concurrency < 1 {
		errs = append(errs, errors.New("assets.concurrency must be at least 1"))
	}
	if c.Assets.JPEGQuality < 1 || c.Assets.JPEGQuality > 100 {
		errs = append(errs, fmt.Errorf("assets.jpeg_quality %d not in [1, 100]", c.Assets.JPEGQuality))
	}
	if c.Illustration.Width <= 0 || c.Illustration.Height <= 0 {
		errs = append(errs, errors.New("illustration size must be positive"))
	}

	return errors.Join(errs...)
}
