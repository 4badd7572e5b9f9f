package markermap

import (
	"fmt"
	"io"
	"time"

	"github.com/OCAP2/markermap/internal/config"
	"github.com/OCAP2/markermap/internal/logging"
	"github.com/OCAP2/markermap/pkg/mapengine"
)

// logName prefixes session log files.
const logName = "markermap"

// NewFromConfig reads markermap.cfg.json from configDir, sets up logging and
// returns an uninitialized MarkerMap using the configured tiles, surface and
// icon. Close the map to release its log outputs.
func NewFromConfig(configDir string) (*MarkerMap, error) {
	if err := config.Load(configDir); err != nil {
		return nil, err
	}

	lc := config.GetLoggingConfig()
	mgr := logging.NewSlogManager()

	var file, graylog io.Writer
	var err error
	if lc.LogsDir != "" {
		if file, err = mgr.OpenLogFile(lc.LogsDir, logName, time.Now()); err != nil {
			return nil, err
		}
	}
	if lc.GraylogEnabled {
		if graylog, err = mgr.DialGraylog(lc.GraylogAddress); err != nil {
			_ = mgr.Close()
			return nil, err
		}
	}
	mgr.Setup(file, lc.Level, graylog)

	mc := config.GetMapConfig()
	if mc.Viewport.Width < 1 || mc.Viewport.Height < 1 {
		_ = mgr.Close()
		return nil, fmt.Errorf("map.viewport: %w", mapengine.ErrInvalidViewport)
	}

	mm := New(
		WithLogger(mgr.Logger()),
		WithTarget(mc.Target),
		WithTileURL(mc.TileURL),
		WithViewport(mc.Viewport.Width, mc.Viewport.Height),
		WithIcon(iconFromConfig(mc.Icon)),
	)
	mm.closer = mgr
	return mm, nil
}

func iconFromConfig(c config.IconConfig) mapengine.Icon {
	return mapengine.Icon{
		Src:          c.Src,
		Anchor:       [2]float64{c.AnchorX, c.AnchorY},
		AnchorXUnits: mapengine.UnitsFraction,
		AnchorYUnits: mapengine.UnitsFraction,
		Opacity:      c.Opacity,
		Size:         [2]float64{c.Width, c.Height},
	}
}
