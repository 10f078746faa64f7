package scrollscene

import (
	"github.com/goliatone/go-scrollscene/internal/hydrate"
)

// configPayload is the loosely-typed shape accepted from map and document
// frontends. Element and container references cannot be expressed in data
// payloads; they are attached through Config by the host.
type configPayload struct {
	Horizontal *bool    `json:"horizontal" yaml:"horizontal"`
	TrackStart *float64 `json:"trackStart" yaml:"trackStart"`
	TrackEnd   *float64 `json:"trackEnd" yaml:"trackEnd"`
	Offset     *Length  `json:"offset" yaml:"offset"`
	Height     *Length  `json:"height" yaml:"height"`
}

func (p configPayload) config() Config {
	return Config{
		Horizontal: p.Horizontal,
		TrackStart: p.TrackStart,
		TrackEnd:   p.TrackEnd,
		Offset:     p.Offset,
		Height:     p.Height,
	}
}

// FromMap hydrates a partial Config from a loosely-typed payload, as
// produced by JSON frontends or host scripting layers. Lengths accept
// numbers (pixels) or the textual forms of ParseLength. Unknown keys are
// ignored.
func FromMap(payload map[string]any) (Config, error) {
	decoder := hydrate.NewDecoder[configPayload]()
	decoded, err := decoder.Decode(hydrate.Context{Source: "map"}, payload)
	if err != nil {
		return Config{}, err
	}
	cfg := decoded.config()
	if err := validatePartial(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
