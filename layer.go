// File: strata/layer.go
package strata

// Layer identifies one prioritized configuration source. The numeric value
// of a Layer is its priority: lower numbers take precedence. The set is
// closed and the priorities are fixed at process start; layers are never
// added or reordered at runtime.
type Layer int

const (
	LayerCommandLine Layer = iota
	LayerProperties
	LayerEnvironment
	LayerLocalJSON
	LayerLocalTOML
	LayerGlobalJSON
	LayerGlobalTOML
	LayerPackagedJSON
	LayerPackagedTOML
	LayerPackagedDefaultJSON
	LayerPackagedDefaultTOML
	LayerDefaults

	layerCount
)

// Priority returns the layer's rank; lower values win key conflicts.
func (l Layer) Priority() int { return int(l) }

func (l Layer) String() string {
	switch l {
	case LayerCommandLine:
		return "command-line"
	case LayerProperties:
		return "properties"
	case LayerEnvironment:
		return "environment"
	case LayerLocalJSON:
		return "local-json"
	case LayerLocalTOML:
		return "local-toml"
	case LayerGlobalJSON:
		return "global-json"
	case LayerGlobalTOML:
		return "global-toml"
	case LayerPackagedJSON:
		return "packaged-json"
	case LayerPackagedTOML:
		return "packaged-toml"
	case LayerPackagedDefaultJSON:
		return "packaged-default-json"
	case LayerPackagedDefaultTOML:
		return "packaged-default-toml"
	case LayerDefaults:
		return "defaults"
	default:
		return "unknown"
	}
}

// Layers returns every layer in ascending priority order (highest
// precedence first).
func Layers() []Layer {
	all := make([]Layer, 0, layerCount)
	for l := Layer(0); l < layerCount; l++ {
		all = append(all, l)
	}
	return all
}
