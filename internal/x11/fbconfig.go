package x11

import "sort"

// GLX framebuffer config attributes as they appear in GetFBConfigs replies.
const (
	glxDoubleBuffer = 5
	glxRedSize      = 8
	glxGreenSize    = 9
	glxBlueSize     = 10
	glxAlphaSize    = 11
	glxDepthSize    = 12
	glxVisualID     = 0x800B
	glxXRenderable  = 0x8012
	glxFBConfigID   = 0x8013
)

// FBConfig is one framebuffer configuration decoded from the server.
type FBConfig struct {
	ID           uint32
	VisualID     uint32
	Red          int
	Green        int
	Blue         int
	Alpha        int
	Depth        int
	DoubleBuffer bool
	Renderable   bool
}

// FBConfigCriteria mirrors the subset of glXChooseFBConfig attributes this
// package understands. Sizes are minimums.
type FBConfigCriteria struct {
	Renderable   bool
	Red          int
	Green        int
	Blue         int
	Depth        int
	DoubleBuffer bool
}

// ParseFBConfigs decodes the attribute/value pair list of a GetFBConfigs
// reply. Each config contributes numProperties pairs.
func ParseFBConfigs(numConfigs, numProperties uint32, props []uint32) []FBConfig {
	configs := make([]FBConfig, 0, numConfigs)
	stride := int(numProperties) * 2
	for i := 0; i < int(numConfigs); i++ {
		start := i * stride
		if start+stride > len(props) {
			break
		}
		var cfg FBConfig
		for j := start; j < start+stride; j += 2 {
			value := props[j+1]
			switch props[j] {
			case glxFBConfigID:
				cfg.ID = value
			case glxVisualID:
				cfg.VisualID = value
			case glxRedSize:
				cfg.Red = int(value)
			case glxGreenSize:
				cfg.Green = int(value)
			case glxBlueSize:
				cfg.Blue = int(value)
			case glxAlphaSize:
				cfg.Alpha = int(value)
			case glxDepthSize:
				cfg.Depth = int(value)
			case glxDoubleBuffer:
				cfg.DoubleBuffer = value != 0
			case glxXRenderable:
				cfg.Renderable = value != 0
			}
		}
		configs = append(configs, cfg)
	}
	return configs
}

// ChooseFBConfigs filters configs by criteria and orders the survivors the
// way glXChooseFBConfig does for these attributes: more color bits first,
// then smaller depth buffers, then server order.
func ChooseFBConfigs(configs []FBConfig, want FBConfigCriteria) []FBConfig {
	var matched []FBConfig
	for _, cfg := range configs {
		if want.Renderable && (!cfg.Renderable || cfg.VisualID == 0) {
			continue
		}
		if cfg.DoubleBuffer != want.DoubleBuffer {
			continue
		}
		if cfg.Red < want.Red || cfg.Green < want.Green || cfg.Blue < want.Blue {
			continue
		}
		if cfg.Depth < want.Depth {
			continue
		}
		matched = append(matched, cfg)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		if ci, cj := colorBits(matched[i]), colorBits(matched[j]); ci != cj {
			return ci > cj
		}
		return matched[i].Depth < matched[j].Depth
	})
	return matched
}

func colorBits(cfg FBConfig) int {
	return cfg.Red + cfg.Green + cfg.Blue + cfg.Alpha
}
