package render

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Garsondee/Dark-Vision/internal/vision"
)

// blendMax keeps the brighter of source and backdrop per channel, so an
// overlapping vision or light region can only ever brighten what is
// already there.
var blendMax = ebiten.Blend{
	BlendFactorSourceRGB:        ebiten.BlendFactorOne,
	BlendFactorSourceAlpha:      ebiten.BlendFactorOne,
	BlendFactorDestinationRGB:   ebiten.BlendFactorOne,
	BlendFactorDestinationAlpha: ebiten.BlendFactorOne,
	BlendOperationRGB:           ebiten.BlendOperationMax,
	BlendOperationAlpha:         ebiten.BlendOperationMax,
}

// blendMin keeps the darker of source and backdrop, for darkness
// emitters.
var blendMin = ebiten.Blend{
	BlendFactorSourceRGB:        ebiten.BlendFactorOne,
	BlendFactorSourceAlpha:      ebiten.BlendFactorOne,
	BlendFactorDestinationRGB:   ebiten.BlendFactorOne,
	BlendFactorDestinationAlpha: ebiten.BlendFactorOne,
	BlendOperationRGB:           ebiten.BlendOperationMin,
	BlendOperationAlpha:         ebiten.BlendOperationMin,
}

// BlendFor maps a compositor blend mode onto the ebiten blend that
// realizes it.
func BlendFor(mode vision.BlendMode) ebiten.Blend {
	switch mode {
	case vision.BlendMax:
		return blendMax
	case vision.BlendMin:
		return blendMin
	default:
		return ebiten.BlendSourceOver
	}
}
