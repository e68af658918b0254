package importer

import "github.com/binzume/gltfscene/scene"

// MapInterpolation returns the curve interpolation for a sampler mode.
// Spline modes are approximated with bezier curves; tangents are not imported.
func MapInterpolation(mode SamplerMode) scene.Interpolation {
	switch mode {
	case ModeLinear:
		return scene.InterpolationLinear
	case ModeStep:
		return scene.InterpolationConstant
	case ModeCatmullRomSpline, ModeCubicSpline:
		return scene.InterpolationBezier
	}
	return scene.InterpolationBezier
}
