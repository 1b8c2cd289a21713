// Package sweep enumerates and renders the blur × darken parameter grid.
//
// A sweep is described by [Params]: blur radii MinBlurRadius + i*BlurStep
// for i in [0, BlurNumber) and darken levels MinDarkenNumber + j*DarkenStep
// for j in [0, DarkenNumber). Each (radius, level) pair is a [Key] and maps
// to exactly one output file, blur_<radius>_darken_<level>.png.
//
// [Planner.Generate] synthesizes one drawing per radius and derives every
// darken level from it by incremental multiply passes, so a sweep costs
// BlurNumber syntheses regardless of DarkenNumber.
package sweep
