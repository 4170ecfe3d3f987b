// Package goshaderfx is a gallery of fragment-shader effects (gradients, shapes,
// glow, magnification, pixellation, frosted glass and snow) expressed twice: as
// native Go pixel kernels evaluated on the CPU, and as GLSL programs composed at
// build time for the OpenGL path.
//
// The library is split into small packages:
//
//   - glsl, easing, noise, sdf, palette: the shading-language math every effect
//     is built from.
//   - inputs: uniform declarations, the per-frame uniform set and composable
//     channels (images or child programs).
//   - effects: the effect programs and their registry.
//   - shader: GLSL composition of preamble, library fragments and effect bodies.
//   - driver: the frame clock, the driver state machine and the CPU surface.
//   - renderer, glfwcontext, translator: the OpenGL host.
//   - encoder: video (ffmpeg) and PNG sequence output for offscreen rendering.
//   - viewer: an ebiten window around the CPU surface.
//   - preset, options: JSON presets and the command-line configuration.
//
// The root package only carries the shared logger.
package goshaderfx
