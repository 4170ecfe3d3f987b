package shader

// QuadVertex draws the full-screen quad the renderer binds at attribute 0.
// Effect passes ignore fx_TexCoord and read gl_FragCoord instead.
const QuadVertex = `#version 410 core
layout (location = 0) in vec2 fx_Corner;
out vec2 fx_TexCoord;

void main() {
    fx_TexCoord = fx_Corner * 0.5 + 0.5;
    gl_Position = vec4(fx_Corner, 0.0, 1.0);
}
`

// PresentFrame copies the finished offscreen frame, bound to texture unit 0,
// onto the window.
const PresentFrame = `#version 410 core
in vec2 fx_TexCoord;
out vec4 fx_FragColor;
uniform sampler2D fx_Frame;

void main() {
    fx_FragColor = texture(fx_Frame, fx_TexCoord);
}
`
