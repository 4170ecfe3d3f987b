// Package translator holds the process-wide GLSL translator. The first call
// starts it; later calls share it.
package translator

import (
	"context"
	"fmt"
	"sync"

	gst "github.com/richinsley/goshadertranslator"

	goshaderfx "github.com/richinsley/goshaderfx"
)

var (
	once       sync.Once
	translator *gst.ShaderTranslator
	initErr    error
)

// GetTranslator returns the shared translator, starting it on first use.
func GetTranslator() (*gst.ShaderTranslator, error) {
	once.Do(func() {
		translator, initErr = gst.NewShaderTranslator(context.Background())
		if initErr != nil {
			initErr = fmt.Errorf("start shader translator: %w", initErr)
			return
		}
		goshaderfx.Logger().Debug("shader translator started")
	})
	return translator, initErr
}

// Translate converts a GLSL ES 3.00 fragment program to desktop GLSL 4.10.
// It returns the translated code and the uniform table keyed by source name.
func Translate(src string) (string, map[string]gst.ShaderVariable, error) {
	t, err := GetTranslator()
	if err != nil {
		return "", nil, err
	}
	sh, err := t.TranslateShader(src, "fragment", gst.ShaderSpecWebGL2, gst.OutputFormatGLSL410)
	if err != nil {
		return "", nil, fmt.Errorf("fragment shader translation failed: %w", err)
	}
	return sh.Code, sh.Variables, nil
}
