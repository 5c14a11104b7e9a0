// Package render draws an image and its edit state onto a drawing surface.
//
// The Surface interface is the only drawing capability the renderer
// relies on; GGSurface implements it on top of fogleman/gg. Rendering is a
// pure projection: it reads state.ImageState and never writes it.
package render
