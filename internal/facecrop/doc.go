// Package facecrop computes how a detected face is framed inside a fixed
// square (displayed circular) viewport.
//
// Face regions arrive as fractional bounding boxes from the detection
// service. Project turns one into affine parameters for the display layer;
// Render applies the same geometry server-side to cut an actual thumbnail.
package facecrop
