// Package bundle defines the bundle grammar shared by the serializer and the
// reconstructor.
//
// A bundle is a single text document with a layout section and a code
// section:
//
//	BUNDLE-FORMAT: 1
//	PROJECT FILE LAYOUT
//	===================
//	D .
//	    D src
//	        F a.txt
//
//	===================
//	CODE CONTENT
//
//	// File: src/a.txt
//	hello
//
// Layout lines carry a depth (four spaces per level, root at depth 0), a tag
// (D for directories, F for files) and a single-segment name. Code blocks
// start with a path marker and end with one blank line.
//
// Bundles without a BUNDLE-FORMAT line are legacy (version 0) documents that
// used folder and page glyphs instead of tags; they remain readable.
package bundle
