// Package mediatypes provides shared type definitions and utilities for media
// asset handling across the event-media service.
//
// This package exists as a dependency-free foundation that can be imported by
// other packages without creating import cycles. It contains primitive types,
// constants, and pure utility functions with no external dependencies beyond
// the standard library.
//
// # Asset Kinds
//
// The package defines an AssetKind enum for categorizing stored objects:
//
//	mediatypes.KindPhoto // Accepted photo formats (jpg, jpeg, png)
//	mediatypes.KindVideo // Accepted video formats (mp4, mov, webm, ...)
//	mediatypes.KindOther // Anything else found under a listing prefix
//
// Use KindForKey to classify an object key:
//
//	kind := mediatypes.KindForKey("events/e1/images/p1.jpg")
//
// The extension maps (PhotoExtensions, VideoExtensions) can be used directly
// for format validation or iteration.
package mediatypes
