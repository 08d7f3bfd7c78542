// Package facestore persists face records in a local SQLite database.
//
// The face-detection service reports faces with fractional bounding boxes;
// this store is the cache the face-grouping gallery reads when joining
// detected faces to the listed photo collection. Boxes are nullable: a
// record without coordinates renders with the projector's centered default.
package facestore
