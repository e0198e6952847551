// Package wire3d provides the geometry behind a small 3D wireframe
// scripting language.
//
// # Overview
//
// A scene is an [EdgeList]: homogeneous points read pairwise as line
// segments. Shapes are added with [EdgeList.AddEdge], [EdgeList.AddCircle]
// and [EdgeList.AddCurve]; transforms are built with [Scale], [Translate],
// [RotateX], [RotateY] and [RotateZ] and composed with [Multiply].
//
// # Quick Start
//
//	edges := wire3d.NewEdgeList()
//	edges.AddEdge(0, 0, 0, 100, 100, 0)
//	_ = edges.AddCircle(250, 250, 0, 100, wire3d.DefaultStep)
//
//	// Rotate first, then move: each new matrix premultiplies.
//	transform := wire3d.Identity(4)
//	_ = wire3d.Multiply(wire3d.RotateZ(wire3d.Radians(30)), transform)
//	_ = wire3d.Multiply(wire3d.Translate(50, 0, 0), transform)
//	_ = edges.Apply(transform)
//
// The script language that drives these types lives in package script;
// rasterising an edge list onto pixels lives in package screen.
//
// # Composition Order
//
// Matrices act on column vectors. Multiply(a, b) stores a × b in b, so
// premultiplying each new transform onto a running one makes transforms
// take effect in the order they were issued.
//
// # Coordinate System
//
// Points are (x, y, z, 1). Rotations are right-handed and take radians;
// use [Radians] to convert from degrees.
package wire3d

// Version is the current version of the module.
const Version = "0.1.0"
