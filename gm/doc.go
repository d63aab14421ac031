// Package gm (stands for geometry math) provides some geometry primitives.
//
// It includes a simple 2d vector type called Vec and a type named Rad to
// represent angle values in radian.
package gm
