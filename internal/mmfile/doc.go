// Package mmfile provides platform-specific helpers for memory-mapping journal
// files. On unix systems files are mapped with MAP_SHARED; elsewhere the file
// is read into memory and written back explicitly.
package mmfile
